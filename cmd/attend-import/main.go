package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/harborlight/attend/internal/xlsx"
	"github.com/harborlight/attend/pkg/attend"
	"github.com/harborlight/attend/pkg/attend/config"
	"github.com/harborlight/attend/pkg/attend/sample"
	"github.com/harborlight/attend/pkg/attend/store/sqlite"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "attend-import",
		Short: "Bulk-import service attendance records",
	}
	root.AddCommand(newImportCmd(), newTemplateCmd(), newVersionCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newImportCmd() *cobra.Command {
	var (
		filePath   string
		configPath string
		dbPath     string
		startDate  string
		endDate    string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import an attendance file into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if filePath == "" {
				return fmt.Errorf("--file required")
			}

			loader := config.Loader{SettingsPath: configPath}
			components, err := loader.Load()
			if err != nil {
				return err
			}
			if dbPath != "" {
				components.Settings.DBPath = dbPath
			}

			text, err := readAttendanceFile(filePath)
			if err != nil {
				return err
			}

			ctx := context.Background()
			st, err := sqlite.Open(ctx, components.Settings.DBPath)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer st.Close()

			importer := attend.New(attend.Options{
				Store:      st,
				Programs:   components.Programs,
				SpecialIDs: components.SpecialIDs,
				Dates:      components.Dates,
				ChunkSize:  components.Settings.ChunkSize,
				LedgerCap:  components.Settings.LedgerCap,
				PreviewCap: components.Settings.PreviewCap,
				Progress: attend.ProgressFunc(func(u attend.ProgressUpdate) {
					log.Printf("processed rows %d-%d of %d (%.0f%%)", u.RangeStart, u.RangeEnd, u.Total, u.Percent)
				}),
			})

			req := attend.RunRequest{Text: text, Filename: filepath.Base(filePath)}
			if startDate != "" || endDate != "" {
				filter, err := parseFilter(components, startDate, endDate)
				if err != nil {
					return err
				}
				req.Filter = filter
			}

			summary, err := importer.Run(ctx, req)
			if err != nil {
				return err
			}

			log.Print(summary.Message)
			if summary.Report != nil {
				outPath := filepath.Join(filepath.Dir(filePath), summary.Report.Filename)
				if err := os.WriteFile(outPath, []byte(summary.Report.Content), 0o644); err != nil {
					return fmt.Errorf("write error report: %w", err)
				}
				log.Printf("error report written to %s", outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&filePath, "file", "", "Attendance file (.csv or .xlsx) (required)")
	cmd.Flags().StringVar(&configPath, "config", "", "Settings YAML file")
	cmd.Flags().StringVar(&dbPath, "db", "", "Database path (overrides settings)")
	cmd.Flags().StringVar(&startDate, "start", "", "Date filter start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end", "", "Date filter end (YYYY-MM-DD)")
	return cmd
}

func newTemplateCmd() *cobra.Command {
	var (
		year    int
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write the import template artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			if year == 0 {
				year = time.Now().Year()
			}
			content := sample.File(year, nil)
			if outPath == "" {
				fmt.Print(content)
				return nil
			}
			return os.WriteFile(outPath, []byte(content), 0o644)
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Year used in sample dates (defaults to current)")
	cmd.Flags().StringVar(&outPath, "out", "", "Output path (defaults to stdout)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("attend-import %s\n", version)
		},
	}
}

// readAttendanceFile loads a source file, routing workbooks through the
// Excel bridge.
func readAttendanceFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return xlsx.ToDelimitedText(data)
	}
	return string(data), nil
}

func parseFilter(components *config.Components, start, end string) (*attend.DateRange, error) {
	if start == "" || end == "" {
		return nil, fmt.Errorf("--start and --end must be given together")
	}
	startT, ok := components.Dates.Normalize(start)
	if !ok {
		return nil, fmt.Errorf("invalid --start date: %s", start)
	}
	endT, ok := components.Dates.Normalize(end)
	if !ok {
		return nil, fmt.Errorf("invalid --end date: %s", end)
	}
	return &attend.DateRange{
		Start:       components.Dates.ServiceDay(startT),
		End:         endT,
		Description: fmt.Sprintf("%s to %s", start, end),
	}, nil
}
