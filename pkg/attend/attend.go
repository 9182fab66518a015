// Package attend implements the attendance batch import pipeline:
// line deduplication, tolerant tokenizing, header normalization,
// multi-format date parsing, per-row validation against the reference
// catalogs, chunked cooperative processing with progress reporting,
// category-partitioned bulk persistence with partial-failure isolation,
// and a capped, exportable error ledger.
package attend

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/harborlight/attend/pkg/attend/catalog"
	"github.com/harborlight/attend/pkg/attend/directory"
	"github.com/harborlight/attend/pkg/attend/ingest"
	"github.com/harborlight/attend/pkg/attend/internalerr"
	"github.com/harborlight/attend/pkg/attend/report"
	"github.com/harborlight/attend/pkg/attend/store"
)

// DefaultChunkSize is the number of data rows processed as one atomic
// unit of work between scheduler yields. It is independent of file
// size.
const DefaultChunkSize = 50

// Importer is the import pipeline facade.
type Importer struct {
	store      store.Store
	guests     *directory.Snapshot
	programs   *catalog.ProgramCatalog
	specialIDs *catalog.SpecialIDCatalog
	dates      *ingest.DateNormalizer
	tokenizer  *ingest.Tokenizer
	reports    *report.Builder
	progress   ProgressSink

	chunkSize  int
	ledgerCap  int
	previewCap int
}

// Options configures an Importer instance.
type Options struct {
	Store      store.Store
	Guests     *directory.Snapshot // optional; snapshotted from Store at run start when nil
	Programs   *catalog.ProgramCatalog
	SpecialIDs *catalog.SpecialIDCatalog
	Dates      *ingest.DateNormalizer
	Progress   ProgressSink // optional
	ChunkSize  int
	LedgerCap  int
	PreviewCap int
}

// New creates an Importer with the given dependencies.
func New(opts Options) *Importer {
	if opts.Programs == nil {
		opts.Programs = catalog.NewProgramCatalog()
	}
	if opts.SpecialIDs == nil {
		opts.SpecialIDs = catalog.NewSpecialIDCatalog()
	}
	if opts.Dates == nil {
		opts.Dates = ingest.NewDateNormalizer(time.UTC)
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.PreviewCap <= 0 {
		opts.PreviewCap = report.DefaultPreviewCap
	}

	return &Importer{
		store:      opts.Store,
		guests:     opts.Guests,
		programs:   opts.Programs,
		specialIDs: opts.SpecialIDs,
		dates:      opts.Dates,
		tokenizer:  ingest.NewTokenizer(','),
		reports:    report.New(),
		progress:   opts.Progress,
		chunkSize:  opts.ChunkSize,
		ledgerCap:  opts.LedgerCap,
		previewCap: opts.PreviewCap,
	}
}

// Run drives the pipeline over one file: read, validate the header,
// process data rows in fixed-size chunks, and compose the summary. The
// only fatal error is a missing required column or an unreadable file;
// per-row problems are accounted for in the summary instead. Chunk N+1
// never starts before chunk N's writes and error aggregation have fully
// resolved; between chunks the processor yields and observes ctx
// cancellation, the pipeline's only preemption point.
func (imp *Importer) Run(ctx context.Context, req RunRequest) (*Summary, error) {
	// Reading
	rows := imp.tokenizer.Rows(req.Text)
	if len(rows) == 0 {
		return nil, &internalerr.FileFormatError{Reason: "file has no header row"}
	}

	// HeaderValidating
	header := ingest.ResolveHeader(rows[0])
	if err := header.Validate(); err != nil {
		return nil, err
	}

	guests := imp.guests
	if guests == nil {
		listed, err := imp.store.ListGuests(ctx)
		if err != nil {
			return nil, fmt.Errorf("snapshot guest directory: %w", err)
		}
		guests = directory.FromGuests(listed)
	}

	data := rows[1:]
	summary := &Summary{
		TotalRows:         len(data),
		SpecialMealCounts: make(map[string]int),
	}
	ledger := report.NewLedger(imp.ledgerCap)

	var filterDesc string
	if req.Filter != nil {
		filterDesc = req.Filter.Description
	}

	// Chunking
	for start := 0; start < len(data); start += imp.chunkSize {
		if start > 0 {
			// Yield between chunks so the host can service other
			// pending work; also the natural cancellation point.
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			runtime.Gosched()
		}

		end := start + imp.chunkSize
		if end > len(data) {
			end = len(data)
		}

		var eligible []*ParsedRecord
		for i, fields := range data[start:end] {
			// Row numbers are 1-based and header-inclusive.
			rowNumber := start + i + 2
			rec, outcome := imp.validateRow(fields, header, rowNumber, guests, req.Filter)
			switch outcome {
			case rowRejected:
				summary.SkippedCount++
			case rowFiltered:
				summary.FilteredCount++
			case rowAccepted:
				if rec.Eligible() {
					eligible = append(eligible, rec)
				} else {
					summary.SkippedCount++
				}
			}
		}

		result := imp.dispatchChunk(ctx, eligible, ledger)
		summary.SuccessCount += result.SuccessCount
		summary.ErrorCount += result.ErrorCount
		for label, count := range result.SpecialMealCounts {
			summary.SpecialMealCounts[label] += count
		}

		imp.notify(ProgressUpdate{
			RangeStart:        start + 1,
			RangeEnd:          end,
			Total:             len(data),
			Percent:           float64(end) / float64(len(data)) * 100,
			FilterDescription: filterDesc,
		})
	}

	// Finalizing
	summary.Errors = ledger.Preview(imp.previewCap)
	summary.Message = imp.composeMessage(summary, filterDesc)
	if ledger.Total() > 0 {
		artifact := imp.reports.Build(req.Filename, ledger.Entries(), time.Now())
		summary.Report = &artifact
	}

	return summary, nil
}

func (imp *Importer) notify(u ProgressUpdate) {
	if imp.progress != nil {
		imp.progress.Notify(u)
	}
}

// composeMessage renders the human-readable run summary: counts, the
// special-category sub-totals, and the first few error snippets.
func (imp *Importer) composeMessage(s *Summary, filterDesc string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Import complete: %d succeeded, %d failed, %d skipped", s.SuccessCount, s.ErrorCount, s.SkippedCount)
	if s.FilteredCount > 0 {
		fmt.Fprintf(&sb, ", %d outside date range", s.FilteredCount)
	}
	sb.WriteString(".")
	if filterDesc != "" {
		fmt.Fprintf(&sb, " Filter: %s.", filterDesc)
	}

	if len(s.SpecialMealCounts) > 0 {
		labels := make([]string, 0, len(s.SpecialMealCounts))
		for label := range s.SpecialMealCounts {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		parts := make([]string, len(labels))
		for i, label := range labels {
			parts[i] = fmt.Sprintf("%d %s", s.SpecialMealCounts[label], label)
		}
		fmt.Fprintf(&sb, " Special meals: %s.", strings.Join(parts, ", "))
	}

	for _, e := range s.Errors {
		fmt.Fprintf(&sb, "\nrow %d: %s", e.RowNumber, e.Message)
	}
	if extra := s.ErrorCount - len(s.Errors); extra > 0 && len(s.Errors) > 0 {
		fmt.Fprintf(&sb, "\n... and %d more errors", extra)
	}

	return sb.String()
}
