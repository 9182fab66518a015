package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/harborlight/attend/pkg/attend/internalerr"
	"github.com/harborlight/attend/pkg/attend/report"
)

// Settings is the importer configuration file.
type Settings struct {
	ChunkSize  int    `yaml:"chunk_size"`
	LedgerCap  int    `yaml:"ledger_cap"`
	PreviewCap int    `yaml:"preview_cap"`
	Zone       string `yaml:"zone"`    // service time zone, defines the calendar day
	DBPath     string `yaml:"db_path"` // SQLite database path
}

// Load reads settings from a YAML file and applies defaults. An empty
// path yields pure defaults.
func Load(path string) (Settings, error) {
	var s Settings
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Settings{}, fmt.Errorf("load settings: %w", err)
		}
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Settings{}, fmt.Errorf("parse settings: %w", err)
		}
	}
	s.ApplyDefaults()
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// ApplyDefaults fills zero values with the pipeline defaults.
func (s *Settings) ApplyDefaults() {
	if s.ChunkSize == 0 {
		s.ChunkSize = 50
	}
	if s.LedgerCap == 0 {
		s.LedgerCap = report.DefaultLedgerCap
	}
	if s.PreviewCap == 0 {
		s.PreviewCap = report.DefaultPreviewCap
	}
	if s.Zone == "" {
		s.Zone = "America/Los_Angeles"
	}
	if s.DBPath == "" {
		s.DBPath = "attend.db"
	}
}

// Validate rejects settings no run could proceed with.
func (s *Settings) Validate() error {
	if s.ChunkSize < 1 {
		return fmt.Errorf("%w: chunk_size must be positive", internalerr.ErrInvalidConfig)
	}
	if s.LedgerCap < 1 {
		return fmt.Errorf("%w: ledger_cap must be positive", internalerr.ErrInvalidConfig)
	}
	if s.PreviewCap < 1 {
		return fmt.Errorf("%w: preview_cap must be positive", internalerr.ErrInvalidConfig)
	}
	if s.PreviewCap > s.LedgerCap {
		return fmt.Errorf("%w: preview_cap cannot exceed ledger_cap", internalerr.ErrInvalidConfig)
	}
	return nil
}
