package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/harborlight/attend/pkg/attend/internalerr"
)

func TestLoadDefaults(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if s.ChunkSize != 50 {
		t.Errorf("ChunkSize = %d", s.ChunkSize)
	}
	if s.Zone != "America/Los_Angeles" {
		t.Errorf("Zone = %q", s.Zone)
	}
	if s.LedgerCap != 500 || s.PreviewCap != 5 {
		t.Errorf("caps = %d/%d", s.LedgerCap, s.PreviewCap)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := "chunk_size: 10\nzone: UTC\ndb_path: /tmp/x.db\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.ChunkSize != 10 || s.Zone != "UTC" || s.DBPath != "/tmp/x.db" {
		t.Errorf("settings = %+v", s)
	}
	// Unset values still get defaults.
	if s.LedgerCap != 500 {
		t.Errorf("LedgerCap = %d", s.LedgerCap)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	s := Settings{ChunkSize: -1}
	s.ApplyDefaults()
	s.ChunkSize = -1
	if err := s.Validate(); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}

	s = Settings{}
	s.ApplyDefaults()
	s.PreviewCap = s.LedgerCap + 1
	if err := s.Validate(); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("preview > ledger should be invalid, got %v", err)
	}
}

func TestLoaderBuildsComponents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("zone: UTC\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := Loader{SettingsPath: path}
	components, err := loader.Load()
	if err != nil {
		t.Fatal(err)
	}
	if components.Dates == nil || components.Programs == nil || components.SpecialIDs == nil {
		t.Fatal("loader must construct every component")
	}
	if components.Dates.Location().String() != "UTC" {
		t.Errorf("zone = %q", components.Dates.Location())
	}
}

func TestLoaderBadZone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("zone: Not/AZone\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := (&Loader{SettingsPath: path}).Load(); err == nil {
		t.Error("unknown zone should fail the loader")
	}
}
