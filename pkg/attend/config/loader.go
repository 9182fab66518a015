package config

import (
	"fmt"

	"github.com/harborlight/attend/pkg/attend/catalog"
	"github.com/harborlight/attend/pkg/attend/ingest"
)

// Loader resolves settings into ready pipeline components.
type Loader struct {
	SettingsPath string
}

// Components holds everything an Importer needs besides the store.
type Components struct {
	Settings   Settings
	Dates      *ingest.DateNormalizer
	Programs   *catalog.ProgramCatalog
	SpecialIDs *catalog.SpecialIDCatalog
}

// Load reads the settings file and constructs the components.
func (l *Loader) Load() (*Components, error) {
	settings, err := Load(l.SettingsPath)
	if err != nil {
		return nil, err
	}

	dates, err := ingest.LoadDateNormalizer(settings.Zone)
	if err != nil {
		return nil, fmt.Errorf("resolve zone %q: %w", settings.Zone, err)
	}

	return &Components{
		Settings:   settings,
		Dates:      dates,
		Programs:   catalog.NewProgramCatalog(),
		SpecialIDs: catalog.NewSpecialIDCatalog(),
	}, nil
}
