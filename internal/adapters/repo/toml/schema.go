package toml

import (
	"fmt"

	"github.com/quantastica/qps-client/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version    int              `toml:"version"`
	Toaster    toasterSchema    `toml:"toaster"`
	Python     pythonSchema     `toml:"python"`
	Rigetti    rigettiSchema    `toml:"rigetti"`
	Translator translatorSchema `toml:"translator"`
}

type toasterSchema struct {
	Binary      string `toml:"binary"`
	VersionFlag string `toml:"version_flag"`
	RunCommand  string `toml:"run_command"`
}

type pythonSchema struct {
	Executable string `toml:"executable"`
	ListStyle  string `toml:"list_style"`
}

type rigettiSchema struct {
	CLI                 string `toml:"cli"`
	LatticesCommand     string `toml:"lattices_command"`
	ReservationsCommand string `toml:"reservations_command"`
}

type translatorSchema struct {
	Command string `toml:"command,omitempty"`
}

// applyDefaults fills every empty command with its default. The translator
// command stays empty unless set.
func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}

	defaults := toSchema(domain.DefaultProfile())
	fill(&s.Toaster.Binary, defaults.Toaster.Binary)
	fill(&s.Toaster.VersionFlag, defaults.Toaster.VersionFlag)
	fill(&s.Toaster.RunCommand, defaults.Toaster.RunCommand)
	fill(&s.Python.Executable, defaults.Python.Executable)
	fill(&s.Python.ListStyle, defaults.Python.ListStyle)
	fill(&s.Rigetti.CLI, defaults.Rigetti.CLI)
	fill(&s.Rigetti.LatticesCommand, defaults.Rigetti.LatticesCommand)
	fill(&s.Rigetti.ReservationsCommand, defaults.Rigetti.ReservationsCommand)
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported profile schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

func fill(field *string, fallback string) {
	if *field == "" {
		*field = fallback
	}
}
