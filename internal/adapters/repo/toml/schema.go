package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int            `toml:"version"`
	Records []recordSchema `toml:"records"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported journal schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

// recordSchema stores only what cannot be derived again: route and query
// fields are rebuilt from origin_url on load.
type recordSchema struct {
	OriginURL      string `toml:"origin_url,omitempty"`
	IsFirstSession bool   `toml:"is_first_session"`
	Source         string `toml:"source"`
	CapturedAt     string `toml:"captured_at"`
}
