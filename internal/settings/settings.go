// Package settings holds the persisted panel preferences and the stores that
// back them.
package settings

import (
	"fmt"
	"strconv"
)

// Keys under which PanelSettings are persisted.
const (
	KeyScoreOnly   = "panel/scoreOnly"
	KeyOrientation = "panel/orientation"
	KeyLanguage    = "language/current"
)

// Languages understood by the panel.
const (
	LanguageEnglish = "English"
	LanguageItalian = "Italiano"
)

// Store is a flat string key/value store.
type Store interface {
	Get(key string) (string, bool, error)
	Put(key, value string) error
	Close() error
}

// PanelSettings is the per-session copy of the persisted preferences. It is
// passed by value; callers persist changes with Save.
type PanelSettings struct {
	ScoreOnly bool
	Mirrored  bool
	Language  string
}

// Default is used for keys missing from the store.
func Default() PanelSettings {
	return PanelSettings{Language: LanguageItalian}
}

// NormalizeLanguage maps anything other than English to the default language.
func NormalizeLanguage(s string) string {
	if s == LanguageEnglish {
		return LanguageEnglish
	}
	return LanguageItalian
}

// Load reads PanelSettings from s, falling back to Default for missing or
// malformed entries.
func Load(s Store) (PanelSettings, error) {
	out := Default()
	if v, ok, err := s.Get(KeyScoreOnly); err != nil {
		return out, fmt.Errorf("load %s: %w", KeyScoreOnly, err)
	} else if ok {
		out.ScoreOnly, _ = strconv.ParseBool(v)
	}
	if v, ok, err := s.Get(KeyOrientation); err != nil {
		return out, fmt.Errorf("load %s: %w", KeyOrientation, err)
	} else if ok {
		out.Mirrored, _ = strconv.ParseBool(v)
	}
	if v, ok, err := s.Get(KeyLanguage); err != nil {
		return out, fmt.Errorf("load %s: %w", KeyLanguage, err)
	} else if ok {
		out.Language = NormalizeLanguage(v)
	}
	return out, nil
}

// Save writes every field of p to s.
func Save(s Store, p PanelSettings) error {
	if err := s.Put(KeyScoreOnly, strconv.FormatBool(p.ScoreOnly)); err != nil {
		return fmt.Errorf("save %s: %w", KeyScoreOnly, err)
	}
	if err := s.Put(KeyOrientation, strconv.FormatBool(p.Mirrored)); err != nil {
		return fmt.Errorf("save %s: %w", KeyOrientation, err)
	}
	if err := s.Put(KeyLanguage, NormalizeLanguage(p.Language)); err != nil {
		return fmt.Errorf("save %s: %w", KeyLanguage, err)
	}
	return nil
}
