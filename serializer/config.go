package serializer

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// UnknownPolicy controls behavior for unrecognized block kinds.
type UnknownPolicy string

const (
	// UnknownRaw degrades unknown blocks to verbatim emission with a warning.
	UnknownRaw UnknownPolicy = "raw"
	// UnknownSkip drops unknown blocks with a warning.
	UnknownSkip UnknownPolicy = "skip"
	// UnknownError fails serialization on the first unknown block.
	UnknownError UnknownPolicy = "error"
)

// HighlightStyle controls how colorless highlight marks are rendered.
type HighlightStyle string

const (
	// HighlightShorthand renders #text#.
	HighlightShorthand HighlightStyle = "shorthand"
	// HighlightRole renders [.highlight]#text#.
	HighlightRole HighlightStyle = "role"
)

// Config holds serializer configuration options.
type Config struct {
	UnknownBlocks  UnknownPolicy     `json:"unknownBlocks,omitempty" yaml:"unknownBlocks,omitempty"`
	HighlightStyle HighlightStyle    `json:"highlightStyle,omitempty" yaml:"highlightStyle,omitempty"`
	LanguageMap    map[string]string `json:"languageMap,omitempty" yaml:"languageMap,omitempty"`
	Logger         *zap.Logger       `json:"-" yaml:"-"`
}

func (c Config) applyDefaults() Config {
	if c.UnknownBlocks == "" {
		c.UnknownBlocks = UnknownRaw
	}
	if c.HighlightStyle == "" {
		c.HighlightStyle = HighlightShorthand
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

// Validate checks that config values are valid.
func (c Config) Validate() error {
	if c.UnknownBlocks != UnknownRaw && c.UnknownBlocks != UnknownSkip && c.UnknownBlocks != UnknownError {
		return fmt.Errorf("invalid unknownBlocks policy %q", c.UnknownBlocks)
	}
	if c.HighlightStyle != HighlightShorthand && c.HighlightStyle != HighlightRole {
		return fmt.Errorf("invalid highlightStyle %q", c.HighlightStyle)
	}
	for from, to := range c.LanguageMap {
		if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
			return fmt.Errorf("languageMap keys and values must be non-empty")
		}
	}
	return nil
}

// clone returns a deep copy of Config for map-backed fields.
func (c Config) clone() Config {
	cloned := c
	cloned.LanguageMap = cloneStringMap(c.LanguageMap)
	return cloned
}

func cloneStringMap(src map[string]string) map[string]string {
	if src == nil {
		return nil
	}
	dst := make(map[string]string, len(src))
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
