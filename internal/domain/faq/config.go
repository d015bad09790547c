package faq

import "time"

// Config holds runtime knobs for the FAQ service.
type Config struct {
	DefaultLanguage string
	Languages       []string
	SnapshotTTL     time.Duration
	TopMatches      int
}

func (c Config) defaultLanguage() string {
	if c.DefaultLanguage == "" {
		return DefaultLanguage
	}
	return c.DefaultLanguage
}

func (c Config) supports(language string) bool {
	if len(c.Languages) == 0 {
		return true
	}
	for _, candidate := range c.Languages {
		if candidate == language {
			return true
		}
	}
	return false
}
