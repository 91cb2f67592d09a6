package field

import "strconv"

// Config controls minefield dimensions, mine budget and layout seed.
type Config struct {
	Width  int
	Height int

	// Mines is the target mine count. It is clamped only by the number
	// of candidate cells at layout time, never validated up front.
	Mines int

	Seed int64
}

// DefaultConfig returns the standard configuration (intermediate board).
func DefaultConfig() Config {
	return Config{
		Width:  16,
		Height: 16,
		Mines:  40,
		Seed:   1337,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["mines"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Mines = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	return c
}
