package engine

import "runtime"

// Config holds all parameters for one image generation.
type Config struct {
	Width    int
	Height   int
	MinDepth int
	MaxDepth int
	Pool     string
	Seed     int64 // 0 = random
	Workers  int
	Format   string // "png", "jpeg", "bmp" or "tiff"
	Quality  int    // jpeg only
	Verbose  bool
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Width:    350,
		Height:   350,
		MinDepth: 7,
		MaxDepth: 9,
		Pool:     "classic",
		Seed:     0, // 0 = random
		Workers:  runtime.GOMAXPROCS(0),
		Format:   FormatPNG,
		Quality:  90,
		Verbose:  false,
	}
}
