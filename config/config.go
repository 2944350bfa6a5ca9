// Package config loads optional engine settings from a TOML file. Every
// field has a sane default, so the absence of a config file (the common
// case for a UCI engine launched by a GUI) is not an error.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the engine's tunable ambient settings: table size is otherwise
// set by UCI's setoption and search depth by "go depth", but a config file
// lets someone running the binary directly fix them without scripting UCI
// input.
type Config struct {
	HashSizeMB   int    `toml:"hash_size_mb"`
	DefaultDepth int    `toml:"default_depth"`
	LogLevel     string `toml:"log_level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		HashSizeMB:   64,
		DefaultDepth: 0, // 0 means "no fixed depth limit"
		LogLevel:     "WARNING",
	}
}

// Load reads path as TOML over Default's values; fields absent from the file
// keep their default. A missing file is not an error — Load returns the
// defaults unchanged — but a malformed file is.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
