package card_ga

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds the initial parameters of a run.
type Config struct {
	PopulationSize int     `toml:"population_size"`
	MaxGenerations int     `toml:"max_generations"`
	MutationRate   float64 `toml:"mutation_rate"`
	WinScore       int     `toml:"win_score"`
	Seed           int64   `toml:"seed"`
	Trace          bool    `toml:"trace"`
	History        bool    `toml:"history"`
}

func DefaultConfig() *Config {
	return &Config{
		PopulationSize: DefaultPopulationSize,
		MaxGenerations: DefaultMaxGenerations,
		MutationRate:   DefaultMutationRate,
		WinScore:       DefaultWinScore,
		Seed:           0, // 0 = time seeded
		Trace:          true,
	}
}

// LoadConfig decodes a TOML file over the defaults, so keys left out of the
// file keep their default values.
func LoadConfig(path string) (*Config, error) {
	conffile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Unable to load card_ga config: %w", err)
	}
	defer conffile.Close()

	config := DefaultConfig()
	if _, err = toml.NewDecoder(conffile).Decode(config); err != nil {
		return nil, fmt.Errorf("Failed to unmarshal config %s: %w", path, err)
	}
	return config, nil
}

func (c *Config) Validate() error {
	if c.PopulationSize < 1 {
		return fmt.Errorf("%w: population_size must be at least 1, got %d", ErrInvalidConfig, c.PopulationSize)
	}
	if c.MaxGenerations < 1 {
		return fmt.Errorf("%w: max_generations must be at least 1, got %d", ErrInvalidConfig, c.MaxGenerations)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("%w: mutation_rate must be in [0, 1], got %v", ErrInvalidConfig, c.MutationRate)
	}
	if c.WinScore < 1 {
		return fmt.Errorf("%w: win_score must be at least 1, got %d", ErrInvalidConfig, c.WinScore)
	}
	return nil
}
