package config

import (
	"io/fs"
	"strings"

	"detectivequest/internal/errors"
	"github.com/joho/godotenv"
)

// Config holds the settings that can come from the environment. Command line flags override them.
type Config struct {
	LogLevel string `env:"DETECTIVE_LOG_LEVEL" envDefault:"info"`
	// CasePath points at an ini case file. Empty selects the built-in mansion.
	CasePath string `env:"DETECTIVE_CASE" envDefault:""`
	// Strict makes the verdict count only the clues the player collected.
	Strict   bool   `env:"DETECTIVE_STRICT" envDefault:"false"`
	MCPAddr  string `env:"DETECTIVE_MCP_ADDR" envDefault:"127.0.0.1:8765"`
	MCPToken string `env:"DETECTIVE_MCP_TOKEN" envDefault:""`
}

// Load reads the configuration with lookupEnv, usually [os.LookupEnv].
func Load(lookupEnv func(string) (string, bool)) (*Config, error) {
	var cfg Config
	if err := Populate(&cfg, lookupEnv); err != nil {
		return nil, errors.Wrap(err, "populate config")
	}
	return &cfg, nil
}

// LoadDotEnv loads variables from the given .env files into the process environment. Missing files are ignored,
// variables that are already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return errors.Wrap(err, "load dotenv file")
		}
	}
	return nil
}

// ParseBool accepts true/false, 1/0, -1 and yes.
func ParseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "-1", "yes":
		return true
	}
	return false
}
