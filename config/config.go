// Package config holds the daemon configuration and its command-line
// flag bindings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"
	"go.vocdoni.io/dvote/db"
)

// Config is the payrolld daemon configuration.
type Config struct {
	DataDir     string
	DBType      string
	Host        string
	Port        int
	LogLevel    string
	LogOutput   string
	LedgerAdmin string
}

// DefaultDataDir returns ~/.payrolld, falling back to the working
// directory when the home directory cannot be resolved.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".payrolld"
	}
	return filepath.Join(home, ".payrolld")
}

// ParseFlags binds the configuration to command-line flags and parses
// them.
func ParseFlags() *Config {
	cfg := &Config{}
	flag.StringVar(&cfg.DataDir, "dataDir", DefaultDataDir(), "directory for the key-value database")
	flag.StringVar(&cfg.DBType, "dbType", db.TypePebble, "key-value database type")
	flag.StringVar(&cfg.Host, "host", "0.0.0.0", "API host to listen on")
	flag.IntVar(&cfg.Port, "port", 9090, "API port to listen on")
	flag.StringVar(&cfg.LogLevel, "logLevel", "info", "log level (debug, info, warn, error)")
	flag.StringVar(&cfg.LogOutput, "logOutput", "stdout", "log output (stdout, stderr or filepath)")
	flag.StringVar(&cfg.LedgerAdmin, "ledgerAdmin", "", "address with token mint authority (hex)")
	flag.Parse()
	return cfg
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.DataDir == "" {
		return fmt.Errorf("dataDir cannot be empty")
	}
	return nil
}
