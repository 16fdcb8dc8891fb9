// Package config loads and saves the slate configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"slate/internal/domain"
)

// Config is the root slate configuration.
type Config struct {
	Board   BoardConfig   `yaml:"board"`
	Refresh RefreshConfig `yaml:"refresh"`
	LogFile string        `yaml:"logFile,omitempty"`
}

// BoardConfig describes where the board lives and how a fresh one is
// seeded. Column role lists only apply when the database is created.
type BoardConfig struct {
	Path        string        `yaml:"path"`
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Columns     []string      `yaml:"columns"`
	Hidden      []string      `yaml:"hidden,omitempty"`
	Started     []string      `yaml:"started,omitempty"`
	Completed   []string      `yaml:"completed,omitempty"`
	DateFormat  string        `yaml:"dateFormat,omitempty"`
	Fields      []FieldConfig `yaml:"fields,omitempty"`
}

// FieldConfig declares a custom metadata field for new boards.
type FieldConfig struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Schema converts the configured field list into the domain schema.
func (b BoardConfig) Schema() domain.CustomFieldSchema {
	if len(b.Fields) == 0 {
		return nil
	}
	schema := make(domain.CustomFieldSchema, 0, len(b.Fields))
	for _, f := range b.Fields {
		schema = append(schema, domain.CustomFieldDef{Name: f.Name, Type: domain.FieldType(f.Type)})
	}
	return schema
}

// RefreshConfig controls the periodic board refresh.
type RefreshConfig struct {
	IntervalMs int `yaml:"intervalMs"`
}

// Interval returns the refresh interval in milliseconds, with a floor so
// a zero or negative setting cannot spin the refresh loop.
func (r RefreshConfig) Interval() int {
	if r.IntervalMs < 250 {
		return 5000
	}
	return r.IntervalMs
}

// DefaultConfig returns the starter configuration.
func DefaultConfig() *Config {
	return &Config{
		Board: BoardConfig{
			Path:       "slate.db",
			Name:       "Slate",
			Columns:    []string{"Backlog", "Todo", "In Progress", "Done"},
			Started:    []string{"In Progress"},
			Completed:  []string{"Done"},
			DateFormat: domain.DefaultDateFormat,
		},
		Refresh: RefreshConfig{IntervalMs: 5000},
	}
}

// DefaultPath returns the config file location, honoring SLATE_CONFIG.
func DefaultPath() string {
	if p := os.Getenv("SLATE_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "slate.yaml"
	}
	return filepath.Join(home, ".config", "slate", "config.yaml")
}

// Load reads and parses the config file at the given path. A missing file
// yields the defaults rather than an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to the given path, creating parent directories.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) validate() error {
	if c.Board.Path == "" {
		return fmt.Errorf("board.path is required")
	}
	if len(c.Board.Columns) == 0 {
		return fmt.Errorf("board.columns must list at least one column")
	}
	known := make(map[string]bool, len(c.Board.Columns))
	for _, col := range c.Board.Columns {
		known[col] = true
	}
	for _, group := range [][]string{c.Board.Hidden, c.Board.Started, c.Board.Completed} {
		for _, col := range group {
			if !known[col] {
				return fmt.Errorf("column %q is flagged but not listed in board.columns", col)
			}
		}
	}
	for _, f := range c.Board.Fields {
		switch domain.FieldType(f.Type) {
		case domain.FieldBoolean, domain.FieldDate, domain.FieldNumber, domain.FieldString:
		default:
			return fmt.Errorf("field %q has unknown type %q", f.Name, f.Type)
		}
	}
	return nil
}
