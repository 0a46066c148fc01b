package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration of codepad. Every field has a default,
// so a missing file is equivalent to an empty one.
type Config struct {
	Editor     EditorConfig     `yaml:"editor"`
	Completion CompletionConfig `yaml:"completion"`
	Storage    StorageConfig    `yaml:"storage"`
	Log        LogConfig        `yaml:"log"`
}

// EditorConfig drives layer metrics, indentation and history.
type EditorConfig struct {
	TabSize      int      `yaml:"tab_size"`
	FontFamily   string   `yaml:"font_family"`
	FontSize     float64  `yaml:"font_size"`
	LineHeight   float64  `yaml:"line_height"`
	LineNumbers  bool     `yaml:"line_numbers"`
	ReadOnly     bool     `yaml:"read_only"`
	Theme        string   `yaml:"theme"`
	HistoryLimit int      `yaml:"history_limit"`
	HistoryIdle  Duration `yaml:"history_idle"`
}

// CompletionConfig configures the model-backed completion and formatter.
type CompletionConfig struct {
	Enabled   bool     `yaml:"enabled"`
	Model     string   `yaml:"model"`
	APIKey    string   `yaml:"api_key"`
	BaseURL   string   `yaml:"base_url"`
	MaxTokens int64    `yaml:"max_tokens"`
	Debounce  Duration `yaml:"debounce"`
	Timeout   Duration `yaml:"timeout"`
	MinLength int      `yaml:"min_length"`
}

// StorageConfig locates the suggestion table database.
type StorageConfig struct {
	Database string `yaml:"database"`
}

// LogConfig locates log files.
type LogConfig struct {
	Dir   string `yaml:"dir"`
	Level string `yaml:"level"`
}

// Duration is a time.Duration written as a Go duration string ("1500ms").
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	d.Duration = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Default returns the built-in configuration.
func Default() Config {
	dataDir := DataDir()
	return Config{
		Editor: EditorConfig{
			TabSize:      2,
			FontFamily:   "ui-monospace, SFMono-Regular, Menlo, Consolas, monospace",
			FontSize:     14,
			LineHeight:   1.5,
			LineNumbers:  true,
			Theme:        "monokai",
			HistoryLimit: 500,
		},
		Completion: CompletionConfig{
			Enabled:   true,
			Model:     "claude-sonnet-4-20250514",
			MaxTokens: 256,
			Debounce:  Duration{1500 * time.Millisecond},
			Timeout:   Duration{10 * time.Second},
			MinLength: 10,
		},
		Storage: StorageConfig{
			Database: filepath.Join(dataDir, "tables.db"),
		},
		Log: LogConfig{
			Dir:   filepath.Join(dataDir, "logs"),
			Level: "info",
		},
	}
}

// DataDir returns ~/.local/share/codepad, falling back to a relative
// directory when the home directory cannot be resolved.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "codepad")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".codepad"
	}
	return filepath.Join(home, ".local", "share", "codepad")
}

// DefaultPath returns the config file location. CODEPAD_CONFIG wins over the
// XDG location.
func DefaultPath() string {
	if p := os.Getenv("CODEPAD_CONFIG"); p != "" {
		return p
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "codepad", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "codepad.yaml"
	}
	return filepath.Join(home, ".config", "codepad", "config.yaml")
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the editor cannot work with.
func (c Config) Validate() error {
	var errs []error
	if c.Editor.TabSize < 1 || c.Editor.TabSize > 8 {
		errs = append(errs, fmt.Errorf("editor.tab_size must be between 1 and 8, got %d", c.Editor.TabSize))
	}
	if c.Editor.FontSize <= 0 {
		errs = append(errs, fmt.Errorf("editor.font_size must be positive"))
	}
	if c.Editor.LineHeight <= 0 {
		errs = append(errs, fmt.Errorf("editor.line_height must be positive"))
	}
	if c.Editor.HistoryLimit < 0 {
		errs = append(errs, fmt.Errorf("editor.history_limit must not be negative"))
	}
	if c.Completion.Debounce.Duration < 0 || c.Completion.Timeout.Duration < 0 {
		errs = append(errs, fmt.Errorf("completion durations must not be negative"))
	}
	if c.Completion.MinLength < 0 {
		errs = append(errs, fmt.Errorf("completion.min_length must not be negative"))
	}
	return errors.Join(errs...)
}

// Write stores cfg at path, creating parent directories.
func Write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
