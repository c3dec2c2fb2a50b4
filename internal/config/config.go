package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultBaseURL is the contact service used when nothing else is configured
const DefaultBaseURL = "https://cms-server-navy.vercel.app"

// EnvBaseURL overrides api.base_url when set
const EnvBaseURL = "CONTACTS_API_URL"

// Config holds the application configuration
type Config struct {
	API    APIConfig    `toml:"api"`
	HTTP   HTTPConfig   `toml:"http"`
	Export ExportConfig `toml:"export"`
	Log    LogConfig    `toml:"log"`
	Server ServerConfig `toml:"server"`
}

// APIConfig locates the remote contact service
type APIConfig struct {
	BaseURL string `toml:"base_url"`
}

// HTTPConfig tunes outbound requests
type HTTPConfig struct {
	// Timeout is a Go duration string; empty means no timeout
	Timeout Duration `toml:"timeout"`
}

// ExportConfig holds CSV export settings
type ExportConfig struct {
	Dir string `toml:"dir"`
}

// LogConfig holds log file settings
type LogConfig struct {
	Path string `toml:"path"`
}

// ServerConfig configures the local development service
type ServerConfig struct {
	Addr   string `toml:"addr"`
	DBPath string `toml:"db_path"`
}

// Duration lets TOML carry values like "30s"
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	if d.Duration == 0 {
		return []byte(""), nil
	}
	return []byte(d.Duration.String()), nil
}

// Dir returns the configuration directory
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}
	return filepath.Join(homeDir, ".config", "contacts-tui"), nil
}

// Default returns the default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	configDir := filepath.Join(homeDir, ".config", "contacts-tui")
	return &Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
		},
		Export: ExportConfig{
			Dir: ".",
		},
		Log: LogConfig{
			Path: filepath.Join(configDir, "contacts.log"),
		},
		Server: ServerConfig{
			Addr:   "127.0.0.1:8080",
			DBPath: filepath.Join(configDir, "devserver.db"),
		},
	}
}

// Load loads configuration from the standard location
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(filepath.Join(dir, "config.toml"))
}

// LoadFrom loads configuration from a specific path
func LoadFrom(configPath string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg.applyEnv()
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.Export.Dir = expandPath(cfg.Export.Dir)
	cfg.Log.Path = expandPath(cfg.Log.Path)
	cfg.Server.DBPath = expandPath(cfg.Server.DBPath)
	cfg.applyEnv()

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.API.BaseURL = v
	}
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}

// Save saves the configuration to the standard location
func (c *Config) Save() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	configPath := filepath.Join(dir, "config.toml")
	return configPath, c.SaveTo(configPath)
}

// SaveTo saves the configuration to a specific path
func (c *Config) SaveTo(configPath string) error {
	f, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	return nil
}
