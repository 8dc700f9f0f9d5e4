// ABOUTME: Configuration for journl storage, logging and ingestion limits.
// ABOUTME: Reads a TOML file from the XDG config dir, falling back to defaults.

package config

import (
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendCharm  = "charm"

	// DefaultStorageKey is the key holding the persisted attachment list.
	DefaultStorageKey = "journl-media"

	DefaultMaxAttachmentBytes = 10 << 20
)

type Config struct {
	// Backend selects the persistence mirror: file, sqlite or charm.
	Backend string `toml:"backend"`

	// DataPath overrides the backend's default location on disk.
	DataPath string `toml:"data_path,omitempty"`

	StorageKey string `toml:"storage_key"`
	LogLevel   string `toml:"log_level"`

	// MaxAttachmentBytes caps a single ingested file; 0 disables the limit.
	MaxAttachmentBytes int64 `toml:"max_attachment_bytes"`

	// CharmDB names the charm kv database used by the charm backend.
	CharmDB string `toml:"charm_db"`
}

func Default() *Config {
	return &Config{
		Backend:            BackendFile,
		StorageKey:         DefaultStorageKey,
		LogLevel:           "warn",
		MaxAttachmentBytes: DefaultMaxAttachmentBytes,
		CharmDB:            "journl",
	}
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite, BackendCharm:
	default:
		return goerr.New("unknown backend", goerr.V("backend", c.Backend))
	}
	if c.StorageKey == "" {
		return goerr.New("storage key is required")
	}
	if c.Backend == BackendCharm && c.CharmDB == "" {
		return goerr.New("charm_db is required for the charm backend")
	}
	if c.MaxAttachmentBytes < 0 {
		return goerr.New("max_attachment_bytes must not be negative", goerr.V("value", c.MaxAttachmentBytes))
	}
	return nil
}

// ResolvedDataPath returns DataPath or the backend's default location.
func (c *Config) ResolvedDataPath() string {
	if c.DataPath != "" {
		return c.DataPath
	}
	switch c.Backend {
	case BackendSQLite:
		return filepath.Join(DataDir(), "journl.db")
	default:
		return DataDir()
	}
}

func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "journl")
}

func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "journl")
}

// Load reads the config at ConfigPath, returning defaults if it is missing.
func Load() (*Config, error) {
	return LoadFile(ConfigPath())
}

func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path) //nolint:gosec // Config path is user-controlled by design
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config", goerr.V("path", path))
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config", goerr.V("path", path))
	}
	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid config", goerr.V("path", path))
	}
	return cfg, nil
}

func Save(cfg *Config) error {
	return SaveFile(ConfigPath(), cfg)
}

func SaveFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return goerr.Wrap(err, "failed to create config dir")
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return goerr.Wrap(err, "failed to encode config")
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return goerr.Wrap(err, "failed to write config", goerr.V("path", path))
	}
	return nil
}

func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
