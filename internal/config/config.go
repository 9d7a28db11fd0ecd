// Package config loads taskpad settings from flags, TASKPAD_* environment
// variables and .taskpad/config.yaml.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fmizzell/taskpad"
)

// Backend names a slot store implementation
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// EnvPrefix is prepended to every environment override, e.g. TASKPAD_BACKEND
const EnvPrefix = "TASKPAD"

// SQLiteFile is the database file name inside the data directory
const SQLiteFile = "taskpad.db"

// Config holds every runtime setting
type Config struct {
	DataDir         string        `yaml:"data_dir" mapstructure:"data_dir"`
	Backend         Backend       `yaml:"backend" mapstructure:"backend"`
	StorageKey      string        `yaml:"storage_key" mapstructure:"storage_key"`
	OverdueInterval time.Duration `yaml:"overdue_interval" mapstructure:"overdue_interval"`
	NoticeTTL       time.Duration `yaml:"notice_ttl" mapstructure:"notice_ttl"`
	DefaultSort     string        `yaml:"default_sort" mapstructure:"default_sort"`
	ExportDir       string        `yaml:"export_dir" mapstructure:"export_dir"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		DataDir:         ".taskpad",
		Backend:         BackendFile,
		StorageKey:      taskpad.DefaultStorageKey,
		OverdueInterval: 60 * time.Second,
		NoticeTTL:       3 * time.Second,
		DefaultSort:     string(taskpad.SortCreated),
		ExportDir:       ".",
	}
}

// SetDefaults registers the defaults on v so env and file values can override them
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("backend", string(d.Backend))
	v.SetDefault("storage_key", d.StorageKey)
	v.SetDefault("overdue_interval", d.OverdueInterval)
	v.SetDefault("notice_ttl", d.NoticeTTL)
	v.SetDefault("default_sort", d.DefaultSort)
	v.SetDefault("export_dir", d.ExportDir)
}

// NewViper returns a viper instance with defaults, env binding and the config
// file search path. cfgFile overrides the search when set.
func NewViper(cfgFile string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		// Search for config in .taskpad directory
		v.AddConfigPath(".taskpad")
		v.AddConfigPath("$HOME/.taskpad")
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile reads the config file if one is found. A missing file is not an
// error unless it was named explicitly.
func ReadFile(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	return fmt.Errorf("read config %s: %w", v.ConfigFileUsed(), err)
}

// Load decodes v into a Config through its mapstructure tags and validates it
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Backend = Backend(strings.ToLower(string(cfg.Backend)))
	cfg.DefaultSort = strings.ToLower(cfg.DefaultSort)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field
func (c Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("invalid backend %q: must be file, sqlite or memory", c.Backend)
	}
	if c.Backend != BackendMemory && strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data_dir is required for the %s backend", c.Backend)
	}
	if strings.TrimSpace(c.StorageKey) == "" {
		return errors.New("storage_key must not be empty")
	}
	if c.OverdueInterval <= 0 {
		return fmt.Errorf("overdue_interval must be positive, got %s", c.OverdueInterval)
	}
	if c.NoticeTTL <= 0 {
		return fmt.Errorf("notice_ttl must be positive, got %s", c.NoticeTTL)
	}
	if _, err := taskpad.ParseSortKey(c.DefaultSort); err != nil {
		return fmt.Errorf("default_sort: %w", err)
	}
	return nil
}

// SortKey returns the parsed default sort
func (c Config) SortKey() taskpad.SortKey {
	key, err := taskpad.ParseSortKey(c.DefaultSort)
	if err != nil {
		return taskpad.SortCreated
	}
	return key
}

// YAML renders the effective configuration in the config file format
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenSlotStore opens the configured backend. The returned Closer must be
// closed when the store is no longer used.
func OpenSlotStore(c Config) (taskpad.SlotStore, io.Closer, error) {
	switch c.Backend {
	case BackendFile:
		fs, err := taskpad.NewFileSlotStore(c.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return fs, nopCloser{}, nil
	case BackendSQLite:
		db, err := taskpad.OpenSQLiteSlotStore(filepath.Join(c.DataDir, SQLiteFile))
		if err != nil {
			return nil, nil, err
		}
		return db, db, nil
	case BackendMemory:
		return taskpad.NewMemorySlotStore(), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", c.Backend)
	}
}

// OpenStore opens the backend and loads a Store over it
func OpenStore(c Config, logger *slog.Logger, opts ...taskpad.Option) (*taskpad.Store, io.Closer, error) {
	slots, closer, err := OpenSlotStore(c)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("opened slot store", "backend", c.Backend, "data_dir", c.DataDir, "key", c.StorageKey)

	opts = append([]taskpad.Option{taskpad.WithLogger(logger)}, opts...)
	store := taskpad.NewStore(taskpad.NewSlotPersistence(slots, c.StorageKey, logger), opts...)
	return store, closer, nil
}
