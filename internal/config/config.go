// Package config loads reactcore settings: built-in defaults, then an optional
// TOML file, then REACTIONS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"

	"reactcore/pkg/reaction"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "REACTIONS_"

// Storage drivers.
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Blob drivers.
const (
	BlobMemory     = "memory"
	BlobFilesystem = "fs"
	BlobS3         = "s3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the full process configuration.
type Config struct {
	LogLevel        string  `toml:"log_level" env:"LOG_LEVEL"`
	LogFormat       string  `toml:"log_format" env:"LOG_FORMAT"`
	Branching       string  `toml:"branching" env:"BRANCHING"`
	NuclideCatalog  string  `toml:"nuclide_catalog" env:"NUCLIDE_CATALOG"`
	NuclideFallback bool    `toml:"nuclide_fallback" env:"NUCLIDE_FALLBACK"`
	Storage         Storage `toml:"storage" envPrefix:"STORAGE_"`
	Blob            Blob    `toml:"blob" envPrefix:"BLOB_"`
}

// Storage selects the rate set store.
type Storage struct {
	Driver      string `toml:"driver" env:"DRIVER"`
	SQLitePath  string `toml:"sqlite_path" env:"SQLITE_PATH"`
	PostgresDSN string `toml:"postgres_dsn" env:"POSTGRES_DSN"`
}

// Blob selects the export object store.
type Blob struct {
	Driver      string `toml:"driver" env:"DRIVER"`
	FSRoot      string `toml:"fs_root" env:"FS_ROOT"`
	S3Bucket    string `toml:"s3_bucket" env:"S3_BUCKET"`
	S3Region    string `toml:"s3_region" env:"S3_REGION"`
	S3Endpoint  string `toml:"s3_endpoint" env:"S3_ENDPOINT"`
	S3PathStyle bool   `toml:"s3_path_style" env:"S3_PATH_STYLE"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:        "info",
		LogFormat:       "console",
		Branching:       reaction.BranchingLegacy.String(),
		NuclideFallback: true,
		Storage: Storage{
			Driver:     StorageSQLite,
			SQLitePath: "reactcore.db",
		},
		Blob: Blob{
			Driver: BlobFilesystem,
			FSRoot: "./blobdata",
		},
	}
}

// Load builds the configuration from defaults, the TOML file at path (skipped
// when path is empty) and the environment, then validates it.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	meta, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalid, path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("blob", "s3_bucket") && !meta.IsDefined("blob", "driver") {
		c.Blob.Driver = BlobS3
	}
	return nil
}

// ParseEnv applies REACTIONS_* environment overrides to target.
func ParseEnv(target *Config) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate normalizes enumerations and checks driver requirements.
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(c.LogLevel))); err != nil {
		return fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log_format %q", ErrInvalid, c.LogFormat)
	}
	mode, err := reaction.ParseBranchingMode(c.Branching)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	c.Branching = mode.String()
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case StorageMemory, StorageSQLite, StoragePostgres:
	default:
		return fmt.Errorf("%w: storage driver %q", ErrInvalid, c.Storage.Driver)
	}
	c.Blob.Driver = strings.ToLower(strings.TrimSpace(c.Blob.Driver))
	switch c.Blob.Driver {
	case BlobMemory, BlobFilesystem:
	case BlobS3:
		if c.Blob.S3Bucket == "" {
			return fmt.Errorf("%w: blob driver s3 requires s3_bucket", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: blob driver %q", ErrInvalid, c.Blob.Driver)
	}
	return nil
}

// BranchingMode returns the parsed branching mode. Call after Validate.
func (c Config) BranchingMode() reaction.BranchingMode {
	mode, _ := reaction.ParseBranchingMode(c.Branching)
	return mode
}
