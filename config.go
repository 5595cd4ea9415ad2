package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/o0olele/geocull/octree"
)

// Config is the service configuration, read from a TOML file. Fields missing
// from the file keep their defaults.
type Config struct {
	Listen    string `toml:"listen"`
	StaticDir string `toml:"static_dir"`
	// DataDir holds the snapshot files of /api/save and /api/load.
	DataDir  string `toml:"data_dir"`
	LogLevel string `toml:"log_level"`

	CORS   CORSConfig   `toml:"cors"`
	Cache  CacheConfig  `toml:"cache"`
	Octree OctreeConfig `toml:"octree"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

type CacheConfig struct {
	// Frustums is the number of plane sets kept per view-projection matrix.
	Frustums int `toml:"frustums"`
}

// OctreeConfig holds the Init parameters used when /api/init leaves them out.
type OctreeConfig struct {
	Subdivide     int `toml:"subdivide"`
	MinGeometries int `toml:"min_geometries"`
	// MaxItemID bounds the item IDs accepted from clients; query results
	// are collected in a bitmap sized by the highest ID.
	MaxItemID uint32 `toml:"max_item_id"`
}

func DefaultConfig() Config {
	return Config{
		Listen:   ":8080",
		DataDir:  "data",
		LogLevel: "info",
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		Cache: CacheConfig{
			Frustums: 64,
		},
		Octree: OctreeConfig{
			Subdivide:     4,
			MinGeometries: 8,
			MaxItemID:     1<<20 - 1,
		},
	}
}

// LoadConfig reads the TOML file at path over the defaults. An empty path
// returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Listen == "" {
		return errors.New("listen address is empty")
	}
	if c.DataDir == "" {
		return errors.New("data_dir is empty")
	}
	if c.Cache.Frustums <= 0 {
		return fmt.Errorf("cache.frustums must be positive, got %d", c.Cache.Frustums)
	}
	if c.Octree.Subdivide < 0 || c.Octree.Subdivide > octree.MaxSubdivide {
		return fmt.Errorf("octree.subdivide must be in [0,%d], got %d", octree.MaxSubdivide, c.Octree.Subdivide)
	}
	if c.Octree.MinGeometries < 0 {
		return fmt.Errorf("octree.min_geometries must not be negative, got %d", c.Octree.MinGeometries)
	}
	if c.Octree.MaxItemID == 0 {
		return errors.New("octree.max_item_id must be positive")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel ("debug", "info", "warn", "error").
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}
