package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/menutrail"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "menutrail.yaml"

// Sources of menu links.
const (
	SourceDir   = "dir"
	SourceRedis = "redis"
)

// Redis holds the connection settings of the redis source.
type Redis struct {
	Addr     string `yaml:"addr" json:"addr"`
	Password string `yaml:"password" json:"password"`
	DB       int    `yaml:"db" json:"db"`
	Prefix   string `yaml:"prefix" json:"prefix"`
}

// Config is the CLI configuration file.
type Config struct {
	Source    string                `yaml:"source" json:"source"`
	Dir       string                `yaml:"dir" json:"dir"`
	Redis     Redis                 `yaml:"redis" json:"redis"`
	FrontPage string                `yaml:"front_page" json:"front_page"`
	Listen    string                `yaml:"listen" json:"listen"`
	LogLevel  string                `yaml:"log_level" json:"log_level"`
	Block     menutrail.BlockConfig `yaml:"block" json:"block"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Source:   SourceDir,
		Dir:      ".",
		Redis:    Redis{Addr: "localhost:6379", Prefix: "menutrail:"},
		Listen:   ":8080",
		LogLevel: "info",
	}
}

// Load reads a configuration file (YAML or JSON) over the defaults.
// A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	return cfg, cfg.Validate()
}

// Validate checks the source selection.
func (c Config) Validate() error {
	switch c.Source {
	case SourceDir:
		if c.Dir == "" {
			return fmt.Errorf("source %q requires dir", c.Source)
		}
	case SourceRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("source %q requires redis.addr", c.Source)
		}
	default:
		return fmt.Errorf("unknown source %q (want %q or %q)", c.Source, SourceDir, SourceRedis)
	}
	return nil
}
