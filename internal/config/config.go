package config

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PORTFOLIO_"

// DefaultPath is read when no --config flag is given.
const DefaultPath = "portfolio.yml"

// Config is the top-level site configuration, corresponding to portfolio.yml.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http" koanf:"http"`
	SSH      SSHConfig      `yaml:"ssh" koanf:"ssh"`
	Database DatabaseConfig `yaml:"database" koanf:"database"`
	Content  ContentConfig  `yaml:"content" koanf:"content"`
	Session  SessionConfig  `yaml:"session" koanf:"session"`
	Gin      GinConfig      `yaml:"gin" koanf:"gin"`
}

// HTTPConfig configures the web listener.
type HTTPConfig struct {
	Addr string `yaml:"addr" koanf:"addr"`
}

// SSHConfig configures the optional SSH console.
type SSHConfig struct {
	Enabled     bool   `yaml:"enabled" koanf:"enabled"`
	Addr        string `yaml:"addr" koanf:"addr"`
	HostKeyPath string `yaml:"host_key_path" koanf:"host_key_path"`
}

// DatabaseConfig locates the SQLite file.
type DatabaseConfig struct {
	Path string `yaml:"path" koanf:"path"`
}

// ContentConfig points at an optional YAML file overriding the built-in
// portfolio content.
type ContentConfig struct {
	Path string `yaml:"path" koanf:"path"`
}

// SessionConfig controls how long idle visitors are kept in memory.
type SessionConfig struct {
	IdleTimeout time.Duration `yaml:"idle_timeout" koanf:"idle_timeout"`
}

// GinConfig selects the gin mode: debug, release or test.
type GinConfig struct {
	Mode string `yaml:"mode" koanf:"mode"`
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{Addr: ":8080"},
		SSH: SSHConfig{
			Addr:        ":2222",
			HostKeyPath: "data/ssh_host_ed25519",
		},
		Database: DatabaseConfig{Path: "data/portfolio.db"},
		Session:  SessionConfig{IdleTimeout: 30 * time.Minute},
		Gin:      GinConfig{Mode: gin.ReleaseMode},
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (PORTFOLIO_*). A missing file is not an
// error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	// PORTFOLIO_SSH_HOST_KEY_PATH -> ssh.host_key_path
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.HTTP.Addr = ":" + port
	}
	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, field, ok := strings.Cut(s, "_")
	if !ok {
		return s
	}
	return section + "." + field
}

var validGinModes = map[string]bool{
	gin.DebugMode:   true,
	gin.ReleaseMode: true,
	gin.TestMode:    true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http.addr is required")
	}
	if _, _, err := net.SplitHostPort(c.HTTP.Addr); err != nil {
		return fmt.Errorf("invalid http.addr %q: %w", c.HTTP.Addr, err)
	}
	if c.SSH.Enabled {
		if _, _, err := net.SplitHostPort(c.SSH.Addr); err != nil {
			return fmt.Errorf("invalid ssh.addr %q: %w", c.SSH.Addr, err)
		}
		if c.SSH.HostKeyPath == "" {
			return fmt.Errorf("ssh.host_key_path is required when ssh is enabled")
		}
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Session.IdleTimeout <= 0 {
		return fmt.Errorf("session.idle_timeout must be positive")
	}
	if !validGinModes[c.Gin.Mode] {
		return fmt.Errorf("invalid gin.mode %q: must be one of debug, release, test", c.Gin.Mode)
	}
	return nil
}
