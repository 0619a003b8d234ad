package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/hasenbanck/korangar/internal/gameplay"
)

// Backends selectable in [client].
const (
	BackendNetwork = "network"
	BackendOffline = "offline"
)

type Config struct {
	Client  ClientConfig  `toml:"client"`
	Login   LoginConfig   `toml:"login"`
	Network NetworkConfig `toml:"network"`
	Offline OfflineConfig `toml:"offline"`
	Logging LoggingConfig `toml:"logging"`
}

type ClientConfig struct {
	Backend       string        `toml:"backend" env:"KORANGAR_BACKEND"`
	PacketVersion string        `toml:"packet_version" env:"KORANGAR_PACKET_VERSION"`
	TickRate      time.Duration `toml:"tick_rate"`
	// CharacterSlot is the slot the autopilot selects, creating a
	// character there when it is empty.
	CharacterSlot int    `toml:"character_slot" env:"KORANGAR_CHARACTER_SLOT"`
	CharacterName string `toml:"character_name" env:"KORANGAR_CHARACTER_NAME"`
}

type LoginConfig struct {
	Address  string `toml:"address" env:"KORANGAR_LOGIN_ADDRESS"`
	Username string `toml:"username" env:"KORANGAR_USERNAME"`
	Password string `toml:"password" env:"KORANGAR_PASSWORD"`
}

type NetworkConfig struct {
	Transport         string        `toml:"transport" env:"KORANGAR_TRANSPORT"` // "tcp", "websocket" or "auto"
	DialTimeout       time.Duration `toml:"dial_timeout"`
	WriteTimeout      time.Duration `toml:"write_timeout"`
	KeepAliveInterval time.Duration `toml:"keep_alive_interval"`
}

type OfflineConfig struct {
	Database           string `toml:"database" env:"KORANGAR_OFFLINE_DATABASE"`
	Library            string `toml:"library"` // empty = built-in library
	Scripts            string `toml:"scripts"` // extra Lua dialog scripts
	AutoCreateAccounts bool   `toml:"auto_create_accounts"`
}

type LoggingConfig struct {
	Level      string `toml:"level" env:"KORANGAR_LOG_LEVEL"`
	Format     string `toml:"format"` // "json" or "console"
	File       string `toml:"file"`   // empty = no log file
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// Load decodes the TOML file at path over the defaults and then applies
// KORANGAR_* environment overrides. A missing file leaves the defaults in
// place.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Version returns the configured protocol epoch.
func (c *Config) Version() gameplay.PacketVersion {
	v, _ := gameplay.ParsePacketVersion(c.Client.PacketVersion)
	return v
}

func (c *Config) validate() error {
	switch c.Client.Backend {
	case BackendNetwork, BackendOffline:
	default:
		return fmt.Errorf("config: unknown backend %q", c.Client.Backend)
	}
	if _, err := gameplay.ParsePacketVersion(c.Client.PacketVersion); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Client.TickRate <= 0 {
		return fmt.Errorf("config: tick_rate must be positive")
	}
	if c.Client.CharacterSlot < 0 {
		return fmt.Errorf("config: character_slot must not be negative")
	}
	switch c.Network.Transport {
	case "tcp", "websocket", "auto":
	default:
		return fmt.Errorf("config: unknown transport %q", c.Network.Transport)
	}
	if c.Client.Backend == BackendNetwork && c.Login.Address == "" {
		return fmt.Errorf("config: login address is required for the network backend")
	}
	if c.Client.Backend == BackendOffline && c.Offline.Database == "" {
		return fmt.Errorf("config: offline database path is required")
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Client: ClientConfig{
			Backend:       BackendOffline,
			PacketVersion: "20220406",
			TickRate:      50 * time.Millisecond,
			CharacterSlot: 0,
			CharacterName: "Korangar",
		},
		Login: LoginConfig{
			Address:  "127.0.0.1:6900",
			Username: "korangar_M",
			Password: "korangar",
		},
		Network: NetworkConfig{
			Transport:         "auto",
			DialTimeout:       5 * time.Second,
			WriteTimeout:      10 * time.Second,
			KeepAliveInterval: 10 * time.Second,
		},
		Offline: OfflineConfig{
			Database:           "korangar.db",
			AutoCreateAccounts: true,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
	}
}
