// Package config loads runtime configuration for the overlay and its host.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultListenAddr         = "127.0.0.1:8790"
	defaultHostListenAddr     = "127.0.0.1:8791"
	defaultHostRelayURL       = "ws://127.0.0.1:8791/ws/relay"
	defaultDataDir            = "./data"
	defaultConfigFile         = "overlay.yaml"
	defaultRelayQueueSize     = 256
	defaultRelayDialTimeoutMs = 2000
	defaultClickMaxMs         = 200
	defaultClickMaxDistance   = 5.0
	defaultOverlayTitle       = "Overlay Dot"
	defaultHubTitle           = "Overlay Hub"
)

// Config holds runtime configuration values.
type Config struct {
	ListenAddr         string
	HostListenAddr     string
	HostRelayURL       string
	DataDir            string
	ConfigFile         string
	RelayQueueSize     int
	RelayDialTimeoutMs int
	ClickMaxMs         int
	ClickMaxDistance   float64
	OverlayWindowTitle string
	HubWindowTitle     string
}

// fileConfig mirrors Config for the optional YAML file. Nil pointers keep defaults.
type fileConfig struct {
	ListenAddr         string   `yaml:"listen_addr"`
	HostListenAddr     string   `yaml:"host_listen_addr"`
	HostRelayURL       *string  `yaml:"host_relay_url"`
	RelayQueueSize     *int     `yaml:"relay_queue_size"`
	RelayDialTimeoutMs *int     `yaml:"relay_dial_timeout_ms"`
	ClickMaxMs         *int     `yaml:"click_max_ms"`
	ClickMaxDistance   *float64 `yaml:"click_max_distance"`
	OverlayWindowTitle string   `yaml:"overlay_window_title"`
	HubWindowTitle     string   `yaml:"hub_window_title"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ListenAddr:         defaultListenAddr,
		HostListenAddr:     defaultHostListenAddr,
		HostRelayURL:       defaultHostRelayURL,
		DataDir:            defaultDataDir,
		ConfigFile:         filepath.Join(defaultDataDir, defaultConfigFile),
		RelayQueueSize:     defaultRelayQueueSize,
		RelayDialTimeoutMs: defaultRelayDialTimeoutMs,
		ClickMaxMs:         defaultClickMaxMs,
		ClickMaxDistance:   defaultClickMaxDistance,
		OverlayWindowTitle: defaultOverlayTitle,
		HubWindowTitle:     defaultHubTitle,
	}
}

// Load reads configuration from the YAML file, DATA_DIR/.env and environment
// variables, in increasing order of precedence.
func Load() (Config, error) {
	cfg := Default()
	cfg.DataDir = envString("DATA_DIR", cfg.DataDir)

	if err := loadEnvFile(filepath.Join(cfg.DataDir, ".env")); err != nil {
		return Config{}, err
	}

	cfg.ConfigFile = envString("CONFIG_FILE", filepath.Join(cfg.DataDir, defaultConfigFile))
	if err := loadYAMLFile(cfg.ConfigFile, &cfg); err != nil {
		return Config{}, err
	}

	cfg.ListenAddr = envString("LISTEN_ADDR", cfg.ListenAddr)
	cfg.HostListenAddr = envString("HOST_LISTEN_ADDR", cfg.HostListenAddr)
	cfg.HostRelayURL = envString("HOST_RELAY_URL", cfg.HostRelayURL)
	cfg.OverlayWindowTitle = envString("OVERLAY_WINDOW_TITLE", cfg.OverlayWindowTitle)
	cfg.HubWindowTitle = envString("HUB_WINDOW_TITLE", cfg.HubWindowTitle)

	queueSize, err := envInt("RELAY_QUEUE_SIZE", cfg.RelayQueueSize)
	if err != nil {
		return Config{}, err
	}
	cfg.RelayQueueSize = queueSize

	dialTimeout, err := envInt("RELAY_DIAL_TIMEOUT_MS", cfg.RelayDialTimeoutMs)
	if err != nil {
		return Config{}, err
	}
	cfg.RelayDialTimeoutMs = dialTimeout

	clickMax, err := envInt("CLICK_MAX_MS", cfg.ClickMaxMs)
	if err != nil {
		return Config{}, err
	}
	cfg.ClickMaxMs = clickMax

	clickDist, err := envFloat("CLICK_MAX_DISTANCE", cfg.ClickMaxDistance)
	if err != nil {
		return Config{}, err
	}
	cfg.ClickMaxDistance = clickDist

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.RelayQueueSize <= 0 {
		return fmt.Errorf("RELAY_QUEUE_SIZE must be > 0")
	}
	if c.RelayDialTimeoutMs <= 0 {
		return fmt.Errorf("RELAY_DIAL_TIMEOUT_MS must be > 0")
	}
	if c.ClickMaxMs <= 0 {
		return fmt.Errorf("CLICK_MAX_MS must be > 0")
	}
	if c.ClickMaxDistance <= 0 {
		return fmt.Errorf("CLICK_MAX_DISTANCE must be > 0")
	}
	if c.ListenAddr == "" {
		return errors.New("LISTEN_ADDR is required")
	}
	return nil
}

// ClickMaxDuration returns the click time threshold.
func (c Config) ClickMaxDuration() time.Duration {
	return time.Duration(c.ClickMaxMs) * time.Millisecond
}

// RelayDialTimeout returns the host dial timeout.
func (c Config) RelayDialTimeout() time.Duration {
	return time.Duration(c.RelayDialTimeoutMs) * time.Millisecond
}

// loadYAMLFile overlays values from a YAML file. Missing files are ignored.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	if fc.ListenAddr != "" {
		cfg.ListenAddr = fc.ListenAddr
	}
	if fc.HostListenAddr != "" {
		cfg.HostListenAddr = fc.HostListenAddr
	}
	if fc.HostRelayURL != nil {
		cfg.HostRelayURL = *fc.HostRelayURL
	}
	if fc.RelayQueueSize != nil {
		cfg.RelayQueueSize = *fc.RelayQueueSize
	}
	if fc.RelayDialTimeoutMs != nil {
		cfg.RelayDialTimeoutMs = *fc.RelayDialTimeoutMs
	}
	if fc.ClickMaxMs != nil {
		cfg.ClickMaxMs = *fc.ClickMaxMs
	}
	if fc.ClickMaxDistance != nil {
		cfg.ClickMaxDistance = *fc.ClickMaxDistance
	}
	if fc.OverlayWindowTitle != "" {
		cfg.OverlayWindowTitle = fc.OverlayWindowTitle
	}
	if fc.HubWindowTitle != "" {
		cfg.HubWindowTitle = fc.HubWindowTitle
	}
	return nil
}

// envString returns an env override when present, otherwise a default.
func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envInt returns an int env override when present, otherwise a default.
func envInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

// envFloat returns a float env override when present, otherwise a default.
func envFloat(key string, def float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return value, nil
}

// loadEnvFile loads KEY=VALUE pairs from a .env file.
func loadEnvFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := parseEnvLine(line)
		if !ok {
			continue
		}
		if _, exists := os.LookupEnv(key); !exists {
			if err := os.Setenv(key, value); err != nil {
				return err
			}
		}
	}

	return nil
}

// parseEnvLine parses a single .env line into key/value.
func parseEnvLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimPrefix(line, "export ")
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}
	return key, strings.Trim(strings.TrimSpace(value), `"'`), true
}
