package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points DATA_DIR at an empty temp dir and clears the overridable keys.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, key := range []string{
		"LISTEN_ADDR", "HOST_LISTEN_ADDR", "HOST_RELAY_URL", "CONFIG_FILE",
		"RELAY_QUEUE_SIZE", "RELAY_DIAL_TIMEOUT_MS", "CLICK_MAX_MS",
		"CLICK_MAX_DISTANCE", "OVERLAY_WINDOW_TITLE", "HUB_WINDOW_TITLE",
	} {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unsetenv %s: %v", key, err)
		}
	}
	t.Setenv("DATA_DIR", dir)
	return dir
}

// TestLoad_Defaults verifies defaults apply without files or env.
func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := Default()
	want.DataDir = dir
	want.ConfigFile = filepath.Join(dir, "overlay.yaml")
	if cfg != want {
		t.Fatalf("expected %+v, got %+v", want, cfg)
	}
	if cfg.ClickMaxDuration() != 200*time.Millisecond || cfg.RelayDialTimeout() != 2*time.Second {
		t.Fatalf("unexpected durations: %v %v", cfg.ClickMaxDuration(), cfg.RelayDialTimeout())
	}
}

// TestLoad_YAMLThenEnvPrecedence verifies env overrides YAML and YAML overrides defaults.
func TestLoad_YAMLThenEnvPrecedence(t *testing.T) {
	dir := isolate(t)
	yamlBody := "click_max_ms: 300\nclick_max_distance: 8.5\nhost_relay_url: \"\"\noverlay_window_title: Dot\n"
	if err := os.WriteFile(filepath.Join(dir, "overlay.yaml"), []byte(yamlBody), 0o600); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	t.Setenv("CLICK_MAX_MS", "120")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ClickMaxMs != 120 {
		t.Fatalf("expected env CLICK_MAX_MS=120, got %d", cfg.ClickMaxMs)
	}
	if cfg.ClickMaxDistance != 8.5 || cfg.OverlayWindowTitle != "Dot" {
		t.Fatalf("expected yaml values, got %+v", cfg)
	}
	if cfg.HostRelayURL != "" {
		t.Fatalf("expected yaml to disable the relay url, got %q", cfg.HostRelayURL)
	}
}

// TestLoad_EnvFile verifies .env values apply when the process env is unset.
func TestLoad_EnvFile(t *testing.T) {
	dir := isolate(t)
	body := "# overlay\nexport RELAY_QUEUE_SIZE=64\nLISTEN_ADDR=\"127.0.0.1:9000\"\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(body), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.RelayQueueSize != 64 || cfg.ListenAddr != "127.0.0.1:9000" {
		t.Fatalf("expected .env values, got %+v", cfg)
	}
}

// TestLoad_InvalidValues verifies bad numbers are rejected.
func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"CLICK_MAX_MS":       "abc",
		"CLICK_MAX_DISTANCE": "-1",
		"RELAY_QUEUE_SIZE":   "0",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			isolate(t)
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}

// TestLoad_BadYAML verifies a malformed file fails startup.
func TestLoad_BadYAML(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, "overlay.yaml"), []byte("click_max_ms: [oops"), 0o600); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	if _, err := Load(); err == nil {
		t.Fatalf("expected parse error")
	}
}

// TestParseEnvLine verifies comment, export and quoting handling.
func TestParseEnvLine(t *testing.T) {
	if _, _, ok := parseEnvLine("# comment"); ok {
		t.Fatalf("expected comment skipped")
	}
	if _, _, ok := parseEnvLine("=value"); ok {
		t.Fatalf("expected empty key skipped")
	}
	key, value, ok := parseEnvLine("export HOST_RELAY_URL='ws://h:1/ws/relay'")
	if !ok || key != "HOST_RELAY_URL" || value != "ws://h:1/ws/relay" {
		t.Fatalf("unexpected parse: %q %q %v", key, value, ok)
	}
}
