package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfig_CreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected config file to be created: %v", err)
	}
	if !strings.Contains(string(data), "<DocToPPT>") {
		t.Errorf("expected XML root element, got:\n%s", data)
	}
	if cfg.Server.BaseURL != "http://localhost:5000" {
		t.Errorf("expected default base url, got %s", cfg.Server.BaseURL)
	}
	if cfg.HealthInterval() != 30*time.Second {
		t.Errorf("expected 30s interval, got %v", cfg.HealthInterval())
	}
	want := filepath.Join(filepath.Dir(path), "static", "uploads")
	if cfg.GetUploadDir() != want {
		t.Errorf("expected uploads dir %s, got %s", want, cfg.GetUploadDir())
	}
}

func TestLoadConfig_ReadsXML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.config")
	content := `<?xml version="1.0" encoding="UTF-8"?>
<DocToPPT>
  <Server>
    <BaseURL>https://convert.example.com</BaseURL>
  </Server>
  <Health>
    <IntervalSeconds>5</IntervalSeconds>
  </Health>
  <UI>
    <SubmitLabel>Convert</SubmitLabel>
  </UI>
</DocToPPT>`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.BaseURL != "https://convert.example.com" {
		t.Errorf("unexpected base url %s", cfg.Server.BaseURL)
	}
	if cfg.Server.UploadPath != "/upload" {
		t.Errorf("missing elements should keep defaults, got upload path %q", cfg.Server.UploadPath)
	}
	if cfg.HealthInterval() != 5*time.Second {
		t.Errorf("unexpected interval %v", cfg.HealthInterval())
	}
	if cfg.UI.SubmitLabel != "Convert" {
		t.Errorf("unexpected submit label %s", cfg.UI.SubmitLabel)
	}
	if cfg.UI.BusyLabel != "Sending file..." {
		t.Errorf("unexpected busy label %s", cfg.UI.BusyLabel)
	}
}

func TestLoadConfig_YAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")

	cfg := DefaultConfig()
	cfg.Server.BaseURL = "http://10.0.0.5:8080"
	cfg.Emulator.Mode = "redirect"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "baseUrl: http://10.0.0.5:8080") {
		t.Errorf("expected YAML output, got:\n%s", data)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Server.BaseURL != "http://10.0.0.5:8080" {
		t.Errorf("unexpected base url %s", loaded.Server.BaseURL)
	}
	if loaded.Emulator.Mode != "redirect" {
		t.Errorf("unexpected mode %s", loaded.Emulator.Mode)
	}
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DOCTOPPT_BASE_URL", "http://override:9000")
	t.Setenv("DOCTOPPT_LOG_LEVEL", "DEBUG")
	t.Setenv("DOCTOPPT_HEALTH_INTERVAL", "7")
	t.Setenv("DOCTOPPT_PORT", "6000")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), DefaultFileName))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.BaseURL != "http://override:9000" {
		t.Errorf("unexpected base url %s", cfg.Server.BaseURL)
	}
	if cfg.Advanced.LogLevel != "debug" {
		t.Errorf("unexpected log level %s", cfg.Advanced.LogLevel)
	}
	if cfg.Health.IntervalSeconds != 7 {
		t.Errorf("unexpected interval %d", cfg.Health.IntervalSeconds)
	}
	if cfg.GetServerAddr() != "127.0.0.1:6000" {
		t.Errorf("unexpected addr %s", cfg.GetServerAddr())
	}
}

func TestLoadConfig_BadEnvironmentValue(t *testing.T) {
	t.Setenv("DOCTOPPT_HEALTH_INTERVAL", "soon")

	if _, err := LoadConfig(filepath.Join(t.TempDir(), DefaultFileName)); err == nil {
		t.Error("expected error for non-numeric interval")
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("malformed xml", func(t *testing.T) {
		path := filepath.Join(dir, "broken.config")
		os.WriteFile(path, []byte("<DocToPPT><Server>"), 0644)
		if _, err := LoadConfig(path); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("wrong root element", func(t *testing.T) {
		path := filepath.Join(dir, "other.config")
		os.WriteFile(path, []byte("<PLCLogVisualizer></PLCLogVisualizer>"), 0644)
		if _, err := LoadConfig(path); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.yaml")
		os.WriteFile(path, []byte("server:\n  baseUrl: not a url\nhealth:\n  intervalSeconds: 0\n"), 0644)
		_, err := LoadConfig(path)
		if err == nil {
			t.Fatal("expected validation error")
		}
		for _, field := range []string{"BaseURL", "IntervalSeconds"} {
			if !strings.Contains(err.Error(), field) {
				t.Errorf("expected %s in error, got %v", field, err)
			}
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*AppConfig) {}},
		{name: "relative path", mutate: func(c *AppConfig) { c.Server.UploadPath = "upload" }, wantErr: true},
		{name: "unknown log level", mutate: func(c *AppConfig) { c.Advanced.LogLevel = "loud" }, wantErr: true},
		{name: "unknown mode", mutate: func(c *AppConfig) { c.Emulator.Mode = "xml" }, wantErr: true},
		{name: "port out of range", mutate: func(c *AppConfig) { c.Emulator.Port = 70000 }, wantErr: true},
		{name: "empty submit label", mutate: func(c *AppConfig) { c.UI.SubmitLabel = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUploadPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.StatusPath = "/v2/status"

	paths := cfg.UploadPaths()
	if paths.Status != "/v2/status" || paths.Upload != "/upload" {
		t.Errorf("unexpected paths %+v", paths)
	}
}
