package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"latency 2", func(c *Config) { c.Panel.Latency = 2 }, false},
		{"latency 3", func(c *Config) { c.Panel.Latency = 3 }, true},
		{"unknown painter", func(c *Config) { c.Panel.Painter = "plasma" }, true},
		{"brightness", func(c *Config) { c.Panel.Brightness = 300 }, true},
		{"batch", func(c *Config) { c.Panel.BatchTicks = 0 }, true},
		{"unknown backend", func(c *Config) { c.Output.Backend = "spi" }, true},
		{"no chip", func(c *Config) { c.Output.Chip = "" }, true},
		{"duplicate pin", func(c *Config) { c.Output.Pins.CLK = c.Output.Pins.OE }, true},
		{"none ignores pins", func(c *Config) {
			c.Output.Backend = BackendNone
			c.Output.Pins.CLK = -1
		}, false},
		{"status interval", func(c *Config) { c.Runtime.StatusInterval = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data := `{
  "panel": {"latency": 2, "painter": "address"},
  "output": {"backend": "none"},
  "runtime": {"http_addr": ":9000"}
}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if c.Panel.Latency != 2 || c.Panel.Painter != PainterAddress || c.Output.Backend != BackendNone {
		t.Errorf("LoadConfig() = %+v", c)
	}
	if c.Runtime.HTTPAddr != ":9000" {
		t.Errorf("HTTPAddr = %q", c.Runtime.HTTPAddr)
	}
	// Unset fields keep their defaults.
	if c.Panel.BatchTicks != DefaultConfig().Panel.BatchTicks || c.Output.Pins.CLK != 17 {
		t.Errorf("defaults lost: %+v", c)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadConfig(filepath.Join(dir, "missing.json")); !os.IsNotExist(err) {
		t.Errorf("LoadConfig(missing) error = %v, want not exist", err)
	}

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte(`{"panel": {"latency": 7}}`), 0o644)
	if _, err := LoadConfig(bad); !errors.Is(err, ErrInvalid) {
		t.Errorf("LoadConfig(bad) error = %v, want ErrInvalid", err)
	}

	unknown := filepath.Join(dir, "unknown.json")
	os.WriteFile(unknown, []byte(`{"grbl": {}}`), 0o644)
	if _, err := LoadConfig(unknown); err == nil {
		t.Error("LoadConfig() accepted an unknown section")
	}
}
