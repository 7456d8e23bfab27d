package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type testConfig struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
}

type validatedConfig struct {
	Name string `yaml:"name"`
}

var errBadName = errors.New("name must not be empty")

func (c *validatedConfig) Validate() error {
	if c.Name == "" {
		return errBadName
	}
	return nil
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad(t *testing.T) {
	p := writeConfig(t, "name: ansuz\nport: 8080\n")
	var cfg testConfig
	if err := Load(p, &cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "ansuz" || cfg.Port != 8080 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("TEST_SITE_NAME", "expanded")
	p := writeConfig(t, "name: ${TEST_SITE_NAME}\n")
	var cfg testConfig
	if err := Load(p, &cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "expanded" {
		t.Errorf("Name = %q", cfg.Name)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	var cfg testConfig
	if err := Load(filepath.Join(t.TempDir(), "absent.yaml"), &cfg); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_RunsValidation(t *testing.T) {
	p := writeConfig(t, "name: \"\"\n")
	var cfg validatedConfig
	if err := Load(p, &cfg); !errors.Is(err, errBadName) {
		t.Errorf("err = %v, want validation failure", err)
	}
}

func TestLoadIfPresent_MissingFileKeepsDefaults(t *testing.T) {
	cfg := validatedConfig{Name: "default"}
	if err := LoadIfPresent(filepath.Join(t.TempDir(), "absent.yaml"), &cfg); err != nil {
		t.Fatalf("LoadIfPresent: %v", err)
	}
	if cfg.Name != "default" {
		t.Errorf("Name = %q", cfg.Name)
	}
}

func TestLoadIfPresent_MissingFileStillValidates(t *testing.T) {
	var cfg validatedConfig
	if err := LoadIfPresent(filepath.Join(t.TempDir(), "absent.yaml"), &cfg); !errors.Is(err, errBadName) {
		t.Errorf("err = %v, want validation failure", err)
	}
}
