package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFile_Valid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("dsn: postgres://localhost/edi\nlog_format: json\nworkers: 8\noutput_dir: out\n"), 0644)

	var c Config
	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if c.DSN != "postgres://localhost/edi" {
		t.Errorf("unexpected dsn: %q", c.DSN)
	}
	if c.LogFormat != "json" {
		t.Errorf("unexpected log format: %q", c.LogFormat)
	}
	if c.Workers != 8 {
		t.Errorf("unexpected workers: %d", c.Workers)
	}
	if c.OutputDir != "out" {
		t.Errorf("unexpected output dir: %q", c.OutputDir)
	}
}

func TestLoadFromFile_FlagsWin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("dsn: postgres://file/db\nworkers: 8\n"), 0644)

	c := Config{DSN: "postgres://flag/db", Workers: 2}
	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if c.DSN != "postgres://flag/db" {
		t.Errorf("file overrode flag dsn: %q", c.DSN)
	}
	if c.Workers != 2 {
		t.Errorf("file overrode flag workers: %d", c.Workers)
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	var c Config
	err := c.LoadFromFile("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFromFile_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("workers: [not a number\n"), 0644)

	var c Config
	if err := c.LoadFromFile(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestApplyDefaults(t *testing.T) {
	var c Config
	c.ApplyDefaults()
	if c.LogFormat != "text" {
		t.Errorf("default log format: %q", c.LogFormat)
	}
	if c.Workers != 4 {
		t.Errorf("default workers: %d", c.Workers)
	}

	c = Config{LogFormat: "json", Workers: 16}
	c.ApplyDefaults()
	if c.LogFormat != "json" || c.Workers != 16 {
		t.Errorf("defaults clobbered explicit values: %+v", c)
	}
}

func TestValidate(t *testing.T) {
	c := Config{LogFormat: "text", Workers: 4}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	c.LogFormat = "xml"
	if err := c.Validate(); err == nil {
		t.Error("expected error for bad log format")
	}

	c = Config{LogFormat: "json", Workers: 0}
	if err := c.Validate(); err == nil {
		t.Error("expected error for zero workers")
	}
}

func TestValidateWithDSN(t *testing.T) {
	c := Config{LogFormat: "text", Workers: 1}
	if err := c.ValidateWithDSN(); err == nil {
		t.Fatal("expected error for missing dsn")
	}
	c.DSN = "postgres://localhost/edi"
	if err := c.ValidateWithDSN(); err != nil {
		t.Fatalf("ValidateWithDSN: %v", err)
	}
}
