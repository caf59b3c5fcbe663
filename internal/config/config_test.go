package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for key := range envMappings {
		t.Setenv(strings.ToUpper(key), "")
		os.Unsetenv(strings.ToUpper(key))
	}
	t.Setenv(ConfigPathEnvVar, "")
	os.Unsetenv(ConfigPathEnvVar)
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %q", cfg.Port)
	}
	if cfg.DB.Driver != DriverMySQL || cfg.DB.Host != "localhost" || cfg.DB.Name != "voci_db" || cfg.DB.User != "root" || cfg.DB.Pass != "" {
		t.Errorf("unexpected db defaults: %+v", cfg.DB)
	}
	if cfg.DB.Port != 3306 {
		t.Errorf("expected mysql default port, got %d", cfg.DB.Port)
	}
	if cfg.DB.ConnMaxLifetime != time.Hour {
		t.Errorf("expected 1h lifetime, got %s", cfg.DB.ConnMaxLifetime)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"*"}) {
		t.Errorf("expected wildcard origins, got %v", cfg.CORSOrigins)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "catalog")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASS", "secret")
	t.Setenv("DB_MAX_OPEN_CONNS", "25")
	t.Setenv("DB_CONN_MAX_LIFETIME", "30s")
	t.Setenv("DB_INIT_SCHEMA", "true")
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DB.Driver != DriverPostgres || cfg.DB.Port != 5432 {
		t.Errorf("expected postgres on 5432, got %s:%d", cfg.DB.Driver, cfg.DB.Port)
	}
	if cfg.DB.Host != "db.internal" || cfg.DB.Name != "catalog" || cfg.DB.User != "app" || cfg.DB.Pass != "secret" {
		t.Errorf("unexpected credentials: %+v", cfg.DB)
	}
	if cfg.DB.MaxOpenConns != 25 || cfg.DB.ConnMaxLifetime != 30*time.Second || !cfg.DB.InitSchema {
		t.Errorf("unexpected pool settings: %+v", cfg.DB)
	}
	if cfg.Port != "9000" || cfg.LogLevel != "debug" {
		t.Errorf("unexpected server settings: port=%s level=%s", cfg.Port, cfg.LogLevel)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"https://a.example", "https://b.example"}) {
		t.Errorf("expected two origins, got %v", cfg.CORSOrigins)
	}
}

func TestLoadConfigFileUnderEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "port: \"7000\"\ndb:\n  host: filehost\n  name: filedb\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("DB_NAME", "envdb")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "7000" || cfg.DB.Host != "filehost" {
		t.Errorf("expected file values, got port=%s host=%s", cfg.Port, cfg.DB.Host)
	}
	if cfg.DB.Name != "envdb" {
		t.Errorf("expected env to win over file, got %s", cfg.DB.Name)
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "oracle")

	if _, err := Load(); err == nil {
		t.Fatal("expected validation error")
	} else if !strings.Contains(err.Error(), "db.driver") {
		t.Fatalf("expected error to name db.driver, got %v", err)
	}
}

func TestLoadSplitsCORSOrigins(t *testing.T) {
	cases := map[string][]string{
		"https://a.example":                        {"https://a.example"},
		" https://a.example , https://b.example ,": {"https://a.example", "https://b.example"},
	}

	for raw, want := range cases {
		clearEnv(t)
		t.Setenv("CORS_ORIGINS", raw)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load(%q): %v", raw, err)
		}
		if !reflect.DeepEqual(cfg.CORSOrigins, want) {
			t.Errorf("CORS_ORIGINS=%q: expected %v, got %v", raw, want, cfg.CORSOrigins)
		}
	}
}

func TestLoadKeepsYAMLOriginList(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "cors_origins:\n  - https://a.example\n  - https://b.example\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"https://a.example", "https://b.example"}) {
		t.Errorf("unexpected origins %v", cfg.CORSOrigins)
	}
}
