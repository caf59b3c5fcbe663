package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Vovarama1992/voci-api/internal/validation"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// ConfigPathEnvVar points at an optional YAML file layered under the environment.
const ConfigPathEnvVar = "CONFIG_PATH"

type Config struct {
	Port            string         `koanf:"port" validate:"required"`
	BasePath        string         `koanf:"base_path"`
	LogLevel        string         `koanf:"log_level" validate:"oneof=debug info warn error"`
	CORSOrigins     []string       `koanf:"cors_origins" validate:"min=1"`
	ShutdownTimeout time.Duration  `koanf:"shutdown_timeout" validate:"gt=0"`
	DB              DatabaseConfig `koanf:"db"`
}

type DatabaseConfig struct {
	Driver          string        `koanf:"driver" validate:"oneof=mysql postgres"`
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"gte=0,lte=65535"`
	Name            string        `koanf:"name" validate:"required"`
	User            string        `koanf:"user" validate:"required"`
	Pass            string        `koanf:"pass"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"gt=0"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"gte=0"`
	InitSchema      bool          `koanf:"init_schema"`
}

func defaultConfig() *Config {
	return &Config{
		Port:            "8080",
		LogLevel:        "info",
		CORSOrigins:     []string{"*"},
		ShutdownTimeout: 10 * time.Second,
		DB: DatabaseConfig{
			Driver:          DriverMySQL,
			Host:            "localhost",
			Name:            "voci_db",
			User:            "root",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: time.Hour,
		},
	}
}

// env var -> koanf path
var envMappings = map[string]string{
	"port":                 "port",
	"base_path":            "base_path",
	"log_level":            "log_level",
	"cors_origins":         "cors_origins",
	"shutdown_timeout":     "shutdown_timeout",
	"db_driver":            "db.driver",
	"db_host":              "db.host",
	"db_port":              "db.port",
	"db_name":              "db.name",
	"db_user":              "db.user",
	"db_pass":              "db.pass",
	"db_max_open_conns":    "db.max_open_conns",
	"db_max_idle_conns":    "db.max_idle_conns",
	"db_conn_max_lifetime": "db.conn_max_lifetime",
	"db_init_schema":       "db.init_schema",
}

func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// Load layers defaults, an optional YAML file and the environment (a .env
// file in the working directory is read first and never overrides variables
// that are already set).
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	if err := splitListFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.DB.Driver = strings.ToLower(cfg.DB.Driver)
	if cfg.DB.Port == 0 {
		cfg.DB.Port = defaultPort(cfg.DB.Driver)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := validation.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// listFields arrive from the environment as one comma-separated string.
var listFields = []string{"cors_origins"}

func splitListFields(k *koanf.Koanf) error {
	for _, path := range listFields {
		raw, ok := k.Get(path).(string)
		if !ok || raw == "" {
			continue
		}

		parts := make([]string, 0, strings.Count(raw, ",")+1)
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) == 0 {
			continue
		}

		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("set %s: %w", path, err)
		}
	}
	return nil
}

func defaultPort(driver string) int {
	if driver == DriverPostgres {
		return 5432
	}
	return 3306
}
