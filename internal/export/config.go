package export

import (
	"errors"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the remote file store settings. Credentials are deployment
// configuration, supplied via a yaml file or environment, never hardcoded.
type Config struct {
	Host        string        `yaml:"host"`
	Port        int           `yaml:"port"`
	User        string        `yaml:"user"`
	Password    string        `yaml:"password"`
	Directory   string        `yaml:"directory"`
	DialTimeout time.Duration `yaml:"dial_timeout"`
}

// LoadConfig loads FTP configuration from the yaml file named by
// EXPORT_CONFIG, with environment fallbacks for individual values.
func LoadConfig() (Config, error) {
	cfg := Config{
		Host:        os.Getenv("EXPORT_FTP_HOST"),
		Port:        getenvIntDefault("EXPORT_FTP_PORT", 21),
		User:        os.Getenv("EXPORT_FTP_USER"),
		Password:    os.Getenv("EXPORT_FTP_PASSWORD"),
		Directory:   getenvDefault("EXPORT_FTP_DIR", "Exporty"),
		DialTimeout: 10 * time.Second,
	}

	if path := os.Getenv("EXPORT_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if cfg.Port <= 0 {
		cfg.Port = 21
	}
	if cfg.Directory == "" {
		cfg.Directory = "Exporty"
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 10 * time.Second
	}
	if cfg.Host == "" {
		return cfg, errors.New("export: ftp host required")
	}
	if cfg.User == "" {
		return cfg, errors.New("export: ftp user required")
	}
	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvIntDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
