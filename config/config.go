package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Env         string
	Port        string
	DatabaseURL string
	// Key encrypts customer fields of orders at rest.
	Key string
	// SecretKey signs admin tokens.
	SecretKey        string
	BcryptWorkFactor int
	FrontendURL      string
	ImageDir         string
	AdminEmail       string
	SMTP             SMTP
}

type SMTP struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

func (s SMTP) Enabled() bool {
	return s.Host != "" && s.From != ""
}

func (c Config) IsTest() bool {
	return c.Env == "test"
}

// Load reads the configuration from the environment. DATABASE_URL, KEY and
// SECRET_KEY have no defaults.
func Load() (Config, error) {
	cfg := Config{
		Env:         getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "9000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Key:         os.Getenv("KEY"),
		SecretKey:   os.Getenv("SECRET_KEY"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		ImageDir:    getEnv("IMAGE_DIR", "./images"),
		AdminEmail:  os.Getenv("ADMIN_EMAIL"),
		SMTP: SMTP{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnv("SMTP_PORT", "587"),
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASS"),
			From:     os.Getenv("SMTP_FROM"),
		},
	}

	for name, v := range map[string]string{
		"DATABASE_URL": cfg.DatabaseURL,
		"KEY":          cfg.Key,
		"SECRET_KEY":   cfg.SecretKey,
	} {
		if v == "" {
			return Config{}, errors.Errorf("config: %s is not set", name)
		}
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Config{}, errors.Errorf("config: invalid PORT %q", cfg.Port)
	}

	cfg.BcryptWorkFactor = 12
	if v, ok := os.LookupEnv("BCRYPT_WORK_FACTOR"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < bcrypt.MinCost || n > bcrypt.MaxCost {
			return Config{}, errors.Errorf("config: invalid BCRYPT_WORK_FACTOR %q", v)
		}
		cfg.BcryptWorkFactor = n
	}
	if cfg.IsTest() {
		cfg.BcryptWorkFactor = bcrypt.MinCost
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
