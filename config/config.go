// Package config reads process settings from the environment, a .env
// file and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"episolve/content"
	"episolve/email"
)

const (
	defaultDatabase = "episolve.db"
	defaultPort     = "8080"
	defaultMediaDir = "media"
	defaultCacheDir = "cache"
	defaultCacheTTL = 10 * time.Minute
)

type Config struct {
	DatabaseURI string
	Port        string
	ServerURL   string
	MediaDir    string
	CacheDir    string
	CacheTTL    time.Duration
	LogLevel    string

	ResendAPIKey      string
	SMTP              email.SMTPConfig
	TeamEmail         string
	UnsubscribeSecret string

	Brand     content.Brand
	Addresses email.Addresses
}

// File is the optional YAML overlay named by CONFIG_FILE.
type File struct {
	Brand     content.Brand   `yaml:"brand"`
	Addresses email.Addresses `yaml:"addresses"`
}

// Load reads envPath (a missing file is fine) and the process environment.
// Values in the file win over the environment.
func Load(envPath string) (*Config, error) {
	envFile, err := godotenv.Read(envPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", envPath, err)
	}

	get := func(key string) string {
		if v, ok := envFile[key]; ok && v != "" {
			return v
		}
		return os.Getenv(key)
	}
	getOr := func(key, fallback string) string {
		if v := get(key); v != "" {
			return v
		}
		return fallback
	}

	cfg := &Config{
		DatabaseURI:       getOr("DATABASE_URI", getOr("sqlite_db", defaultDatabase)),
		Port:              getOr("PORT", defaultPort),
		ServerURL:         getOr("SERVER_URL", "http://localhost:"+getOr("PORT", defaultPort)),
		MediaDir:          getOr("MEDIA_DIR", defaultMediaDir),
		CacheDir:          getOr("CACHE_DIR", defaultCacheDir),
		CacheTTL:          defaultCacheTTL,
		LogLevel:          getOr("LOG_LEVEL", "info"),
		ResendAPIKey:      get("RESEND_API_KEY"),
		TeamEmail:         get("TEAM_EMAIL"),
		UnsubscribeSecret: get("UNSUBSCRIBE_SECRET"),
		SMTP: email.SMTPConfig{
			Host:     get("SMTP_HOST"),
			Port:     get("SMTP_PORT"),
			User:     get("SMTP_USER"),
			Password: get("SMTP_PASSWORD"),
		},
		Brand:     content.DefaultBrand,
		Addresses: email.DefaultAddresses,
	}

	if ttl := get("CACHE_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("CACHE_TTL: %w", err)
		}
		cfg.CacheTTL = d
	}

	if path := get("CONFIG_FILE"); path != "" {
		if err := cfg.overlay(path); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func (c *Config) overlay(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if f.Brand.Name != "" {
		c.Brand.Name = f.Brand.Name
	}
	if f.Brand.LegalName != "" {
		c.Brand.LegalName = f.Brand.LegalName
	}
	if f.Brand.Insights != "" {
		c.Brand.Insights = f.Brand.Insights
	}
	if f.Addresses.NoReply != "" {
		c.Addresses.NoReply = f.Addresses.NoReply
	}
	if f.Addresses.Notifications != "" {
		c.Addresses.Notifications = f.Addresses.Notifications
	}
	if f.Addresses.Newsletter != "" {
		c.Addresses.Newsletter = f.Addresses.Newsletter
	}
	return nil
}

// Sender picks the mail transport: Resend when an API key is set, SMTP
// when a host is set, otherwise none.
func (c *Config) Sender() email.Sender {
	switch {
	case c.ResendAPIKey != "":
		return email.NewResendSender(c.ResendAPIKey)
	case c.SMTP.Host != "":
		return email.NewSMTPSender(c.SMTP)
	}
	return nil
}

// Notifier builds the mail notifier around sender, usually c.Sender().
func (c *Config) Notifier(sender email.Sender, log *zap.Logger) *email.Notifier {
	return email.NewNotifier(sender, email.Config{
		Brand:             c.Brand,
		Addresses:         c.Addresses,
		TeamEmail:         c.TeamEmail,
		ServerURL:         c.ServerURL,
		UnsubscribeSecret: c.UnsubscribeSecret,
	}, log)
}

// Logger builds a production zap logger at LogLevel.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
