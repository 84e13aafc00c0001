package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/flexprice/invoicer/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Postgres   PostgresConfig
	S3         S3Config
	Cache      CacheConfig
	Sentry     SentryConfig
	Render     RenderConfig `validate:"required"`
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type PostgresConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime_minutes"`
}

type S3Config struct {
	Enabled             bool           `mapstructure:"enabled"`
	Region              string         `mapstructure:"region"`
	InvoiceBucketConfig S3BucketConfig `mapstructure:"invoice"`
}

type S3BucketConfig struct {
	Bucket                string `mapstructure:"bucket"`
	PresignExpiryDuration string `mapstructure:"presign_expiry_duration"`
	KeyPrefix             string `mapstructure:"key_prefix"`
}

type CacheConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

// RenderConfig drives the invoice document renderer
type RenderConfig struct {
	DefaultVariant string               `mapstructure:"default_variant" validate:"required"`
	PageWidth      float64              `mapstructure:"page_width" validate:"gt=0,finite"`
	PageHeight     float64              `mapstructure:"page_height" validate:"gt=0,finite"`
	OverflowPolicy types.OverflowPolicy `mapstructure:"overflow_policy" validate:"required,oneof=reject overlap"`
	GlyphSize      int                  `mapstructure:"glyph_size" validate:"gt=0,lte=4096"`
	GlyphTimeout   time.Duration        `mapstructure:"glyph_timeout"`
	Concurrency    int                  `mapstructure:"concurrency" validate:"gte=1"`
	CacheTTL       time.Duration        `mapstructure:"cache_ttl"`
}

func NewConfig() (*Configuration, error) {
	// A local .env feeds the INVOICER_ overrides below; it is optional
	if err := godotenv.Load(); err == nil {
		fmt.Println("Loaded environment from .env")
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/invoicer")

	v.SetEnvPrefix("INVOICER")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
		fmt.Printf("No config file found, using defaults and environment: %v\n", err)
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	d := GetDefaultConfig()
	v.SetDefault("deployment.mode", d.Deployment.Mode)
	v.SetDefault("server.address", d.Server.Address)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("sentry.enabled", d.Sentry.Enabled)
	v.SetDefault("sentry.environment", d.Sentry.Environment)
	v.SetDefault("sentry.sample_rate", d.Sentry.SampleRate)
	v.SetDefault("render.default_variant", d.Render.DefaultVariant)
	v.SetDefault("render.page_width", d.Render.PageWidth)
	v.SetDefault("render.page_height", d.Render.PageHeight)
	v.SetDefault("render.overflow_policy", d.Render.OverflowPolicy)
	v.SetDefault("render.glyph_size", d.Render.GlyphSize)
	v.SetDefault("render.glyph_timeout", d.Render.GlyphTimeout)
	v.SetDefault("render.concurrency", d.Render.Concurrency)
	v.SetDefault("render.cache_ttl", d.Render.CacheTTL)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	if err := validate.RegisterValidation("finite", validateFinite); err != nil {
		return err
	}
	return validate.Struct(c)
}

// validateFinite rejects +Inf, -Inf and NaN, which viper parses from "inf" and "nan"
func validateFinite(fl validator.FieldLevel) bool {
	v := fl.Field().Float()
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts or other non-web applications
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Cache:      CacheConfig{Enabled: true},
		Sentry:     SentryConfig{Environment: "local", SampleRate: 1.0},
		Render: RenderConfig{
			DefaultVariant: "template1",
			// A4 in points
			PageWidth:      595.28,
			PageHeight:     841.89,
			OverflowPolicy: types.OverflowPolicyReject,
			GlyphSize:      300,
			GlyphTimeout:   2 * time.Second,
			Concurrency:    4,
			CacheTTL:       30 * time.Minute,
		},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
