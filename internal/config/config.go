package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const envPrefix = "HUBICITO"

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api" validate:"required"`
	Gin      *GinConfig      `mapstructure:"gin" validate:"required"`
	Postgres *PostgresConfig `mapstructure:"postgres" validate:"required"`
	Storage  *StorageConfig  `mapstructure:"storage" validate:"required"`
	Mail     *MailConfig     `mapstructure:"mail" validate:"required"`
	Forms    *FormsConfig    `mapstructure:"forms" validate:"required"`
}

type APIConfig struct {
	Environment        string        `mapstructure:"environment" validate:"required,oneof=development staging production test"`
	Port               string        `mapstructure:"port" validate:"required,numeric"`
	BaseURL            string        `mapstructure:"base_url" validate:"required"`
	LogLevel           string        `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
	JWTSigningKey      string        `mapstructure:"jwt_signing_key" validate:"required,min=16"`
	JWTExpiration      time.Duration `mapstructure:"jwt_expiration" validate:"required"`
	AllowedCORSDomains []string      `mapstructure:"allowed_cors_domains"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode" validate:"required,oneof=debug release test"`
}

type PostgresConfig struct {
	Host        string `mapstructure:"host" validate:"required"`
	Port        string `mapstructure:"port" validate:"required,numeric"`
	User        string `mapstructure:"user" validate:"required"`
	Password    string `mapstructure:"password"`
	DB          string `mapstructure:"db" validate:"required"`
	SSLMode     string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-ca verify-full"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

// StorageConfig selects where presentation files are kept. The "local" driver
// writes under LocalRoot and serves them from PublicBaseURL.
type StorageConfig struct {
	Driver        string `mapstructure:"driver" validate:"required,oneof=local oss"`
	Bucket        string `mapstructure:"bucket" validate:"required"`
	LocalRoot     string `mapstructure:"local_root" validate:"required_if=Driver local"`
	PublicBaseURL string `mapstructure:"public_base_url" validate:"required"`
	MaxUploadSize int64  `mapstructure:"max_upload_size" validate:"gt=0"`

	OSSEndpoint        string `mapstructure:"oss_endpoint" validate:"required_if=Driver oss"`
	OSSAccessKeyID     string `mapstructure:"oss_access_key_id" validate:"required_if=Driver oss"`
	OSSAccessKeySecret string `mapstructure:"oss_access_key_secret" validate:"required_if=Driver oss"`
}

type MailConfig struct {
	Driver      string `mapstructure:"driver" validate:"required,oneof=console sendgrid"`
	FromName    string `mapstructure:"from_name" validate:"required"`
	FromAddress string `mapstructure:"from_address" validate:"required,email"`
	SendgridKey string `mapstructure:"sendgrid_key" validate:"required_if=Driver sendgrid"`
}

type FormsConfig struct {
	IdleTTL time.Duration `mapstructure:"idle_ttl" validate:"required"`
}

func (c *PostgresConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DB, sslMode)
}

// Load reads the YAML file at path. Any key can be overridden by an
// environment variable such as HUBICITO_API_PORT.
func Load(path string) (*AppConfig, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}

	return decode(v)
}

// Watch calls onChange with the freshly decoded config every time the file at
// path is written. Invalid intermediate states are handed to onErr.
func Watch(path string, onChange func(conf *AppConfig), onErr func(err error)) error {
	v, err := newViper(path)
	if err != nil {
		return err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}

		conf, err := decode(v)
		if err != nil {
			onErr(fmt.Errorf("config.Watch(%s) -> %w", e.Name, err))
			return
		}
		onChange(conf)
	})
	v.WatchConfig()

	return nil
}

func newViper(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api.log_level", "info")
	v.SetDefault("api.jwt_expiration", 24*time.Hour)
	v.SetDefault("storage.bucket", "presentations")
	v.SetDefault("storage.max_upload_size", 20<<20)
	v.SetDefault("forms.idle_ttl", 2*time.Hour)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig(%s) -> %w", path, err)
	}

	return v, nil
}

func decode(v *viper.Viper) (*AppConfig, error) {
	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if err := validator.New().Struct(conf); err != nil {
		return nil, fmt.Errorf("invalid config -> %w", err)
	}

	return conf, nil
}
