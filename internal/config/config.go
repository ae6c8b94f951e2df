package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config is the full application configuration, read from the environment.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	Auth     AuthConfig
	PayPal   PayPalConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Driver          string // "postgres" or "sqlite"
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	SeedProducts    bool
}

// RedisConfig configures cart storage. An empty Addr keeps carts in process memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CartTTL  time.Duration
}

// RabbitMQConfig configures order events. An empty URL disables publishing.
type RabbitMQConfig struct {
	URL string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type PayPalConfig struct {
	ClientID  string
	Secret    string
	OAuthURL  string
	OrdersURL string
	Timeout   time.Duration
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=teslo port=5432 sslmode=disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 30*time.Minute)
	v.SetDefault("SEED_PRODUCTS", false)

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CART_TTL", 30*24*time.Hour)

	v.SetDefault("RABBITMQ_URL", "")

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL", 30*24*time.Hour)

	v.SetDefault("PAYPAL_CLIENT", "")
	v.SetDefault("PAYPAL_SECRET", "")
	v.SetDefault("PAYPAL_OAUTH_URL", "https://api-m.sandbox.paypal.com/v1/oauth2/token")
	v.SetDefault("PAYPAL_ORDERS_URL", "https://api-m.sandbox.paypal.com/v2/checkout/orders")
	v.SetDefault("PAYPAL_TIMEOUT", 15*time.Second)
}

// Load reads the configuration from environment variables on top of the defaults.
func Load() *Config {
	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port: v.GetString("APP_PORT"),
		},
		Database: DatabaseConfig{
			Driver:          v.GetString("DB_DRIVER"),
			DSN:             v.GetString("DATABASE_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			SeedProducts:    v.GetBool("SEED_PRODUCTS"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			CartTTL:  v.GetDuration("CART_TTL"),
		},
		RabbitMQ: RabbitMQConfig{
			URL: v.GetString("RABBITMQ_URL"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("JWT_SECRET"),
			TokenTTL:  v.GetDuration("TOKEN_TTL"),
		},
		PayPal: PayPalConfig{
			ClientID:  v.GetString("PAYPAL_CLIENT"),
			Secret:    v.GetString("PAYPAL_SECRET"),
			OAuthURL:  v.GetString("PAYPAL_OAUTH_URL"),
			OrdersURL: v.GetString("PAYPAL_ORDERS_URL"),
			Timeout:   v.GetDuration("PAYPAL_TIMEOUT"),
		},
	}
}
