package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var AppEnv Config

type Config struct {
	Port              string `envconfig:"PORT" default:"8080"`
	Storage           string `envconfig:"STORAGE" default:"mongo"`
	MongoURI          string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	DBName            string `envconfig:"DB_NAME" default:"groceryStoreDb"`
	MongoTransactions bool   `envconfig:"MONGO_TRANSACTIONS" default:"true"`
	SeedDemoData      bool   `envconfig:"SEED_DEMO_DATA" default:"true"`
	JWTSecret         string `envconfig:"JWT_SECRET" default:""`
	AccessTokenTTLMin int    `envconfig:"ACCESS_TOKEN_TTL" default:"20"`
	RefreshTokenTTLD  int    `envconfig:"REFRESH_TOKEN_TTL" default:"7"`
	CartBackend       string `envconfig:"CART_BACKEND" default:"mongo"`
	RedisAddr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword     string `envconfig:"REDIS_PASSWORD" default:""`
	CartTTLHours      int    `envconfig:"CART_TTL" default:"720"`
	RabbitMQURL       string `envconfig:"RABBITMQ_URL" default:""`
	OrderExchange     string `envconfig:"ORDER_EXCHANGE" default:"grocery_orders"`
	LogLevel          string `envconfig:"LOG_LEVEL" default:"info"`

	AccessTokenTTL  time.Duration `ignored:"true"`
	RefreshTokenTTL time.Duration `ignored:"true"`
	CartTTL         time.Duration `ignored:"true"`
}

// Load reads .env (if present) and the process environment into AppEnv.
func Load() error {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return err
	}
	cfg.normalize()
	AppEnv = cfg
	return nil
}

func (c *Config) normalize() {
	c.Storage = strings.ToLower(strings.TrimSpace(c.Storage))
	c.CartBackend = strings.ToLower(strings.TrimSpace(c.CartBackend))
	c.AccessTokenTTL = positiveDuration(c.AccessTokenTTLMin, 20, time.Minute)
	c.RefreshTokenTTL = positiveDuration(c.RefreshTokenTTLD, 7, 24*time.Hour)
	c.CartTTL = positiveDuration(c.CartTTLHours, 720, time.Hour)
}

func positiveDuration(value, defaultValue int, unit time.Duration) time.Duration {
	if value > 0 {
		return time.Duration(value) * unit
	}
	return time.Duration(defaultValue) * unit
}
