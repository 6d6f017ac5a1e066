package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER" env-default:""`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

// Cart controls the persisted cart mirror. Key is the storage key holding the
// serialized mapping; TTL of zero keeps the cart until it is cleared.
type Cart struct {
	Key string        `yaml:"CART_KEY" env:"CART_KEY" env-default:"cart"`
	TTL time.Duration `yaml:"CART_TTL" env:"CART_TTL" env-default:"0"`
}

type Catalog struct {
	BaseURL string `yaml:"CATALOG_BASE_URL" env:"CATALOG_BASE_URL" env-default:"http://localhost:8080/api/v1"`
}

type Orders struct {
	BaseURL string `yaml:"ORDERS_BASE_URL" env:"ORDERS_BASE_URL" env-default:"http://localhost:8080/api/v1"`
	TaxRate float64 `yaml:"TAX_RATE" env:"TAX_RATE" env-default:"0.1"`
}

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	Redis      RedisConnect `yaml:"redis"`
	Cart       Cart         `yaml:"cart"`
	Catalog    Catalog      `yaml:"catalog"`
	Orders     Orders       `yaml:"orders"`
}

func MustLoad() *Config {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "path to the configuration file")
		flag.Parse()
		configPath = *flags
	}

	var cfg Config

	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("cannot read configuration from environment: %s", err.Error())
		}

		return &cfg
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config file: %s", err.Error())
	}

	return &cfg
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s/%d", r.Username, r.Password, r.Host, r.Port, r.DB)
}
