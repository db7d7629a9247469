package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Хранилища плана и журнала
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	ServiceHost string
	ServicePort int
	Storage     string // postgres | memory
	JWT         JWTConfig
	Redis       RedisConfig
	MinIO       MinIOConfig
}

type JWTConfig struct {
	Token         string
	ExpiresIn     time.Duration
	SigningMethod jwt.SigningMethod
}

type RedisConfig struct {
	Host          string
	Password      string
	Port          int
	User          string
	DialTimeout   time.Duration
	ReadTimeout   time.Duration
	StatisticsTTL time.Duration
}

// Enabled redis необязателен: без него нет blacklist и кэша статистики
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Enabled без MinIO загрузка чеков отвечает 501
func (c MinIOConfig) Enabled() bool {
	return c.Endpoint != ""
}

const (
	envJWTSecret = "JWT_SECRET"

	envRedisHost = "REDIS_HOST"
	envRedisPort = "REDIS_PORT"
	envRedisUser = "REDIS_USER"
	envRedisPass = "REDIS_PASSWORD"

	envMinIOEndpoint  = "MINIO_ENDPOINT"
	envMinIOAccessKey = "MINIO_ACCESS_KEY"
	envMinIOSecretKey = "MINIO_SECRET_KEY"
	envMinIOBucket    = "MINIO_BUCKET"
	envMinIOUseSSL    = "MINIO_USE_SSL"
)

func NewConfig() (*Config, error) {
	configName := "config"
	_ = godotenv.Load()
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	viper.SetConfigName(configName)
	viper.SetConfigType("toml")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")

	viper.SetDefault("ServiceHost", "0.0.0.0")
	viper.SetDefault("ServicePort", 8080)
	viper.SetDefault("Storage", StoragePostgres)
	viper.SetDefault("Redis.StatisticsTTL", 5*time.Minute)
	viper.SetDefault("MinIO.Bucket", "receipts")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if cfg.Storage != StoragePostgres && cfg.Storage != StorageMemory {
		return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}

	log.Info("config parsed")

	return cfg, nil
}

// loadEnv секреты и адреса внешних сервисов берутся из env
func (cfg *Config) loadEnv() error {
	var err error

	cfg.JWT.Token = os.Getenv(envJWTSecret)
	if cfg.JWT.Token == "" {
		return fmt.Errorf("%s is required", envJWTSecret)
	}
	if cfg.JWT.ExpiresIn == 0 {
		cfg.JWT.ExpiresIn = time.Hour
	}
	cfg.JWT.SigningMethod = jwt.SigningMethodHS256

	cfg.Redis.Host = os.Getenv(envRedisHost)
	if cfg.Redis.Enabled() {
		cfg.Redis.Port, err = strconv.Atoi(os.Getenv(envRedisPort))
		if err != nil {
			return fmt.Errorf("redis port must be int value: %w", err)
		}
		cfg.Redis.Password = os.Getenv(envRedisPass)
		cfg.Redis.User = os.Getenv(envRedisUser)
		cfg.Redis.DialTimeout = 10 * time.Second
		cfg.Redis.ReadTimeout = 10 * time.Second
	}

	if endpoint := os.Getenv(envMinIOEndpoint); endpoint != "" {
		cfg.MinIO.Endpoint = endpoint
		cfg.MinIO.AccessKey = os.Getenv(envMinIOAccessKey)
		cfg.MinIO.SecretKey = os.Getenv(envMinIOSecretKey)
		if bucket := os.Getenv(envMinIOBucket); bucket != "" {
			cfg.MinIO.Bucket = bucket
		}
		if v := os.Getenv(envMinIOUseSSL); v != "" {
			cfg.MinIO.UseSSL, err = strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("minio use ssl must be bool value: %w", err)
			}
		}
	}

	return nil
}
