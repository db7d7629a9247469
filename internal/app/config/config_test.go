package config

import (
	"testing"
	"time"
)

func TestLoadEnvRequiresJWTSecret(t *testing.T) {
	t.Setenv(envJWTSecret, "")
	cfg := &Config{}
	if err := cfg.loadEnv(); err == nil {
		t.Fatal("expected error without JWT secret")
	}
}

func TestLoadEnvOptionalServices(t *testing.T) {
	t.Setenv(envJWTSecret, "secret")
	t.Setenv(envRedisHost, "")
	t.Setenv(envMinIOEndpoint, "")

	cfg := &Config{}
	if err := cfg.loadEnv(); err != nil {
		t.Fatalf("loadEnv: %v", err)
	}
	if cfg.Redis.Enabled() || cfg.MinIO.Enabled() {
		t.Errorf("redis/minio enabled without env: %+v %+v", cfg.Redis, cfg.MinIO)
	}
	if cfg.JWT.ExpiresIn != time.Hour {
		t.Errorf("ExpiresIn = %v, want 1h", cfg.JWT.ExpiresIn)
	}
}

func TestLoadEnvRedisAndMinIO(t *testing.T) {
	t.Setenv(envJWTSecret, "secret")
	t.Setenv(envRedisHost, "localhost")
	t.Setenv(envRedisPort, "6379")
	t.Setenv(envMinIOEndpoint, "localhost:9000")
	t.Setenv(envMinIOBucket, "")
	t.Setenv(envMinIOUseSSL, "true")

	cfg := &Config{MinIO: MinIOConfig{Bucket: "receipts"}}
	if err := cfg.loadEnv(); err != nil {
		t.Fatalf("loadEnv: %v", err)
	}
	if cfg.Redis.Port != 6379 {
		t.Errorf("redis port = %d", cfg.Redis.Port)
	}
	if !cfg.MinIO.UseSSL || cfg.MinIO.Bucket != "receipts" {
		t.Errorf("minio = %+v", cfg.MinIO)
	}
}

func TestLoadEnvBadRedisPort(t *testing.T) {
	t.Setenv(envJWTSecret, "secret")
	t.Setenv(envRedisHost, "localhost")
	t.Setenv(envRedisPort, "six")

	cfg := &Config{}
	if err := cfg.loadEnv(); err == nil {
		t.Fatal("expected error for non-numeric redis port")
	}
}
