// Package config centraliza o carregamento de configurações da aplicação.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/SamPomeroy/workforce-analytics-api/internal/core/domain"
)

type Config struct {
	Server      ServerConfig
	Redis       RedisConfig
	RateLimiter RateLimiterConfig
	Auth        AuthConfig
	LogLevel    string
}

type ServerConfig struct {
	Port string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type RateLimiterConfig struct {
	// DefaultRule cobre toda a API; AuthRule é a regra mais apertada da
	// classe de emissão de tokens.
	DefaultRule  domain.RateLimitRule
	AuthRule     domain.RateLimitRule
	StoreTimeout time.Duration
}

type AuthConfig struct {
	SecretKey   string
	TokenExpiry time.Duration
	Clients     map[string]domain.ClientCredential
}

func Load() (Config, error) {
	_ = godotenv.Load()

	server := ServerConfig{Port: getEnv("SERVER_PORT", "8080")}

	redisConfig, err := buildRedisConfig()
	if err != nil {
		return Config{}, err
	}

	rateLimiterConfig, err := buildRateLimiterConfig()
	if err != nil {
		return Config{}, err
	}

	authConfig, err := buildAuthConfig()
	if err != nil {
		return Config{}, err
	}

	return Config{
		Server:      server,
		Redis:       redisConfig,
		RateLimiter: rateLimiterConfig,
		Auth:        authConfig,
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}, nil
}

func buildRedisConfig() (RedisConfig, error) {
	host := getEnv("REDIS_HOST", "localhost")
	port, err := strconv.Atoi(getEnv("REDIS_PORT", "6379"))
	if err != nil {
		return RedisConfig{}, fmt.Errorf("invalid REDIS_PORT: %w", err)
	}
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return RedisConfig{}, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	return RedisConfig{
		Host:     host,
		Port:     port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	}, nil
}

func buildRateLimiterConfig() (RateLimiterConfig, error) {
	requests, err := strconv.Atoi(getEnv("RATE_LIMIT_REQUESTS", "100"))
	if err != nil {
		return RateLimiterConfig{}, fmt.Errorf("invalid RATE_LIMIT_REQUESTS: %w", err)
	}
	windowSeconds, err := strconv.Atoi(getEnv("RATE_LIMIT_WINDOW_SECONDS", "3600"))
	if err != nil {
		return RateLimiterConfig{}, fmt.Errorf("invalid RATE_LIMIT_WINDOW_SECONDS: %w", err)
	}

	authRequests, err := strconv.Atoi(getEnv("RATE_LIMIT_AUTH_REQUESTS", "10"))
	if err != nil {
		return RateLimiterConfig{}, fmt.Errorf("invalid RATE_LIMIT_AUTH_REQUESTS: %w", err)
	}
	authWindowSeconds, err := strconv.Atoi(getEnv("RATE_LIMIT_AUTH_WINDOW_SECONDS", "60"))
	if err != nil {
		return RateLimiterConfig{}, fmt.Errorf("invalid RATE_LIMIT_AUTH_WINDOW_SECONDS: %w", err)
	}

	storeTimeoutMs, err := strconv.Atoi(getEnv("STORE_TIMEOUT_MS", "500"))
	if err != nil {
		return RateLimiterConfig{}, fmt.Errorf("invalid STORE_TIMEOUT_MS: %w", err)
	}

	if requests <= 0 || windowSeconds <= 0 || authRequests <= 0 || authWindowSeconds <= 0 {
		return RateLimiterConfig{}, fmt.Errorf("rate limit rules must have positive values")
	}

	return RateLimiterConfig{
		DefaultRule: domain.RateLimitRule{
			Requests: requests,
			Window:   time.Duration(windowSeconds) * time.Second,
		},
		AuthRule: domain.RateLimitRule{
			Requests: authRequests,
			Window:   time.Duration(authWindowSeconds) * time.Second,
		},
		StoreTimeout: time.Duration(storeTimeoutMs) * time.Millisecond,
	}, nil
}

func buildAuthConfig() (AuthConfig, error) {
	secret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secret == "" {
		return AuthConfig{}, fmt.Errorf("SECRET_KEY is required")
	}

	expireMinutes, err := strconv.Atoi(getEnv("TOKEN_EXPIRE_MINUTES", "30"))
	if err != nil {
		return AuthConfig{}, fmt.Errorf("invalid TOKEN_EXPIRE_MINUTES: %w", err)
	}
	if expireMinutes <= 0 {
		return AuthConfig{}, fmt.Errorf("TOKEN_EXPIRE_MINUTES must be positive")
	}

	clients, err := buildClientCredentials()
	if err != nil {
		return AuthConfig{}, err
	}

	return AuthConfig{
		SecretKey:   secret,
		TokenExpiry: time.Duration(expireMinutes) * time.Minute,
		Clients:     clients,
	}, nil
}

func buildClientCredentials() (map[string]domain.ClientCredential, error) {
	raw := strings.TrimSpace(os.Getenv("CLIENTS"))
	if raw == "" {
		return map[string]domain.ClientCredential{}, nil
	}

	clients := make(map[string]domain.ClientCredential)
	items := strings.Split(raw, ",")

	for _, item := range items {
		parts := strings.Split(strings.TrimSpace(item), ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("client credential must follow SUBJECT:SECRET:ROLE: %s", item)
		}

		subject := strings.TrimSpace(parts[0])
		secret := strings.TrimSpace(parts[1])
		role, err := domain.ParseRole(strings.TrimSpace(parts[2]))
		if err != nil {
			return nil, fmt.Errorf("invalid role for client %s: %w", subject, err)
		}
		if subject == "" || secret == "" {
			return nil, fmt.Errorf("client credential must have subject and secret: %s", item)
		}

		clients[subject] = domain.ClientCredential{
			Subject: subject,
			Secret:  secret,
			Role:    role,
		}
	}

	return clients, nil
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
