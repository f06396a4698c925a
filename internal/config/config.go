package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	STT      STTConfig
	Scoring  ScoringConfig
	Session  SessionConfig
}

type ServerConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
	MaxUploadBytes int64
}

type DatabaseConfig struct {
	URL      string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret string // empty disables authentication
}

type STTConfig struct {
	Backend       string // "openai" or "local"
	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
	LocalBaseURL  string // default: "http://localhost:8178/v1"
	LocalModel    string
	Language      string
}

type ScoringConfig struct {
	PauseThreshold float64 // seconds
	ElongationRun  int
}

type SessionConfig struct {
	Store     string // "redis" or "memory"
	KeyPrefix string
	TTL       time.Duration
}

func Load() (*Config, error) {
	port, err := getEnvInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	burst, err := getEnvInt("RATE_LIMIT_BURST", 20)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}

	rps, err := getEnvFloat("RATE_LIMIT_RPS", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}

	maxUpload, err := getEnvInt("MAX_UPLOAD_BYTES", 25<<20)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_BYTES: %w", err)
	}

	maxConns, err := getEnvInt("DB_MAX_CONNS", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	minConns, err := getEnvInt("DB_MIN_CONNS", 2)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	pauseThreshold, err := getEnvFloat("SCORING_PAUSE_THRESHOLD", 0.2)
	if err != nil {
		return nil, fmt.Errorf("invalid SCORING_PAUSE_THRESHOLD: %w", err)
	}

	elongationRun, err := getEnvInt("SCORING_ELONGATION_RUN", 3)
	if err != nil {
		return nil, fmt.Errorf("invalid SCORING_ELONGATION_RUN: %w", err)
	}

	sessionTTL, err := getEnvDuration("SESSION_TTL", 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           port,
			AllowedOrigins: strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "*"), ","),
			RateLimitRPS:   rps,
			RateLimitBurst: burst,
			MaxUploadBytes: int64(maxUpload),
		},
		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			MaxConns: maxConns,
			MinConns: minConns,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		STT: STTConfig{
			Backend:       getEnv("STT_BACKEND", "openai"),
			OpenAIKey:     getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL: getEnv("STT_OPENAI_BASE_URL", ""),
			OpenAIModel:   getEnv("STT_OPENAI_MODEL", ""),
			LocalBaseURL:  getEnv("STT_LOCAL_BASE_URL", "http://localhost:8178/v1"),
			LocalModel:    getEnv("STT_LOCAL_MODEL", ""),
			Language:      getEnv("STT_LANGUAGE", "en"),
		},
		Scoring: ScoringConfig{
			PauseThreshold: pauseThreshold,
			ElongationRun:  elongationRun,
		},
		Session: SessionConfig{
			Store:     getEnv("SESSION_STORE", "redis"),
			KeyPrefix: getEnv("SESSION_KEY_PREFIX", "fluency:session:"),
			TTL:       sessionTTL,
		},
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Validate() error {
	var problems []string
	if c.STT.Backend == "openai" && c.STT.OpenAIKey == "" {
		problems = append(problems, "OPENAI_API_KEY")
	}
	if c.STT.Backend != "openai" && c.STT.Backend != "local" {
		problems = append(problems, fmt.Sprintf("STT_BACKEND (unknown %q)", c.STT.Backend))
	}
	if c.Session.Store != "redis" && c.Session.Store != "memory" {
		problems = append(problems, fmt.Sprintf("SESSION_STORE (unknown %q)", c.Session.Store))
	}
	if c.Scoring.PauseThreshold <= 0 {
		problems = append(problems, "SCORING_PAUSE_THRESHOLD (must be positive)")
	}
	if c.Scoring.ElongationRun < 2 {
		problems = append(problems, "SCORING_ELONGATION_RUN (must be at least 2)")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid or missing env vars: %s", strings.Join(problems, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(v, 64)
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return time.ParseDuration(v)
}
