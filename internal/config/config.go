package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config centraliza a configuração carregada do ambiente.
type Config struct {
	Port            int
	BackendURL      string
	UploadsBaseURL  string
	RedisURL        string
	JWTSecret       string
	SessionTTL      time.Duration
	BackendTimeout  time.Duration
	AllowOrigins    []string
	RateLimitPublic RateLimitConfig
	RateLimitLogin  RateLimitConfig
	DefaultLocale   string
	CountryID       int64
	RootID          int64
}

// RateLimitConfig representa limites simples para throttling.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load carrega variáveis de ambiente e aplica defaults seguros.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 {
		return nil, errors.New("PORT inválida")
	}
	cfg.Port = port

	cfg.BackendURL = strings.TrimRight(strings.TrimSpace(getEnv("BACKEND_URL", "")), "/")
	if cfg.BackendURL == "" {
		return nil, errors.New("BACKEND_URL obrigatório")
	}

	cfg.UploadsBaseURL = strings.TrimRight(strings.TrimSpace(getEnv("UPLOADS_BASE_URL", cfg.BackendURL+"/uploads")), "/")

	cfg.RedisURL = getEnv("REDIS_URL", "")
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL obrigatório")
	}

	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", ""))
	if len(cfg.JWTSecret) < 32 {
		return nil, errors.New("JWT_SECRET deve ter pelo menos 32 caracteres")
	}

	sessionTTL, err := parseDurationEnv("SESSION_TTL", 12*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.SessionTTL = sessionTTL

	backendTimeout, err := parseDurationEnv("BACKEND_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.BackendTimeout = backendTimeout

	allowOrigins := strings.Split(getEnv("ALLOW_ORIGINS", ""), ",")
	cfg.AllowOrigins = nil
	for _, origin := range allowOrigins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
		}
	}

	cfg.RateLimitPublic = RateLimitConfig{RequestsPerSecond: 10, Burst: 20}
	cfg.RateLimitLogin = RateLimitConfig{RequestsPerSecond: 2, Burst: 5}

	cfg.DefaultLocale = strings.TrimSpace(getEnv("DEFAULT_LOCALE", "en"))
	if cfg.DefaultLocale == "" {
		cfg.DefaultLocale = "en"
	}

	countryID, err := parseInt64Env("COUNTRY_ID", 1)
	if err != nil {
		return nil, err
	}
	cfg.CountryID = countryID

	rootID, err := parseInt64Env("ROOT_ID", 1)
	if err != nil {
		return nil, err
	}
	cfg.RootID = rootID

	return cfg, nil
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	val := getEnv(key, "")
	if val == "" {
		return def, nil
	}
	dur, err := time.ParseDuration(val)
	if err != nil {
		return 0, errors.New(key + " inválido")
	}
	return dur, nil
}

func parseInt64Env(key string, def int64) (int64, error) {
	val := getEnv(key, "")
	if val == "" {
		return def, nil
	}
	parsed, err := strconv.ParseInt(val, 10, 64)
	if err != nil || parsed <= 0 {
		return 0, errors.New(key + " inválido")
	}
	return parsed, nil
}
