package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	CORS      CORSConfig
	Maps      MapsConfig
	Artifacts ArtifactsConfig
}

type ServerConfig struct {
	Port int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Enabled reports whether a Redis host was configured at all. The cache is
// optional; without it every endpoint still works, just uncached.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

type CORSConfig struct {
	AllowedOrigins string
}

type MapsConfig struct {
	APIKey string
}

// ArtifactsConfig points at the flat-file artifacts the service reads at
// startup: the training dataset, the serialized model and the GTFS routes
// file used by the generator.
type ArtifactsConfig struct {
	DataPath   string
	ModelPath  string
	RoutesPath string
}

func LoadConfig() (*Config, error) {
	// Pick up a local .env if present; the real environment always wins.
	_ = godotenv.Load()

	serverPort, err := getIntEnv("SERVER_PORT", 8000)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	redisPort, err := getIntEnv("REDIS_PORT", 6379)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_PORT: %w", err)
	}

	redisDB, err := getIntEnv("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: serverPort,
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     redisPort,
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Maps: MapsConfig{
			APIKey: getEnv("GOOGLE_MAPS_API_KEY", ""),
		},
		Artifacts: ArtifactsConfig{
			DataPath:   getEnv("DATA_PATH", "transport_data.csv"),
			ModelPath:  getEnv("MODEL_PATH", "delay_model.gob"),
			RoutesPath: getEnv("GTFS_ROUTES_PATH", "data/gtfs/routes.txt"),
		},
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getIntEnv(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}
