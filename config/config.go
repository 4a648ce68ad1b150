package config

import (
	"os"
	"time"
)

type Config struct {
	DatabaseURL         string
	JWTSecret           string
	JWTExpiration       time.Duration
	ServerPort          string
	GeoVictoriaBaseURL  string
	GeoVictoriaUser     string
	GeoVictoriaPassword string
	GeoVictoriaTimeout  time.Duration
}

func Load() *Config {
	return &Config{
		DatabaseURL:         getEnv("DATABASE_URL", "postgresql://postgres@localhost:5432/portal_gtr"),
		JWTSecret:           getEnv("JWT_SECRET", "your-super-secret-key-change-in-production"),
		JWTExpiration:       8 * time.Hour,
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		GeoVictoriaBaseURL:  getEnv("GEOVICTORIA_BASE_URL", "https://customerapi.geovictoria.com"),
		GeoVictoriaUser:     getEnv("GEOVICTORIA_USER", ""),
		GeoVictoriaPassword: getEnv("GEOVICTORIA_PASSWORD", ""),
		GeoVictoriaTimeout:  30 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
