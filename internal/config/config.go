package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for a SmartQ client process.
type Config struct {
	BackendURL     string
	OperatorName   string
	ControlPort    string
	AllowedOrigins []string
	LogLevel       string

	// External command used to play announcement clips, e.g. "mpv".
	// Empty disables real playback (announcements are logged only).
	PlayerCommand string

	WSWriteTimeout time.Duration
	HTTPTimeout    time.Duration

	// Call flash windows for the display highlight.
	CallFlash  time.Duration
	AudioFlash time.Duration
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		BackendURL:     getEnv("BACKEND_URL", "http://localhost:8000"),
		OperatorName:   getEnv("OPERATOR_NAME", ""),
		ControlPort:    getEnv("CONTROL_PORT", "8090"),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:5173"), ","),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		PlayerCommand:  getEnv("PLAYER_COMMAND", ""),
	}

	wsWriteTimeout, err := strconv.Atoi(getEnv("WS_WRITE_TIMEOUT", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid WS_WRITE_TIMEOUT: %w", err)
	}
	config.WSWriteTimeout = time.Duration(wsWriteTimeout) * time.Second

	httpTimeout, err := strconv.Atoi(getEnv("HTTP_TIMEOUT", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	config.HTTPTimeout = time.Duration(httpTimeout) * time.Second

	callFlash, err := strconv.Atoi(getEnv("CALL_FLASH_MS", "2500"))
	if err != nil {
		return nil, fmt.Errorf("invalid CALL_FLASH_MS: %w", err)
	}
	config.CallFlash = time.Duration(callFlash) * time.Millisecond

	audioFlash, err := strconv.Atoi(getEnv("AUDIO_FLASH_MS", "3000"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUDIO_FLASH_MS: %w", err)
	}
	config.AudioFlash = time.Duration(audioFlash) * time.Millisecond

	// Trim spaces from allowed origins
	for i, origin := range config.AllowedOrigins {
		config.AllowedOrigins[i] = strings.TrimSpace(origin)
	}

	return config, nil
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
