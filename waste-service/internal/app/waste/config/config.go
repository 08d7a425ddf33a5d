package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Groq     GroqConfig
	JWT      JWTConfig
	Admin    AdminConfig
}

type ServerConfig struct {
	Host string // Адрес хоста (по умолчанию 0.0.0.0)
	Port string // Порт сервера (по умолчанию 8082)
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// GroqConfig - настройки клиентов LLM для классификации отходов
// VisionModel принимает изображение, TextModel - текстовый fallback
type GroqConfig struct {
	APIURL      string
	APIKey      string
	VisionModel string
	TextModel   string
	Timeout     int // Таймаут запроса в секундах
}

type JWTConfig struct {
	Secret   string
	TokenTTL time.Duration
}

// AdminConfig - учетная запись администратора карты
// PasswordHash хранится как bcrypt hash, не как открытый текст
type AdminConfig struct {
	Username     string
	PasswordHash string
}

func Load() (*Config, error) {
	tokenTTL := getEnvInt("JWT_TOKEN_TTL_MINUTES", 60)

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8082"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "smartwaste"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Groq: GroqConfig{
			APIURL:      getEnv("GROQ_API_URL", "https://api.groq.com/openai/v1/chat/completions"),
			APIKey:      getEnv("GROQ_API_KEY", ""),
			VisionModel: getEnv("GROQ_VISION_MODEL", "meta-llama/llama-4-scout-17b-16e-instruct"),
			TextModel:   getEnv("GROQ_TEXT_MODEL", "llama3-70b-8192"),
			Timeout:     getEnvInt("GROQ_TIMEOUT_SECONDS", 30),
		},
		JWT: JWTConfig{
			Secret:   getEnv("JWT_SECRET", "dev-secret-change-me"),
			TokenTTL: time.Duration(tokenTTL) * time.Minute,
		},
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", "admin"),
			// При пустом hash вход администратора невозможен
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
	}, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
