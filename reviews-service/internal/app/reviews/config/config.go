package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	Groq    GroqConfig
}

type ServerConfig struct {
	Host string // Адрес хоста (по умолчанию 0.0.0.0)
	Port string // Порт сервера (по умолчанию 8081)
}

type MongoDBConfig struct {
	URI      string // URI подключения к MongoDB
	Database string // Имя базы данных
}

// RedisConfig - настройки Redis для кеширования сводки тональности
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration // TTL кеша сводки тональности
}

type KafkaConfig struct {
	Brokers []string // Список брокеров Kafka (формат: host:port)
	Topic   string   // Топик для сырых отзывов (reviews)
}

// GroqConfig - настройки клиента LLM для анализа тональности
// При пустом APIKey удалённый анализ отключен, отзывы сохраняются без тональности
type GroqConfig struct {
	APIURL  string // URL chat-completions endpoint
	APIKey  string // API ключ (Bearer)
	Model   string // Имя модели для анализа тональности
	Timeout int    // Таймаут запроса в секундах
}

func Load() (*Config, error) {
	cacheTTL := getEnvInt("REDIS_SUMMARY_TTL_SECONDS", 60)

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8081"),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "smartwaste"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      time.Duration(cacheTTL) * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:   getEnv("KAFKA_TOPIC", "reviews"),
		},
		Groq: GroqConfig{
			APIURL:  getEnv("GROQ_API_URL", "https://api.groq.com/openai/v1/chat/completions"),
			APIKey:  getEnv("GROQ_API_KEY", ""),
			Model:   getEnv("GROQ_SENTIMENT_MODEL", "meta-llama/llama-4-maverick-17b-128e-instruct"),
			Timeout: getEnvInt("GROQ_TIMEOUT_SECONDS", 10),
		},
	}, nil
}

func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Address возвращает адрес Redis в формате host:port
func (c *RedisConfig) Address() string {
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
