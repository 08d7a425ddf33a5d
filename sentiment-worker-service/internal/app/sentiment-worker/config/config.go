package config

import (
	"os"
	"strconv"
	"time"
)

// Config содержит все настройки приложения Sentiment Worker Service
// Включает конфигурацию для MongoDB, Redis, Kafka и LLM API
type Config struct {
	Server       ServerConfig
	MongoDB      MongoDBConfig
	Redis        RedisConfig
	Kafka        KafkaConfig
	Groq         GroqConfig
	CronSchedule CronScheduleConfig
}

// ServerConfig - HTTP сервер для health checks и метрик
type ServerConfig struct {
	Host string
	Port string
}

// MongoDBConfig - подключение к базе отзывов Reviews Service
// Используется для дозаполнения тональности по cron
type MongoDBConfig struct {
	URI      string
	Database string
}

// RedisConfig - настройки подключения к Redis
// Хранит поток оценённых отзывов и кеш сводки тональности
type RedisConfig struct {
	Host       string
	Port       string
	Password   string
	DB         int
	SummaryTTL time.Duration // TTL кеша сводки тональности
	StreamCap  int64         // Размер ленты последних оценённых отзывов
}

// KafkaConfig - настройки Kafka для подписки на сырые отзывы
type KafkaConfig struct {
	Brokers  []string // Список брокеров Kafka (формат: host:port)
	Topic    string   // Топик с сырыми отзывами (reviews)
	GroupID  string   // ID группы потребителей для распределения нагрузки
	MinBytes int      // Минимум байт для fetch запроса
	MaxBytes int      // Максимум байт для fetch запроса
}

// GroqConfig - настройки клиента LLM для дозаполнения тональности
type GroqConfig struct {
	APIURL  string
	APIKey  string
	Model   string
	Timeout int // Таймаут запроса в секундах
}

// CronScheduleConfig - настройки расписания cron задач
type CronScheduleConfig struct {
	Backfill string // Расписание дозаполнения тональности (по умолчанию каждые 10 минут)
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	summaryTTL := getEnvInt("REDIS_SUMMARY_TTL_SECONDS", 60)
	streamCap := getEnvInt("REDIS_SCORED_STREAM_CAP", 100)

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8083"),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "smartwaste"),
		},
		Redis: RedisConfig{
			Host:       getEnv("REDIS_HOST", "localhost"),
			Port:       getEnv("REDIS_PORT", "6379"),
			Password:   getEnv("REDIS_PASSWORD", ""),
			DB:         getEnvInt("REDIS_DB", 1), // Отдельная БД для потока оценённых отзывов
			SummaryTTL: time.Duration(summaryTTL) * time.Second,
			StreamCap:  int64(streamCap),
		},
		Kafka: KafkaConfig{
			Brokers:  []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:    getEnv("KAFKA_TOPIC", "reviews"),
			GroupID:  getEnv("KAFKA_GROUP_ID", "smartwaste-sentiment-worker"),
			MinBytes: getEnvInt("KAFKA_MIN_BYTES", 1),    // 1 byte minimum
			MaxBytes: getEnvInt("KAFKA_MAX_BYTES", 10e6), // 10MB maximum
		},
		Groq: GroqConfig{
			APIURL:  getEnv("GROQ_API_URL", "https://api.groq.com/openai/v1/chat/completions"),
			APIKey:  getEnv("GROQ_API_KEY", ""),
			Model:   getEnv("GROQ_SENTIMENT_MODEL", "meta-llama/llama-4-maverick-17b-128e-instruct"),
			Timeout: getEnvInt("GROQ_TIMEOUT_SECONDS", 10),
		},
		CronSchedule: CronScheduleConfig{
			// По умолчанию дозаполняем тональность каждые 10 минут
			Backfill: getEnv("CRON_BACKFILL_SCHEDULE", "*/10 * * * *"),
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
