package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartwaste/sentiment-worker-service/internal/app/sentiment-worker/config"
	"smartwaste/sentiment-worker-service/internal/app/sentiment-worker/handler"
	"smartwaste/sentiment-worker-service/internal/app/sentiment-worker/processor"
	"smartwaste/sentiment-worker-service/internal/app/sentiment-worker/repository"
	"smartwaste/sentiment-worker-service/internal/app/sentiment-worker/service"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	log.Println("Starting Sentiment Worker Service...")

	// === ИНИЦИАЛИЗАЦИЯ КОНФИГУРАЦИИ ===
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Создаем основной контекст приложения
	ctx := context.Background()

	// === ПОДКЛЮЧЕНИЕ К MONGODB ===
	// Используем БД Reviews Service для дозаполнения тональности отзывов
	mongoClient, err := connectMongoDB(ctx, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect(ctx)
	log.Println("Successfully connected to MongoDB (reviews database)")

	// === ПОДКЛЮЧЕНИЕ К REDIS ===
	// Redis хранит поток оценённых отзывов и кеш сводки тональности
	redisClient, err := connectRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Successfully connected to Redis")

	// === ИНИЦИАЛИЗАЦИЯ РЕПОЗИТОРИЕВ ===
	db := mongoClient.Database(cfg.MongoDB.Database)
	reviewRepo := repository.NewReviewRepository(db)
	streamRepo := repository.NewScoredStreamRepository(redisClient, cfg.Redis.StreamCap, cfg.Redis.SummaryTTL)
	log.Println("Repositories initialized")

	// === ИНИЦИАЛИЗАЦИЯ LLM КЛИЕНТА ===
	// LLM клиент оценивает тональность отзывов без сохранённой оценки
	groqClient := service.NewGroqClient(
		cfg.Groq.APIURL,
		cfg.Groq.APIKey,
		cfg.Groq.Model,
		cfg.Groq.Timeout,
	)
	if cfg.Groq.APIKey == "" {
		log.Println("WARNING: GROQ_API_KEY is not set, backfill will use lexicon scoring only")
	}
	log.Println("Groq LLM Client initialized")

	// === ИНИЦИАЛИЗАЦИЯ СЕРВИСОВ ===
	scoringSvc := service.NewReviewScoringService(streamRepo)
	backfillSvc := service.NewBackfillService(reviewRepo, streamRepo, groqClient)
	log.Println("Services initialized")

	// === ИНИЦИАЛИЗАЦИЯ KAFKA CONSUMER ===
	kafkaConsumer := processor.NewKafkaConsumer(
		cfg.Kafka.Brokers,
		cfg.Kafka.Topic,
		cfg.Kafka.GroupID,
		cfg.Kafka.MinBytes,
		cfg.Kafka.MaxBytes,
		scoringSvc,
	)

	// Запускаем Kafka consumer
	kafkaConsumer.Start(ctx)
	defer kafkaConsumer.Stop()
	log.Printf("Kafka consumer started (topic: %s, group: %s)", cfg.Kafka.Topic, cfg.Kafka.GroupID)

	// === ИНИЦИАЛИЗАЦИЯ CRON SCHEDULER ===
	cronScheduler := processor.NewCronScheduler(backfillSvc)

	// Запускаем cron для периодического дозаполнения тональности
	if err := cronScheduler.Start(ctx, cfg.CronSchedule.Backfill); err != nil {
		log.Fatalf("Failed to start cron scheduler: %v", err)
	}
	defer cronScheduler.Stop()
	log.Printf("Cron scheduler started (schedule: %s)", cfg.CronSchedule.Backfill)

	// === ИНИЦИАЛИЗАЦИЯ HEALTHCHECK HTTP СЕРВЕРА ===
	healthHandler := handler.NewHealthCheckHandler(mongoClient, redisClient, streamRepo)

	mux := http.NewServeMux()
	healthHandler.RegisterRoutes(mux)

	// Prometheus metrics endpoint
	mux.Handle("/metrics", promhttp.Handler())

	httpServer := &http.Server{
		Addr:    cfg.Server.Address(),
		Handler: mux,
	}

	// Запускаем HTTP сервер в отдельной горутине
	go func() {
		log.Printf("Starting healthcheck HTTP server on %s...", cfg.Server.Address())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()
	log.Println("Healthcheck and metrics endpoints available:")
	log.Printf("  - GET http://localhost:%s/health", cfg.Server.Port)
	log.Printf("  - GET http://localhost:%s/health/readiness", cfg.Server.Port)
	log.Printf("  - GET http://localhost:%s/health/liveness", cfg.Server.Port)
	log.Printf("  - GET http://localhost:%s/metrics", cfg.Server.Port)

	// === ЗАПУСК ЗАВЕРШЕН ===
	log.Println("Sentiment Worker Service is running")
	log.Println("Waiting for review messages from Kafka...")
	log.Printf("Sentiment backfill will run according to schedule: %s", cfg.CronSchedule.Backfill)

	// === GRACEFUL SHUTDOWN ===
	// Ожидаем сигнала завершения (SIGINT или SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down Sentiment Worker Service...")

	// Даем время на завершение обработки текущих сообщений
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Ждем завершения обработки
	<-shutdownCtx.Done()

	log.Println("Sentiment Worker Service stopped gracefully")
}

// connectMongoDB устанавливает соединение с MongoDB
func connectMongoDB(ctx context.Context, cfg config.MongoDBConfig) (*mongo.Client, error) {
	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(10).
		SetMinPoolSize(2).
		SetConnectTimeout(10 * time.Second)

	var client *mongo.Client
	var err error

	// Retry logic для устойчивости при запуске в Docker
	for i := 0; i < 10; i++ {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		client, err = mongo.Connect(connectCtx, clientOptions)
		if err == nil {
			if pingErr := client.Ping(connectCtx, nil); pingErr == nil {
				cancel()
				return client, nil
			} else {
				err = pingErr
			}
		}
		cancel()
		log.Printf("Failed to connect to MongoDB (attempt %d/10): %v", i+1, err)
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}

// connectRedis устанавливает соединение с Redis
func connectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	// Проверяем соединение с retry logic
	for i := 0; i < 10; i++ {
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		log.Printf("Failed to connect to Redis (attempt %d/10)", i+1)
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect to Redis after 10 attempts")
}
