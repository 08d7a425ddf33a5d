package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"smartwaste/pkg/logger"
	"smartwaste/waste-service/internal/app/waste/config"
	"smartwaste/waste-service/internal/app/waste/entity"
	"smartwaste/waste-service/internal/app/waste/handler"
	"smartwaste/waste-service/internal/app/waste/infrastructure/llm"
	"smartwaste/waste-service/internal/app/waste/repository"
	"smartwaste/waste-service/internal/app/waste/service"
	"smartwaste/waste-service/internal/app/waste/util"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logger.Init("waste-service", logLevel)

	logstashAddr := os.Getenv("LOGSTASH_ADDR")
	if logstashAddr != "" {
		if err := logger.InitLogstash(logstashAddr, "waste-service", logLevel); err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Logstash, using stdout only")
		} else {
			logger.Info().Str("logstash_addr", logstashAddr).Msg("Connected to Logstash")
		}
	}

	db, err := connectDB(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	logger.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.DBName).
		Msg("Connected to PostgreSQL")

	if err := db.AutoMigrate(&entity.WasteDetection{}); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	classifier := llm.NewVisionClient(
		cfg.Groq.APIURL,
		cfg.Groq.APIKey,
		cfg.Groq.VisionModel,
		cfg.Groq.TextModel,
		cfg.Groq.Timeout,
	)
	if cfg.Groq.APIKey == "" {
		logger.Warn().Msg("GROQ_API_KEY is not set, image classification will be unavailable")
	}

	jwtManager := util.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TokenTTL)

	detectionRepo := repository.NewDetectionRepository(db)
	wasteService := service.NewWasteService(detectionRepo, classifier)
	adminService := service.NewAdminService(cfg.Admin.Username, cfg.Admin.PasswordHash, jwtManager)

	authMiddleware := handler.NewAuthMiddleware(jwtManager)
	wasteHandler := handler.NewWasteHandler(wasteService, adminService)
	router := handler.SetupRoutes(wasteHandler, authMiddleware)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("Starting Waste Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Waste Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Waste Service stopped gracefully")
}

func connectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	var db *gorm.DB
	var err error

	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
		if err == nil {
			sqlDB, sqlErr := db.DB()
			if sqlErr != nil {
				err = sqlErr
			} else if pingErr := sqlDB.Ping(); pingErr == nil {
				return db, nil
			} else {
				err = pingErr
			}
		}

		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to PostgreSQL, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, err
}
