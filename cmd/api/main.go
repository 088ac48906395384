package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/GigiaaaChen/synapse-tasks/internal/adapters/cache"
	adapterHTTP "github.com/GigiaaaChen/synapse-tasks/internal/adapters/handler/http"
	"github.com/GigiaaaChen/synapse-tasks/internal/adapters/repository"
	"github.com/GigiaaaChen/synapse-tasks/internal/core/domain"
	"github.com/GigiaaaChen/synapse-tasks/internal/core/services"
	"github.com/GigiaaaChen/synapse-tasks/internal/core/workers"
)

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	startTime := time.Now()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbHost := envOrDefault("DB_HOST", "localhost")
	dbPort := envOrDefault("DB_PORT", "5432")
	serverPort := envOrDefault("PORT", "8080")

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("Critical: JWT_SECRET is not set")
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPass, dbHost, dbPort, dbName)

	log.Println("Connecting to database...")

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		log.Fatalf("Critical: Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("Database connected successfully.")

	redisDB, _ := strconv.Atoi(envOrDefault("REDIS_DB", "0"))
	redisClient, err := cache.NewRedisClient(cache.Config{
		Host:     envOrDefault("REDIS_HOST", "localhost"),
		Port:     envOrDefault("REDIS_PORT", "6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       redisDB,
	})
	if err != nil {
		log.Printf("Warning: redis unavailable, running without cache: %v", err)
		redisClient = nil
	}

	userRepo := repository.NewPostgresUserRepository(db)
	goalRepo := repository.NewPostgresGoalRepository(db)
	reminderRepo := repository.NewPostgresReminderRepository(db)
	sessionRepo := repository.NewPostgresSessionRepository(db)

	var taskRepo domain.TaskRepository = repository.NewPostgresTaskRepository(db)
	if redisClient != nil {
		taskRepo = repository.NewCachedTaskRepository(taskRepo, redisClient)
	}

	careWorker := workers.NewCareWorker(taskRepo, userRepo)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	careWorker.Start(workerCtx)

	authService := services.NewAuthService(userRepo)
	tokenTTL, err := time.ParseDuration(envOrDefault("SYNAPSE_TOKEN_TTL", "24h"))
	if err != nil {
		log.Printf("Warning: bad SYNAPSE_TOKEN_TTL, falling back to default: %v", err)
		tokenTTL = services.DefaultTokenTTL
	}
	tokenService := services.NewTokenService(jwtSecret, "synapse-tasks", tokenTTL, userRepo)
	taskService := services.NewTaskService(taskRepo, userRepo, time.Now)
	goalService := services.NewGoalService(goalRepo, userRepo, time.Now)
	reminderService := services.NewReminderService(taskRepo, reminderRepo, time.Now)
	statsService := services.NewStatsService(taskRepo, time.Now)
	sessionService := services.NewSessionService(sessionRepo, taskRepo, careWorker)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:     adapterHTTP.NewAuthHandler(authService, tokenService),
		TaskHandler:     adapterHTTP.NewTaskHandler(taskService, sessionService),
		GoalHandler:     adapterHTTP.NewGoalHandler(goalService),
		ReminderHandler: adapterHTTP.NewReminderHandler(reminderService),
		StatsHandler:    adapterHTTP.NewStatsHandler(statsService),
		TokenService:    tokenService,
		DB:              db,
		Redis:           redisClient,
		StartTime:       startTime,
	})

	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Synapse Tasks running on http://localhost:%s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}
