package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"PerevalPassService/config"
	delivery "PerevalPassService/internal/delivery/http"
	"PerevalPassService/internal/repository/postgres"
	"PerevalPassService/internal/repository/redis"
	"PerevalPassService/internal/service"
	"PerevalPassService/pkg/database"
	"PerevalPassService/pkg/logger"
	"PerevalPassService/pkg/server"

	"go.uber.org/zap"
)

// Версия сервиса
const (
	ServiceVersion = "1.0.0"
)

func main() {
	// Инициализация логгера
	log := logger.NewLogger()
	log.Info("Запуск сервиса перевалов", zap.String("version", ServiceVersion))

	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Не удалось загрузить конфигурацию", zap.Error(err))
	}

	// Определение номеров портов
	appPort := cfg.App.Port
	healthPort := appPort + 100
	metricsPort := appPort + 200

	// Создаем механизм graceful shutdown
	gracefulShutdown := server.NewGracefulShutdown(log, 30*time.Second)

	// Подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Postgres)
	if err != nil {
		log.Fatal("Не удалось подключиться к PostgreSQL", zap.Error(err))
	}
	log.Info("Подключение к PostgreSQL установлено")

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Не удалось получить экземпляр SQL DB", zap.Error(err))
	}
	gracefulShutdown.AddShutdownFunc(func(ctx context.Context) error {
		log.Info("Закрытие соединения с PostgreSQL")
		return sqlDB.Close()
	})

	// Подключение к Redis
	redisClient, err := database.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Fatal("Не удалось подключиться к Redis", zap.Error(err))
	}
	log.Info("Подключение к Redis установлено")

	gracefulShutdown.AddShutdownFunc(func(ctx context.Context) error {
		log.Info("Закрытие соединения с Redis")
		return redisClient.Close()
	})

	// Запускаем сервер для метрик Prometheus
	metricsServer := server.MetricsServer(strconv.Itoa(metricsPort))
	gracefulShutdown.AddShutdownFunc(func(ctx context.Context) error {
		log.Info("Остановка сервера метрик")
		return metricsServer.Shutdown(ctx)
	})

	// Инициализация репозиториев
	userRepo := postgres.NewUserRepository(db)
	perevalRepo := postgres.NewPerevalRepository(db)
	cacheRepo := redis.NewCacheRepository(redisClient)

	// Инициализация сервисов
	userService := service.NewUserService(userRepo, log)
	submitService := service.NewSubmitService(perevalRepo, cacheRepo, log, cfg.App.LinkBase())

	// Инициализация HTTP сервера
	handler := delivery.NewSubmitHandler(submitService, userService, log)
	router := delivery.NewRouter(handler, log)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", appPort),
		Handler: router,
	}

	// Запускаем сервис проверки здоровья
	healthChecker := database.NewHealthChecker(db, redisClient, log)
	healthCheck := server.NewHealthCheck(healthChecker, log, ServiceVersion)
	healthCheck.StartServer(healthPort)
	gracefulShutdown.AddShutdownFunc(func(ctx context.Context) error {
		log.Info("Остановка сервера проверки здоровья")
		return healthCheck.Stop(ctx)
	})

	gracefulShutdown.AddShutdownFunc(func(ctx context.Context) error {
		log.Info("Остановка HTTP сервера")
		return httpServer.Shutdown(ctx)
	})

	// Запуск HTTP сервера в отдельной горутине
	go func() {
		log.Info("Запуск HTTP сервера", zap.Int("port", appPort))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Не удалось запустить сервер", zap.Error(err))
		}
	}()

	hostname, _ := os.Hostname()
	log.Info("Сервис успешно запущен",
		zap.Int("app_port", appPort),
		zap.Int("health_port", healthPort),
		zap.Int("metrics_port", metricsPort),
		zap.String("version", ServiceVersion),
		zap.Int("pid", os.Getpid()),
		zap.String("hostname", hostname))

	// Ожидаем сигнала остановки
	gracefulShutdown.Wait()
	log.Info("Завершение работы сервиса выполнено")
}
