package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"workforce-analytics/internal/config"
	"workforce-analytics/internal/handler"
	"workforce-analytics/internal/repository"
	"workforce-analytics/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	logrus.Info("Initializing config...")
	cfg := config.GetServerConfig()
	logrus.Info("Config initialized...")

	// Инициализируем SQLite базу данных
	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true, // SQLite ограничения
	})
	if err != nil {
		logrus.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatal("Failed to get database instance:", err)
	}

	// Включаем поддержку внешних ключей (требуется для SQLite)
	_, err = sqlDB.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		logrus.Infof("Warning: Failed to enable foreign keys: %v", err)
	}

	userRepo, err := repository.NewGormUserRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create user repository")
	}

	attendanceRepo, err := repository.NewGormAttendanceRecordRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create attendance record repository")
	}

	geofenceRepo, err := repository.NewGormGeofenceRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create geofence repository")
	}

	leaveRepo, err := repository.NewGormLeaveRequestRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create leave request repository")
	}

	// Создаем аналитические сервисы
	anomalyService := service.NewAnomalyService(userRepo, attendanceRepo, geofenceRepo)
	patternService := service.NewPatternService(userRepo, attendanceRepo)
	healthService := service.NewWorkforceHealthService(userRepo, attendanceRepo, leaveRepo)

	apiHandler := handler.NewHandler(
		anomalyService,
		patternService,
		healthService,
		userRepo,
		attendanceRepo,
		geofenceRepo,
		leaveRepo,
	)

	router := gin.Default()
	apiHandler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: router,
	}

	// Обработка сигналов для graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logrus.Infof("Server listening on %s", cfg.ServerAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatal("Server failed:", err)
		}
	}()

	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Infof("Error shutting down server: %v", err)
	}

	// Закрываем соединение с БД
	if err := sqlDB.Close(); err != nil {
		logrus.Infof("Error closing database: %v", err)
	}

	logrus.Info("Server stopped gracefully")
}
