package handler

import (
	"net/http"
	"workforce-analytics/internal/repository"
	"workforce-analytics/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	anomalyService *service.AnomalyService
	patternService *service.PatternService
	healthService  *service.WorkforceHealthService
	userRepo       repository.UserRepository
	attendanceRepo repository.AttendanceRecordRepository
	geofenceRepo   repository.GeofenceRepository
	leaveRepo      repository.LeaveRequestRepository
	logger         *logrus.Logger
}

func NewHandler(
	anomalyService *service.AnomalyService,
	patternService *service.PatternService,
	healthService *service.WorkforceHealthService,
	userRepo repository.UserRepository,
	attendanceRepo repository.AttendanceRecordRepository,
	geofenceRepo repository.GeofenceRepository,
	leaveRepo repository.LeaveRequestRepository,
) *Handler {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &Handler{
		anomalyService: anomalyService,
		patternService: patternService,
		healthService:  healthService,
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
		geofenceRepo:   geofenceRepo,
		leaveRepo:      leaveRepo,
		logger:         logger,
	}
}

// RegisterRoutes настраивает маршруты API
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		analytics := api.Group("/analytics")
		{
			analytics.GET("/anomalies/attendance", h.attendanceAnomalies)
			analytics.GET("/anomalies/location", h.locationAnomalies)
			analytics.GET("/anomalies/time", h.timeAnomalies)
			analytics.GET("/patterns", h.attendancePatterns)
			analytics.GET("/trends/seasonal", h.seasonalTrends)
			analytics.GET("/insights/behavioral", h.behavioralInsights)
			analytics.GET("/health", h.workforceHealth)
			analytics.GET("/work-life-balance", h.workLifeBalance)
			analytics.GET("/dashboard", h.dashboard)
		}

		api.POST("/users", h.createUser)
		api.POST("/geofences", h.createGeofence)
		api.POST("/leave-requests", h.createLeaveRequest)
		api.POST("/attendance/check-in", h.checkIn)
		api.POST("/attendance/check-out", h.checkOut)
	}
}
