package handler

import (
	"net/http"
	"strconv"
	"time"
	"workforce-analytics/internal/models"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// parseTenantID читает обязательный параметр tenant_id
func (h *Handler) parseTenantID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Query("tenant_id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant_id required"})
		return 0, false
	}
	return uint(id), true
}

// parseUserID читает обязательный параметр user_id
func (h *Handler) parseUserID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Query("user_id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id required"})
		return 0, false
	}
	return uint(id), true
}

// parseDateRange читает параметры from/to (RFC3339 или YYYY-MM-DD).
// Дата без времени в to трактуется как конец дня
func (h *Handler) parseDateRange(c *gin.Context) (time.Time, time.Time, bool) {
	from, _, err := parseTimestamp(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from", "detail": err.Error()})
		return time.Time{}, time.Time{}, false
	}

	to, toDateOnly, err := parseTimestamp(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to", "detail": err.Error()})
		return time.Time{}, time.Time{}, false
	}
	if toDateOnly {
		to = to.Add(24*time.Hour - time.Second)
	}

	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to before from"})
		return time.Time{}, time.Time{}, false
	}

	return from, to, true
}

func parseTimestamp(value string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, false, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}

func (h *Handler) attendanceAnomalies(c *gin.Context) {
	tenantID, ok := h.parseTenantID(c)
	if !ok {
		return
	}
	from, to, ok := h.parseDateRange(c)
	if !ok {
		return
	}

	anomalies, err := h.anomalyService.DetectAttendanceAnomalies(tenantID, from, to)
	if err != nil {
		h.logger.WithError(err).Error("Attendance anomaly detection failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": anomalies})
}

func (h *Handler) locationAnomalies(c *gin.Context) {
	tenantID, ok := h.parseTenantID(c)
	if !ok {
		return
	}
	from, to, ok := h.parseDateRange(c)
	if !ok {
		return
	}

	anomalies, err := h.anomalyService.DetectLocationAnomalies(tenantID, from, to)
	if err != nil {
		h.logger.WithError(err).Error("Location anomaly detection failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": anomalies})
}

func (h *Handler) timeAnomalies(c *gin.Context) {
	tenantID, ok := h.parseTenantID(c)
	if !ok {
		return
	}
	from, to, ok := h.parseDateRange(c)
	if !ok {
		return
	}

	anomalies, err := h.anomalyService.DetectTimeAnomalies(tenantID, from, to)
	if err != nil {
		h.logger.WithError(err).Error("Time anomaly detection failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": anomalies})
}

func (h *Handler) attendancePatterns(c *gin.Context) {
	tenantID, ok := h.parseTenantID(c)
	if !ok {
		return
	}
	userID, ok := h.parseUserID(c)
	if !ok {
		return
	}

	patterns, err := h.patternService.AnalyzeAttendancePatterns(tenantID, userID)
	if err != nil {
		h.logger.WithError(err).Error("Pattern analysis failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": patterns})
}

func (h *Handler) seasonalTrends(c *gin.Context) {
	tenantID, ok := h.parseTenantID(c)
	if !ok {
		return
	}

	trends, err := h.patternService.IdentifySeasonalTrends(tenantID)
	if err != nil {
		h.logger.WithError(err).Error("Seasonal trend analysis failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": trends})
}

func (h *Handler) behavioralInsights(c *gin.Context) {
	tenantID, ok := h.parseTenantID(c)
	if !ok {
		return
	}
	userID, ok := h.parseUserID(c)
	if !ok {
		return
	}

	insights, err := h.patternService.GetBehavioralInsights(tenantID, userID)
	if err != nil {
		h.logger.WithError(err).Error("Behavioral insight analysis failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": insights})
}

func (h *Handler) workforceHealth(c *gin.Context) {
	tenantID, ok := h.parseTenantID(c)
	if !ok {
		return
	}

	score, err := h.healthService.CalculateWorkforceHealthScore(tenantID)
	if err != nil {
		h.logger.WithError(err).Error("Workforce health calculation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": score})
}

func (h *Handler) workLifeBalance(c *gin.Context) {
	tenantID, ok := h.parseTenantID(c)
	if !ok {
		return
	}

	insight, err := h.healthService.GetWorkLifeBalanceInsights(tenantID)
	if err != nil {
		h.logger.WithError(err).Error("Work-life balance calculation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": insight})
}

// dashboardData - сводка по арендатору за последние 30 дней
type dashboardData struct {
	Health              *models.WorkforceHealthScore   `json:"health"`
	WorkLifeBalance     *models.WorkLifeBalanceInsight `json:"workLifeBalance"`
	AttendanceAnomalies []models.AttendanceAnomaly     `json:"attendanceAnomalies"`
	LocationAnomalies   []models.LocationAnomaly       `json:"locationAnomalies"`
	TimeAnomalies       []models.TimeAnomaly           `json:"timeAnomalies"`
	SeasonalTrends      []models.SeasonalTrend         `json:"seasonalTrends"`
}

// dashboard собирает сводку конкурентно: анализаторы не разделяют состояние,
// результаты объединяются здесь
func (h *Handler) dashboard(c *gin.Context) {
	tenantID, ok := h.parseTenantID(c)
	if !ok {
		return
	}

	to := time.Now()
	from := to.AddDate(0, 0, -30)

	var data dashboardData
	errs := make(chan error, 6)

	go func() {
		var err error
		data.Health, err = h.healthService.CalculateWorkforceHealthScore(tenantID)
		errs <- err
	}()
	go func() {
		var err error
		data.WorkLifeBalance, err = h.healthService.GetWorkLifeBalanceInsights(tenantID)
		errs <- err
	}()
	go func() {
		var err error
		data.AttendanceAnomalies, err = h.anomalyService.DetectAttendanceAnomalies(tenantID, from, to)
		errs <- err
	}()
	go func() {
		var err error
		data.LocationAnomalies, err = h.anomalyService.DetectLocationAnomalies(tenantID, from, to)
		errs <- err
	}()
	go func() {
		var err error
		data.TimeAnomalies, err = h.anomalyService.DetectTimeAnomalies(tenantID, from, to)
		errs <- err
	}()
	go func() {
		var err error
		data.SeasonalTrends, err = h.patternService.IdentifySeasonalTrends(tenantID)
		errs <- err
	}()

	for i := 0; i < 6; i++ {
		if err := <-errs; err != nil {
			h.logger.WithError(err).Error("Dashboard aggregation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed", "detail": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": data})
}
