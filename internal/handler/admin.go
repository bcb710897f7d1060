package handler

import (
	"net/http"
	"strings"
	"time"
	"workforce-analytics/internal/models"

	"github.com/gin-gonic/gin"
)

type createUserRequest struct {
	TenantID  uint   `json:"tenant_id" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
}

func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "detail": err.Error()})
		return
	}

	user := models.User{
		TenantID:  req.TenantID,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		IsActive:  true,
	}

	if err := h.userRepo.Create(&user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": user})
}

type createGeofenceRequest struct {
	TenantID  uint    `json:"tenant_id" binding:"required"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
}

func (h *Handler) createGeofence(c *gin.Context) {
	var req createGeofenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "detail": err.Error()})
		return
	}

	geofence := models.Geofence{
		TenantID:  req.TenantID,
		Name:      strings.TrimSpace(req.Name),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}

	if err := h.geofenceRepo.Create(&geofence); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": geofence})
}

type createLeaveRequest struct {
	TenantID  uint   `json:"tenant_id" binding:"required"`
	UserID    uint   `json:"user_id" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

func (h *Handler) createLeaveRequest(c *gin.Context) {
	var req createLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "detail": err.Error()})
		return
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date", "detail": err.Error()})
		return
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date", "detail": err.Error()})
		return
	}

	leave := models.LeaveRequest{
		TenantID:  req.TenantID,
		UserID:    req.UserID,
		StartDate: startDate,
		EndDate:   endDate,
	}

	if err := h.leaveRepo.Create(&leave); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": leave})
}

type checkInRequest struct {
	TenantID    uint     `json:"tenant_id" binding:"required"`
	UserID      uint     `json:"user_id" binding:"required"`
	CheckInTime string   `json:"check_in_time"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

func (h *Handler) checkIn(c *gin.Context) {
	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "detail": err.Error()})
		return
	}

	checkInTime := time.Now()
	if req.CheckInTime != "" {
		t, err := time.Parse(time.RFC3339, req.CheckInTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_in_time", "detail": err.Error()})
			return
		}
		checkInTime = t
	}

	user, err := h.userRepo.GetByID(req.TenantID, req.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user", "detail": err.Error()})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	record := models.AttendanceRecord{
		TenantID:    req.TenantID,
		UserID:      req.UserID,
		CheckInTime: checkInTime,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}

	if err := h.attendanceRepo.Create(&record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": record})
}

type checkOutRequest struct {
	TenantID     uint   `json:"tenant_id" binding:"required"`
	UserID       uint   `json:"user_id" binding:"required"`
	CheckOutTime string `json:"check_out_time"`
}

func (h *Handler) checkOut(c *gin.Context) {
	var req checkOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "detail": err.Error()})
		return
	}

	checkOutTime := time.Now()
	if req.CheckOutTime != "" {
		t, err := time.Parse(time.RFC3339, req.CheckOutTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_out_time", "detail": err.Error()})
			return
		}
		checkOutTime = t
	}

	record, err := h.attendanceRepo.GetOpenByUser(req.TenantID, req.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load record", "detail": err.Error()})
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no open attendance record"})
		return
	}

	if err := h.attendanceRepo.CompleteRecord(record, checkOutTime); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": record})
}
