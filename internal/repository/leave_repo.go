package repository

import (
	"errors"
	"time"
	"workforce-analytics/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type LeaveRequestRepository interface {
	Create(leave *models.LeaveRequest) error
	GetByTenantAndRange(tenantID uint, from, to time.Time) ([]*models.LeaveRequest, error)
}

type GormLeaveRequestRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormLeaveRequestRepository(db *gorm.DB) (*GormLeaveRequestRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	// Автомиграция
	if err := db.AutoMigrate(&models.LeaveRequest{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate leave_requests table")
		return nil, err
	}

	logger.Info("Leave request repository initialized")

	return &GormLeaveRequestRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormLeaveRequestRepository) Create(leave *models.LeaveRequest) error {
	r.logger.WithFields(logrus.Fields{
		"tenant_id": leave.TenantID,
		"user_id":   leave.UserID,
		"from":      leave.StartDate.Format("2006-01-02"),
		"to":        leave.EndDate.Format("2006-01-02"),
	}).Info("Creating leave request")

	if !leave.IsValid() {
		r.logger.WithField("user_id", leave.UserID).Warn("Invalid leave request data")
		return errors.New("некорректные данные заявки на отпуск")
	}

	result := r.db.Create(leave)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create leave request")
		return result.Error
	}

	return nil
}

// GetByTenantAndRange возвращает заявки, пересекающиеся с периодом [from, to]
func (r *GormLeaveRequestRepository) GetByTenantAndRange(tenantID uint, from, to time.Time) ([]*models.LeaveRequest, error) {
	var leaves []*models.LeaveRequest
	result := r.db.
		Where("tenant_id = ? AND end_date >= ? AND start_date <= ?", tenantID, from, to).
		Order("start_date").
		Find(&leaves)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get leave requests by tenant and range")
		return nil, result.Error
	}

	return leaves, nil
}
