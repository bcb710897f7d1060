package repository

import (
	"errors"
	"time"
	"workforce-analytics/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AttendanceRecordRepository interface {
	Create(record *models.AttendanceRecord) error
	GetByTenantAndRange(tenantID uint, from, to time.Time) ([]*models.AttendanceRecord, error)
	GetByUserAndRange(tenantID, userID uint, from, to time.Time) ([]*models.AttendanceRecord, error)
	GetOpenByUser(tenantID, userID uint) (*models.AttendanceRecord, error)
	CompleteRecord(record *models.AttendanceRecord, checkOut time.Time) error
}

type GormAttendanceRecordRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormAttendanceRecordRepository(db *gorm.DB) (*GormAttendanceRecordRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	// Автомиграция
	if err := db.AutoMigrate(&models.AttendanceRecord{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate attendance_records table")
		return nil, err
	}

	logger.Info("Attendance record repository initialized")

	return &GormAttendanceRecordRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormAttendanceRecordRepository) Create(record *models.AttendanceRecord) error {
	r.logger.WithFields(logrus.Fields{
		"tenant_id": record.TenantID,
		"user_id":   record.UserID,
		"date":      record.CheckInTime.Format("2006-01-02"),
	}).Info("Creating attendance record")

	if !record.IsValid() {
		r.logger.WithFields(logrus.Fields{
			"tenant_id": record.TenantID,
			"user_id":   record.UserID,
		}).Warn("Invalid attendance record data")
		return errors.New("некорректные данные записи посещаемости")
	}

	result := r.db.Create(record)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create attendance record")
		return result.Error
	}

	return nil
}

// GetByTenantAndRange возвращает записи арендатора за период [from, to] включительно
func (r *GormAttendanceRecordRepository) GetByTenantAndRange(tenantID uint, from, to time.Time) ([]*models.AttendanceRecord, error) {
	var records []*models.AttendanceRecord
	result := r.db.
		Where("tenant_id = ? AND check_in_time >= ? AND check_in_time <= ?", tenantID, from, to).
		Order("check_in_time").
		Find(&records)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get attendance records by tenant and range")
		return nil, result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"tenant_id": tenantID,
		"from":      from.Format("2006-01-02"),
		"to":        to.Format("2006-01-02"),
		"count":     len(records),
	}).Debug("Attendance records loaded")

	return records, nil
}

// GetByUserAndRange возвращает записи пользователя за период [from, to] включительно
func (r *GormAttendanceRecordRepository) GetByUserAndRange(tenantID, userID uint, from, to time.Time) ([]*models.AttendanceRecord, error) {
	var records []*models.AttendanceRecord
	result := r.db.
		Where("tenant_id = ? AND user_id = ? AND check_in_time >= ? AND check_in_time <= ?",
			tenantID, userID, from, to).
		Order("check_in_time").
		Find(&records)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get attendance records by user and range")
		return nil, result.Error
	}

	return records, nil
}

// GetOpenByUser возвращает последнюю незавершенную запись пользователя
func (r *GormAttendanceRecordRepository) GetOpenByUser(tenantID, userID uint) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	result := r.db.
		Where("tenant_id = ? AND user_id = ? AND check_out_time IS NULL", tenantID, userID).
		Order("check_in_time DESC").
		First(&record)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithFields(logrus.Fields{
			"tenant_id": tenantID,
			"user_id":   userID,
		}).Debug("No open attendance record found")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get open attendance record")
		return nil, result.Error
	}

	return &record, nil
}

// CompleteRecord проставляет отметку ухода
func (r *GormAttendanceRecordRepository) CompleteRecord(record *models.AttendanceRecord, checkOut time.Time) error {
	if checkOut.Before(record.CheckInTime) {
		r.logger.WithField("id", record.ID).Warn("Check-out before check-in")
		return errors.New("время ухода раньше времени прихода")
	}

	record.CheckOutTime = &checkOut

	result := r.db.Save(record)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to complete attendance record")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":      record.ID,
		"user_id": record.UserID,
	}).Info("Attendance record completed")

	return nil
}
