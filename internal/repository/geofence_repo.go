package repository

import (
	"errors"
	"workforce-analytics/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type GeofenceRepository interface {
	Create(geofence *models.Geofence) error
	GetByTenant(tenantID uint) ([]*models.Geofence, error)
}

type GormGeofenceRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormGeofenceRepository(db *gorm.DB) (*GormGeofenceRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	// Автомиграция
	if err := db.AutoMigrate(&models.Geofence{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate geofences table")
		return nil, err
	}

	logger.Info("Geofence repository initialized")

	return &GormGeofenceRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormGeofenceRepository) Create(geofence *models.Geofence) error {
	r.logger.WithFields(logrus.Fields{
		"tenant_id": geofence.TenantID,
		"name":      geofence.Name,
	}).Info("Creating geofence")

	if !geofence.IsValid() {
		r.logger.WithField("tenant_id", geofence.TenantID).Warn("Invalid geofence data")
		return errors.New("некорректные данные геозоны")
	}

	result := r.db.Create(geofence)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create geofence")
		return result.Error
	}

	return nil
}

func (r *GormGeofenceRepository) GetByTenant(tenantID uint) ([]*models.Geofence, error) {
	var geofences []*models.Geofence
	result := r.db.Where("tenant_id = ?", tenantID).Order("id").Find(&geofences)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get geofences by tenant")
		return nil, result.Error
	}

	return geofences, nil
}
