package repository

import (
	"errors"
	"workforce-analytics/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(tenantID, userID uint) (*models.User, error)
	GetActiveByTenant(tenantID uint) ([]*models.User, error)
	CountActiveByTenant(tenantID uint) (int64, error)
}

type GormUserRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormUserRepository(db *gorm.DB) (*GormUserRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	// Автомиграция
	if err := db.AutoMigrate(&models.User{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate users table")
		return nil, err
	}

	logger.Info("User repository initialized")

	return &GormUserRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormUserRepository) Create(user *models.User) error {
	r.logger.WithFields(logrus.Fields{
		"tenant_id": user.TenantID,
		"name":      user.FullName(),
	}).Info("Creating user")

	if !user.IsValid() {
		r.logger.WithField("tenant_id", user.TenantID).Warn("Invalid user data")
		return errors.New("некорректные данные пользователя")
	}

	result := r.db.Create(user)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create user")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":        user.ID,
		"tenant_id": user.TenantID,
	}).Info("User created successfully")

	return nil
}

func (r *GormUserRepository) GetByID(tenantID, userID uint) (*models.User, error) {
	var user models.User
	result := r.db.Where("tenant_id = ?", tenantID).First(&user, userID)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithFields(logrus.Fields{
			"tenant_id": tenantID,
			"user_id":   userID,
		}).Debug("User not found")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get user by ID")
		return nil, result.Error
	}

	return &user, nil
}

func (r *GormUserRepository) GetActiveByTenant(tenantID uint) ([]*models.User, error) {
	var users []*models.User
	result := r.db.
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Order("id").
		Find(&users)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get active users by tenant")
		return nil, result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"tenant_id": tenantID,
		"count":     len(users),
	}).Debug("Active users loaded")

	return users, nil
}

func (r *GormUserRepository) CountActiveByTenant(tenantID uint) (int64, error) {
	var count int64
	result := r.db.Model(&models.User{}).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Count(&count)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to count active users by tenant")
		return 0, result.Error
	}

	return count, nil
}
