package models

import (
	"strings"
	"time"
)

type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	TenantID  uint      `gorm:"not null;index" json:"tenant_id"`
	FirstName string    `gorm:"not null" json:"first_name"`
	LastName  string    `json:"last_name"`
	IsActive  bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	AttendanceRecords []AttendanceRecord `gorm:"foreignKey:UserID" json:"-"`
	LeaveRequests     []LeaveRequest     `gorm:"foreignKey:UserID" json:"-"`
}

// TableName задает имя таблицы в БД
func (User) TableName() string {
	return "users"
}

// FullName возвращает полное имя пользователя
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// TenureDays возвращает стаж пользователя в днях на момент now
func (u *User) TenureDays(now time.Time) float64 {
	if u.CreatedAt.IsZero() || now.Before(u.CreatedAt) {
		return 0
	}
	return now.Sub(u.CreatedAt).Hours() / 24
}

// IsValid проверяет валидность данных
func (u *User) IsValid() bool {
	if u.TenantID == 0 {
		return false
	}
	if u.FirstName == "" {
		return false
	}
	return true
}
