package models

import "time"

type LeaveRequest struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	TenantID  uint      `gorm:"not null;index" json:"tenant_id"`
	StartDate time.Time `gorm:"type:date;not null;index" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// Days возвращает длительность отпуска в днях (включительно)
func (l *LeaveRequest) Days() float64 {
	if l.EndDate.Before(l.StartDate) {
		return 0
	}
	return l.EndDate.Sub(l.StartDate).Hours()/24 + 1
}

// IsValid проверяет валидность данных
func (l *LeaveRequest) IsValid() bool {
	if l.UserID == 0 || l.TenantID == 0 {
		return false
	}
	if l.StartDate.IsZero() || l.EndDate.IsZero() {
		return false
	}
	if l.EndDate.Before(l.StartDate) {
		return false
	}
	return true
}
