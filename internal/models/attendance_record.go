package models

import "time"

type AttendanceRecord struct {
	ID       uint `gorm:"primarykey" json:"id"`
	UserID   uint `gorm:"not null;index" json:"user_id"`
	TenantID uint `gorm:"not null;index" json:"tenant_id"`

	// Время прихода/ухода
	CheckInTime  time.Time  `gorm:"not null;index" json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time"`

	// Координаты отметки (необязательные)
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

// HasCheckOut проверяет, завершена ли запись
func (r *AttendanceRecord) HasCheckOut() bool {
	return r.CheckOutTime != nil && !r.CheckOutTime.IsZero()
}

// HasLocation проверяет, есть ли у записи координаты
func (r *AttendanceRecord) HasLocation() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// WorkHours вычисляет отработанные часы (0, если нет отметки ухода)
func (r *AttendanceRecord) WorkHours() float64 {
	if !r.HasCheckOut() {
		return 0
	}
	return r.CheckOutTime.Sub(r.CheckInTime).Hours()
}

// CheckInMinutesOfDay возвращает время прихода в минутах с полуночи
func (r *AttendanceRecord) CheckInMinutesOfDay() float64 {
	return float64(r.CheckInTime.Hour()*60+r.CheckInTime.Minute()) +
		float64(r.CheckInTime.Second())/60
}

// IsValid проверяет валидность данных
func (r *AttendanceRecord) IsValid() bool {
	if r.UserID == 0 || r.TenantID == 0 {
		return false
	}
	if r.CheckInTime.IsZero() {
		return false
	}
	if r.HasCheckOut() && r.CheckOutTime.Before(r.CheckInTime) {
		return false
	}
	if (r.Latitude == nil) != (r.Longitude == nil) {
		return false
	}
	return true
}
