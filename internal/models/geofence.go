package models

import "time"

// Geofence описывает точку офиса арендатора
type Geofence struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	TenantID  uint      `gorm:"not null;index" json:"tenant_id"`
	Name      string    `json:"name"`
	Latitude  float64   `gorm:"not null" json:"latitude"`
	Longitude float64   `gorm:"not null" json:"longitude"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Geofence) TableName() string {
	return "geofences"
}

// IsValid проверяет валидность данных
func (g *Geofence) IsValid() bool {
	if g.TenantID == 0 {
		return false
	}
	if g.Latitude < -90 || g.Latitude > 90 {
		return false
	}
	if g.Longitude < -180 || g.Longitude > 180 {
		return false
	}
	return true
}
