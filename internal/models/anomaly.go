package models

import "time"

// Типы аномалий посещаемости
const (
	AnomalyConsecutiveAbsences = "ConsecutiveAbsences"
	AnomalyUnusualCheckInTime  = "UnusualCheckInTime"
)

// Типы временных аномалий
const (
	TimeAnomalyUnusualCheckIn    = "UnusualCheckIn"
	TimeAnomalyExcessiveHours    = "ExcessiveHours"
	TimeAnomalyInsufficientHours = "InsufficientHours"
)

// AttendanceAnomaly - аномалия посещаемости пользователя за период.
// Производные типы не сохраняются в БД, пересчитываются при каждом запросе.
type AttendanceAnomaly struct {
	UserID      uint      `json:"userId"`
	UserName    string    `json:"userName"`
	Date        time.Time `json:"date"`
	AnomalyType string    `json:"anomalyType"`
	Description string    `json:"description"`
	Severity    float64   `json:"severity"` // 0..1
}

// LocationAnomaly - отметка за пределами геозоны офиса
type LocationAnomaly struct {
	UserID               uint      `json:"userId"`
	Date                 time.Time `json:"date"`
	Latitude             float64   `json:"latitude"`
	Longitude            float64   `json:"longitude"`
	DistanceFromOfficeKm float64   `json:"distanceFromOfficeKm"`
	Reason               string    `json:"reason"`
}

// TimeAnomaly - отклонение по времени прихода или длительности дня
type TimeAnomaly struct {
	UserID         uint       `json:"userId"`
	Date           time.Time  `json:"date"`
	CheckInTime    time.Time  `json:"checkInTime"`
	CheckOutTime   *time.Time `json:"checkOutTime,omitempty"`
	AnomalyType    string     `json:"anomalyType"`
	DeviationHours float64    `json:"deviationHours"`
}
