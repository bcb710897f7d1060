package models

// Уровни влияния поведенческих инсайтов
const (
	ImpactLow    = "Low"
	ImpactMedium = "Medium"
	ImpactHigh   = "High"
)

// AttendancePattern - повторяющийся паттерн посещаемости пользователя
type AttendancePattern struct {
	PatternType     string   `json:"patternType"`
	Description     string   `json:"description"`
	Frequency       float64  `json:"frequency"` // 0..1
	Recommendations []string `json:"recommendations"`
}

// SeasonalTrend - сезонный тренд посещаемости по арендатору
type SeasonalTrend struct {
	Season         string   `json:"season"`
	AttendanceRate float64  `json:"attendanceRate"`
	Trend          string   `json:"trend"`
	Factors        []string `json:"factors"`
}

// BehavioralInsight - поведенческий инсайт по пользователю
type BehavioralInsight struct {
	Behavior    string   `json:"behavior"`
	Frequency   float64  `json:"frequency"` // 0..1
	Impact      string   `json:"impact"`
	Suggestions []string `json:"suggestions"`
}
