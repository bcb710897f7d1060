package models

// WorkforceHealthScore - сводная оценка здоровья персонала арендатора.
// Все величины в диапазоне 0-100, кроме AttendanceScore, который может
// превышать 100 при нескольких отметках в день (не ограничивается).
type WorkforceHealthScore struct {
	OverallScore      float64  `json:"overallScore"`
	AttendanceScore   float64  `json:"attendanceScore"`
	EngagementScore   float64  `json:"engagementScore"`
	ProductivityScore float64  `json:"productivityScore"`
	RetentionScore    float64  `json:"retentionScore"`
	Recommendations   []string `json:"recommendations"`
}

// WorkLifeBalanceInsight - баланс работы и отдыха по арендатору за 30 дней
type WorkLifeBalanceInsight struct {
	AverageWorkHours  float64 `json:"averageWorkHours"`
	OvertimeFrequency float64 `json:"overtimeFrequency"` // 0..1
	FlexibilityScore  float64 `json:"flexibilityScore"`
	OverallScore      float64 `json:"overallScore"`
}
