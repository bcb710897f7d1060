package service

import (
	"fmt"
	"math"
	"time"
	"workforce-analytics/internal/models"
	"workforce-analytics/internal/repository"
	"workforce-analytics/pkg/stats"
	"workforce-analytics/pkg/workdays"

	"github.com/sirupsen/logrus"
)

// Окна и пороги анализатора паттернов
const (
	patternWindowDays       = 90
	trendWindowDays         = 365
	insightWindowDays       = 60
	minRecordsForPatterns   = 10
	seasonLengthDays        = 90 // приближенная длина сезона
	officeStartMinutes      = 540.0
	timingVarianceMinutes   = 60.0
	consistencyVarianceMins = 90.0
	overtimeThresholdHours  = 8.0
	extendedHoursThreshold  = 10.0
)

type PatternService struct {
	userRepo       repository.UserRepository
	attendanceRepo repository.AttendanceRecordRepository
	logger         *logrus.Logger
}

func NewPatternService(
	userRepo repository.UserRepository,
	attendanceRepo repository.AttendanceRecordRepository,
) *PatternService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &PatternService{
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
		logger:         logger,
	}
}

// AnalyzeAttendancePatterns находит повторяющиеся паттерны посещаемости
// пользователя за последние 90 дней. Требуется минимум 10 записей
func (s *PatternService) AnalyzeAttendancePatterns(tenantID, userID uint) ([]models.AttendancePattern, error) {
	s.logger.WithFields(logrus.Fields{
		"tenant_id": tenantID,
		"user_id":   userID,
	}).Info("Analyzing attendance patterns")

	to := time.Now()
	from := to.AddDate(0, 0, -patternWindowDays)

	records, err := s.attendanceRepo.GetByUserAndRange(tenantID, userID, from, to)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get attendance records")
		return nil, err
	}

	if len(records) < minRecordsForPatterns {
		s.logger.WithFields(logrus.Fields{
			"user_id": userID,
			"count":   len(records),
		}).Debug("Not enough records for pattern analysis")
		return []models.AttendancePattern{}, nil
	}

	patterns := []models.AttendancePattern{}

	if p := weeklyVariationPattern(records); p != nil {
		patterns = append(patterns, *p)
	}
	if p := timingVariancePattern(records); p != nil {
		patterns = append(patterns, *p)
	}
	if p := overtimePattern(records); p != nil {
		patterns = append(patterns, *p)
	}

	return patterns, nil
}

// weeklyVariationPattern проверяет перекос посещаемости по дням недели
func weeklyVariationPattern(records []*models.AttendanceRecord) *models.AttendancePattern {
	byWeekday := make(map[time.Weekday]int)
	for _, record := range records {
		byWeekday[record.CheckInTime.Weekday()]++
	}

	var mostDay time.Weekday
	mostCount := 0
	leastCount := len(records)
	for day, count := range byWeekday {
		if count > mostCount {
			mostCount = count
			mostDay = day
		}
		if count < leastCount {
			leastCount = count
		}
	}

	total := len(records)
	if float64(mostCount-leastCount) <= 0.3*float64(total) {
		return nil
	}

	return &models.AttendancePattern{
		PatternType: "Weekly Variation",
		Description: fmt.Sprintf("Attendance is concentrated on %s", mostDay),
		Frequency:   float64(mostCount) / float64(total),
		Recommendations: []string{
			"Review workload distribution across the week",
			"Check whether meetings or shifts cluster on specific days",
		},
	}
}

// timingVariancePattern проверяет разброс времени прихода
func timingVariancePattern(records []*models.AttendanceRecord) *models.AttendancePattern {
	minutes := make([]float64, 0, len(records))
	for _, record := range records {
		minutes = append(minutes, record.CheckInMinutesOfDay())
	}

	stdDev := stats.StdDev(minutes)
	if stdDev <= timingVarianceMinutes {
		return nil
	}

	return &models.AttendancePattern{
		PatternType: "Inconsistent Timing",
		Description: fmt.Sprintf("Check-in times vary by %.0f minutes on average", stdDev),
		Frequency:   math.Min(1.0, stdDev/120),
		Recommendations: []string{
			"Agree on a core working-hours window",
			"Enable check-in reminders",
		},
	}
}

// overtimePattern проверяет долю дней с переработкой
func overtimePattern(records []*models.AttendanceRecord) *models.AttendancePattern {
	completed := 0
	overtime := 0
	for _, record := range records {
		if !record.HasCheckOut() {
			continue
		}
		completed++
		if record.WorkHours() > overtimeThresholdHours {
			overtime++
		}
	}

	if completed == 0 {
		return nil
	}

	fraction := float64(overtime) / float64(completed)
	if fraction <= 0.5 {
		return nil
	}

	return &models.AttendancePattern{
		PatternType: "Frequent Overtime",
		Description: fmt.Sprintf("Worked more than 8 hours on %.0f%% of completed days", fraction*100),
		Frequency:   fraction,
		Recommendations: []string{
			"Review workload and staffing levels",
			"Discuss sustainable working hours with the employee",
		},
	}
}

// IdentifySeasonalTrends считает сезонные показатели посещаемости арендатора
// за последние 365 дней
func (s *PatternService) IdentifySeasonalTrends(tenantID uint) ([]models.SeasonalTrend, error) {
	s.logger.WithField("tenant_id", tenantID).Info("Identifying seasonal trends")

	activeCount, err := s.userRepo.CountActiveByTenant(tenantID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to count active users")
		return nil, err
	}

	if activeCount == 0 {
		s.logger.WithField("tenant_id", tenantID).Debug("No active users for seasonal trends")
		return []models.SeasonalTrend{}, nil
	}

	to := time.Now()
	from := to.AddDate(0, 0, -trendWindowDays)

	records, err := s.attendanceRepo.GetByTenantAndRange(tenantID, from, to)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get attendance records")
		return nil, err
	}

	bySeason := make(map[string]int)
	for _, record := range records {
		bySeason[workdays.SeasonOf(record.CheckInTime.Month())]++
	}

	trends := make([]models.SeasonalTrend, 0, len(workdays.Seasons))
	for _, season := range workdays.Seasons {
		rate := float64(bySeason[season]) / (float64(activeCount) * seasonLengthDays) * 100

		trends = append(trends, models.SeasonalTrend{
			Season:         season,
			AttendanceRate: rate,
			Trend:          classifyTrend(rate),
			Factors:        seasonalFactors(season),
		})
	}

	return trends, nil
}

func classifyTrend(attendanceRate float64) string {
	switch {
	case attendanceRate >= 90:
		return "High"
	case attendanceRate >= 80:
		return "Normal"
	case attendanceRate >= 70:
		return "Below Average"
	default:
		return "Low"
	}
}

func seasonalFactors(season string) []string {
	switch season {
	case workdays.SeasonWinter:
		return []string{"Weather-related absences", "Holiday season"}
	case workdays.SeasonSpring:
		return []string{"Stable attendance period", "School calendar changes"}
	case workdays.SeasonSummer:
		return []string{"Vacation season", "Reduced staffing"}
	default:
		return []string{"Post-vacation ramp-up", "Year-end project load"}
	}
}

// GetBehavioralInsights строит поведенческие инсайты по пользователю за
// последние 60 дней. Требуется минимум 10 записей
func (s *PatternService) GetBehavioralInsights(tenantID, userID uint) ([]models.BehavioralInsight, error) {
	s.logger.WithFields(logrus.Fields{
		"tenant_id": tenantID,
		"user_id":   userID,
	}).Info("Building behavioral insights")

	to := time.Now()
	from := to.AddDate(0, 0, -insightWindowDays)

	records, err := s.attendanceRepo.GetByUserAndRange(tenantID, userID, from, to)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get attendance records")
		return nil, err
	}

	if len(records) < minRecordsForPatterns {
		s.logger.WithFields(logrus.Fields{
			"user_id": userID,
			"count":   len(records),
		}).Debug("Not enough records for behavioral insights")
		return []models.BehavioralInsight{}, nil
	}

	insights := []models.BehavioralInsight{}

	if i := punctualityInsight(records); i != nil {
		insights = append(insights, *i)
	}
	if i := extendedHoursInsight(records); i != nil {
		insights = append(insights, *i)
	}
	if i := consistencyInsight(records); i != nil {
		insights = append(insights, *i)
	}

	return insights, nil
}

// punctualityInsight оценивает долю опозданий (приход после 09:00)
func punctualityInsight(records []*models.AttendanceRecord) *models.BehavioralInsight {
	late := 0
	for _, record := range records {
		if record.CheckInMinutesOfDay() > officeStartMinutes {
			late++
		}
	}

	total := len(records)
	punctualityRate := 1 - float64(late)/float64(total)
	if punctualityRate >= 0.8 {
		return nil
	}

	impact := models.ImpactMedium
	if punctualityRate < 0.5 {
		impact = models.ImpactHigh
	}

	return &models.BehavioralInsight{
		Behavior:  "Frequent Late Arrivals",
		Frequency: float64(late) / float64(total),
		Impact:    impact,
		Suggestions: []string{
			"Discuss schedule expectations",
			"Consider a flexible start-time arrangement",
		},
	}
}

// extendedHoursInsight оценивает долю дней длиннее 10 часов
func extendedHoursInsight(records []*models.AttendanceRecord) *models.BehavioralInsight {
	extended := 0
	for _, record := range records {
		if record.HasCheckOut() && record.WorkHours() > extendedHoursThreshold {
			extended++
		}
	}

	fraction := float64(extended) / float64(len(records))
	if fraction <= 0.3 {
		return nil
	}

	return &models.BehavioralInsight{
		Behavior:  "Extended Working Hours",
		Frequency: fraction,
		Impact:    models.ImpactHigh,
		Suggestions: []string{
			"Monitor for burnout risk",
			"Rebalance assignments within the team",
		},
	}
}

// consistencyInsight оценивает стабильность времени прихода
func consistencyInsight(records []*models.AttendanceRecord) *models.BehavioralInsight {
	minutes := make([]float64, 0, len(records))
	for _, record := range records {
		minutes = append(minutes, record.CheckInMinutesOfDay())
	}

	stdDev := stats.StdDev(minutes)
	if stdDev <= consistencyVarianceMins {
		return nil
	}

	return &models.BehavioralInsight{
		Behavior:  "Irregular Check-in Times",
		Frequency: math.Min(1.0, stdDev/180),
		Impact:    models.ImpactMedium,
		Suggestions: []string{
			"Establish a consistent daily routine",
			"Review whether role duties allow a fixed schedule",
		},
	}
}
