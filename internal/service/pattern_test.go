package service

import (
	"testing"
	"time"
	"workforce-analytics/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPatternService(users *fakeUserRepo, attendance *fakeAttendanceRepo) *PatternService {
	return NewPatternService(users, attendance)
}

// checkInDaysAgo строит отметку за daysAgo дней от текущего момента с
// заданным временем прихода
func checkInDaysAgo(daysAgo, hour, minute int) time.Time {
	d := time.Now().UTC().AddDate(0, 0, -daysAgo)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, time.UTC)
}

func findPattern(patterns []models.AttendancePattern, patternType string) *models.AttendancePattern {
	for i := range patterns {
		if patterns[i].PatternType == patternType {
			return &patterns[i]
		}
	}
	return nil
}

func TestAnalyzeAttendancePatternsInsufficientData(t *testing.T) {
	attendance := &fakeAttendanceRepo{}
	for i := 1; i <= 9; i++ {
		attendance.records = append(attendance.records,
			record(testTenant, 1, checkInDaysAgo(i, 9, 0)))
	}

	svc := newPatternService(&fakeUserRepo{}, attendance)

	patterns, err := svc.AnalyzeAttendancePatterns(testTenant, 1)
	require.NoError(t, err)
	assert.Empty(t, patterns)
}

func TestAnalyzeAttendancePatternsWeeklyVariation(t *testing.T) {
	attendance := &fakeAttendanceRepo{}

	// 12 отметок по понедельникам и по 4 на два других дня недели:
	// перекос 12-4=8 > 0.3*20
	monday := time.Now().UTC()
	for monday.Weekday() != time.Monday {
		monday = monday.AddDate(0, 0, -1)
	}
	monday = time.Date(monday.Year(), monday.Month(), monday.Day(), 9, 0, 0, 0, time.UTC)
	if monday.After(time.Now()) {
		monday = monday.AddDate(0, 0, -7)
	}
	for week := 0; week < 12; week++ {
		attendance.records = append(attendance.records,
			record(testTenant, 1, monday.AddDate(0, 0, -7*week)))
	}
	tuesday := monday.AddDate(0, 0, -6)
	wednesday := monday.AddDate(0, 0, -5)
	for week := 0; week < 4; week++ {
		attendance.records = append(attendance.records,
			record(testTenant, 1, tuesday.AddDate(0, 0, -7*week)))
		attendance.records = append(attendance.records,
			record(testTenant, 1, wednesday.AddDate(0, 0, -7*week)))
	}

	svc := newPatternService(&fakeUserRepo{}, attendance)

	patterns, err := svc.AnalyzeAttendancePatterns(testTenant, 1)
	require.NoError(t, err)

	pattern := findPattern(patterns, "Weekly Variation")
	require.NotNil(t, pattern)
	assert.InDelta(t, 0.6, pattern.Frequency, 1e-9)
	assert.NotEmpty(t, pattern.Recommendations)
	assert.Nil(t, findPattern(patterns, "Inconsistent Timing"))
	assert.Nil(t, findPattern(patterns, "Frequent Overtime"))
}

func TestAnalyzeAttendancePatternsInconsistentTiming(t *testing.T) {
	attendance := &fakeAttendanceRepo{}

	// Чередование 07:00/11:00 - разброс ровно 120 минут
	for i := 1; i <= 12; i++ {
		hour := 7
		if i%2 == 0 {
			hour = 11
		}
		attendance.records = append(attendance.records,
			record(testTenant, 1, checkInDaysAgo(i, hour, 0)))
	}

	svc := newPatternService(&fakeUserRepo{}, attendance)

	patterns, err := svc.AnalyzeAttendancePatterns(testTenant, 1)
	require.NoError(t, err)

	pattern := findPattern(patterns, "Inconsistent Timing")
	require.NotNil(t, pattern)
	assert.InDelta(t, 1.0, pattern.Frequency, 1e-9) // min(1, 120/120)
}

func TestAnalyzeAttendancePatternsFrequentOvertime(t *testing.T) {
	attendance := &fakeAttendanceRepo{}

	for i := 1; i <= 12; i++ {
		attendance.records = append(attendance.records,
			completedRecord(testTenant, 1, checkInDaysAgo(i, 9, 0), 9.5))
	}

	svc := newPatternService(&fakeUserRepo{}, attendance)

	patterns, err := svc.AnalyzeAttendancePatterns(testTenant, 1)
	require.NoError(t, err)

	pattern := findPattern(patterns, "Frequent Overtime")
	require.NotNil(t, pattern)
	assert.InDelta(t, 1.0, pattern.Frequency, 1e-9)
}

func TestIdentifySeasonalTrends(t *testing.T) {
	users := &fakeUserRepo{users: []*models.User{testUser(1, testTenant, at(2023, 1, 1, 0, 0))}}
	attendance := &fakeAttendanceRepo{}

	for i := 1; i <= 50; i++ {
		attendance.records = append(attendance.records,
			record(testTenant, 1, checkInDaysAgo(i%20+1, 9, 0)))
	}

	svc := newPatternService(users, attendance)

	trends, err := svc.IdentifySeasonalTrends(testTenant)
	require.NoError(t, err)
	require.Len(t, trends, 4)

	validTrends := map[string]bool{"High": true, "Normal": true, "Below Average": true, "Low": true}
	totalRecords := 0.0
	for _, trend := range trends {
		assert.True(t, validTrends[trend.Trend], "unexpected trend %q", trend.Trend)
		assert.NotEmpty(t, trend.Factors)
		assert.GreaterOrEqual(t, trend.AttendanceRate, 0.0)
		totalRecords += trend.AttendanceRate / 100 * 90
	}
	// Все 50 записей распределены по сезонам
	assert.InDelta(t, 50, totalRecords, 0.01)
}

func TestIdentifySeasonalTrendsNoUsers(t *testing.T) {
	svc := newPatternService(&fakeUserRepo{}, &fakeAttendanceRepo{})

	trends, err := svc.IdentifySeasonalTrends(testTenant)
	require.NoError(t, err)
	assert.Empty(t, trends)
}

func findInsight(insights []models.BehavioralInsight, behavior string) *models.BehavioralInsight {
	for i := range insights {
		if insights[i].Behavior == behavior {
			return &insights[i]
		}
	}
	return nil
}

func TestGetBehavioralInsightsLateArrivals(t *testing.T) {
	attendance := &fakeAttendanceRepo{}

	// 7 опозданий из 12: пунктуальность 0.417 < 0.5 - высокое влияние
	for i := 1; i <= 7; i++ {
		attendance.records = append(attendance.records,
			record(testTenant, 1, checkInDaysAgo(i, 9, 30)))
	}
	for i := 8; i <= 12; i++ {
		attendance.records = append(attendance.records,
			record(testTenant, 1, checkInDaysAgo(i, 8, 50)))
	}

	svc := newPatternService(&fakeUserRepo{}, attendance)

	insights, err := svc.GetBehavioralInsights(testTenant, 1)
	require.NoError(t, err)
	require.Len(t, insights, 1)

	insight := insights[0]
	assert.Equal(t, "Frequent Late Arrivals", insight.Behavior)
	assert.Equal(t, models.ImpactHigh, insight.Impact)
	assert.InDelta(t, 7.0/12, insight.Frequency, 1e-9)
}

func TestGetBehavioralInsightsExtendedHours(t *testing.T) {
	attendance := &fakeAttendanceRepo{}

	for i := 1; i <= 12; i++ {
		attendance.records = append(attendance.records,
			completedRecord(testTenant, 1, checkInDaysAgo(i, 8, 30), 11))
	}

	svc := newPatternService(&fakeUserRepo{}, attendance)

	insights, err := svc.GetBehavioralInsights(testTenant, 1)
	require.NoError(t, err)

	insight := findInsight(insights, "Extended Working Hours")
	require.NotNil(t, insight)
	assert.Equal(t, models.ImpactHigh, insight.Impact)
	assert.InDelta(t, 1.0, insight.Frequency, 1e-9)
}

func TestGetBehavioralInsightsIrregularCheckIn(t *testing.T) {
	attendance := &fakeAttendanceRepo{}

	// Чередование 05:00/08:30: разброс 105 минут > 90, опозданий нет
	for i := 1; i <= 12; i++ {
		hour, minute := 5, 0
		if i%2 == 0 {
			hour, minute = 8, 30
		}
		attendance.records = append(attendance.records,
			record(testTenant, 1, checkInDaysAgo(i, hour, minute)))
	}

	svc := newPatternService(&fakeUserRepo{}, attendance)

	insights, err := svc.GetBehavioralInsights(testTenant, 1)
	require.NoError(t, err)
	require.Len(t, insights, 1)

	insight := insights[0]
	assert.Equal(t, "Irregular Check-in Times", insight.Behavior)
	assert.Equal(t, models.ImpactMedium, insight.Impact)
	assert.InDelta(t, 105.0/180, insight.Frequency, 1e-9)
}

func TestGetBehavioralInsightsInsufficientData(t *testing.T) {
	attendance := &fakeAttendanceRepo{}
	for i := 1; i <= 9; i++ {
		attendance.records = append(attendance.records,
			completedRecord(testTenant, 1, checkInDaysAgo(i, 11, 0), 12))
	}

	svc := newPatternService(&fakeUserRepo{}, attendance)

	insights, err := svc.GetBehavioralInsights(testTenant, 1)
	require.NoError(t, err)
	assert.Empty(t, insights)
}
