package service

import (
	"math"
	"time"
	"workforce-analytics/internal/models"
	"workforce-analytics/internal/repository"
	"workforce-analytics/pkg/stats"
	"workforce-analytics/pkg/workdays"

	"github.com/sirupsen/logrus"
)

// Окна и целевые значения сводной оценки
const (
	healthWindowDays    = 30
	leaveWindowDays     = 365
	targetLeaveDays     = 17.5
	retentionTenureDays = 365
)

type WorkforceHealthService struct {
	userRepo       repository.UserRepository
	attendanceRepo repository.AttendanceRecordRepository
	leaveRepo      repository.LeaveRequestRepository
	logger         *logrus.Logger
}

func NewWorkforceHealthService(
	userRepo repository.UserRepository,
	attendanceRepo repository.AttendanceRecordRepository,
	leaveRepo repository.LeaveRequestRepository,
) *WorkforceHealthService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &WorkforceHealthService{
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		logger:         logger,
	}
}

// CalculateWorkforceHealthScore считает сводную оценку здоровья персонала:
// четыре независимых показателя 0-100 и их невзвешенное среднее
func (s *WorkforceHealthService) CalculateWorkforceHealthScore(tenantID uint) (*models.WorkforceHealthScore, error) {
	s.logger.WithField("tenant_id", tenantID).Info("Calculating workforce health score")

	now := time.Now()
	from30 := now.AddDate(0, 0, -healthWindowDays)
	from365 := now.AddDate(0, 0, -leaveWindowDays)

	users, err := s.userRepo.GetActiveByTenant(tenantID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get active users")
		return nil, err
	}

	records, err := s.attendanceRepo.GetByTenantAndRange(tenantID, from30, now)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get attendance records")
		return nil, err
	}

	leaves, err := s.leaveRepo.GetByTenantAndRange(tenantID, from365, now)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get leave requests")
		return nil, err
	}

	score := &models.WorkforceHealthScore{
		AttendanceScore:   s.attendanceScore(users, records, from30, now),
		EngagementScore:   s.engagementScore(users, records, leaves),
		ProductivityScore: s.productivityScore(records),
		RetentionScore:    s.retentionScore(users, now),
	}
	score.OverallScore = (score.AttendanceScore + score.EngagementScore +
		score.ProductivityScore + score.RetentionScore) / 4
	score.Recommendations = healthRecommendations(score)

	s.logger.WithFields(logrus.Fields{
		"tenant_id": tenantID,
		"overall":   score.OverallScore,
	}).Info("Workforce health score calculated")

	return score, nil
}

// attendanceScore - фактические записи против ожидаемых за рабочие дни окна.
// Не ограничивается сверху: несколько отметок в день дают больше 100
func (s *WorkforceHealthService) attendanceScore(users []*models.User, records []*models.AttendanceRecord, from, to time.Time) float64 {
	workingDays := workdays.Count(from, to)
	if len(users) == 0 || workingDays == 0 {
		return 0
	}

	expected := float64(len(users)) * float64(workingDays)
	return float64(len(records)) / expected * 100
}

// engagementScore - среднее из стабильности прихода, использования отпусков
// и пунктуальности
func (s *WorkforceHealthService) engagementScore(users []*models.User, records []*models.AttendanceRecord, leaves []*models.LeaveRequest) float64 {
	consistency := s.attendanceConsistency(users, records)
	leaveUtilization := s.leaveUtilization(users, leaves)
	punctuality := s.punctualityScore(records)

	return (consistency + leaveUtilization + punctuality) / 3
}

// attendanceConsistency - средний по пользователям показатель стабильности
// времени прихода. Пользователи с менее чем 5 записями дают 0
func (s *WorkforceHealthService) attendanceConsistency(users []*models.User, records []*models.AttendanceRecord) float64 {
	if len(users) == 0 {
		return 0
	}

	byUser := make(map[uint][]float64)
	for _, record := range records {
		byUser[record.UserID] = append(byUser[record.UserID], record.CheckInMinutesOfDay())
	}

	sum := 0.0
	for _, user := range users {
		minutes := byUser[user.ID]
		if len(minutes) < minRecordsForTimeStats {
			continue // вклад пользователя 0
		}
		sum += math.Max(0, 100-stats.StdDev(minutes)/60*20)
	}

	return sum / float64(len(users))
}

// leaveUtilization - близость среднего числа дней отпуска к целевым 17.5
func (s *WorkforceHealthService) leaveUtilization(users []*models.User, leaves []*models.LeaveRequest) float64 {
	if len(users) == 0 {
		return 0
	}

	totalDays := 0.0
	for _, leave := range leaves {
		totalDays += leave.Days()
	}

	avgDays := totalDays / float64(len(users))
	return math.Max(0, 100-math.Abs(avgDays-targetLeaveDays)*3)
}

// punctualityScore - доля приходов не позже 09:00
func (s *WorkforceHealthService) punctualityScore(records []*models.AttendanceRecord) float64 {
	if len(records) == 0 {
		return 0
	}

	onTime := 0
	for _, record := range records {
		if record.CheckInMinutesOfDay() <= officeStartMinutes {
			onTime++
		}
	}

	return float64(onTime) / float64(len(records)) * 100
}

// productivityScore - близость средней длительности дня к 8 часам и ее
// стабильность, по завершенным записям окна
func (s *WorkforceHealthService) productivityScore(records []*models.AttendanceRecord) float64 {
	workHours := make([]float64, 0, len(records))
	for _, record := range records {
		if record.HasCheckOut() {
			workHours = append(workHours, record.WorkHours())
		}
	}

	if len(workHours) == 0 {
		return 0
	}

	hoursScore := math.Max(0, 100-math.Abs(stats.Mean(workHours)-standardWorkHours)*10)
	consistencyScore := math.Max(0, 100-stats.StdDev(workHours)*20)

	return (hoursScore + consistencyScore) / 2
}

// retentionScore - средний стаж и доля сотрудников со стажем больше года
func (s *WorkforceHealthService) retentionScore(users []*models.User, now time.Time) float64 {
	if len(users) == 0 {
		return 0
	}

	totalTenure := 0.0
	retained := 0
	for _, user := range users {
		tenure := user.TenureDays(now)
		totalTenure += tenure
		if tenure > retentionTenureDays {
			retained++
		}
	}

	tenureScore := math.Min(100, totalTenure/float64(len(users))/10)
	retentionRate := float64(retained) / float64(len(users)) * 100

	return (tenureScore + retentionRate) / 2
}

func healthRecommendations(score *models.WorkforceHealthScore) []string {
	recommendations := []string{}

	if score.OverallScore < 70 {
		recommendations = append(recommendations,
			"Overall workforce health needs attention; schedule a management review")
	}
	if score.AttendanceScore < 80 {
		recommendations = append(recommendations,
			"Attendance is below target; investigate absence causes")
	}
	if score.EngagementScore < 70 {
		recommendations = append(recommendations,
			"Engagement is low; review schedules and leave planning")
	}
	if score.ProductivityScore < 75 {
		recommendations = append(recommendations,
			"Work-hour patterns deviate from the standard day; rebalance workloads")
	}
	if score.RetentionScore < 80 {
		recommendations = append(recommendations,
			"Retention risk detected; review compensation and career paths")
	}

	return recommendations
}

// GetWorkLifeBalanceInsights считает баланс работы и отдыха арендатора за
// последние 30 дней
func (s *WorkforceHealthService) GetWorkLifeBalanceInsights(tenantID uint) (*models.WorkLifeBalanceInsight, error) {
	s.logger.WithField("tenant_id", tenantID).Info("Calculating work-life balance insights")

	now := time.Now()
	from := now.AddDate(0, 0, -healthWindowDays)

	records, err := s.attendanceRepo.GetByTenantAndRange(tenantID, from, now)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get attendance records")
		return nil, err
	}

	if len(records) == 0 {
		s.logger.WithField("tenant_id", tenantID).Debug("No attendance records for work-life balance")
		return &models.WorkLifeBalanceInsight{}, nil
	}

	// Средние часы и доля переработок считаются по пользователю,
	// затем усредняются по арендатору
	type userLoad struct {
		workHours []float64
		overtime  int
	}
	byUser := make(map[uint]*userLoad)
	checkInMinutes := make([]float64, 0, len(records))

	for _, record := range records {
		checkInMinutes = append(checkInMinutes, record.CheckInMinutesOfDay())

		if !record.HasCheckOut() {
			continue
		}
		load, ok := byUser[record.UserID]
		if !ok {
			load = &userLoad{}
			byUser[record.UserID] = load
		}
		hours := record.WorkHours()
		load.workHours = append(load.workHours, hours)
		if hours > overtimeThresholdHours {
			load.overtime++
		}
	}

	avgWorkHours := 0.0
	overtimeFrequency := 0.0
	if len(byUser) > 0 {
		for _, load := range byUser {
			avgWorkHours += stats.Mean(load.workHours)
			overtimeFrequency += float64(load.overtime) / float64(len(load.workHours))
		}
		avgWorkHours /= float64(len(byUser))
		overtimeFrequency /= float64(len(byUser))
	}

	flexibilityScore := math.Min(100, stats.StdDev(checkInMinutes)/60*50)

	hoursScore := math.Max(0, 100-math.Abs(avgWorkHours-standardWorkHours)*15)
	overtimeScore := math.Max(0, 100-overtimeFrequency*100)

	return &models.WorkLifeBalanceInsight{
		AverageWorkHours:  avgWorkHours,
		OvertimeFrequency: overtimeFrequency,
		FlexibilityScore:  flexibilityScore,
		OverallScore:      (hoursScore + overtimeScore + flexibilityScore) / 3,
	}, nil
}
