package service

import (
	"fmt"
	"math"
	"sort"
	"time"
	"workforce-analytics/internal/models"
	"workforce-analytics/internal/repository"
	"workforce-analytics/pkg/geo"
	"workforce-analytics/pkg/stats"
	"workforce-analytics/pkg/workdays"

	"github.com/sirupsen/logrus"
)

// Пороги детектора аномалий
const (
	maxAbsenceStreak        = 3     // рабочих дней подряд без отметок
	minRecordsForTimeStats  = 5     // минимум записей для статистики по времени
	unusualCheckInMinutes   = 180.0 // отклонение прихода для аномалии посещаемости
	timeAnomalyCheckInHours = 2.0   // отклонение прихода для временной аномалии
	geofenceRadiusKm        = 0.5
	excessiveWorkHours      = 12.0
	insufficientWorkHours   = 2.0
	standardWorkHours       = 8.0
)

type AnomalyService struct {
	userRepo       repository.UserRepository
	attendanceRepo repository.AttendanceRecordRepository
	geofenceRepo   repository.GeofenceRepository
	logger         *logrus.Logger
}

func NewAnomalyService(
	userRepo repository.UserRepository,
	attendanceRepo repository.AttendanceRecordRepository,
	geofenceRepo repository.GeofenceRepository,
) *AnomalyService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &AnomalyService{
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
		geofenceRepo:   geofenceRepo,
		logger:         logger,
	}
}

// DetectAttendanceAnomalies находит серии пропусков рабочих дней и нетипичное
// время прихода по каждому активному пользователю арендатора за период
func (s *AnomalyService) DetectAttendanceAnomalies(tenantID uint, fromDate, toDate time.Time) ([]models.AttendanceAnomaly, error) {
	s.logger.WithFields(logrus.Fields{
		"tenant_id": tenantID,
		"from":      fromDate.Format("2006-01-02"),
		"to":        toDate.Format("2006-01-02"),
	}).Info("Detecting attendance anomalies")

	users, err := s.userRepo.GetActiveByTenant(tenantID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get active users")
		return nil, err
	}

	anomalies := []models.AttendanceAnomaly{}

	for _, user := range users {
		records, err := s.attendanceRepo.GetByUserAndRange(tenantID, user.ID, fromDate, toDate)
		if err != nil {
			s.logger.WithError(err).Error("Failed to get attendance records")
			return nil, err
		}

		anomalies = append(anomalies, s.detectConsecutiveAbsences(user, records, fromDate, toDate)...)
		anomalies = append(anomalies, s.detectUnusualCheckIns(user, records)...)
	}

	sort.Slice(anomalies, func(i, j int) bool {
		return anomalies[i].Severity > anomalies[j].Severity
	})

	s.logger.WithFields(logrus.Fields{
		"tenant_id": tenantID,
		"count":     len(anomalies),
	}).Info("Attendance anomaly detection finished")

	return anomalies, nil
}

// detectConsecutiveAbsences считает максимальную серию рабочих дней без отметок
func (s *AnomalyService) detectConsecutiveAbsences(user *models.User, records []*models.AttendanceRecord, fromDate, toDate time.Time) []models.AttendanceAnomaly {
	present := make(map[time.Time]bool, len(records))
	for _, record := range records {
		present[workdays.Day(record.CheckInTime)] = true
	}

	streak := 0
	maxStreak := 0
	var streakEnd time.Time

	for d := workdays.Day(fromDate); !d.After(workdays.Day(toDate)); d = d.AddDate(0, 0, 1) {
		if !workdays.IsWorkday(d) {
			continue
		}
		if present[d] {
			streak = 0
			continue
		}
		streak++
		if streak > maxStreak {
			maxStreak = streak
			streakEnd = d
		}
	}

	if maxStreak <= maxAbsenceStreak {
		return nil
	}

	return []models.AttendanceAnomaly{{
		UserID:      user.ID,
		UserName:    user.FullName(),
		Date:        streakEnd,
		AnomalyType: models.AnomalyConsecutiveAbsences,
		Description: fmt.Sprintf("%d consecutive working days without attendance", maxStreak),
		Severity:    math.Min(1.0, float64(maxStreak)/10),
	}}
}

// detectUnusualCheckIns находит приходы с отклонением более 3 часов от
// личного среднего. Требуется минимум 5 записей
func (s *AnomalyService) detectUnusualCheckIns(user *models.User, records []*models.AttendanceRecord) []models.AttendanceAnomaly {
	if len(records) < minRecordsForTimeStats {
		return nil
	}

	minutes := make([]float64, 0, len(records))
	for _, record := range records {
		minutes = append(minutes, record.CheckInMinutesOfDay())
	}
	mean := stats.Mean(minutes)

	var anomalies []models.AttendanceAnomaly
	for i, record := range records {
		deviation := math.Abs(minutes[i] - mean)
		if deviation <= unusualCheckInMinutes {
			continue
		}

		deviationHours := deviation / 60
		anomalies = append(anomalies, models.AttendanceAnomaly{
			UserID:      user.ID,
			UserName:    user.FullName(),
			Date:        workdays.Day(record.CheckInTime),
			AnomalyType: models.AnomalyUnusualCheckInTime,
			Description: fmt.Sprintf("Check-in at %s deviates %.1f hours from personal average",
				record.CheckInTime.Format("15:04"), deviationHours),
			Severity: math.Min(1.0, deviationHours/6),
		})
	}

	return anomalies
}

// DetectLocationAnomalies находит отметки за пределами геозон офисов.
// Без настроенных геозон возвращает пустой список
func (s *AnomalyService) DetectLocationAnomalies(tenantID uint, fromDate, toDate time.Time) ([]models.LocationAnomaly, error) {
	s.logger.WithFields(logrus.Fields{
		"tenant_id": tenantID,
		"from":      fromDate.Format("2006-01-02"),
		"to":        toDate.Format("2006-01-02"),
	}).Info("Detecting location anomalies")

	geofences, err := s.geofenceRepo.GetByTenant(tenantID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get geofences")
		return nil, err
	}

	if len(geofences) == 0 {
		s.logger.WithField("tenant_id", tenantID).Debug("No geofences configured for tenant")
		return []models.LocationAnomaly{}, nil
	}

	records, err := s.attendanceRepo.GetByTenantAndRange(tenantID, fromDate, toDate)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get attendance records")
		return nil, err
	}

	anomalies := []models.LocationAnomaly{}

	for _, record := range records {
		if !record.HasLocation() {
			continue
		}

		nearest := math.MaxFloat64
		for _, office := range geofences {
			distance := geo.DistanceKm(*record.Latitude, *record.Longitude, office.Latitude, office.Longitude)
			if distance < nearest {
				nearest = distance
			}
		}

		if nearest <= geofenceRadiusKm {
			continue
		}

		anomalies = append(anomalies, models.LocationAnomaly{
			UserID:               record.UserID,
			Date:                 record.CheckInTime,
			Latitude:             *record.Latitude,
			Longitude:            *record.Longitude,
			DistanceFromOfficeKm: nearest,
			Reason:               locationAnomalyReason(nearest),
		})
	}

	sort.Slice(anomalies, func(i, j int) bool {
		return anomalies[i].DistanceFromOfficeKm > anomalies[j].DistanceFromOfficeKm
	})

	return anomalies, nil
}

// locationAnomalyReason классифицирует удаление от ближайшего офиса
func locationAnomalyReason(distanceKm float64) string {
	switch {
	case distanceKm > 10:
		return "Remote work or field assignment"
	case distanceKm > 2:
		return "Possible client visit or off-site meeting"
	case distanceKm > geofenceRadiusKm:
		return "Outside designated work area"
	default:
		return "Minor location variance"
	}
}

// DetectTimeAnomalies находит отклонения по времени прихода и длительности
// рабочего дня. Пользователи с менее чем 5 записями пропускаются
func (s *AnomalyService) DetectTimeAnomalies(tenantID uint, fromDate, toDate time.Time) ([]models.TimeAnomaly, error) {
	s.logger.WithFields(logrus.Fields{
		"tenant_id": tenantID,
		"from":      fromDate.Format("2006-01-02"),
		"to":        toDate.Format("2006-01-02"),
	}).Info("Detecting time anomalies")

	users, err := s.userRepo.GetActiveByTenant(tenantID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get active users")
		return nil, err
	}

	anomalies := []models.TimeAnomaly{}

	for _, user := range users {
		records, err := s.attendanceRepo.GetByUserAndRange(tenantID, user.ID, fromDate, toDate)
		if err != nil {
			s.logger.WithError(err).Error("Failed to get attendance records")
			return nil, err
		}

		if len(records) < minRecordsForTimeStats {
			continue
		}

		minutes := make([]float64, 0, len(records))
		for _, record := range records {
			minutes = append(minutes, record.CheckInMinutesOfDay())
		}
		mean := stats.Mean(minutes)

		for i, record := range records {
			// Отклонение времени прихода
			deviationHours := math.Abs(minutes[i]-mean) / 60
			if deviationHours > timeAnomalyCheckInHours {
				anomalies = append(anomalies, models.TimeAnomaly{
					UserID:         record.UserID,
					Date:           workdays.Day(record.CheckInTime),
					CheckInTime:    record.CheckInTime,
					CheckOutTime:   record.CheckOutTime,
					AnomalyType:    models.TimeAnomalyUnusualCheckIn,
					DeviationHours: deviationHours,
				})
			}

			// Отклонение длительности дня. Одна запись может дать обе аномалии
			if !record.HasCheckOut() {
				continue
			}

			workHours := record.WorkHours()
			var anomalyType string
			switch {
			case workHours > excessiveWorkHours:
				anomalyType = models.TimeAnomalyExcessiveHours
			case workHours < insufficientWorkHours:
				anomalyType = models.TimeAnomalyInsufficientHours
			default:
				continue
			}

			anomalies = append(anomalies, models.TimeAnomaly{
				UserID:         record.UserID,
				Date:           workdays.Day(record.CheckInTime),
				CheckInTime:    record.CheckInTime,
				CheckOutTime:   record.CheckOutTime,
				AnomalyType:    anomalyType,
				DeviationHours: math.Abs(workHours - standardWorkHours),
			})
		}
	}

	sort.Slice(anomalies, func(i, j int) bool {
		return anomalies[i].DeviationHours > anomalies[j].DeviationHours
	})

	return anomalies, nil
}
