package service

import (
	"time"
	"workforce-analytics/internal/models"
)

// Репозитории в памяти для тестов сервисов

type fakeUserRepo struct {
	users []*models.User
	err   error
}

func (f *fakeUserRepo) Create(user *models.User) error {
	if f.err != nil {
		return f.err
	}
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) GetByID(tenantID, userID uint) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.TenantID == tenantID && u.ID == userID {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetActiveByTenant(tenantID uint) ([]*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	var users []*models.User
	for _, u := range f.users {
		if u.TenantID == tenantID && u.IsActive {
			users = append(users, u)
		}
	}
	return users, nil
}

func (f *fakeUserRepo) CountActiveByTenant(tenantID uint) (int64, error) {
	users, err := f.GetActiveByTenant(tenantID)
	return int64(len(users)), err
}

type fakeAttendanceRepo struct {
	records []*models.AttendanceRecord
	err     error
}

func (f *fakeAttendanceRepo) Create(record *models.AttendanceRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, record)
	return nil
}

func (f *fakeAttendanceRepo) GetByTenantAndRange(tenantID uint, from, to time.Time) ([]*models.AttendanceRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	var records []*models.AttendanceRecord
	for _, r := range f.records {
		if r.TenantID == tenantID && !r.CheckInTime.Before(from) && !r.CheckInTime.After(to) {
			records = append(records, r)
		}
	}
	return records, nil
}

func (f *fakeAttendanceRepo) GetByUserAndRange(tenantID, userID uint, from, to time.Time) ([]*models.AttendanceRecord, error) {
	records, err := f.GetByTenantAndRange(tenantID, from, to)
	if err != nil {
		return nil, err
	}
	var filtered []*models.AttendanceRecord
	for _, r := range records {
		if r.UserID == userID {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

func (f *fakeAttendanceRepo) GetOpenByUser(tenantID, userID uint) (*models.AttendanceRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	var open *models.AttendanceRecord
	for _, r := range f.records {
		if r.TenantID == tenantID && r.UserID == userID && !r.HasCheckOut() {
			if open == nil || r.CheckInTime.After(open.CheckInTime) {
				open = r
			}
		}
	}
	return open, nil
}

func (f *fakeAttendanceRepo) CompleteRecord(record *models.AttendanceRecord, checkOut time.Time) error {
	if f.err != nil {
		return f.err
	}
	record.CheckOutTime = &checkOut
	return nil
}

type fakeGeofenceRepo struct {
	geofences []*models.Geofence
	err       error
}

func (f *fakeGeofenceRepo) Create(geofence *models.Geofence) error {
	if f.err != nil {
		return f.err
	}
	f.geofences = append(f.geofences, geofence)
	return nil
}

func (f *fakeGeofenceRepo) GetByTenant(tenantID uint) ([]*models.Geofence, error) {
	if f.err != nil {
		return nil, f.err
	}
	var geofences []*models.Geofence
	for _, g := range f.geofences {
		if g.TenantID == tenantID {
			geofences = append(geofences, g)
		}
	}
	return geofences, nil
}

type fakeLeaveRepo struct {
	leaves []*models.LeaveRequest
	err    error
}

func (f *fakeLeaveRepo) Create(leave *models.LeaveRequest) error {
	if f.err != nil {
		return f.err
	}
	f.leaves = append(f.leaves, leave)
	return nil
}

func (f *fakeLeaveRepo) GetByTenantAndRange(tenantID uint, from, to time.Time) ([]*models.LeaveRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	var leaves []*models.LeaveRequest
	for _, l := range f.leaves {
		if l.TenantID == tenantID && !l.EndDate.Before(from) && !l.StartDate.After(to) {
			leaves = append(leaves, l)
		}
	}
	return leaves, nil
}

// Конструкторы тестовых данных

func testUser(id, tenantID uint, createdAt time.Time) *models.User {
	return &models.User{
		ID:        id,
		TenantID:  tenantID,
		FirstName: "Test",
		LastName:  "User",
		IsActive:  true,
		CreatedAt: createdAt,
	}
}

func record(tenantID, userID uint, checkIn time.Time) *models.AttendanceRecord {
	return &models.AttendanceRecord{
		TenantID:    tenantID,
		UserID:      userID,
		CheckInTime: checkIn,
	}
}

func completedRecord(tenantID, userID uint, checkIn time.Time, workHours float64) *models.AttendanceRecord {
	checkOut := checkIn.Add(time.Duration(workHours * float64(time.Hour)))
	r := record(tenantID, userID, checkIn)
	r.CheckOutTime = &checkOut
	return r
}

func locatedRecord(tenantID, userID uint, checkIn time.Time, lat, lon float64) *models.AttendanceRecord {
	r := record(tenantID, userID, checkIn)
	r.Latitude = &lat
	r.Longitude = &lon
	return r
}

func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}
