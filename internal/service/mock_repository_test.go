package service

import (
	"context"
	"sync"
	"time"

	"clinic-appointment/internal/domain/entity"
	"clinic-appointment/internal/domain/repository"

	"github.com/google/uuid"
)

type mockScheduleRepo struct {
	windows map[uuid.UUID]map[int]*entity.ScheduleWindow
	calls   int
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{windows: make(map[uuid.UUID]map[int]*entity.ScheduleWindow)}
}

func (m *mockScheduleRepo) put(w *entity.ScheduleWindow) {
	if m.windows[w.DoctorID] == nil {
		m.windows[w.DoctorID] = make(map[int]*entity.ScheduleWindow)
	}
	m.windows[w.DoctorID][w.DayOfWeek] = w
}

func (m *mockScheduleRepo) Create(_ context.Context, w *entity.ScheduleWindow) error {
	m.put(w)
	return nil
}

func (m *mockScheduleRepo) FindByID(_ context.Context, id int) (*entity.ScheduleWindow, error) {
	for _, days := range m.windows {
		for _, w := range days {
			if w.ID == id {
				return w, nil
			}
		}
	}
	return nil, nil
}

func (m *mockScheduleRepo) FindByDoctorAndDay(_ context.Context, doctorID uuid.UUID, day int) (*entity.ScheduleWindow, error) {
	m.calls++
	return m.windows[doctorID][day], nil
}

func (m *mockScheduleRepo) FindAll(_ context.Context, _ repository.ScheduleFilter) ([]entity.ScheduleWindow, error) {
	var out []entity.ScheduleWindow
	for _, days := range m.windows {
		for _, w := range days {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (m *mockScheduleRepo) Update(_ context.Context, w *entity.ScheduleWindow) error {
	m.put(w)
	return nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, id int) (int64, error) {
	for _, days := range m.windows {
		for day, w := range days {
			if w.ID == id {
				delete(days, day)
				return 1, nil
			}
		}
	}
	return 0, nil
}

type mockDoctorRepo struct {
	profiles map[uuid.UUID]*entity.DoctorProfile
}

func newMockDoctorRepo() *mockDoctorRepo {
	return &mockDoctorRepo{profiles: make(map[uuid.UUID]*entity.DoctorProfile)}
}

func (m *mockDoctorRepo) addDoctor(id uuid.UUID, available bool) *entity.DoctorProfile {
	active := true
	p := &entity.DoctorProfile{
		UserID:      id,
		IsAvailable: available,
		User:        entity.User{ID: id, Role: entity.RoleStaff, IsActive: &active},
	}
	m.profiles[id] = p
	return p
}

func (m *mockDoctorRepo) Create(_ context.Context, p *entity.DoctorProfile) error {
	m.profiles[p.UserID] = p
	return nil
}

func (m *mockDoctorRepo) FindByUserID(_ context.Context, id uuid.UUID) (*entity.DoctorProfile, error) {
	return m.profiles[id], nil
}

func (m *mockDoctorRepo) FindAll(_ context.Context, _ repository.DoctorFilter) ([]entity.DoctorProfile, error) {
	var out []entity.DoctorProfile
	for _, p := range m.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockDoctorRepo) Update(_ context.Context, p *entity.DoctorProfile) error {
	m.profiles[p.UserID] = p
	return nil
}

func (m *mockDoctorRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := m.profiles[id]; !ok {
		return 0, nil
	}
	delete(m.profiles, id)
	return 1, nil
}

type mockAppointmentRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.Appointment
	calls int
}

func newMockAppointmentRepo() *mockAppointmentRepo {
	return &mockAppointmentRepo{items: make(map[uuid.UUID]*entity.Appointment)}
}

func (m *mockAppointmentRepo) Create(_ context.Context, a *entity.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = entity.AppointmentStatusUpcoming
	}
	m.items[a.ID] = a
	return nil
}

func (m *mockAppointmentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[id], nil
}

func (m *mockAppointmentRepo) FindAll(_ context.Context, _ entity.AppointmentFilter) ([]entity.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.Appointment
	for _, a := range m.items {
		out = append(out, *a)
	}
	return out, nil
}

func (m *mockAppointmentRepo) BookedTimes(_ context.Context, doctorID uuid.UUID, date time.Time) ([]entity.ClockTime, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	var out []entity.ClockTime
	for _, a := range m.items {
		if a.DoctorID == doctorID && a.AppointmentDate.Equal(date) && !a.IsCancelled() {
			out = append(out, a.AppointmentTime)
		}
	}
	return out, nil
}

func (m *mockAppointmentRepo) IsBooked(_ context.Context, doctorID uuid.UUID, date time.Time, at entity.ClockTime) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.items {
		if a.DoctorID == doctorID && a.AppointmentDate.Equal(date) && a.AppointmentTime == at && !a.IsCancelled() {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAppointmentRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to entity.AppointmentStatus, notes *string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok || a.Status != from {
		return 0, nil
	}
	a.Status = to
	if notes != nil {
		a.Notes = *notes
	}
	return 1, nil
}

func (m *mockAppointmentRepo) CountByStatus(_ context.Context) (map[entity.AppointmentStatus]int64, error) {
	return nil, nil
}

func (m *mockAppointmentRepo) CountByDoctor(_ context.Context) ([]repository.DoctorAppointmentCount, error) {
	return nil, nil
}

type mockAuditRepo struct {
	mu   sync.Mutex
	logs []entity.AuditLog
	err  error
}

func (m *mockAuditRepo) Create(_ context.Context, log *entity.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	log.ID = int64(len(m.logs) + 1)
	m.logs = append(m.logs, *log)
	return nil
}

func (m *mockAuditRepo) FindAll(_ context.Context, _, _ int) ([]entity.AuditLog, int64, error) {
	return m.logs, int64(len(m.logs)), nil
}

func (m *mockAuditRepo) FindByID(_ context.Context, id int64) (*entity.AuditLog, error) {
	for i := range m.logs {
		if m.logs[i].ID == id {
			return &m.logs[i], nil
		}
	}
	return nil, nil
}
