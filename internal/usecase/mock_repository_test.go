package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"clinic-appointment/internal/domain/entity"
	"clinic-appointment/internal/domain/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errStorageDown = errors.New("storage down")

type mockTransactor struct {
	calls int
}

func (m *mockTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

// Users

type mockUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return fmt.Errorf("create user: %w", repository.ErrDuplicate)
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

// Doctor profiles

type mockDoctorRepo struct {
	mu       sync.Mutex
	users    *mockUserRepo
	profiles map[uuid.UUID]*entity.DoctorProfile
}

func newMockDoctorRepo(users *mockUserRepo) *mockDoctorRepo {
	return &mockDoctorRepo{users: users, profiles: make(map[uuid.UUID]*entity.DoctorProfile)}
}

func (m *mockDoctorRepo) Create(_ context.Context, profile *entity.DoctorProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *profile
	m.profiles[profile.UserID] = &copied
	return nil
}

func (m *mockDoctorRepo) withUser(ctx context.Context, profile entity.DoctorProfile) entity.DoctorProfile {
	if user, _ := m.users.FindByID(ctx, profile.UserID); user != nil {
		profile.User = *user
	}
	return profile
}

func (m *mockDoctorRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error) {
	m.mu.Lock()
	profile, ok := m.profiles[userID]
	m.mu.Unlock()
	if !ok {
		return nil, nil
	}
	found := m.withUser(ctx, *profile)
	return &found, nil
}

func (m *mockDoctorRepo) FindAll(ctx context.Context, filter repository.DoctorFilter) ([]entity.DoctorProfile, error) {
	m.mu.Lock()
	var out []entity.DoctorProfile
	for _, profile := range m.profiles {
		out = append(out, *profile)
	}
	m.mu.Unlock()

	filtered := out[:0]
	for _, profile := range out {
		profile = m.withUser(ctx, profile)
		if filter.OnlyBookable && !profile.Bookable() {
			continue
		}
		if filter.BranchID != nil && (profile.BranchID == nil || *profile.BranchID != *filter.BranchID) {
			continue
		}
		filtered = append(filtered, profile)
	}
	return filtered, nil
}

func (m *mockDoctorRepo) Update(_ context.Context, profile *entity.DoctorProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *profile
	m.profiles[profile.UserID] = &copied
	return nil
}

func (m *mockDoctorRepo) Delete(_ context.Context, userID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[userID]; !ok {
		return 0, nil
	}
	delete(m.profiles, userID)
	return 1, nil
}

// Branches

type mockBranchRepo struct {
	mu       sync.Mutex
	nextID   int
	branches map[int]*entity.Branch
}

func newMockBranchRepo() *mockBranchRepo {
	return &mockBranchRepo{branches: make(map[int]*entity.Branch)}
}

func (m *mockBranchRepo) Create(_ context.Context, branch *entity.Branch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	branch.ID = m.nextID
	copied := *branch
	m.branches[branch.ID] = &copied
	return nil
}

func (m *mockBranchRepo) FindByID(_ context.Context, id int) (*entity.Branch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	branch, ok := m.branches[id]
	if !ok {
		return nil, nil
	}
	copied := *branch
	return &copied, nil
}

func (m *mockBranchRepo) FindAll(_ context.Context, onlyActive bool) ([]entity.Branch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.Branch
	for _, branch := range m.branches {
		if onlyActive && !branch.IsActive {
			continue
		}
		out = append(out, *branch)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockBranchRepo) Update(_ context.Context, branch *entity.Branch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *branch
	m.branches[branch.ID] = &copied
	return nil
}

// Patient profiles

type mockPatientRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*entity.PatientProfile
}

func newMockPatientRepo() *mockPatientRepo {
	return &mockPatientRepo{profiles: make(map[uuid.UUID]*entity.PatientProfile)}
}

func (m *mockPatientRepo) Create(_ context.Context, profile *entity.PatientProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *profile
	m.profiles[profile.UserID] = &copied
	return nil
}

func (m *mockPatientRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.PatientProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	profile, ok := m.profiles[userID]
	if !ok {
		return nil, nil
	}
	copied := *profile
	return &copied, nil
}

func (m *mockPatientRepo) Update(_ context.Context, profile *entity.PatientProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *profile
	m.profiles[profile.UserID] = &copied
	return nil
}

func (m *mockPatientRepo) NextPatientCode(_ context.Context, day time.Time) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prefix := entity.PatientCodePrefix(day)
	last := ""
	for _, profile := range m.profiles {
		if strings.HasPrefix(profile.PatientCode, prefix) && profile.PatientCode > last {
			last = profile.PatientCode
		}
	}
	return entity.NextPatientCode(prefix, last), nil
}

// Schedule windows

type mockScheduleRepo struct {
	mu      sync.Mutex
	nextID  int
	windows map[int]*entity.ScheduleWindow
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{windows: make(map[int]*entity.ScheduleWindow)}
}

func (m *mockScheduleRepo) dayTaken(w *entity.ScheduleWindow) bool {
	for id, existing := range m.windows {
		if id != w.ID && existing.DoctorID == w.DoctorID && existing.DayOfWeek == w.DayOfWeek {
			return true
		}
	}
	return false
}

func (m *mockScheduleRepo) Create(_ context.Context, w *entity.ScheduleWindow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dayTaken(w) {
		return fmt.Errorf("create schedule window: %w", repository.ErrDuplicate)
	}
	m.nextID++
	w.ID = m.nextID
	copied := *w
	m.windows[w.ID] = &copied
	return nil
}

func (m *mockScheduleRepo) FindByID(_ context.Context, id int) (*entity.ScheduleWindow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.windows[id]
	if !ok {
		return nil, nil
	}
	copied := *w
	return &copied, nil
}

func (m *mockScheduleRepo) FindByDoctorAndDay(_ context.Context, doctorID uuid.UUID, day int) (*entity.ScheduleWindow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.windows {
		if w.DoctorID == doctorID && w.DayOfWeek == day {
			copied := *w
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockScheduleRepo) FindAll(_ context.Context, filter repository.ScheduleFilter) ([]entity.ScheduleWindow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []entity.ScheduleWindow{}
	for _, w := range m.windows {
		if filter.DoctorID != nil && w.DoctorID != *filter.DoctorID {
			continue
		}
		if filter.OnlyBookable && !w.IsAvailable {
			continue
		}
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockScheduleRepo) Update(_ context.Context, w *entity.ScheduleWindow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dayTaken(w) {
		return fmt.Errorf("update schedule window: %w", repository.ErrDuplicate)
	}
	copied := *w
	m.windows[w.ID] = &copied
	return nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, id int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.windows[id]; !ok {
		return 0, nil
	}
	delete(m.windows, id)
	return 1, nil
}

// Appointments

// mockAppointmentRepo enforces the same uniqueness rule as the partial
// index: one non-cancelled appointment per doctor, date and time.
type mockAppointmentRepo struct {
	mu        sync.Mutex
	items     map[uuid.UUID]*entity.Appointment
	createErr error
	// beforeCreate runs without the lock held, between the availability
	// check and the insert.
	beforeCreate func()
}

func newMockAppointmentRepo() *mockAppointmentRepo {
	return &mockAppointmentRepo{items: make(map[uuid.UUID]*entity.Appointment)}
}

func (m *mockAppointmentRepo) Create(_ context.Context, a *entity.Appointment) error {
	if m.beforeCreate != nil {
		m.beforeCreate()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	for _, existing := range m.items {
		if existing.DoctorID == a.DoctorID &&
			existing.AppointmentDate.Equal(a.AppointmentDate) &&
			existing.AppointmentTime == a.AppointmentTime &&
			!existing.IsCancelled() {
			return fmt.Errorf("create appointment: %w", repository.ErrDuplicate)
		}
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	copied := *a
	m.items[a.ID] = &copied
	return nil
}

func (m *mockAppointmentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (m *mockAppointmentRepo) FindAll(_ context.Context, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []entity.Appointment{}
	for _, a := range m.items {
		if filter.PatientID != nil && a.PatientID != *filter.PatientID {
			continue
		}
		if filter.DoctorID != nil && a.DoctorID != *filter.DoctorID {
			continue
		}
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		if filter.Date != nil && !a.AppointmentDate.Equal(*filter.Date) {
			continue
		}
		if filter.FromDate != nil && a.AppointmentDate.Before(*filter.FromDate) {
			continue
		}
		excluded := false
		for _, s := range filter.ExcludeStatus {
			if a.Status == s {
				excluded = true
			}
		}
		if excluded {
			continue
		}
		out = append(out, *a)
	}

	sort.Slice(out, func(i, j int) bool {
		ti := out[i].AppointmentTime.On(out[i].AppointmentDate, time.UTC)
		tj := out[j].AppointmentTime.On(out[j].AppointmentDate, time.UTC)
		if filter.Ascending {
			return ti.Before(tj)
		}
		return tj.Before(ti)
	})
	return out, nil
}

func (m *mockAppointmentRepo) BookedTimes(_ context.Context, doctorID uuid.UUID, date time.Time) ([]entity.ClockTime, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
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
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[entity.AppointmentStatus]int64)
	for _, a := range m.items {
		counts[a.Status]++
	}
	return counts, nil
}

func (m *mockAppointmentRepo) CountByDoctor(_ context.Context) ([]repository.DoctorAppointmentCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	totals := make(map[uuid.UUID]int64)
	for _, a := range m.items {
		totals[a.DoctorID]++
	}
	out := make([]repository.DoctorAppointmentCount, 0, len(totals))
	for id, total := range totals {
		out = append(out, repository.DoctorAppointmentCount{DoctorID: id, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out, nil
}

func (m *mockAppointmentRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Audit log

type mockAuditRepo struct {
	mu   sync.Mutex
	logs []entity.AuditLog
}

func (m *mockAuditRepo) Create(_ context.Context, log *entity.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	log.ID = int64(len(m.logs) + 1)
	m.logs = append(m.logs, *log)
	return nil
}

func (m *mockAuditRepo) FindAll(_ context.Context, limit, offset int) ([]entity.AuditLog, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := int64(len(m.logs))
	if offset >= len(m.logs) {
		return []entity.AuditLog{}, total, nil
	}
	end := offset + limit
	if end > len(m.logs) {
		end = len(m.logs)
	}
	return append([]entity.AuditLog(nil), m.logs[offset:end]...), total, nil
}

func (m *mockAuditRepo) FindByID(_ context.Context, id int64) (*entity.AuditLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.logs {
		if m.logs[i].ID == id {
			copied := m.logs[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockAuditRepo) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.logs))
	for i, log := range m.logs {
		out[i] = log.Action
	}
	return out
}

// Visit records

type mockVisitRecordRepo struct {
	mu      sync.Mutex
	records []entity.VisitRecord
	findErr error
}

func (m *mockVisitRecordRepo) Create(_ context.Context, record *entity.VisitRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.records {
		if existing.AppointmentID == record.AppointmentID {
			return fmt.Errorf("create visit record: %w", repository.ErrDuplicate)
		}
	}
	record.ID = primitive.NewObjectID()
	m.records = append(m.records, *record)
	return nil
}

func (m *mockVisitRecordRepo) FindByAppointmentID(_ context.Context, appointmentID string) (*entity.VisitRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	for i := range m.records {
		if m.records[i].AppointmentID == appointmentID {
			copied := m.records[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockVisitRecordRepo) FindAll(_ context.Context, filter entity.VisitRecordFilter) ([]entity.VisitRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []entity.VisitRecord{}
	for _, r := range m.records {
		if filter.PatientID != "" && r.PatientID != filter.PatientID {
			continue
		}
		if filter.DoctorID != "" && r.DoctorID != filter.DoctorID {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[j].VisitDate.Before(out[i].VisitDate) })
	return out, nil
}
