package service

import (
	"context"
	"fmt"
	"time"

	"clinic-appointment/internal/domain/entity"
	"clinic-appointment/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Clock returns the current instant. Tests substitute a fixed one.
type Clock func() time.Time

// AvailabilityService computes open slots from a doctor's weekly window
// and the booking ledger. Every "today" and "now" decision is made in loc.
type AvailabilityService struct {
	log             *logrus.Logger
	scheduleRepo    repository.ScheduleRepository
	doctorRepo      repository.DoctorProfileRepository
	appointmentRepo repository.AppointmentRepository
	cache           *AvailabilityCache
	slotDuration    time.Duration
	loc             *time.Location
	now             Clock
}

func NewAvailabilityService(
	log *logrus.Logger,
	scheduleRepo repository.ScheduleRepository,
	doctorRepo repository.DoctorProfileRepository,
	appointmentRepo repository.AppointmentRepository,
	cache *AvailabilityCache,
	slotDuration time.Duration,
	loc *time.Location,
	now Clock,
) *AvailabilityService {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &AvailabilityService{
		log:             log,
		scheduleRepo:    scheduleRepo,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		cache:           cache,
		slotDuration:    slotDuration,
		loc:             loc,
		now:             now,
	}
}

// Now is the current instant in the clinic time zone.
func (s *AvailabilityService) Now() time.Time {
	return s.now().In(s.loc)
}

// Today is the clinic's current calendar day.
func (s *AvailabilityService) Today() time.Time {
	return entity.DateOf(s.Now())
}

func (s *AvailabilityService) Location() *time.Location {
	return s.loc
}

func (s *AvailabilityService) SlotDuration() time.Duration {
	return s.slotDuration
}

// GenerateSlots walks the window from its start in steps of slotDuration,
// skipping booked times and, when notBefore is set, every slot that starts
// before it. Generation stops at the window end, at midnight, or as soon as
// a step fails to advance.
func GenerateSlots(
	window *entity.ScheduleWindow,
	date time.Time,
	slotDuration time.Duration,
	booked map[entity.ClockTime]bool,
	notBefore *time.Time,
) []entity.ClockTime {
	slots := []entity.ClockTime{}
	if window == nil || !window.IsAvailable {
		return slots
	}

	step := entity.ClockTime(slotDuration / time.Minute)
	if step <= 0 {
		return slots
	}

	for current := window.StartTime; current < window.EndTime; {
		if !booked[current] && (notBefore == nil || !current.On(date, notBefore.Location()).Before(*notBefore)) {
			slots = append(slots, current)
		}

		next := current + step
		if next <= current || next <= window.StartTime || !next.Valid() {
			break
		}
		current = next
	}
	return slots
}

// AvailableSlots lists the open slots of doctorID on date. Past dates,
// missing or closed windows and unbookable doctors yield an empty list.
func (s *AvailabilityService) AvailableSlots(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]entity.ClockTime, error) {
	date = entity.DateOf(date)
	now := s.Now()
	today := entity.DateOf(now)
	if date.Before(today) {
		return []entity.ClockTime{}, nil
	}

	var notBefore *time.Time
	if date.Equal(today) {
		notBefore = &now
	}

	version, cached, hit := s.cache.Lookup(ctx, doctorID, date)
	if hit {
		return filterNotBefore(cached, date, notBefore), nil
	}

	slots, err := s.computeSlots(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	s.cache.Store(ctx, doctorID, version, date, slots)
	return filterNotBefore(slots, date, notBefore), nil
}

// computeSlots reads the window and ledger without the clock filter so the
// result can be shared across requests.
func (s *AvailabilityService) computeSlots(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]entity.ClockTime, error) {
	bookable, err := s.doctorBookable(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if !bookable {
		return []entity.ClockTime{}, nil
	}

	window, err := s.scheduleRepo.FindByDoctorAndDay(ctx, doctorID, entity.WeekdayIndex(date))
	if err != nil {
		s.log.Warnf("Failed to find schedule window for doctor %s: %+v", doctorID, err)
		return nil, fmt.Errorf("find schedule window: %w", err)
	}
	if window == nil || !window.IsAvailable {
		return []entity.ClockTime{}, nil
	}

	bookedTimes, err := s.appointmentRepo.BookedTimes(ctx, doctorID, date)
	if err != nil {
		s.log.Warnf("Failed to load booked times for doctor %s on %s: %+v", doctorID, date.Format(entity.DateLayout), err)
		return nil, fmt.Errorf("load booked times: %w", err)
	}
	booked := make(map[entity.ClockTime]bool, len(bookedTimes))
	for _, t := range bookedTimes {
		booked[t] = true
	}

	return GenerateSlots(window, date, s.slotDuration, booked, nil), nil
}

// IsSlotAvailable answers from the ledger directly, never from the cache.
func (s *AvailabilityService) IsSlotAvailable(ctx context.Context, doctorID uuid.UUID, date time.Time, at entity.ClockTime) (bool, error) {
	date = entity.DateOf(date)
	now := s.Now()
	today := entity.DateOf(now)

	if date.Before(today) {
		return false, nil
	}
	if date.Equal(today) && at.On(date, s.loc).Before(now) {
		return false, nil
	}

	bookable, err := s.doctorBookable(ctx, doctorID)
	if err != nil {
		return false, err
	}
	if !bookable {
		return false, nil
	}

	window, err := s.scheduleRepo.FindByDoctorAndDay(ctx, doctorID, entity.WeekdayIndex(date))
	if err != nil {
		s.log.Warnf("Failed to find schedule window for doctor %s: %+v", doctorID, err)
		return false, fmt.Errorf("find schedule window: %w", err)
	}
	if window == nil || !window.IsAvailable || !window.Covers(at) {
		return false, nil
	}

	booked, err := s.appointmentRepo.IsBooked(ctx, doctorID, date, at)
	if err != nil {
		s.log.Warnf("Failed to check booking for doctor %s: %+v", doctorID, err)
		return false, fmt.Errorf("check booking: %w", err)
	}
	return !booked, nil
}

// AvailabilityRange returns open slots per day in [start, end]. Past days
// and days without open slots are omitted. Callers validate the bounds.
func (s *AvailabilityService) AvailabilityRange(ctx context.Context, doctorID uuid.UUID, start, end time.Time) (map[string][]entity.ClockTime, error) {
	start = entity.DateOf(start)
	end = entity.DateOf(end)
	today := s.Today()
	if start.Before(today) {
		start = today
	}

	result := make(map[string][]entity.ClockTime)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		slots, err := s.AvailableSlots(ctx, doctorID, day)
		if err != nil {
			return nil, err
		}
		if len(slots) > 0 {
			result[day.Format(entity.DateLayout)] = slots
		}
	}
	return result, nil
}

func (s *AvailabilityService) doctorBookable(ctx context.Context, doctorID uuid.UUID) (bool, error) {
	profile, err := s.doctorRepo.FindByUserID(ctx, doctorID)
	if err != nil {
		s.log.Warnf("Failed to find doctor profile %s: %+v", doctorID, err)
		return false, fmt.Errorf("find doctor profile: %w", err)
	}
	return profile != nil && profile.Bookable(), nil
}

func filterNotBefore(slots []entity.ClockTime, date time.Time, notBefore *time.Time) []entity.ClockTime {
	if notBefore == nil {
		return slots
	}
	out := make([]entity.ClockTime, 0, len(slots))
	for _, slot := range slots {
		if !slot.On(date, notBefore.Location()).Before(*notBefore) {
			out = append(out, slot)
		}
	}
	return out
}

// Invalidate drops every cached slot list of doctorID. Call it after any
// write that changes the doctor's schedule or bookings.
func (s *AvailabilityService) Invalidate(ctx context.Context, doctorID uuid.UUID) {
	s.cache.Invalidate(ctx, doctorID)
}
