package service

import (
	"context"
	"io"
	"testing"
	"time"

	"clinic-appointment/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-03-10 is a Monday.
var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func hm(s string) entity.ClockTime {
	c, err := entity.ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func hms(list ...string) []entity.ClockTime {
	out := make([]entity.ClockTime, 0, len(list))
	for _, s := range list {
		out = append(out, hm(s))
	}
	return out
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

type availabilityFixture struct {
	svc          *AvailabilityService
	schedules    *mockScheduleRepo
	doctors      *mockDoctorRepo
	appointments *mockAppointmentRepo
	doctorID     uuid.UUID
}

func newAvailabilityFixture(now time.Time, cache *AvailabilityCache) *availabilityFixture {
	f := &availabilityFixture{
		schedules:    newMockScheduleRepo(),
		doctors:      newMockDoctorRepo(),
		appointments: newMockAppointmentRepo(),
		doctorID:     uuid.New(),
	}
	f.doctors.addDoctor(f.doctorID, true)
	f.schedules.put(&entity.ScheduleWindow{
		ID:          1,
		DoctorID:    f.doctorID,
		DayOfWeek:   0,
		StartTime:   hm("09:00"),
		EndTime:     hm("12:00"),
		IsAvailable: true,
	})
	f.svc = NewAvailabilityService(newTestLogger(), f.schedules, f.doctors, f.appointments, cache, 30*time.Minute, time.UTC, fixedClock(now))
	return f
}

func (f *availabilityFixture) book(date time.Time, at string, status entity.AppointmentStatus) *entity.Appointment {
	a := &entity.Appointment{
		PatientID:       uuid.New(),
		DoctorID:        f.doctorID,
		AppointmentDate: date,
		AppointmentTime: hm(at),
		Status:          status,
	}
	_ = f.appointments.Create(context.Background(), a)
	return a
}

func TestGenerateSlots_ExcludesBookedTimes(t *testing.T) {
	window := &entity.ScheduleWindow{StartTime: hm("09:00"), EndTime: hm("12:00"), IsAvailable: true}
	booked := map[entity.ClockTime]bool{hm("10:00"): true}

	slots := GenerateSlots(window, monday, 30*time.Minute, booked, nil)

	assert.Equal(t, hms("09:00", "09:30", "10:30", "11:00", "11:30"), slots)
}

func TestGenerateSlots_NotBeforeRounding(t *testing.T) {
	window := &entity.ScheduleWindow{StartTime: hm("09:00"), EndTime: hm("12:00"), IsAvailable: true}

	tests := []struct {
		name string
		now  time.Time
		want []entity.ClockTime
	}{
		{"between grid points", monday.Add(10*time.Hour + 15*time.Minute), hms("10:30", "11:00", "11:30")},
		{"exactly on a grid point", monday.Add(10*time.Hour + 30*time.Minute), hms("10:30", "11:00", "11:30")},
		{"one second past a grid point", monday.Add(10*time.Hour + 30*time.Minute + time.Second), hms("11:00", "11:30")},
		{"before the window", monday.Add(7 * time.Hour), hms("09:00", "09:30", "10:00", "10:30", "11:00", "11:30")},
		{"after the window", monday.Add(13 * time.Hour), hms()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := tt.now
			slots := GenerateSlots(window, monday, 30*time.Minute, nil, &now)
			assert.Equal(t, tt.want, slots)
		})
	}
}

func TestGenerateSlots_WindowEdges(t *testing.T) {
	t.Run("unavailable window", func(t *testing.T) {
		window := &entity.ScheduleWindow{StartTime: hm("09:00"), EndTime: hm("12:00"), IsAvailable: false}
		assert.Empty(t, GenerateSlots(window, monday, 30*time.Minute, nil, nil))
	})

	t.Run("no window", func(t *testing.T) {
		assert.Empty(t, GenerateSlots(nil, monday, 30*time.Minute, nil, nil))
	})

	t.Run("end not on the grid", func(t *testing.T) {
		window := &entity.ScheduleWindow{StartTime: hm("09:00"), EndTime: hm("10:45"), IsAvailable: true}
		assert.Equal(t, hms("09:00", "09:30", "10:00", "10:30"), GenerateSlots(window, monday, 30*time.Minute, nil, nil))
	})

	t.Run("stops at midnight", func(t *testing.T) {
		window := &entity.ScheduleWindow{StartTime: hm("23:00"), EndTime: hm("23:59"), IsAvailable: true}
		assert.Equal(t, hms("23:00", "23:30"), GenerateSlots(window, monday, 30*time.Minute, nil, nil))
	})

	t.Run("zero duration generates nothing", func(t *testing.T) {
		window := &entity.ScheduleWindow{StartTime: hm("09:00"), EndTime: hm("12:00"), IsAvailable: true}
		assert.Empty(t, GenerateSlots(window, monday, 0, nil, nil))
	})

	t.Run("slots stay inside the window", func(t *testing.T) {
		window := &entity.ScheduleWindow{StartTime: hm("08:10"), EndTime: hm("17:05"), IsAvailable: true}
		slots := GenerateSlots(window, monday, 20*time.Minute, nil, nil)
		require.NotEmpty(t, slots)
		for _, s := range slots {
			assert.True(t, window.Covers(s), s.String())
			assert.Zero(t, (int(s)-int(window.StartTime))%20, s.String())
		}
	})
}

func TestAvailableSlots(t *testing.T) {
	ctx := context.Background()
	sunday := monday.AddDate(0, 0, -1).Add(12 * time.Hour)

	t.Run("future day skips live bookings only", func(t *testing.T) {
		f := newAvailabilityFixture(sunday, nil)
		f.book(monday, "10:00", entity.AppointmentStatusUpcoming)
		f.book(monday, "11:00", entity.AppointmentStatusCancelled)

		slots, err := f.svc.AvailableSlots(ctx, f.doctorID, monday)

		require.NoError(t, err)
		assert.Equal(t, hms("09:00", "09:30", "10:30", "11:00", "11:30"), slots)
	})

	t.Run("today drops slots before now", func(t *testing.T) {
		f := newAvailabilityFixture(monday.Add(10*time.Hour+15*time.Minute), nil)

		slots, err := f.svc.AvailableSlots(ctx, f.doctorID, monday)

		require.NoError(t, err)
		assert.Equal(t, hms("10:30", "11:00", "11:30"), slots)
	})

	t.Run("past day is empty", func(t *testing.T) {
		f := newAvailabilityFixture(monday.AddDate(0, 0, 1), nil)

		slots, err := f.svc.AvailableSlots(ctx, f.doctorID, monday)

		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("day without window is empty", func(t *testing.T) {
		f := newAvailabilityFixture(sunday, nil)

		slots, err := f.svc.AvailableSlots(ctx, f.doctorID, monday.AddDate(0, 0, 1))

		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("unavailable doctor is empty", func(t *testing.T) {
		f := newAvailabilityFixture(sunday, nil)
		f.doctors.profiles[f.doctorID].IsAvailable = false

		slots, err := f.svc.AvailableSlots(ctx, f.doctorID, monday)

		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("unknown doctor is empty", func(t *testing.T) {
		f := newAvailabilityFixture(sunday, nil)

		slots, err := f.svc.AvailableSlots(ctx, uuid.New(), monday)

		require.NoError(t, err)
		assert.Empty(t, slots)
	})
}

func TestAvailableSlots_ClinicTimeZone(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	// 03:30 UTC is 10:30 on Monday in the clinic
	now := time.Date(2025, 3, 10, 3, 30, 0, 0, time.UTC)

	f := newAvailabilityFixture(now, nil)
	f.svc.loc = loc

	slots, err := f.svc.AvailableSlots(context.Background(), f.doctorID, monday)

	require.NoError(t, err)
	assert.Equal(t, hms("10:30", "11:00", "11:30"), slots)
}

func TestIsSlotAvailable(t *testing.T) {
	ctx := context.Background()
	now := monday.Add(10*time.Hour + 15*time.Minute)
	nextMonday := monday.AddDate(0, 0, 7)

	f := newAvailabilityFixture(now, nil)
	f.book(nextMonday, "10:00", entity.AppointmentStatusUpcoming)
	f.book(nextMonday, "11:00", entity.AppointmentStatusCancelled)

	tests := []struct {
		name string
		date time.Time
		at   string
		want bool
	}{
		{"free slot", nextMonday, "09:30", true},
		{"booked slot", nextMonday, "10:00", false},
		{"cancelled booking frees slot", nextMonday, "11:00", true},
		{"window end is exclusive", nextMonday, "12:00", false},
		{"before window", nextMonday, "08:30", false},
		{"day without window", nextMonday.AddDate(0, 0, 1), "09:30", false},
		{"past date", monday.AddDate(0, 0, -7), "09:30", false},
		{"today already passed", monday, "10:00", false},
		{"today still ahead", monday, "10:30", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := f.svc.IsSlotAvailable(ctx, f.doctorID, tt.date, hm(tt.at))
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestAvailabilityRange(t *testing.T) {
	ctx := context.Background()
	// Wednesday before the fixture Monday
	now := monday.AddDate(0, 0, -5).Add(8 * time.Hour)
	f := newAvailabilityFixture(now, nil)
	f.book(monday, "09:00", entity.AppointmentStatusUpcoming)

	result, err := f.svc.AvailabilityRange(ctx, f.doctorID, monday.AddDate(0, 0, -14), monday.AddDate(0, 0, 7))

	require.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, hms("09:30", "10:00", "10:30", "11:00", "11:30"), result["2025-03-10"])
	assert.Equal(t, hms("09:00", "09:30", "10:00", "10:30", "11:00", "11:30"), result["2025-03-17"])
}

func TestAvailabilityRange_OmitsFullyBookedDays(t *testing.T) {
	ctx := context.Background()
	f := newAvailabilityFixture(monday.AddDate(0, 0, -1), nil)
	for _, at := range []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"} {
		f.book(monday, at, entity.AppointmentStatusUpcoming)
	}

	result, err := f.svc.AvailabilityRange(ctx, f.doctorID, monday, monday)

	require.NoError(t, err)
	assert.Empty(t, result)
}
