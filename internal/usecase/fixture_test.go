package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"clinic-appointment/config"
	"clinic-appointment/internal/domain/entity"
	"clinic-appointment/internal/service"
	"clinic-appointment/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	promdto "github.com/prometheus/client_model/go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// 2025-03-10 is a Monday.
var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

const testPassword = "s3cret-pass"

// clinic wires every usecase to in-memory repositories, a miniredis backed
// cache and token store, and a clock the test can move.
type clinic struct {
	t   *testing.T
	now time.Time
	log *logrus.Logger

	transactor   *mockTransactor
	users        *mockUserRepo
	doctors      *mockDoctorRepo
	branches     *mockBranchRepo
	patients     *mockPatientRepo
	schedules    *mockScheduleRepo
	appointments *mockAppointmentRepo
	audit        *mockAuditRepo
	visits       *mockVisitRecordRepo

	redis        *miniredis.Miniredis
	tokenStore   *service.TokenStore
	jwtService   *jwt.JWTService
	availability *service.AvailabilityService
	auditService service.AuditService
	registry     *prometheus.Registry
	metrics      *service.BookingMetrics
}

func newClinic(t *testing.T, now time.Time) *clinic {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	users := newMockUserRepo()
	registry := prometheus.NewRegistry()
	c := &clinic{
		t:            t,
		now:          now,
		log:          log,
		transactor:   &mockTransactor{},
		users:        users,
		doctors:      newMockDoctorRepo(users),
		branches:     newMockBranchRepo(),
		patients:     newMockPatientRepo(),
		schedules:    newMockScheduleRepo(),
		appointments: newMockAppointmentRepo(),
		audit:        &mockAuditRepo{},
		visits:       &mockVisitRecordRepo{},
		redis:        mr,
		tokenStore:   service.NewTokenStore(client),
		jwtService: jwt.NewJWTService(config.JWTConfig{
			Secret:        "test-secret",
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 24 * time.Hour,
		}),
		registry: registry,
		metrics:  service.NewBookingMetrics(registry),
	}

	cache := service.NewAvailabilityCache(client, log, time.Minute)
	c.availability = service.NewAvailabilityService(log, c.schedules, c.doctors, c.appointments, cache,
		30*time.Minute, time.UTC, func() time.Time { return c.now })
	c.auditService = service.NewAuditService(log, c.audit)
	return c
}

func (c *clinic) addUser(role entity.Role, name string) *entity.User {
	c.t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		c.t.Fatal(err)
	}
	active := true
	user := &entity.User{
		Email:    name + "@clinic.test",
		Password: string(hashed),
		FullName: name,
		Role:     role,
		IsActive: &active,
	}
	if err := c.users.Create(context.Background(), user); err != nil {
		c.t.Fatal(err)
	}
	return user
}

// addDoctor registers an available doctor working Mondays 09:00-12:00.
func (c *clinic) addDoctor(name string) entity.Actor {
	c.t.Helper()
	user := c.addUser(entity.RoleStaff, name)
	ctx := context.Background()
	_ = c.doctors.Create(ctx, &entity.DoctorProfile{UserID: user.ID, Specialization: "Orthodontics", IsAvailable: true})
	_ = c.schedules.Create(ctx, &entity.ScheduleWindow{
		DoctorID:    user.ID,
		DayOfWeek:   0,
		StartTime:   entity.NewClockTime(9, 0),
		EndTime:     entity.NewClockTime(12, 0),
		IsAvailable: true,
	})
	return user.Actor()
}

func (c *clinic) addPatient(name string) entity.Actor {
	c.t.Helper()
	user := c.addUser(entity.RolePatient, name)
	ctx := context.Background()
	code, _ := c.patients.NextPatientCode(ctx, c.now)
	_ = c.patients.Create(ctx, &entity.PatientProfile{UserID: user.ID, PatientCode: code, Gender: entity.GenderFemale})
	return user.Actor()
}

func (c *clinic) addAdmin() entity.Actor {
	c.t.Helper()
	return c.addUser(entity.RoleAdmin, "admin-"+uuid.NewString()[:8]).Actor()
}

func (c *clinic) appointmentUsecase() AppointmentUsecase {
	return NewAppointmentUsecase(c.log, c.appointments, c.doctors, c.availability, c.auditService, c.metrics)
}

func (c *clinic) scheduleUsecase() DoctorScheduleUsecase {
	return NewDoctorScheduleUsecase(c.log, c.schedules, c.doctors, c.availability, c.auditService)
}

func (c *clinic) doctorUsecase() DoctorProfileUsecase {
	return NewDoctorProfileUsecase(c.transactor, c.log, c.users, c.doctors, c.branches, c.availability, c.tokenStore, c.auditService)
}

func (c *clinic) branchUsecase() BranchUsecase {
	return NewBranchUsecase(c.log, c.branches, c.doctors, c.auditService)
}

func (c *clinic) availabilityUsecase() AvailabilityUsecase {
	return NewAvailabilityUsecase(c.log, c.availability, 30, 90)
}

func (c *clinic) authUsecase() AuthUsecase {
	return NewAuthUsecase(c.transactor, c.log, c.users, c.doctors, c.patients, c.jwtService, c.tokenStore, c.auditService, c.availability.Now)
}

func (c *clinic) visitRecordUsecase() VisitRecordUsecase {
	return NewVisitRecordUsecase(c.log, c.visits, c.appointments, c.auditService, func() time.Time { return c.now })
}

func (c *clinic) patientUsecase() PatientProfileUsecase {
	return NewPatientProfileUsecase(c.transactor, c.log, c.users, c.patients, c.auditService)
}

func (c *clinic) auditLogUsecase() AuditLogUsecase {
	return NewAuditLogUsecase(c.log, c.audit)
}

// counter sums the samples of a registered counter whose labels include
// the given label values.
func (c *clinic) counter(name string, labelValues ...string) float64 {
	c.t.Helper()
	families, err := c.registry.Gather()
	if err != nil {
		c.t.Fatal(err)
	}

	var total float64
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			if hasLabelValues(metric.GetLabel(), labelValues) {
				total += metric.GetCounter().GetValue()
			}
		}
	}
	return total
}

func hasLabelValues(labels []*promdto.LabelPair, values []string) bool {
	for _, want := range values {
		found := false
		for _, label := range labels {
			if label.GetValue() == want {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// book stores an appointment directly, bypassing the booking rules.
func (c *clinic) book(patient, doctor entity.Actor, date time.Time, at string, status entity.AppointmentStatus) *entity.Appointment {
	c.t.Helper()
	clock, err := entity.ParseClock(at)
	if err != nil {
		c.t.Fatal(err)
	}
	a := &entity.Appointment{
		ID:              uuid.New(),
		PatientID:       patient.ID,
		DoctorID:        doctor.ID,
		AppointmentDate: date,
		AppointmentTime: clock,
		Status:          status,
	}
	if err := c.appointments.Create(context.Background(), a); err != nil {
		c.t.Fatal(err)
	}
	return a
}
