package service

import (
	"clinic-appointment/internal/domain/entity"

	"github.com/prometheus/client_golang/prometheus"
)

// BookingMetrics counts booking outcomes.
type BookingMetrics struct {
	created     prometheus.Counter
	conflicts   prometheus.Counter
	transitions *prometheus.CounterVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clinic_appointments_created_total",
			Help: "Appointments successfully booked.",
		}),
		conflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clinic_booking_conflicts_total",
			Help: "Booking attempts rejected because the slot was taken.",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clinic_appointment_transitions_total",
			Help: "Appointment status transitions by target status.",
		}, []string{"status"}),
	}
	if reg != nil {
		reg.MustRegister(m.created, m.conflicts, m.transitions)
	}
	return m
}

func (m *BookingMetrics) AppointmentCreated() {
	if m != nil {
		m.created.Inc()
	}
}

func (m *BookingMetrics) BookingConflict() {
	if m != nil {
		m.conflicts.Inc()
	}
}

func (m *BookingMetrics) Transition(status entity.AppointmentStatus) {
	if m != nil {
		m.transitions.WithLabelValues(string(status)).Inc()
	}
}
