package http

import (
	"net/http"

	"clinic-appointment/internal/delivery/http/handler"
	"clinic-appointment/internal/delivery/http/middleware"
	"clinic-appointment/internal/domain/entity"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	router                *mux.Router
	gatherer              prometheus.Gatherer
	authHandler           *handler.AuthHandler
	doctorHandler         *handler.DoctorHandler
	availabilityHandler   *handler.AvailabilityHandler
	doctorScheduleHandler *handler.DoctorScheduleHandler
	appointmentHandler    *handler.AppointmentHandler
	visitRecordHandler    *handler.VisitRecordHandler
	auditLogHandler       *handler.AuditLogHandler
	patientHandler        *handler.PatientHandler
	branchHandler         *handler.BranchHandler
	authMiddleware        *middleware.AuthMiddleware
	corsMiddleware        *middleware.CORSMiddleware
	loggingMiddleware     *middleware.LoggingMiddleware
	metricsMiddleware     *middleware.MetricsMiddleware
}

func NewRouter(
	gatherer prometheus.Gatherer,
	authHandler *handler.AuthHandler,
	doctorHandler *handler.DoctorHandler,
	availabilityHandler *handler.AvailabilityHandler,
	doctorScheduleHandler *handler.DoctorScheduleHandler,
	appointmentHandler *handler.AppointmentHandler,
	visitRecordHandler *handler.VisitRecordHandler,
	auditLogHandler *handler.AuditLogHandler,
	patientHandler *handler.PatientHandler,
	branchHandler *handler.BranchHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
	metricsMiddleware *middleware.MetricsMiddleware,
) *Router {
	return &Router{
		router:                mux.NewRouter(),
		gatherer:              gatherer,
		authHandler:           authHandler,
		doctorHandler:         doctorHandler,
		availabilityHandler:   availabilityHandler,
		doctorScheduleHandler: doctorScheduleHandler,
		appointmentHandler:    appointmentHandler,
		visitRecordHandler:    visitRecordHandler,
		auditLogHandler:       auditLogHandler,
		patientHandler:        patientHandler,
		branchHandler:         branchHandler,
		authMiddleware:        authMiddleware,
		corsMiddleware:        corsMiddleware,
		loggingMiddleware:     loggingMiddleware,
		metricsMiddleware:     metricsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	r.router.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)
	r.router.Handle("/metrics", promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/patient", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/register/staff", r.authHandler.RegisterStaff).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := r.protected(api, "/auth")
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Doctors and their availability
	doctors := r.protected(api, "/doctors")
	doctors.HandleFunc("", r.doctorHandler.ListDoctors).Methods(http.MethodGet)
	doctors.Handle("/me", middleware.RequireStaff(http.HandlerFunc(r.doctorHandler.UpdateOwnProfile))).Methods(http.MethodPut)
	doctors.HandleFunc("/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	doctors.HandleFunc("/{id}/slots", r.availabilityHandler.GetSlots).Methods(http.MethodGet)
	doctors.HandleFunc("/{id}/slots/check", r.availabilityHandler.CheckSlot).Methods(http.MethodGet)
	doctors.HandleFunc("/{id}/availability", r.availabilityHandler.GetAvailabilityRange).Methods(http.MethodGet)

	// Clinic branches
	branches := r.protected(api, "/branches")
	branches.HandleFunc("", r.branchHandler.ListBranches).Methods(http.MethodGet)
	branches.HandleFunc("/{id}", r.branchHandler.GetBranch).Methods(http.MethodGet)
	branches.HandleFunc("/{id}/doctors", r.branchHandler.ListBranchDoctors).Methods(http.MethodGet)

	// Weekly schedule windows
	schedules := r.protected(api, "/schedules")
	schedules.HandleFunc("", r.doctorScheduleHandler.ListSchedules).Methods(http.MethodGet)
	staffOrAdmin := middleware.RequireRole(entity.RoleStaff, entity.RoleAdmin)
	schedules.Handle("", staffOrAdmin(http.HandlerFunc(r.doctorScheduleHandler.CreateSchedule))).Methods(http.MethodPost)
	schedules.Handle("/{id}", staffOrAdmin(http.HandlerFunc(r.doctorScheduleHandler.UpdateSchedule))).Methods(http.MethodPut)
	schedules.Handle("/{id}", staffOrAdmin(http.HandlerFunc(r.doctorScheduleHandler.DeleteSchedule))).Methods(http.MethodDelete)

	// Appointments; fixed paths go before /{id}
	appointments := r.protected(api, "/appointments")
	appointments.HandleFunc("", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	appointments.HandleFunc("", r.appointmentHandler.ListAppointments).Methods(http.MethodGet)
	appointments.HandleFunc("/upcoming", r.appointmentHandler.UpcomingAppointments).Methods(http.MethodGet)
	appointments.HandleFunc("/history", r.appointmentHandler.AppointmentHistory).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPost)
	appointments.HandleFunc("/{id}/attended", r.appointmentHandler.MarkAttended).Methods(http.MethodPost)
	appointments.HandleFunc("/{id}/missed", r.appointmentHandler.MarkMissed).Methods(http.MethodPost)
	appointments.HandleFunc("/{id}/status", r.appointmentHandler.UpdateStatus).Methods(http.MethodPatch)
	appointments.HandleFunc("/{id}/visit-records", r.visitRecordHandler.CreateVisitRecord).Methods(http.MethodPost)

	visitRecords := r.protected(api, "/visit-records")
	visitRecords.HandleFunc("", r.visitRecordHandler.ListVisitRecords).Methods(http.MethodGet)

	// Patient self-service
	patients := r.protected(api, "/patients")
	patients.Use(middleware.RequirePatient)
	patients.HandleFunc("/me", r.patientHandler.GetSelfProfile).Methods(http.MethodGet)
	patients.HandleFunc("/me", r.patientHandler.UpdateSelfProfile).Methods(http.MethodPut)

	// Admin routes (protected - admin only)
	admin := r.protected(api, "/admin")
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.DeleteDoctor).Methods(http.MethodDelete)
	admin.HandleFunc("/branches", r.branchHandler.CreateBranch).Methods(http.MethodPost)
	admin.HandleFunc("/branches/{id}", r.branchHandler.UpdateBranch).Methods(http.MethodPut)
	admin.HandleFunc("/reports/appointments", r.appointmentHandler.Report).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Preflight requests never reach a method-bound route.
	r.router.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, req *http.Request) {})

	r.router.Use(r.corsMiddleware.Handle, r.loggingMiddleware.Handle, r.metricsMiddleware.Handle)

	return r.router
}

func (r *Router) protected(parent *mux.Router, prefix string) *mux.Router {
	sub := parent.PathPrefix(prefix).Subrouter()
	sub.Use(r.authMiddleware.Authenticate)
	return sub
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
