package http

import (
	"net/http"

	"mediconnect/internal/delivery/http/handler"
	"mediconnect/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	bookingHandler     *handler.BookingHandler
	appointmentHandler *handler.AppointmentHandler
	serviceHandler     *handler.ServiceHandler
	catalogHandler     *handler.CatalogHandler
	auditLogHandler    *handler.AuditLogHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	bookingHandler *handler.BookingHandler,
	appointmentHandler *handler.AppointmentHandler,
	serviceHandler *handler.ServiceHandler,
	catalogHandler *handler.CatalogHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		bookingHandler:     bookingHandler,
		appointmentHandler: appointmentHandler,
		serviceHandler:     serviceHandler,
		catalogHandler:     catalogHandler,
		auditLogHandler:    auditLogHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Booking wizard (public - patients book without an account)
	bookingSlots := api.PathPrefix("/booking").Subrouter()
	bookingSlots.HandleFunc("/slots", r.bookingHandler.GetSlots).Methods(http.MethodGet)

	sessions := api.PathPrefix("/booking/sessions").Subrouter()
	sessions.HandleFunc("", r.bookingHandler.StartSession).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}", r.bookingHandler.GetSession).Methods(http.MethodGet)
	sessions.HandleFunc("/{id}/contact", r.bookingHandler.SubmitContact).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/selection", r.bookingHandler.SubmitSelection).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/slots", r.bookingHandler.GetSessionSlots).Methods(http.MethodGet)
	sessions.HandleFunc("/{id}/submit", r.bookingHandler.Submit).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/back", r.bookingHandler.Back).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/reset", r.bookingHandler.Reset).Methods(http.MethodPost)

	// Catalog and services (public reads)
	api.HandleFunc("/doctors", r.catalogHandler.GetDoctors).Methods(http.MethodGet)
	api.HandleFunc("/appointment-types", r.catalogHandler.GetAppointmentTypes).Methods(http.MethodGet)
	api.HandleFunc("/services", r.serviceHandler.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/services/{id}", r.serviceHandler.GetByID).Methods(http.MethodGet)

	// Appointment management (protected)
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.HandleFunc("", r.appointmentHandler.GetAll).Methods(http.MethodGet)
	appointments.HandleFunc("", r.appointmentHandler.Create).Methods(http.MethodPost)
	appointments.HandleFunc("/{id}", r.appointmentHandler.GetByID).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.Update).Methods(http.MethodPut)
	appointments.HandleFunc("/{id}/status", r.appointmentHandler.UpdateStatus).Methods(http.MethodPatch)
	appointments.HandleFunc("/{id}", r.appointmentHandler.Delete).Methods(http.MethodDelete)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	// Service management (admin)
	admin.HandleFunc("/services", r.serviceHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/services/{id}", r.serviceHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/services/{id}", r.serviceHandler.Delete).Methods(http.MethodDelete)

	// Audit logs (admin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAll).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetByID).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
