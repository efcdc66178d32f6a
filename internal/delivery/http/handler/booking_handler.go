package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"mediconnect/internal/booking"
	"mediconnect/internal/delivery/dto"
	"mediconnect/internal/scheduling"
	"mediconnect/internal/service"
	"mediconnect/internal/usecase"
	"mediconnect/pkg/response"
	"mediconnect/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
}

func NewBookingHandler(bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
	}
}

// StartSession handles opening a new booking wizard session
// @Summary Start booking session
// @Description Create an empty booking draft at the contact info step
// @Tags Booking
// @Produce json
// @Success 201 {object} response.Response
// @Router /booking/sessions [post]
func (h *BookingHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.bookingUsecase.StartSession(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to start booking session")
		return
	}

	response.Success(w, http.StatusCreated, "Booking session started", session)
}

// GetSession handles reading the current wizard state
// @Summary Get booking session
// @Tags Booking
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /booking/sessions/{id} [get]
func (h *BookingHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	session, err := h.bookingUsecase.GetSession(r.Context(), sessionID)
	if err != nil {
		h.respondError(w, err, "Failed to get booking session")
		return
	}

	response.Success(w, http.StatusOK, "Booking session retrieved", session)
}

// SubmitContact handles step 1 of the wizard
// @Summary Submit contact info
// @Description Record name, email and phone and advance to selection details
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SubmitContactRequest true "Contact Info"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /booking/sessions/{id}/contact [post]
func (h *BookingHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req dto.SubmitContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	session, err := h.bookingUsecase.SubmitContact(r.Context(), sessionID, &req)
	if err != nil {
		h.respondError(w, err, "Failed to submit contact info")
		return
	}

	response.Success(w, http.StatusOK, "Contact info recorded", session)
}

// SubmitSelection handles step 2 of the wizard
// @Summary Submit selection details
// @Description Record doctor, appointment type and optional notes
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SubmitSelectionRequest true "Selection Details"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /booking/sessions/{id}/selection [post]
func (h *BookingHandler) SubmitSelection(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req dto.SubmitSelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	session, err := h.bookingUsecase.SubmitSelection(r.Context(), sessionID, &req)
	if err != nil {
		h.respondError(w, err, "Failed to submit selection details")
		return
	}

	response.Success(w, http.StatusOK, "Selection details recorded", session)
}

// Submit handles step 3, persisting the appointment
// @Summary Submit booking
// @Description Validate the chosen date and time against availability and book the appointment
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SubmitScheduleRequest true "Schedule"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /booking/sessions/{id}/submit [post]
func (h *BookingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req dto.SubmitScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	confirmation, err := h.bookingUsecase.Submit(r.Context(), sessionID, &req)
	if err != nil {
		h.respondError(w, err, "Failed to submit booking")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", confirmation)
}

// Back handles stepping the wizard backwards
// @Summary Go back one step
// @Description Move to the previous wizard step without losing entered data
// @Tags Booking
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /booking/sessions/{id}/back [post]
func (h *BookingHandler) Back(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	session, err := h.bookingUsecase.Back(r.Context(), sessionID)
	if err != nil {
		h.respondError(w, err, "Failed to go back")
		return
	}

	response.Success(w, http.StatusOK, "Moved to previous step", session)
}

// Reset handles clearing the wizard
// @Summary Reset booking session
// @Description Clear all draft fields and return to the contact info step
// @Tags Booking
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /booking/sessions/{id}/reset [post]
func (h *BookingHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	session, err := h.bookingUsecase.Reset(r.Context(), sessionID)
	if err != nil {
		h.respondError(w, err, "Failed to reset booking session")
		return
	}

	response.Success(w, http.StatusOK, "Booking session reset", session)
}

// GetSlots handles the stateless slot query
// @Summary List available slots
// @Description Get the half-hour slot grid for a doctor on a date
// @Tags Booking
// @Produce json
// @Param doctor_id query string true "Doctor ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /booking/slots [get]
func (h *BookingHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	doctorID := r.URL.Query().Get("doctor_id")
	date := r.URL.Query().Get("date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "date query parameter is required", nil)
		return
	}

	slots, err := h.bookingUsecase.GetSlots(r.Context(), doctorID, date)
	if err != nil {
		h.respondError(w, err, "Failed to get slots")
		return
	}

	response.Success(w, http.StatusOK, "Slots retrieved successfully", slots)
}

// GetSessionSlots handles the session-scoped slot query with reselection
// @Summary List slots for a session
// @Description Regenerate slots for the session's doctor, keeping or moving the selected time
// @Tags Booking
// @Produce json
// @Param id path string true "Session ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /booking/sessions/{id}/slots [get]
func (h *BookingHandler) GetSessionSlots(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "date query parameter is required", nil)
		return
	}

	slots, err := h.bookingUsecase.GetSessionSlots(r.Context(), sessionID, date)
	if err != nil {
		h.respondError(w, err, "Failed to get slots")
		return
	}

	response.Success(w, http.StatusOK, "Slots retrieved successfully", slots)
}

func (h *BookingHandler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	sessionID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session ID", nil)
		return uuid.Nil, false
	}
	return sessionID, true
}

// respondError maps wizard and scheduling errors to HTTP statuses.
func (h *BookingHandler) respondError(w http.ResponseWriter, err error, fallback string) {
	var validationErr *booking.ValidationError
	if errors.As(err, &validationErr) {
		response.ValidationError(w, map[string]string{validationErr.Field: validationErr.Message})
		return
	}

	switch {
	case errors.Is(err, service.ErrDraftNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, booking.ErrInvalidTransition):
		response.Conflict(w, err.Error())
	case errors.Is(err, booking.ErrNoSlotsAvailable), errors.Is(err, booking.ErrSlotUnavailable):
		response.Conflict(w, err.Error())
	case errors.Is(err, booking.ErrInvalidDateFormat), errors.Is(err, scheduling.ErrDateOutOfWindow):
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, usecase.ErrDoctorNotFound), errors.Is(err, usecase.ErrAppointmentTypeNotFound):
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	default:
		response.InternalServerError(w, fallback)
	}
}
