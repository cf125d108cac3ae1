package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"docspot/internal/delivery/dto"
	"docspot/internal/domain/entity"
	"docspot/internal/usecase"
	"docspot/pkg/response"
	"docspot/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// CreateAppointment books an appointment with an approved doctor.
// An optional Idempotency-Key header makes retries replay the original booking.
func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	req.IdempotencyKey = r.Header.Get("Idempotency-Key")

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Request(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrPastDateTime:
			response.UnprocessableEntity(w, "Appointment date and time must be in the future")
		default:
			response.InternalServerError(w, "Failed to create appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

// CancelAppointment cancels a pending or scheduled appointment (booking patient only)
func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	h.doTransition(w, r, h.appointmentUsecase.Cancel, "Appointment cancelled successfully")
}

// ApproveAppointment moves a pending appointment to scheduled (target doctor only)
func (h *AppointmentHandler) ApproveAppointment(w http.ResponseWriter, r *http.Request) {
	h.doTransition(w, r, h.appointmentUsecase.Approve, "Appointment approved successfully")
}

// RejectAppointment rejects a pending appointment (target doctor only)
func (h *AppointmentHandler) RejectAppointment(w http.ResponseWriter, r *http.Request) {
	h.doTransition(w, r, h.appointmentUsecase.Reject, "Appointment rejected successfully")
}

// CompleteAppointment marks a scheduled appointment completed (target doctor only)
func (h *AppointmentHandler) CompleteAppointment(w http.ResponseWriter, r *http.Request) {
	h.doTransition(w, r, h.appointmentUsecase.Complete, "Appointment completed successfully")
}

func (h *AppointmentHandler) doTransition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id uuid.UUID) error, message string) {
	vars := mux.Vars(r)
	appointmentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	if err := fn(r.Context(), appointmentID); err != nil {
		h.writeTransitionError(w, err)
		return
	}

	response.Success(w, http.StatusOK, message, nil)
}

// AttachSummary attaches or replaces the visit summary of a completed appointment
func (h *AppointmentHandler) AttachSummary(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.AttachSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.AttachSummary(r.Context(), appointmentID, &req)
	if err != nil {
		h.writeTransitionError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Visit summary attached successfully", appointment)
}

// RescheduleAppointment moves an appointment to a new future slot, keeping
// its current status
func (h *AppointmentHandler) RescheduleAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.RescheduleAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Reschedule(r.Context(), appointmentID, &req)
	if err != nil {
		if err == usecase.ErrPastDateTime {
			response.UnprocessableEntity(w, "Appointment date and time must be in the future")
			return
		}
		h.writeTransitionError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment rescheduled successfully", appointment)
}

func (h *AppointmentHandler) writeTransitionError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrAppointmentNotFound:
		response.NotFound(w, "Appointment not found")
	case usecase.ErrNotYourAppointment:
		response.Forbidden(w, "You are not a participant of this appointment")
	case usecase.ErrInvalidTransition:
		response.Conflict(w, "Appointment status does not allow this action")
	default:
		response.InternalServerError(w, "Failed to update appointment")
	}
}

// GetMyAppointments lists the logged-in patient's appointments, newest first
func (h *AppointmentHandler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.GetMyAppointments(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// GetDoctorAppointments lists appointments targeting the logged-in doctor,
// optionally filtered by ?status=
func (h *AppointmentHandler) GetDoctorAppointments(w http.ResponseWriter, r *http.Request) {
	status := entity.AppointmentStatus(r.URL.Query().Get("status"))
	if status != "" && !entity.IsValidAppointmentStatus(string(status)) {
		response.Error(w, http.StatusBadRequest, "Invalid appointment status", nil)
		return
	}

	appointments, err := h.appointmentUsecase.GetDoctorAppointments(r.Context(), status)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// GetAllAppointments lists every appointment in the system (admin)
func (h *AppointmentHandler) GetAllAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.GetAllAppointments(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}
