package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	DoctorID        uuid.UUID `json:"doctor_id" validate:"required"`
	AppointmentDate string    `json:"appointment_date" validate:"required,datetime=2006-01-02"`
	AppointmentTime string    `json:"appointment_time" validate:"required,datetime=15:04"`
	Reason          string    `json:"reason" validate:"omitempty,max=1000"`

	// Set from the Idempotency-Key header, not the body.
	IdempotencyKey string `json:"-"`
}

type AttachSummaryRequest struct {
	VisitSummary string `json:"visit_summary" validate:"required"`
	Prescription string `json:"prescription" validate:"omitempty"`
}

type RescheduleAppointmentRequest struct {
	AppointmentDate string `json:"appointment_date" validate:"required,datetime=2006-01-02"`
	AppointmentTime string `json:"appointment_time" validate:"required,datetime=15:04"`
}

// Response DTOs

type AppointmentResponse struct {
	ID                   uuid.UUID `json:"id"`
	PatientID            uuid.UUID `json:"patient_id"`
	PatientName          string    `json:"patient_name"`
	DoctorID             uuid.UUID `json:"doctor_id"`
	DoctorName           string    `json:"doctor_name"`
	DoctorSpecialization string    `json:"doctor_specialization"`
	AppointmentDate      string    `json:"appointment_date"`
	AppointmentTime      string    `json:"appointment_time"`
	Reason               string    `json:"reason,omitempty"`
	Status               string    `json:"status"`
	VisitSummary         string    `json:"visit_summary,omitempty"`
	Prescription         string    `json:"prescription,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
