package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateDoctorApplicationRequest struct {
	Specialization  string          `json:"specialization" validate:"required,min=2"`
	ExperienceYears int             `json:"experience_years" validate:"gte=0,lte=70"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	Timings         string          `json:"timings" validate:"required"`
	Address         string          `json:"address" validate:"omitempty"`
}

type DecideDoctorApplicationRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approved rejected"`
}

// Response DTOs

type DoctorApplicationResponse struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	FullName        string          `json:"full_name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone,omitempty"`
	Specialization  string          `json:"specialization"`
	ExperienceYears int             `json:"experience_years"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	Timings         string          `json:"timings,omitempty"`
	Address         string          `json:"address,omitempty"`
	Status          string          `json:"status"`
	SubmittedAt     time.Time       `json:"submitted_at"`
}

type DoctorApplicationListResponse struct {
	Applications []DoctorApplicationResponse `json:"applications"`
	Total        int                         `json:"total"`
}
