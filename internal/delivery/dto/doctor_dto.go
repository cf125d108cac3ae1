package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Response DTOs

type DoctorResponse struct {
	ID                uuid.UUID       `json:"id"`
	Email             string          `json:"email,omitempty"`
	FullName          string          `json:"full_name,omitempty"`
	Phone             string          `json:"phone,omitempty"`
	Specialization    string          `json:"specialization"`
	ExperienceYears   int             `json:"experience_years"`
	ConsultationFee   decimal.Decimal `json:"consultation_fee"`
	Timings           string          `json:"timings,omitempty"`
	Address           string          `json:"address,omitempty"`
	ApplicationStatus string          `json:"application_status"`
	ProfilePictureURL string          `json:"profile_picture_url,omitempty"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
