package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RegisterRequest registers either a patient or, with AsDoctor set, a doctor
// whose profile starts pending admin approval. Doctor fields are required
// only when AsDoctor is set.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required,min=2"`
	Phone    string `json:"phone" validate:"omitempty,min=7,max=20"`
	AsDoctor bool   `json:"as_doctor"`

	Specialization  string          `json:"specialization" validate:"required_if=AsDoctor true"`
	ExperienceYears int             `json:"experience_years" validate:"omitempty,gte=0,lte=70"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	Timings         string          `json:"timings" validate:"required_if=AsDoctor true"`
	Address         string          `json:"address" validate:"omitempty"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// LoginResponse carries the session tokens plus a snapshot of the
// authenticated user. ApplicationStatus on the embedded doctor profile lets
// the client route pending or rejected doctors to their landing state.
type LoginResponse struct {
	TokenResponse
	User UserResponse `json:"user"`
}

type UserResponse struct {
	ID            uuid.UUID       `json:"id"`
	Email         string          `json:"email"`
	FullName      string          `json:"full_name"`
	Phone         string          `json:"phone,omitempty"`
	Role          string          `json:"role"`
	DoctorProfile *DoctorResponse `json:"doctor_profile,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}
