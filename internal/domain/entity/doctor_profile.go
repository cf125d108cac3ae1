package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ApplicationStatus represents the review status of a doctor application.
// The same value set gates a doctor profile: only approved profiles are
// visible in the patient-facing directory.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending_approval"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// DoctorProfile represents doctor-specific profile data
type DoctorProfile struct {
	UserID            uuid.UUID         `gorm:"type:uuid;primaryKey" json:"user_id"`
	Specialization    string            `gorm:"type:varchar(100);not null;index" json:"specialization"`
	ExperienceYears   int               `gorm:"not null;default:0" json:"experience_years"`
	ConsultationFee   decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"consultation_fee"`
	Timings           string            `gorm:"type:varchar(50)" json:"timings,omitempty"`
	Address           string            `gorm:"type:text" json:"address,omitempty"`
	ApplicationStatus ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending_approval';index" json:"application_status"`
	ProfilePictureURL string            `gorm:"type:text" json:"profile_picture_url,omitempty"`
	CreatedAt         time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

// IsApproved checks if the profile passed admin review
func (p *DoctorProfile) IsApproved() bool {
	return p.ApplicationStatus == ApplicationStatusApproved
}

// DoctorFilter is a domain-level filter for the patient-facing directory.
// Used by repository layer to avoid coupling with delivery DTOs.
type DoctorFilter struct {
	NameContains   string // Case-insensitive substring on the doctor's full name
	Specialization string // Exact match
}
