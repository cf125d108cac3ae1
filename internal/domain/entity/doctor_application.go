package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DoctorApplication represents a patient's request to be promoted to doctor.
// Contact fields are copied from the applicant at submission time for the
// admin review queue and are not kept in sync with later profile edits.
type DoctorApplication struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	// Applicant contact snapshot
	FullName string `gorm:"type:varchar(255);not null" json:"full_name"`
	Email    string `gorm:"type:varchar(255);not null" json:"email"`
	Phone    string `gorm:"type:varchar(20)" json:"phone,omitempty"`

	// Proposed doctor profile fields
	Specialization  string          `gorm:"type:varchar(100);not null" json:"specialization"`
	ExperienceYears int             `gorm:"not null;default:0" json:"experience_years"`
	ConsultationFee decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"consultation_fee"`
	Timings         string          `gorm:"type:varchar(50)" json:"timings,omitempty"`
	Address         string          `gorm:"type:text" json:"address,omitempty"`

	Status      ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending_approval';index" json:"status"`
	SubmittedAt time.Time         `gorm:"autoCreateTime" json:"submitted_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (DoctorApplication) TableName() string {
	return "doctor_applications"
}

func (a *DoctorApplication) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// IsPending checks if the application is still awaiting review.
// Approved and rejected are terminal: a decided application is never
// re-decided.
func (a *DoctorApplication) IsPending() bool {
	return a.Status == ApplicationStatusPending
}

// Approve marks the application approved
func (a *DoctorApplication) Approve() {
	a.Status = ApplicationStatusApproved
}

// Reject marks the application rejected
func (a *DoctorApplication) Reject() {
	a.Status = ApplicationStatusRejected
}
