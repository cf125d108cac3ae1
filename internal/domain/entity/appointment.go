package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusRejected  AppointmentStatus = "rejected"
)

// AppointmentAction is a lifecycle action applied to an appointment
type AppointmentAction string

const (
	AppointmentActionApprove       AppointmentAction = "approve"
	AppointmentActionReject        AppointmentAction = "reject"
	AppointmentActionCancel        AppointmentAction = "cancel"
	AppointmentActionComplete      AppointmentAction = "complete"
	AppointmentActionAttachSummary AppointmentAction = "attach_summary"
	AppointmentActionReschedule    AppointmentAction = "reschedule"
)

// appointmentTransitions is the allowed (status, action) -> status table.
// Any pair not listed is an invalid transition. Completed, cancelled and
// rejected are terminal apart from summary upserts on completed.
var appointmentTransitions = map[AppointmentStatus]map[AppointmentAction]AppointmentStatus{
	AppointmentStatusPending: {
		AppointmentActionApprove:    AppointmentStatusScheduled,
		AppointmentActionReject:     AppointmentStatusRejected,
		AppointmentActionCancel:     AppointmentStatusCancelled,
		AppointmentActionReschedule: AppointmentStatusPending,
	},
	AppointmentStatusScheduled: {
		AppointmentActionCancel:     AppointmentStatusCancelled,
		AppointmentActionComplete:   AppointmentStatusCompleted,
		AppointmentActionReschedule: AppointmentStatusScheduled,
	},
	AppointmentStatusCompleted: {
		AppointmentActionAttachSummary: AppointmentStatusCompleted,
	},
}

// NextStatus returns the resulting status for applying action to the given
// status, and whether the transition is allowed at all.
func NextStatus(from AppointmentStatus, action AppointmentAction) (AppointmentStatus, bool) {
	actions, ok := appointmentTransitions[from]
	if !ok {
		return from, false
	}
	to, ok := actions[action]
	if !ok {
		return from, false
	}
	return to, true
}

// Appointment represents a booking request from a patient to a doctor.
// Patient and doctor display fields are snapshots taken at booking time and
// deliberately not synced with later profile edits.
type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	PatientID   uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	PatientName string    `gorm:"type:varchar(255);not null" json:"patient_name"`

	DoctorID             uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	DoctorName           string    `gorm:"type:varchar(255);not null" json:"doctor_name"`
	DoctorSpecialization string    `gorm:"type:varchar(100);not null" json:"doctor_specialization"`

	AppointmentDate string `gorm:"type:varchar(10);not null" json:"appointment_date"` // YYYY-MM-DD
	AppointmentTime string `gorm:"type:varchar(5);not null" json:"appointment_time"`  // HH:MM
	Reason          string `gorm:"type:text" json:"reason,omitempty"`

	Status       AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	VisitSummary string            `gorm:"type:text" json:"visit_summary,omitempty"`
	Prescription string            `gorm:"type:text" json:"prescription,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Apply moves the appointment to the next status for action. Returns false
// when the transition table does not allow the action from the current status.
func (a *Appointment) Apply(action AppointmentAction) bool {
	next, ok := NextStatus(a.Status, action)
	if !ok {
		return false
	}
	a.Status = next
	return true
}

// IsTerminal reports whether no further lifecycle transitions are possible
// (summary upserts on completed appointments excepted).
func (a *Appointment) IsTerminal() bool {
	switch a.Status {
	case AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusRejected:
		return true
	}
	return false
}

// IsValidAppointmentStatus reports whether s names a known lifecycle status.
func IsValidAppointmentStatus(s string) bool {
	switch AppointmentStatus(s) {
	case AppointmentStatusPending, AppointmentStatusScheduled, AppointmentStatusCompleted,
		AppointmentStatusCancelled, AppointmentStatusRejected:
		return true
	}
	return false
}
