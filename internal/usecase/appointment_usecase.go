package usecase

import (
	"context"
	"errors"
	"time"

	"docspot/internal/converter"
	"docspot/internal/delivery/dto"
	"docspot/internal/delivery/http/middleware"
	"docspot/internal/domain/entity"
	"docspot/internal/domain/repository"
	"docspot/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrPastDateTime        = errors.New("appointment date and time must be in the future")
	ErrInvalidTransition   = errors.New("appointment status does not allow this action")
	ErrNotYourAppointment  = errors.New("appointment does not belong to you")
)

type AppointmentUsecase interface {
	Request(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, appointmentID uuid.UUID) error
	Approve(ctx context.Context, appointmentID uuid.UUID) error
	Reject(ctx context.Context, appointmentID uuid.UUID) error
	Complete(ctx context.Context, appointmentID uuid.UUID) error
	AttachSummary(ctx context.Context, appointmentID uuid.UUID, req *dto.AttachSummaryRequest) (*dto.AppointmentResponse, error)
	Reschedule(ctx context.Context, appointmentID uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error)
	GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	GetDoctorAppointments(ctx context.Context, status entity.AppointmentStatus) (*dto.AppointmentListResponse, error)
	GetAllAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
}

type appointmentUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	userRepo          repository.UserRepository
	doctorProfileRepo repository.DoctorProfileRepository
	appointmentRepo   repository.AppointmentRepository
	auditService      service.AuditService
	lockService       *service.WorkflowLockService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
	lockService *service.WorkflowLockService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:                db,
		log:               log,
		userRepo:          userRepo,
		doctorProfileRepo: doctorProfileRepo,
		appointmentRepo:   appointmentRepo,
		auditService:      auditService,
		lockService:       lockService,
	}
}

// Request books an appointment for the logged-in patient with an approved
// doctor. Patient and doctor display fields are snapshotted at booking time.
// A repeated request carrying the same Idempotency-Key returns the booking
// created the first time instead of a duplicate.
func (u *appointmentUsecase) Request(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	if req.IdempotencyKey != "" {
		existingID, found, err := u.lockService.LookupBooking(ctx, patientID, req.IdempotencyKey)
		if err == nil && found {
			existing, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), existingID)
			if err == nil && existing != nil {
				return converter.AppointmentToResponse(existing), nil
			}
		}
	}

	when, err := combineDateTime(req.AppointmentDate, req.AppointmentTime)
	if err != nil {
		return nil, ErrPastDateTime
	}
	if !when.After(time.Now()) {
		return nil, ErrPastDateTime
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.userRepo.FindByID(tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrUserNotFound
	}

	// Only approved doctors can be booked
	profile, err := u.doctorProfileRepo.FindByUserID(tx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if profile == nil || !profile.IsApproved() {
		return nil, ErrDoctorNotFound
	}

	appointment := &entity.Appointment{
		PatientID:            patient.ID,
		PatientName:          patient.FullName,
		DoctorID:             profile.UserID,
		DoctorName:           profile.User.FullName,
		DoctorSpecialization: profile.Specialization,
		AppointmentDate:      req.AppointmentDate,
		AppointmentTime:      req.AppointmentTime,
		Reason:               req.Reason,
		Status:               entity.AppointmentStatusPending,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &patientID, entity.AuditActionAppointmentRequest, "appointment", appointment.ID.String(), converter.AppointmentToResponse(appointment)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if req.IdempotencyKey != "" {
		if err := u.lockService.StoreBooking(ctx, patientID, req.IdempotencyKey, appointment.ID); err != nil {
			u.log.Warnf("Failed to store booking idempotency key (non-fatal): %+v", err)
		}
	}

	u.log.Infof("Appointment requested: id=%s, patient=%s, doctor=%s", appointment.ID, patient.ID, profile.UserID)
	return converter.AppointmentToResponse(appointment), nil
}

// Cancel lets the booking patient withdraw a pending or scheduled appointment.
func (u *appointmentUsecase) Cancel(ctx context.Context, appointmentID uuid.UUID) error {
	return u.transition(ctx, appointmentID, entity.AppointmentActionCancel, entity.AuditActionAppointmentCancel, nil)
}

// Approve lets the target doctor confirm a pending appointment.
func (u *appointmentUsecase) Approve(ctx context.Context, appointmentID uuid.UUID) error {
	return u.transition(ctx, appointmentID, entity.AppointmentActionApprove, entity.AuditActionAppointmentApprove, nil)
}

// Reject lets the target doctor turn down a pending appointment.
func (u *appointmentUsecase) Reject(ctx context.Context, appointmentID uuid.UUID) error {
	return u.transition(ctx, appointmentID, entity.AppointmentActionReject, entity.AuditActionAppointmentReject, nil)
}

// Complete lets the target doctor close out a scheduled appointment.
func (u *appointmentUsecase) Complete(ctx context.Context, appointmentID uuid.UUID) error {
	return u.transition(ctx, appointmentID, entity.AppointmentActionComplete, entity.AuditActionAppointmentComplete, nil)
}

// AttachSummary upserts the visit summary and prescription on a completed
// appointment. Repeating the call overwrites: the latest values win.
func (u *appointmentUsecase) AttachSummary(ctx context.Context, appointmentID uuid.UUID, req *dto.AttachSummaryRequest) (*dto.AppointmentResponse, error) {
	var result *entity.Appointment
	err := u.transition(ctx, appointmentID, entity.AppointmentActionAttachSummary, entity.AuditActionAppointmentSummary, func(appointment *entity.Appointment) {
		appointment.VisitSummary = req.VisitSummary
		appointment.Prescription = req.Prescription
		result = appointment
	})
	if err != nil {
		return nil, err
	}
	return converter.AppointmentToResponse(result), nil
}

// Reschedule moves a pending or scheduled appointment to a new future slot.
// The status is unchanged; either participant may do this.
func (u *appointmentUsecase) Reschedule(ctx context.Context, appointmentID uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	when, err := combineDateTime(req.AppointmentDate, req.AppointmentTime)
	if err != nil {
		return nil, ErrPastDateTime
	}
	if !when.After(time.Now()) {
		return nil, ErrPastDateTime
	}

	var result *entity.Appointment
	err = u.transition(ctx, appointmentID, entity.AppointmentActionReschedule, entity.AuditActionAppointmentReschedule, func(appointment *entity.Appointment) {
		appointment.AppointmentDate = req.AppointmentDate
		appointment.AppointmentTime = req.AppointmentTime
		result = appointment
	})
	if err != nil {
		return nil, err
	}
	return converter.AppointmentToResponse(result), nil
}

// transition applies a lifecycle action under a per-appointment Redis lock so
// concurrent decisions (doctor approves while the patient cancels) cannot
// both land.
//
// Flow:
// 1. Acquire appointment lock
// 2. Load appointment, verify the actor may apply this action
// 3. Check the transition table and move the status
// 4. Persist + audit inside one DB transaction
func (u *appointmentUsecase) transition(ctx context.Context, appointmentID uuid.UUID, action entity.AppointmentAction, auditAction string, mutate func(*entity.Appointment)) error {
	actorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}
	roleID, ok := middleware.GetRoleIDFromContext(ctx)
	if !ok {
		return errors.New("role not found in context")
	}

	lockToken, err := u.lockService.Acquire(ctx, service.LockKindAppointment, appointmentID.String())
	if err != nil {
		if errors.Is(err, service.ErrLockHeld) {
			return ErrInvalidTransition
		}
		return err
	}
	defer u.lockService.Release(ctx, service.LockKindAppointment, appointmentID.String(), lockToken)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	if err := authorizeAction(appointment, action, actorID, roleID); err != nil {
		return err
	}

	oldValue := converter.AppointmentToResponse(appointment)

	if !appointment.Apply(action) {
		return ErrInvalidTransition
	}
	if mutate != nil {
		mutate(appointment)
	}

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment %s: %+v", appointmentID, err)
		return err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actorID, auditAction, "appointment", appointment.ID.String(), oldValue, converter.AppointmentToResponse(appointment)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("Appointment %s: id=%s, status=%s", action, appointment.ID, appointment.Status)
	return nil
}

// authorizeAction enforces who may apply which lifecycle action: cancel is
// the booking patient's, doctor decisions are the target doctor's, and
// reschedule belongs to either participant.
func authorizeAction(appointment *entity.Appointment, action entity.AppointmentAction, actorID uuid.UUID, roleID int) error {
	switch action {
	case entity.AppointmentActionCancel:
		if roleID != entity.RoleIDPatient || appointment.PatientID != actorID {
			return ErrNotYourAppointment
		}
	case entity.AppointmentActionApprove, entity.AppointmentActionReject,
		entity.AppointmentActionComplete, entity.AppointmentActionAttachSummary:
		if roleID != entity.RoleIDDoctor || appointment.DoctorID != actorID {
			return ErrNotYourAppointment
		}
	case entity.AppointmentActionReschedule:
		if appointment.PatientID != actorID && appointment.DoctorID != actorID {
			return ErrNotYourAppointment
		}
	default:
		return ErrInvalidTransition
	}
	return nil
}

// GetMyAppointments returns all appointments booked by the logged-in patient.
func (u *appointmentUsecase) GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// GetDoctorAppointments returns the logged-in doctor's appointments,
// optionally narrowed to one lifecycle status.
func (u *appointmentUsecase) GetDoctorAppointments(ctx context.Context, status entity.AppointmentStatus) (*dto.AppointmentListResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointments, err := u.appointmentRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID, status)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// GetAllAppointments returns every appointment, for the admin oversight view.
func (u *appointmentUsecase) GetAllAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// combineDateTime parses a YYYY-MM-DD date and HH:MM time into one local
// wall-clock instant.
func combineDateTime(date, clock string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.Local)
}
