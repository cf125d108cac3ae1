package usecase

import (
	"context"
	"errors"

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
	ErrNotEligible               = errors.New("only patients can apply to become a doctor")
	ErrApplicationNotFound       = errors.New("doctor application not found")
	ErrAlreadyDecided            = errors.New("doctor application has already been decided")
	ErrApplicationAlreadyPending = errors.New("you already have a pending doctor application")
)

const (
	DecisionApproved = "approved"
	DecisionRejected = "rejected"
)

type DoctorApplicationUsecase interface {
	Submit(ctx context.Context, req *dto.CreateDoctorApplicationRequest) (*dto.DoctorApplicationResponse, error)
	Decide(ctx context.Context, applicationID uuid.UUID, req *dto.DecideDoctorApplicationRequest) error
	ListApplications(ctx context.Context) (*dto.DoctorApplicationListResponse, error)
}

type doctorApplicationUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	userRepo          repository.UserRepository
	doctorProfileRepo repository.DoctorProfileRepository
	applicationRepo   repository.DoctorApplicationRepository
	auditService      service.AuditService
	lockService       *service.WorkflowLockService
}

func NewDoctorApplicationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	applicationRepo repository.DoctorApplicationRepository,
	auditService service.AuditService,
	lockService *service.WorkflowLockService,
) DoctorApplicationUsecase {
	return &doctorApplicationUsecase{
		db:                db,
		log:               log,
		userRepo:          userRepo,
		doctorProfileRepo: doctorProfileRepo,
		applicationRepo:   applicationRepo,
		auditService:      auditService,
		lockService:       lockService,
	}
}

// Submit files a doctor application for the logged-in patient. A user may
// have at most one pending application at a time.
func (u *doctorApplicationUsecase) Submit(ctx context.Context, req *dto.CreateDoctorApplicationRequest) (*dto.DoctorApplicationResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	applicant, err := u.userRepo.FindByID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find applicant %s: %+v", userID, err)
		return nil, err
	}
	if applicant == nil {
		return nil, ErrUserNotFound
	}
	if !applicant.IsPatient() {
		return nil, ErrNotEligible
	}

	pending, err := u.applicationRepo.FindPendingByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to check pending application: %+v", err)
		return nil, err
	}
	if pending != nil {
		return nil, ErrApplicationAlreadyPending
	}

	application := &entity.DoctorApplication{
		UserID:          applicant.ID,
		FullName:        applicant.FullName,
		Email:           applicant.Email,
		Phone:           applicant.Phone,
		Specialization:  req.Specialization,
		ExperienceYears: req.ExperienceYears,
		ConsultationFee: req.ConsultationFee,
		Timings:         req.Timings,
		Address:         req.Address,
		Status:          entity.ApplicationStatusPending,
	}

	if err := u.applicationRepo.Create(tx, application); err != nil {
		u.log.Warnf("Failed to create doctor application: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionApplicationSubmit, "doctor_application", application.ID.String(), converter.DoctorApplicationToResponse(application)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DoctorApplicationToResponse(application), nil
}

// Decide approves or rejects a pending application. A decided application is
// never re-decided: promotion happens exactly once. Concurrent decisions on
// the same application are serialized through a Redis lock.
func (u *doctorApplicationUsecase) Decide(ctx context.Context, applicationID uuid.UUID, req *dto.DecideDoctorApplicationRequest) error {
	adminID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}

	lockToken, err := u.lockService.Acquire(ctx, service.LockKindApplication, applicationID.String())
	if err != nil {
		if errors.Is(err, service.ErrLockHeld) {
			return ErrAlreadyDecided
		}
		return err
	}
	defer u.lockService.Release(ctx, service.LockKindApplication, applicationID.String(), lockToken)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	application, err := u.applicationRepo.FindByID(tx, applicationID)
	if err != nil {
		u.log.Warnf("Failed to find application %s: %+v", applicationID, err)
		return err
	}
	if application == nil {
		return ErrApplicationNotFound
	}
	if !application.IsPending() {
		return ErrAlreadyDecided
	}

	oldValue := converter.DoctorApplicationToResponse(application)

	auditAction := entity.AuditActionApplicationReject
	switch req.Decision {
	case DecisionApproved:
		application.Approve()
		auditAction = entity.AuditActionApplicationApprove
		if err := u.promoteApplicant(tx, application); err != nil {
			return err
		}
	case DecisionRejected:
		application.Reject()
		if err := u.markApplicantRejected(tx, application.UserID); err != nil {
			return err
		}
	default:
		return errors.New("unknown decision: " + req.Decision)
	}

	if err := u.applicationRepo.Update(tx, application); err != nil {
		u.log.Warnf("Failed to update application %s: %+v", applicationID, err)
		return err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &adminID, auditAction, "doctor_application", application.ID.String(), oldValue, converter.DoctorApplicationToResponse(application)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("Doctor application decided: id=%s, decision=%s", applicationID, req.Decision)
	return nil
}

// promoteApplicant moves the applicant to the doctor role and materializes an
// approved doctor profile from the application's proposed fields.
func (u *doctorApplicationUsecase) promoteApplicant(tx *gorm.DB, application *entity.DoctorApplication) error {
	user, err := u.userRepo.FindByID(tx, application.UserID)
	if err != nil {
		u.log.Warnf("Failed to find applicant %s: %+v", application.UserID, err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if !user.IsDoctor() {
		user.RoleID = entity.RoleIDDoctor
		if err := u.userRepo.Update(tx, user); err != nil {
			u.log.Warnf("Failed to promote user %s: %+v", user.ID, err)
			return err
		}
	}

	profile, err := u.doctorProfileRepo.FindByUserID(tx, user.ID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return err
	}

	if profile == nil {
		profile = &entity.DoctorProfile{
			UserID:            user.ID,
			Specialization:    application.Specialization,
			ExperienceYears:   application.ExperienceYears,
			ConsultationFee:   application.ConsultationFee,
			Timings:           application.Timings,
			Address:           application.Address,
			ApplicationStatus: entity.ApplicationStatusApproved,
		}
		return u.doctorProfileRepo.Create(tx, profile)
	}

	profile.Specialization = application.Specialization
	profile.ExperienceYears = application.ExperienceYears
	profile.ConsultationFee = application.ConsultationFee
	profile.Timings = application.Timings
	profile.Address = application.Address
	profile.ApplicationStatus = entity.ApplicationStatusApproved
	return u.doctorProfileRepo.Update(tx, profile)
}

// markApplicantRejected records the rejection on an existing doctor profile.
// A patient applicant keeps their role; there is nothing to demote.
func (u *doctorApplicationUsecase) markApplicantRejected(tx *gorm.DB, userID uuid.UUID) error {
	profile, err := u.doctorProfileRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return err
	}
	if profile == nil {
		return nil
	}

	profile.ApplicationStatus = entity.ApplicationStatusRejected
	return u.doctorProfileRepo.Update(tx, profile)
}

// ListApplications returns the admin review queue, newest first.
func (u *doctorApplicationUsecase) ListApplications(ctx context.Context) (*dto.DoctorApplicationListResponse, error) {
	applications, err := u.applicationRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find applications: %+v", err)
		return nil, err
	}

	responses := converter.DoctorApplicationsToResponses(applications)
	return &dto.DoctorApplicationListResponse{
		Applications: responses,
		Total:        len(responses),
	}, nil
}
