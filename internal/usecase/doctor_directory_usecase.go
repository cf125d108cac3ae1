package usecase

import (
	"context"
	"errors"

	"docspot/internal/converter"
	"docspot/internal/delivery/dto"
	"docspot/internal/domain/entity"
	"docspot/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrDoctorNotFound = errors.New("doctor not found")

type DoctorDirectoryUsecase interface {
	ListApprovedDoctors(ctx context.Context, filter entity.DoctorFilter) (*dto.DoctorListResponse, error)
	GetApprovedDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	ListAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
}

type doctorDirectoryUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	doctorProfileRepo repository.DoctorProfileRepository
}

func NewDoctorDirectoryUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorProfileRepo repository.DoctorProfileRepository,
) DoctorDirectoryUsecase {
	return &doctorDirectoryUsecase{
		db:                db,
		log:               log,
		doctorProfileRepo: doctorProfileRepo,
	}
}

// ListApprovedDoctors is the patient-facing directory: only doctors whose
// application passed admin review are visible, regardless of filters.
func (u *doctorDirectoryUsecase) ListApprovedDoctors(ctx context.Context, filter entity.DoctorFilter) (*dto.DoctorListResponse, error) {
	profiles, err := u.doctorProfileRepo.FindApproved(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find approved doctors: %+v", err)
		return nil, err
	}

	doctors := converter.DoctorProfilesToResponses(profiles)
	return &dto.DoctorListResponse{
		Doctors: doctors,
		Total:   len(doctors),
	}, nil
}

// GetApprovedDoctor resolves a doctor for booking. Unapproved doctors are
// treated as not found.
func (u *doctorDirectoryUsecase) GetApprovedDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	profile, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil || !profile.IsApproved() {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorProfileToResponse(profile), nil
}

// ListAllDoctors returns doctors in every application status, for the admin
// oversight view.
func (u *doctorDirectoryUsecase) ListAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	profiles, err := u.doctorProfileRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all doctor profiles: %+v", err)
		return nil, err
	}

	doctors := converter.DoctorProfilesToResponses(profiles)
	return &dto.DoctorListResponse{
		Doctors: doctors,
		Total:   len(doctors),
	}, nil
}
