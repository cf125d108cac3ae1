package repository

import (
	"errors"

	"docspot/internal/domain/entity"
	domainRepo "docspot/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorApplicationRepository struct{}

func NewDoctorApplicationRepository() domainRepo.DoctorApplicationRepository {
	return &doctorApplicationRepository{}
}

func (r *doctorApplicationRepository) Create(db *gorm.DB, application *entity.DoctorApplication) error {
	return db.Create(application).Error
}

func (r *doctorApplicationRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.DoctorApplication, error) {
	var application entity.DoctorApplication
	err := db.Where("id = ?", id).First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &application, nil
}

// FindPendingByUserID returns the user's active application, if any.
// At most one pending application per user is an enforced invariant.
func (r *doctorApplicationRepository) FindPendingByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorApplication, error) {
	var application entity.DoctorApplication
	err := db.Where("user_id = ? AND status = ?", userID, entity.ApplicationStatusPending).
		First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &application, nil
}

func (r *doctorApplicationRepository) FindAll(db *gorm.DB) ([]entity.DoctorApplication, error) {
	var applications []entity.DoctorApplication
	err := db.Order("submitted_at DESC").Find(&applications).Error
	if err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *doctorApplicationRepository) Update(db *gorm.DB, application *entity.DoctorApplication) error {
	return db.Save(application).Error
}
