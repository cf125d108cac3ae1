package repository

import (
	"errors"
	"strings"

	"docspot/internal/domain/entity"
	domainRepo "docspot/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorProfileRepository struct{}

func NewDoctorProfileRepository() domainRepo.DoctorProfileRepository {
	return &doctorProfileRepository{}
}

func (r *doctorProfileRepository) Create(db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.Create(profile).Error
}

func (r *doctorProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := db.Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// FindApproved returns approved doctor profiles in insertion order, optionally
// narrowed by a case-insensitive name substring and an exact specialization.
func (r *doctorProfileRepository) FindApproved(db *gorm.DB, filter entity.DoctorFilter) ([]entity.DoctorProfile, error) {
	query := db.Joins("User").
		Where("doctor_profiles.application_status = ?", entity.ApplicationStatusApproved)

	if filter.NameContains != "" {
		pattern := "%" + strings.ToLower(filter.NameContains) + "%"
		query = query.Where(`LOWER("User".full_name) LIKE ?`, pattern)
	}
	if filter.Specialization != "" {
		query = query.Where("doctor_profiles.specialization = ?", filter.Specialization)
	}

	var profiles []entity.DoctorProfile
	err := query.Order("doctor_profiles.created_at ASC").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *doctorProfileRepository) FindAll(db *gorm.DB) ([]entity.DoctorProfile, error) {
	var profiles []entity.DoctorProfile
	err := db.Preload("User").Order("created_at ASC").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *doctorProfileRepository) Update(db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.Save(profile).Error
}
