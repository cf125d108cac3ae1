package repository

import (
	"docspot/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorApplicationRepository interface {
	Create(db *gorm.DB, application *entity.DoctorApplication) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.DoctorApplication, error)
	FindPendingByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorApplication, error)
	FindAll(db *gorm.DB) ([]entity.DoctorApplication, error)
	Update(db *gorm.DB, application *entity.DoctorApplication) error
}
