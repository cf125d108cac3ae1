package converter

import (
	"docspot/internal/delivery/dto"
	"docspot/internal/domain/entity"
)

// DoctorApplicationToResponse converts a DoctorApplication entity to its DTO
func DoctorApplicationToResponse(application *entity.DoctorApplication) *dto.DoctorApplicationResponse {
	if application == nil {
		return nil
	}

	return &dto.DoctorApplicationResponse{
		ID:              application.ID,
		UserID:          application.UserID,
		FullName:        application.FullName,
		Email:           application.Email,
		Phone:           application.Phone,
		Specialization:  application.Specialization,
		ExperienceYears: application.ExperienceYears,
		ConsultationFee: application.ConsultationFee,
		Timings:         application.Timings,
		Address:         application.Address,
		Status:          string(application.Status),
		SubmittedAt:     application.SubmittedAt,
	}
}

// DoctorApplicationsToResponses converts a slice of DoctorApplication entities to DTOs
func DoctorApplicationsToResponses(applications []entity.DoctorApplication) []dto.DoctorApplicationResponse {
	responses := make([]dto.DoctorApplicationResponse, len(applications))
	for i, application := range applications {
		resp := DoctorApplicationToResponse(&application)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
