package converter

import (
	"docspot/internal/delivery/dto"
	"docspot/internal/domain/entity"
)

// DoctorProfileToResponse converts a DoctorProfile entity to DoctorResponse DTO
func DoctorProfileToResponse(profile *entity.DoctorProfile) *dto.DoctorResponse {
	if profile == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:                profile.UserID,
		Email:             profile.User.Email,
		FullName:          profile.User.FullName,
		Phone:             profile.User.Phone,
		Specialization:    profile.Specialization,
		ExperienceYears:   profile.ExperienceYears,
		ConsultationFee:   profile.ConsultationFee,
		Timings:           profile.Timings,
		Address:           profile.Address,
		ApplicationStatus: string(profile.ApplicationStatus),
		ProfilePictureURL: profile.ProfilePictureURL,
	}
}

// DoctorProfilesToResponses converts a slice of DoctorProfile entities to DoctorResponse DTOs
func DoctorProfilesToResponses(profiles []entity.DoctorProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(profiles))
	for i, profile := range profiles {
		resp := DoctorProfileToResponse(&profile)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
