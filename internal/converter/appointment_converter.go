package converter

import (
	"docspot/internal/delivery/dto"
	"docspot/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:                   appointment.ID,
		PatientID:            appointment.PatientID,
		PatientName:          appointment.PatientName,
		DoctorID:             appointment.DoctorID,
		DoctorName:           appointment.DoctorName,
		DoctorSpecialization: appointment.DoctorSpecialization,
		AppointmentDate:      appointment.AppointmentDate,
		AppointmentTime:      appointment.AppointmentTime,
		Reason:               appointment.Reason,
		Status:               string(appointment.Status),
		VisitSummary:         appointment.VisitSummary,
		Prescription:         appointment.Prescription,
		CreatedAt:            appointment.CreatedAt,
		UpdatedAt:            appointment.UpdatedAt,
	}
}

// AppointmentsToResponses converts a slice of Appointment entities to DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
