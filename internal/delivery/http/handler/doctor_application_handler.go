package handler

import (
	"encoding/json"
	"net/http"

	"docspot/internal/delivery/dto"
	"docspot/internal/usecase"
	"docspot/pkg/response"
	"docspot/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type DoctorApplicationHandler struct {
	applicationUsecase usecase.DoctorApplicationUsecase
	validator          *validator.CustomValidator
}

func NewDoctorApplicationHandler(applicationUsecase usecase.DoctorApplicationUsecase, validator *validator.CustomValidator) *DoctorApplicationHandler {
	return &DoctorApplicationHandler{
		applicationUsecase: applicationUsecase,
		validator:          validator,
	}
}

// SubmitApplication files a doctor application for the logged-in patient
func (h *DoctorApplicationHandler) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDoctorApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	application, err := h.applicationUsecase.Submit(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrNotEligible:
			response.Forbidden(w, "Only patients can apply to become a doctor")
		case usecase.ErrApplicationAlreadyPending:
			response.Conflict(w, "You already have a pending doctor application")
		default:
			response.InternalServerError(w, "Failed to submit application")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Application submitted successfully", application)
}

// DecideApplication approves or rejects a pending application (admin)
func (h *DoctorApplicationHandler) DecideApplication(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	applicationID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid application ID", nil)
		return
	}

	var req dto.DecideDoctorApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.applicationUsecase.Decide(r.Context(), applicationID, &req); err != nil {
		switch err {
		case usecase.ErrApplicationNotFound:
			response.NotFound(w, "Application not found")
		case usecase.ErrAlreadyDecided:
			response.Conflict(w, "Application has already been decided")
		default:
			response.InternalServerError(w, "Failed to decide application")
		}
		return
	}

	response.Success(w, http.StatusOK, "Application decided successfully", nil)
}

// GetApplications lists all doctor applications, newest first (admin)
func (h *DoctorApplicationHandler) GetApplications(w http.ResponseWriter, r *http.Request) {
	applications, err := h.applicationUsecase.ListApplications(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list applications")
		return
	}

	response.Success(w, http.StatusOK, "Applications retrieved successfully", applications)
}
