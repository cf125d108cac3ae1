package handler

import (
	"net/http"

	"docspot/internal/domain/entity"
	"docspot/internal/usecase"
	"docspot/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type DoctorHandler struct {
	directoryUsecase usecase.DoctorDirectoryUsecase
}

func NewDoctorHandler(directoryUsecase usecase.DoctorDirectoryUsecase) *DoctorHandler {
	return &DoctorHandler{
		directoryUsecase: directoryUsecase,
	}
}

// BrowseDoctors lists approved doctors for patients, optionally filtered by a
// case-insensitive name substring and an exact specialization.
func (h *DoctorHandler) BrowseDoctors(w http.ResponseWriter, r *http.Request) {
	filter := entity.DoctorFilter{
		NameContains:   r.URL.Query().Get("name_contains"),
		Specialization: r.URL.Query().Get("specialization"),
	}

	doctors, err := h.directoryUsecase.ListApprovedDoctors(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

// GetDoctor returns a single approved doctor by ID
func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	doctor, err := h.directoryUsecase.GetApprovedDoctor(r.Context(), doctorID)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

// GetAllDoctors lists every doctor regardless of application status (admin)
func (h *DoctorHandler) GetAllDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.directoryUsecase.ListAllDoctors(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}
