package handler

import (
	"net/http"

	"mediconnect/internal/delivery/dto"
	"mediconnect/internal/usecase"
	"mediconnect/pkg/response"
)

type CatalogHandler struct {
	catalogUsecase usecase.CatalogUsecase
}

func NewCatalogHandler(catalogUsecase usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{catalogUsecase: catalogUsecase}
}

// GetDoctors handles listing the doctor roster
// @Summary List doctors
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Response
// @Router /doctors [get]
func (h *CatalogHandler) GetDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.catalogUsecase.GetDoctors(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", dto.DoctorListResponse{
		Doctors: doctors,
		Total:   len(doctors),
	})
}

// GetAppointmentTypes handles listing bookable appointment types
// @Summary List appointment types
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Response
// @Router /appointment-types [get]
func (h *CatalogHandler) GetAppointmentTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.catalogUsecase.GetAppointmentTypes(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get appointment types")
		return
	}

	response.Success(w, http.StatusOK, "Appointment types retrieved successfully", dto.AppointmentTypeListResponse{
		AppointmentTypes: types,
		Total:            len(types),
	})
}
