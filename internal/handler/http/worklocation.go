package http

import (
	"encoding/json"
	"net/http"

	"github.com/dokterku/klinik-backend-go/internal/domain/worklocation"
	"github.com/dokterku/klinik-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type WorkLocationHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type workLocationHandlerImpl struct {
	locationService worklocation.WorkLocationService
}

func NewWorkLocationHandler(locationService worklocation.WorkLocationService) WorkLocationHandler {
	return &workLocationHandlerImpl{
		locationService: locationService,
	}
}

// Create implements WorkLocationHandler.
func (h *workLocationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req worklocation.CreateWorkLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.locationService.CreateWorkLocation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Work location created", result)
}

// Get implements WorkLocationHandler.
func (h *workLocationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.locationService.GetWorkLocation(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements WorkLocationHandler.
func (h *workLocationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.locationService.ListWorkLocations(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements WorkLocationHandler.
func (h *workLocationHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req worklocation.UpdateWorkLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.locationService.UpdateWorkLocation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work location updated", result)
}

// Delete implements WorkLocationHandler.
func (h *workLocationHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.locationService.DeleteWorkLocation(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work location deleted", nil)
}
