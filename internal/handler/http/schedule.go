package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dokterku/klinik-backend-go/internal/domain/schedule"
	"github.com/dokterku/klinik-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

type ScheduleHandler interface {
	CreateShiftTemplate(w http.ResponseWriter, r *http.Request)
	ListShiftTemplates(w http.ResponseWriter, r *http.Request)
	UpdateShiftTemplate(w http.ResponseWriter, r *http.Request)
	DeleteShiftTemplate(w http.ResponseWriter, r *http.Request)
	CreateScheduleEntry(w http.ResponseWriter, r *http.Request)
	BulkCreateSchedules(w http.ResponseWriter, r *http.Request)
	DeleteScheduleEntry(w http.ResponseWriter, r *http.Request)
	GetMySchedule(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &scheduleHandlerImpl{
		scheduleService: scheduleService,
	}
}

// CreateShiftTemplate implements ScheduleHandler.
func (h *scheduleHandlerImpl) CreateShiftTemplate(w http.ResponseWriter, r *http.Request) {
	var req schedule.CreateShiftTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.scheduleService.CreateShiftTemplate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift template created", result)
}

// ListShiftTemplates implements ScheduleHandler.
func (h *scheduleHandlerImpl) ListShiftTemplates(w http.ResponseWriter, r *http.Request) {
	result, err := h.scheduleService.ListShiftTemplates(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateShiftTemplate implements ScheduleHandler.
func (h *scheduleHandlerImpl) UpdateShiftTemplate(w http.ResponseWriter, r *http.Request) {
	var req schedule.UpdateShiftTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.scheduleService.UpdateShiftTemplate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift template updated", result)
}

// DeleteShiftTemplate implements ScheduleHandler.
func (h *scheduleHandlerImpl) DeleteShiftTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.scheduleService.DeleteShiftTemplate(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift template deleted", nil)
}

// CreateScheduleEntry implements ScheduleHandler.
func (h *scheduleHandlerImpl) CreateScheduleEntry(w http.ResponseWriter, r *http.Request) {
	var req schedule.CreateScheduleEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.scheduleService.CreateScheduleEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Schedule entry created", result)
}

// BulkCreateSchedules implements ScheduleHandler.
func (h *scheduleHandlerImpl) BulkCreateSchedules(w http.ResponseWriter, r *http.Request) {
	var req schedule.BulkCreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.scheduleService.BulkCreateSchedules(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Schedules created", result)
}

// DeleteScheduleEntry implements ScheduleHandler.
func (h *scheduleHandlerImpl) DeleteScheduleEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.scheduleService.DeleteScheduleEntry(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule entry deleted", nil)
}

// GetMySchedule implements ScheduleHandler.
func (h *scheduleHandlerImpl) GetMySchedule(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		response.Unauthorized(w, "Invalid token")
		return
	}

	// Default to the current week when no range is given.
	now := time.Now()
	start := now.AddDate(0, 0, -int(now.Weekday()))
	end := start.AddDate(0, 0, 6)

	if v := r.URL.Query().Get("start_date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(w, "start_date must be in YYYY-MM-DD format", nil)
			return
		}
		start = parsed
	}
	if v := r.URL.Query().Get("end_date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(w, "end_date must be in YYYY-MM-DD format", nil)
			return
		}
		end = parsed
	}

	result, err := h.scheduleService.GetMySchedule(r.Context(), userID, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
