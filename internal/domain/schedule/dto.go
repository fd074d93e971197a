package schedule

import (
	"github.com/dokterku/klinik-backend-go/internal/pkg/validator"
)

type CreateShiftTemplateRequest struct {
	Name      string `json:"name"`
	StartTime string `json:"start_time"` // HH:MM or HH:MM:SS
	EndTime   string `json:"end_time"`
}

func (r *CreateShiftTemplateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if _, ok := validator.IsValidClockTime(r.StartTime); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM or HH:MM:SS format",
		})
	}

	if _, ok := validator.IsValidClockTime(r.EndTime); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM or HH:MM:SS format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateShiftTemplateRequest struct {
	ID        string  `json:"-"`
	Name      *string `json:"name,omitempty"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
}

func (r *UpdateShiftTemplateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.StartTime != nil {
		if _, ok := validator.IsValidClockTime(*r.StartTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_time",
				Message: "start_time must be in HH:MM or HH:MM:SS format",
			})
		}
	}

	if r.EndTime != nil {
		if _, ok := validator.IsValidClockTime(*r.EndTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time must be in HH:MM or HH:MM:SS format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ShiftTemplateResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	WrapsMidnight bool   `json:"wraps_midnight"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

type CreateScheduleEntryRequest struct {
	UserID          string `json:"user_id"`
	Date            string `json:"date"` // YYYY-MM-DD
	ShiftTemplateID string `json:"shift_template_id"`
	RoleUnit        string `json:"role_unit"`
}

func (r *CreateScheduleEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.ShiftTemplateID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_template_id",
			Message: "shift_template_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// BulkCreateScheduleRequest assigns one shift to a set of users over an
// inclusive date range. Callers name users explicitly via user_ids, or pass a
// role to cover every active user holding it.
type BulkCreateScheduleRequest struct {
	UserIDs         []string `json:"user_ids"`
	Role            string   `json:"role"`
	StartDate       string   `json:"start_date"` // YYYY-MM-DD
	EndDate         string   `json:"end_date"`   // YYYY-MM-DD
	ShiftTemplateID string   `json:"shift_template_id"`
	RoleUnit        string   `json:"role_unit"`
}

func (r *BulkCreateScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.UserIDs) == 0 && validator.IsEmpty(r.Role) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_ids",
			Message: "either user_ids or role is required",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if validator.IsEmpty(r.ShiftTemplateID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_template_id",
			Message: "shift_template_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BulkCreateScheduleResponse struct {
	CreatedCount int `json:"created_count"`
	SkippedCount int `json:"skipped_count"`
}

type ScheduleEntryResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	UserName        *string `json:"user_name,omitempty"`
	Date            string  `json:"date"`
	ShiftTemplateID string  `json:"shift_template_id"`
	ShiftName       *string `json:"shift_name,omitempty"`
	StartTime       *string `json:"start_time,omitempty"`
	EndTime         *string `json:"end_time,omitempty"`
	RoleUnit        string  `json:"role_unit,omitempty"`
	Status          string  `json:"status"`
}
