package schedule

import (
	"context"
	"time"
)

// ScheduleService defines business logic for shift templates and schedule
// entries, including the resolver consumed by the attendance flow.
type ScheduleService interface {
	// ResolveForCheckIn finds the schedule entry applicable to a check-in
	// at the given instant. With multiple shifts on the same date, the
	// entry whose start is nearest to the instant wins. Returns
	// ErrNoScheduleFound when the user has no entry for the date.
	ResolveForCheckIn(ctx context.Context, userID string, at time.Time) (Resolution, error)

	// Shift templates (admin)
	CreateShiftTemplate(ctx context.Context, req CreateShiftTemplateRequest) (ShiftTemplateResponse, error)
	ListShiftTemplates(ctx context.Context) ([]ShiftTemplateResponse, error)
	UpdateShiftTemplate(ctx context.Context, req UpdateShiftTemplateRequest) (ShiftTemplateResponse, error)
	DeleteShiftTemplate(ctx context.Context, id string) error

	// Schedule entries (admin)
	CreateScheduleEntry(ctx context.Context, req CreateScheduleEntryRequest) (ScheduleEntryResponse, error)
	BulkCreateSchedules(ctx context.Context, req BulkCreateScheduleRequest) (BulkCreateScheduleResponse, error)
	DeleteScheduleEntry(ctx context.Context, id string) error

	// GetMySchedule returns the authenticated user's entries in a date range
	GetMySchedule(ctx context.Context, userID string, start, end time.Time) ([]ScheduleEntryResponse, error)
}
