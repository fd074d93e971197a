package schedule

import (
	"context"
	"time"
)

// ShiftTemplateRepository defines data access methods for shift templates.
type ShiftTemplateRepository interface {
	Create(ctx context.Context, template ShiftTemplate) (ShiftTemplate, error)
	GetByID(ctx context.Context, id string) (ShiftTemplate, error)
	List(ctx context.Context) ([]ShiftTemplate, error)
	Update(ctx context.Context, template ShiftTemplate) error
	Delete(ctx context.Context, id string) error
}

// ScheduleEntryRepository defines data access methods for schedule entries.
type ScheduleEntryRepository interface {
	Create(ctx context.Context, entry ScheduleEntry) (ScheduleEntry, error)

	// ListByUserAndDate returns all scheduled (non-cancelled) entries for a
	// user on a date, with shift times joined in. A user may hold more
	// than one shift per day; the resolver tie-breaks.
	ListByUserAndDate(ctx context.Context, userID string, date time.Time) ([]ScheduleEntry, error)

	// ListByDateRange returns entries for a user between two dates inclusive
	ListByDateRange(ctx context.Context, userID string, start, end time.Time) ([]ScheduleEntry, error)

	Delete(ctx context.Context, id string) error
}
