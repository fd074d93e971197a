package schedule

import "errors"

var (
	ErrShiftTemplateNotFound = errors.New("shift template not found")
	ErrScheduleEntryNotFound = errors.New("schedule entry not found")
	ErrNoScheduleFound       = errors.New("no schedule found for today")
	ErrDuplicateEntry        = errors.New("schedule entry already exists for this user, date and shift")
)
