package schedule

import "time"

// ShiftTemplate is a named clock-in/clock-out window. EndTime at or before
// StartTime means the shift ends on the following day (night shift).
type ShiftTemplate struct {
	ID        string
	Name      string
	StartTime time.Time // clock component only
	EndTime   time.Time // clock component only
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WrapsMidnight reports whether the shift's end falls on the next day.
func (t ShiftTemplate) WrapsMidnight() bool {
	end := t.EndTime.Hour()*60 + t.EndTime.Minute()
	start := t.StartTime.Hour()*60 + t.StartTime.Minute()
	return end <= start
}

type EntryStatus string

const (
	EntryStatusScheduled EntryStatus = "scheduled"
	EntryStatusCancelled EntryStatus = "cancelled"
)

// ScheduleEntry assigns a user to a shift on a date (jadwal jaga). Entries
// are created by admins and only read by the attendance flow.
type ScheduleEntry struct {
	ID              string
	UserID          string
	Date            time.Time
	ShiftTemplateID string
	RoleUnit        string
	Status          EntryStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Join fields
	ShiftName      *string
	ShiftStartTime *time.Time
	ShiftEndTime   *time.Time
	UserName       *string
}

// Resolution is the schedule context for one check-in attempt: the matched
// entry plus the shift window as absolute times in the clinic's timezone.
type Resolution struct {
	Entry       ScheduleEntry
	ShiftStart  time.Time
	ShiftEnd    time.Time
	IsLate      bool
	LateMinutes int
}
