package attendance

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
)

var StatusValues = []string{
	string(StatusPresent),
	string(StatusLate),
}

// AttendanceRecord is one user-day of attendance. It is created at check-in
// with TimeOut nil and mutated exactly once at check-out; it is never
// deleted by the attendance flow. The storage layer enforces at most one
// record per (user, date).
type AttendanceRecord struct {
	ID     string
	UserID string
	Date   time.Time

	TimeIn  time.Time
	TimeOut *time.Time

	LatitudeIn  float64
	LongitudeIn float64
	AccuracyIn  *float64

	LatitudeOut  *float64
	LongitudeOut *float64
	AccuracyOut  *float64

	// Snapshot of the matched geofence at check-in time, not a live join.
	WorkLocationID   string
	WorkLocationName string

	ScheduleEntryID *string
	ShiftName       *string

	Status      Status
	LateMinutes int
	WorkMinutes *int
	Notes       *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Join fields
	UserName *string
}

// IsOpen reports whether the record still awaits a check-out.
func (r *AttendanceRecord) IsOpen() bool {
	return r.TimeOut == nil
}

// FormatWorkDuration renders a minute count as "H jam M menit".
func FormatWorkDuration(minutes int) string {
	return fmt.Sprintf("%d jam %d menit", minutes/60, minutes%60)
}
