package attendance

import (
	"context"
	"time"
)

// DailySummary aggregates one day of attendance.
type DailySummary struct {
	Date            time.Time
	PresentCount    int
	LateCount       int
	OpenCount       int
	CheckedOutCount int
}

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create inserts a new record. The attendance table carries a unique
	// index on (user_id, date); a violation is returned as
	// ErrAlreadyCheckedIn so that two near-simultaneous check-ins cannot
	// both succeed regardless of the application-level duplicate check.
	Create(ctx context.Context, record AttendanceRecord) (AttendanceRecord, error)

	// GetByUserAndDate retrieves the record for a user on a date, or nil
	// when none exists
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*AttendanceRecord, error)

	// Close sets the check-out fields of an open record
	Close(ctx context.Context, record AttendanceRecord) error

	// ListByUser retrieves a user's records with filters and pagination
	ListByUser(ctx context.Context, userID string, filter MyAttendanceFilter) ([]AttendanceRecord, int64, error)

	// List retrieves records with filters and pagination (admin/manager)
	List(ctx context.Context, filter AttendanceFilter) ([]AttendanceRecord, int64, error)

	// SummarizeDate aggregates present/late/open counts for a date
	SummarizeDate(ctx context.Context, date time.Time) (DailySummary, error)
}
