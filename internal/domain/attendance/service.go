package attendance

import (
	"context"
)

// AttendanceService defines business logic for the check-in/check-out
// lifecycle of a single user-day.
type AttendanceService interface {
	// CheckIn validates geofence and schedule and creates today's record.
	// Valid only when no record exists for the user today.
	CheckIn(ctx context.Context, req CheckInRequest) (CheckInResponse, error)

	// CheckOut closes today's open record. Valid only when a record exists
	// and has no time-out yet. Checkout coordinates go through the same
	// geofence rules as check-in.
	CheckOut(ctx context.Context, req CheckOutRequest) (CheckOutResponse, error)

	// Today returns the current state snapshot for the authenticated user.
	// Served read-through from the status cache.
	Today(ctx context.Context) (TodayStatusResponse, error)

	// GetMyAttendance retrieves attendance records for the authenticated user
	GetMyAttendance(ctx context.Context, filter MyAttendanceFilter) (ListAttendanceResponse, error)

	// ListAttendance retrieves attendance records with filters (admin/manager)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// Summary aggregates one day of attendance (manager)
	Summary(ctx context.Context, date string) (DailySummaryResponse, error)
}
