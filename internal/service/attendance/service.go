package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/dokterku/klinik-backend-go/internal/config"
	"github.com/dokterku/klinik-backend-go/internal/domain/attendance"
	"github.com/dokterku/klinik-backend-go/internal/domain/schedule"
	"github.com/dokterku/klinik-backend-go/internal/domain/worklocation"
	"github.com/dokterku/klinik-backend-go/internal/pkg/cache"
	"github.com/go-chi/jwtauth/v5"
)

type AttendanceServiceImpl struct {
	attendanceRepo  attendance.AttendanceRepository
	locationService worklocation.WorkLocationService
	scheduleService schedule.ScheduleService
	statusCache     cache.Cache
	cfg             config.AttendanceConfig
	location        *time.Location
	now             func() time.Time
}

func statusCacheKey(userID string, date time.Time) string {
	return fmt.Sprintf("attendance:today:%s:%s", userID, date.Format("2006-01-02"))
}

// workingDate maps an instant to the clinic-local calendar day, stored as a
// UTC midnight so date equality is exact.
func (a *AttendanceServiceImpl) workingDate(t time.Time) time.Time {
	local := t.In(a.location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// activeRecord returns the record a transition applies to on the given
// working day: the day's own record, or the previous day's record while it is
// still open, so a night shift can be closed after local midnight.
func (a *AttendanceServiceImpl) activeRecord(ctx context.Context, userID string, date time.Time) (*attendance.AttendanceRecord, error) {
	record, err := a.attendanceRepo.GetByUserAndDate(ctx, userID, date)
	if err != nil || record != nil {
		return record, err
	}

	prev, err := a.attendanceRepo.GetByUserAndDate(ctx, userID, date.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}
	if prev != nil && prev.IsOpen() {
		return prev, nil
	}
	return nil, nil
}

func userIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return userID, nil
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.CheckInResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckInResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	nowUTC := a.now().UTC()
	date := a.workingDate(nowUTC)

	// Today's record, open or closed, blocks a new check-in; so does an
	// open record carried over from a night shift.
	existing, err := a.activeRecord(ctx, userID, date)
	if err != nil {
		return attendance.CheckInResponse{}, fmt.Errorf("failed to check today's attendance: %w", err)
	}
	if existing != nil {
		return attendance.CheckInResponse{}, attendance.ErrAlreadyCheckedIn
	}

	accuracy := 0.0
	if req.Accuracy != nil {
		accuracy = *req.Accuracy
	}

	match, err := a.locationService.Match(ctx, req.Latitude, req.Longitude, accuracy)
	if err != nil {
		if errors.Is(err, worklocation.ErrAccuracyTooLow) || errors.Is(err, worklocation.ErrOutsideRadius) {
			return attendance.CheckInResponse{}, err
		}
		return attendance.CheckInResponse{}, fmt.Errorf("failed to match work location: %w", err)
	}

	resolution, err := a.scheduleService.ResolveForCheckIn(ctx, userID, nowUTC)
	if err != nil {
		if errors.Is(err, schedule.ErrNoScheduleFound) {
			return attendance.CheckInResponse{}, schedule.ErrNoScheduleFound
		}
		return attendance.CheckInResponse{}, fmt.Errorf("failed to resolve schedule: %w", err)
	}

	status := attendance.StatusPresent
	if resolution.IsLate {
		status = attendance.StatusLate
	}

	record := attendance.AttendanceRecord{
		UserID: userID,

		// Date is the clinic-local working day, not a timestamp.
		Date: date,

		// Absolute instants are stored in UTC.
		TimeIn: nowUTC,

		LatitudeIn:  req.Latitude,
		LongitudeIn: req.Longitude,
		AccuracyIn:  req.Accuracy,

		// Geofence snapshot; later edits to the location must not
		// rewrite history.
		WorkLocationID:   match.Location.ID,
		WorkLocationName: match.Location.Name,

		ScheduleEntryID: &resolution.Entry.ID,
		ShiftName:       resolution.Entry.ShiftName,

		Status:      status,
		LateMinutes: resolution.LateMinutes,
		Notes:       req.Notes,
	}

	created, err := a.attendanceRepo.Create(ctx, record)
	if err != nil {
		// The unique index on (user_id, date) is the authoritative guard
		// against a double-tap race; the repository maps its violation.
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			return attendance.CheckInResponse{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.CheckInResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	a.statusCache.Invalidate(statusCacheKey(userID, date))

	shiftName := ""
	if resolution.Entry.ShiftName != nil {
		shiftName = *resolution.Entry.ShiftName
	}

	return attendance.CheckInResponse{
		AttendanceID: created.ID,
		Date:         date.Format("2006-01-02"),
		TimeIn:       created.TimeIn.In(a.location).Format("15:04:05"),
		Status:       string(status),
		Coordinates: attendance.Coordinates{
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
			Accuracy:  req.Accuracy,
		},
		Location: attendance.LocationInfo{
			ID:   match.Location.ID,
			Name: match.Location.Name,
		},
		Schedule: attendance.ScheduleInfo{
			ShiftName:   shiftName,
			IsLate:      resolution.IsLate,
			LateMinutes: resolution.LateMinutes,
		},
	}, nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.CheckOutResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckOutResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}

	nowUTC := a.now().UTC()
	date := a.workingDate(nowUTC)

	record, err := a.activeRecord(ctx, userID, date)
	if err != nil {
		return attendance.CheckOutResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record == nil {
		return attendance.CheckOutResponse{}, attendance.ErrNotCheckedIn
	}
	if !record.IsOpen() {
		return attendance.CheckOutResponse{}, attendance.ErrAlreadyCheckedOut
	}

	accuracy := 0.0
	if req.Accuracy != nil {
		accuracy = *req.Accuracy
	}

	// Checkout goes through the same geofence rules as check-in.
	if _, err := a.locationService.Match(ctx, req.Latitude, req.Longitude, accuracy); err != nil {
		if errors.Is(err, worklocation.ErrAccuracyTooLow) || errors.Is(err, worklocation.ErrOutsideRadius) {
			return attendance.CheckOutResponse{}, err
		}
		return attendance.CheckOutResponse{}, fmt.Errorf("failed to match work location: %w", err)
	}

	workMinutes := int(math.Floor(nowUTC.Sub(record.TimeIn).Minutes()))
	if workMinutes < 0 {
		workMinutes = 0
	}

	record.TimeOut = &nowUTC
	record.LatitudeOut = &req.Latitude
	record.LongitudeOut = &req.Longitude
	record.AccuracyOut = req.Accuracy
	record.WorkMinutes = &workMinutes
	if req.Notes != nil {
		record.Notes = req.Notes
	}

	if err := a.attendanceRepo.Close(ctx, *record); err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.CheckOutResponse{}, attendance.ErrNotCheckedIn
		}
		return attendance.CheckOutResponse{}, fmt.Errorf("failed to close attendance record: %w", err)
	}

	a.statusCache.Invalidate(statusCacheKey(userID, date))
	if !record.Date.Equal(date) {
		a.statusCache.Invalidate(statusCacheKey(userID, record.Date))
	}

	return attendance.CheckOutResponse{
		AttendanceID: record.ID,

		// A night shift closes against the day it was opened on.
		Date:         record.Date.Format("2006-01-02"),
		TimeIn:       record.TimeIn.In(a.location).Format("15:04:05"),
		TimeOut:      nowUTC.In(a.location).Format("15:04:05"),
		WorkDuration: attendance.WorkDuration{
			Minutes:   workMinutes,
			Formatted: attendance.FormatWorkDuration(workMinutes),
		},
		Coordinates: attendance.Coordinates{
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
			Accuracy:  req.Accuracy,
		},
	}, nil
}

// Today implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Today(ctx context.Context) (attendance.TodayStatusResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.TodayStatusResponse{}, err
	}

	nowUTC := a.now().UTC()
	date := a.workingDate(nowUTC)
	key := statusCacheKey(userID, date)

	if cached, ok := a.statusCache.Get(key); ok {
		if snapshot, ok := cached.(attendance.TodayStatusResponse); ok {
			return snapshot, nil
		}
	}

	snapshot := attendance.TodayStatusResponse{
		Date: date.Format("2006-01-02"),
	}

	resolution, err := a.scheduleService.ResolveForCheckIn(ctx, userID, nowUTC)
	switch {
	case err == nil:
		snapshot.HasSchedule = true
		snapshot.ShiftName = resolution.Entry.ShiftName
		start := resolution.ShiftStart.Format("15:04:05")
		end := resolution.ShiftEnd.Format("15:04:05")
		snapshot.ShiftStart = &start
		snapshot.ShiftEnd = &end
	case errors.Is(err, schedule.ErrNoScheduleFound):
		// No schedule today; check-in stays blocked.
	default:
		return attendance.TodayStatusResponse{}, fmt.Errorf("failed to resolve schedule: %w", err)
	}

	// A still-open night shift from the previous day counts as the active
	// record: it keeps check-out available and blocks a new check-in.
	record, err := a.activeRecord(ctx, userID, date)
	if err != nil {
		return attendance.TodayStatusResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	if record != nil {
		snapshot.HasCheckedIn = true
		snapshot.HasCheckedOut = !record.IsOpen()
		response := a.mapRecordToResponse(*record)
		snapshot.TodayAttendance = &response
	}

	snapshot.CanCheckIn = snapshot.HasSchedule && !snapshot.HasCheckedIn
	snapshot.CanCheckOut = snapshot.HasCheckedIn && !snapshot.HasCheckedOut

	a.statusCache.Set(key, snapshot, a.cfg.StatusCacheTTL)

	return snapshot, nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.MyAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := a.attendanceRepo.ListByUser(ctx, userID, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list my attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, a.mapRecordToResponse(record))
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  int(math.Ceil(float64(total) / float64(filter.Limit))),
		Attendances: responses,
	}, nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := a.attendanceRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, a.mapRecordToResponse(record))
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  int(math.Ceil(float64(total) / float64(filter.Limit))),
		Attendances: responses,
	}, nil
}

// Summary implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Summary(ctx context.Context, dateStr string) (attendance.DailySummaryResponse, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return attendance.DailySummaryResponse{}, fmt.Errorf("invalid date %q: %w", dateStr, err)
	}

	summary, err := a.attendanceRepo.SummarizeDate(ctx, date)
	if err != nil {
		return attendance.DailySummaryResponse{}, fmt.Errorf("failed to summarize attendance: %w", err)
	}

	return attendance.DailySummaryResponse{
		Date:            date.Format("2006-01-02"),
		PresentCount:    summary.PresentCount,
		LateCount:       summary.LateCount,
		OpenCount:       summary.OpenCount,
		CheckedOutCount: summary.CheckedOutCount,
	}, nil
}

func (a *AttendanceServiceImpl) mapRecordToResponse(record attendance.AttendanceRecord) attendance.AttendanceResponse {
	var timeOut *string
	if record.TimeOut != nil {
		formatted := record.TimeOut.In(a.location).Format("15:04:05")
		timeOut = &formatted
	}

	return attendance.AttendanceResponse{
		ID:               record.ID,
		UserID:           record.UserID,
		UserName:         record.UserName,
		Date:             record.Date.Format("2006-01-02"),
		TimeIn:           record.TimeIn.In(a.location).Format("15:04:05"),
		TimeOut:          timeOut,
		WorkLocationID:   record.WorkLocationID,
		WorkLocationName: record.WorkLocationName,
		ShiftName:        record.ShiftName,
		Status:           string(record.Status),
		LateMinutes:      record.LateMinutes,
		WorkMinutes:      record.WorkMinutes,
		Notes:            record.Notes,
	}
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	locationService worklocation.WorkLocationService,
	scheduleService schedule.ScheduleService,
	statusCache cache.Cache,
	cfg config.AttendanceConfig,
) attendance.AttendanceService {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		attendanceRepo:  attendanceRepo,
		locationService: locationService,
		scheduleService: scheduleService,
		statusCache:     statusCache,
		cfg:             cfg,
		location:        loc,
		now:             time.Now,
	}
}
