package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dokterku/klinik-backend-go/internal/config"
	"github.com/dokterku/klinik-backend-go/internal/domain/notification"
	"github.com/dokterku/klinik-backend-go/internal/domain/schedule"
	"github.com/dokterku/klinik-backend-go/internal/domain/user"
	"github.com/dokterku/klinik-backend-go/internal/pkg/database"
	"github.com/dokterku/klinik-backend-go/internal/pkg/validator"
	"github.com/dokterku/klinik-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ScheduleServiceImpl struct {
	templateRepo     schedule.ShiftTemplateRepository
	entryRepo        schedule.ScheduleEntryRepository
	notificationRepo notification.NotificationRepository
	userRepo         user.UserRepository
	cfg              config.AttendanceConfig
	location         *time.Location

	// runInTx executes fn with a transaction bound to the context, so
	// multi-row writes commit or roll back as a unit.
	runInTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

// ResolveForCheckIn implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) ResolveForCheckIn(ctx context.Context, userID string, at time.Time) (schedule.Resolution, error) {
	atLocal := at.In(s.location)
	date := time.Date(atLocal.Year(), atLocal.Month(), atLocal.Day(), 0, 0, 0, 0, time.UTC)

	entries, err := s.entryRepo.ListByUserAndDate(ctx, userID, date)
	if err != nil {
		return schedule.Resolution{}, fmt.Errorf("failed to list schedule entries: %w", err)
	}
	if len(entries) == 0 {
		return schedule.Resolution{}, schedule.ErrNoScheduleFound
	}

	// With multiple shifts scheduled on the same date, attendance applies
	// to the shift whose start is nearest to the check-in instant.
	var best schedule.ScheduleEntry
	var bestStart, bestEnd time.Time
	bestGap := time.Duration(-1)

	for _, entry := range entries {
		if entry.ShiftStartTime == nil || entry.ShiftEndTime == nil {
			continue
		}

		start := time.Date(
			atLocal.Year(), atLocal.Month(), atLocal.Day(),
			entry.ShiftStartTime.Hour(), entry.ShiftStartTime.Minute(), entry.ShiftStartTime.Second(), 0,
			s.location,
		)
		end := time.Date(
			atLocal.Year(), atLocal.Month(), atLocal.Day(),
			entry.ShiftEndTime.Hour(), entry.ShiftEndTime.Minute(), entry.ShiftEndTime.Second(), 0,
			s.location,
		)
		// A shift whose end is not after its start wraps past midnight.
		if !end.After(start) {
			end = end.AddDate(0, 0, 1)
		}

		gap := atLocal.Sub(start)
		if gap < 0 {
			gap = -gap
		}
		if bestGap < 0 || gap < bestGap {
			best = entry
			bestStart = start
			bestEnd = end
			bestGap = gap
		}
	}

	if bestGap < 0 {
		return schedule.Resolution{}, schedule.ErrNoScheduleFound
	}

	resolution := schedule.Resolution{
		Entry:      best,
		ShiftStart: bestStart,
		ShiftEnd:   bestEnd,
	}

	graceLimit := bestStart.Add(time.Duration(s.cfg.GracePeriodMinutes) * time.Minute)
	if atLocal.After(graceLimit) {
		resolution.IsLate = true
		// Late minutes measure from the scheduled start, not the grace limit.
		resolution.LateMinutes = int(atLocal.Sub(bestStart).Minutes())
	}

	return resolution, nil
}

// CreateShiftTemplate implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) CreateShiftTemplate(ctx context.Context, req schedule.CreateShiftTemplateRequest) (schedule.ShiftTemplateResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ShiftTemplateResponse{}, err
	}

	startTime, _ := parseClockTime(req.StartTime)
	endTime, _ := parseClockTime(req.EndTime)

	created, err := s.templateRepo.Create(ctx, schedule.ShiftTemplate{
		Name:      req.Name,
		StartTime: startTime,
		EndTime:   endTime,
	})
	if err != nil {
		return schedule.ShiftTemplateResponse{}, fmt.Errorf("failed to create shift template: %w", err)
	}

	return mapTemplateToResponse(created), nil
}

// ListShiftTemplates implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) ListShiftTemplates(ctx context.Context) ([]schedule.ShiftTemplateResponse, error) {
	templates, err := s.templateRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift templates: %w", err)
	}

	responses := make([]schedule.ShiftTemplateResponse, 0, len(templates))
	for _, t := range templates {
		responses = append(responses, mapTemplateToResponse(t))
	}

	return responses, nil
}

// UpdateShiftTemplate implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) UpdateShiftTemplate(ctx context.Context, req schedule.UpdateShiftTemplateRequest) (schedule.ShiftTemplateResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ShiftTemplateResponse{}, err
	}

	template, err := s.templateRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, schedule.ErrShiftTemplateNotFound) {
			return schedule.ShiftTemplateResponse{}, schedule.ErrShiftTemplateNotFound
		}
		return schedule.ShiftTemplateResponse{}, fmt.Errorf("failed to get shift template: %w", err)
	}

	if req.Name != nil {
		template.Name = *req.Name
	}
	if req.StartTime != nil {
		template.StartTime, _ = parseClockTime(*req.StartTime)
	}
	if req.EndTime != nil {
		template.EndTime, _ = parseClockTime(*req.EndTime)
	}

	if err := s.templateRepo.Update(ctx, template); err != nil {
		return schedule.ShiftTemplateResponse{}, fmt.Errorf("failed to update shift template: %w", err)
	}

	return mapTemplateToResponse(template), nil
}

// DeleteShiftTemplate implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) DeleteShiftTemplate(ctx context.Context, id string) error {
	if err := s.templateRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, schedule.ErrShiftTemplateNotFound) {
			return schedule.ErrShiftTemplateNotFound
		}
		return fmt.Errorf("failed to delete shift template: %w", err)
	}
	return nil
}

// CreateScheduleEntry implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) CreateScheduleEntry(ctx context.Context, req schedule.CreateScheduleEntryRequest) (schedule.ScheduleEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ScheduleEntryResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	if _, err := s.templateRepo.GetByID(ctx, req.ShiftTemplateID); err != nil {
		if errors.Is(err, schedule.ErrShiftTemplateNotFound) {
			return schedule.ScheduleEntryResponse{}, schedule.ErrShiftTemplateNotFound
		}
		return schedule.ScheduleEntryResponse{}, fmt.Errorf("failed to get shift template: %w", err)
	}

	created, err := s.entryRepo.Create(ctx, schedule.ScheduleEntry{
		UserID:          req.UserID,
		Date:            date,
		ShiftTemplateID: req.ShiftTemplateID,
		RoleUnit:        req.RoleUnit,
		Status:          schedule.EntryStatusScheduled,
	})
	if err != nil {
		if errors.Is(err, schedule.ErrDuplicateEntry) {
			return schedule.ScheduleEntryResponse{}, schedule.ErrDuplicateEntry
		}
		return schedule.ScheduleEntryResponse{}, fmt.Errorf("failed to create schedule entry: %w", err)
	}

	return mapEntryToResponse(created), nil
}

// BulkCreateSchedules implements schedule.ScheduleService.
//
// The whole assignment commits or rolls back as one transaction. Dates on
// which a user already holds the shift are skipped, not treated as errors,
// so re-running a bulk assignment is harmless. Notification delivery is
// fire-and-forget after the commit.
func (s *ScheduleServiceImpl) BulkCreateSchedules(ctx context.Context, req schedule.BulkCreateScheduleRequest) (schedule.BulkCreateScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.BulkCreateScheduleResponse{}, err
	}

	template, err := s.templateRepo.GetByID(ctx, req.ShiftTemplateID)
	if err != nil {
		if errors.Is(err, schedule.ErrShiftTemplateNotFound) {
			return schedule.BulkCreateScheduleResponse{}, schedule.ErrShiftTemplateNotFound
		}
		return schedule.BulkCreateScheduleResponse{}, fmt.Errorf("failed to get shift template: %w", err)
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	userIDs := req.UserIDs
	if len(userIDs) == 0 {
		role := user.Role(req.Role)
		if _, ok := user.RolePermissions[role]; !ok {
			return schedule.BulkCreateScheduleResponse{}, validator.ValidationErrors{{
				Field:   "role",
				Message: "unknown role",
			}}
		}
		userIDs, err = s.userRepo.ListActiveIDsByRole(ctx, role)
		if err != nil {
			return schedule.BulkCreateScheduleResponse{}, fmt.Errorf("failed to list users by role: %w", err)
		}
	}

	var created, skipped int
	err = s.runInTx(ctx, func(txCtx context.Context) error {
		for _, userID := range userIDs {
			for date := startDate; !date.After(endDate); date = date.AddDate(0, 0, 1) {
				existing, err := s.entryRepo.ListByUserAndDate(txCtx, userID, date)
				if err != nil {
					return fmt.Errorf("failed to list schedule entries: %w", err)
				}
				if hasShift(existing, req.ShiftTemplateID) {
					skipped++
					continue
				}

				_, err = s.entryRepo.Create(txCtx, schedule.ScheduleEntry{
					UserID:          userID,
					Date:            date,
					ShiftTemplateID: req.ShiftTemplateID,
					RoleUnit:        req.RoleUnit,
					Status:          schedule.EntryStatusScheduled,
				})
				if err != nil {
					return fmt.Errorf("failed to create schedule entry: %w", err)
				}
				created++
			}
		}
		return nil
	})
	if err != nil {
		return schedule.BulkCreateScheduleResponse{}, err
	}

	for _, userID := range userIDs {
		notifErr := s.notificationRepo.Create(ctx, notification.Notification{
			ID:     uuid.NewString(),
			UserID: userID,
			Title:  "Jadwal jaga baru",
			Body: fmt.Sprintf("Anda dijadwalkan shift %s dari %s sampai %s",
				template.Name, req.StartDate, req.EndDate),
		})
		if notifErr != nil {
			slog.Warn("failed to create schedule notification",
				"user_id", userID, "error", notifErr)
		}
	}

	return schedule.BulkCreateScheduleResponse{
		CreatedCount: created,
		SkippedCount: skipped,
	}, nil
}

func hasShift(entries []schedule.ScheduleEntry, shiftTemplateID string) bool {
	for _, entry := range entries {
		if entry.ShiftTemplateID == shiftTemplateID {
			return true
		}
	}
	return false
}

// DeleteScheduleEntry implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) DeleteScheduleEntry(ctx context.Context, id string) error {
	if err := s.entryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, schedule.ErrScheduleEntryNotFound) {
			return schedule.ErrScheduleEntryNotFound
		}
		return fmt.Errorf("failed to delete schedule entry: %w", err)
	}
	return nil
}

// GetMySchedule implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) GetMySchedule(ctx context.Context, userID string, start, end time.Time) ([]schedule.ScheduleEntryResponse, error) {
	entries, err := s.entryRepo.ListByDateRange(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule entries: %w", err)
	}

	responses := make([]schedule.ScheduleEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, mapEntryToResponse(entry))
	}

	return responses, nil
}

func parseClockTime(value string) (time.Time, error) {
	if t, err := time.Parse("15:04:05", value); err == nil {
		return t, nil
	}
	return time.Parse("15:04", value)
}

func clockTimePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format("15:04:05")
	return &formatted
}

func mapTemplateToResponse(t schedule.ShiftTemplate) schedule.ShiftTemplateResponse {
	return schedule.ShiftTemplateResponse{
		ID:            t.ID,
		Name:          t.Name,
		StartTime:     t.StartTime.Format("15:04:05"),
		EndTime:       t.EndTime.Format("15:04:05"),
		WrapsMidnight: t.WrapsMidnight(),
		CreatedAt:     t.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:     t.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func mapEntryToResponse(entry schedule.ScheduleEntry) schedule.ScheduleEntryResponse {
	return schedule.ScheduleEntryResponse{
		ID:              entry.ID,
		UserID:          entry.UserID,
		UserName:        entry.UserName,
		Date:            entry.Date.Format("2006-01-02"),
		ShiftTemplateID: entry.ShiftTemplateID,
		ShiftName:       entry.ShiftName,
		StartTime:       clockTimePtrToString(entry.ShiftStartTime),
		EndTime:         clockTimePtrToString(entry.ShiftEndTime),
		RoleUnit:        entry.RoleUnit,
		Status:          string(entry.Status),
	}
}

func NewScheduleService(
	db *database.DB,
	templateRepo schedule.ShiftTemplateRepository,
	entryRepo schedule.ScheduleEntryRepository,
	notificationRepo notification.NotificationRepository,
	userRepo user.UserRepository,
	cfg config.AttendanceConfig,
) schedule.ScheduleService {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.UTC
	}
	return &ScheduleServiceImpl{
		templateRepo:     templateRepo,
		entryRepo:        entryRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		cfg:              cfg,
		location:         loc,
		runInTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, func(tx pgx.Tx) error {
				return fn(context.WithValue(ctx, "tx", tx))
			})
		},
	}
}
