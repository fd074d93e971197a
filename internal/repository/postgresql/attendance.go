package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dokterku/klinik-backend-go/internal/domain/attendance"
	"github.com/dokterku/klinik-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type attendanceRepository struct {
	db *database.DB
}

const attendanceColumns = `
	a.id, a.user_id, a.date, a.time_in, a.time_out,
	a.latitude_in, a.longitude_in, a.accuracy_in,
	a.latitude_out, a.longitude_out, a.accuracy_out,
	a.work_location_id, a.work_location_name,
	a.schedule_entry_id, a.shift_name,
	a.status, a.late_minutes, a.work_minutes, a.notes,
	a.created_at, a.updated_at`

func scanAttendance(row pgx.Row, att *attendance.AttendanceRecord) error {
	return row.Scan(
		&att.ID, &att.UserID, &att.Date, &att.TimeIn, &att.TimeOut,
		&att.LatitudeIn, &att.LongitudeIn, &att.AccuracyIn,
		&att.LatitudeOut, &att.LongitudeOut, &att.AccuracyOut,
		&att.WorkLocationID, &att.WorkLocationName,
		&att.ScheduleEntryID, &att.ShiftName,
		&att.Status, &att.LateMinutes, &att.WorkMinutes, &att.Notes,
		&att.CreatedAt, &att.UpdatedAt,
	)
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, record attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			user_id, date, time_in,
			latitude_in, longitude_in, accuracy_in,
			work_location_id, work_location_name,
			schedule_entry_id, shift_name,
			status, late_minutes, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.UserID,
		record.Date,
		record.TimeIn,
		record.LatitudeIn,
		record.LongitudeIn,
		record.AccuracyIn,
		record.WorkLocationID,
		record.WorkLocationName,
		record.ScheduleEntryID,
		record.ShiftName,
		record.Status,
		record.LateMinutes,
		record.Notes,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		// The unique index on (user_id, date) closes the race between two
		// concurrent check-ins.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.AttendanceRecord{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return record, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances a
		WHERE a.user_id = $1
		  AND a.date = $2
		LIMIT 1
	`, attendanceColumns)

	var att attendance.AttendanceRecord
	err := scanAttendance(q.QueryRow(ctx, query, userID, date.Format("2006-01-02")), &att)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by user and date: %w", err)
	}

	return &att, nil
}

// Close implements attendance.AttendanceRepository.
func (a *attendanceRepository) Close(ctx context.Context, record attendance.AttendanceRecord) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET time_out = $1,
			latitude_out = $2,
			longitude_out = $3,
			accuracy_out = $4,
			work_minutes = $5,
			notes = $6,
			updated_at = NOW()
		WHERE id = $7
		  AND time_out IS NULL
	`

	tag, err := q.Exec(ctx, query,
		record.TimeOut,
		record.LatitudeOut,
		record.LongitudeOut,
		record.AccuracyOut,
		record.WorkMinutes,
		record.Notes,
		record.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to close attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// ListByUser implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUser(ctx context.Context, userID string, filter attendance.MyAttendanceFilter) ([]attendance.AttendanceRecord, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "a.user_id = $1"
	args := []interface{}{userID}
	argIdx := 2

	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM attendances a WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	orderByField := "a.date"
	switch filter.SortBy {
	case "time_in":
		orderByField = "a.time_in"
	case "time_out":
		orderByField = "a.time_out"
	case "status":
		orderByField = "a.status"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM attendances a
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.AttendanceRecord
	for rows.Next() {
		var att attendance.AttendanceRecord
		if err := scanAttendance(rows, &att); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}

	return records, total, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceRecord, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.UserID != nil && *filter.UserID != "" {
		baseWhere += fmt.Sprintf(" AND a.user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.UserName != nil && *filter.UserName != "" {
		baseWhere += fmt.Sprintf(" AND u.name ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.UserName+"%")
		argIdx++
	}
	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND a.date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM attendances a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	orderByField := "a.date"
	switch filter.SortBy {
	case "user_name":
		orderByField = "u.name"
	case "time_in":
		orderByField = "a.time_in"
	case "time_out":
		orderByField = "a.time_out"
	case "status":
		orderByField = "a.status"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s,
			u.name AS user_name
		FROM attendances a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.AttendanceRecord
	for rows.Next() {
		var att attendance.AttendanceRecord
		err := rows.Scan(
			&att.ID, &att.UserID, &att.Date, &att.TimeIn, &att.TimeOut,
			&att.LatitudeIn, &att.LongitudeIn, &att.AccuracyIn,
			&att.LatitudeOut, &att.LongitudeOut, &att.AccuracyOut,
			&att.WorkLocationID, &att.WorkLocationName,
			&att.ScheduleEntryID, &att.ShiftName,
			&att.Status, &att.LateMinutes, &att.WorkMinutes, &att.Notes,
			&att.CreatedAt, &att.UpdatedAt,
			&att.UserName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}

	return records, total, nil
}

// SummarizeDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) SummarizeDate(ctx context.Context, date time.Time) (attendance.DailySummary, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'present') AS present_count,
			COUNT(*) FILTER (WHERE status = 'late') AS late_count,
			COUNT(*) FILTER (WHERE time_out IS NULL) AS open_count,
			COUNT(*) FILTER (WHERE time_out IS NOT NULL) AS checked_out_count
		FROM attendances
		WHERE date = $1
	`

	summary := attendance.DailySummary{Date: date}
	err := q.QueryRow(ctx, query, date.Format("2006-01-02")).Scan(
		&summary.PresentCount,
		&summary.LateCount,
		&summary.OpenCount,
		&summary.CheckedOutCount,
	)
	if err != nil {
		return attendance.DailySummary{}, fmt.Errorf("failed to summarize attendances: %w", err)
	}

	return summary, nil
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
