package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dokterku/klinik-backend-go/internal/domain/schedule"
	"github.com/dokterku/klinik-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5/pgconn"
)

type scheduleEntryRepository struct {
	db *database.DB
}

// Create implements schedule.ScheduleEntryRepository.
func (s *scheduleEntryRepository) Create(ctx context.Context, entry schedule.ScheduleEntry) (schedule.ScheduleEntry, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO schedule_entries (user_id, date, shift_template_id, role_unit, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		entry.UserID,
		entry.Date.Format("2006-01-02"),
		entry.ShiftTemplateID,
		entry.RoleUnit,
		entry.Status,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		// Unique index on (user_id, date, shift_template_id).
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return schedule.ScheduleEntry{}, schedule.ErrDuplicateEntry
		}
		return schedule.ScheduleEntry{}, fmt.Errorf("failed to create schedule entry: %w", err)
	}

	return entry, nil
}

// ListByUserAndDate implements schedule.ScheduleEntryRepository.
func (s *scheduleEntryRepository) ListByUserAndDate(ctx context.Context, userID string, date time.Time) ([]schedule.ScheduleEntry, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT se.id, se.user_id, se.date, se.shift_template_id, se.role_unit, se.status,
			   se.created_at, se.updated_at,
			   st.name AS shift_name, st.start_time, st.end_time
		FROM schedule_entries se
		LEFT JOIN shift_templates st ON st.id = se.shift_template_id
		WHERE se.user_id = $1
		  AND se.date = $2
		  AND se.status = 'scheduled'
		ORDER BY st.start_time ASC
	`

	rows, err := q.Query(ctx, query, userID, date.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule entries: %w", err)
	}
	defer rows.Close()

	var entries []schedule.ScheduleEntry
	for rows.Next() {
		var entry schedule.ScheduleEntry
		err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.Date, &entry.ShiftTemplateID, &entry.RoleUnit, &entry.Status,
			&entry.CreatedAt, &entry.UpdatedAt,
			&entry.ShiftName, &entry.ShiftStartTime, &entry.ShiftEndTime,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// ListByDateRange implements schedule.ScheduleEntryRepository.
func (s *scheduleEntryRepository) ListByDateRange(ctx context.Context, userID string, start, end time.Time) ([]schedule.ScheduleEntry, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT se.id, se.user_id, se.date, se.shift_template_id, se.role_unit, se.status,
			   se.created_at, se.updated_at,
			   st.name AS shift_name, st.start_time, st.end_time,
			   u.name AS user_name
		FROM schedule_entries se
		LEFT JOIN shift_templates st ON st.id = se.shift_template_id
		LEFT JOIN users u ON u.id = se.user_id
		WHERE se.user_id = $1
		  AND se.date >= $2
		  AND se.date <= $3
		ORDER BY se.date ASC, st.start_time ASC
	`

	rows, err := q.Query(ctx, query, userID, start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule entries: %w", err)
	}
	defer rows.Close()

	var entries []schedule.ScheduleEntry
	for rows.Next() {
		var entry schedule.ScheduleEntry
		err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.Date, &entry.ShiftTemplateID, &entry.RoleUnit, &entry.Status,
			&entry.CreatedAt, &entry.UpdatedAt,
			&entry.ShiftName, &entry.ShiftStartTime, &entry.ShiftEndTime,
			&entry.UserName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// Delete implements schedule.ScheduleEntryRepository.
func (s *scheduleEntryRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, s.db)

	tag, err := q.Exec(ctx, "DELETE FROM schedule_entries WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrScheduleEntryNotFound
	}

	return nil
}

func NewScheduleEntryRepository(db *database.DB) schedule.ScheduleEntryRepository {
	return &scheduleEntryRepository{db: db}
}
