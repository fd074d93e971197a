package postgresql

import (
	"context"
	"fmt"

	"github.com/dokterku/klinik-backend-go/internal/domain/schedule"
	"github.com/dokterku/klinik-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type shiftTemplateRepository struct {
	db *database.DB
}

// Create implements schedule.ShiftTemplateRepository.
func (s *shiftTemplateRepository) Create(ctx context.Context, template schedule.ShiftTemplate) (schedule.ShiftTemplate, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO shift_templates (name, start_time, end_time)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		template.Name,
		template.StartTime.Format("15:04:05"),
		template.EndTime.Format("15:04:05"),
	).Scan(&template.ID, &template.CreatedAt, &template.UpdatedAt)
	if err != nil {
		return schedule.ShiftTemplate{}, fmt.Errorf("failed to create shift template: %w", err)
	}

	return template, nil
}

// GetByID implements schedule.ShiftTemplateRepository.
func (s *shiftTemplateRepository) GetByID(ctx context.Context, id string) (schedule.ShiftTemplate, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, name, start_time, end_time, created_at, updated_at
		FROM shift_templates
		WHERE id = $1
	`

	var template schedule.ShiftTemplate
	err := q.QueryRow(ctx, query, id).Scan(
		&template.ID, &template.Name,
		&template.StartTime, &template.EndTime,
		&template.CreatedAt, &template.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return schedule.ShiftTemplate{}, schedule.ErrShiftTemplateNotFound
		}
		return schedule.ShiftTemplate{}, fmt.Errorf("failed to get shift template: %w", err)
	}

	return template, nil
}

// List implements schedule.ShiftTemplateRepository.
func (s *shiftTemplateRepository) List(ctx context.Context) ([]schedule.ShiftTemplate, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, name, start_time, end_time, created_at, updated_at
		FROM shift_templates
		ORDER BY start_time ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift templates: %w", err)
	}
	defer rows.Close()

	var templates []schedule.ShiftTemplate
	for rows.Next() {
		var template schedule.ShiftTemplate
		err := rows.Scan(
			&template.ID, &template.Name,
			&template.StartTime, &template.EndTime,
			&template.CreatedAt, &template.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift template: %w", err)
		}
		templates = append(templates, template)
	}

	return templates, nil
}

// Update implements schedule.ShiftTemplateRepository.
func (s *shiftTemplateRepository) Update(ctx context.Context, template schedule.ShiftTemplate) error {
	q := GetQuerier(ctx, s.db)

	query := `
		UPDATE shift_templates
		SET name = $1,
			start_time = $2,
			end_time = $3,
			updated_at = NOW()
		WHERE id = $4
	`

	tag, err := q.Exec(ctx, query,
		template.Name,
		template.StartTime.Format("15:04:05"),
		template.EndTime.Format("15:04:05"),
		template.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update shift template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrShiftTemplateNotFound
	}

	return nil
}

// Delete implements schedule.ShiftTemplateRepository.
func (s *shiftTemplateRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, s.db)

	tag, err := q.Exec(ctx, "DELETE FROM shift_templates WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete shift template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrShiftTemplateNotFound
	}

	return nil
}

func NewShiftTemplateRepository(db *database.DB) schedule.ShiftTemplateRepository {
	return &shiftTemplateRepository{db: db}
}
