package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/examia/examia-backend/internal/models"
	"github.com/examia/examia-backend/internal/server/storage"
)

// CreatePYQ persists a new PYQ record.
// The rowid alias `seq` records insertion order; the transactional
// insert means concurrent creates never overwrite each other.
func (s *Storage) CreatePYQ(ctx context.Context, pyq *models.PYQ) error {
	query := `
		INSERT INTO pyqs (id, exam, year, subject, chapter, question, solution, type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		pyq.ID,
		pyq.Exam,
		pyq.Year,
		pyq.Subject,
		pyq.Chapter,
		pyq.Question,
		pyq.Solution,
		string(pyq.Type),
		pyq.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert pyq: %w", err)
	}

	return nil
}

// ListPYQs returns records matching the filter in insertion order.
// Filter keys are exact string matches; absent keys impose nothing.
func (s *Storage) ListPYQs(ctx context.Context, filter models.PYQFilter) (pyqs []*models.PYQ, err error) {
	query := `
		SELECT id, exam, year, subject, chapter, question, solution, type, created_at
		FROM pyqs
	`

	var conditions []string
	var args []any

	for _, c := range []struct {
		column string
		value  string
	}{
		{"exam", filter.Exam},
		{"year", filter.Year},
		{"subject", filter.Subject},
		{"chapter", filter.Chapter},
		{"type", filter.Type},
	} {
		if c.value != "" {
			conditions = append(conditions, c.column+" = ?")
			args = append(args, c.value)
		}
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY seq"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pyqs: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	pyqs = make([]*models.PYQ, 0)
	for rows.Next() {
		pyq := &models.PYQ{}
		var solutionType string

		if err := rows.Scan(
			&pyq.ID,
			&pyq.Exam,
			&pyq.Year,
			&pyq.Subject,
			&pyq.Chapter,
			&pyq.Question,
			&pyq.Solution,
			&solutionType,
			&pyq.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan pyq: %w", err)
		}

		pyq.Type = models.SolutionType(solutionType)
		pyqs = append(pyqs, pyq)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pyqs: %w", err)
	}

	return pyqs, nil
}

// DeletePYQ removes one record by id
func (s *Storage) DeletePYQ(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM pyqs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete pyq: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrPYQNotFound
	}

	return nil
}
