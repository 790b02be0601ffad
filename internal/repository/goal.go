package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/scoreline/tracker/internal/domain"
)

type goalRepo struct{}

// NewGoalRepository returns a pgx-backed GoalRepository.
func NewGoalRepository() GoalRepository {
	return &goalRepo{}
}

const goalColumns = `
	id, user_id, title, COALESCE(current_progress, 0), target_progress,
	criteria, is_locked, is_paused, is_completed, display_order,
	assigned_at, completed_at`

func (r *goalRepo) ListActive(ctx context.Context, db DBTX, userID int64) ([]domain.Goal, error) {
	rows, err := db.Query(ctx, `
		SELECT `+goalColumns+`
		FROM goals
		WHERE user_id = $1 AND is_completed = FALSE
		ORDER BY display_order ASC, assigned_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list active goals: %w", err)
	}
	defer rows.Close()
	return scanGoals(rows)
}

func (r *goalRepo) ListCompleted(ctx context.Context, db DBTX, userID int64) ([]domain.Goal, error) {
	rows, err := db.Query(ctx, `
		SELECT `+goalColumns+`
		FROM goals
		WHERE user_id = $1 AND is_completed = TRUE
		ORDER BY completed_at DESC NULLS LAST`, userID)
	if err != nil {
		return nil, fmt.Errorf("list completed goals: %w", err)
	}
	defer rows.Close()
	return scanGoals(rows)
}

func (r *goalRepo) FindByID(ctx context.Context, db DBTX, userID int64, goalID uuid.UUID) (*domain.Goal, error) {
	rows, err := db.Query(ctx, `
		SELECT `+goalColumns+`
		FROM goals WHERE id = $1 AND user_id = $2`, goalID, userID)
	if err != nil {
		return nil, fmt.Errorf("find goal: %w", err)
	}
	defer rows.Close()

	goals, err := scanGoals(rows)
	if err != nil {
		return nil, err
	}
	if len(goals) == 0 {
		return nil, nil
	}
	return &goals[0], nil
}

func (r *goalRepo) Create(ctx context.Context, db DBTX, g *domain.Goal) error {
	criteria, err := json.Marshal(g.Criteria)
	if err != nil {
		return fmt.Errorf("marshal criteria: %w", err)
	}

	_, err = db.Exec(ctx, `
		INSERT INTO goals (id, user_id, title, current_progress, target_progress,
			criteria, is_locked, is_paused, is_completed, display_order)
		VALUES ($1, $2, $3, 0, $4, $5, FALSE, FALSE, FALSE, $6)`,
		g.ID, g.UserID, g.Title, g.Target, criteria, g.DisplayOrder)
	if err != nil {
		return fmt.Errorf("insert goal: %w", err)
	}
	return nil
}

func (r *goalRepo) MaxDisplayOrder(ctx context.Context, db DBTX, userID int64) (int, error) {
	var maxOrder int
	err := db.QueryRow(ctx, `
		SELECT COALESCE(MAX(display_order), -1) FROM goals WHERE user_id = $1`,
		userID).Scan(&maxOrder)
	if err != nil {
		return 0, fmt.Errorf("max display order: %w", err)
	}
	return maxOrder, nil
}

func (r *goalRepo) ApplyProgress(ctx context.Context, db DBTX, userID int64, update domain.GoalProgressUpdate) error {
	_, err := db.Exec(ctx, `
		UPDATE goals
		SET current_progress = $3,
		    is_completed = $4,
		    completed_at = COALESCE(completed_at, $5)
		WHERE id = $1 AND user_id = $2`,
		update.GoalID, userID, update.Progress, update.Completed, update.CompletedAt)
	if err != nil {
		return fmt.Errorf("apply goal progress: %w", err)
	}
	return nil
}

func (r *goalRepo) SetLocked(ctx context.Context, db DBTX, userID int64, goalID uuid.UUID, locked bool) error {
	return r.setFlag(ctx, db, `UPDATE goals SET is_locked = $3 WHERE id = $1 AND user_id = $2`, userID, goalID, locked)
}

func (r *goalRepo) SetPaused(ctx context.Context, db DBTX, userID int64, goalID uuid.UUID, paused bool) error {
	return r.setFlag(ctx, db, `UPDATE goals SET is_paused = $3 WHERE id = $1 AND user_id = $2`, userID, goalID, paused)
}

func (r *goalRepo) setFlag(ctx context.Context, db DBTX, query string, userID int64, goalID uuid.UUID, value bool) error {
	tag, err := db.Exec(ctx, query, goalID, userID, value)
	if err != nil {
		return fmt.Errorf("update goal flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("goal", goalID.String())
	}
	return nil
}

func (r *goalRepo) Delete(ctx context.Context, db DBTX, userID int64, goalID uuid.UUID) error {
	tag, err := db.Exec(ctx, `DELETE FROM goals WHERE id = $1 AND user_id = $2`, goalID, userID)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("goal", goalID.String())
	}
	return nil
}

func (r *goalRepo) Reorder(ctx context.Context, db DBTX, userID int64, order []uuid.UUID) error {
	for idx, goalID := range order {
		_, err := db.Exec(ctx, `
			UPDATE goals SET display_order = $3 WHERE id = $1 AND user_id = $2`,
			goalID, userID, idx)
		if err != nil {
			return fmt.Errorf("reorder goal %s: %w", goalID, err)
		}
	}
	return nil
}

func (r *goalRepo) ResetProgress(ctx context.Context, db DBTX, userID int64) error {
	_, err := db.Exec(ctx, `
		UPDATE goals
		SET current_progress = 0, is_completed = FALSE, completed_at = NULL
		WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("reset goal progress: %w", err)
	}
	return nil
}

func scanGoals(rows pgx.Rows) ([]domain.Goal, error) {
	var goals []domain.Goal
	for rows.Next() {
		var g domain.Goal
		var criteria []byte
		err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.Progress, &g.Target,
			&criteria, &g.Locked, &g.Paused, &g.Completed, &g.DisplayOrder,
			&g.AssignedAt, &g.CompletedAt)
		if err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		if len(criteria) > 0 {
			if err := json.Unmarshal(criteria, &g.Criteria); err != nil {
				return nil, fmt.Errorf("unmarshal criteria for goal %s: %w", g.ID, err)
			}
		}
		g.Criteria = g.Criteria.Normalized()
		goals = append(goals, g)
	}
	return goals, rows.Err()
}
