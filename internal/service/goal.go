package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scoreline/tracker/internal/domain"
	"github.com/scoreline/tracker/internal/repository"
)

// GoalService handles goal lifecycle: creation, lock/pause flags, ordering
// and deletion.
type GoalService struct {
	pool    *pgxpool.Pool
	goals   repository.GoalRepository
	history repository.HistoryRepository
	logger  *slog.Logger
}

// NewGoalService creates a GoalService.
func NewGoalService(pool *pgxpool.Pool, logger *slog.Logger) *GoalService {
	return &GoalService{
		pool:    pool,
		goals:   repository.NewGoalRepository(),
		history: repository.NewHistoryRepository(),
		logger:  logger,
	}
}

// CreateGoalInput holds the goal creation request.
type CreateGoalInput struct {
	Title    string              `json:"title"`
	Target   int                 `json:"target"`
	Criteria domain.GoalCriteria `json:"criteria"`
}

// CreateGoal validates and inserts a new goal at the end of the display
// order. An empty title is derived from the criteria.
func (s *GoalService) CreateGoal(ctx context.Context, userID int64, input CreateGoalInput) (*domain.Goal, error) {
	if input.Target <= 0 {
		return nil, domain.ErrValidation("target must be positive")
	}
	criteria := input.Criteria.Normalized()

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = deriveTitle(criteria)
	}

	maxOrder, err := s.goals.MaxDisplayOrder(ctx, s.pool, userID)
	if err != nil {
		return nil, domain.ErrInternal("max display order", err)
	}

	goal := &domain.Goal{
		ID:           uuid.New(),
		UserID:       userID,
		Title:        title,
		Target:       input.Target,
		Criteria:     criteria,
		DisplayOrder: maxOrder + 1,
		AssignedAt:   time.Now(),
	}
	if err := s.goals.Create(ctx, s.pool, goal); err != nil {
		return nil, domain.ErrInternal("create goal", err)
	}

	s.logger.Info("goal created", "user_id", userID, "goal_id", goal.ID, "title", goal.Title)
	return goal, nil
}

// CreateFromPreset instantiates one of the built-in goal templates.
func (s *GoalService) CreateFromPreset(ctx context.Context, userID int64, presetKey string) (*domain.Goal, error) {
	preset := domain.PresetByKey(presetKey)
	if preset == nil {
		return nil, domain.ErrNotFound("preset", presetKey)
	}
	return s.CreateGoal(ctx, userID, CreateGoalInput{
		Title:    preset.Title,
		Target:   preset.Target,
		Criteria: preset.Criteria,
	})
}

// deriveTitle builds a display title from the criteria when the user did not
// supply one.
func deriveTitle(c domain.GoalCriteria) string {
	if c.BeatmapName != "" {
		return fmt.Sprintf("%s %s", strings.ToUpper(string(c.Type)), c.BeatmapName)
	}
	label := strings.ToUpper(string(c.Type))
	if c.MinStars > 0 {
		return fmt.Sprintf("%.1f★+ %s", c.MinStars, label)
	}
	if c.Mod != domain.AnyMod {
		return fmt.Sprintf("%s %s", c.Mod, label)
	}
	return label
}

// SetLocked flips a goal's lock flag. Locked goals still accumulate progress
// but cannot be deleted.
func (s *GoalService) SetLocked(ctx context.Context, userID int64, goalID uuid.UUID, locked bool) error {
	return s.goals.SetLocked(ctx, s.pool, userID, goalID, locked)
}

// SetPaused flips a goal's pause flag. Paused goals are skipped by the
// reconcile matcher entirely, streak resets included.
func (s *GoalService) SetPaused(ctx context.Context, userID int64, goalID uuid.UUID, paused bool) error {
	return s.goals.SetPaused(ctx, s.pool, userID, goalID, paused)
}

// DeleteGoal removes an unlocked goal. Contributions cascade away with it.
func (s *GoalService) DeleteGoal(ctx context.Context, userID int64, goalID uuid.UUID) error {
	goal, err := s.goals.FindByID(ctx, s.pool, userID, goalID)
	if err != nil {
		return domain.ErrInternal("find goal", err)
	}
	if goal == nil {
		return domain.ErrNotFound("goal", goalID.String())
	}
	if goal.Locked {
		return domain.ErrConflict("goal is locked; unlock it before deleting")
	}
	return s.goals.Delete(ctx, s.pool, userID, goalID)
}

// Reorder rewrites the display order to match the given id sequence.
func (s *GoalService) Reorder(ctx context.Context, userID int64, order []uuid.UUID) error {
	if len(order) == 0 {
		return domain.ErrValidation("order must not be empty")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if err := s.goals.Reorder(ctx, tx, userID, order); err != nil {
		return domain.ErrInternal("reorder goals", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.ErrInternal("commit tx", err)
	}
	return nil
}

// GoalList groups a player's goals by completion state.
type GoalList struct {
	Active    []domain.Goal `json:"active"`
	Completed []domain.Goal `json:"completed"`
}

// ListGoals returns the player's goals, active ones in display order.
func (s *GoalService) ListGoals(ctx context.Context, userID int64) (*GoalList, error) {
	active, err := s.goals.ListActive(ctx, s.pool, userID)
	if err != nil {
		return nil, domain.ErrInternal("list active goals", err)
	}
	completed, err := s.goals.ListCompleted(ctx, s.pool, userID)
	if err != nil {
		return nil, domain.ErrInternal("list completed goals", err)
	}
	return &GoalList{Active: active, Completed: completed}, nil
}

// ListContributions returns the plays that counted toward a goal.
func (s *GoalService) ListContributions(ctx context.Context, userID int64, goalID uuid.UUID) ([]domain.FeedItem, error) {
	goal, err := s.goals.FindByID(ctx, s.pool, userID, goalID)
	if err != nil {
		return nil, domain.ErrInternal("find goal", err)
	}
	if goal == nil {
		return nil, domain.ErrNotFound("goal", goalID.String())
	}
	items, err := s.history.ListByGoal(ctx, s.pool, userID, goalID)
	if err != nil {
		return nil, domain.ErrInternal("list contributions", err)
	}
	return items, nil
}

// ListPresets returns the built-in goal templates.
func (s *GoalService) ListPresets() []domain.GoalPreset {
	return domain.GoalPresets
}
