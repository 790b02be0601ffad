package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/scoreline/tracker/internal/domain"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// PlayerRepository provides access to players and their stored credentials.
type PlayerRepository interface {
	// FindByID returns a player, or nil when absent.
	FindByID(ctx context.Context, db DBTX, userID int64) (*domain.Player, error)

	// Upsert inserts or refreshes a player row.
	Upsert(ctx context.Context, db DBTX, p *domain.Player) error

	// SaveCredential stores the player's API token.
	SaveCredential(ctx context.Context, db DBTX, cred domain.Credential) error

	// FindCredential returns the stored token, or nil when absent.
	FindCredential(ctx context.Context, db DBTX, userID int64) (*domain.Credential, error)

	// Delete removes a player and, by cascade, all owned rows.
	Delete(ctx context.Context, db DBTX, userID int64) error
}

// GoalRepository provides access to goals.
type GoalRepository interface {
	// ListActive returns non-completed goals ordered by display order then
	// assignment time. Null progress reads as 0.
	ListActive(ctx context.Context, db DBTX, userID int64) ([]domain.Goal, error)

	// ListCompleted returns completed goals, most recently completed first.
	ListCompleted(ctx context.Context, db DBTX, userID int64) ([]domain.Goal, error)

	// FindByID returns one goal scoped to the user, or nil.
	FindByID(ctx context.Context, db DBTX, userID int64, goalID uuid.UUID) (*domain.Goal, error)

	// Create inserts a new goal.
	Create(ctx context.Context, db DBTX, g *domain.Goal) error

	// MaxDisplayOrder returns the highest display order for the user, or -1.
	MaxDisplayOrder(ctx context.Context, db DBTX, userID int64) (int, error)

	// ApplyProgress persists one reconcile progress delta.
	ApplyProgress(ctx context.Context, db DBTX, userID int64, update domain.GoalProgressUpdate) error

	// SetLocked and SetPaused flip lifecycle flags.
	SetLocked(ctx context.Context, db DBTX, userID int64, goalID uuid.UUID, locked bool) error
	SetPaused(ctx context.Context, db DBTX, userID int64, goalID uuid.UUID, paused bool) error

	// Delete removes a goal and cascades its contributions.
	Delete(ctx context.Context, db DBTX, userID int64, goalID uuid.UUID) error

	// Reorder rewrites display order to match the given id sequence.
	Reorder(ctx context.Context, db DBTX, userID int64, order []uuid.UUID) error

	// ResetProgress zeroes progress and completion on all goals (history
	// reset).
	ResetProgress(ctx context.Context, db DBTX, userID int64) error
}

// HistoryRepository provides access to the score history and contributions.
type HistoryRepository interface {
	// ExistingScoreIDs returns which of the given external score ids are
	// already recorded.
	ExistingScoreIDs(ctx context.Context, db DBTX, scoreIDs []int64) (map[int64]bool, error)

	// Insert appends one history row. A duplicate external score id is a
	// detectable no-op (inserted=false), not an error.
	Insert(ctx context.Context, db DBTX, rec *domain.PlayRecord) (inserted bool, err error)

	// InsertContribution appends one play→goal link.
	InsertContribution(ctx context.Context, db DBTX, c domain.Contribution) error

	// RecentFeed returns the newest history rows as feed items.
	RecentFeed(ctx context.Context, db DBTX, userID int64, limit int) ([]domain.FeedItem, error)

	// PerfectHistogram counts strict perfect combos by integer star rating.
	PerfectHistogram(ctx context.Context, db DBTX, userID int64) (map[int]int, error)

	// ListByGoal returns the plays that contributed to a goal, newest first.
	ListByGoal(ctx context.Context, db DBTX, userID int64, goalID uuid.UUID) ([]domain.FeedItem, error)

	// ExportRows returns the full history for CSV export, newest first.
	ExportRows(ctx context.Context, db DBTX, userID int64) ([]domain.PlayRecord, error)

	// DeleteByUser wipes the user's history (cascades contributions).
	DeleteByUser(ctx context.Context, db DBTX, userID int64) error
}

// RatingRepository provides access to the per-category rating vector.
type RatingRepository interface {
	// Ensure creates the zeroed rating row if absent.
	Ensure(ctx context.Context, db DBTX, userID int64) error

	// Get returns the rating vector (zero vector when the row is absent).
	Get(ctx context.Context, db DBTX, userID int64) (domain.RatingVector, error)

	// Save writes the full vector through typed columns.
	Save(ctx context.Context, db DBTX, userID int64, v domain.RatingVector) error

	// Reset zeroes every bucket.
	Reset(ctx context.Context, db DBTX, userID int64) error
}

// OutboxRepository provides access to the event_outbox table.
type OutboxRepository interface {
	// Insert writes an outbox event within the caller's transaction.
	Insert(ctx context.Context, db DBTX, draft domain.OutboxDraft) error

	// FetchUnpublished returns unpublished events, oldest first.
	FetchUnpublished(ctx context.Context, db DBTX, limit int) ([]domain.OutboxDraft, error)

	// MarkPublished stamps events as published.
	MarkPublished(ctx context.Context, db DBTX, ids []int64) error
}
