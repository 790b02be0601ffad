package service

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scoreline/tracker/internal/domain"
	"github.com/scoreline/tracker/internal/engine"
	"github.com/scoreline/tracker/internal/provider"
	"github.com/scoreline/tracker/internal/repository"
)

// ScoreSource fetches recent plays from the external scores API.
type ScoreSource interface {
	RecentScores(ctx context.Context, accessToken string, userID int64, limit int) ([]domain.PlayedScore, error)
}

// TrackerService runs the score reconciliation flow: fetch recent plays,
// classify them, fold them into goals and ratings, and persist everything in
// one transaction.
type TrackerService struct {
	pool       *pgxpool.Pool
	source     ScoreSource
	players    repository.PlayerRepository
	goals      repository.GoalRepository
	history    repository.HistoryRepository
	ratings    repository.RatingRepository
	outbox     repository.OutboxRepository
	classifier engine.ClassifierConfig
	fetchLimit int
	logger     *slog.Logger
}

// NewTrackerService creates a TrackerService.
func NewTrackerService(pool *pgxpool.Pool, source ScoreSource, classifier engine.ClassifierConfig, fetchLimit int, logger *slog.Logger) *TrackerService {
	return &TrackerService{
		pool:       pool,
		source:     source,
		players:    repository.NewPlayerRepository(),
		goals:      repository.NewGoalRepository(),
		history:    repository.NewHistoryRepository(),
		ratings:    repository.NewRatingRepository(),
		outbox:     repository.NewOutboxRepository(),
		classifier: classifier,
		fetchLimit: fetchLimit,
		logger:     logger,
	}
}

// CheckResult is the reconcile endpoint payload.
type CheckResult struct {
	Status         string                `json:"status"`
	Updated        bool                  `json:"updated"`
	Feed           []domain.FeedItem     `json:"feed"`
	PersistentFeed []domain.FeedItem     `json:"persistent_feed"`
	Stats          domain.RatingVector   `json:"stats"`
	Goals          []domain.GoalSnapshot `json:"goals"`
	FCCounts       map[int]int           `json:"fc_counts"`
}

// CheckScores fetches the player's recent plays and reconciles them against
// goal and rating state. Concurrent checks for the same player serialize on a
// per-player advisory lock; the unique score id index makes the loser's
// inserts detectable no-ops.
func (s *TrackerService) CheckScores(ctx context.Context, userID int64) (*CheckResult, error) {
	cred, err := s.players.FindCredential(ctx, s.pool, userID)
	if err != nil {
		return nil, domain.ErrInternal("load credential", err)
	}
	if cred == nil || cred.Expired(time.Now()) {
		return nil, domain.ErrInvalidCredential("session with the scores API has expired")
	}

	plays, err := s.source.RecentScores(ctx, cred.AccessToken, userID, s.fetchLimit)
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	// Serialize reconciles per player for the duration of the transaction.
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, userID); err != nil {
		return nil, domain.ErrInternal("advisory lock", err)
	}

	scoreIDs := make([]int64, 0, len(plays))
	for _, p := range plays {
		if p.ScoreID != 0 {
			scoreIDs = append(scoreIDs, p.ScoreID)
		}
	}
	seen, err := s.history.ExistingScoreIDs(ctx, tx, scoreIDs)
	if err != nil {
		return nil, domain.ErrInternal("load seen ids", err)
	}

	active, err := s.goals.ListActive(ctx, tx, userID)
	if err != nil {
		return nil, domain.ErrInternal("load goals", err)
	}

	vector, err := s.ratings.Get(ctx, tx, userID)
	if err != nil {
		return nil, domain.ErrInternal("load ratings", err)
	}

	res := engine.Reconcile(s.classifier, engine.Batch{
		Plays:   plays,
		Goals:   active,
		Ratings: vector,
		Seen:    seen,
	}, time.Now())

	inserted := make(map[uuid.UUID]bool, len(res.Records))
	for _, rec := range res.Records {
		ok, err := s.history.Insert(ctx, tx, &rec)
		if err != nil {
			return nil, domain.ErrInternal("insert play", err)
		}
		if !ok {
			// A concurrent reconcile got there first; its transaction owns
			// the goal and rating deltas for this play.
			s.logger.Warn("play already recorded, skipping", "score_id", rec.ScoreID, "user_id", userID)
			continue
		}
		inserted[rec.ID] = true
		if err := s.outbox.Insert(ctx, tx, domain.NewPlayProcessedEvent(rec)); err != nil {
			return nil, domain.ErrInternal("stage play event", err)
		}
	}

	for _, c := range res.Contributions {
		if !inserted[c.PlayID] {
			continue
		}
		err := s.history.InsertContribution(ctx, tx, domain.Contribution{
			ID:     uuid.New(),
			GoalID: c.GoalID,
			PlayID: c.PlayID,
			UserID: userID,
		})
		if err != nil {
			return nil, domain.ErrInternal("insert contribution", err)
		}
	}

	completed := make(map[uuid.UUID]bool, len(res.NewlyCompleted))
	for _, id := range res.NewlyCompleted {
		completed[id] = true
	}
	for _, update := range res.GoalUpdates {
		if err := s.goals.ApplyProgress(ctx, tx, userID, update); err != nil {
			return nil, domain.ErrInternal("apply goal progress", err)
		}
		if completed[update.GoalID] {
			if err := s.outbox.Insert(ctx, tx, domain.NewGoalCompletedEvent(userID, update)); err != nil {
				return nil, domain.ErrInternal("stage goal event", err)
			}
		}
	}

	if err := s.ratings.Save(ctx, tx, userID, res.Ratings); err != nil {
		return nil, domain.ErrInternal("save ratings", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	if res.Updated {
		s.logger.Info("reconcile applied",
			"user_id", userID,
			"new_plays", len(res.Records),
			"goal_updates", len(res.GoalUpdates),
			"completed", len(res.NewlyCompleted))
	}

	return s.buildCheckResult(ctx, userID, res)
}

func (s *TrackerService) buildCheckResult(ctx context.Context, userID int64, res engine.Result) (*CheckResult, error) {
	persistent, err := s.history.RecentFeed(ctx, s.pool, userID, 100)
	if err != nil {
		return nil, domain.ErrInternal("load persistent feed", err)
	}

	hist, err := s.history.PerfectHistogram(ctx, s.pool, userID)
	if err != nil {
		return nil, domain.ErrInternal("load fc histogram", err)
	}

	status := "no_new_scores"
	if res.Updated {
		status = "updated"
	}

	return &CheckResult{
		Status:         status,
		Updated:        res.Updated,
		Feed:           res.Feed,
		PersistentFeed: persistent,
		Stats:          res.Ratings,
		Goals:          res.Snapshots,
		FCCounts:       hist,
	}, nil
}

// Dashboard aggregates everything the main page renders.
type Dashboard struct {
	Player    *domain.Player      `json:"player"`
	Stats     domain.RatingVector `json:"stats"`
	Active    []domain.Goal       `json:"active_goals"`
	Completed []domain.Goal       `json:"completed_goals"`
	Feed      []domain.FeedItem   `json:"persistent_feed"`
	FCCounts  map[int]int         `json:"fc_counts"`
}

// GetDashboard loads the player's full tracked state.
func (s *TrackerService) GetDashboard(ctx context.Context, userID int64) (*Dashboard, error) {
	player, err := s.players.FindByID(ctx, s.pool, userID)
	if err != nil {
		return nil, domain.ErrInternal("load player", err)
	}
	if player == nil {
		return nil, domain.ErrNotFound("player", strconv.FormatInt(userID, 10))
	}

	vector, err := s.ratings.Get(ctx, s.pool, userID)
	if err != nil {
		return nil, domain.ErrInternal("load ratings", err)
	}

	active, err := s.goals.ListActive(ctx, s.pool, userID)
	if err != nil {
		return nil, domain.ErrInternal("load active goals", err)
	}

	done, err := s.goals.ListCompleted(ctx, s.pool, userID)
	if err != nil {
		return nil, domain.ErrInternal("load completed goals", err)
	}

	feed, err := s.history.RecentFeed(ctx, s.pool, userID, 100)
	if err != nil {
		return nil, domain.ErrInternal("load feed", err)
	}

	hist, err := s.history.PerfectHistogram(ctx, s.pool, userID)
	if err != nil {
		return nil, domain.ErrInternal("load fc histogram", err)
	}

	return &Dashboard{
		Player:    player,
		Stats:     vector,
		Active:    active,
		Completed: done,
		Feed:      feed,
		FCCounts:  hist,
	}, nil
}

// ExportHistory returns the full score history for CSV export, newest first.
func (s *TrackerService) ExportHistory(ctx context.Context, userID int64) ([]domain.PlayRecord, error) {
	recs, err := s.history.ExportRows(ctx, s.pool, userID)
	if err != nil {
		return nil, domain.ErrInternal("export history", err)
	}
	return recs, nil
}

// ResetHistory wipes the player's score history and zeroes goal progress and
// ratings. Goals themselves survive.
func (s *TrackerService) ResetHistory(ctx context.Context, userID int64) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, userID); err != nil {
		return domain.ErrInternal("advisory lock", err)
	}
	if err := s.history.DeleteByUser(ctx, tx, userID); err != nil {
		return err
	}
	if err := s.goals.ResetProgress(ctx, tx, userID); err != nil {
		return err
	}
	if err := s.ratings.Reset(ctx, tx, userID); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.ErrInternal("commit tx", err)
	}

	s.logger.Info("history reset", "user_id", userID)
	return nil
}

// DeleteAccount removes the player and, by cascade, every owned row.
func (s *TrackerService) DeleteAccount(ctx context.Context, userID int64) error {
	if err := s.players.Delete(ctx, s.pool, userID); err != nil {
		return domain.ErrInternal("delete player", err)
	}
	s.logger.Info("account deleted", "user_id", userID)
	return nil
}

var _ ScoreSource = (*provider.OsuClient)(nil)
