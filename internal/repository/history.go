package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/scoreline/tracker/internal/domain"
)

type historyRepo struct{}

// NewHistoryRepository returns a pgx-backed HistoryRepository.
func NewHistoryRepository() HistoryRepository {
	return &historyRepo{}
}

func (r *historyRepo) ExistingScoreIDs(ctx context.Context, db DBTX, scoreIDs []int64) (map[int64]bool, error) {
	seen := make(map[int64]bool, len(scoreIDs))
	if len(scoreIDs) == 0 {
		return seen, nil
	}

	rows, err := db.Query(ctx, `
		SELECT osu_score_id FROM score_history WHERE osu_score_id = ANY($1)`, scoreIDs)
	if err != nil {
		return nil, fmt.Errorf("query existing score ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan score id: %w", err)
		}
		seen[id] = true
	}
	return seen, rows.Err()
}

// Insert relies on the unique index on osu_score_id: a concurrent duplicate
// insert degrades to a detectable no-op rather than an error.
func (r *historyRepo) Insert(ctx context.Context, db DBTX, rec *domain.PlayRecord) (bool, error) {
	tag, err := db.Exec(ctx, `
		INSERT INTO score_history (id, user_id, osu_score_id, beatmap_id, beatmap_name,
			mod_group, mod_combination, stars, effective_stars, accuracy,
			map_length, max_combo, is_perfect, is_fc, played_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (osu_score_id) DO NOTHING`,
		rec.ID, rec.UserID, rec.ScoreID, rec.BeatmapID, rec.Title,
		string(rec.ModGroup), rec.ModCombination, rec.Stars, rec.EffectiveStars,
		rec.Accuracy, rec.MapLength, rec.MaxCombo, rec.IsPerfect, rec.IsFullCombo,
		rec.PlayedAt)
	if err != nil {
		return false, fmt.Errorf("insert history row: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *historyRepo) InsertContribution(ctx context.Context, db DBTX, c domain.Contribution) error {
	_, err := db.Exec(ctx, `
		INSERT INTO goal_contributions (id, goal_id, score_history_id, user_id)
		VALUES ($1, $2, $3, $4)`,
		c.ID, c.GoalID, c.PlayID, c.UserID)
	if err != nil {
		return fmt.Errorf("insert contribution: %w", err)
	}
	return nil
}

func (r *historyRepo) RecentFeed(ctx context.Context, db DBTX, userID int64, limit int) ([]domain.FeedItem, error) {
	rows, err := db.Query(ctx, `
		SELECT beatmap_name, mod_group, mod_combination, stars, is_perfect, is_fc, played_at
		FROM score_history
		WHERE user_id = $1
		ORDER BY played_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent feed: %w", err)
	}
	defer rows.Close()

	var feed []domain.FeedItem
	for rows.Next() {
		var item domain.FeedItem
		var group string
		err := rows.Scan(&item.Title, &group, &item.ModCombination, &item.Stars,
			&item.IsPerfect, &item.IsFullCombo, &item.PlayedAt)
		if err != nil {
			return nil, fmt.Errorf("scan feed item: %w", err)
		}
		item.ModGroup = domain.ModCategory(group)
		if item.ModCombination == "" {
			item.ModCombination = string(domain.CategoryNoMod)
		}
		feed = append(feed, item)
	}
	return feed, rows.Err()
}

func (r *historyRepo) PerfectHistogram(ctx context.Context, db DBTX, userID int64) (map[int]int, error) {
	rows, err := db.Query(ctx, `
		SELECT FLOOR(stars)::int AS star_bucket, COUNT(*)
		FROM score_history
		WHERE user_id = $1 AND is_perfect = TRUE
		GROUP BY star_bucket
		ORDER BY star_bucket`, userID)
	if err != nil {
		return nil, fmt.Errorf("query fc histogram: %w", err)
	}
	defer rows.Close()

	hist := make(map[int]int)
	for rows.Next() {
		var bucket, count int
		if err := rows.Scan(&bucket, &count); err != nil {
			return nil, fmt.Errorf("scan histogram row: %w", err)
		}
		hist[bucket] = count
	}
	return hist, rows.Err()
}

func (r *historyRepo) ListByGoal(ctx context.Context, db DBTX, userID int64, goalID uuid.UUID) ([]domain.FeedItem, error) {
	rows, err := db.Query(ctx, `
		SELECT sh.beatmap_name, sh.mod_group, sh.mod_combination, sh.stars,
		       sh.is_perfect, sh.is_fc, sh.played_at
		FROM goal_contributions gc
		JOIN score_history sh ON sh.id = gc.score_history_id
		WHERE gc.goal_id = $1 AND gc.user_id = $2
		ORDER BY sh.played_at DESC`, goalID, userID)
	if err != nil {
		return nil, fmt.Errorf("query goal contributions: %w", err)
	}
	defer rows.Close()

	var items []domain.FeedItem
	for rows.Next() {
		var item domain.FeedItem
		var group string
		err := rows.Scan(&item.Title, &group, &item.ModCombination, &item.Stars,
			&item.IsPerfect, &item.IsFullCombo, &item.PlayedAt)
		if err != nil {
			return nil, fmt.Errorf("scan contribution item: %w", err)
		}
		item.ModGroup = domain.ModCategory(group)
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *historyRepo) ExportRows(ctx context.Context, db DBTX, userID int64) ([]domain.PlayRecord, error) {
	rows, err := db.Query(ctx, `
		SELECT id, user_id, osu_score_id, beatmap_id, beatmap_name,
		       mod_group, mod_combination, stars, effective_stars, accuracy,
		       map_length, max_combo, is_perfect, is_fc, played_at
		FROM score_history
		WHERE user_id = $1
		ORDER BY played_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query export rows: %w", err)
	}
	defer rows.Close()

	var recs []domain.PlayRecord
	for rows.Next() {
		var rec domain.PlayRecord
		var group string
		err := rows.Scan(&rec.ID, &rec.UserID, &rec.ScoreID, &rec.BeatmapID, &rec.Title,
			&group, &rec.ModCombination, &rec.Stars, &rec.EffectiveStars, &rec.Accuracy,
			&rec.MapLength, &rec.MaxCombo, &rec.IsPerfect, &rec.IsFullCombo, &rec.PlayedAt)
		if err != nil {
			return nil, fmt.Errorf("scan export row: %w", err)
		}
		rec.ModGroup = domain.ModCategory(group)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (r *historyRepo) DeleteByUser(ctx context.Context, db DBTX, userID int64) error {
	_, err := db.Exec(ctx, `DELETE FROM score_history WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete history: %w", err)
	}
	return nil
}
