package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/scoreline/tracker/internal/domain"
)

type ratingRepo struct{}

// NewRatingRepository returns a pgx-backed RatingRepository.
func NewRatingRepository() RatingRepository {
	return &ratingRepo{}
}

func (r *ratingRepo) Ensure(ctx context.Context, db DBTX, userID int64) error {
	_, err := db.Exec(ctx, `
		INSERT INTO mod_ratings (user_id, nm_rating, hd_rating, hr_rating, dt_rating, fl_rating)
		VALUES ($1, 0, 0, 0, 0, 0)
		ON CONFLICT (user_id) DO NOTHING`, userID)
	if err != nil {
		return fmt.Errorf("ensure rating row: %w", err)
	}
	return nil
}

func (r *ratingRepo) Get(ctx context.Context, db DBTX, userID int64) (domain.RatingVector, error) {
	row := db.QueryRow(ctx, `
		SELECT nm_rating, hd_rating, hr_rating, dt_rating, fl_rating
		FROM mod_ratings WHERE user_id = $1`, userID)

	var v domain.RatingVector
	err := row.Scan(&v.NoMod, &v.Hidden, &v.HardRock, &v.DoubleTime, &v.Flashlight)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.RatingVector{}, nil
		}
		return domain.RatingVector{}, fmt.Errorf("scan rating vector: %w", err)
	}
	return v, nil
}

func (r *ratingRepo) Save(ctx context.Context, db DBTX, userID int64, v domain.RatingVector) error {
	_, err := db.Exec(ctx, `
		INSERT INTO mod_ratings (user_id, nm_rating, hd_rating, hr_rating, dt_rating, fl_rating)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id)
		DO UPDATE SET nm_rating = EXCLUDED.nm_rating,
		              hd_rating = EXCLUDED.hd_rating,
		              hr_rating = EXCLUDED.hr_rating,
		              dt_rating = EXCLUDED.dt_rating,
		              fl_rating = EXCLUDED.fl_rating,
		              updated_at = now()`,
		userID, v.NoMod, v.Hidden, v.HardRock, v.DoubleTime, v.Flashlight)
	if err != nil {
		return fmt.Errorf("save rating vector: %w", err)
	}
	return nil
}

func (r *ratingRepo) Reset(ctx context.Context, db DBTX, userID int64) error {
	_, err := db.Exec(ctx, `
		UPDATE mod_ratings
		SET nm_rating = 0, hd_rating = 0, hr_rating = 0, dt_rating = 0, fl_rating = 0,
		    updated_at = now()
		WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("reset rating vector: %w", err)
	}
	return nil
}
