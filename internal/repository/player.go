package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/scoreline/tracker/internal/domain"
)

type playerRepo struct{}

// NewPlayerRepository returns a pgx-backed PlayerRepository.
func NewPlayerRepository() PlayerRepository {
	return &playerRepo{}
}

func (r *playerRepo) FindByID(ctx context.Context, db DBTX, userID int64) (*domain.Player, error) {
	row := db.QueryRow(ctx, `
		SELECT user_id, username, global_rank, created_at, updated_at
		FROM players WHERE user_id = $1`, userID)

	var p domain.Player
	err := row.Scan(&p.UserID, &p.Username, &p.GlobalRank, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan player: %w", err)
	}
	return &p, nil
}

func (r *playerRepo) Upsert(ctx context.Context, db DBTX, p *domain.Player) error {
	_, err := db.Exec(ctx, `
		INSERT INTO players (user_id, username, global_rank)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id)
		DO UPDATE SET username = EXCLUDED.username,
		              global_rank = EXCLUDED.global_rank,
		              updated_at = now()`,
		p.UserID, p.Username, p.GlobalRank)
	if err != nil {
		return fmt.Errorf("upsert player: %w", err)
	}
	return nil
}

func (r *playerRepo) SaveCredential(ctx context.Context, db DBTX, cred domain.Credential) error {
	_, err := db.Exec(ctx, `
		INSERT INTO player_credentials (user_id, access_token, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id)
		DO UPDATE SET access_token = EXCLUDED.access_token,
		              expires_at = EXCLUDED.expires_at,
		              updated_at = now()`,
		cred.UserID, cred.AccessToken, cred.ExpiresAt)
	if err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

func (r *playerRepo) FindCredential(ctx context.Context, db DBTX, userID int64) (*domain.Credential, error) {
	row := db.QueryRow(ctx, `
		SELECT user_id, access_token, expires_at
		FROM player_credentials WHERE user_id = $1`, userID)

	var c domain.Credential
	err := row.Scan(&c.UserID, &c.AccessToken, &c.ExpiresAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan credential: %w", err)
	}
	return &c, nil
}

func (r *playerRepo) Delete(ctx context.Context, db DBTX, userID int64) error {
	_, err := db.Exec(ctx, `DELETE FROM players WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	return nil
}
