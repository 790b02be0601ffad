package service

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scoreline/tracker/internal/auth"
	"github.com/scoreline/tracker/internal/domain"
	"github.com/scoreline/tracker/internal/provider"
	"github.com/scoreline/tracker/internal/repository"
)

// AuthService handles OAuth sign-in against the scores API.
type AuthService struct {
	pool    *pgxpool.Pool
	osu     *provider.OsuClient
	players repository.PlayerRepository
	ratings repository.RatingRepository
	jwtMgr  *auth.JWTManager
	logger  *slog.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(pool *pgxpool.Pool, osu *provider.OsuClient, jwtMgr *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		pool:    pool,
		osu:     osu,
		players: repository.NewPlayerRepository(),
		ratings: repository.NewRatingRepository(),
		jwtMgr:  jwtMgr,
		logger:  logger,
	}
}

// AuthResult is returned on a successful OAuth callback.
type AuthResult struct {
	Token    string `json:"token"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// LoginURL returns the OAuth authorize redirect target.
func (s *AuthService) LoginURL() string {
	return s.osu.AuthorizeURL()
}

// HandleCallback exchanges the OAuth code, upserts the player and stored
// credential, seeds the rating row, and mints a session token.
func (s *AuthService) HandleCallback(ctx context.Context, code string) (*AuthResult, error) {
	if code == "" {
		return nil, domain.ErrValidation("missing authorization code")
	}

	token, err := s.osu.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	player, err := s.osu.CurrentUser(ctx, token.AccessToken)
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if err := s.players.Upsert(ctx, tx, player); err != nil {
		return nil, domain.ErrInternal("upsert player", err)
	}
	if err := s.ratings.Ensure(ctx, tx, player.UserID); err != nil {
		return nil, domain.ErrInternal("ensure rating row", err)
	}
	err = s.players.SaveCredential(ctx, tx, domain.Credential{
		UserID:      player.UserID,
		AccessToken: token.AccessToken,
		ExpiresAt:   token.ExpiresAt,
	})
	if err != nil {
		return nil, domain.ErrInternal("save credential", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	session, err := s.jwtMgr.GenerateToken(player.UserID, player.Username)
	if err != nil {
		return nil, domain.ErrInternal("sign token", err)
	}

	s.logger.Info("player signed in", "user_id", player.UserID, "username", player.Username)

	return &AuthResult{
		Token:    session,
		UserID:   player.UserID,
		Username: player.Username,
	}, nil
}
