package provider

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoreline/tracker/internal/domain"
)

func testClient(srvURL string) *OsuClient {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return NewOsuClient("client", "secret", "http://localhost/callback", logger).WithBaseURL(srvURL)
}

const recentScoresBody = `[
	{
		"id": 9001,
		"accuracy": 0.987,
		"max_combo": 1130,
		"mods": ["HD", "DT"],
		"rank": "S",
		"passed": true,
		"created_at": "2026-03-14T15:09:26Z",
		"statistics": {"count_miss": 0},
		"beatmap": {"id": 42, "difficulty_rating": 6.12, "max_combo": 1159, "total_length": 212},
		"beatmapset": {"title": "Test Song"}
	},
	{
		"id": 0,
		"accuracy": 0.5,
		"beatmap": {"id": 1}
	}
]`

func TestRecentScores_MapsFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Contains(t, r.URL.Path, "/api/v2/users/7/scores/recent")
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		w.Write([]byte(recentScoresBody))
	}))
	defer srv.Close()

	plays, err := testClient(srv.URL).RecentScores(context.Background(), "tok", 7, 20)
	require.NoError(t, err)

	// The malformed second record (no score id) is skipped, not fatal.
	require.Len(t, plays, 1)
	p := plays[0]
	assert.Equal(t, int64(9001), p.ScoreID)
	assert.Equal(t, int64(7), p.UserID)
	assert.Equal(t, int64(42), p.BeatmapID)
	assert.Equal(t, "Test Song", p.Title)
	assert.InDelta(t, 6.12, p.Stars, 1e-9)
	assert.Equal(t, 1130, p.MaxCombo)
	assert.Equal(t, 1159, p.MapMaxCombo)
	assert.Equal(t, 212, p.MapLength)
	assert.Equal(t, []string{"HD", "DT"}, p.Mods)
	assert.Equal(t, 0, p.MissCount)
	assert.True(t, p.Passed)
}

func TestRecentScores_UnauthorizedIsInvalidCredential(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).RecentScores(context.Background(), "expired", 7, 20)
	require.Error(t, err)
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_CREDENTIAL", appErr.Code)
}

func TestRecentScores_ServerErrorIsSourceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).RecentScores(context.Background(), "tok", 7, 20)
	require.Error(t, err)
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "SOURCE_UNAVAILABLE", appErr.Code)
}

func TestExchangeCode_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.Form.Get("grant_type"))
		assert.Equal(t, "abc", r.Form.Get("code"))
		w.Write([]byte(`{"access_token": "tok", "expires_in": 86400, "token_type": "Bearer"}`))
	}))
	defer srv.Close()

	tok, err := testClient(srv.URL).ExchangeCode(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "tok", tok.AccessToken)
	assert.False(t, tok.ExpiresAt.IsZero())
}

func TestExchangeCode_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).ExchangeCode(context.Background(), "bad")
	require.Error(t, err)
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_CREDENTIAL", appErr.Code)
}

func TestCurrentUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/me/osu", r.URL.Path)
		w.Write([]byte(`{"id": 7, "username": "cookiezi", "statistics": {"global_rank": 1}}`))
	}))
	defer srv.Close()

	u, err := testClient(srv.URL).CurrentUser(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, int64(7), u.UserID)
	assert.Equal(t, "cookiezi", u.Username)
	assert.Equal(t, 1, u.GlobalRank)
}
