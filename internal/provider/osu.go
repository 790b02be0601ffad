package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/scoreline/tracker/internal/domain"
)

// osu! API v2 wire types.

type osuToken struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"` // seconds
	TokenType    string `json:"token_type"`
}

type osuUser struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Statistics struct {
		GlobalRank int `json:"global_rank"`
	} `json:"statistics"`
}

type osuScore struct {
	ID         int64    `json:"id"`
	Accuracy   float64  `json:"accuracy"`
	MaxCombo   int      `json:"max_combo"`
	Mods       []string `json:"mods"`
	Rank       string   `json:"rank"`
	Passed     bool     `json:"passed"`
	CreatedAt  string   `json:"created_at"`
	Statistics struct {
		CountMiss int `json:"count_miss"`
	} `json:"statistics"`
	Beatmap struct {
		ID               int64   `json:"id"`
		DifficultyRating float64 `json:"difficulty_rating"`
		MaxCombo         int     `json:"max_combo"`
		TotalLength      int     `json:"total_length"`
	} `json:"beatmap"`
	Beatmapset struct {
		Title string `json:"title"`
	} `json:"beatmapset"`
}

// Token is the credential pair returned by the OAuth code exchange.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// OsuClient talks to the osu! API v2: OAuth code exchange and the
// recent-plays feed. It is the engine's "recent-plays source" collaborator.
type OsuClient struct {
	baseURL      string
	clientID     string
	clientSecret string
	redirectURI  string
	logger       *slog.Logger
	client       *http.Client
}

// NewOsuClient creates an osu! API client.
func NewOsuClient(clientID, clientSecret, redirectURI string, logger *slog.Logger) *OsuClient {
	return &OsuClient{
		baseURL:      "https://osu.ppy.sh",
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		logger:       logger,
		client:       &http.Client{Timeout: 15 * time.Second},
	}
}

// WithBaseURL overrides the API base URL (tests).
func (c *OsuClient) WithBaseURL(base string) *OsuClient {
	c.baseURL = strings.TrimRight(base, "/")
	return c
}

// AuthorizeURL returns the OAuth authorization redirect target.
func (c *OsuClient) AuthorizeURL() string {
	q := url.Values{}
	q.Set("client_id", c.clientID)
	q.Set("redirect_uri", c.redirectURI)
	q.Set("response_type", "code")
	q.Set("scope", "public identify")
	return c.baseURL + "/oauth/authorize?" + q.Encode()
}

// ExchangeCode trades an authorization code for an access token.
func (c *OsuClient) ExchangeCode(ctx context.Context, code string) (*Token, error) {
	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("code", code)
	form.Set("grant_type", "authorization_code")
	form.Set("redirect_uri", c.redirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, domain.ErrSourceUnavailable(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("osu token exchange failed", "status", resp.StatusCode)
		return nil, domain.ErrInvalidCredential("authorization code rejected")
	}

	var tok osuToken
	if err := json.Unmarshal(body, &tok); err != nil {
		return nil, domain.ErrSourceUnavailable(fmt.Errorf("decode token: %w", err))
	}
	if tok.AccessToken == "" {
		return nil, domain.ErrInvalidCredential("empty access token")
	}

	return &Token{
		AccessToken: tok.AccessToken,
		ExpiresAt:   time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second),
	}, nil
}

// CurrentUser fetches the authenticated user's profile.
func (c *OsuClient) CurrentUser(ctx context.Context, accessToken string) (*domain.Player, error) {
	body, err := c.get(ctx, accessToken, "/api/v2/me/osu")
	if err != nil {
		return nil, err
	}

	var u osuUser
	if err := json.Unmarshal(body, &u); err != nil {
		return nil, domain.ErrSourceUnavailable(fmt.Errorf("decode user: %w", err))
	}
	if u.ID == 0 {
		return nil, domain.ErrMalformedRecord("user record missing id")
	}

	return &domain.Player{
		UserID:     u.ID,
		Username:   u.Username,
		GlobalRank: u.Statistics.GlobalRank,
	}, nil
}

// RecentScores fetches the user's recent passed plays, newest-first, bounded
// by limit. Individual malformed records are skipped and logged; a transport
// or status failure aborts the whole fetch.
func (c *OsuClient) RecentScores(ctx context.Context, accessToken string, userID int64, limit int) ([]domain.PlayedScore, error) {
	path := fmt.Sprintf("/api/v2/users/%d/scores/recent?include_fails=0&limit=%d", userID, limit)
	body, err := c.get(ctx, accessToken, path)
	if err != nil {
		return nil, err
	}

	var raw []osuScore
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, domain.ErrSourceUnavailable(fmt.Errorf("decode scores: %w", err))
	}

	plays := make([]domain.PlayedScore, 0, len(raw))
	for _, s := range raw {
		play, err := mapScore(userID, s)
		if err != nil {
			c.logger.Warn("skipping malformed score record", "score_id", s.ID, "error", err)
			continue
		}
		plays = append(plays, play)
	}
	return plays, nil
}

func mapScore(userID int64, s osuScore) (domain.PlayedScore, error) {
	if s.ID == 0 {
		return domain.PlayedScore{}, domain.ErrMalformedRecord("score missing id")
	}
	if s.Beatmap.ID == 0 {
		return domain.PlayedScore{}, domain.ErrMalformedRecord("score missing beatmap")
	}

	playedAt, err := time.Parse(time.RFC3339, s.CreatedAt)
	if err != nil {
		playedAt = time.Now()
	}

	return domain.PlayedScore{
		ScoreID:     s.ID,
		UserID:      userID,
		BeatmapID:   s.Beatmap.ID,
		Title:       s.Beatmapset.Title,
		Stars:       s.Beatmap.DifficultyRating,
		Accuracy:    s.Accuracy,
		MaxCombo:    s.MaxCombo,
		MapMaxCombo: s.Beatmap.MaxCombo,
		MapLength:   s.Beatmap.TotalLength,
		Mods:        s.Mods,
		Rank:        s.Rank,
		MissCount:   s.Statistics.CountMiss,
		Passed:      s.Passed,
		PlayedAt:    playedAt,
	}, nil
}

func (c *OsuClient) get(ctx context.Context, accessToken, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, domain.ErrSourceUnavailable(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	c.logger.Debug("osu api request", "path", path, "status", resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, domain.ErrInvalidCredential("access token rejected")
	case resp.StatusCode != http.StatusOK:
		return nil, domain.ErrSourceUnavailable(fmt.Errorf("osu api returned %d: %s",
			resp.StatusCode, string(body[:min(200, len(body))])))
	}

	return body, nil
}
