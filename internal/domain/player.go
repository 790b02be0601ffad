package domain

import "time"

// Player is a tracked account, keyed by its external user id.
type Player struct {
	UserID     int64     `json:"user_id"`
	Username   string    `json:"username"`
	GlobalRank int       `json:"global_rank"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Credential is the stored third-party API token for a player. The reconcile
// flow needs it to fetch recent plays; an absent or expired credential is an
// INVALID_CREDENTIAL error so the client can trigger reauthentication.
type Credential struct {
	UserID      int64     `json:"user_id"`
	AccessToken string    `json:"-"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Expired reports whether the credential is unusable at the given time.
func (c Credential) Expired(now time.Time) bool {
	return c.AccessToken == "" || !now.Before(c.ExpiresAt)
}
