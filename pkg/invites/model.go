package invites

import "time"

// Invite is a pending, emailed access offer for a startup. Redeeming a
// valid code creates the corresponding access grant.
type Invite struct {
	ID        int64     `json:"id"`
	StartupID int64     `json:"startup_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Code      string    `json:"-"`
	Used      bool      `json:"used"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
