package engage

import "time"

const (
	TypeSaved    = "saved"
	TypeInterest = "interest"
)

// Engagement is a presence flag: a row means "on", no row means "off".
type Engagement struct {
	ID        int64     `json:"id"`
	StartupID int64     `json:"startup_id"`
	UserUUID  string    `json:"user_uuid"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

func IsValidType(t string) bool {
	return t == TypeSaved || t == TypeInterest
}
