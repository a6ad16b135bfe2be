package access

import "time"

type Role string

const (
	RoleNone      Role = ""
	RoleViewer    Role = "viewer"
	RoleCommenter Role = "commenter"
	RoleEditor    Role = "editor"
	// RoleOwner is never stored; ownership is implicit on the startup row.
	RoleOwner Role = "owner"
)

func IsGrantableRole(r Role) bool {
	switch r {
	case RoleViewer, RoleCommenter, RoleEditor:
		return true
	default:
		return false
	}
}

type Grant struct {
	ID        int64     `json:"id"`
	StartupID int64     `json:"startup_id"`
	UserUUID  string    `json:"user_uuid"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
