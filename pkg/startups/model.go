package startups

import "time"

const (
	VisibilityPublic     = "public"
	VisibilityInviteOnly = "invite_only"
	VisibilityPrivate    = "private"
)

// Predefined status labels. Custom labels are allowed; these drive the
// explore facets and the active-first sort.
const (
	StatusActive   = "Active"
	StatusPaused   = "Paused"
	StatusAcquired = "Acquired"
	StatusShutDown = "Shut Down"
)

type Startup struct {
	ID          int64     `json:"id"`
	OwnerUUID   string    `json:"owner_uuid"`
	Name        string    `json:"name"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	LogoURL     string    `json:"logo_url"`
	Visibility  string    `json:"visibility"`
	Status      string    `json:"status"`
	Asks        string    `json:"asks"`
	WebsiteURL  string    `json:"website_url"`
	CreatedAt   time.Time `json:"created_at"`
}

type StartupList struct {
	Items []Startup `json:"items"`
	Total int64     `json:"total"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
}

// ListFilter is the coarse predicate pushed down to the database. Precise
// filtering (rating ranges, viewer-scoped data) happens in memory.
type ListFilter struct {
	Search     string
	Visibility []string
	Status     []string
	Tags       []string
}

func IsValidVisibility(v string) bool {
	switch v {
	case VisibilityPublic, VisibilityInviteOnly, VisibilityPrivate:
		return true
	default:
		return false
	}
}
