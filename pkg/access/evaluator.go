package access

import "errors"

// ErrNotOwner is returned whenever a mutation is attempted by anyone other
// than the startup owner.
var ErrNotOwner = errors.New("actor is not the startup owner")

// ErrStartupNotFound lives here so the startups package can share one
// sentinel with the packages that resolve owners through this one.
var ErrStartupNotFound = errors.New("startup not found")

// Startup-level visibility tiers, mirrored from the startups package to keep
// this package free of import cycles.
const (
	visibilityPublic = "public"
)

// Rating visibility tiers.
const (
	RatingPublic      = "public"
	RatingPrivate     = "private"
	RatingInnerCircle = "inner_circle"
)

// RequireOwner is the single ownership policy shared by every mutating
// entry point (grants, startup edits, invites).
func RequireOwner(ownerUUID, actorUUID string) error {
	if ownerUUID == "" || actorUUID == "" || ownerUUID != actorUUID {
		return ErrNotOwner
	}
	return nil
}

// CanViewSensitiveData decides whether the viewer may see ratings and
// comments for a startup at all. Order matters: owner first, then the
// public tier, then explicit grants. Missing owner or unknown visibility
// fails closed.
func CanViewSensitiveData(ownerUUID, visibility, viewerUUID string, grants []Grant) bool {
	if viewerUUID == "" {
		return false
	}
	if ownerUUID != "" && viewerUUID == ownerUUID {
		return true
	}
	if visibility == visibilityPublic {
		return true
	}
	return grantFor(viewerUUID, grants) != RoleNone
}

// ResolveRole returns the viewer's effective role on a startup: owner,
// the granted role, or none.
func ResolveRole(ownerUUID, viewerUUID string, grants []Grant) Role {
	if viewerUUID == "" {
		return RoleNone
	}
	if ownerUUID != "" && viewerUUID == ownerUUID {
		return RoleOwner
	}
	return grantFor(viewerUUID, grants)
}

// CanViewRating gates an individual rating, assuming the caller already
// passed the startup-level gate. The startup owner sees every rating;
// private ratings are visible only to their author; inner-circle ratings
// require an explicit grant.
func CanViewRating(ownerUUID, ratingVisibility, raterUUID, viewerUUID string, grants []Grant) bool {
	if viewerUUID == "" {
		return false
	}
	if ownerUUID != "" && viewerUUID == ownerUUID {
		return true
	}
	switch ratingVisibility {
	case RatingPublic:
		return true
	case RatingPrivate:
		return viewerUUID == raterUUID
	case RatingInnerCircle:
		return viewerUUID == raterUUID || grantFor(viewerUUID, grants) != RoleNone
	default:
		return false
	}
}

func grantFor(userUUID string, grants []Grant) Role {
	for _, g := range grants {
		if g.UserUUID == userUUID && IsGrantableRole(g.Role) {
			return g.Role
		}
	}
	return RoleNone
}
