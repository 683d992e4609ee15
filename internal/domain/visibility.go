package domain

import "github.com/google/uuid"

// ViewerContext is the immutable per-request view of the session state,
// built once from authentication claims so the visibility decision can be
// tested without a request object.
type ViewerContext struct {
	Authenticated bool
	ViewerID      uuid.UUID
	Role          Role
}

func AnonymousViewer() ViewerContext {
	return ViewerContext{}
}

func AuthenticatedViewer(viewerID uuid.UUID, role Role) ViewerContext {
	return ViewerContext{Authenticated: true, ViewerID: viewerID, Role: role}
}

func (v ViewerContext) IsOwner(ownerID uuid.UUID) bool {
	return v.Authenticated && v.ViewerID == ownerID
}

func (v ViewerContext) IsAdmin() bool {
	return v.Authenticated && v.Role == RoleAdmin
}

type ViewDecision int

const (
	// ViewAllowed permits rendering the profile.
	ViewAllowed ViewDecision = iota
	// ViewDeniedMustLogin means the viewer could see the profile after
	// authenticating; callers should send them toward login.
	ViewDeniedMustLogin
	// ViewDeniedForbidden means authentication would not help; callers
	// show a generic private-profile notice.
	ViewDeniedForbidden
)

// CanView decides whether the viewer may see a profile with the given
// visibility and owner. Lookup misses are the caller's concern: this gate is
// only consulted for profiles that exist. Owner and admin always pass;
// public profiles are open; university profiles need any authenticated
// session; private profiles are closed to everyone else. Unknown visibility
// values deny closed.
func CanView(visibility Visibility, ownerID uuid.UUID, viewer ViewerContext) ViewDecision {
	if viewer.IsOwner(ownerID) || viewer.IsAdmin() {
		return ViewAllowed
	}
	switch visibility {
	case VisibilityPublic:
		return ViewAllowed
	case VisibilityUniversity:
		if viewer.Authenticated {
			return ViewAllowed
		}
		return ViewDeniedMustLogin
	default:
		return ViewDeniedForbidden
	}
}
