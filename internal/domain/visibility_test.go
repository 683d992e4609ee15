package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestCanViewDecisionTable(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	strangerID := uuid.New()
	adminID := uuid.New()

	anon := AnonymousViewer()
	owner := AuthenticatedViewer(ownerID, RoleStudent)
	stranger := AuthenticatedViewer(strangerID, RoleStudent)
	admin := AuthenticatedViewer(adminID, RoleAdmin)

	cases := []struct {
		name       string
		visibility Visibility
		viewer     ViewerContext
		want       ViewDecision
	}{
		{"public anon", VisibilityPublic, anon, ViewAllowed},
		{"public stranger", VisibilityPublic, stranger, ViewAllowed},
		{"public owner", VisibilityPublic, owner, ViewAllowed},
		{"public admin", VisibilityPublic, admin, ViewAllowed},

		{"university anon", VisibilityUniversity, anon, ViewDeniedMustLogin},
		{"university stranger", VisibilityUniversity, stranger, ViewAllowed},
		{"university owner", VisibilityUniversity, owner, ViewAllowed},
		{"university admin", VisibilityUniversity, admin, ViewAllowed},

		{"private anon", VisibilityPrivate, anon, ViewDeniedForbidden},
		{"private stranger", VisibilityPrivate, stranger, ViewDeniedForbidden},
		{"private owner", VisibilityPrivate, owner, ViewAllowed},
		{"private admin", VisibilityPrivate, admin, ViewAllowed},

		{"unknown visibility denies closed", Visibility("secret"), stranger, ViewDeniedForbidden},
		{"unknown visibility owner still allowed", Visibility("secret"), owner, ViewAllowed},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := CanView(tc.visibility, ownerID, tc.viewer); got != tc.want {
				t.Fatalf("CanView(%s) = %v, want %v", tc.name, got, tc.want)
			}
		})
	}
}

func TestViewerContextHelpers(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	if AnonymousViewer().IsOwner(ownerID) {
		t.Fatalf("anonymous viewer can never be owner")
	}
	if AnonymousViewer().IsAdmin() {
		t.Fatalf("anonymous viewer can never be admin")
	}
	if !AuthenticatedViewer(ownerID, RoleStudent).IsOwner(ownerID) {
		t.Fatalf("expected owner match")
	}
	if AuthenticatedViewer(uuid.New(), RoleStudent).IsOwner(ownerID) {
		t.Fatalf("different viewer must not be owner")
	}
}
