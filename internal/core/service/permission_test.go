package service

import (
	"context"
	"errors"
	"testing"

	"github.com/intraworks/dochub/internal/core/domain"
	"github.com/intraworks/dochub/internal/core/ports"
)

func TestPermissionResolver_SkipsLookupWhenDecisionIsFixed(t *testing.T) {
	shares := newStubShareRepo()
	resolver := NewPermissionResolver(shares)
	ctx := context.Background()

	res := &domain.Resource{ID: "r1", OwnerID: "owner"}
	public := &domain.Resource{ID: "r2", OwnerID: "owner", IsPublic: true}

	cases := []struct {
		name  string
		actor domain.Actor
		res   *domain.Resource
		op    domain.Operation
	}{
		{"admin", domain.Actor{ID: "root", Role: domain.RoleAdmin}, res, domain.OpDelete},
		{"owner", domain.Actor{ID: "owner", Role: domain.RoleUser}, res, domain.OpEdit},
		{"public view", domain.Actor{ID: "bob", Role: domain.RoleUser}, public, domain.OpView},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := shares.findCalls
			if err := resolver.Authorize(ctx, tc.actor, tc.res, tc.op); err != nil {
				t.Fatalf("expected allow, got %v", err)
			}
			if shares.findCalls != before {
				t.Fatalf("grant lookup performed where the decision cannot depend on it")
			}
		})
	}
}

func TestPermissionResolver_GrantDecides(t *testing.T) {
	shares := newStubShareRepo()
	resolver := NewPermissionResolver(shares)
	ctx := context.Background()

	res := &domain.Resource{ID: "r1", OwnerID: "owner"}
	bob := domain.Actor{ID: "bob", Role: domain.RoleUser}

	if err := resolver.Authorize(ctx, bob, res, domain.OpView); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden without grant, got %v", err)
	}

	canEdit := true
	if _, err := shares.Upsert(ctx, ports.UpsertGrantParams{ResourceID: "r1", UserID: "bob", CanEdit: &canEdit}); err != nil {
		t.Fatalf("seed grant: %v", err)
	}

	if err := resolver.Authorize(ctx, bob, res, domain.OpView); err != nil {
		t.Fatalf("view with default grant denied: %v", err)
	}
	if err := resolver.Authorize(ctx, bob, res, domain.OpEdit); err != nil {
		t.Fatalf("edit with edit grant denied: %v", err)
	}
	if err := resolver.Authorize(ctx, bob, res, domain.OpDelete); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for delete, got %v", err)
	}
}

func TestPermissionResolver_MissingResource(t *testing.T) {
	resolver := NewPermissionResolver(newStubShareRepo())

	err := resolver.Authorize(context.Background(), domain.Actor{ID: "bob", Role: domain.RoleUser}, nil, domain.OpView)
	if !errors.Is(err, domain.ErrResourceNotFound) {
		t.Fatalf("expected ErrResourceNotFound, got %v", err)
	}
}
