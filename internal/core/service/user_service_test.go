package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/intraworks/dochub/internal/core/domain"
)

func TestUserService_PromoteAndDemote(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	ctx := context.Background()

	bob, _ := repo.Create(ctx, &domain.User{Name: "Bob", Email: "bob@example.com", Role: domain.RoleUser})

	promoted, err := svc.Promote(ctx, bob.ID)
	if err != nil {
		t.Fatalf("promote failed: %v", err)
	}
	if promoted.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %s", promoted.Role)
	}

	admin := domain.Actor{ID: "someone-else", Role: domain.RoleAdmin}
	demoted, err := svc.Demote(ctx, admin, bob.ID)
	if err != nil {
		t.Fatalf("demote failed: %v", err)
	}
	if demoted.Role != domain.RoleUser {
		t.Fatalf("expected user role, got %s", demoted.Role)
	}
}

func TestUserService_Demote_Self(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	ctx := context.Background()

	root, _ := repo.Create(ctx, &domain.User{Name: "Root", Email: "root@example.com", Role: domain.RoleAdmin})

	actor := domain.Actor{ID: root.ID, Role: domain.RoleAdmin}
	if _, err := svc.Demote(ctx, actor, root.ID); !errors.Is(err, domain.ErrSelfDemotion) {
		t.Fatalf("expected ErrSelfDemotion, got %v", err)
	}

	// The role must not have been touched.
	kept, _ := repo.FindByID(ctx, root.ID)
	if kept.Role != domain.RoleAdmin {
		t.Fatalf("self-demotion modified the role: %s", kept.Role)
	}
}

func TestUserService_Promote_UnknownUser(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())

	if _, err := svc.Promote(context.Background(), "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
