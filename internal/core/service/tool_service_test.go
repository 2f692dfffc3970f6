package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/intraworks/dochub/internal/core/domain"
	"github.com/intraworks/dochub/internal/core/ports"
)

type stubToolRepo struct {
	tools map[string]*domain.Tool
	seq   int
}

func newStubToolRepo() *stubToolRepo {
	return &stubToolRepo{tools: make(map[string]*domain.Tool)}
}

func (r *stubToolRepo) Create(_ context.Context, tool *domain.Tool) (*domain.Tool, error) {
	clone := *tool
	r.seq++
	clone.ID = fmt.Sprintf("t%d", r.seq)
	r.tools[clone.ID] = &clone
	copy := clone
	return &copy, nil
}

func (r *stubToolRepo) FindByID(_ context.Context, id string) (*domain.Tool, error) {
	tool, ok := r.tools[id]
	if !ok {
		return nil, domain.ErrToolNotFound
	}
	clone := *tool
	return &clone, nil
}

func (r *stubToolRepo) List(_ context.Context) ([]*domain.Tool, error) {
	out := make([]*domain.Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		clone := *tool
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubToolRepo) Update(_ context.Context, tool *domain.Tool) (*domain.Tool, error) {
	if _, ok := r.tools[tool.ID]; !ok {
		return nil, domain.ErrToolNotFound
	}
	clone := *tool
	r.tools[tool.ID] = &clone
	copy := clone
	return &copy, nil
}

func (r *stubToolRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tools[id]; !ok {
		return domain.ErrToolNotFound
	}
	delete(r.tools, id)
	return nil
}

func (r *stubToolRepo) MarkNotified(_ context.Context, id string, ts time.Time) error {
	tool, ok := r.tools[id]
	if !ok {
		return domain.ErrToolNotFound
	}
	tool.LastNotification = ts
	return nil
}

func validToolInput() ports.ToolInput {
	return ports.ToolInput{
		Name:             "CI license",
		Responsible:      "Dana",
		ResponsibleEmail: "dana@example.com",
		AcquisitionDate:  time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		ExpirationDate:   time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestToolService_Create(t *testing.T) {
	svc := NewToolService(newStubToolRepo(), zerolog.Nop())

	tool, err := svc.Create(context.Background(), validToolInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if tool.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if !tool.LastNotification.IsZero() {
		t.Fatalf("new tool must not carry a notification timestamp")
	}
}

func TestToolService_Create_Validation(t *testing.T) {
	svc := NewToolService(newStubToolRepo(), zerolog.Nop())
	ctx := context.Background()

	missingName := validToolInput()
	missingName.Name = ""
	if _, err := svc.Create(ctx, missingName); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing name, got %v", err)
	}

	inverted := validToolInput()
	inverted.AcquisitionDate, inverted.ExpirationDate = inverted.ExpirationDate, inverted.AcquisitionDate
	if _, err := svc.Create(ctx, inverted); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for inverted dates, got %v", err)
	}

	equal := validToolInput()
	equal.ExpirationDate = equal.AcquisitionDate
	if _, err := svc.Create(ctx, equal); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for equal dates, got %v", err)
	}
}

func TestToolService_Update_PreservesLastNotification(t *testing.T) {
	repo := newStubToolRepo()
	svc := NewToolService(repo, zerolog.Nop())
	ctx := context.Background()

	tool, err := svc.Create(ctx, validToolInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	notifiedAt := time.Date(2026, time.February, 1, 8, 0, 0, 0, time.UTC)
	if err := repo.MarkNotified(ctx, tool.ID, notifiedAt); err != nil {
		t.Fatalf("mark notified: %v", err)
	}

	input := validToolInput()
	input.Name = "CI license (renewed)"
	updated, err := svc.Update(ctx, tool.ID, input)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "CI license (renewed)" {
		t.Fatalf("name not updated: %s", updated.Name)
	}
	if !updated.LastNotification.Equal(notifiedAt) {
		t.Fatalf("update clobbered LastNotification: %v", updated.LastNotification)
	}
}

func TestToolService_Delete_Unknown(t *testing.T) {
	svc := NewToolService(newStubToolRepo(), zerolog.Nop())

	if err := svc.Delete(context.Background(), "ghost"); !errors.Is(err, domain.ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound, got %v", err)
	}
}
