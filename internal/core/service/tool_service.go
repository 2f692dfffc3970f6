package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/intraworks/dochub/internal/core/domain"
	"github.com/intraworks/dochub/internal/core/ports"
)

// ToolService implements tool/license management.
type ToolService struct {
	repo   ports.ToolRepository
	logger zerolog.Logger
}

func NewToolService(repo ports.ToolRepository, logger zerolog.Logger) *ToolService {
	return &ToolService{repo: repo, logger: logger}
}

func (s *ToolService) Create(ctx context.Context, input ports.ToolInput) (*domain.Tool, error) {
	if err := validateToolInput(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tool := &domain.Tool{
		Name:             input.Name,
		Description:      input.Description,
		Responsible:      input.Responsible,
		ResponsibleEmail: input.ResponsibleEmail,
		AcquisitionDate:  input.AcquisitionDate.UTC(),
		ExpirationDate:   input.ExpirationDate.UTC(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	created, err := s.repo.Create(ctx, tool)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("tool_id", created.ID).Str("name", created.Name).Msg("tool created")
	return created, nil
}

// Update replaces the tool's editable fields. LastNotification is preserved;
// only the notifier writes it.
func (s *ToolService) Update(ctx context.Context, id string, input ports.ToolInput) (*domain.Tool, error) {
	if err := validateToolInput(input); err != nil {
		return nil, err
	}

	tool, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tool.Name = input.Name
	tool.Description = input.Description
	tool.Responsible = input.Responsible
	tool.ResponsibleEmail = input.ResponsibleEmail
	tool.AcquisitionDate = input.AcquisitionDate.UTC()
	tool.ExpirationDate = input.ExpirationDate.UTC()
	tool.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, tool)
}

func (s *ToolService) Get(ctx context.Context, id string) (*domain.Tool, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ToolService) List(ctx context.Context) ([]*domain.Tool, error) {
	return s.repo.List(ctx)
}

func (s *ToolService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("tool_id", id).Msg("tool deleted")
	return nil
}

func validateToolInput(input ports.ToolInput) error {
	if input.Name == "" || input.Responsible == "" || input.ResponsibleEmail == "" {
		return fmt.Errorf("%w: name, responsible and responsible_email are required", domain.ErrValidation)
	}
	if input.AcquisitionDate.IsZero() || input.ExpirationDate.IsZero() {
		return fmt.Errorf("%w: acquisition_date and expiration_date are required", domain.ErrValidation)
	}
	if !input.AcquisitionDate.Before(input.ExpirationDate) {
		return fmt.Errorf("%w: acquisition_date must precede expiration_date", domain.ErrValidation)
	}
	return nil
}
