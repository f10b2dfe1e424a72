package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/fintrackhq/fintrack-api/internal/core/domain"
	"github.com/fintrackhq/fintrack-api/internal/core/ports"
)

type OrganizationService struct {
	repo ports.OrganizationRepository
	log  zerolog.Logger
}

func NewOrganizationService(repo ports.OrganizationRepository, log zerolog.Logger) *OrganizationService {
	return &OrganizationService{repo: repo, log: log}
}

func (s *OrganizationService) Create(ctx context.Context, caller domain.OwnerID, in ports.OrganizationInput) (*domain.Organization, error) {
	if caller.IsZero() {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now().UTC()
	org := &domain.Organization{
		Name:        in.Name,
		Description: in.Description,
		Currency:    in.Currency,
		Owner:       caller,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Insert(ctx, org)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("id", created.ID).Msg("organization created")
	return created, nil
}

func (s *OrganizationService) Get(ctx context.Context, caller domain.OwnerID, id string) (*domain.Organization, error) {
	if caller.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.FindByID(ctx, id, caller)
}

func (s *OrganizationService) List(ctx context.Context, caller domain.OwnerID, q ports.ListQuery) (ports.Page[*domain.Organization], error) {
	if caller.IsZero() {
		return ports.Page[*domain.Organization]{}, domain.ErrUnauthorized
	}

	q = q.Normalize()
	items, total, err := s.repo.List(ctx, caller, q)
	if err != nil {
		return ports.Page[*domain.Organization]{}, err
	}
	return ports.NewPage(items, total, q), nil
}

func (s *OrganizationService) Update(ctx context.Context, caller domain.OwnerID, id string, in ports.OrganizationInput) (*domain.Organization, error) {
	if caller.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	org, err := s.repo.FindByID(ctx, id, "")
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(org, caller); err != nil {
		return nil, err
	}

	org.Name = in.Name
	org.Description = in.Description
	org.Currency = in.Currency
	org.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

func (s *OrganizationService) Delete(ctx context.Context, caller domain.OwnerID, id string) error {
	if caller.IsZero() {
		return domain.ErrUnauthorized
	}
	org, err := s.repo.FindByID(ctx, id, "")
	if err != nil {
		return err
	}
	if err := domain.Authorize(org, caller); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
