package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/fintrackhq/fintrack-api/internal/core/domain"
	"github.com/fintrackhq/fintrack-api/internal/core/ports"
)

// CatalogService implements CRUD for the four catalog kinds. One service
// covers all of them: the kind only selects the sub-collection, the
// ownership rules are identical.
type CatalogService struct {
	repo ports.CatalogRepository
	log  zerolog.Logger
}

func NewCatalogService(repo ports.CatalogRepository, log zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, log: log}
}

func (s *CatalogService) Create(ctx context.Context, caller domain.OwnerID, kind domain.CatalogKind, in ports.CatalogInput) (*domain.CatalogItem, error) {
	if caller.IsZero() {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now().UTC()
	item := &domain.CatalogItem{
		Kind:        kind,
		Name:        in.Name,
		Description: in.Description,
		Owner:       caller,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Insert(ctx, item)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("kind", string(kind)).Str("id", created.ID).Msg("catalog item created")
	return created, nil
}

func (s *CatalogService) Get(ctx context.Context, caller domain.OwnerID, kind domain.CatalogKind, id string) (*domain.CatalogItem, error) {
	if caller.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.FindByID(ctx, kind, id, caller)
}

func (s *CatalogService) List(ctx context.Context, caller domain.OwnerID, kind domain.CatalogKind, q ports.ListQuery) (ports.Page[*domain.CatalogItem], error) {
	if caller.IsZero() {
		return ports.Page[*domain.CatalogItem]{}, domain.ErrUnauthorized
	}

	q = q.Normalize()
	items, total, err := s.repo.List(ctx, kind, caller, q)
	if err != nil {
		return ports.Page[*domain.CatalogItem]{}, err
	}
	return ports.NewPage(items, total, q), nil
}

func (s *CatalogService) Update(ctx context.Context, caller domain.OwnerID, kind domain.CatalogKind, id string, in ports.CatalogInput) (*domain.CatalogItem, error) {
	if caller.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	item, err := s.repo.FindByID(ctx, kind, id, "")
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(item, caller); err != nil {
		return nil, err
	}

	item.Name = in.Name
	item.Description = in.Description
	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CatalogService) Delete(ctx context.Context, caller domain.OwnerID, kind domain.CatalogKind, id string) error {
	if caller.IsZero() {
		return domain.ErrUnauthorized
	}
	item, err := s.repo.FindByID(ctx, kind, id, "")
	if err != nil {
		return err
	}
	if err := domain.Authorize(item, caller); err != nil {
		return err
	}
	return s.repo.Delete(ctx, kind, id)
}
