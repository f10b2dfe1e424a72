package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/fintrackhq/fintrack-api/internal/core/domain"
	"github.com/fintrackhq/fintrack-api/internal/core/ports"
)

type stubCatalogRepo struct {
	items  map[string]*domain.CatalogItem
	nextID int
}

func newStubCatalogRepo() *stubCatalogRepo {
	return &stubCatalogRepo{items: make(map[string]*domain.CatalogItem)}
}

func cloneItem(i *domain.CatalogItem) *domain.CatalogItem {
	if i == nil {
		return nil
	}
	clone := *i
	return &clone
}

func (r *stubCatalogRepo) Insert(_ context.Context, item *domain.CatalogItem) (*domain.CatalogItem, error) {
	copy := cloneItem(item)
	r.nextID++
	copy.ID = fmt.Sprintf("item_%d", r.nextID)
	r.items[copy.ID] = cloneItem(copy)
	return copy, nil
}

func (r *stubCatalogRepo) FindByID(_ context.Context, kind domain.CatalogKind, id string, owner domain.OwnerID) (*domain.CatalogItem, error) {
	item, ok := r.items[id]
	if !ok || item.Kind != kind {
		return nil, domain.ErrResourceNotFound
	}
	if !owner.IsZero() && item.Owner != owner {
		return nil, domain.ErrResourceNotFound
	}
	return cloneItem(item), nil
}

func (r *stubCatalogRepo) List(_ context.Context, kind domain.CatalogKind, owner domain.OwnerID, q ports.ListQuery) ([]*domain.CatalogItem, int64, error) {
	var out []*domain.CatalogItem
	for _, item := range r.items {
		if item.Kind != kind || item.Owner != owner {
			continue
		}
		if q.Search != "" && !strings.Contains(strings.ToLower(item.Name), strings.ToLower(q.Search)) {
			continue
		}
		out = append(out, cloneItem(item))
	}
	return out, int64(len(out)), nil
}

func (r *stubCatalogRepo) Update(_ context.Context, item *domain.CatalogItem) error {
	if _, ok := r.items[item.ID]; !ok {
		return domain.ErrResourceNotFound
	}
	r.items[item.ID] = cloneItem(item)
	return nil
}

func (r *stubCatalogRepo) Delete(_ context.Context, kind domain.CatalogKind, id string) error {
	item, ok := r.items[id]
	if !ok || item.Kind != kind {
		return domain.ErrResourceNotFound
	}
	delete(r.items, id)
	return nil
}

func newTestCatalogService() (*CatalogService, *stubCatalogRepo) {
	repo := newStubCatalogRepo()
	return NewCatalogService(repo, zerolog.Nop()), repo
}

func TestCatalogService_Create_StampsOwner(t *testing.T) {
	svc, _ := newTestCatalogService()

	item, err := svc.Create(context.Background(), "acc_1", domain.KindTag, ports.CatalogInput{Name: "groceries"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.Owner != "acc_1" {
		t.Fatalf("owner not stamped from caller, got %q", item.Owner)
	}
	if item.Kind != domain.KindTag {
		t.Fatalf("unexpected kind %q", item.Kind)
	}
	if item.ID == "" || item.CreatedAt.IsZero() {
		t.Fatalf("id/timestamps not set: %+v", item)
	}
}

func TestCatalogService_Create_AnonymousRejected(t *testing.T) {
	svc, repo := newTestCatalogService()

	if _, err := svc.Create(context.Background(), "", domain.KindTag, ports.CatalogInput{Name: "x"}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if len(repo.items) != 0 {
		t.Fatalf("nothing should be stored")
	}
}

func TestCatalogService_Get_ScopedToOwner(t *testing.T) {
	svc, _ := newTestCatalogService()
	created, _ := svc.Create(context.Background(), "acc_1", domain.KindTag, ports.CatalogInput{Name: "groceries"})

	if _, err := svc.Get(context.Background(), "acc_1", domain.KindTag, created.ID); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}

	// Another account must not even learn the record exists.
	if _, err := svc.Get(context.Background(), "acc_2", domain.KindTag, created.ID); !errors.Is(err, domain.ErrResourceNotFound) {
		t.Fatalf("expected ErrResourceNotFound for foreign reader, got %v", err)
	}

	// The same id under a different kind is not reachable either.
	if _, err := svc.Get(context.Background(), "acc_1", domain.KindPaymentMethod, created.ID); !errors.Is(err, domain.ErrResourceNotFound) {
		t.Fatalf("expected ErrResourceNotFound across kinds, got %v", err)
	}
}

func TestCatalogService_Update_ForeignCallerForbidden(t *testing.T) {
	svc, repo := newTestCatalogService()
	created, _ := svc.Create(context.Background(), "acc_1", domain.KindTag, ports.CatalogInput{Name: "groceries"})

	_, err := svc.Update(context.Background(), "acc_2", domain.KindTag, created.ID, ports.CatalogInput{Name: "hijacked"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if repo.items[created.ID].Name != "groceries" {
		t.Fatalf("record modified by a foreign caller")
	}
}

func TestCatalogService_Update_Owner(t *testing.T) {
	svc, repo := newTestCatalogService()
	created, _ := svc.Create(context.Background(), "acc_1", domain.KindTag, ports.CatalogInput{Name: "groceries"})

	updated, err := svc.Update(context.Background(), "acc_1", domain.KindTag, created.ID, ports.CatalogInput{Name: "food", Description: "weekly shop"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "food" || updated.Description != "weekly shop" {
		t.Fatalf("unexpected result: %+v", updated)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) && !updated.UpdatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("UpdatedAt not refreshed")
	}
	if repo.items[created.ID].Name != "food" {
		t.Fatalf("store not updated")
	}
}

func TestCatalogService_Update_OwnerlessRecordNeverWritable(t *testing.T) {
	svc, repo := newTestCatalogService()

	// A legacy record without an owner must reject every writer, including
	// callers that would compare equal on a naive empty-string check.
	repo.items["item_legacy"] = &domain.CatalogItem{ID: "item_legacy", Kind: domain.KindTag, Name: "orphan"}

	if _, err := svc.Update(context.Background(), "acc_1", domain.KindTag, "item_legacy", ports.CatalogInput{Name: "claimed"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for ownerless record, got %v", err)
	}
	if err := svc.Delete(context.Background(), "acc_1", domain.KindTag, "item_legacy"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for ownerless record delete, got %v", err)
	}
}

func TestCatalogService_Mutate_AnonymousRejectedBeforeLookup(t *testing.T) {
	svc, _ := newTestCatalogService()

	// An anonymous caller gets ErrUnauthorized even when the id does not
	// exist; the lookup must not run first and leak ErrResourceNotFound.
	if _, err := svc.Update(context.Background(), "", domain.KindTag, "item_missing", ports.CatalogInput{Name: "x"}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for anonymous update, got %v", err)
	}
	if err := svc.Delete(context.Background(), "", domain.KindTag, "item_missing"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for anonymous delete, got %v", err)
	}
}

func TestCatalogService_Delete(t *testing.T) {
	svc, repo := newTestCatalogService()
	created, _ := svc.Create(context.Background(), "acc_1", domain.KindTag, ports.CatalogInput{Name: "groceries"})

	if err := svc.Delete(context.Background(), "acc_2", domain.KindTag, created.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), "acc_1", domain.KindTag, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.items) != 0 {
		t.Fatalf("record not removed")
	}
}

func TestCatalogService_List_NormalizesQuery(t *testing.T) {
	svc, _ := newTestCatalogService()
	for i := 0; i < 3; i++ {
		_, _ = svc.Create(context.Background(), "acc_1", domain.KindTag, ports.CatalogInput{Name: fmt.Sprintf("tag-%d", i)})
	}
	_, _ = svc.Create(context.Background(), "acc_2", domain.KindTag, ports.CatalogInput{Name: "foreign"})

	page, err := svc.List(context.Background(), "acc_1", domain.KindTag, ports.ListQuery{Page: 0, Limit: 0})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Page != 1 || page.Limit != defaultListLimit() {
		t.Fatalf("query not normalized: page=%d limit=%d", page.Page, page.Limit)
	}
	if page.Total != 3 || len(page.Items) != 3 {
		t.Fatalf("expected 3 own items, got total=%d len=%d", page.Total, len(page.Items))
	}
	for _, item := range page.Items {
		if item.Owner != "acc_1" {
			t.Fatalf("foreign item leaked into listing: %+v", item)
		}
	}
}

// defaultListLimit mirrors ports.ListQuery.Normalize's default page size.
func defaultListLimit() int {
	return ports.ListQuery{}.Normalize().Limit
}
