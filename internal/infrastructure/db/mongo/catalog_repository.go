package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fintrackhq/fintrack-api/internal/core/domain"
	"github.com/fintrackhq/fintrack-api/internal/core/ports"
)

const catalogCollection = "catalog_items"

// CatalogRepository stores all four catalog kinds in one collection,
// discriminated by the kind field.
type CatalogRepository struct {
	coll *mongo.Collection
}

func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{coll: db.Collection(catalogCollection)}
}

type catalogDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Kind        string             `bson:"kind"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	Owner       string             `bson:"owner"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d *catalogDoc) toDomain() *domain.CatalogItem {
	return &domain.CatalogItem{
		ID:          d.ID.Hex(),
		Kind:        domain.CatalogKind(d.Kind),
		Name:        d.Name,
		Description: d.Description,
		Owner:       domain.OwnerID(d.Owner),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (r *CatalogRepository) Insert(ctx context.Context, item *domain.CatalogItem) (*domain.CatalogItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := catalogDoc{
		Kind:        string(item.Kind),
		Name:        item.Name,
		Description: item.Description,
		Owner:       item.Owner.String(),
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateName
		}
		return nil, fmt.Errorf("insert catalog item: %w", err)
	}

	out := *item
	out.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &out, nil
}

func (r *CatalogRepository) FindByID(ctx context.Context, kind domain.CatalogKind, id string, owner domain.OwnerID) (*domain.CatalogItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrResourceNotFound
	}

	filter := bson.M{"_id": oid, "kind": string(kind)}
	if !owner.IsZero() {
		filter["owner"] = owner.String()
	}

	var doc catalogDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrResourceNotFound
		}
		return nil, fmt.Errorf("find catalog item: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CatalogRepository) List(ctx context.Context, kind domain.CatalogKind, owner domain.OwnerID, q ports.ListQuery) ([]*domain.CatalogItem, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"kind": string(kind), "owner": owner.String()}
	if q.Search != "" {
		filter["name"] = primitive.Regex{Pattern: q.Search, Options: "i"}
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count catalog items: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list catalog items: %w", err)
	}
	defer cur.Close(ctx)

	var items []*domain.CatalogItem
	for cur.Next(ctx) {
		var doc catalogDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode catalog item: %w", err)
		}
		items = append(items, doc.toDomain())
	}
	return items, total, cur.Err()
}

func (r *CatalogRepository) Update(ctx context.Context, item *domain.CatalogItem) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(item.ID)
	if err != nil {
		return domain.ErrResourceNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "kind": string(item.Kind)},
		bson.M{"$set": bson.M{
			"name":        item.Name,
			"description": item.Description,
			"updated_at":  item.UpdatedAt,
		}},
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("update catalog item: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}

func (r *CatalogRepository) Delete(ctx context.Context, kind domain.CatalogKind, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrResourceNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "kind": string(kind)})
	if err != nil {
		return fmt.Errorf("delete catalog item: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}

// EnsureIndexes creates the owner+kind+name index. Unique: an owner cannot
// hold two items of the same kind with the same name.
func (r *CatalogRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "owner", Value: 1},
			{Key: "kind", Value: 1},
			{Key: "name", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}
