package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fintrackhq/fintrack-api/internal/core/domain"
	"github.com/fintrackhq/fintrack-api/internal/core/ports"
)

const budgetCollection = "budgets"

type BudgetRepository struct {
	coll *mongo.Collection
}

func NewBudgetRepository(db *mongo.Database) *BudgetRepository {
	return &BudgetRepository{coll: db.Collection(budgetCollection)}
}

type budgetDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	Amount     string             `bson:"amount"`
	Period     string             `bson:"period"`
	CategoryID string             `bson:"category_id,omitempty"`
	Owner      string             `bson:"owner"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

func (d *budgetDoc) toDomain() (*domain.Budget, error) {
	amount, err := decimal.NewFromString(d.Amount)
	if err != nil {
		return nil, fmt.Errorf("decode budget amount %q: %w", d.Amount, err)
	}
	return &domain.Budget{
		ID:         d.ID.Hex(),
		Name:       d.Name,
		Amount:     amount,
		Period:     domain.BudgetPeriod(d.Period),
		CategoryID: d.CategoryID,
		Owner:      domain.OwnerID(d.Owner),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}, nil
}

func (r *BudgetRepository) Insert(ctx context.Context, b *domain.Budget) (*domain.Budget, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := budgetDoc{
		Name:       b.Name,
		Amount:     b.Amount.String(),
		Period:     string(b.Period),
		CategoryID: b.CategoryID,
		Owner:      b.Owner.String(),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert budget: %w", err)
	}

	out := *b
	out.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &out, nil
}

func (r *BudgetRepository) FindByID(ctx context.Context, id string, owner domain.OwnerID) (*domain.Budget, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrResourceNotFound
	}

	filter := bson.M{"_id": oid}
	if !owner.IsZero() {
		filter["owner"] = owner.String()
	}

	var doc budgetDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrResourceNotFound
		}
		return nil, fmt.Errorf("find budget: %w", err)
	}
	return doc.toDomain()
}

func (r *BudgetRepository) List(ctx context.Context, owner domain.OwnerID, q ports.ListQuery) ([]*domain.Budget, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"owner": owner.String()}
	if q.Search != "" {
		filter["name"] = primitive.Regex{Pattern: q.Search, Options: "i"}
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count budgets: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list budgets: %w", err)
	}
	defer cur.Close(ctx)

	var items []*domain.Budget
	for cur.Next(ctx) {
		var doc budgetDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode budget: %w", err)
		}
		b, err := doc.toDomain()
		if err != nil {
			return nil, 0, err
		}
		items = append(items, b)
	}
	return items, total, cur.Err()
}

func (r *BudgetRepository) Update(ctx context.Context, b *domain.Budget) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(b.ID)
	if err != nil {
		return domain.ErrResourceNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"name":        b.Name,
			"amount":      b.Amount.String(),
			"period":      string(b.Period),
			"category_id": b.CategoryID,
			"updated_at":  b.UpdatedAt,
		}},
	)
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}

func (r *BudgetRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrResourceNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}

// EnsureIndexes creates the owner+name index backing list queries.
func (r *BudgetRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "owner", Value: 1},
			{Key: "name", Value: 1},
		},
	})
	return err
}
