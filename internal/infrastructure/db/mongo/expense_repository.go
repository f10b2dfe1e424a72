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

const expenseCollection = "expenses"

type ExpenseRepository struct {
	coll *mongo.Collection
}

func NewExpenseRepository(db *mongo.Database) *ExpenseRepository {
	return &ExpenseRepository{coll: db.Collection(expenseCollection)}
}

type expenseDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Amount          string             `bson:"amount"`
	Date            time.Time          `bson:"date"`
	CategoryID      string             `bson:"category_id,omitempty"`
	PaymentMethodID string             `bson:"payment_method_id,omitempty"`
	TagIDs          []string           `bson:"tag_ids,omitempty"`
	Notes           string             `bson:"notes,omitempty"`
	Owner           string             `bson:"owner"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

func (d *expenseDoc) toDomain() (*domain.Expense, error) {
	amount, err := decimal.NewFromString(d.Amount)
	if err != nil {
		return nil, fmt.Errorf("decode expense amount %q: %w", d.Amount, err)
	}
	return &domain.Expense{
		ID:              d.ID.Hex(),
		Amount:          amount,
		Date:            d.Date,
		CategoryID:      d.CategoryID,
		PaymentMethodID: d.PaymentMethodID,
		TagIDs:          d.TagIDs,
		Notes:           d.Notes,
		Owner:           domain.OwnerID(d.Owner),
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}, nil
}

func (r *ExpenseRepository) Insert(ctx context.Context, e *domain.Expense) (*domain.Expense, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := expenseDoc{
		Amount:          e.Amount.String(),
		Date:            e.Date.UTC(),
		CategoryID:      e.CategoryID,
		PaymentMethodID: e.PaymentMethodID,
		TagIDs:          e.TagIDs,
		Notes:           e.Notes,
		Owner:           e.Owner.String(),
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert expense: %w", err)
	}

	out := *e
	out.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &out, nil
}

func (r *ExpenseRepository) FindByID(ctx context.Context, id string, owner domain.OwnerID) (*domain.Expense, error) {
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

	var doc expenseDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrResourceNotFound
		}
		return nil, fmt.Errorf("find expense: %w", err)
	}
	return doc.toDomain()
}

func (r *ExpenseRepository) List(ctx context.Context, owner domain.OwnerID, q ports.ListQuery, dr ports.DateRange) ([]*domain.Expense, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"owner": owner.String()}
	if q.Search != "" {
		filter["notes"] = primitive.Regex{Pattern: q.Search, Options: "i"}
	}
	applyDateRange(filter, dr)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count expenses: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list expenses: %w", err)
	}
	defer cur.Close(ctx)

	var items []*domain.Expense
	for cur.Next(ctx) {
		var doc expenseDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode expense: %w", err)
		}
		e, err := doc.toDomain()
		if err != nil {
			return nil, 0, err
		}
		items = append(items, e)
	}
	return items, total, cur.Err()
}

func (r *ExpenseRepository) Update(ctx context.Context, e *domain.Expense) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(e.ID)
	if err != nil {
		return domain.ErrResourceNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"amount":            e.Amount.String(),
			"date":              e.Date.UTC(),
			"category_id":       e.CategoryID,
			"payment_method_id": e.PaymentMethodID,
			"tag_ids":           e.TagIDs,
			"notes":             e.Notes,
			"updated_at":        e.UpdatedAt,
		}},
	)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrResourceNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}

// EnsureIndexes creates the owner+date index backing lists and reports.
func (r *ExpenseRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "owner", Value: 1},
			{Key: "date", Value: -1},
		},
	})
	return err
}

// applyDateRange adds inclusive date bounds to a filter when set.
func applyDateRange(filter bson.M, dr ports.DateRange) {
	bounds := bson.M{}
	if !dr.From.IsZero() {
		bounds["$gte"] = dr.From.UTC()
	}
	if !dr.To.IsZero() {
		bounds["$lte"] = dr.To.UTC()
	}
	if len(bounds) > 0 {
		filter["date"] = bounds
	}
}
