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

const incomeCollection = "incomes"

type IncomeRepository struct {
	coll *mongo.Collection
}

func NewIncomeRepository(db *mongo.Database) *IncomeRepository {
	return &IncomeRepository{coll: db.Collection(incomeCollection)}
}

type incomeDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Amount        string             `bson:"amount"`
	Date          time.Time          `bson:"date"`
	SourceID      string             `bson:"source_id,omitempty"`
	BankAccountID string             `bson:"bank_account_id,omitempty"`
	Notes         string             `bson:"notes,omitempty"`
	Owner         string             `bson:"owner"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func (d *incomeDoc) toDomain() (*domain.Income, error) {
	amount, err := decimal.NewFromString(d.Amount)
	if err != nil {
		return nil, fmt.Errorf("decode income amount %q: %w", d.Amount, err)
	}
	return &domain.Income{
		ID:            d.ID.Hex(),
		Amount:        amount,
		Date:          d.Date,
		SourceID:      d.SourceID,
		BankAccountID: d.BankAccountID,
		Notes:         d.Notes,
		Owner:         domain.OwnerID(d.Owner),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}, nil
}

func (r *IncomeRepository) Insert(ctx context.Context, i *domain.Income) (*domain.Income, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := incomeDoc{
		Amount:        i.Amount.String(),
		Date:          i.Date.UTC(),
		SourceID:      i.SourceID,
		BankAccountID: i.BankAccountID,
		Notes:         i.Notes,
		Owner:         i.Owner.String(),
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert income: %w", err)
	}

	out := *i
	out.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &out, nil
}

func (r *IncomeRepository) FindByID(ctx context.Context, id string, owner domain.OwnerID) (*domain.Income, error) {
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

	var doc incomeDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrResourceNotFound
		}
		return nil, fmt.Errorf("find income: %w", err)
	}
	return doc.toDomain()
}

func (r *IncomeRepository) List(ctx context.Context, owner domain.OwnerID, q ports.ListQuery, dr ports.DateRange) ([]*domain.Income, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"owner": owner.String()}
	if q.Search != "" {
		filter["notes"] = primitive.Regex{Pattern: q.Search, Options: "i"}
	}
	applyDateRange(filter, dr)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count incomes: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list incomes: %w", err)
	}
	defer cur.Close(ctx)

	var items []*domain.Income
	for cur.Next(ctx) {
		var doc incomeDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode income: %w", err)
		}
		i, err := doc.toDomain()
		if err != nil {
			return nil, 0, err
		}
		items = append(items, i)
	}
	return items, total, cur.Err()
}

func (r *IncomeRepository) Update(ctx context.Context, i *domain.Income) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(i.ID)
	if err != nil {
		return domain.ErrResourceNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"amount":          i.Amount.String(),
			"date":            i.Date.UTC(),
			"source_id":       i.SourceID,
			"bank_account_id": i.BankAccountID,
			"notes":           i.Notes,
			"updated_at":      i.UpdatedAt,
		}},
	)
	if err != nil {
		return fmt.Errorf("update income: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}

func (r *IncomeRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrResourceNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete income: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}

// EnsureIndexes creates the owner+date index backing lists and reports.
func (r *IncomeRepository) EnsureIndexes(ctx context.Context) error {
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
