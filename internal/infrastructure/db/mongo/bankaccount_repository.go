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

const bankAccountCollection = "bank_accounts"

type BankAccountRepository struct {
	coll *mongo.Collection
}

func NewBankAccountRepository(db *mongo.Database) *BankAccountRepository {
	return &BankAccountRepository{coll: db.Collection(bankAccountCollection)}
}

// Monetary amounts are persisted as decimal strings so no precision is lost
// in transit through BSON doubles.
type bankAccountDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	BankName       string             `bson:"bank_name"`
	AccountNumber  string             `bson:"account_number"`
	OpeningBalance string             `bson:"opening_balance"`
	Owner          string             `bson:"owner"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func (d *bankAccountDoc) toDomain() (*domain.BankAccount, error) {
	balance, err := decimal.NewFromString(d.OpeningBalance)
	if err != nil {
		return nil, fmt.Errorf("decode opening balance %q: %w", d.OpeningBalance, err)
	}
	return &domain.BankAccount{
		ID:             d.ID.Hex(),
		Name:           d.Name,
		BankName:       d.BankName,
		AccountNumber:  d.AccountNumber,
		OpeningBalance: balance,
		Owner:          domain.OwnerID(d.Owner),
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}, nil
}

func (r *BankAccountRepository) Insert(ctx context.Context, acc *domain.BankAccount) (*domain.BankAccount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bankAccountDoc{
		Name:           acc.Name,
		BankName:       acc.BankName,
		AccountNumber:  acc.AccountNumber,
		OpeningBalance: acc.OpeningBalance.String(),
		Owner:          acc.Owner.String(),
		CreatedAt:      acc.CreatedAt,
		UpdatedAt:      acc.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert bank account: %w", err)
	}

	out := *acc
	out.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &out, nil
}

func (r *BankAccountRepository) FindByID(ctx context.Context, id string, owner domain.OwnerID) (*domain.BankAccount, error) {
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

	var doc bankAccountDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrResourceNotFound
		}
		return nil, fmt.Errorf("find bank account: %w", err)
	}
	return doc.toDomain()
}

func (r *BankAccountRepository) List(ctx context.Context, owner domain.OwnerID, q ports.ListQuery) ([]*domain.BankAccount, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"owner": owner.String()}
	if q.Search != "" {
		filter["name"] = primitive.Regex{Pattern: q.Search, Options: "i"}
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count bank accounts: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list bank accounts: %w", err)
	}
	defer cur.Close(ctx)

	var items []*domain.BankAccount
	for cur.Next(ctx) {
		var doc bankAccountDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode bank account: %w", err)
		}
		acc, err := doc.toDomain()
		if err != nil {
			return nil, 0, err
		}
		items = append(items, acc)
	}
	return items, total, cur.Err()
}

func (r *BankAccountRepository) Update(ctx context.Context, acc *domain.BankAccount) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(acc.ID)
	if err != nil {
		return domain.ErrResourceNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"name":            acc.Name,
			"bank_name":       acc.BankName,
			"account_number":  acc.AccountNumber,
			"opening_balance": acc.OpeningBalance.String(),
			"updated_at":      acc.UpdatedAt,
		}},
	)
	if err != nil {
		return fmt.Errorf("update bank account: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}

func (r *BankAccountRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrResourceNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete bank account: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}

// EnsureIndexes creates the owner+name index backing list queries.
func (r *BankAccountRepository) EnsureIndexes(ctx context.Context) error {
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
