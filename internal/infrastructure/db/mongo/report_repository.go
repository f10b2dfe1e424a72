package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fintrackhq/fintrack-api/internal/core/domain"
	"github.com/fintrackhq/fintrack-api/internal/core/ports"
)

// ReportRepository runs the aggregation pipelines behind reports and the
// dashboard. Amounts are stored as decimal strings, so pipelines convert
// with $toDecimal before summing.
type ReportRepository struct {
	db *mongo.Database
}

func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{db: db}
}

type monthTotalRow struct {
	Month int                  `bson:"_id"`
	Total primitive.Decimal128 `bson:"total"`
}

type categoryTotalRow struct {
	CategoryID string               `bson:"_id"`
	Total      primitive.Decimal128 `bson:"total"`
	Count      int64                `bson:"count"`
}

func (r *ReportRepository) MonthlyExpenseTotals(ctx context.Context, owner domain.OwnerID, year int) (map[time.Month]decimal.Decimal, error) {
	return r.monthlyTotals(ctx, expenseCollection, owner, year)
}

func (r *ReportRepository) MonthlyIncomeTotals(ctx context.Context, owner domain.OwnerID, year int) (map[time.Month]decimal.Decimal, error) {
	return r.monthlyTotals(ctx, incomeCollection, owner, year)
}

func (r *ReportRepository) monthlyTotals(ctx context.Context, collection string, owner domain.OwnerID, year int) (map[time.Month]decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"owner": owner.String(),
			"date":  bson.M{"$gte": from, "$lt": to},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$month": "$date"},
			"total": bson.M{"$sum": bson.M{"$toDecimal": "$amount"}},
		}}},
	}

	cur, err := r.db.Collection(collection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("monthly totals (%s): %w", collection, err)
	}
	defer cur.Close(ctx)

	totals := make(map[time.Month]decimal.Decimal, 12)
	for cur.Next(ctx) {
		var row monthTotalRow
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode monthly total: %w", err)
		}
		total, err := decimal.NewFromString(row.Total.String())
		if err != nil {
			return nil, fmt.Errorf("parse monthly total %q: %w", row.Total.String(), err)
		}
		totals[time.Month(row.Month)] = total
	}
	return totals, cur.Err()
}

func (r *ReportRepository) ExpenseCount(ctx context.Context, owner domain.OwnerID, dr ports.DateRange) (int64, error) {
	return r.countInRange(ctx, expenseCollection, owner, dr)
}

func (r *ReportRepository) IncomeCount(ctx context.Context, owner domain.OwnerID, dr ports.DateRange) (int64, error) {
	return r.countInRange(ctx, incomeCollection, owner, dr)
}

func (r *ReportRepository) countInRange(ctx context.Context, collection string, owner domain.OwnerID, dr ports.DateRange) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"owner": owner.String()}
	applyDateRange(filter, dr)

	total, err := r.db.Collection(collection).CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return total, nil
}

func (r *ReportRepository) ExpensesByCategory(ctx context.Context, owner domain.OwnerID, year int, month time.Month) ([]domain.CategoryTotal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"owner": owner.String(),
			"date":  bson.M{"$gte": from, "$lt": to},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$category_id",
			"total": bson.M{"$sum": bson.M{"$toDecimal": "$amount"}},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "total", Value: -1}}}},
	}

	cur, err := r.db.Collection(expenseCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("expenses by category: %w", err)
	}
	defer cur.Close(ctx)

	var rows []domain.CategoryTotal
	for cur.Next(ctx) {
		var row categoryTotalRow
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode category total: %w", err)
		}
		total, err := decimal.NewFromString(row.Total.String())
		if err != nil {
			return nil, fmt.Errorf("parse category total %q: %w", row.Total.String(), err)
		}
		rows = append(rows, domain.CategoryTotal{
			CategoryID: row.CategoryID,
			Total:      total,
			Count:      row.Count,
		})
	}
	return rows, cur.Err()
}
