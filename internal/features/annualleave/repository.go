package annualleave

import (
	"context"
	"fmt"

	"go-hr/internal/common/models"
	"go-hr/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BalanceRepository interface {
	List(ctx context.Context, f Filter) ([]Balance, int64, error)
	Find(ctx context.Context, key Key) (*Balance, error)
	Create(ctx context.Context, b *Balance) error
	Update(ctx context.Context, key Key, b *Balance) error
	Delete(ctx context.Context, key Key) error
	Upsert(ctx context.Context, b *Balance) (bool, error)
	ByYear(ctx context.Context, year string) ([]Balance, error)
	EnsureIndexes(ctx context.Context) error
}

type BalanceRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewBalanceRepository(mongodb *database.MongodbDB) BalanceRepository {
	return &BalanceRepositoryImpl{
		Collection: mongodb.DB.Collection("annual_leave"),
	}
}

func keyFilter(key Key) bson.M {
	return bson.M{"emp_id": key.EmpID, "year": key.Year, "leave_type": key.LeaveType}
}

func buildFilter(f Filter) bson.M {
	filter := bson.M{}
	if f.Search != "" {
		filter = database.SearchRegex(f.Search, "emp_id", "remark")
	}
	if f.EmpID != "" {
		filter["emp_id"] = f.EmpID
	}
	if f.Year != "" {
		filter["year"] = f.Year
	}
	if f.LeaveType != "" {
		filter["leave_type"] = f.LeaveType
	}
	return filter
}

func (r *BalanceRepositoryImpl) List(ctx context.Context, f Filter) ([]Balance, int64, error) {
	return database.FindPage[Balance](ctx, r.Collection, buildFilter(f), f.ListQuery, "-year")
}

func (r *BalanceRepositoryImpl) Find(ctx context.Context, key Key) (*Balance, error) {
	var b Balance
	if err := r.Collection.FindOne(ctx, keyFilter(key)).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("balance %s/%s/%s: %w", key.EmpID, key.Year, key.LeaveType, models.ErrNotFound)
		}
		return nil, err
	}
	return &b, nil
}

func (r *BalanceRepositoryImpl) Create(ctx context.Context, b *Balance) error {
	key := Key{EmpID: b.EmpID, Year: b.Year, LeaveType: b.LeaveType}
	count, err := r.Collection.CountDocuments(ctx, keyFilter(key))
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("balance %s/%s/%s: %w", key.EmpID, key.Year, key.LeaveType, models.ErrDuplicate)
	}
	_, err = r.Collection.InsertOne(ctx, b)
	return err
}

func (r *BalanceRepositoryImpl) Update(ctx context.Context, key Key, b *Balance) error {
	b.EmpID, b.Year, b.LeaveType = key.EmpID, key.Year, key.LeaveType
	result, err := r.Collection.ReplaceOne(ctx, keyFilter(key), b)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("balance %s/%s/%s: %w", key.EmpID, key.Year, key.LeaveType, models.ErrNotFound)
	}
	return nil
}

func (r *BalanceRepositoryImpl) Delete(ctx context.Context, key Key) error {
	result, err := r.Collection.DeleteOne(ctx, keyFilter(key))
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("balance %s/%s/%s: %w", key.EmpID, key.Year, key.LeaveType, models.ErrNotFound)
	}
	return nil
}

// Upsert is used by the rollover job so re-running it is harmless.
func (r *BalanceRepositoryImpl) Upsert(ctx context.Context, b *Balance) (bool, error) {
	key := Key{EmpID: b.EmpID, Year: b.Year, LeaveType: b.LeaveType}
	result, err := r.Collection.ReplaceOne(ctx, keyFilter(key), b, options.Replace().SetUpsert(true))
	if err != nil {
		return false, err
	}
	return result.UpsertedCount > 0, nil
}

func (r *BalanceRepositoryImpl) ByYear(ctx context.Context, year string) ([]Balance, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{"year": year})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var balances []Balance
	if err := cursor.All(ctx, &balances); err != nil {
		return nil, err
	}
	return balances, nil
}

func (r *BalanceRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "emp_id", Value: 1},
			{Key: "year", Value: 1},
			{Key: "leave_type", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}
