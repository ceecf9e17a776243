package attendance

import (
	"context"
	"fmt"

	"go-hr/internal/common/models"
	"go-hr/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AttendanceRepository interface {
	List(ctx context.Context, f Filter, empIDs []string) ([]Record, int64, error)
	Find(ctx context.Context, key Key) (*Record, error)
	Create(ctx context.Context, rec *Record) error
	Update(ctx context.Context, key Key, rec *Record) error
	Delete(ctx context.Context, key Key) error
	EnsureIndexes(ctx context.Context) error
}

type AttendanceRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewAttendanceRepository(mongodb *database.MongodbDB) AttendanceRepository {
	return &AttendanceRepositoryImpl{
		Collection: mongodb.DB.Collection("attendance"),
	}
}

func keyFilter(key Key) bson.M {
	return bson.M{"emp_id": key.EmpID, "leave_date": key.LeaveDate, "leave_type": key.LeaveType}
}

// buildFilter translates the query filters. empIDs is the resolved set of
// employees matching an emp_name search; a non-nil empty slice means the
// name matched nobody and the result must be empty.
func buildFilter(f Filter, empIDs []string) bson.M {
	filter := bson.M{}
	if f.EmpID != "" {
		filter["emp_id"] = f.EmpID
	} else if empIDs != nil {
		filter["emp_id"] = bson.M{"$in": empIDs}
	}
	if f.LeaveType != "" {
		filter["leave_type"] = f.LeaveType
	}
	dateRange := bson.M{}
	if f.StartDate != "" {
		dateRange["$gte"] = f.StartDate
	}
	if f.EndDate != "" {
		dateRange["$lte"] = f.EndDate
	}
	if len(dateRange) > 0 {
		filter["leave_date"] = dateRange
	}
	return filter
}

func (r *AttendanceRepositoryImpl) List(ctx context.Context, f Filter, empIDs []string) ([]Record, int64, error) {
	return database.FindPage[Record](ctx, r.Collection, buildFilter(f, empIDs), f.ListQuery, "-leave_date")
}

func (r *AttendanceRepositoryImpl) Find(ctx context.Context, key Key) (*Record, error) {
	var rec Record
	if err := r.Collection.FindOne(ctx, keyFilter(key)).Decode(&rec); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("leave record %s/%s/%s: %w", key.EmpID, key.LeaveDate, key.LeaveType, models.ErrNotFound)
		}
		return nil, err
	}
	return &rec, nil
}

func (r *AttendanceRepositoryImpl) Create(ctx context.Context, rec *Record) error {
	key := Key{EmpID: rec.EmpID, LeaveDate: rec.LeaveDate, LeaveType: rec.LeaveType}
	count, err := r.Collection.CountDocuments(ctx, keyFilter(key))
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("leave record %s/%s/%s: %w", key.EmpID, key.LeaveDate, key.LeaveType, models.ErrDuplicate)
	}
	_, err = r.Collection.InsertOne(ctx, rec)
	return err
}

func (r *AttendanceRepositoryImpl) Update(ctx context.Context, key Key, rec *Record) error {
	rec.EmpID, rec.LeaveDate, rec.LeaveType = key.EmpID, key.LeaveDate, key.LeaveType
	result, err := r.Collection.ReplaceOne(ctx, keyFilter(key), rec)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("leave record %s/%s/%s: %w", key.EmpID, key.LeaveDate, key.LeaveType, models.ErrNotFound)
	}
	return nil
}

func (r *AttendanceRepositoryImpl) Delete(ctx context.Context, key Key) error {
	result, err := r.Collection.DeleteOne(ctx, keyFilter(key))
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("leave record %s/%s/%s: %w", key.EmpID, key.LeaveDate, key.LeaveType, models.ErrNotFound)
	}
	return nil
}

func (r *AttendanceRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "emp_id", Value: 1},
			{Key: "leave_date", Value: 1},
			{Key: "leave_type", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}
