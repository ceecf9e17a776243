package sysuser

import (
	"context"
	"fmt"
	"time"

	"go-hr/internal/common/models"
	"go-hr/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepository interface {
	List(ctx context.Context, f Filter, empIDs []string) ([]User, int64, error)
	Find(ctx context.Context, userID string) (*User, error)
	Create(ctx context.Context, u *User) error
	Patch(ctx context.Context, userID string, set bson.M) error
	Delete(ctx context.Context, userID string) error
	TouchLogin(ctx context.Context, userID string, at time.Time) error
	UserIDs(ctx context.Context) ([]string, error)
	EnsureIndexes(ctx context.Context) error
}

type UserRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewUserRepository(mongodb *database.MongodbDB) UserRepository {
	return &UserRepositoryImpl{
		Collection: mongodb.DB.Collection("sys_users"),
	}
}

// List filters by user id substring or by the resolved employee ids of a
// name search. empIDs carries the name matches; nil means no name filter.
func (r *UserRepositoryImpl) List(ctx context.Context, f Filter, empIDs []string) ([]User, int64, error) {
	filter := bson.M{}
	if f.Search != "" {
		clauses := []bson.M{database.SearchRegex(f.Search, "user_id")}
		if empIDs != nil {
			clauses = append(clauses, bson.M{"user_id": bson.M{"$in": empIDs}})
		}
		filter = bson.M{"$or": clauses}
	}
	return database.FindPage[User](ctx, r.Collection, filter, f.ListQuery, "-created_at")
}

func (r *UserRepositoryImpl) Find(ctx context.Context, userID string) (*User, error) {
	var u User
	if err := r.Collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user %s: %w", userID, models.ErrNotFound)
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepositoryImpl) Create(ctx context.Context, u *User) error {
	count, err := r.Collection.CountDocuments(ctx, bson.M{"user_id": u.UserID})
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("user %s: %w", u.UserID, models.ErrDuplicate)
	}
	_, err = r.Collection.InsertOne(ctx, u)
	return err
}

func (r *UserRepositoryImpl) Patch(ctx context.Context, userID string, set bson.M) error {
	result, err := r.Collection.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", userID, models.ErrNotFound)
	}
	return nil
}

func (r *UserRepositoryImpl) Delete(ctx context.Context, userID string) error {
	result, err := r.Collection.DeleteOne(ctx, bson.M{"user_id": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("user %s: %w", userID, models.ErrNotFound)
	}
	return nil
}

func (r *UserRepositoryImpl) TouchLogin(ctx context.Context, userID string, at time.Time) error {
	_, err := r.Collection.UpdateOne(ctx, bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"last_login_at": at}})
	return err
}

// UserIDs returns every account id, for the available-members picker.
func (r *UserRepositoryImpl) UserIDs(ctx context.Context) ([]string, error) {
	raw, err := r.Collection.Distinct(ctx, "user_id", bson.M{})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *UserRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
