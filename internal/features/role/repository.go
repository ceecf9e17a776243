package role

import (
	"context"
	"fmt"

	"go-hr/internal/common/models"
	"go-hr/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RoleRepository interface {
	List(ctx context.Context, f Filter) ([]Role, int64, error)
	Find(ctx context.Context, roleID string) (*Role, error)
	Create(ctx context.Context, r *Role) error
	Update(ctx context.Context, roleID string, r *Role) error
	Delete(ctx context.Context, roleID string) error
	Exists(ctx context.Context, roleIDs []string) ([]string, error)
	EnsureIndexes(ctx context.Context) error
}

type RoleRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewRoleRepository(mongodb *database.MongodbDB) RoleRepository {
	return &RoleRepositoryImpl{
		Collection: mongodb.DB.Collection("roles"),
	}
}

func buildFilter(f Filter) bson.M {
	filter := bson.M{}
	if f.Search != "" {
		filter = database.SearchRegex(f.Search, "role_id", "role_name", "description")
	}
	if f.IsActive != nil {
		filter["is_active"] = *f.IsActive
	}
	return filter
}

func (r *RoleRepositoryImpl) List(ctx context.Context, f Filter) ([]Role, int64, error) {
	return database.FindPage[Role](ctx, r.Collection, buildFilter(f), f.ListQuery, "role_id")
}

func (r *RoleRepositoryImpl) Find(ctx context.Context, roleID string) (*Role, error) {
	var role Role
	if err := r.Collection.FindOne(ctx, bson.M{"role_id": roleID}).Decode(&role); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("role %s: %w", roleID, models.ErrNotFound)
		}
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepositoryImpl) Create(ctx context.Context, role *Role) error {
	count, err := r.Collection.CountDocuments(ctx, bson.M{"role_id": role.RoleID})
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("role %s: %w", role.RoleID, models.ErrDuplicate)
	}
	_, err = r.Collection.InsertOne(ctx, role)
	return err
}

func (r *RoleRepositoryImpl) Update(ctx context.Context, roleID string, role *Role) error {
	role.RoleID = roleID
	result, err := r.Collection.ReplaceOne(ctx, bson.M{"role_id": roleID}, role)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("role %s: %w", roleID, models.ErrNotFound)
	}
	return nil
}

func (r *RoleRepositoryImpl) Delete(ctx context.Context, roleID string) error {
	result, err := r.Collection.DeleteOne(ctx, bson.M{"role_id": roleID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("role %s: %w", roleID, models.ErrNotFound)
	}
	return nil
}

// Exists reports which of the given role ids are present, preserving
// input order. User writes validate role assignments through this.
func (r *RoleRepositoryImpl) Exists(ctx context.Context, roleIDs []string) ([]string, error) {
	if len(roleIDs) == 0 {
		return nil, nil
	}
	cursor, err := r.Collection.Find(ctx, bson.M{"role_id": bson.M{"$in": roleIDs}},
		options.Find().SetProjection(bson.M{"role_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	present := make(map[string]bool)
	for cursor.Next(ctx) {
		var role Role
		if err := cursor.Decode(&role); err != nil {
			return nil, err
		}
		present[role.RoleID] = true
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	var found []string
	for _, id := range roleIDs {
		if present[id] {
			found = append(found, id)
		}
	}
	return found, nil
}

func (r *RoleRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "role_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
