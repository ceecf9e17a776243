package menu

import (
	"context"
	"fmt"

	"go-hr/internal/common/models"
	"go-hr/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MenuRepository interface {
	All(ctx context.Context) ([]Menu, error)
	Find(ctx context.Context, menuID string) (*Menu, error)
	Children(ctx context.Context, menuID string) ([]Menu, error)
	Create(ctx context.Context, m *Menu) error
	Patch(ctx context.Context, menuID string, set bson.M) error
	Delete(ctx context.Context, menuID string) error
	Detach(ctx context.Context, menuID string) error
	EnsureIndexes(ctx context.Context) error
}

type MenuRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewMenuRepository(mongodb *database.MongodbDB) MenuRepository {
	return &MenuRepositoryImpl{
		Collection: mongodb.DB.Collection("menus"),
	}
}

func (r *MenuRepositoryImpl) All(ctx context.Context) ([]Menu, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "sort_order", Value: 1}, {Key: "menu_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	menus := []Menu{}
	if err := cursor.All(ctx, &menus); err != nil {
		return nil, err
	}
	return menus, nil
}

func (r *MenuRepositoryImpl) Find(ctx context.Context, menuID string) (*Menu, error) {
	var m Menu
	if err := r.Collection.FindOne(ctx, bson.M{"menu_id": menuID}).Decode(&m); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("menu %s: %w", menuID, models.ErrNotFound)
		}
		return nil, err
	}
	return &m, nil
}

func (r *MenuRepositoryImpl) Children(ctx context.Context, menuID string) ([]Menu, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{"parent_menu_id": menuID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	menus := []Menu{}
	if err := cursor.All(ctx, &menus); err != nil {
		return nil, err
	}
	return menus, nil
}

func (r *MenuRepositoryImpl) Create(ctx context.Context, m *Menu) error {
	count, err := r.Collection.CountDocuments(ctx, bson.M{"menu_id": m.ID})
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("menu %s: %w", m.ID, models.ErrDuplicate)
	}
	_, err = r.Collection.InsertOne(ctx, m)
	return err
}

// Patch applies a partial update; the caller builds the $set document so
// an explicit null parent (detach) survives the trip.
func (r *MenuRepositoryImpl) Patch(ctx context.Context, menuID string, set bson.M) error {
	result, err := r.Collection.UpdateOne(ctx, bson.M{"menu_id": menuID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("menu %s: %w", menuID, models.ErrNotFound)
	}
	return nil
}

func (r *MenuRepositoryImpl) Delete(ctx context.Context, menuID string) error {
	result, err := r.Collection.DeleteOne(ctx, bson.M{"menu_id": menuID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("menu %s: %w", menuID, models.ErrNotFound)
	}
	return nil
}

// Detach clears the parent link, leaving the node unmounted.
func (r *MenuRepositoryImpl) Detach(ctx context.Context, menuID string) error {
	_, err := r.Collection.UpdateOne(ctx, bson.M{"menu_id": menuID},
		bson.M{"$set": bson.M{"parent_menu_id": ""}})
	return err
}

func (r *MenuRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "menu_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
