package codetable

import (
	"context"
	"fmt"

	"go-hr/internal/common/models"
	"go-hr/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CodeRepository interface {
	List(ctx context.Context, f Filter) ([]Code, int64, error)
	Find(ctx context.Context, key Key) (*Code, error)
	Create(ctx context.Context, code *Code) error
	Update(ctx context.Context, key Key, code *Code) error
	Delete(ctx context.Context, key Key) error
	ActiveByCategory(ctx context.Context, codeCode string) ([]Code, error)
	EnsureIndexes(ctx context.Context) error
}

type CodeRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewCodeRepository(mongodb *database.MongodbDB) CodeRepository {
	return &CodeRepositoryImpl{
		Collection: mongodb.DB.Collection("code_table"),
	}
}

func keyFilter(key Key) bson.M {
	return bson.M{"code_code": key.CodeCode, "code_subcode": key.CodeSubcode}
}

func buildFilter(f Filter) bson.M {
	filter := bson.M{}
	if f.Search != "" {
		filter = database.SearchRegex(f.Search, "code_subname", "code_content", "remark")
	}
	if f.CodeCode != "" {
		filter["code_code"] = f.CodeCode
	}
	if f.UsedMark != "" {
		filter["used_mark"] = f.UsedMark
	}
	return filter
}

func (r *CodeRepositoryImpl) List(ctx context.Context, f Filter) ([]Code, int64, error) {
	return database.FindPage[Code](ctx, r.Collection, buildFilter(f), f.ListQuery, "code_code")
}

func (r *CodeRepositoryImpl) Find(ctx context.Context, key Key) (*Code, error) {
	var code Code
	if err := r.Collection.FindOne(ctx, keyFilter(key)).Decode(&code); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("code %s/%s: %w", key.CodeCode, key.CodeSubcode, models.ErrNotFound)
		}
		return nil, err
	}
	return &code, nil
}

func (r *CodeRepositoryImpl) Create(ctx context.Context, code *Code) error {
	key := Key{CodeCode: code.CodeCode, CodeSubcode: code.CodeSubcode}
	count, err := r.Collection.CountDocuments(ctx, keyFilter(key))
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("code %s/%s: %w", key.CodeCode, key.CodeSubcode, models.ErrDuplicate)
	}
	_, err = r.Collection.InsertOne(ctx, code)
	return err
}

func (r *CodeRepositoryImpl) Update(ctx context.Context, key Key, code *Code) error {
	code.CodeCode, code.CodeSubcode = key.CodeCode, key.CodeSubcode
	result, err := r.Collection.ReplaceOne(ctx, keyFilter(key), code)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("code %s/%s: %w", key.CodeCode, key.CodeSubcode, models.ErrNotFound)
	}
	return nil
}

func (r *CodeRepositoryImpl) Delete(ctx context.Context, key Key) error {
	result, err := r.Collection.DeleteOne(ctx, keyFilter(key))
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("code %s/%s: %w", key.CodeCode, key.CodeSubcode, models.ErrNotFound)
	}
	return nil
}

// ActiveByCategory lists the in-use entries of one category ordered by
// subcode, the shape dropdowns consume.
func (r *CodeRepositoryImpl) ActiveByCategory(ctx context.Context, codeCode string) ([]Code, error) {
	cursor, err := r.Collection.Find(ctx,
		bson.M{"code_code": codeCode, "used_mark": "1"},
		options.Find().SetSort(bson.D{{Key: "code_subcode", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	codes := []Code{}
	if err := cursor.All(ctx, &codes); err != nil {
		return nil, err
	}
	return codes, nil
}

func (r *CodeRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "code_code", Value: 1},
			{Key: "code_subcode", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}
