package project

import (
	"context"
	"fmt"

	"go-hr/internal/common/models"
	"go-hr/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var searchFields = []string{"project_no", "name", "description"}

type ProjectRepository interface {
	List(ctx context.Context, f Filter) ([]Project, int64, error)
	FindByNo(ctx context.Context, projectNo string) (*Project, error)
	Create(ctx context.Context, p *Project) error
	Update(ctx context.Context, projectNo string, p *Project) error
	Delete(ctx context.Context, projectNo string) error
	EnsureIndexes(ctx context.Context) error
}

type ProjectRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewProjectRepository(mongodb *database.MongodbDB) ProjectRepository {
	return &ProjectRepositoryImpl{
		Collection: mongodb.DB.Collection("projects"),
	}
}

func buildFilter(f Filter) bson.M {
	filter := bson.M{}
	if f.Search != "" {
		filter = database.SearchRegex(f.Search, searchFields...)
	}
	if f.Owner != "" {
		filter["owner_emp_id"] = f.Owner
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	return filter
}

func (r *ProjectRepositoryImpl) List(ctx context.Context, f Filter) ([]Project, int64, error) {
	return database.FindPage[Project](ctx, r.Collection, buildFilter(f), f.ListQuery, "project_no")
}

func (r *ProjectRepositoryImpl) FindByNo(ctx context.Context, projectNo string) (*Project, error) {
	var p Project
	if err := r.Collection.FindOne(ctx, bson.M{"project_no": projectNo}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("project %s: %w", projectNo, models.ErrNotFound)
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepositoryImpl) Create(ctx context.Context, p *Project) error {
	count, err := r.Collection.CountDocuments(ctx, bson.M{"project_no": p.ProjectNo})
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("project %s: %w", p.ProjectNo, models.ErrDuplicate)
	}
	_, err = r.Collection.InsertOne(ctx, p)
	return err
}

func (r *ProjectRepositoryImpl) Update(ctx context.Context, projectNo string, p *Project) error {
	p.ProjectNo = projectNo
	result, err := r.Collection.ReplaceOne(ctx, bson.M{"project_no": projectNo}, p)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("project %s: %w", projectNo, models.ErrNotFound)
	}
	return nil
}

func (r *ProjectRepositoryImpl) Delete(ctx context.Context, projectNo string) error {
	result, err := r.Collection.DeleteOne(ctx, bson.M{"project_no": projectNo})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("project %s: %w", projectNo, models.ErrNotFound)
	}
	return nil
}

func (r *ProjectRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "project_no", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
