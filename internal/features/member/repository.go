package member

import (
	"context"
	"errors"
	"fmt"

	"go-hr/internal/common/models"
	"go-hr/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// searchFields are the columns free-text search matches against.
var searchFields = []string{"chinese_name", "name", "emp_id", "email", "job_title"}

type MemberRepository interface {
	List(ctx context.Context, f Filter) ([]Member, int64, error)
	FindByEmpID(ctx context.Context, empID string) (*Member, error)
	Create(ctx context.Context, m *Member) error
	Update(ctx context.Context, empID string, m *Member) error
	Delete(ctx context.Context, empID string) error
	Upsert(ctx context.Context, m *Member) (bool, error)
	DeleteAll(ctx context.Context) error
	Divisions(ctx context.Context) ([]string, error)
	NamesByEmpID(ctx context.Context, empIDs []string) (map[string]string, error)
	FindEmpIDsByName(ctx context.Context, name string) ([]string, error)
	EmployedRefs(ctx context.Context, search string) ([]models.MemberRef, error)
	EnsureIndexes(ctx context.Context) error
}

type MemberRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewMemberRepository(mongodb *database.MongodbDB) MemberRepository {
	return &MemberRepositoryImpl{
		Collection: mongodb.DB.Collection("members"),
	}
}

func (r *MemberRepositoryImpl) buildFilter(f Filter) bson.M {
	filter := bson.M{}
	if f.Search != "" {
		filter = database.SearchRegex(f.Search, searchFields...)
	}
	if f.Division != "" {
		filter["division_name"] = f.Division
	}
	if f.IsEmployed != nil {
		filter["is_employed"] = *f.IsEmployed
	}
	if len(f.MemberTypes) > 0 {
		var clauses []bson.M
		for _, t := range f.MemberTypes {
			if field, ok := memberTypeFields[t]; ok {
				clauses = append(clauses, bson.M{field: true})
			}
		}
		if len(clauses) > 0 {
			filter["$and"] = []bson.M{{"$or": clauses}}
		}
	}
	return filter
}

func (r *MemberRepositoryImpl) List(ctx context.Context, f Filter) ([]Member, int64, error) {
	return database.FindPage[Member](ctx, r.Collection, r.buildFilter(f), f.ListQuery, "emp_id")
}

func (r *MemberRepositoryImpl) FindByEmpID(ctx context.Context, empID string) (*Member, error) {
	var m Member
	if err := r.Collection.FindOne(ctx, bson.M{"emp_id": empID}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("employee %s: %w", empID, models.ErrNotFound)
		}
		return nil, err
	}
	return &m, nil
}

func (r *MemberRepositoryImpl) Create(ctx context.Context, m *Member) error {
	count, err := r.Collection.CountDocuments(ctx, bson.M{"emp_id": m.EmpID})
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("employee %s: %w", m.EmpID, models.ErrDuplicate)
	}
	_, err = r.Collection.InsertOne(ctx, m)
	return err
}

func (r *MemberRepositoryImpl) Update(ctx context.Context, empID string, m *Member) error {
	m.EmpID = empID
	result, err := r.Collection.ReplaceOne(ctx, bson.M{"emp_id": empID}, m)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("employee %s: %w", empID, models.ErrNotFound)
	}
	return nil
}

func (r *MemberRepositoryImpl) Delete(ctx context.Context, empID string) error {
	result, err := r.Collection.DeleteOne(ctx, bson.M{"emp_id": empID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("employee %s: %w", empID, models.ErrNotFound)
	}
	return nil
}

// Upsert inserts or replaces by emp_id and reports whether a new document
// was created. Used by the bulk import path.
func (r *MemberRepositoryImpl) Upsert(ctx context.Context, m *Member) (bool, error) {
	result, err := r.Collection.ReplaceOne(ctx, bson.M{"emp_id": m.EmpID}, m, options.Replace().SetUpsert(true))
	if err != nil {
		return false, err
	}
	return result.UpsertedCount > 0, nil
}

func (r *MemberRepositoryImpl) DeleteAll(ctx context.Context) error {
	_, err := r.Collection.DeleteMany(ctx, bson.M{})
	return err
}

func (r *MemberRepositoryImpl) Divisions(ctx context.Context) ([]string, error) {
	raw, err := r.Collection.Distinct(ctx, "division_name", bson.M{"division_name": bson.M{"$ne": ""}})
	if err != nil {
		return nil, err
	}
	divisions := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			divisions = append(divisions, s)
		}
	}
	return divisions, nil
}

// NamesByEmpID resolves display names for a set of employees. Leave
// records store only emp_id, so list responses join names through this.
func (r *MemberRepositoryImpl) NamesByEmpID(ctx context.Context, empIDs []string) (map[string]string, error) {
	if len(empIDs) == 0 {
		return map[string]string{}, nil
	}
	cursor, err := r.Collection.Find(ctx, bson.M{"emp_id": bson.M{"$in": empIDs}},
		options.Find().SetProjection(bson.M{"emp_id": 1, "chinese_name": 1, "name": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	names := make(map[string]string, len(empIDs))
	for cursor.Next(ctx) {
		var m Member
		if err := cursor.Decode(&m); err != nil {
			return nil, err
		}
		if m.ChineseName != "" {
			names[m.EmpID] = m.ChineseName
		} else {
			names[m.EmpID] = m.Name
		}
	}
	return names, cursor.Err()
}

// FindEmpIDsByName matches either name column by substring.
func (r *MemberRepositoryImpl) FindEmpIDsByName(ctx context.Context, name string) ([]string, error) {
	filter := database.SearchRegex(name, "chinese_name", "name")
	cursor, err := r.Collection.Find(ctx, filter, options.Find().SetProjection(bson.M{"emp_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var m Member
		if err := cursor.Decode(&m); err != nil {
			return nil, err
		}
		ids = append(ids, m.EmpID)
	}
	return ids, cursor.Err()
}

// EmployedRefs lists employed members matching the term by id or name,
// ordered by emp_id. The account picker filters these against existing
// accounts.
func (r *MemberRepositoryImpl) EmployedRefs(ctx context.Context, search string) ([]models.MemberRef, error) {
	filter := bson.M{"is_employed": true}
	if search != "" {
		for key, clause := range database.SearchRegex(search, "emp_id", "chinese_name") {
			filter[key] = clause
		}
	}
	opts := options.Find().
		SetProjection(bson.M{"emp_id": 1, "chinese_name": 1, "name": 1, "job_title": 1}).
		SetSort(bson.D{{Key: "emp_id", Value: 1}})
	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	refs := []models.MemberRef{}
	for cursor.Next(ctx) {
		var m Member
		if err := cursor.Decode(&m); err != nil {
			return nil, err
		}
		name := m.ChineseName
		if name == "" {
			name = m.Name
		}
		refs = append(refs, models.MemberRef{EmpID: m.EmpID, Name: name, JobTitle: m.JobTitle})
	}
	return refs, cursor.Err()
}

func (r *MemberRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "emp_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
