package database

import (
	"context"
	"regexp"

	"go-hr/internal/common/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FindPage runs the shared count+find+sort+skip+limit sequence every list
// repository needs. A zero PageSize fetches the whole filtered set (the
// export path). fallbackSort orders rows when no sort field is active; a
// leading "-" sorts the fallback descending.
func FindPage[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, q models.ListQuery, fallbackSort string) ([]T, int64, error) {
	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	fallbackDir := 1
	if len(fallbackSort) > 0 && fallbackSort[0] == '-' {
		fallbackSort = fallbackSort[1:]
		fallbackDir = -1
	}
	sort := bson.D{{Key: fallbackSort, Value: fallbackDir}}
	if q.SortBy != "" {
		sort = bson.D{{Key: q.SortBy, Value: q.SortValue()}}
	}

	opts := options.Find().SetSort(sort)
	if q.PageSize > 0 {
		opts = opts.SetSkip(q.Offset()).SetLimit(int64(q.PageSize))
	}

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var items []T
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// SearchRegex builds the case-insensitive substring clause used by
// free-text search across multiple fields. The term is quoted so user
// input can never act as a pattern.
func SearchRegex(term string, fields ...string) bson.M {
	pattern := regexp.QuoteMeta(term)
	clauses := make([]bson.M, 0, len(fields))
	for _, f := range fields {
		clauses = append(clauses, bson.M{f: bson.M{"$regex": pattern, "$options": "i"}})
	}
	return bson.M{"$or": clauses}
}
