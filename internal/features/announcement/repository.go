package announcement

import (
	"context"
	"fmt"

	"go-hr/internal/common/models"
	"go-hr/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AnnouncementRepository interface {
	List(ctx context.Context, f Filter) ([]Announcement, int64, error)
	ActiveWithin(ctx context.Context, today string) ([]Announcement, error)
	Find(ctx context.Context, id string) (*Announcement, error)
	Create(ctx context.Context, a *Announcement) error
	Update(ctx context.Context, id string, a *Announcement) error
	Delete(ctx context.Context, id string) error
	MarkRead(ctx context.Context, id, userID string) error
	DeactivateExpired(ctx context.Context, today string) (int64, error)
	CreateAttachment(ctx context.Context, att *Attachment) error
	AttachmentsFor(ctx context.Context, announcementID string) ([]Attachment, error)
	FindAttachment(ctx context.Context, attachmentID string) (*Attachment, error)
	DeleteAttachment(ctx context.Context, attachmentID string) error
	DeleteAttachmentsFor(ctx context.Context, announcementID string) error
	EnsureIndexes(ctx context.Context) error
}

type AnnouncementRepositoryImpl struct {
	Collection  *mongo.Collection
	Attachments *mongo.Collection
}

func NewAnnouncementRepository(mongodb *database.MongodbDB) AnnouncementRepository {
	return &AnnouncementRepositoryImpl{
		Collection:  mongodb.DB.Collection("announcements"),
		Attachments: mongodb.DB.Collection("announcement_attachments"),
	}
}

// pinnedFirst orders boards the way people read them.
var pinnedFirst = bson.D{{Key: "is_pinned", Value: -1}, {Key: "created_at", Value: -1}}

func buildFilter(f Filter) bson.M {
	filter := bson.M{}
	if f.Search != "" {
		filter = database.SearchRegex(f.Search, "title", "content")
	}
	if f.CategoryID != "" {
		filter["category_id"] = f.CategoryID
	}
	if f.IsActive != nil {
		filter["is_active"] = *f.IsActive
	}
	return filter
}

func (r *AnnouncementRepositoryImpl) List(ctx context.Context, f Filter) ([]Announcement, int64, error) {
	filter := buildFilter(f)
	total, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(pinnedFirst)
	if f.PageSize > 0 {
		opts = opts.SetSkip(f.Offset()).SetLimit(int64(f.PageSize))
	}
	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var items []Announcement
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ActiveWithin returns the active announcements whose window contains
// today. Missing bounds are open.
func (r *AnnouncementRepositoryImpl) ActiveWithin(ctx context.Context, today string) ([]Announcement, error) {
	filter := bson.M{
		"is_active": true,
		"$and": []bson.M{
			{"$or": []bson.M{
				{"publish_date": bson.M{"$exists": false}},
				{"publish_date": ""},
				{"publish_date": bson.M{"$lte": today}},
			}},
			{"$or": []bson.M{
				{"expire_date": bson.M{"$exists": false}},
				{"expire_date": ""},
				{"expire_date": bson.M{"$gte": today}},
			}},
		},
	}
	cursor, err := r.Collection.Find(ctx, filter, options.Find().SetSort(pinnedFirst))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []Announcement{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *AnnouncementRepositoryImpl) Find(ctx context.Context, id string) (*Announcement, error) {
	var a Announcement
	if err := r.Collection.FindOne(ctx, bson.M{"announcement_id": id}).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("announcement %s: %w", id, models.ErrNotFound)
		}
		return nil, err
	}
	return &a, nil
}

func (r *AnnouncementRepositoryImpl) Create(ctx context.Context, a *Announcement) error {
	_, err := r.Collection.InsertOne(ctx, a)
	return err
}

func (r *AnnouncementRepositoryImpl) Update(ctx context.Context, id string, a *Announcement) error {
	a.AnnouncementID = id
	result, err := r.Collection.ReplaceOne(ctx, bson.M{"announcement_id": id}, a)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("announcement %s: %w", id, models.ErrNotFound)
	}
	return nil
}

func (r *AnnouncementRepositoryImpl) Delete(ctx context.Context, id string) error {
	result, err := r.Collection.DeleteOne(ctx, bson.M{"announcement_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("announcement %s: %w", id, models.ErrNotFound)
	}
	return nil
}

func (r *AnnouncementRepositoryImpl) MarkRead(ctx context.Context, id, userID string) error {
	result, err := r.Collection.UpdateOne(ctx, bson.M{"announcement_id": id},
		bson.M{"$addToSet": bson.M{"read_by": userID}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("announcement %s: %w", id, models.ErrNotFound)
	}
	return nil
}

// DeactivateExpired flips is_active off for announcements past their
// window. The nightly sweep calls this.
func (r *AnnouncementRepositoryImpl) DeactivateExpired(ctx context.Context, today string) (int64, error) {
	result, err := r.Collection.UpdateMany(ctx,
		bson.M{"is_active": true, "expire_date": bson.M{"$gt": "", "$lt": today}},
		bson.M{"$set": bson.M{"is_active": false}})
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (r *AnnouncementRepositoryImpl) CreateAttachment(ctx context.Context, att *Attachment) error {
	_, err := r.Attachments.InsertOne(ctx, att)
	return err
}

func (r *AnnouncementRepositoryImpl) AttachmentsFor(ctx context.Context, announcementID string) ([]Attachment, error) {
	cursor, err := r.Attachments.Find(ctx, bson.M{"announcement_id": announcementID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []Attachment{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *AnnouncementRepositoryImpl) FindAttachment(ctx context.Context, attachmentID string) (*Attachment, error) {
	var att Attachment
	if err := r.Attachments.FindOne(ctx, bson.M{"attachment_id": attachmentID}).Decode(&att); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("attachment %s: %w", attachmentID, models.ErrNotFound)
		}
		return nil, err
	}
	return &att, nil
}

func (r *AnnouncementRepositoryImpl) DeleteAttachment(ctx context.Context, attachmentID string) error {
	result, err := r.Attachments.DeleteOne(ctx, bson.M{"attachment_id": attachmentID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("attachment %s: %w", attachmentID, models.ErrNotFound)
	}
	return nil
}

func (r *AnnouncementRepositoryImpl) DeleteAttachmentsFor(ctx context.Context, announcementID string) error {
	_, err := r.Attachments.DeleteMany(ctx, bson.M{"announcement_id": announcementID})
	return err
}

func (r *AnnouncementRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "announcement_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = r.Attachments.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "announcement_id", Value: 1}},
	})
	return err
}
