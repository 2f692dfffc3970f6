package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/intraworks/dochub/internal/core/domain"
	"github.com/intraworks/dochub/internal/core/ports"
)

// Posts and trainings live in one collection, discriminated by the kind
// field; every query carries the kind so the two surfaces stay disjoint.
const resourcesCollection = "resources"

type ResourceRepository struct {
	coll *mongo.Collection
}

func NewResourceRepository(db *mongo.Database) *ResourceRepository {
	return &ResourceRepository{coll: db.Collection(resourcesCollection)}
}

type mongoResource struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Kind        string             `bson:"kind"`
	OwnerID     string             `bson:"owner_id"`
	Title       string             `bson:"title"`
	IsPublic    bool               `bson:"is_public"`
	CategoryID  string             `bson:"category_id,omitempty"`
	ObjectKey   string             `bson:"object_key"`
	ContentType string             `bson:"content_type"`
	Size        int64              `bson:"size"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (mr mongoResource) toDomain() *domain.Resource {
	return &domain.Resource{
		ID:          mr.ID.Hex(),
		Kind:        domain.ResourceKind(mr.Kind),
		OwnerID:     mr.OwnerID,
		Title:       mr.Title,
		IsPublic:    mr.IsPublic,
		CategoryID:  mr.CategoryID,
		ObjectKey:   mr.ObjectKey,
		ContentType: mr.ContentType,
		Size:        mr.Size,
		CreatedAt:   mr.CreatedAt,
		UpdatedAt:   mr.UpdatedAt,
	}
}

func (r *ResourceRepository) Create(ctx context.Context, res *domain.Resource) (*domain.Resource, error) {
	doc := mongoResource{
		Kind:        string(res.Kind),
		OwnerID:     res.OwnerID,
		Title:       res.Title,
		IsPublic:    res.IsPublic,
		CategoryID:  res.CategoryID,
		ObjectKey:   res.ObjectKey,
		ContentType: res.ContentType,
		Size:        res.Size,
		CreatedAt:   res.CreatedAt,
		UpdatedAt:   res.UpdatedAt,
	}

	inserted, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert resource: %w", err)
	}
	doc.ID = inserted.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *ResourceRepository) FindByID(ctx context.Context, kind domain.ResourceKind, id string) (*domain.Resource, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrResourceNotFound
	}

	var mr mongoResource
	err = r.coll.FindOne(ctx, bson.M{"_id": oid, "kind": string(kind)}).Decode(&mr)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrResourceNotFound
		}
		return nil, fmt.Errorf("find resource: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *ResourceRepository) List(ctx context.Context, filter ports.ListResourcesFilter) ([]*domain.Resource, error) {
	query := bson.M{"kind": string(filter.Kind)}
	if filter.CategoryID != "" {
		query["category_id"] = filter.CategoryID
	}

	if filter.ViewerID != "" {
		sharedOIDs := make([]primitive.ObjectID, 0, len(filter.SharedResourceIDs))
		for _, id := range filter.SharedResourceIDs {
			if oid, err := primitive.ObjectIDFromHex(id); err == nil {
				sharedOIDs = append(sharedOIDs, oid)
			}
		}
		query["$or"] = bson.A{
			bson.M{"is_public": true},
			bson.M{"owner_id": filter.ViewerID},
			bson.M{"_id": bson.M{"$in": sharedOIDs}},
		}
	}

	cur, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer cur.Close(ctx)

	var items []*domain.Resource
	for cur.Next(ctx) {
		var mr mongoResource
		if err := cur.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode resource: %w", err)
		}
		items = append(items, mr.toDomain())
	}
	return items, cur.Err()
}

func (r *ResourceRepository) UpdateMeta(ctx context.Context, kind domain.ResourceKind, id string, title, categoryID *string) (*domain.Resource, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if title != nil {
		set["title"] = *title
	}
	if categoryID != nil {
		set["category_id"] = *categoryID
	}
	return r.findAndUpdate(ctx, kind, id, bson.M{"$set": set})
}

func (r *ResourceRepository) SetVisibility(ctx context.Context, kind domain.ResourceKind, id string, isPublic bool) (*domain.Resource, error) {
	return r.findAndUpdate(ctx, kind, id, bson.M{
		"$set": bson.M{"is_public": isPublic, "updated_at": time.Now().UTC()},
	})
}

func (r *ResourceRepository) Delete(ctx context.Context, kind domain.ResourceKind, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrResourceNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "kind": string(kind)})
	if err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}

func (r *ResourceRepository) findAndUpdate(ctx context.Context, kind domain.ResourceKind, id string, update bson.M) (*domain.Resource, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrResourceNotFound
	}

	var mr mongoResource
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "kind": string(kind)},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mr)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrResourceNotFound
		}
		return nil, fmt.Errorf("update resource: %w", err)
	}
	return mr.toDomain(), nil
}

// EnsureIndexes creates the owner and kind indexes used by listings.
func (r *ResourceRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "kind", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	})
	return err
}
