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

const sharesCollection = "share_grants"

// ShareRepository persists grants. A unique compound index on
// (resource_id, user_id) plus a single upsert write keep the pair unique even
// under concurrent share requests.
type ShareRepository struct {
	coll *mongo.Collection
}

func NewShareRepository(db *mongo.Database) *ShareRepository {
	return &ShareRepository{coll: db.Collection(sharesCollection)}
}

type mongoGrant struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ResourceID string             `bson:"resource_id"`
	UserID     string             `bson:"user_id"`
	CanView    bool               `bson:"can_view"`
	CanEdit    bool               `bson:"can_edit"`
	CanDelete  bool               `bson:"can_delete"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

func (mg mongoGrant) toDomain() *domain.ShareGrant {
	return &domain.ShareGrant{
		ID:         mg.ID.Hex(),
		ResourceID: mg.ResourceID,
		UserID:     mg.UserID,
		CanView:    mg.CanView,
		CanEdit:    mg.CanEdit,
		CanDelete:  mg.CanDelete,
		CreatedAt:  mg.CreatedAt,
		UpdatedAt:  mg.UpdatedAt,
	}
}

// Upsert writes the grant in one atomic operation. Provided flags go into
// $set; unprovided flags only materialise through $setOnInsert defaults
// (view on, edit/delete off), so an update never resets a flag the caller
// did not mention.
func (r *ShareRepository) Upsert(ctx context.Context, params ports.UpsertGrantParams) (*domain.ShareGrant, error) {
	now := time.Now().UTC()

	set := bson.M{"updated_at": now}
	insert := bson.M{"created_at": now}

	if params.CanView != nil {
		set["can_view"] = *params.CanView
	} else {
		insert["can_view"] = true
	}
	if params.CanEdit != nil {
		set["can_edit"] = *params.CanEdit
	} else {
		insert["can_edit"] = false
	}
	if params.CanDelete != nil {
		set["can_delete"] = *params.CanDelete
	} else {
		insert["can_delete"] = false
	}

	var mg mongoGrant
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"resource_id": params.ResourceID, "user_id": params.UserID},
		bson.M{"$set": set, "$setOnInsert": insert},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&mg)
	if err != nil {
		return nil, fmt.Errorf("upsert grant: %w", err)
	}
	return mg.toDomain(), nil
}

func (r *ShareRepository) Find(ctx context.Context, resourceID, userID string) (*domain.ShareGrant, error) {
	var mg mongoGrant
	err := r.coll.FindOne(ctx, bson.M{"resource_id": resourceID, "user_id": userID}).Decode(&mg)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrGrantNotFound
		}
		return nil, fmt.Errorf("find grant: %w", err)
	}
	return mg.toDomain(), nil
}

// Remove deletes the matching grant. A zero delete count is not an error.
func (r *ShareRepository) Remove(ctx context.Context, resourceID, userID string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"resource_id": resourceID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("remove grant: %w", err)
	}
	return nil
}

func (r *ShareRepository) RemoveByResource(ctx context.Context, resourceID string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"resource_id": resourceID})
	if err != nil {
		return fmt.Errorf("remove grants for resource: %w", err)
	}
	return nil
}

func (r *ShareRepository) ListViewableResourceIDs(ctx context.Context, userID string) ([]string, error) {
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID, "can_view": true})
	if err != nil {
		return nil, fmt.Errorf("list viewable grants: %w", err)
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var mg mongoGrant
		if err := cur.Decode(&mg); err != nil {
			return nil, fmt.Errorf("decode grant: %w", err)
		}
		ids = append(ids, mg.ResourceID)
	}
	return ids, cur.Err()
}

// EnsureIndexes creates the unique (resource_id, user_id) index.
func (r *ShareRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "resource_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	})
	return err
}
