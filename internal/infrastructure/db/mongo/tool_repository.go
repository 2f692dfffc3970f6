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
)

const toolsCollection = "tools"

type ToolRepository struct {
	coll *mongo.Collection
}

func NewToolRepository(db *mongo.Database) *ToolRepository {
	return &ToolRepository{coll: db.Collection(toolsCollection)}
}

type mongoTool struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Name             string             `bson:"name"`
	Description      string             `bson:"description,omitempty"`
	Responsible      string             `bson:"responsible"`
	ResponsibleEmail string             `bson:"responsible_email"`
	AcquisitionDate  time.Time          `bson:"acquisition_date"`
	ExpirationDate   time.Time          `bson:"expiration_date"`
	LastNotification time.Time          `bson:"last_notification,omitempty"`
	CreatedAt        time.Time          `bson:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at"`
}

func (mt mongoTool) toDomain() *domain.Tool {
	return &domain.Tool{
		ID:               mt.ID.Hex(),
		Name:             mt.Name,
		Description:      mt.Description,
		Responsible:      mt.Responsible,
		ResponsibleEmail: mt.ResponsibleEmail,
		AcquisitionDate:  mt.AcquisitionDate,
		ExpirationDate:   mt.ExpirationDate,
		LastNotification: mt.LastNotification,
		CreatedAt:        mt.CreatedAt,
		UpdatedAt:        mt.UpdatedAt,
	}
}

func (r *ToolRepository) Create(ctx context.Context, tool *domain.Tool) (*domain.Tool, error) {
	doc := mongoTool{
		Name:             tool.Name,
		Description:      tool.Description,
		Responsible:      tool.Responsible,
		ResponsibleEmail: tool.ResponsibleEmail,
		AcquisitionDate:  tool.AcquisitionDate,
		ExpirationDate:   tool.ExpirationDate,
		CreatedAt:        tool.CreatedAt,
		UpdatedAt:        tool.UpdatedAt,
	}

	inserted, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert tool: %w", err)
	}
	doc.ID = inserted.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *ToolRepository) FindByID(ctx context.Context, id string) (*domain.Tool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrToolNotFound
	}

	var mt mongoTool
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrToolNotFound
		}
		return nil, fmt.Errorf("find tool: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *ToolRepository) List(ctx context.Context) ([]*domain.Tool, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "expiration_date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}
	defer cur.Close(ctx)

	var tools []*domain.Tool
	for cur.Next(ctx) {
		var mt mongoTool
		if err := cur.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode tool: %w", err)
		}
		tools = append(tools, mt.toDomain())
	}
	return tools, cur.Err()
}

func (r *ToolRepository) Update(ctx context.Context, tool *domain.Tool) (*domain.Tool, error) {
	oid, err := primitive.ObjectIDFromHex(tool.ID)
	if err != nil {
		return nil, domain.ErrToolNotFound
	}

	var mt mongoTool
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"name":              tool.Name,
			"description":       tool.Description,
			"responsible":       tool.Responsible,
			"responsible_email": tool.ResponsibleEmail,
			"acquisition_date":  tool.AcquisitionDate,
			"expiration_date":   tool.ExpirationDate,
			"updated_at":        tool.UpdatedAt,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrToolNotFound
		}
		return nil, fmt.Errorf("update tool: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *ToolRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrToolNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete tool: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrToolNotFound
	}
	return nil
}

func (r *ToolRepository) MarkNotified(ctx context.Context, id string, ts time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrToolNotFound
	}

	_, err = r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"last_notification": ts.UTC()}},
	)
	if err != nil {
		return fmt.Errorf("mark notified: %w", err)
	}
	return nil
}
