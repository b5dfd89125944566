package goals

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/goaltrack/goaltrack-backend/internal/domain"
	"github.com/goaltrack/goaltrack-backend/internal/store"
)

type goalDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user"`
	Text      string             `bson:"goal"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d *goalDoc) toDomain() *domain.Goal {
	return &domain.Goal{
		ID:        d.ID.Hex(),
		UserID:    d.UserID.Hex(),
		Text:      d.Text,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// Repository persists goals in the "goals" collection.
type Repository struct {
	coll *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{coll: db.Collection("goals")}
}

// Insert stores a new goal, assigning timestamps and filling in the id.
func (r *Repository) Insert(ctx context.Context, g *domain.Goal) error {
	owner, err := primitive.ObjectIDFromHex(g.UserID)
	if err != nil {
		return err
	}

	now := time.Now()
	doc := goalDoc{
		UserID:    owner,
		Text:      g.Text,
		CreatedAt: now,
		UpdatedAt: now,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return err
	}

	g.ID = res.InsertedID.(primitive.ObjectID).Hex()
	g.CreatedAt = doc.CreatedAt
	g.UpdatedAt = doc.UpdatedAt
	return nil
}

// ListByUser returns the user's goals in store order.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]domain.Goal, error) {
	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	cur, err := r.coll.Find(ctx, bson.M{"user": owner})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domain.Goal
	for cur.Next(ctx) {
		var doc goalDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, *doc.toDomain())
	}
	return out, cur.Err()
}

func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Goal, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrNotFound
	}

	var doc goalDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// UpdateText replaces the goal's text and bumps updated_at, returning the
// document as written.
func (r *Repository) UpdateText(ctx context.Context, id, text string) (*domain.Goal, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrNotFound
	}

	var doc goalDoc
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"goal": text, "updated_at": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// Delete removes the goal permanently.
func (r *Repository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return store.ErrNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
