package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/arman/volunteer-network-server/internal/httpx"
	"github.com/arman/volunteer-network-server/internal/models"
)

// PostStore handles volunteer post CRUD in MongoDB.
type PostStore struct {
	col *mongo.Collection
}

func NewPostStore(db *mongo.Database) *PostStore {
	return &PostStore{col: db.Collection("volunteerList")}
}

// Insert stores the document exactly as the creator shaped it; free-form
// fields pass through untouched.
func (s *PostStore) Insert(ctx context.Context, doc map[string]any) (string, error) {
	res, err := s.col.InsertOne(ctx, bson.M(doc))
	if err != nil {
		return "", fmt.Errorf("insert post: %w", err)
	}
	oid := res.InsertedID.(primitive.ObjectID)
	return oid.Hex(), nil
}

// List returns all posts, or those whose title contains the filter
// case-insensitively when it is non-empty.
func (s *PostStore) List(ctx context.Context, titleFilter string) ([]models.Post, error) {
	filter := bson.M{}
	if titleFilter != "" {
		filter["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(titleFilter), Options: "i"}
	}

	cur, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer cur.Close(ctx)

	posts := []models.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return posts, nil
}

// ListUpcoming returns up to limit posts ordered by ascending deadline.
func (s *PostStore) ListUpcoming(ctx context.Context, limit int64) ([]models.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "deadline", Value: 1}}).
		SetLimit(limit)

	cur, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list upcoming posts: %w", err)
	}
	defer cur.Close(ctx)

	posts := []models.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return posts, nil
}

func (s *PostStore) Get(ctx context.Context, id string) (*models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", httpx.ErrInvalidID, id)
	}

	var post models.Post
	err = s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, httpx.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &post, nil
}

func (s *PostStore) ListByOwner(ctx context.Context, email string) ([]models.Post, error) {
	cur, err := s.col.Find(ctx, bson.M{"organizerEmail": email})
	if err != nil {
		return nil, fmt.Errorf("list posts by owner: %w", err)
	}
	defer cur.Close(ctx)

	posts := []models.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return posts, nil
}

// Update overwrites the given fields ($set). ErrNotFound when no post
// matches the id.
func (s *PostStore) Update(ctx context.Context, id string, fields map[string]any) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %q", httpx.ErrInvalidID, id)
	}

	res, err := s.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if res.MatchedCount == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// Increment applies numeric deltas ($inc) to the given fields.
func (s *PostStore) Increment(ctx context.Context, id string, deltas map[string]float64) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %q", httpx.ErrInvalidID, id)
	}

	res, err := s.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": deltas})
	if err != nil {
		return fmt.Errorf("increment post: %w", err)
	}
	if res.MatchedCount == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (s *PostStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %q", httpx.ErrInvalidID, id)
	}

	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// DecrementCapacity atomically takes one slot from the post, guarded by
// volunteersNeeded > 0 so the counter never goes negative. ErrNotFound when
// the post does not exist, ErrCapacityExhausted when it is already at zero.
func (s *PostStore) DecrementCapacity(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %q", httpx.ErrInvalidID, id)
	}

	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": oid, "volunteersNeeded": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"volunteersNeeded": -1}},
	)
	if err != nil {
		return fmt.Errorf("decrement capacity: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// Matched nothing: tell a missing post apart from an exhausted one.
	err = s.col.FindOne(ctx, bson.M{"_id": oid}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return httpx.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("decrement capacity: %w", err)
	}
	return httpx.ErrCapacityExhausted
}
