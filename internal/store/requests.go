package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/arman/volunteer-network-server/internal/httpx"
	"github.com/arman/volunteer-network-server/internal/models"
)

// RequestStore handles volunteer request documents in MongoDB. The unique
// (requestId, volunteerEmail) index created by EnsureIndexes is the
// authoritative duplicate guard for the submission workflow.
type RequestStore struct {
	col *mongo.Collection
}

func NewRequestStore(db *mongo.Database) *RequestStore {
	return &RequestStore{col: db.Collection("requests")}
}

func (s *RequestStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "requestId", Value: 1},
			{Key: "volunteerEmail", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create request index: %w", err)
	}
	return nil
}

// Insert stores an applicant-shaped document verbatim, reporting
// ErrDuplicateRequest when one already exists for the same
// (requestId, volunteerEmail) pair.
func (s *RequestStore) Insert(ctx context.Context, doc map[string]any) (string, error) {
	res, err := s.col.InsertOne(ctx, bson.M(doc))
	if mongo.IsDuplicateKeyError(err) {
		return "", httpx.ErrDuplicateRequest
	}
	if err != nil {
		return "", fmt.Errorf("insert request: %w", err)
	}
	oid := res.InsertedID.(primitive.ObjectID)
	return oid.Hex(), nil
}

func (s *RequestStore) ListByOwner(ctx context.Context, email string) ([]models.Request, error) {
	cur, err := s.col.Find(ctx, bson.M{"organizerEmail": email})
	if err != nil {
		return nil, fmt.Errorf("list requests by owner: %w", err)
	}
	defer cur.Close(ctx)

	reqs := []models.Request{}
	if err := cur.All(ctx, &reqs); err != nil {
		return nil, fmt.Errorf("decode requests: %w", err)
	}
	return reqs, nil
}

func (s *RequestStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %q", httpx.ErrInvalidID, id)
	}

	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	if res.DeletedCount == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
