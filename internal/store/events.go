package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/arman/volunteer-network-server/internal/httpx"
	"github.com/arman/volunteer-network-server/internal/models"
)

// EventFixtures is the bundled event catalog, inserted by Seed into an empty
// collection. Lookup key is the numeric id field.
var EventFixtures = []models.Event{
	{ID: 1, Title: "Beach Cleanup Day", Description: "Join us for a morning of clearing plastic and debris from the shoreline.", Date: "2024-03-09", Thumbnail: "https://i.ibb.co/vLqBQYk/beach-cleanup.jpg"},
	{ID: 2, Title: "Community Food Bank", Description: "Sort and pack donated food for families across the city.", Date: "2024-03-16", Thumbnail: "https://i.ibb.co/ZY0CW5N/food-bank.jpg"},
	{ID: 3, Title: "Library Book Drive", Description: "Collect, catalog, and shelve donated books for the public library.", Date: "2024-03-23", Thumbnail: "https://i.ibb.co/G5cX1kD/book-drive.jpg"},
	{ID: 4, Title: "Park Tree Planting", Description: "Help plant two hundred saplings in the riverside park.", Date: "2024-04-06", Thumbnail: "https://i.ibb.co/8XhVJkP/tree-planting.jpg"},
	{ID: 5, Title: "Senior Center Visit", Description: "Spend an afternoon with residents: games, music, and conversation.", Date: "2024-04-13", Thumbnail: "https://i.ibb.co/d077TqM/senior-visit.jpg"},
	{ID: 6, Title: "Blood Donation Camp", Description: "Volunteer at the registration and refreshment desks of the donation camp.", Date: "2024-04-20", Thumbnail: "https://i.ibb.co/jZzv7hW/blood-camp.jpg"},
}

// EventStore serves the event catalog from MongoDB.
type EventStore struct {
	col *mongo.Collection
}

func NewEventStore(db *mongo.Database) *EventStore {
	return &EventStore{col: db.Collection("events")}
}

// Seed inserts the fixture catalog when the collection is empty.
func (s *EventStore) Seed(ctx context.Context) error {
	n, err := s.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("count events: %w", err)
	}
	if n > 0 {
		return nil
	}

	docs := make([]any, len(EventFixtures))
	for i, e := range EventFixtures {
		docs[i] = e
	}
	if _, err := s.col.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("seed events: %w", err)
	}
	return nil
}

func (s *EventStore) List(ctx context.Context) ([]models.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
	cur, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer cur.Close(ctx)

	events := []models.Event{}
	if err := cur.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return events, nil
}

func (s *EventStore) GetByNumericID(ctx context.Context, id int) (*models.Event, error) {
	var event models.Event
	err := s.col.FindOne(ctx, bson.M{"id": id}).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, httpx.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &event, nil
}
