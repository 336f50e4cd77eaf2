package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Event is a catalog entry. Lookup goes through the numeric "id" field, not
// the store-generated object id.
type Event struct {
	OID         primitive.ObjectID `json:"-"           bson:"_id,omitempty"`
	ID          int                `json:"id"          bson:"id"`
	Title       string             `json:"title"       bson:"title"`
	Description string             `json:"description" bson:"description"`
	Date        string             `json:"date"        bson:"date"`
	Thumbnail   string             `json:"thumbnail"   bson:"thumbnail"`
}
