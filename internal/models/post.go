package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Post is a volunteer-opportunity listing. Field names mirror the document
// shape the frontend writes, so update/increment payloads pass through
// unchanged.
type Post struct {
	ID               primitive.ObjectID `json:"_id,omitempty"  bson:"_id,omitempty"`
	Thumbnail        string             `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
	Title            string             `json:"title"          bson:"title"`
	Description      string             `json:"description,omitempty" bson:"description,omitempty"`
	Category         string             `json:"category,omitempty" bson:"category,omitempty"`
	Location         string             `json:"location,omitempty" bson:"location,omitempty"`
	VolunteersNeeded int                `json:"volunteersNeeded" bson:"volunteersNeeded"`
	Deadline         string             `json:"deadline"       bson:"deadline"`
	OrganizerName    string             `json:"organizerName,omitempty" bson:"organizerName,omitempty"`
	OrganizerEmail   string             `json:"organizerEmail" bson:"organizerEmail"`
}

// PatchPost is the body for PATCH /volunteerPost/{id}. Exactly one of Set or
// Increment must be present; the caller states the intent instead of the
// server sniffing the payload shape.
type PatchPost struct {
	Set       map[string]any     `json:"set,omitempty"`
	Increment map[string]float64 `json:"increment,omitempty"`
}
