package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Request is the read-side view of a volunteer's application against a
// specific post. Submissions are stored verbatim as applicant-shaped
// documents; this struct decodes the fields the service itself relies on.
// The post reference is stored under "requestId", matching the existing
// document shape. At most one request may exist per (requestId,
// volunteerEmail) pair; a unique index enforces this.
type Request struct {
	ID             primitive.ObjectID `json:"_id,omitempty"  bson:"_id,omitempty"`
	PostID         string             `json:"requestId"      bson:"requestId"`
	Title          string             `json:"title,omitempty" bson:"title,omitempty"`
	VolunteerName  string             `json:"volunteerName,omitempty" bson:"volunteerName,omitempty"`
	VolunteerEmail string             `json:"volunteerEmail" bson:"volunteerEmail"`
	OrganizerName  string             `json:"organizerName,omitempty" bson:"organizerName,omitempty"`
	OrganizerEmail string             `json:"organizerEmail,omitempty" bson:"organizerEmail,omitempty"`
	Suggestion     string             `json:"suggestion,omitempty" bson:"suggestion,omitempty"`
	Status         string             `json:"status,omitempty" bson:"status,omitempty"`
}
