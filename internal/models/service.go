package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service is a catalog entry. Type is a URL-safe slug, unique across the
// collection; uniqueness is checked on creation.
type Service struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Type        string             `bson:"type" json:"type"`
	Description string             `bson:"description" json:"description"`
	Active      bool               `bson:"active" json:"active"`
	Category    string             `bson:"category" json:"category"`
	Price       string             `bson:"price,omitempty" json:"price,omitempty"`
	Items       []string           `bson:"items" json:"items"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
