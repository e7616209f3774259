package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Location is immutable reference data referenced by trip and sub-trip legs.
type Location struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Lat       float64            `bson:"lat" json:"lat"`
	Long      float64            `bson:"long" json:"long"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
