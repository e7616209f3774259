package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mill represents a processing mill a sub-trip delivers to. Address points
// at a Location record created alongside the mill.
type Mill struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MillName  string             `bson:"mill_name" json:"mill_name"`
	Address   primitive.ObjectID `bson:"address" json:"address"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
