package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Truck represents a haul truck. IsAvail is false exactly while one
// on-going trip references the truck; it is flipped only by trip lifecycle
// transitions, never directly by a client.
type Truck struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TruckID   string             `bson:"truck_id" json:"truck_id"`
	PlateNo   string             `bson:"plate_no" json:"plate_no"`
	Name      string             `bson:"name" json:"name"`
	IsAvail   bool               `bson:"is_avail" json:"is_avail"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
