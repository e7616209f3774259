package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserLog is one check-in/check-out span for a driver. End stays nil while
// the driver is checked in.
type UserLog struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User  primitive.ObjectID `bson:"user" json:"user"`
	Start time.Time          `bson:"start" json:"start"`
	End   *time.Time         `bson:"end,omitempty" json:"end,omitempty"`
}
