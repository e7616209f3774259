package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Enquiry is a support request raised by a signed-in user, with an optional
// photo attached.
type Enquiry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	MobileNo  string             `bson:"mobile_no" json:"mobile_no"`
	Message   string             `bson:"message" json:"message"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
