package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubTrip is a secondary leg nested under a trip: the delivery to a mill
// with its weighbridge readings and unload milestones. At most one sub-trip
// exists per trip; the Trip field is a back-reference, not an embedded
// document, so the cardinality is a query concern rather than a schema one.
type SubTrip struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Trip            primitive.ObjectID  `bson:"trip" json:"trip"`
	Mill            primitive.ObjectID  `bson:"mill_id" json:"mill_id"`
	Source          primitive.ObjectID  `bson:"source" json:"source"`
	Dest            primitive.ObjectID  `bson:"dest" json:"dest"`
	ProdDetail      string              `bson:"prod_detail" json:"prod_detail"`
	SlipID          string              `bson:"slip_id" json:"slip_id"`
	BlockName       string              `bson:"block_name" json:"block_name"`
	BlockNo         string              `bson:"block_no,omitempty" json:"block_no,omitempty"`
	Docs            []string            `bson:"docs" json:"docs"`
	ArrivalTime     *time.Time          `bson:"arrival_time,omitempty" json:"arrival_time,omitempty"`
	UnloadTimeStart *time.Time          `bson:"unload_time_start,omitempty" json:"unload_time_start,omitempty"`
	UnloadTimeEnd   *time.Time          `bson:"unload_time_end,omitempty" json:"unload_time_end,omitempty"`
	GrossWt         float64             `bson:"gross_wt,omitempty" json:"gross_wt,omitempty"`
	TareWt          float64             `bson:"tare_wt,omitempty" json:"tare_wt,omitempty"`
	NetWt           float64             `bson:"net_wt,omitempty" json:"net_wt,omitempty"`
	CreatedAt       time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time           `bson:"updated_at" json:"updated_at"`
}

// CreateSubTripRequest carries the client-supplied fields for sub-trip
// creation. Docs are uploaded through the storage gateway before the record
// is inserted.
type CreateSubTripRequest struct {
	Trip       string `json:"trip"`
	Mill       string `json:"mill_id"`
	Source     string `json:"source"`
	Dest       string `json:"dest"`
	ProdDetail string `json:"prod_detail"`
	SlipID     string `json:"slip_id"`
	BlockName  string `json:"block_name"`
	BlockNo    string `json:"block_no"`
}
