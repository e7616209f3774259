package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TripStatus is the lifecycle state of a trip.
type TripStatus string

const (
	TripOngoing   TripStatus = "on-going"
	TripCompleted TripStatus = "completed"
)

// DriverShift records one driver taking over a trip. The trip's Driver
// sequence is append-only: a handoff adds an entry, it never removes one,
// so the full shift history stays on the trip.
type DriverShift struct {
	DriverID primitive.ObjectID `bson:"d_id" json:"d_id"`
	Time     time.Time          `bson:"time" json:"time"`
}

// Trip is one truck dispatch from source to final destination, spanning one
// or more driver shifts.
type Trip struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Desc            string              `bson:"desc" json:"desc"`
	Dispatch        string              `bson:"dispatch,omitempty" json:"dispatch,omitempty"`
	Truck           primitive.ObjectID  `bson:"truck" json:"truck"`
	SourceLoc       primitive.ObjectID  `bson:"source_loc" json:"source_loc"`
	LoadLoc         primitive.ObjectID  `bson:"load_loc" json:"load_loc"`
	UnloadLoc       *primitive.ObjectID `bson:"unload_loc,omitempty" json:"unload_loc,omitempty"`
	EndLoc          *primitive.ObjectID `bson:"end_loc,omitempty" json:"end_loc,omitempty"`
	StartMilage     float64             `bson:"start_milage" json:"start_milage"`
	EndMilage       float64             `bson:"end_milage,omitempty" json:"end_milage,omitempty"`
	ArrivalTime     *time.Time          `bson:"arrival_time,omitempty" json:"arrival_time,omitempty"`
	LoadTimeStart   *time.Time          `bson:"load_time_start,omitempty" json:"load_time_start,omitempty"`
	LoadTimeEnd     *time.Time          `bson:"load_time_end,omitempty" json:"load_time_end,omitempty"`
	UnloadTimeStart *time.Time          `bson:"unload_time_start,omitempty" json:"unload_time_start,omitempty"`
	UnloadTimeEnd   *time.Time          `bson:"unload_time_end,omitempty" json:"unload_time_end,omitempty"`
	EndTime         *time.Time          `bson:"end_time,omitempty" json:"end_time,omitempty"`
	Driver          []DriverShift       `bson:"driver" json:"driver"`
	Status          TripStatus          `bson:"status" json:"status"`
	CreatedAt       time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time           `bson:"updated_at" json:"updated_at"`
}

// CurrentDriver returns the driver currently responsible for the trip, the
// last entry of the shift sequence.
func (t *Trip) CurrentDriver() (primitive.ObjectID, bool) {
	if len(t.Driver) == 0 {
		return primitive.NilObjectID, false
	}
	return t.Driver[len(t.Driver)-1].DriverID, true
}

// TripDetail is a read-side view of a trip with its truck and location
// references resolved.
type TripDetail struct {
	Trip         `bson:",inline"`
	TruckDetail  *Truck    `bson:"truck_detail,omitempty" json:"truck_detail,omitempty"`
	SourceDetail *Location `bson:"source_detail,omitempty" json:"source_detail,omitempty"`
	LoadDetail   *Location `bson:"load_detail,omitempty" json:"load_detail,omitempty"`
	UnloadDetail *Location `bson:"unload_detail,omitempty" json:"unload_detail,omitempty"`
	EndDetail    *Location `bson:"end_detail,omitempty" json:"end_detail,omitempty"`
}

// TripHistory is one row of a driver's completed-trip listing. SubTrip and
// SubTripDest stay nil for trips that never got a second leg.
type TripHistory struct {
	Trip         `bson:",inline"`
	SourceDetail *Location `bson:"source_detail,omitempty" json:"source_detail,omitempty"`
	SubTrip      *SubTrip  `bson:"sub_trip,omitempty" json:"sub_trip,omitempty"`
	SubTripDest  *Location `bson:"sub_trip_dest,omitempty" json:"sub_trip_dest,omitempty"`
}

// TripPage is one page of the admin trip listing together with the total
// count for the filtered set.
type TripPage struct {
	Trips []TripDetail `json:"trips"`
	Total int64        `json:"tripCount"`
}

// CreateTripRequest carries the client-supplied fields for trip creation;
// the driver comes from the authenticated caller.
type CreateTripRequest struct {
	Desc        string  `json:"desc"`
	Dispatch    string  `json:"dispatch"`
	Truck       string  `json:"truck"`
	SourceLoc   string  `json:"source_loc"`
	LoadLoc     string  `json:"load_loc"`
	StartMilage float64 `json:"start_milage"`
}
