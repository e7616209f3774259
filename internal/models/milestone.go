package models

import "fmt"

// MilestoneKind names one recordable step of a trip or sub-trip. The set is
// closed: an unrecognized discriminator is rejected instead of falling
// through to completion.
type MilestoneKind string

const (
	MilestoneArrival     MilestoneKind = "arrival_time"
	MilestoneLoadStart   MilestoneKind = "load_time_start"
	MilestoneLoadEnd     MilestoneKind = "load_time_end"
	MilestoneUnloadStart MilestoneKind = "unload_time_start"
	MilestoneUnloadEnd   MilestoneKind = "unload_time_end"
	MilestoneComplete    MilestoneKind = "complete"
	MilestoneWeights     MilestoneKind = "weights"
)

// Milestone is a tagged update applied to a trip or sub-trip. EndMilage is
// read only for Complete; the weight fields only for Weights.
type Milestone struct {
	Kind      MilestoneKind `json:"milestone"`
	EndMilage float64       `json:"end_milage,omitempty"`
	GrossWt   float64       `json:"gross_wt,omitempty"`
	TareWt    float64       `json:"tare_wt,omitempty"`
	NetWt     float64       `json:"net_wt,omitempty"`
}

// tripMilestones are the kinds a trip update accepts; sub-trip updates
// accept the complement of the loading steps.
var tripMilestones = map[MilestoneKind]bool{
	MilestoneArrival:   true,
	MilestoneLoadStart: true,
	MilestoneLoadEnd:   true,
	MilestoneComplete:  true,
}

var subTripMilestones = map[MilestoneKind]bool{
	MilestoneArrival:     true,
	MilestoneUnloadStart: true,
	MilestoneUnloadEnd:   true,
	MilestoneWeights:     true,
}

// ValidForTrip reports whether the milestone applies to a trip update.
func (m Milestone) ValidForTrip() error {
	if !tripMilestones[m.Kind] {
		return fmt.Errorf("unknown trip milestone %q", m.Kind)
	}
	return nil
}

// ValidForSubTrip reports whether the milestone applies to a sub-trip update.
func (m Milestone) ValidForSubTrip() error {
	if !subTripMilestones[m.Kind] {
		return fmt.Errorf("unknown sub-trip milestone %q", m.Kind)
	}
	return nil
}
