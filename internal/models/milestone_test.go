package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMilestone_ValidForTrip(t *testing.T) {
	valid := []MilestoneKind{MilestoneArrival, MilestoneLoadStart, MilestoneLoadEnd, MilestoneComplete}
	for _, kind := range valid {
		assert.NoError(t, Milestone{Kind: kind}.ValidForTrip(), string(kind))
	}

	invalid := []MilestoneKind{MilestoneUnloadStart, MilestoneUnloadEnd, MilestoneWeights, "finish", ""}
	for _, kind := range invalid {
		assert.Error(t, Milestone{Kind: kind}.ValidForTrip(), string(kind))
	}
}

func TestMilestone_ValidForSubTrip(t *testing.T) {
	valid := []MilestoneKind{MilestoneArrival, MilestoneUnloadStart, MilestoneUnloadEnd, MilestoneWeights}
	for _, kind := range valid {
		assert.NoError(t, Milestone{Kind: kind}.ValidForSubTrip(), string(kind))
	}

	invalid := []MilestoneKind{MilestoneLoadStart, MilestoneLoadEnd, MilestoneComplete, "done", ""}
	for _, kind := range invalid {
		assert.Error(t, Milestone{Kind: kind}.ValidForSubTrip(), string(kind))
	}
}
