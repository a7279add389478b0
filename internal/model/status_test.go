package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/advenue/foodadmin/internal/model"
)

func TestAllStatusesDisplayOrder(t *testing.T) {
	sts := model.AllStatuses()
	ids := make([]model.StatusID, len(sts))
	for i, s := range sts {
		ids[i] = s.ID
	}
	// The display sequence is fixed product metadata, not numeric order.
	assert.Equal(t, []model.StatusID{model.StatusActive, model.StatusInactive, model.StatusTrashed}, ids)
}

func TestAssignableStatusesExcludeTrashed(t *testing.T) {
	for _, s := range model.AssignableStatuses() {
		assert.NotEqual(t, model.StatusTrashed, s.ID)
	}
	assert.Len(t, model.AssignableStatuses(), 2)
}

func TestValidStatus(t *testing.T) {
	assert.True(t, model.ValidStatus(model.StatusActive))
	assert.True(t, model.ValidStatus(model.StatusInactive))
	assert.True(t, model.ValidStatus(model.StatusTrashed))
	assert.False(t, model.ValidStatus(0))
	assert.False(t, model.ValidStatus(3))
	assert.False(t, model.ValidStatus(98))
}

func TestStatusByID(t *testing.T) {
	s, ok := model.StatusByID(model.StatusTrashed)
	assert.True(t, ok)
	assert.Equal(t, "Trashed", s.Label)

	_, ok = model.StatusByID(42)
	assert.False(t, ok)
}
