package reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnavailableUnits(t *testing.T) {
	items := []Reservation{
		{ID: "1", Date: "2026-09-04", UnitID: "G1", Status: StatusPending},
		{ID: "2", Date: "2026-09-04", UnitID: "G2", Status: StatusConfirmed},
		{ID: "3", Date: "2026-09-04", UnitID: "B1", Status: StatusRejected},
		{ID: "4", Date: "2026-09-05", UnitID: "C1", Status: StatusConfirmed},
	}

	taken := UnavailableUnits("2026-09-04", items)
	assert.True(t, taken.Has("G1"), "pending holds the unit")
	assert.True(t, taken.Has("G2"), "confirmed holds the unit")
	assert.False(t, taken.Has("B1"), "rejected frees the unit")
	assert.False(t, taken.Has("C1"), "other dates do not interfere")
	assert.Len(t, taken, 2)
}

func TestUnavailableUnitsEmptyDate(t *testing.T) {
	items := []Reservation{{ID: "1", Date: "2026-09-04", UnitID: "G1", Status: StatusPending}}
	assert.Empty(t, UnavailableUnits("", items))
}

func TestUnavailableUnitsNoReservations(t *testing.T) {
	assert.Empty(t, UnavailableUnits("2026-09-04", nil))
}
