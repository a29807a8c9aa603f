package reservation

// UnitSet is a set of derived unit identifiers.
type UnitSet map[string]struct{}

// Has reports membership.
func (s UnitSet) Has(unitID string) bool {
	_, ok := s[unitID]
	return ok
}

// UnavailableUnits returns the units that cannot be booked for date:
// every unit held by a reservation on that date whose status is not
// rejected. Rejected reservations never block a unit, so a declined
// booking frees its slot immediately and permanently. An empty date
// yields an empty set.
//
// Pure and linear in the number of reservations; it is recomputed from
// the latest snapshot on every use rather than cached.
func UnavailableUnits(date string, reservations []Reservation) UnitSet {
	taken := make(UnitSet)
	if date == "" {
		return taken
	}
	for _, r := range reservations {
		if r.Date == date && r.Status != StatusRejected {
			taken[r.UnitID] = struct{}{}
		}
	}
	return taken
}
