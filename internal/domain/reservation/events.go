package reservation

import "time"

// Event names published on the reservation lifecycle topic.
const (
	EventCreated       = "reservation.created"
	EventConfirmed     = "reservation.confirmed"
	EventRejected      = "reservation.rejected"
	EventFieldsUpdated = "reservation.fields_updated"
	EventDeleted       = "reservation.deleted"
)

// Event is a flat lifecycle notification emitted after a successful
// store mutation. Delivery is best-effort; consumers must tolerate gaps.
type Event struct {
	Name          string    `json:"name"`
	ReservationID string    `json:"reservation_id"`
	Date          string    `json:"date,omitempty"`
	TypeID        string    `json:"type_id,omitempty"`
	UnitID        string    `json:"unit_id,omitempty"`
	Status        Status    `json:"status,omitempty"`
	At            time.Time `json:"at"`
}

// CreatedEvent describes a freshly stored reservation.
func CreatedEvent(r Reservation, at time.Time) Event {
	return Event{Name: EventCreated, ReservationID: r.ID, Date: r.Date, TypeID: r.TypeID, UnitID: r.UnitID, Status: r.Status, At: at}
}

// StatusEvent describes a pending reservation reaching a terminal state.
func StatusEvent(r Reservation, at time.Time) Event {
	name := EventConfirmed
	if r.Status == StatusRejected {
		name = EventRejected
	}
	return Event{Name: name, ReservationID: r.ID, Date: r.Date, TypeID: r.TypeID, UnitID: r.UnitID, Status: r.Status, At: at}
}

// UpdatedEvent describes an admin edit of customer fields.
func UpdatedEvent(r Reservation, at time.Time) Event {
	return Event{Name: EventFieldsUpdated, ReservationID: r.ID, Date: r.Date, UnitID: r.UnitID, Status: r.Status, At: at}
}

// DeletedEvent describes a destroyed reservation record.
func DeletedEvent(id string, at time.Time) Event {
	return Event{Name: EventDeleted, ReservationID: id, At: at}
}
