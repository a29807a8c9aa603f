package reservation

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound        = errors.New("reservation: not found")
	ErrInvalidDate     = errors.New("reservation: date must be YYYY-MM-DD")
	ErrNameRequired    = errors.New("reservation: customer name is required")
	ErrPhoneRequired   = errors.New("reservation: customer phone is required")
	ErrUnitRequired    = errors.New("reservation: accommodation type and unit are required")
	ErrSlipRequired    = errors.New("reservation: payment slip is required")
	ErrSlipTooLarge    = errors.New("reservation: payment slip exceeds the size limit")
	ErrStatusFinal     = errors.New("reservation: status is final and cannot change")
	ErrInvalidStatus   = errors.New("reservation: unknown status")
	ErrNothingToUpdate = errors.New("reservation: no fields to update")
)

// MaxSlipBytes bounds the payment-slip payload accepted at intake.
const MaxSlipBytes = 1_000_000

// DateLayout is the calendar-date format used throughout: ISO, no time,
// no timezone. Lexical order equals calendar order.
const DateLayout = "2006-01-02"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
)

// Valid reports whether s is one of the defined statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected:
		return true
	}
	return false
}

// Final reports whether s is a terminal state. Once confirmed or
// rejected a reservation is never re-opened; this keeps customers from
// being notified twice about the same booking.
func (s Status) Final() bool {
	return s == StatusConfirmed || s == StatusRejected
}

// Reservation is one single-night booking of one unit.
type Reservation struct {
	ID            string
	Date          string
	TypeID        string
	UnitID        string
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	HasExtraBed   bool
	SlipImage     string
	Status        Status
	CreatedAt     time.Time
}

// CreateParams carries the customer-entered fields of a new reservation.
// The owning store assigns ID and CreatedAt.
type CreateParams struct {
	Date          string
	TypeID        string
	UnitID        string
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	HasExtraBed   bool
	SlipImage     string
}

// New validates params and builds a pending reservation. ID and
// CreatedAt are left for the store to stamp.
func New(params CreateParams) (*Reservation, error) {
	if _, err := time.Parse(DateLayout, params.Date); err != nil {
		return nil, ErrInvalidDate
	}
	if params.TypeID == "" || params.UnitID == "" {
		return nil, ErrUnitRequired
	}
	if strings.TrimSpace(params.CustomerName) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(params.CustomerPhone) == "" {
		return nil, ErrPhoneRequired
	}
	if params.SlipImage == "" {
		return nil, ErrSlipRequired
	}
	if len(params.SlipImage) > MaxSlipBytes {
		return nil, ErrSlipTooLarge
	}
	return &Reservation{
		Date:          params.Date,
		TypeID:        params.TypeID,
		UnitID:        params.UnitID,
		CustomerName:  strings.TrimSpace(params.CustomerName),
		CustomerPhone: strings.TrimSpace(params.CustomerPhone),
		CustomerEmail: strings.TrimSpace(params.CustomerEmail),
		HasExtraBed:   params.HasExtraBed,
		SlipImage:     params.SlipImage,
		Status:        StatusPending,
	}, nil
}

// Confirm moves a pending reservation to confirmed.
func (r *Reservation) Confirm() error {
	return r.transition(StatusConfirmed)
}

// Reject moves a pending reservation to rejected.
func (r *Reservation) Reject() error {
	return r.transition(StatusRejected)
}

func (r *Reservation) transition(next Status) error {
	if !next.Valid() {
		return ErrInvalidStatus
	}
	if r.Status != StatusPending {
		return ErrStatusFinal
	}
	if next == StatusPending {
		return ErrStatusFinal
	}
	r.Status = next
	return nil
}

// FieldUpdate stages an admin edit of the customer contact fields.
// Nil pointers leave the current value untouched.
type FieldUpdate struct {
	CustomerName  *string
	CustomerPhone *string
	CustomerEmail *string
}

// Empty reports whether the update would change nothing.
func (u FieldUpdate) Empty() bool {
	return u.CustomerName == nil && u.CustomerPhone == nil && u.CustomerEmail == nil
}

// Apply writes the staged fields onto r.
func (r *Reservation) Apply(u FieldUpdate) error {
	if u.Empty() {
		return ErrNothingToUpdate
	}
	if u.CustomerName != nil {
		r.CustomerName = strings.TrimSpace(*u.CustomerName)
	}
	if u.CustomerPhone != nil {
		r.CustomerPhone = strings.TrimSpace(*u.CustomerPhone)
	}
	if u.CustomerEmail != nil {
		r.CustomerEmail = strings.TrimSpace(*u.CustomerEmail)
	}
	return nil
}
