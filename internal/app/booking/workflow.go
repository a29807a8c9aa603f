package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"archatara/internal/domain/catalog"
	"archatara/internal/domain/reservation"
	"archatara/internal/domain/settings"
)

var (
	ErrWrongState    = errors.New("booking: action not valid in the current step")
	ErrDateInPast    = errors.New("booking: date must be today or later")
	ErrWeekendOnly   = errors.New("booking: only Friday, Saturday and Sunday are open for booking")
	ErrUnitTaken     = errors.New("booking: unit is not available on the selected date")
	ErrEmailRequired = errors.New("booking: customer email is required")
)

// State is the customer workflow step.
type State string

const (
	StateSelectDate   State = "select_date"
	StateSelectUnit   State = "select_unit"
	StateEnterDetails State = "enter_details"
	StateConfirmed    State = "confirmed"
)

// Store is the slice of the reservation store adapter the workflow
// needs: atomic submission, the availability snapshot and the cached
// settings.
type Store interface {
	Create(ctx context.Context, params reservation.CreateParams) (reservation.Reservation, error)
	UnavailableUnits(date string) reservation.UnitSet
	Settings() settings.Settings
}

// Details carries the customer-entered fields of the final step.
type Details struct {
	Name      string
	Phone     string
	Email     string
	ExtraBed  bool
	SlipImage string
}

// Workflow drives one customer through
// SelectDate -> SelectUnit -> EnterDetails -> Confirmed. Confirmed is
// terminal; StartOver yields an independent fresh flow. A failed step
// never advances the state and leaves prior selections untouched.
type Workflow struct {
	mu      sync.Mutex
	id      string
	state   State
	catalog *catalog.Catalog
	store   Store
	now     func() time.Time

	date     string
	selected catalog.AccommodationType
	unitID   string
	result   *reservation.Reservation
}

// Option tweaks workflow construction.
type Option func(*Workflow)

// WithClock overrides the "today" source.
func WithClock(now func() time.Time) Option {
	return func(w *Workflow) { w.now = now }
}

// New starts a workflow at the date-selection step.
func New(cat *catalog.Catalog, store Store, opts ...Option) *Workflow {
	w := &Workflow{
		id:      uuid.NewString(),
		state:   StateSelectDate,
		catalog: cat,
		store:   store,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// ID identifies the workflow instance for its session.
func (w *Workflow) ID() string { return w.id }

// State reports the current step.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Date reports the selected stay date, if any.
func (w *Workflow) Date() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.date
}

// Selection reports the bound type and unit, if any.
func (w *Workflow) Selection() (catalog.AccommodationType, string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selected, w.unitID
}

// Result returns the stored reservation after a successful submission.
func (w *Workflow) Result() *reservation.Reservation {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.result
}

// SelectDate accepts a stay date of today or later. Under the
// weekend-only restriction a Monday-to-Thursday date is rejected and
// the previously selected date, if any, stays in place.
func (w *Workflow) SelectDate(date string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateSelectDate {
		return ErrWrongState
	}
	parsed, err := time.Parse(reservation.DateLayout, date)
	if err != nil {
		return reservation.ErrInvalidDate
	}
	if date < w.now().Format(reservation.DateLayout) {
		return ErrDateInPast
	}
	if !w.store.Settings().DateAllowed(parsed) {
		return ErrWeekendOnly
	}
	w.date = date
	w.state = StateSelectUnit
	return nil
}

// SelectUnit binds an available unit of a catalog type and advances to
// detail entry.
func (w *Workflow) SelectUnit(typeID, unitID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateSelectUnit {
		return ErrWrongState
	}
	typ, err := w.catalog.TypeByID(typeID)
	if err != nil {
		return err
	}
	if !typ.HasUnit(unitID) {
		return reservation.ErrUnitRequired
	}
	if w.store.UnavailableUnits(w.date).Has(unitID) {
		return ErrUnitTaken
	}
	w.selected = typ
	w.unitID = unitID
	w.state = StateEnterDetails
	return nil
}

// Quote computes the displayed total for the bound type before commit.
func (w *Workflow) Quote(extraBed bool) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateEnterDetails {
		return 0, ErrWrongState
	}
	return w.selected.TotalPrice(extraBed)
}

// Submit validates the customer details and commits the reservation
// through the store adapter, returning the charged total. On success
// the workflow reaches Confirmed and transient fields are cleared; on
// failure it stays in EnterDetails with all selections intact so the
// customer can retry.
func (w *Workflow) Submit(ctx context.Context, details Details) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateEnterDetails {
		return 0, ErrWrongState
	}
	if details.Email == "" {
		return 0, ErrEmailRequired
	}
	total, err := w.selected.TotalPrice(details.ExtraBed)
	if err != nil {
		return 0, err
	}

	created, err := w.store.Create(ctx, reservation.CreateParams{
		Date:          w.date,
		TypeID:        w.selected.ID,
		UnitID:        w.unitID,
		CustomerName:  details.Name,
		CustomerPhone: details.Phone,
		CustomerEmail: details.Email,
		HasExtraBed:   details.ExtraBed,
		SlipImage:     details.SlipImage,
	})
	if err != nil {
		return 0, err
	}

	w.result = &created
	w.state = StateConfirmed
	w.date = ""
	w.selected = catalog.AccommodationType{}
	w.unitID = ""
	return total, nil
}

// Back steps the workflow one screen towards date selection, keeping
// the earlier choices so the customer can revise them.
func (w *Workflow) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch w.state {
	case StateSelectUnit:
		w.state = StateSelectDate
	case StateEnterDetails:
		w.state = StateSelectUnit
		w.selected = catalog.AccommodationType{}
		w.unitID = ""
	default:
		return ErrWrongState
	}
	return nil
}

// StartOver resets to a fresh date-selection step with no memory of
// prior selections.
func (w *Workflow) StartOver() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = StateSelectDate
	w.date = ""
	w.selected = catalog.AccommodationType{}
	w.unitID = ""
	w.result = nil
}
