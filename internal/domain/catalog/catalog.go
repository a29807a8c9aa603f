package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrTypeNotFound       = errors.New("catalog: accommodation type not found")
	ErrDuplicatePrefix    = errors.New("catalog: unit prefix already used by another type")
	ErrExtraBedNotAllowed = errors.New("catalog: type does not allow an extra bed")
)

// AccommodationType is static reference data describing one bookable
// accommodation category of the venue. Units are not stored anywhere;
// they are derived from UnitPrefix and TotalUnits on demand.
type AccommodationType struct {
	ID             string
	Name           string
	Description    string
	BasePrice      int
	Capacity       int
	TotalUnits     int
	UnitPrefix     string
	AllowsExtraBed bool
	ExtraBedPrice  int
}

// Units derives the identifiers of all physical units of this type,
// UnitPrefix followed by a 1-based index.
func (t AccommodationType) Units() []string {
	units := make([]string, 0, t.TotalUnits)
	for i := 1; i <= t.TotalUnits; i++ {
		units = append(units, t.UnitPrefix+strconv.Itoa(i))
	}
	return units
}

// HasUnit reports whether unitID is exactly one of the derived unit
// identifiers. Only the canonical spelling counts: "G01" or "G+1" would
// alias unit G1 in the availability set and slip past the
// double-booking check.
func (t AccommodationType) HasUnit(unitID string) bool {
	rest, ok := strings.CutPrefix(unitID, t.UnitPrefix)
	if !ok || rest == "" {
		return false
	}
	idx, err := strconv.Atoi(rest)
	if err != nil || rest != strconv.Itoa(idx) {
		return false
	}
	return idx >= 1 && idx <= t.TotalUnits
}

// TotalPrice computes the nightly total for one unit of this type.
// Requesting an extra bed on a type that does not allow one is an error.
func (t AccommodationType) TotalPrice(extraBed bool) (int, error) {
	if !extraBed {
		return t.BasePrice, nil
	}
	if !t.AllowsExtraBed {
		return 0, ErrExtraBedNotAllowed
	}
	return t.BasePrice + t.ExtraBedPrice, nil
}

// Activity is a paid on-site activity shown on the activities view.
type Activity struct {
	ID     int
	Title  string
	Prices []string
}

// Catalog holds the venue's immutable reference data.
type Catalog struct {
	types      []AccommodationType
	activities []Activity
}

// New validates the reference data and builds a catalog. Unit prefixes
// must be unique across types so derived unit identifiers never collide.
func New(types []AccommodationType, activities []Activity) (*Catalog, error) {
	seen := make(map[string]string, len(types))
	for _, t := range types {
		if t.ID == "" || t.UnitPrefix == "" {
			return nil, fmt.Errorf("catalog: type %q: id and unit prefix are required", t.ID)
		}
		if t.TotalUnits <= 0 {
			return nil, fmt.Errorf("catalog: type %q: total units must be positive", t.ID)
		}
		if other, ok := seen[t.UnitPrefix]; ok {
			return nil, fmt.Errorf("%w: %q used by %q and %q", ErrDuplicatePrefix, t.UnitPrefix, other, t.ID)
		}
		seen[t.UnitPrefix] = t.ID
	}
	return &Catalog{types: types, activities: activities}, nil
}

// Default returns the ArchaTara venue catalog.
func Default() *Catalog {
	cat, err := New([]AccommodationType{
		{
			ID:          "camping",
			Name:        "Camping Space",
			Description: "Riverside tent pitch, bring your own tent",
			BasePrice:   200,
			Capacity:    2,
			TotalUnits:  12,
			UnitPrefix:  "C",
		},
		{
			ID:             "glamping",
			Name:           "Glamping Tent",
			Description:    "Air-conditioned bell tent",
			BasePrice:      1200,
			Capacity:       2,
			TotalUnits:     2,
			UnitPrefix:     "G",
			AllowsExtraBed: true,
			ExtraBedPrice:  300,
		},
		{
			ID:             "bamboo",
			Name:           "Bamboo House",
			Description:    "Private air-conditioned bamboo house",
			BasePrice:      1000,
			Capacity:       2,
			TotalUnits:     3,
			UnitPrefix:     "B",
			AllowsExtraBed: true,
			ExtraBedPrice:  300,
		},
	}, []Activity{
		{ID: 1, Title: "ATV Ride", Prices: []string{"15 min 250 THB", "30 min 400 THB"}},
		{ID: 2, Title: "Archery", Prices: []string{"30 min 300 THB per person"}},
		{ID: 3, Title: "Horse Riding", Prices: []string{"30 min 700 THB", "60 min 1,200 THB"}},
	})
	if err != nil {
		panic(err)
	}
	return cat
}

// Types returns the accommodation types in catalog order.
func (c *Catalog) Types() []AccommodationType {
	out := make([]AccommodationType, len(c.types))
	copy(out, c.types)
	return out
}

// TypeByID resolves an accommodation type or ErrTypeNotFound.
func (c *Catalog) TypeByID(id string) (AccommodationType, error) {
	for _, t := range c.types {
		if t.ID == id {
			return t, nil
		}
	}
	return AccommodationType{}, ErrTypeNotFound
}

// Activities returns the bookable activities.
func (c *Catalog) Activities() []Activity {
	out := make([]Activity, len(c.activities))
	copy(out, c.activities)
	return out
}
