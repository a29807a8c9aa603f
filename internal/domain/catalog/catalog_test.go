package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitsAreDerivedFromPrefixAndCount(t *testing.T) {
	cat := Default()

	glamping, err := cat.TypeByID("glamping")
	require.NoError(t, err)
	assert.Equal(t, []string{"G1", "G2"}, glamping.Units())

	camping, err := cat.TypeByID("camping")
	require.NoError(t, err)
	assert.Len(t, camping.Units(), 12)
	assert.Equal(t, "C1", camping.Units()[0])
	assert.Equal(t, "C12", camping.Units()[11])
}

func TestHasUnitBounds(t *testing.T) {
	cat := Default()
	camping, err := cat.TypeByID("camping")
	require.NoError(t, err)

	assert.True(t, camping.HasUnit("C1"))
	assert.True(t, camping.HasUnit("C12"))
	assert.False(t, camping.HasUnit("C0"))
	assert.False(t, camping.HasUnit("C13"))
	assert.False(t, camping.HasUnit("C"))
	assert.False(t, camping.HasUnit("G1"))
	assert.False(t, camping.HasUnit("Cx"))
}

func TestHasUnitRejectsNonCanonicalSpellings(t *testing.T) {
	cat := Default()
	glamping, err := cat.TypeByID("glamping")
	require.NoError(t, err)

	// Aliases of G1 that Atoi would accept but Units() never produces.
	assert.False(t, glamping.HasUnit("G01"))
	assert.False(t, glamping.HasUnit("G+1"))
	assert.False(t, glamping.HasUnit("G001"))
	assert.False(t, glamping.HasUnit("G 1"))
	assert.True(t, glamping.HasUnit("G1"))
}

func TestTotalPrice(t *testing.T) {
	cat := Default()

	glamping, err := cat.TypeByID("glamping")
	require.NoError(t, err)
	total, err := glamping.TotalPrice(false)
	require.NoError(t, err)
	assert.Equal(t, 1200, total)
	total, err = glamping.TotalPrice(true)
	require.NoError(t, err)
	assert.Equal(t, 1500, total)

	camping, err := cat.TypeByID("camping")
	require.NoError(t, err)
	_, err = camping.TotalPrice(true)
	assert.ErrorIs(t, err, ErrExtraBedNotAllowed)
}

func TestNewRejectsDuplicateUnitPrefix(t *testing.T) {
	_, err := New([]AccommodationType{
		{ID: "a", UnitPrefix: "X", TotalUnits: 2},
		{ID: "b", UnitPrefix: "X", TotalUnits: 3},
	}, nil)
	assert.ErrorIs(t, err, ErrDuplicatePrefix)
}

func TestTypeByIDUnknown(t *testing.T) {
	_, err := Default().TypeByID("treehouse")
	assert.ErrorIs(t, err, ErrTypeNotFound)
}
