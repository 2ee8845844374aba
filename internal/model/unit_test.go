package model_test

import (
	"testing"

	"github.com/tettoewai/restaurant-pos-sub001/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCategoryOf(t *testing.T) {
	cases := map[model.Unit]model.UnitCategory{
		model.UnitG:    model.CategoryMass,
		model.UnitKG:   model.CategoryMass,
		model.UnitVISS: model.CategoryMass,
		model.UnitLB:   model.CategoryMass,
		model.UnitOZ:   model.CategoryMass,
		model.UnitML:   model.CategoryVolume,
		model.UnitL:    model.CategoryVolume,
		model.UnitGAL:  model.CategoryVolume,
		model.UnitUNIT: model.CategoryCount,
		model.UnitDOZ:  model.CategoryCount,
	}
	for unit, want := range cases {
		got, err := model.CategoryOf(unit)
		require.NoError(t, err)
		assert.Equal(t, want, got, string(unit))
	}

	_, err := model.CategoryOf(model.Unit("TON"))
	require.Error(t, err)
}

func TestToBaseUnit(t *testing.T) {
	cases := []struct {
		qty  string
		unit model.Unit
		want string
	}{
		{"5", model.UnitKG, "5000"},
		{"250", model.UnitG, "250"},
		{"2", model.UnitVISS, "3265.86"},
		{"1", model.UnitLB, "453.592"},
		{"4", model.UnitOZ, "113.398"},
		{"1.5", model.UnitL, "1500"},
		{"1", model.UnitGAL, "3785.41"},
		{"3", model.UnitDOZ, "36"},
		{"7", model.UnitUNIT, "7"},
	}
	for _, tc := range cases {
		got, err := model.ToBaseUnit(d(tc.qty), tc.unit)
		require.NoError(t, err)
		assert.True(t, got.Equal(d(tc.want)), "%s %s → %s, want %s", tc.qty, tc.unit, got, tc.want)
	}

	_, err := model.ToBaseUnit(d("1"), model.Unit("TON"))
	require.Error(t, err)
}

func TestFromBaseUnitRoundTrips(t *testing.T) {
	for _, unit := range []model.Unit{
		model.UnitKG, model.UnitVISS, model.UnitLB, model.UnitL, model.UnitGAL, model.UnitDOZ,
	} {
		qty := d("2")
		base, err := model.ToBaseUnit(qty, unit)
		require.NoError(t, err)
		back, err := model.FromBaseUnit(base, unit)
		require.NoError(t, err)
		assert.True(t, back.Equal(qty), "%s: %s → %s → %s", unit, qty, base, back)
	}
}

func TestStockMovementSigned(t *testing.T) {
	in := model.StockMovement{Type: model.MovementIn, Quantity: d("120")}
	out := model.StockMovement{Type: model.MovementOut, Quantity: d("120")}

	assert.True(t, in.Signed().Equal(d("120")))
	assert.True(t, out.Signed().Equal(d("-120")))
}
