package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Unit is the measurement unit a quantity was entered in.
// The stored quantity is always converted to the canonical base unit of its
// category (MASS → gram, VOLUME → millilitre, COUNT → unit) before persisting.
type Unit string

const (
	UnitG    Unit = "G"
	UnitKG   Unit = "KG"
	UnitML   Unit = "ML"
	UnitL    Unit = "L"
	UnitVISS Unit = "VISS"
	UnitLB   Unit = "LB"
	UnitOZ   Unit = "OZ"
	UnitGAL  Unit = "GAL"
	UnitDOZ  Unit = "DOZ"
	UnitUNIT Unit = "UNIT"
)

// UnitCategory groups units that convert into each other.
type UnitCategory string

const (
	CategoryMass   UnitCategory = "MASS"
	CategoryVolume UnitCategory = "VOLUME"
	CategoryCount  UnitCategory = "COUNT"
)

// toBase maps every unit to its multiplier into the category's base unit.
// VISS is the Burmese peittha: 1 viss = 1632.93 g.
var toBase = map[Unit]decimal.Decimal{
	UnitG:    decimal.NewFromInt(1),
	UnitKG:   decimal.NewFromInt(1000),
	UnitVISS: decimal.RequireFromString("1632.93"),
	UnitLB:   decimal.RequireFromString("453.592"),
	UnitOZ:   decimal.RequireFromString("28.3495"),
	UnitML:   decimal.NewFromInt(1),
	UnitL:    decimal.NewFromInt(1000),
	UnitGAL:  decimal.RequireFromString("3785.41"),
	UnitUNIT: decimal.NewFromInt(1),
	UnitDOZ:  decimal.NewFromInt(12),
}

var unitCategory = map[Unit]UnitCategory{
	UnitG:    CategoryMass,
	UnitKG:   CategoryMass,
	UnitVISS: CategoryMass,
	UnitLB:   CategoryMass,
	UnitOZ:   CategoryMass,
	UnitML:   CategoryVolume,
	UnitL:    CategoryVolume,
	UnitGAL:  CategoryVolume,
	UnitUNIT: CategoryCount,
	UnitDOZ:  CategoryCount,
}

// CategoryOf returns the category a unit belongs to.
func CategoryOf(u Unit) (UnitCategory, error) {
	cat, ok := unitCategory[u]
	if !ok {
		return "", fmt.Errorf("unknown unit %q", u)
	}
	return cat, nil
}

// ToBaseUnit converts qty expressed in u into the base unit of u's category.
func ToBaseUnit(qty decimal.Decimal, u Unit) (decimal.Decimal, error) {
	factor, ok := toBase[u]
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown unit %q", u)
	}
	return qty.Mul(factor), nil
}

// FromBaseUnit converts a canonical base quantity back into u for display.
func FromBaseUnit(qty decimal.Decimal, u Unit) (decimal.Decimal, error) {
	factor, ok := toBase[u]
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown unit %q", u)
	}
	return qty.DivRound(factor, 6), nil
}
