package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// minorUnitPlaces is the accepted contract between the engine and its callers:
// amounts are converted at 2 decimal places, rounding half away from zero.
const minorUnitPlaces = 2

// ToMinorUnits converts a user-facing decimal amount string into integer minor
// units. The engine itself only ever deals in integers; this conversion lives
// at the boundary.
func ToMinorUnits(value string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid amount format: %w", err)
	}
	return d.Shift(minorUnitPlaces).Round(0).IntPart(), nil
}

// FromMinorUnits renders minor units back as a fixed two-decimal string.
func FromMinorUnits(minor int64) string {
	return decimal.NewFromInt(minor).Shift(-minorUnitPlaces).StringFixed(minorUnitPlaces)
}
