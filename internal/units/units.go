// Package units converts tagged weight and length measurements into the
// canonical kilograms/centimeters used by parcel and customs building.
package units

import (
	"math"
	"strings"
)

// Conversion factors into the canonical unit.
const (
	gramsPerKilogram = 1000.0
	kgPerPound       = 0.45359237
	kgPerOunce       = 0.028349523125
	cmPerInch        = 2.54
)

// ToKilograms converts value tagged with unit into kilograms.
// ok is false when value is non-finite or <= 0, or unit is unrecognized.
// Callers must treat !ok as "measurement missing", never as zero.
func ToKilograms(value float64, unit string) (float64, bool) {
	if !positiveFinite(value) {
		return 0, false
	}
	switch normalize(unit) {
	case "kg":
		return value, true
	case "g":
		return value / gramsPerKilogram, true
	case "lb":
		return value * kgPerPound, true
	case "oz":
		return value * kgPerOunce, true
	}
	return 0, false
}

// ToCentimeters converts value tagged with unit into centimeters.
// Same contract as ToKilograms.
func ToCentimeters(value float64, unit string) (float64, bool) {
	if !positiveFinite(value) {
		return 0, false
	}
	switch normalize(unit) {
	case "cm":
		return value, true
	case "in":
		return value * cmPerInch, true
	}
	return 0, false
}

func positiveFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

func normalize(unit string) string {
	return strings.ToLower(strings.TrimSpace(unit))
}
