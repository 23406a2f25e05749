// Package units holds the measurement conversion tables. Storage is
// canonical metric (kg, cm); the conversion helpers exist for API
// consumers rendering values in the user's unit preference, which is
// why most of them have no server-side callers beyond RoundTo.
package units

import (
	"errors"
	"math"
)

var ErrUnsupportedUnit = errors.New("unsupported unit")

const (
	lbPerKg      = 2.20462
	cmPerInch    = 2.54
	inchesPerFt  = 12
	lbPerStone   = 14
	lbPerShortTn = 2000
)

type WeightUnit string

const (
	WeightKilogram  WeightUnit = "kg"
	WeightGram      WeightUnit = "g"
	WeightMilligram WeightUnit = "mg"
	WeightTonne     WeightUnit = "t"
	WeightPound     WeightUnit = "lb"
	WeightOunce     WeightUnit = "oz"
	WeightStone     WeightUnit = "st"
	WeightShortTon  WeightUnit = "ton"
)

type LengthUnit string

const (
	LengthCentimeter LengthUnit = "cm"
	LengthMillimeter LengthUnit = "mm"
	LengthMeter      LengthUnit = "m"
	LengthInch       LengthUnit = "in"
	LengthFoot       LengthUnit = "ft"
)

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

func round(v float64, decimals ...int) float64 {
	if len(decimals) == 0 {
		return v
	}
	return RoundTo(v, decimals[0])
}

func LbToKg(weightLb float64, decimals ...int) float64 {
	return round(weightLb/lbPerKg, decimals...)
}

func KgToLb(weightKg float64, decimals ...int) float64 {
	return round(weightKg*lbPerKg, decimals...)
}

// ToKg normalizes a weight to kilograms. Imperial input is taken as pounds.
func ToKg(weight float64, imperial bool, decimals ...int) float64 {
	if imperial {
		weight = LbToKg(weight)
	}
	return round(weight, decimals...)
}

// FromKg converts a stored kilogram value to the display unit.
// Imperial output is pounds.
func FromKg(weightKg float64, imperial bool, decimals ...int) float64 {
	if imperial {
		weightKg = KgToLb(weightKg)
	}
	return round(weightKg, decimals...)
}

// WeightToKg converts a weight in any supported unit to kilograms.
func WeightToKg(weight float64, unit WeightUnit, decimals ...int) (float64, error) {
	var result float64
	switch unit {
	case WeightKilogram:
		result = weight
	case WeightGram:
		result = weight / 1000
	case WeightMilligram:
		result = weight / 1_000_000
	case WeightTonne:
		result = weight * 1000
	case WeightPound:
		result = LbToKg(weight)
	case WeightOunce:
		result = LbToKg(weight / 16)
	case WeightStone:
		result = LbToKg(weight * lbPerStone)
	case WeightShortTon:
		result = LbToKg(weight * lbPerShortTn)
	default:
		return 0, ErrUnsupportedUnit
	}
	return round(result, decimals...), nil
}

// WeightToLb converts a weight in any supported unit to pounds.
func WeightToLb(weight float64, unit WeightUnit, decimals ...int) (float64, error) {
	var result float64
	switch unit {
	case WeightPound:
		result = weight
	case WeightOunce:
		result = weight / 16
	case WeightStone:
		result = weight * lbPerStone
	case WeightShortTon:
		result = weight * lbPerShortTn
	case WeightKilogram:
		result = KgToLb(weight)
	case WeightGram:
		result = KgToLb(weight / 1000)
	case WeightMilligram:
		result = KgToLb(weight / 1_000_000)
	case WeightTonne:
		result = KgToLb(weight * 1000)
	default:
		return 0, ErrUnsupportedUnit
	}
	return round(result, decimals...), nil
}

func InToCm(heightIn float64, decimals ...int) float64 {
	return round(heightIn*cmPerInch, decimals...)
}

func CmToIn(heightCm float64, decimals ...int) float64 {
	return round(heightCm/cmPerInch, decimals...)
}

// ToCm normalizes a height to centimeters. Imperial input is taken as inches.
func ToCm(height float64, imperial bool, decimals ...int) float64 {
	if imperial {
		height = InToCm(height)
	}
	return round(height, decimals...)
}

// FromCm converts a stored centimeter value to the display unit.
// Imperial output is inches.
func FromCm(heightCm float64, imperial bool, decimals ...int) float64 {
	if imperial {
		heightCm = CmToIn(heightCm)
	}
	return round(heightCm, decimals...)
}

// HeightToCm converts a height in any supported unit to centimeters.
func HeightToCm(height float64, unit LengthUnit, decimals ...int) (float64, error) {
	var result float64
	switch unit {
	case LengthCentimeter:
		result = height
	case LengthMillimeter:
		result = height / 10
	case LengthMeter:
		result = height * 100
	case LengthInch:
		result = InToCm(height)
	case LengthFoot:
		result = InToCm(height * inchesPerFt)
	default:
		return 0, ErrUnsupportedUnit
	}
	return round(result, decimals...), nil
}
