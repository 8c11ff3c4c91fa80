package domain

import "strings"

// UnitCategory is the dimensional class a unit belongs to. Conversion is
// only valid between units of the same category.
type UnitCategory int

const (
	TimeUnit UnitCategory = iota
	DistanceUnit
)

func (c UnitCategory) String() string {
	switch c {
	case TimeUnit:
		return "time"
	case DistanceUnit:
		return "distance"
	default:
		return "unknown"
	}
}

// Unit identifies a recognized measurement unit: its canonical token, its
// category, and the multiplicative factor to the category's base unit
// (seconds for time, meters for distance).
type Unit struct {
	Token    string
	Category UnitCategory
	Factor   float64
}

var (
	Seconds    = Unit{Token: "seconds", Category: TimeUnit, Factor: 1}
	Minutes    = Unit{Token: "minutes", Category: TimeUnit, Factor: 60}
	Hours      = Unit{Token: "hours", Category: TimeUnit, Factor: 3600}
	Meters     = Unit{Token: "meters", Category: DistanceUnit, Factor: 1}
	Kilometers = Unit{Token: "kilometers", Category: DistanceUnit, Factor: 1000}
	Feet       = Unit{Token: "feet", Category: DistanceUnit, Factor: 0.3048}
	Yards      = Unit{Token: "yards", Category: DistanceUnit, Factor: 0.9144}
	Miles      = Unit{Token: "miles", Category: DistanceUnit, Factor: 1609.344}
)

// unitAliases maps every accepted token spelling to its canonical unit.
// Lookup is case-insensitive; keys are lower case.
var unitAliases = map[string]Unit{
	"s": Seconds, "seconds": Seconds,
	"min": Minutes, "minutes": Minutes,
	"h": Hours, "hours": Hours,
	"m": Meters, "meters": Meters,
	"km": Kilometers, "kilometers": Kilometers, "kms": Kilometers,
	"ft": Feet, "feet": Feet, "foot": Feet,
	"yard": Yards, "yrd": Yards, "yards": Yards,
	"mile": Miles, "miles": Miles, "mi": Miles, "mls": Miles,
}

// ParseUnit resolves a unit token to its canonical unit.
func ParseUnit(token string) (Unit, error) {
	u, ok := unitAliases[strings.ToLower(strings.TrimSpace(token))]
	if !ok {
		return Unit{}, &UnrecognizedUnitError{Token: token}
	}
	return u, nil
}

// ValidatePair resolves both tokens and verifies they share a category.
// Time rendered in distance units is rejected the same as distance
// rendered in time units.
func ValidatePair(source, target string) (Unit, Unit, error) {
	src, err := ParseUnit(source)
	if err != nil {
		return Unit{}, Unit{}, err
	}
	dst, err := ParseUnit(target)
	if err != nil {
		return Unit{}, Unit{}, err
	}
	if src.Category != dst.Category {
		return Unit{}, Unit{}, &IncompatibleUnitsError{Source: src, Target: dst}
	}
	return src, dst, nil
}

// Normalize converts values from source to target units: to the category
// base unit via the source factor, then divided by the target factor.
func Normalize(values []float64, source, target string) ([]float64, error) {
	src, dst, err := ValidatePair(source, target)
	if err != nil {
		return nil, err
	}
	return ConvertValues(values, src, dst), nil
}

// ConvertValues converts between two already-validated units of the same
// category.
func ConvertValues(values []float64, src, dst Unit) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v * src.Factor / dst.Factor
	}
	return out
}
