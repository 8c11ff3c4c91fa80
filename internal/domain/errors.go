package domain

import "fmt"

// UnrecognizedUnitError reports a unit token outside the known time and
// distance sets.
type UnrecognizedUnitError struct {
	Token string
}

func (e *UnrecognizedUnitError) Error() string {
	return fmt.Sprintf("unrecognized unit %q", e.Token)
}

// IncompatibleUnitsError reports a source/target unit pair from different
// dimensional categories. Conversion is only defined within a category.
type IncompatibleUnitsError struct {
	Source Unit
	Target Unit
}

func (e *IncompatibleUnitsError) Error() string {
	return fmt.Sprintf("incompatible units: %s is %s, %s is %s",
		e.Source.Token, e.Source.Category, e.Target.Token, e.Target.Category)
}

// EmptyInputError reports an operation whose result is undefined for an
// empty collection.
type EmptyInputError struct {
	Op string
}

func (e *EmptyInputError) Error() string {
	return e.Op + ": empty input"
}

// DuplicateRangeValueError reports two isoline entries sharing a range
// value, which makes their nesting order ambiguous.
type DuplicateRangeValueError struct {
	Value float64
}

func (e *DuplicateRangeValueError) Error() string {
	return fmt.Sprintf("duplicate isoline range value %g", e.Value)
}

// InsufficientRingsError reports a region build with no rings.
type InsufficientRingsError struct {
	Count int
}

func (e *InsufficientRingsError) Error() string {
	return fmt.Sprintf("need at least 1 ring, got %d", e.Count)
}

// NonNestedRingsError reports a ring whose bounding box does not contain
// the previous ring's. The annulus construction is only correct for
// properly nested rings; this is a cheap guard, not a full containment
// proof.
type NonNestedRingsError struct {
	Index int
}

func (e *NonNestedRingsError) Error() string {
	return fmt.Sprintf("ring %d does not contain the previous ring's bounding box", e.Index)
}

// DegenerateSpanError reports a viewport span from which no positive
// round scale bar length can be derived.
type DegenerateSpanError struct {
	SpanMeters float64
}

func (e *DegenerateSpanError) Error() string {
	return fmt.Sprintf("no scale bar length derivable from span %g m", e.SpanMeters)
}
