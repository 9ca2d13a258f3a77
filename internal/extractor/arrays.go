package extractor

import (
	"time"

	"github.com/mcncl/extractor/internal/coerce"
	"github.com/mcncl/extractor/internal/errors"
	"github.com/shopspring/decimal"
)

// GetArray coerces the sequence under key element by element, putting marker
// at every position whose element does not convert. mode applies to the
// outer value only.
func GetArray[T any](e *Extractor, key string, t coerce.Target[T], mode coerce.Mode, marker T) ([]T, error) {
	out, err := coerce.Array(e.Lookup(key), t, mode, marker)
	if err != nil {
		return nil, errors.WithKey(err, key)
	}
	return out, nil
}

// GetElements is GetArray reporting conversion per element instead of
// substituting a marker.
func GetElements[T any](e *Extractor, key string, t coerce.Target[T], mode coerce.Mode) ([]coerce.Element[T], error) {
	out, err := coerce.Elements(e.Lookup(key), t, mode)
	if err != nil {
		return nil, errors.WithKey(err, key)
	}
	return out, nil
}

// GetMarked is GetArray for a marker of any type, compared by the caller
// through identity.
func GetMarked[T any](e *Extractor, key string, t coerce.Target[T], mode coerce.Mode, marker any) ([]any, error) {
	out, err := coerce.MarkedArray(e.Lookup(key), t, mode, marker)
	if err != nil {
		return nil, errors.WithKey(err, key)
	}
	return out, nil
}

// The typed-array accessors below are lenient about the outer value and use
// the target's fallback as the marker: nil for pointer and collection
// results, zero for decimals.

func lenientArray[T any](e *Extractor, key string, t coerce.Target[T]) []T {
	out, _ := coerce.Array(e.Lookup(key), t, coerce.Lenient, t.Fallback())
	return out
}

// Numbers truncates every element to an integer.
func (e *Extractor) Numbers(key string) []*int64 { return lenientArray(e, key, coerce.Number) }

func (e *Extractor) Strings(key string) []*string { return lenientArray(e, key, coerce.String) }

func (e *Extractor) UnixDates(key string) []*time.Time { return lenientArray(e, key, coerce.UnixDate) }

// Decimals never contains NaN.
func (e *Extractor) Decimals(key string) []decimal.Decimal {
	return lenientArray(e, key, coerce.Decimal)
}

func (e *Extractor) Arrays(key string) [][]any { return lenientArray(e, key, coerce.Sequence) }

func (e *Extractor) Maps(key string) []map[string]any { return lenientArray(e, key, coerce.Mapping) }

func (e *Extractor) NestedList(key string) []*Extractor { return lenientArray(e, key, NestedView) }
