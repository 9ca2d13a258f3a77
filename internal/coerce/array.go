package coerce

import "github.com/mcncl/extractor/internal/models"

// Element is the result of coercing one array element.
// Value is the zero T when Converted is false.
type Element[T any] struct {
	Value     T
	Converted bool
}

// sequence performs the outer shape check shared by the array forms.
// ok is false when there is nothing to iterate; err is set only in forced mode.
func sequence(v models.Value, mode Mode) (items []any, ok bool, err error) {
	items, ok = v.Items()
	if ok {
		return items, true, nil
	}
	if mode == Lenient {
		return nil, false, nil
	}
	return nil, false, Sequence.failure(v, Mismatched)
}

// Elements coerces each element of a sequence, reporting per position
// whether it converted. The result has the same length and order as the input.
func Elements[T any](v models.Value, t Target[T], mode Mode) ([]Element[T], error) {
	items, ok, err := sequence(v, mode)
	if !ok {
		return nil, err
	}
	out := make([]Element[T], len(items))
	for i, item := range items {
		val, outcome := t.convert(models.Of(item))
		out[i] = Element[T]{Value: val, Converted: outcome == Converted}
	}
	return out, nil
}

// Array coerces each element of a sequence and puts marker wherever an
// element does not convert.
func Array[T any](v models.Value, t Target[T], mode Mode, marker T) ([]T, error) {
	items, ok, err := sequence(v, mode)
	if !ok {
		return nil, err
	}
	out := make([]T, len(items))
	for i, item := range items {
		val, outcome := t.convert(models.Of(item))
		if outcome != Converted {
			val = marker
		}
		out[i] = val
	}
	return out, nil
}

// MarkedArray is Array for markers that are not a T, such as a dedicated
// sentinel pointer. Converted elements are stored as T inside the []any.
func MarkedArray[T any](v models.Value, t Target[T], mode Mode, marker any) ([]any, error) {
	items, ok, err := sequence(v, mode)
	if !ok {
		return nil, err
	}
	out := make([]any, len(items))
	for i, item := range items {
		val, outcome := t.convert(models.Of(item))
		if outcome != Converted {
			out[i] = marker
			continue
		}
		out[i] = val
	}
	return out, nil
}

// FromArray applies lenient array coercion directly to a decoded value.
func FromArray[T any](raw any, t Target[T], marker T) []T {
	out, _ := Array(models.Of(raw), t, Lenient, marker)
	return out
}
