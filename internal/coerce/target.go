package coerce

import (
	"fmt"

	"github.com/mcncl/extractor/internal/errors"
	"github.com/mcncl/extractor/internal/models"
)

// Outcome is what a converter reports alongside its result.
type Outcome uint8

const (
	// Converted means the result is valid.
	Converted Outcome = iota
	// Mismatched means the value's kind is not accepted by the target.
	Mismatched
	// Malformed means the kind is accepted but its content is not usable,
	// such as non-numeric text or a float outside the integer range.
	Malformed
)

// Target describes how to extract one Go type from a decoded value.
type Target[T any] struct {
	typ      models.TargetType
	fallback T
	convert  func(models.Value) (T, Outcome)
}

// NewTarget builds a Target. The converter must not modify the value it is
// given and should return the zero T with any outcome other than Converted.
func NewTarget[T any](typ models.TargetType, fallback T, convert func(models.Value) (T, Outcome)) Target[T] {
	return Target[T]{typ: typ, fallback: fallback, convert: convert}
}

// Type returns the target type this Target produces.
func (t Target[T]) Type() models.TargetType { return t.typ }

// Fallback returns the value lenient extraction resolves failures to.
func (t Target[T]) Fallback() T { return t.fallback }

// Accepts reports whether v converts without falling back.
func (t Target[T]) Accepts(v models.Value) bool {
	_, outcome := t.convert(v)
	return outcome == Converted
}

// Coerce converts v. Lenient mode never returns an error.
func (t Target[T]) Coerce(v models.Value, mode Mode) (T, error) {
	out, outcome := t.convert(v)
	if outcome == Converted {
		return out, nil
	}
	if mode == Lenient {
		return t.fallback, nil
	}
	var zero T
	return zero, t.failure(v, outcome)
}

func (t Target[T]) failure(v models.Value, outcome Outcome) error {
	err := &errors.CoercionError{Expected: t.typ, Found: v.Kind()}
	switch {
	case v.Kind() == models.KindAbsent:
		err.Reason = errors.ErrKeyMissing
	case outcome == Malformed:
		err.Reason = errors.ErrParseFailure
		err.Input = inputText(v)
	default:
		err.Reason = errors.ErrTypeMismatch
	}
	return err
}

func inputText(v models.Value) string {
	if s, ok := v.Text(); ok {
		return s
	}
	if lit := v.Literal(); lit != "" {
		return lit
	}
	return fmt.Sprint(v.Raw())
}

// Checker is the type-erased part of a Target, used to probe one value
// against several targets.
type Checker interface {
	Type() models.TargetType
	Accepts(v models.Value) bool
}

// Builtin returns the targets defined by this package in target-type order.
func Builtin() []Checker {
	return []Checker{Bool, Int, Uint, Number, String, UnixDate, Decimal, Sequence, Mapping}
}

// From applies lenient coercion directly to a decoded value.
func From[T any](raw any, t Target[T]) T {
	out, _ := t.Coerce(models.Of(raw), Lenient)
	return out
}
