// Package extractor wraps a decoded mapping and extracts typed values by key.
//
// Plain accessors such as Decimal or Number are lenient: they never fail and
// return the target's fallback when the key is missing or holds something
// else. The Force variants return a *errors.CoercionError instead. An
// Extractor never modifies the data it wraps and is safe for concurrent use.
package extractor

import (
	"sort"
	"time"

	"github.com/mcncl/extractor/internal/coerce"
	"github.com/mcncl/extractor/internal/errors"
	"github.com/mcncl/extractor/internal/models"
	"github.com/shopspring/decimal"
)

// Extractor is an immutable view over one decoded mapping. A nil *Extractor
// behaves as an empty mapping, so lenient lookups can be chained through
// Nested without checks.
type Extractor struct {
	data map[string]any
}

// NestedView re-wraps a nested mapping into a new Extractor over the same data.
var NestedView = coerce.NewTarget(models.TargetNestedMappingView, (*Extractor)(nil), toNested)

func toNested(v models.Value) (*Extractor, coerce.Outcome) {
	fields, ok := v.Fields()
	if !ok {
		return nil, coerce.Mismatched
	}
	return &Extractor{data: fields}, coerce.Converted
}

// New wraps value, which must be a mapping such as the map[string]any
// produced by a JSON decoder.
func New(value any) (*Extractor, error) {
	v := models.Of(value)
	fields, ok := v.Fields()
	if !ok {
		return nil, &errors.CoercionError{
			Reason:   errors.ErrNotMapping,
			Expected: models.TargetNestedMappingView,
			Found:    v.Kind(),
		}
	}
	return &Extractor{data: fields}, nil
}

// Data returns the wrapped mapping. It is shared, not copied; callers must
// treat it as read-only.
func (e *Extractor) Data() map[string]any {
	if e == nil {
		return nil
	}
	return e.data
}

// Lookup returns the value stored under key, or an absent Value.
func (e *Extractor) Lookup(key string) models.Value {
	if e == nil {
		return models.Missing()
	}
	raw, ok := e.data[key]
	if !ok {
		return models.Missing()
	}
	return models.Of(raw)
}

// Has reports whether key is present, even if its value is null.
func (e *Extractor) Has(key string) bool {
	_, ok := e.Data()[key]
	return ok
}

// Keys returns the mapping's keys in sorted order.
func (e *Extractor) Keys() []string {
	data := e.Data()
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of keys.
func (e *Extractor) Len() int {
	return len(e.Data())
}

// At follows path through nested mappings. Any step that is missing or not a
// mapping yields an absent Value.
func (e *Extractor) At(path ...string) models.Value {
	if len(path) == 0 {
		if e == nil {
			return models.Missing()
		}
		return models.Of(e.data)
	}
	v := e.Lookup(path[0])
	for _, key := range path[1:] {
		v = v.Get(key)
	}
	return v
}

// Get extracts key as t under mode. Forced errors carry the key.
func Get[T any](e *Extractor, key string, t coerce.Target[T], mode coerce.Mode) (T, error) {
	out, err := t.Coerce(e.Lookup(key), mode)
	if err != nil {
		return out, errors.WithKey(err, key)
	}
	return out, nil
}

func lenient[T any](e *Extractor, key string, t coerce.Target[T]) T {
	out, _ := t.Coerce(e.Lookup(key), coerce.Lenient)
	return out
}

func (e *Extractor) Bool(key string) bool { return lenient(e, key, coerce.Bool) }

func (e *Extractor) Int(key string) int64 { return lenient(e, key, coerce.Int) }

// Uint clamps negative values to zero.
func (e *Extractor) Uint(key string) uint64 { return lenient(e, key, coerce.Uint) }

// Number is truncated to an integer; nil when unavailable.
func (e *Extractor) Number(key string) *int64 { return lenient(e, key, coerce.Number) }

func (e *Extractor) Text(key string) *string { return lenient(e, key, coerce.String) }

func (e *Extractor) UnixDate(key string) *time.Time { return lenient(e, key, coerce.UnixDate) }

// Decimal never returns NaN; it is zero when unavailable.
func (e *Extractor) Decimal(key string) decimal.Decimal { return lenient(e, key, coerce.Decimal) }

func (e *Extractor) Array(key string) []any { return lenient(e, key, coerce.Sequence) }

func (e *Extractor) Map(key string) map[string]any { return lenient(e, key, coerce.Mapping) }

// Nested wraps the mapping under key in a new Extractor.
func (e *Extractor) Nested(key string) *Extractor { return lenient(e, key, NestedView) }
