package extractor

import (
	"time"

	"github.com/mcncl/extractor/internal/coerce"
	"github.com/shopspring/decimal"
)

// The Force accessors succeed with exactly the values the lenient ones
// return for acceptable input and report everything else as an error.

func (e *Extractor) ForceBool(key string) (bool, error) {
	return Get(e, key, coerce.Bool, coerce.Forced)
}

func (e *Extractor) ForceInt(key string) (int64, error) {
	return Get(e, key, coerce.Int, coerce.Forced)
}

// ForceUint clamps negative values to zero rather than failing.
func (e *Extractor) ForceUint(key string) (uint64, error) {
	return Get(e, key, coerce.Uint, coerce.Forced)
}

func (e *Extractor) ForceNumber(key string) (*int64, error) {
	return Get(e, key, coerce.Number, coerce.Forced)
}

func (e *Extractor) ForceText(key string) (*string, error) {
	return Get(e, key, coerce.String, coerce.Forced)
}

func (e *Extractor) ForceUnixDate(key string) (*time.Time, error) {
	return Get(e, key, coerce.UnixDate, coerce.Forced)
}

// ForceDecimal reports non-numeric text as errors.ErrParseFailure.
func (e *Extractor) ForceDecimal(key string) (decimal.Decimal, error) {
	return Get(e, key, coerce.Decimal, coerce.Forced)
}

func (e *Extractor) ForceArray(key string) ([]any, error) {
	return Get(e, key, coerce.Sequence, coerce.Forced)
}

func (e *Extractor) ForceMap(key string) (map[string]any, error) {
	return Get(e, key, coerce.Mapping, coerce.Forced)
}

func (e *Extractor) ForceNested(key string) (*Extractor, error) {
	return Get(e, key, NestedView, coerce.Forced)
}
