package coerce

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mcncl/extractor/internal/models"
	"github.com/shopspring/decimal"
)

// Bounds of the integer ranges as float64. Both upper bounds are exact powers
// of two and lie one past the largest representable integer.
const (
	minInt64Float  = -9223372036854775808.0
	maxInt64Float  = 9223372036854775808.0
	maxUint64Float = 18446744073709551616.0
)

// Built-in targets.
var (
	// Bool accepts booleans only; integers are never read as flags.
	Bool = NewTarget(models.TargetBool, false, toBool)

	// Int accepts integers, floats truncated toward zero and numeric text.
	Int = NewTarget(models.TargetSignedInteger, int64(0), toInt64)

	// Uint accepts what Int accepts and clamps negative values to zero.
	Uint = NewTarget(models.TargetUnsignedInteger, uint64(0), toUint64)

	// Number is Int with nil as the fallback, for fields where absence
	// must stay distinguishable from zero.
	Number = NewTarget(models.TargetNumber, (*int64)(nil), toNumber)

	// String accepts strings only; numbers and booleans are not stringified.
	String = NewTarget(models.TargetString, (*string)(nil), toString)

	// UnixDate reads an integer or float as seconds since the Unix epoch.
	UnixDate = NewTarget(models.TargetUnixDate, (*time.Time)(nil), toUnixDate)

	// Decimal reads integers, floats and numeric text as an exact decimal.
	Decimal = NewTarget(models.TargetDecimalNumber, decimal.Zero, toDecimal)

	// Sequence returns the decoded slice as is.
	Sequence = NewTarget(models.TargetRawSequence, []any(nil), toSequence)

	// Mapping returns the decoded map as is.
	Mapping = NewTarget(models.TargetRawMapping, map[string]any(nil), toMapping)
)

func toBool(v models.Value) (bool, Outcome) {
	b, ok := v.Bool()
	if !ok {
		return false, Mismatched
	}
	return b, Converted
}

func toInt64(v models.Value) (int64, Outcome) {
	switch v.Kind() {
	case models.KindInteger:
		i, _ := v.Int()
		return i, Converted
	case models.KindFloat:
		f, _ := v.Float()
		return truncInt(f)
	case models.KindString:
		s, _ := v.Text()
		return parseInt(s)
	}
	return 0, Mismatched
}

// truncInt drops the fractional part toward zero.
func truncInt(f float64) (int64, Outcome) {
	t := math.Trunc(f)
	if math.IsNaN(t) || t < minInt64Float || t >= maxInt64Float {
		return 0, Malformed
	}
	return int64(t), Converted
}

func parseInt(s string) (int64, Outcome) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, Malformed
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, Converted
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, Malformed
	}
	return truncInt(f)
}

func toUint64(v models.Value) (uint64, Outcome) {
	switch v.Kind() {
	case models.KindInteger:
		i, _ := v.Int()
		if i < 0 {
			return 0, Converted
		}
		return uint64(i), Converted
	case models.KindFloat:
		if u, err := strconv.ParseUint(v.Literal(), 10, 64); err == nil {
			return u, Converted
		}
		f, _ := v.Float()
		return truncUint(f)
	case models.KindString:
		s, _ := v.Text()
		return parseUint(s)
	}
	return 0, Mismatched
}

func truncUint(f float64) (uint64, Outcome) {
	t := math.Trunc(f)
	switch {
	case math.IsNaN(t), math.IsInf(t, 0), t >= maxUint64Float:
		return 0, Malformed
	case t <= 0:
		return 0, Converted
	}
	return uint64(t), Converted
}

func parseUint(s string) (uint64, Outcome) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, Malformed
	}
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return u, Converted
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil && i < 0 {
		return 0, Converted
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, Malformed
	}
	return truncUint(f)
}

func toNumber(v models.Value) (*int64, Outcome) {
	n, outcome := toInt64(v)
	if outcome != Converted {
		return nil, outcome
	}
	return &n, Converted
}

func toString(v models.Value) (*string, Outcome) {
	s, ok := v.Text()
	if !ok {
		return nil, Mismatched
	}
	return &s, Converted
}

func toUnixDate(v models.Value) (*time.Time, Outcome) {
	switch v.Kind() {
	case models.KindInteger:
		sec, _ := v.Int()
		t := time.Unix(sec, 0).UTC()
		return &t, Converted
	case models.KindFloat:
		f, _ := v.Float()
		sec, outcome := truncInt(f)
		if outcome != Converted {
			return nil, outcome
		}
		nsec := math.Round((f - math.Trunc(f)) * 1e9)
		t := time.Unix(sec, int64(nsec)).UTC()
		return &t, Converted
	}
	return nil, Mismatched
}

func toDecimal(v models.Value) (decimal.Decimal, Outcome) {
	switch v.Kind() {
	case models.KindInteger:
		i, _ := v.Int()
		return decimal.NewFromInt(i), Converted
	case models.KindFloat:
		f, _ := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Decimal{}, Malformed
		}
		// Decoded text keeps digits a float64 would round away.
		if lit := v.Literal(); lit != "" {
			if d, err := decimal.NewFromString(lit); err == nil {
				return d, Converted
			}
		}
		return decimal.NewFromFloat(f), Converted
	case models.KindString:
		s, _ := v.Text()
		d, err := decimal.NewFromString(strings.TrimSpace(s))
		if err != nil {
			return decimal.Decimal{}, Malformed
		}
		return d, Converted
	}
	return decimal.Decimal{}, Mismatched
}

func toSequence(v models.Value) ([]any, Outcome) {
	items, ok := v.Items()
	if !ok {
		return nil, Mismatched
	}
	return items, Converted
}

func toMapping(v models.Value) (map[string]any, Outcome) {
	fields, ok := v.Fields()
	if !ok {
		return nil, Mismatched
	}
	return fields, Converted
}
