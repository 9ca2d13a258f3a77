package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mcncl/extractor/internal/models"
)

// Sentinel errors for forced extraction. Use errors.Is() to check for them.
var (
	// ErrKeyMissing indicates the requested key is not present.
	ErrKeyMissing = errors.New("key missing")

	// ErrTypeMismatch indicates the value has a kind the target does not accept.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrParseFailure indicates numeric text or a float that cannot be represented.
	ErrParseFailure = errors.New("parse failure")

	// ErrNotMapping indicates a view was requested over something that is not a mapping.
	ErrNotMapping = errors.New("not a mapping")
)

// CoercionError describes why a forced extraction failed.
type CoercionError struct {
	Reason   error             // ErrKeyMissing, ErrTypeMismatch, ErrParseFailure or ErrNotMapping
	Key      string            // Key the value was looked up under, empty for direct coercion
	Expected models.TargetType // Target the caller asked for
	Found    models.Kind       // Dynamic kind actually present
	Input    string            // Offending text for parse failures
}

func (e *CoercionError) Error() string {
	var b strings.Builder
	b.WriteString(e.Reason.Error())
	if e.Key != "" {
		fmt.Fprintf(&b, " for key %q", e.Key)
	}
	switch {
	case errors.Is(e.Reason, ErrKeyMissing):
		fmt.Fprintf(&b, ": expected %s", e.Expected)
	case errors.Is(e.Reason, ErrParseFailure) && e.Input != "":
		fmt.Fprintf(&b, ": cannot read %q as %s", e.Input, e.Expected)
	default:
		fmt.Fprintf(&b, ": expected %s, found %s", e.Expected, e.Found)
	}
	return b.String()
}

func (e *CoercionError) Unwrap() error {
	return e.Reason
}

// WithKey returns a copy of err carrying key when err is a *CoercionError,
// and err unchanged otherwise.
func WithKey(err error, key string) error {
	var ce *CoercionError
	if !errors.As(err, &ce) {
		return err
	}
	keyed := *ce
	keyed.Key = key
	return &keyed
}
