// Package coerce converts decoded values into Go types under one of two modes.
//
// Every conversion is described by a Target: the target type, the value
// returned when lenient extraction fails, and a converter that either yields
// the typed value or reports why it could not. Lenient mode resolves every
// failure to the target's fallback and never returns an error. Forced mode
// returns a *errors.CoercionError instead. The matching rules are the same in
// both modes; only the failure path differs.
//
// Numbers are truncated toward zero wherever an integer is produced, so 2.9
// becomes 2 and -2.9 becomes -2. Decimals are exact and never NaN.
//
// Array coercion applies a Target element by element. The mode only governs
// the outer shape check: an element that fails is replaced by a marker (or
// reported through Element.Converted) and never aborts the array. When a
// marker is used to detect failed positions, compare by identity (pointer
// equality) with a marker that cannot occur in the data; choosing a marker
// that equals a legitimate value makes the two indistinguishable.
package coerce
