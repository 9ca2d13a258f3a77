package models

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
)

// Kind is the dynamic type of one node in a decoded document.
type Kind int

const (
	KindAbsent Kind = iota
	KindNull
	KindBool
	KindInteger
	KindFloat
	KindString
	KindSequence
	KindMapping
)

var kindNames = [...]string{
	KindAbsent:   "absent",
	KindNull:     "null",
	KindBool:     "bool",
	KindInteger:  "integer",
	KindFloat:    "float",
	KindString:   "string",
	KindSequence: "sequence",
	KindMapping:  "mapping",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Value is a read-only view of one decoded node. The zero Value is absent.
//
// Values never copy or modify the data they classify: Items and Fields hand
// back the caller's own slice and map.
type Value struct {
	kind   Kind
	raw    any
	b      bool
	i      int64
	f      float64
	s      string
	items  []any
	fields map[string]any
}

// Missing returns the Value reported for a key that is not present.
func Missing() Value {
	return Value{kind: KindAbsent}
}

// Of classifies a decoded Go value. Types that fit none of the kinds are
// reported as null so they never satisfy a typed extraction.
func Of(raw any) Value {
	switch v := raw.(type) {
	case nil:
		return Value{kind: KindNull}
	case Value:
		return v
	case bool:
		return Value{kind: KindBool, raw: raw, b: v}
	case string:
		return Value{kind: KindString, raw: raw, s: v}
	case json.Number:
		return ofNumber(v)
	case int:
		return Value{kind: KindInteger, raw: raw, i: int64(v)}
	case int8:
		return Value{kind: KindInteger, raw: raw, i: int64(v)}
	case int16:
		return Value{kind: KindInteger, raw: raw, i: int64(v)}
	case int32:
		return Value{kind: KindInteger, raw: raw, i: int64(v)}
	case int64:
		return Value{kind: KindInteger, raw: raw, i: v}
	case uint:
		return ofUint(raw, uint64(v))
	case uint8:
		return ofUint(raw, uint64(v))
	case uint16:
		return ofUint(raw, uint64(v))
	case uint32:
		return ofUint(raw, uint64(v))
	case uint64:
		return ofUint(raw, v)
	case float32:
		return Value{kind: KindFloat, raw: raw, f: float64(v)}
	case float64:
		return Value{kind: KindFloat, raw: raw, f: v}
	case []any:
		return Value{kind: KindSequence, raw: raw, items: v}
	case JSONArray:
		return Value{kind: KindSequence, raw: raw, items: []any(v)}
	case map[string]any:
		return Value{kind: KindMapping, raw: raw, fields: v}
	case JSONObject:
		return Value{kind: KindMapping, raw: raw, fields: map[string]any(v)}
	}
	return ofReflect(raw)
}

func ofNumber(n json.Number) Value {
	if i, err := n.Int64(); err == nil {
		return Value{kind: KindInteger, raw: n, i: i, s: string(n)}
	}
	if f, err := n.Float64(); err == nil {
		return Value{kind: KindFloat, raw: n, f: f, s: string(n)}
	}
	return Value{kind: KindString, raw: n, s: string(n)}
}

func ofUint(raw any, u uint64) Value {
	if u > math.MaxInt64 {
		return Value{kind: KindFloat, raw: raw, f: float64(u), s: strconv.FormatUint(u, 10)}
	}
	return Value{kind: KindInteger, raw: raw, i: int64(u)}
}

// ofReflect handles named types and typed collections such as
// map[string]string or []int that the fast path does not list.
func ofReflect(raw any) Value {
	rv := reflect.ValueOf(raw)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return Value{kind: KindNull, raw: raw}
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Bool:
		return Value{kind: KindBool, raw: raw, b: rv.Bool()}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Value{kind: KindInteger, raw: raw, i: rv.Int()}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return ofUint(raw, rv.Uint())
	case reflect.Float32, reflect.Float64:
		return Value{kind: KindFloat, raw: raw, f: rv.Float()}
	case reflect.String:
		return Value{kind: KindString, raw: raw, s: rv.String()}
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return Value{kind: KindSequence, raw: raw, items: items}
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Value{kind: KindNull, raw: raw}
		}
		fields := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			fields[iter.Key().String()] = iter.Value().Interface()
		}
		return Value{kind: KindMapping, raw: raw, fields: fields}
	}
	return Value{kind: KindNull, raw: raw}
}

// Kind reports the dynamic type of the value.
func (v Value) Kind() Kind { return v.kind }

// Raw returns the decoded Go value the Value was built from.
func (v Value) Raw() any { return v.raw }

// Exists reports whether the value was present in its parent.
func (v Value) Exists() bool { return v.kind != KindAbsent }

func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == KindBool
}

func (v Value) Int() (int64, bool) {
	return v.i, v.kind == KindInteger
}

func (v Value) Float() (float64, bool) {
	return v.f, v.kind == KindFloat
}

// Text returns the string payload of a KindString value.
func (v Value) Text() (string, bool) {
	return v.s, v.kind == KindString
}

// Literal returns the exact text of a number decoded as json.Number or of an
// unsigned integer too large for int64, and "" otherwise.
func (v Value) Literal() string {
	if v.kind == KindInteger || v.kind == KindFloat {
		return v.s
	}
	return ""
}

func (v Value) Items() ([]any, bool) {
	return v.items, v.kind == KindSequence
}

func (v Value) Fields() (map[string]any, bool) {
	return v.fields, v.kind == KindMapping
}

// Get looks up key in a mapping. Missing keys and non-mapping values both
// yield an absent Value.
func (v Value) Get(key string) Value {
	if v.kind != KindMapping {
		return Missing()
	}
	raw, ok := v.fields[key]
	if !ok {
		return Missing()
	}
	return Of(raw)
}

// Index returns element i of a sequence, or an absent Value when out of range.
func (v Value) Index(i int) Value {
	if v.kind != KindSequence || i < 0 || i >= len(v.items) {
		return Missing()
	}
	return Of(v.items[i])
}

// Len returns the number of elements or fields, zero for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.items)
	case KindMapping:
		return len(v.fields)
	}
	return 0
}
