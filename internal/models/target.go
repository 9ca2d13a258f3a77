package models

import (
	"fmt"
	"strings"
)

// TargetType is the Go-side type a caller asks a value to be extracted as.
type TargetType int

const (
	TargetBool TargetType = iota
	TargetSignedInteger
	TargetUnsignedInteger
	TargetNumber // integer-truncated number, nil when unavailable
	TargetString
	TargetUnixDate
	TargetDecimalNumber
	TargetRawSequence
	TargetRawMapping
	TargetNestedMappingView
)

// targetNames are also the names accepted on the command line.
var targetNames = [...]string{
	TargetBool:              "bool",
	TargetSignedInteger:     "int",
	TargetUnsignedInteger:   "uint",
	TargetNumber:            "number",
	TargetString:            "string",
	TargetUnixDate:          "date",
	TargetDecimalNumber:     "decimal",
	TargetRawSequence:       "array",
	TargetRawMapping:        "map",
	TargetNestedMappingView: "object",
}

func (t TargetType) String() string {
	if t < 0 || int(t) >= len(targetNames) {
		return "unknown"
	}
	return targetNames[t]
}

// TargetTypes lists every target type in declaration order.
func TargetTypes() []TargetType {
	types := make([]TargetType, len(targetNames))
	for i := range types {
		types[i] = TargetType(i)
	}
	return types
}

// ParseTargetType resolves a target name such as "decimal" or "date".
func ParseTargetType(name string) (TargetType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range targetNames {
		if n == name {
			return TargetType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown target type %q (want one of %s)", name, strings.Join(targetNames[:], ", "))
}
