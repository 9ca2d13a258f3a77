package models

// JSONValue is a generic type to represent any decoded value.
// This can be a string, number, boolean, null, object, or array.
type JSONValue = any

// JSONObject represents a decoded object, which is a map of strings to JSONValues.
type JSONObject map[string]JSONValue

// JSONArray represents a decoded array, which is a slice of JSONValues.
type JSONArray []JSONValue

// IntermediateRepresentation holds a decoded document in the normalized
// JSONObject/JSONArray shape, regardless of the wire format it came from.
type IntermediateRepresentation struct {
	Root        JSONValue
	RootIsArray bool   // True if the root of the document is an array vs an object
	Format      string // Wire format the document was decoded from
}
