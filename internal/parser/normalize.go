package parser

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mcncl/extractor/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// normalizeValue converts each decoder's node types into the JSONObject /
// JSONArray tree shared by every format.
func normalizeValue(val models.JSONValue) models.JSONValue {
	switch v := val.(type) {
	case map[string]interface{}:
		return normalizeObject(v)
	case primitive.M:
		return normalizeObject(v)
	case map[interface{}]interface{}:
		obj := make(models.JSONObject, len(v))
		for key, value := range v {
			obj[fmt.Sprint(key)] = normalizeValue(value)
		}
		return obj
	case primitive.D:
		obj := make(models.JSONObject, len(v))
		for _, elem := range v {
			obj[elem.Key] = normalizeValue(elem.Value)
		}
		return obj
	case []interface{}:
		return normalizeArray(v)
	case primitive.A:
		return normalizeArray(v)
	case []byte:
		return string(v)
	case time.Time:
		return epochSeconds(v)
	case primitive.DateTime:
		return epochSeconds(v.Time())
	case primitive.Timestamp:
		return int64(v.T)
	case primitive.Decimal128:
		return json.Number(v.String())
	case primitive.ObjectID:
		return v.Hex()
	default:
		return v // Primitives (string, numbers, bool, nil) are returned as is
	}
}

func normalizeObject(v map[string]interface{}) models.JSONObject {
	obj := make(models.JSONObject, len(v))
	for key, value := range v {
		obj[key] = normalizeValue(value)
	}
	return obj
}

func normalizeArray(v []interface{}) models.JSONArray {
	arr := make(models.JSONArray, len(v))
	for i, value := range v {
		arr[i] = normalizeValue(value)
	}
	return arr
}

// epochSeconds keeps sub-second precision so the value round-trips through
// UnixDate extraction.
func epochSeconds(t time.Time) models.JSONValue {
	if t.Nanosecond() == 0 {
		return t.Unix()
	}
	return float64(t.Unix()) + float64(t.Nanosecond())/1e9
}
