package toon

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

// Canonicalizer lets a type supply its own canonical representation for
// encoding. ToCanonical must return a value built only from nil, bool,
// int64, float64, string, map[string]interface{} and []interface{} (or
// further Canonicalizer values); the encoder never sees the original type.
type Canonicalizer interface {
	ToCanonical() interface{}
}

// normalizeValue reduces an arbitrary Go value to the canonical tree the
// encoder operates on: nil, bool, int64, float64, string,
// map[string]interface{} and []interface{}. Structs are flattened through
// encoding/json so their tags are honored.
func normalizeValue(v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}

	if c, ok := v.(Canonicalizer); ok {
		return normalizeValue(c.ToCanonical())
	}

	val := reflect.ValueOf(v)
	switch val.Kind() {
	case reflect.Ptr:
		if val.IsNil() {
			return nil, nil
		}
		return normalizeValue(val.Elem().Interface())
	case reflect.Interface:
		return normalizeValue(val.Elem().Interface())
	case reflect.Bool:
		return val.Bool(), nil
	case reflect.String:
		return val.String(), nil
	case reflect.Map:
		result := make(map[string]interface{}, val.Len())
		for _, key := range val.MapKeys() {
			keyStr := fmt.Sprintf("%v", key.Interface())
			normVal, err := normalizeValue(val.MapIndex(key).Interface())
			if err != nil {
				return nil, err
			}
			result[keyStr] = normVal
		}
		return result, nil
	case reflect.Slice, reflect.Array:
		result := make([]interface{}, val.Len())
		for i := 0; i < val.Len(); i++ {
			normVal, err := normalizeValue(val.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			result[i] = normVal
		}
		return result, nil
	case reflect.Struct:
		jsonBytes, err := json.Marshal(v)
		if err != nil {
			return nil, newEncodeError(ErrCodeUnsupportedType, "cannot normalize %T: %v", v, err)
		}
		var decoded interface{}
		if err := json.Unmarshal(jsonBytes, &decoded); err != nil {
			return nil, newEncodeError(ErrCodeUnsupportedType, "cannot normalize %T: %v", v, err)
		}
		return normalizeValue(decoded)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return val.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := val.Uint()
		if u > math.MaxInt64 {
			return float64(u), nil
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		f := val.Float()
		// encoding/json produces float64 for all numbers; fold whole values
		// back to int64 so integral numbers render without a decimal point.
		if !math.IsNaN(f) && !math.IsInf(f, 0) && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return int64(f), nil
		}
		return f, nil
	default:
		return nil, newEncodeError(ErrCodeUnsupportedType, "unsupported type: %T", v)
	}
}

// isPrimitive reports whether v is a canonical scalar (not an object or array).
func isPrimitive(v interface{}) bool {
	switch v.(type) {
	case nil, bool, int64, float64, string:
		return true
	default:
		return false
	}
}
