package convert

import (
	"fmt"
	"reflect"
)

var errNotMap = fmt.Errorf("input data is not a map")
var errNotScalarValue = fmt.Errorf("map value is not a scalar")
var errNotStringKey = fmt.Errorf("map key is not a string")
var errNotSlice = fmt.Errorf("input data is not a slice")
var errNotMapElement = fmt.Errorf("slice element is not a map[string]any")

// ToStringMap converts loosely typed maps (map[string]string, map[string]any,
// map[any]any as produced by YAML decoding) to map[string]string. Scalar
// values are coerced with fmt.Sprintf; nested maps and slices are rejected.
// Returns a nil map for nil input.
func ToStringMap(data any) (map[string]string, error) {
	if data == nil {
		return nil, nil
	}
	if m, ok := data.(map[string]string); ok {
		return m, nil
	}

	val := reflect.ValueOf(data)
	if val.Kind() != reflect.Map {
		return nil, fmt.Errorf("%w: input type %T", errNotMap, data)
	}

	result := make(map[string]string, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		key := iter.Key().Interface()
		keyStr, okKey := key.(string)
		if !okKey {
			return nil, fmt.Errorf("%w: key %v (type %T)", errNotStringKey, key, key)
		}
		value := iter.Value().Interface()
		switch reflect.ValueOf(value).Kind() {
		case reflect.Map, reflect.Slice, reflect.Array:
			return nil, fmt.Errorf("key '%s': %w (type %T)", keyStr, errNotScalarValue, value)
		}
		result[keyStr] = fmt.Sprintf("%v", value)
	}
	return result, nil
}

// ToSliceOfString converts slice types ([]string, []any) to []string,
// coercing elements with fmt.Sprintf. Returns an empty slice for nil input.
func ToSliceOfString(data any) ([]string, error) {
	if data == nil {
		return []string{}, nil
	}

	if slice, ok := data.([]string); ok {
		return slice, nil
	}

	val := reflect.ValueOf(data)
	if val.Kind() != reflect.Slice {
		return nil, fmt.Errorf("%w: input type %T", errNotSlice, data)
	}

	result := make([]string, 0, val.Len())
	for i := 0; i < val.Len(); i++ {
		item := val.Index(i).Interface()
		result = append(result, fmt.Sprintf("%v", item))
	}
	return result, nil
}

// ToSliceOfMap converts slice types ([]map[string]any, []any) to
// []map[string]any. Returns an error if input is not a slice or an element
// is not a string-keyed map.
func ToSliceOfMap(data any) ([]map[string]any, error) {
	if data == nil {
		return []map[string]any{}, nil
	}

	if sliceMap, ok := data.([]map[string]any); ok {
		return sliceMap, nil
	}

	val := reflect.ValueOf(data)
	if val.Kind() != reflect.Slice {
		return nil, fmt.Errorf("%w: input type %T", errNotSlice, data)
	}

	result := make([]map[string]any, 0, val.Len())
	for i := 0; i < val.Len(); i++ {
		item := val.Index(i).Interface()
		if mapItem, okMap := item.(map[string]any); okMap {
			result = append(result, mapItem)
		} else {
			return nil, fmt.Errorf("index %d: %w (type %T)", i, errNotMapElement, item)
		}
	}
	return result, nil
}
