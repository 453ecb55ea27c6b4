package geocode

import (
	"fmt"
	"sort"
	"strings"
)

// localityKeys is the preference order of keys that may carry a
// human-readable place name in a geocoder payload. The first key that
// yields a non-empty value anywhere in the tree wins.
var localityKeys = []string{
	"district",
	"admin_area4",
	"adminInfo",
	"subdistrict",
	"city",
	"state",
}

// LocalityName extracts a locality string from an untyped geocoder payload.
// Key comparison is case-insensitive and the search descends through nested
// objects and arrays. Returns "" when no key yields a usable value.
func LocalityName(payload interface{}) string {
	for _, key := range localityKeys {
		if v, ok := findKey(payload, key); ok {
			return v
		}
	}
	return ""
}

// findKey searches the JSON tree depth-first for a key matching name
// case-insensitively whose value renders to a non-empty scalar. Object keys
// are visited in sorted order so the search is deterministic regardless of
// map iteration order.
func findKey(node interface{}, name string) (string, bool) {
	switch t := node.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			if strings.EqualFold(k, name) {
				if s, ok := scalarString(t[k]); ok {
					return s, true
				}
			}
		}
		for _, k := range keys {
			if s, ok := findKey(t[k], name); ok {
				return s, true
			}
		}
	case []interface{}:
		for _, item := range t {
			if s, ok := findKey(item, name); ok {
				return s, true
			}
		}
	}
	return "", false
}

// scalarString renders a scalar node as a non-empty string. Objects and
// arrays are not usable place names and count as absent.
func scalarString(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	case float64:
		return fmt.Sprintf("%g", t), true
	case bool, nil:
		return "", false
	default:
		return "", false
	}
}
