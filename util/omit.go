package util

import "encoding/json"

// OmitKeys renders v through its JSON representation and removes the named
// keys from the resulting object, recursing into nested objects and arrays.
// Response handlers use it to strip fields that must not leave the service.
func OmitKeys(v interface{}, keys ...string) (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, err
	}
	drop := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		drop[k] = struct{}{}
	}
	omitFromMap(obj, drop)
	return obj, nil
}

func omitFromMap(obj map[string]interface{}, drop map[string]struct{}) {
	for k, v := range obj {
		if _, ok := drop[k]; ok {
			delete(obj, k)
			continue
		}
		omitFromValue(v, drop)
	}
}

func omitFromValue(v interface{}, drop map[string]struct{}) {
	switch t := v.(type) {
	case map[string]interface{}:
		omitFromMap(t, drop)
	case []interface{}:
		for _, item := range t {
			omitFromValue(item, drop)
		}
	}
}
