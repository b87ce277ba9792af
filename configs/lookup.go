package configs

import "errors"

// First returns the highest precedence value at path. A missing value is
// the zero value, not an error.
func First[T any](loader Loader, path string) (T, error) {
	var value T
	if err := loader.AssignFirst(path, &value); err != nil {
		if errors.Is(err, ErrValueNotFound) {
			return value, nil
		}
		return value, err
	}
	return value, nil
}

// Merge unions the maps at path across layers. Keys from earlier layers win.
func Merge[V any](loader Loader, path string) (map[string]V, error) {
	ret := make(map[string]V)
	for value, err := range loader.Values(path) {
		if err != nil {
			return nil, err
		}
		var m map[string]V
		if err := value.Decode(&m); err != nil {
			return nil, err
		}
		for k, v := range m {
			if _, ok := ret[k]; !ok {
				ret[k] = v
			}
		}
	}
	return ret, nil
}
