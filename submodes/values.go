package submodes

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"time"

	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
)

// toValue converts Go data exposed to scripts. Map keys are inserted in
// sorted order so iteration is stable. Funcs become builtins.
func toValue(v any) (starlark.Value, error) {
	switch v := v.(type) {
	case nil:
		return starlark.None, nil
	case starlark.Value:
		return v, nil
	case []byte:
		return starlark.Bytes(v), nil
	case time.Time:
		return starlark.String(v.Format(time.RFC3339)), nil
	case time.Duration:
		return starlark.String(v.String()), nil
	}

	value := reflect.ValueOf(v)
	switch value.Kind() {

	case reflect.Bool:
		return starlark.Bool(value.Bool()), nil

	case reflect.String:
		return starlark.String(value.String()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return starlark.MakeInt64(value.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return starlark.MakeUint64(value.Uint()), nil

	case reflect.Float32, reflect.Float64:
		return starlark.Float(value.Float()), nil

	case reflect.Slice, reflect.Array:
		elems := make([]starlark.Value, 0, value.Len())
		for i := range value.Len() {
			elem, err := toValue(value.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
		}
		return starlark.NewList(elems), nil

	case reflect.Map:
		keys := value.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return cmp.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
		})
		d := starlark.NewDict(len(keys))
		for _, key := range keys {
			k, err := toValue(key.Interface())
			if err != nil {
				return nil, err
			}
			elem, err := toValue(value.MapIndex(key).Interface())
			if err != nil {
				return nil, err
			}
			if err := d.SetKey(k, elem); err != nil {
				return nil, err
			}
		}
		return d, nil

	case reflect.Struct:
		typ := value.Type()
		d := starlark.NewDict(value.NumField())
		for i := range value.NumField() {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			elem, err := toValue(value.Field(i).Interface())
			if err != nil {
				return nil, err
			}
			if err := d.SetKey(starlark.String(field.Name), elem); err != nil {
				return nil, err
			}
		}
		return d, nil

	case reflect.Pointer, reflect.Interface:
		if value.IsNil() {
			return starlark.None, nil
		}
		return toValue(value.Elem().Interface())

	case reflect.Func:
		return starlarkutil.MakeFunc("", value.Interface()), nil

	}

	return nil, fmt.Errorf("unsupported type for starlark: %T", v)
}
