package submodes

import (
	"testing"
	"time"

	"go.starlark.net/starlark"
)

func TestToValue(t *testing.T) {
	type testStruct struct {
		Exported   string
		unexported int
	}

	ptrStruct := &testStruct{
		Exported:   "hello",
		unexported: 42,
	}

	structDict := func(s string) *starlark.Dict {
		d := starlark.NewDict(1)
		d.SetKey(starlark.String("Exported"), starlark.String(s))
		return d
	}

	testCases := []struct {
		name     string
		input    any
		expected starlark.Value
	}{
		{"nil", nil, starlark.None},
		{"bool", true, starlark.True},
		{"bytes", []byte("abc"), starlark.Bytes("abc")},
		{"string", "hello", starlark.String("hello")},
		{"int", int(42), starlark.MakeInt(42)},
		{"int8", int8(-42), starlark.MakeInt(-42)},
		{"uint16", uint16(42), starlark.MakeUint(42)},
		{"uint64", uint64(42), starlark.MakeUint64(42)},
		{"float64", float64(3.14), starlark.Float(3.14)},
		{"duration", 2 * time.Second, starlark.String("2s")},
		{"[]any", []any{1, "a", true}, starlark.NewList([]starlark.Value{starlark.MakeInt(1), starlark.String("a"), starlark.True})},
		{"map[string]string", map[string]string{"b": "2", "a": "1"}, func() starlark.Value {
			d := starlark.NewDict(2)
			d.SetKey(starlark.String("a"), starlark.String("1"))
			d.SetKey(starlark.String("b"), starlark.String("2"))
			return d
		}()},
		{"struct", testStruct{Exported: "hello", unexported: 42}, structDict("hello")},
		{"pointer to struct", ptrStruct, structDict("hello")},
		{"pointer to pointer to struct", &ptrStruct, structDict("hello")},
		{"nil pointer", (*testStruct)(nil), starlark.None},
		{"starlark value", starlark.MakeInt(1), starlark.MakeInt(1)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := toValue(tc.input)
			if err != nil {
				t.Fatal(err)
			}
			equal, err := starlark.Equal(actual, tc.expected)
			if err != nil {
				t.Fatalf("comparison failed: %v", err)
			}
			if !equal {
				t.Errorf("toValue(%#v) = %v, want %v", tc.input, actual, tc.expected)
			}
		})
	}

	t.Run("sorted keys", func(t *testing.T) {
		v, err := toValue(map[string]int{"c": 3, "a": 1, "b": 2})
		if err != nil {
			t.Fatal(err)
		}
		if str := v.String(); str != `{"a": 1, "b": 2, "c": 3}` {
			t.Fatalf("got %s", str)
		}
	})

	t.Run("unsupported type", func(t *testing.T) {
		if _, err := toValue(make(chan bool)); err == nil {
			t.Fatal("should error")
		}
	})
}
