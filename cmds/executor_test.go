package cmds

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestExecutor(t *testing.T) {
	executor := NewExecutor()

	var a int
	executor.Define("+a", Func(func() {
		a = 42
	}))
	executor.Define("a", Func(func(i int) {
		a = i
	}))

	if err := executor.Execute([]string{
		"+a",
	}); err != nil {
		t.Fatal(err)
	}
	if a != 42 {
		t.Fatal()
	}

	if err := executor.Execute([]string{
		"a", "1",
	}); err != nil {
		t.Fatal(err)
	}
	if a != 1 {
		t.Fatal()
	}

	err := executor.Execute([]string{
		"foo",
	})
	if !strings.Contains(err.Error(), "unknown command: foo") {
		t.Fatalf("got %v", err)
	}

	err = executor.Execute([]string{"a", "x"})
	if !strings.Contains(err.Error(), "a: convert x to int") {
		t.Fatalf("got %v", err)
	}
}

func TestDurationArgument(t *testing.T) {
	executor := NewExecutor()
	var d time.Duration
	var optional time.Duration
	executor.Define("-timeout", Func(func(v time.Duration) {
		d = v
	}))
	executor.Define("-maybe", Func(func(v *time.Duration) {
		optional = *v
	}))
	if err := executor.Execute([]string{"-timeout", "1m30s", "-maybe", "2s"}); err != nil {
		t.Fatal(err)
	}
	if d != 90*time.Second {
		t.Fatalf("got %v", d)
	}
	if optional != 2*time.Second {
		t.Fatalf("got %v", optional)
	}
	if err := executor.Execute([]string{"-timeout", "soon"}); err == nil {
		t.Fatal("should fail")
	}
}

func TestCommandError(t *testing.T) {
	executor := NewExecutor()
	executor.Define("fail", Func(func() error {
		return errors.New("failed")
	}))
	executor.Define("ok", Func(func() error {
		return nil
	}))
	if err := executor.Execute([]string{"ok"}); err != nil {
		t.Fatal(err)
	}
	if err := executor.Execute([]string{"fail"}); err == nil || err.Error() != "failed" {
		t.Fatalf("got %v", err)
	}
}

func TestSubCommands(t *testing.T) {
	executor := NewExecutor()
	var bar, baz int
	executor.Define("foo", Sub(map[string]*Command{
		"bar": Func(func() {
			bar = 1
		}),
		"baz": Func(func(i int) {
			baz = i
		}),
	}))

	if err := executor.Execute([]string{
		"foo",
		"bar",
		"baz", "42",
	}); err != nil {
		t.Fatal(err)
	}

	if bar != 1 {
		t.Fatal()
	}
	if baz != 42 {
		t.Fatal()
	}

}

func TestOptionalArgument(t *testing.T) {
	executor := NewExecutor()
	var n int
	var s string
	executor.Define("foo", Func(func(arg *int, arg2 *string) {
		n = *arg
		s = *arg2
	}))

	if err := executor.Execute([]string{"foo", "42", "foo"}); err != nil {
		t.Fatal(err)
	}
	if n != 42 || s != "foo" {
		t.Fatalf("got %v %q", n, s)
	}

	if err := executor.Execute([]string{"foo"}); err != nil {
		t.Fatal(err)
	}
	if n != 0 || s != "" {
		t.Fatalf("got %v %q", n, s)
	}
}

func TestUsage(t *testing.T) {
	executor := NewExecutor()
	buf := new(bytes.Buffer)
	executor.Output = buf
	executor.Define("-c", Func(func(string) {}).Desc("execute a command line and exit"))
	executor.Define("-timeout", Func(func(time.Duration) {}).Desc("external command timeout"))

	err := executor.Execute([]string{"--help"})
	if !errors.Is(err, ErrHelp) {
		t.Fatalf("got %v", err)
	}
	out := buf.String()
	for _, expected := range []string{
		"-c <string>",
		"execute a command line and exit",
		"-h, -help, --help",
		"-timeout <duration>",
	} {
		if !strings.Contains(out, expected) {
			t.Fatalf("%q not in %q", expected, out)
		}
	}
}
