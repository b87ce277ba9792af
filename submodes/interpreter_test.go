package submodes

import (
	"context"
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/taish/errs"
	"github.com/reusee/taish/modes"
)

type testHost struct {
	lines []string
}

func (h *testHost) Run(ctx context.Context, line string) string {
	h.lines = append(h.lines, line)
	return "ran " + line
}

func (h *testHost) Environ() map[string]string {
	return map[string]string{
		"HOME": "/home/foo",
	}
}

func (h *testHost) Dir() string {
	return "/tmp/work"
}

func newTestInterpreter(t *testing.T) (*Interpreter, *testHost) {
	host := new(testHost)
	var ret *Interpreter
	dscope.New(new(Module), modes.ForTest(t)).Call(func(
		newInterpreter NewInterpreter,
	) {
		ret = newInterpreter(host)
	})
	return ret, host
}

func feed(t *testing.T, i *Interpreter, line string) string {
	t.Helper()
	out, err := i.Feed(context.Background(), line)
	if err != nil {
		t.Fatalf("%s: %v", line, err)
	}
	return out
}

func TestExpression(t *testing.T) {
	i, _ := newTestInterpreter(t)
	if out := feed(t, i, "x = 2"); out != "" {
		t.Fatalf("got %q", out)
	}
	if out := feed(t, i, "x * 21"); out != "42" {
		t.Fatalf("got %q", out)
	}
	if out := feed(t, i, "None"); out != "" {
		t.Fatalf("got %q", out)
	}
	if out := feed(t, i, `"a" + "b"`); out != `"ab"` {
		t.Fatalf("got %q", out)
	}
}

func TestPrint(t *testing.T) {
	i, _ := newTestInterpreter(t)
	if out := feed(t, i, `print("hello")`); out != "hello" {
		t.Fatalf("got %q", out)
	}
}

func TestBlock(t *testing.T) {
	i, _ := newTestInterpreter(t)
	if i.Prompt() != Prompt {
		t.Fatal()
	}
	if out := feed(t, i, "def f(n):"); out != "" {
		t.Fatalf("got %q", out)
	}
	if !i.Pending() || i.Prompt() != ContinuationPrompt {
		t.Fatal("should be pending")
	}
	feed(t, i, "    return n + 1")
	if out := feed(t, i, ""); out != "" {
		t.Fatalf("got %q", out)
	}
	if i.Pending() {
		t.Fatal("should not be pending")
	}
	if out := feed(t, i, "f(41)"); out != "42" {
		t.Fatalf("got %q", out)
	}

	feed(t, i, "for x in [1, 2]:")
	feed(t, i, "    print(x)")
	if out := feed(t, i, ""); out != "1\n2" {
		t.Fatalf("got %q", out)
	}

	feed(t, i, "if True:")
	i.Reset()
	if i.Pending() {
		t.Fatal("should be reset")
	}
}

func TestErrors(t *testing.T) {
	i, _ := newTestInterpreter(t)

	_, err := i.Feed(context.Background(), "1 +")
	if !errs.Is(err, errs.Parse) {
		t.Fatalf("got %v", err)
	}

	out, err := i.Feed(context.Background(), `print("before") or 1 // 0`)
	if err == nil {
		t.Fatal("should error")
	}
	if out != "before" {
		t.Fatalf("got %q", out)
	}
	if !strings.Contains(errs.Format(err), "division by zero") {
		t.Fatalf("got %v", errs.Format(err))
	}

	_, err = i.Feed(context.Background(), "undefined_name")
	if err == nil {
		t.Fatal("should error")
	}

	// still usable
	if out := feed(t, i, "1 + 1"); out != "2" {
		t.Fatalf("got %q", out)
	}
}

func TestHostBindings(t *testing.T) {
	i, host := newTestInterpreter(t)

	if out := feed(t, i, `sh("ls -l")`); out != `"ran ls -l"` {
		t.Fatalf("got %q", out)
	}
	if len(host.lines) != 1 || host.lines[0] != "ls -l" {
		t.Fatalf("got %v", host.lines)
	}

	if out := feed(t, i, `env["HOME"]`); out != `"/home/foo"` {
		t.Fatalf("got %q", out)
	}

	if out := feed(t, i, `cwd()`); !strings.Contains(out, "/tmp/work") {
		t.Fatalf("got %q", out)
	}
}

func TestCancel(t *testing.T) {
	i, _ := newTestInterpreter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := i.Feed(ctx, "1")
	if err == nil {
		t.Fatal("should error")
	}
	// usable afterwards
	if out := feed(t, i, "1"); out != "1" {
		t.Fatalf("got %q", out)
	}
}
