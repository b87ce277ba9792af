package repls

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/taish/modes"
	"github.com/reusee/taish/sessions"
	"github.com/reusee/taish/shconfigs"
)

func runInput(t *testing.T, input string) string {
	*noColor = true
	t.Cleanup(func() {
		*noColor = false
	})
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("OLDPWD", "")
	t.Setenv("PWD", dir)

	out := new(bytes.Buffer)
	dscope.New(new(Module), modes.ForTest(t)).Fork(
		func() shconfigs.ConfigPaths {
			return nil
		},
	).Call(func(
		newSession sessions.NewSession,
		newREPL NewREPL,
	) {
		session, err := newSession(dir)
		if err != nil {
			t.Fatal(err)
		}
		repl := newREPL(session, strings.NewReader(input), out)
		if err := repl.Run(context.Background()); err != nil {
			t.Fatal(err)
		}
	})
	return out.String()
}

func TestRunExit(t *testing.T) {
	out := runInput(t, "echo hello\nexit\necho unreachable\n")
	if !strings.HasPrefix(out, "taish\n") {
		t.Fatalf("got %q", out)
	}
	if !strings.Contains(out, "\nhello\n") {
		t.Fatalf("got %q", out)
	}
	if !strings.HasSuffix(out, Goodbye+"\n") {
		t.Fatalf("got %q", out)
	}
	if strings.Contains(out, "unreachable") {
		t.Fatalf("got %q", out)
	}
}

func TestRunEOF(t *testing.T) {
	out := runInput(t, "cd nowhere\n")
	if !strings.Contains(out, "No such file or directory") {
		t.Fatalf("got %q", out)
	}
	if !strings.HasSuffix(out, Goodbye+"\n") {
		t.Fatalf("got %q", out)
	}
}

func TestRunTheme(t *testing.T) {
	out := runInput(t, "theme\nTHEME\n")
	if !strings.Contains(out, "Theme changed to light mode.\nTheme changed to dark mode.\n") {
		t.Fatalf("got %q", out)
	}
}

func TestRunSubMode(t *testing.T) {
	// end of input leaves the sub-mode first, then ends the session
	out := runInput(t, "python\nx = 20\nprint(x + 1)\ntheme\n")
	if !strings.Contains(out, "\n21\n") {
		t.Fatalf("got %q", out)
	}
	if !strings.Contains(out, "Theme changed to light mode.") {
		t.Fatalf("got %q", out)
	}
	if !strings.HasSuffix(out, Goodbye+"\n") {
		t.Fatalf("got %q", out)
	}
}

func TestThemeToggle(t *testing.T) {
	if Dark.Toggle() != Light || Light.Toggle() != Dark {
		t.Fatal()
	}
}

func TestPaintPrompt(t *testing.T) {
	var p painter
	p.theme = Dark
	if str := p.prompt("a@b:dir$ ", true); str != "a@b:dir$ " {
		t.Fatalf("got %q", str)
	}
	if str := p.error("x"); str != "x" {
		t.Fatalf("got %q", str)
	}
}

func TestStep(t *testing.T) {
	*noColor = true
	t.Cleanup(func() {
		*noColor = false
	})
	dir := t.TempDir()
	t.Chdir(dir)
	dscope.New(new(Module), modes.ForTest(t)).Fork(
		func() shconfigs.ConfigPaths {
			return nil
		},
	).Call(func(
		newSession sessions.NewSession,
		newREPL NewREPL,
	) {
		session, err := newSession(dir)
		if err != nil {
			t.Fatal(err)
		}
		out := new(bytes.Buffer)
		repl := newREPL(session, strings.NewReader(""), out)
		reply := repl.Step(context.Background(), "rmdir")
		if !reply.Failed {
			t.Fatalf("got %+v", reply)
		}
		if out.String() != "rmdir: missing operand\n" {
			t.Fatalf("got %q", out.String())
		}
	})
}
