package logs

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/taish/cmds"
	"github.com/reusee/taish/modes"
)

func TestHandler(t *testing.T) {
	dscope.New(new(Module), modes.ForTest(t)).Call(func(
		logger Logger,
	) {
		logger.Info("test", "hello", "world!")
	})
}

func TestSessionAttr(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(new(Module), modes.ForTest(t)).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		logger Logger,
	) {
		ctx := WithSession(context.Background(), "foo")
		logger.InfoContext(ctx, "line")
		if !strings.Contains(buf.String(), "logs.session=foo") {
			t.Fatalf("got %v", buf.String())
		}
	})
}

func TestWrapSpan(t *testing.T) {
	if WrapSpan(context.Background(), nil) != nil {
		t.Fatal()
	}
	ctx := context.WithValue(context.Background(), SpanKey, Span("abc"))
	err := WrapSpan(ctx, context.Canceled)
	if !strings.Contains(err.Error(), "span abc") {
		t.Fatalf("got %v", err)
	}
	if err := WrapSpan(context.Background(), context.Canceled); err != context.Canceled {
		t.Fatalf("got %v", err)
	}
}

func TestToJournalKey(t *testing.T) {
	if key := toJournalKey("logs.span"); key != "LOGS_SPAN" {
		t.Fatalf("got %v", key)
	}
}

func TestLevelFlag(t *testing.T) {
	defer level.Set(level.Level())
	if err := cmds.Execute([]string{"-log-level", "info"}); err != nil {
		t.Fatal(err)
	}
	if level.Level() != slog.LevelInfo {
		t.Fatalf("got %v", level.Level())
	}
	if err := cmds.Execute([]string{"-log-level", "loud"}); err == nil {
		t.Fatal("should error")
	}
}
