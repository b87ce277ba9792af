package logs

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/taish/modes"
)

func TestNewSpan(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(new(Module), modes.ForTest(t)).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		newSpan NewSpan,
	) {
		ctx := WithSession(context.Background(), "s1")
		lineCtx, lineSpan := newSpan(ctx, "ls")
		_, nested := newSpan(lineCtx, "sh")
		if lineSpan == nested {
			t.Fatal("spans should differ")
		}

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 2 {
			t.Fatalf("got %q", lines)
		}
		for _, want := range []string{
			"label=ls",
			"logs.session=s1",
			"logs.span=" + string(lineSpan),
		} {
			if !strings.Contains(lines[0], want) {
				t.Fatalf("%q not in %v", want, lines[0])
			}
		}
		if strings.Contains(lines[0], "parent=") {
			t.Fatalf("got %v", lines[0])
		}
		for _, want := range []string{
			"label=sh",
			"parent=" + string(lineSpan),
			"logs.span=" + string(nested),
		} {
			if !strings.Contains(lines[1], want) {
				t.Fatalf("%q not in %v", want, lines[1])
			}
		}
	})
}
