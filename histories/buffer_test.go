package histories

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRecent(t *testing.T) {
	buf := NewBuffer(0)
	if buf.Size != DefaultSize {
		t.Fatalf("got %v", buf.Size)
	}
	buf.Append("c1")
	buf.Append("")
	buf.Append("   ")
	buf.Append("c2")
	buf.Append("c3")

	if buf.Len() != 3 {
		t.Fatalf("got %v", buf.Len())
	}

	expected := []Entry{
		{Seq: 2, Line: "c2"},
		{Seq: 3, Line: "c3"},
	}
	if diff := cmp.Diff(expected, buf.Recent(2)); diff != "" {
		t.Fatal(diff)
	}
	if len(buf.Recent(10)) != 3 {
		t.Fatal()
	}
	if buf.Recent(0) != nil {
		t.Fatal()
	}
}

func TestView(t *testing.T) {
	buf := NewBuffer(2)
	for _, line := range []string{"a", "b", "c", "d"} {
		buf.Append(line)
	}
	if diff := cmp.Diff([]Entry{{3, "c"}, {4, "d"}}, buf.View()); diff != "" {
		t.Fatal(diff)
	}
	if got := Format(buf.View()); got != "  3  c\n  4  d" {
		t.Fatalf("got %q", got)
	}
}
