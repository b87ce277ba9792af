package histories

import (
	"fmt"
	"strings"
)

type Entry struct {
	Seq  int
	Line string
}

// Buffer is the session's append-only command log. The log grows for the
// whole session; View exposes only the last Size entries.
type Buffer struct {
	lines []string
	Size  int
}

const DefaultSize = 20

func NewBuffer(size int) *Buffer {
	if size <= 0 {
		size = DefaultSize
	}
	return &Buffer{
		Size: size,
	}
}

// Append records line. Blank lines are never recorded.
func (b *Buffer) Append(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	b.lines = append(b.lines, line)
}

func (b *Buffer) Len() int {
	return len(b.lines)
}

// Recent returns at most n of the newest entries, oldest first.
func (b *Buffer) Recent(n int) []Entry {
	if n <= 0 {
		return nil
	}
	start := max(0, len(b.lines)-n)
	ret := make([]Entry, 0, len(b.lines)-start)
	for i := start; i < len(b.lines); i++ {
		ret = append(ret, Entry{
			Seq:  i + 1,
			Line: b.lines[i],
		})
	}
	return ret
}

func (b *Buffer) View() []Entry {
	return b.Recent(b.Size)
}

func Format(entries []Entry) string {
	var builder strings.Builder
	for i, entry := range entries {
		if i > 0 {
			builder.WriteByte('\n')
		}
		fmt.Fprintf(&builder, "%3d  %s", entry.Seq, entry.Line)
	}
	return builder.String()
}
