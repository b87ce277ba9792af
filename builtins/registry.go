package builtins

import (
	"context"
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Capability tells which kind of collaborator services a command.
type Capability int

const (
	Filesystem Capability = iota + 1
	Process
	SessionState
	Meta
)

func (c Capability) String() string {
	switch c {
	case Filesystem:
		return "filesystem"
	case Process:
		return "process"
	case SessionState:
		return "session"
	case Meta:
		return "meta"
	}
	return fmt.Sprintf("capability(%d)", int(c))
}

// Handler runs a built-in command. An empty string with a nil error means
// success with nothing to show.
type Handler func(ctx context.Context, args []string) (string, error)

type Entry struct {
	Name        string
	Capability  Capability
	Handler     Handler
	Description string
	Aliases     []string
}

func Func(capability Capability, handler Handler) *Entry {
	if handler == nil {
		panic(fmt.Errorf("nil handler"))
	}
	return &Entry{
		Capability: capability,
		Handler:    handler,
	}
}

func (e *Entry) Desc(desc string) *Entry {
	e.Description = desc
	return e
}

// Alias adds synonyms serviced by the same handler.
func (e *Entry) Alias(names ...string) *Entry {
	e.Aliases = append(e.Aliases, names...)
	return e
}

// Registry is the closed set of built-in commands. It is filled once when a
// session is constructed.
type Registry struct {
	entries map[string]*Entry
}

func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*Entry),
	}
}

func (r *Registry) Define(name string, entry *Entry) {
	entry.Name = name
	for _, n := range append([]string{name}, entry.Aliases...) {
		if _, ok := r.entries[n]; ok {
			panic(fmt.Errorf("duplicated command %s", n))
		}
		r.entries[n] = entry
	}
}

func (r *Registry) Lookup(name string) (*Entry, bool) {
	entry, ok := r.entries[name]
	return entry, ok
}

// Names returns every invocable name, synonyms included, sorted.
func (r *Registry) Names() []string {
	names := lo.Keys(r.entries)
	slices.Sort(names)
	return names
}

// Entries returns each command once, sorted by canonical name.
func (r *Registry) Entries() []*Entry {
	entries := lo.Uniq(lo.Values(r.entries))
	slices.SortFunc(entries, func(a, b *Entry) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	return entries
}
