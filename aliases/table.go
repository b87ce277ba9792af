package aliases

import (
	"fmt"
	"slices"
	"strings"

	"github.com/reusee/taish/errs"
	"github.com/reusee/taish/tokens"
	"github.com/samber/lo"
)

type Entry struct {
	Name        string
	Replacement string
}

func (e Entry) String() string {
	return fmt.Sprintf("%s='%s'", e.Name, e.Replacement)
}

// Table maps invocation names to replacement command text, keeping
// definition order for display.
type Table struct {
	replacements map[string]string
	order        []string
	reserved     []string
}

// NewTable returns an empty table. reserved names can never be defined.
func NewTable(reserved ...string) *Table {
	return &Table{
		replacements: make(map[string]string),
		reserved:     reserved,
	}
}

func (t *Table) Define(name, replacement string) error {
	switch {
	case name == "" || strings.ContainsFunc(name, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '='
	}):
		return errs.NewInvalid("alias", "invalid alias name '%s'", name)
	case slices.Contains(t.reserved, name):
		return errs.NewInvalid("alias", "%s: reserved command name", name)
	case strings.TrimSpace(replacement) == "":
		return errs.NewInvalid("alias", "%s: empty replacement", name)
	case strings.TrimSpace(replacement) == name:
		return errs.NewInvalid("alias", "%s: alias resolves to itself", name)
	}
	if _, ok := t.replacements[name]; !ok {
		t.order = append(t.order, name)
	}
	t.replacements[name] = replacement
	return nil
}

func (t *Table) Remove(name string) error {
	if _, ok := t.replacements[name]; !ok {
		return errs.NewNotFound("unalias", "%s: not found", name)
	}
	delete(t.replacements, name)
	t.order = slices.DeleteFunc(t.order, func(n string) bool {
		return n == name
	})
	return nil
}

func (t *Table) Resolve(name string) (string, bool) {
	replacement, ok := t.replacements[name]
	return replacement, ok
}

func (t *Table) List() []Entry {
	return lo.Map(t.order, func(name string, _ int) Entry {
		return Entry{
			Name:        name,
			Replacement: t.replacements[name],
		}
	})
}

// Expand substitutes the head of argv once. The replacement is split into
// words; its first word becomes the command name and the rest are placed
// before the original arguments. The new name is not expanded again.
func (t *Table) Expand(argv []string) (ret []string, expanded bool) {
	if len(argv) == 0 {
		return argv, false
	}
	replacement, ok := t.replacements[argv[0]]
	if !ok {
		return argv, false
	}
	words := tokens.Tokenize(replacement)
	if len(words) == 0 {
		return argv, false
	}
	ret = make([]string, 0, len(words)+len(argv)-1)
	ret = append(ret, words...)
	ret = append(ret, argv[1:]...)
	return ret, true
}

// ParseDefinition splits a name=replacement argument, stripping quotes
// around the replacement.
func ParseDefinition(arg string) (name string, replacement string, err error) {
	name, replacement, ok := strings.Cut(arg, "=")
	if !ok {
		return "", "", errs.NewInvalid("alias", "invalid format '%s'", arg)
	}
	return name, strings.Trim(replacement, `'"`), nil
}
