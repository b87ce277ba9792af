package envs

import (
	"os"
	"slices"
	"strings"

	"github.com/reusee/taish/errs"
	"github.com/samber/lo"
)

const (
	// OldPWD holds the previous working directory, used by "cd -".
	OldPWD = "OLDPWD"
	PWD    = "PWD"
	Home   = "HOME"
)

type Var struct {
	Name  string
	Value string
}

// Store is the session's environment. Every mutation is mirrored into the
// process environment so that child processes inherit it.
type Store struct {
	values map[string]string
	setenv func(key, value string) error
}

func NewStore(environ []string) *Store {
	s := &Store{
		values: make(map[string]string, len(environ)),
		setenv: os.Setenv,
	}
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		s.values[key] = value
	}
	return s
}

func (s *Store) Lookup(name string) (string, bool) {
	value, ok := s.values[name]
	return value, ok
}

func (s *Store) Get(name string) (string, error) {
	value, ok := s.values[name]
	if !ok {
		return "", errs.NewNotFound("env", "%s: not found", name)
	}
	return value, nil
}

func (s *Store) Set(name, value string) error {
	if name == "" || strings.ContainsAny(name, "= \t") {
		return errs.NewInvalid("export", "invalid format '%s=%s'", name, value)
	}
	if err := s.setenv(name, value); err != nil {
		return errs.New(errs.Unhandled, "export", "%s: %v", name, err)
	}
	s.values[name] = value
	return nil
}

// All returns a snapshot sorted by name.
func (s *Store) All() []Var {
	names := lo.Keys(s.values)
	slices.Sort(names)
	return lo.Map(names, func(name string, _ int) Var {
		return Var{
			Name:  name,
			Value: s.values[name],
		}
	})
}

// Map returns a copy of the variables.
func (s *Store) Map() map[string]string {
	return lo.Assign(s.values)
}

// Environ returns the variables in the KEY=value form used by child processes.
func (s *Store) Environ() []string {
	return lo.Map(s.All(), func(v Var, _ int) string {
		return v.Name + "=" + v.Value
	})
}

// ParseAssignment splits a key=value argument.
func ParseAssignment(arg string) (name string, value string, err error) {
	name, value, ok := strings.Cut(arg, "=")
	if !ok || name == "" {
		return "", "", errs.NewInvalid("export", "invalid format '%s'", arg)
	}
	return name, value, nil
}
