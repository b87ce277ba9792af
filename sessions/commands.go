package sessions

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/reusee/taish/aliases"
	"github.com/reusee/taish/builtins"
	"github.com/reusee/taish/envs"
	"github.com/reusee/taish/errs"
	"github.com/reusee/taish/histories"
	"github.com/reusee/taish/vars"
	"github.com/samber/lo"
)

const (
	ClearScreen = "\033[2J\033[H"
	DateLayout  = "Mon Jan 02 15:04:05 MST 2006"
)

func (s *Session) defineBuiltins() {
	r := s.registry

	r.Define("cd", builtins.Func(builtins.SessionState, s.cd).
		Desc("change the working directory"))
	r.Define("pwd", builtins.Func(builtins.SessionState, s.pwd).
		Desc("print the working directory"))
	r.Define("echo", builtins.Func(builtins.SessionState, echo).
		Desc("print arguments"))
	r.Define("env", builtins.Func(builtins.SessionState, s.printEnv).
		Desc("show environment variables"))
	r.Define("export", builtins.Func(builtins.SessionState, s.export).
		Desc("set environment variables, export KEY=value..."))
	r.Define("history", builtins.Func(builtins.SessionState, s.showHistory).
		Desc("show recent commands, history [n]"))
	r.Define("alias", builtins.Func(builtins.SessionState, s.alias).
		Desc("define or list aliases, alias name=command..."))
	r.Define("unalias", builtins.Func(builtins.SessionState, s.unalias).
		Desc("remove aliases"))
	r.Define("whoami", builtins.Func(builtins.SessionState, s.whoami).
		Desc("print the user name"))

	r.Define("help", builtins.Func(builtins.Meta, s.help).
		Desc("list available commands"))
	r.Define("clear", builtins.Func(builtins.Meta, clearScreen).
		Desc("clear the screen"))
	r.Define("date", builtins.Func(builtins.Meta, s.date).
		Desc("print the date and time"))
}

func (s *Session) cd(ctx context.Context, args []string) (string, error) {
	var target string
	switch {
	case len(args) == 0:
		target = s.home()
	case args[0] == "-":
		oldPWD, _ := s.env.Lookup(envs.OldPWD)
		target = vars.FirstNonZero(oldPWD, s.dir)
	default:
		target = s.expandHome(args[0])
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(s.dir, target)
	}
	target = filepath.Clean(target)

	info, err := os.Stat(target)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", errs.NewNotFound("cd", "%s: No such file or directory", target)
		}
		return "", errs.FromOS("cd", target, err)
	}
	if !info.IsDir() {
		return "", errs.NewNotFound("cd", "%s: No such file or directory", target)
	}
	if err := os.Chdir(target); err != nil {
		return "", errs.FromOS("cd", target, err)
	}

	if err := s.env.Set(envs.OldPWD, s.dir); err != nil {
		return "", err
	}
	if err := s.env.Set(envs.PWD, target); err != nil {
		return "", err
	}
	s.dir = target
	return "", nil
}

func (s *Session) home() string {
	if home, ok := s.env.Lookup(envs.Home); ok && home != "" {
		return home
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return s.dir
	}
	return home
}

func (s *Session) expandHome(path string) string {
	if path == "~" {
		return s.home()
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		return filepath.Join(s.home(), rest)
	}
	return path
}

func (s *Session) pwd(ctx context.Context, args []string) (string, error) {
	return s.dir, nil
}

func echo(ctx context.Context, args []string) (string, error) {
	return strings.Join(args, " "), nil
}

func (s *Session) printEnv(ctx context.Context, args []string) (string, error) {
	if len(args) > 0 {
		return s.env.Get(args[0])
	}
	return strings.Join(s.env.Environ(), "\n"), nil
}

func (s *Session) export(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return "", errs.MissingOperand("export")
	}
	for _, arg := range args {
		name, value, err := envs.ParseAssignment(arg)
		if err != nil {
			return "", err
		}
		if err := s.env.Set(name, value); err != nil {
			return "", err
		}
	}
	return "", nil
}

func (s *Session) showHistory(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return histories.Format(s.history.View()), nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return "", errs.NewInvalid("history", "invalid count '%s'", args[0])
	}
	return histories.Format(s.history.Recent(n)), nil
}

func (s *Session) alias(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return strings.Join(lo.Map(s.aliases.List(), func(e aliases.Entry, _ int) string {
			return e.String()
		}), "\n"), nil
	}
	for _, arg := range args {
		name, replacement, err := aliases.ParseDefinition(arg)
		if err != nil {
			return "", err
		}
		if err := s.aliases.Define(name, replacement); err != nil {
			return "", err
		}
	}
	return "", nil
}

func (s *Session) unalias(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return "", errs.MissingOperand("unalias")
	}
	for _, name := range args {
		if err := s.aliases.Remove(name); err != nil {
			return "", err
		}
	}
	return "", nil
}

func (s *Session) whoami(ctx context.Context, args []string) (string, error) {
	user, _ := s.env.Lookup("USER")
	username, _ := s.env.Lookup("USERNAME")
	return vars.FirstNonZero(user, username, "user"), nil
}

func (s *Session) help(ctx context.Context, args []string) (string, error) {
	names := append(s.registry.Names(), s.reservedNames()...)
	slices.Sort(names)
	return "Available commands:\n" + strings.Join(slices.Compact(names), ", "), nil
}

func clearScreen(ctx context.Context, args []string) (string, error) {
	return ClearScreen, nil
}

func (s *Session) date(ctx context.Context, args []string) (string, error) {
	return s.now().Format(DateLayout), nil
}
