package logs

import (
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/reusee/taish/cmds"
	"github.com/reusee/taish/modes"
	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

var level = new(slog.LevelVar)

func init() {
	// the terminal belongs to the prompt, so only warnings surface by default
	level.Set(slog.LevelWarn)

	cmds.Define("-log-level", cmds.Func(func(name string) error {
		return level.UnmarshalText([]byte(name))
	}).Desc("set log level: debug, info, warn or error"))
	cmds.Define("-log-debug", cmds.Func(func() {
		level.Set(slog.LevelDebug)
	}).Desc("set log level to debug"))
}

type Logger = *slog.Logger

func (Module) Logger(
	writer Writer,
	mode modes.Mode,
) Logger {
	if mode == modes.ModeDevelopment {
		return slog.New(&Handler{
			Handler: slog.NewTextHandler(writer, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		})
	}

	var handlers []slog.Handler
	// a service has no terminal to print to
	if !underSystemd() {
		handlers = append(handlers, slog.NewTextHandler(writer, &slog.HandlerOptions{
			Level: level,
		}))
	}
	if journal, err := newJournalHandler(); err == nil {
		handlers = append(handlers, journal)
	}

	return slog.New(&Handler{
		Handler: slogmulti.Fanout(handlers...),
	})
}

func newJournalHandler() (slog.Handler, error) {
	return slogjournal.NewHandler(&slogjournal.Options{
		Level:        level,
		ReplaceGroup: toJournalKey,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			a.Key = toJournalKey(a.Key)
			return a
		},
	})
}

// journal field names allow only upper case letters, digits and underscores
func toJournalKey(str string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' ||
			r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, strings.ToUpper(str))
}

func underSystemd() bool {
	if os.Getenv("INVOCATION_ID") != "" {
		return true
	}
	cgroup, err := cgroupPath()
	if err != nil {
		return false
	}
	return strings.HasSuffix(path.Dir(cgroup), ".service")
}

func cgroupPath() (string, error) {
	content, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return "", err
	}
	parts := strings.SplitN(strings.TrimSpace(string(content)), ":", 3)
	if len(parts) < 3 {
		return "", nil
	}
	return parts[2], nil
}
