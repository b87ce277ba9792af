package repls

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/reusee/taish/cmds"
	"github.com/reusee/taish/logs"
	"github.com/reusee/taish/sessions"
)

var noColor = cmds.Switch("-no-color", "disable colored output")

const Goodbye = "Goodbye!"

// REPL drives a session from a line source until the session terminates
// or the input ends.
type REPL struct {
	Session *sessions.Session
	In      io.Reader
	Out     io.Writer
	Logger  logs.Logger

	painter painter
}

func New(session *sessions.Session, in io.Reader, out io.Writer, logger logs.Logger) *REPL {
	r := &REPL{
		Session: session,
		In:      in,
		Out:     out,
		Logger:  logger,
	}
	r.painter.theme = Dark
	if !*noColor && os.Getenv("NO_COLOR") == "" {
		r.painter.renderer = lipgloss.NewRenderer(out)
	}
	return r
}

func (r *REPL) Banner() string {
	return strings.Join([]string{
		"taish",
		fmt.Sprintf("Running on %s %s", runtime.GOOS, runtime.GOARCH),
		"Type 'help' for available commands or 'exit' to quit.",
		"",
	}, "\n")
}

func (r *REPL) Run(ctx context.Context) error {
	var reader lineReader
	if isTerminal(r.In) && isTerminal(r.Out) {
		editing, err := newEditingReader(r.Session.Registry().Names())
		if err != nil {
			return err
		}
		reader = editing
	} else {
		reader = newScanReader(r.In)
	}
	defer reader.Close()

	fmt.Fprintln(r.Out, r.painter.notice(r.Banner()))

	for {
		mode := r.Session.Mode()
		line, err := reader.ReadLine(r.painter.prompt(r.Session.Prompt(), mode == sessions.Shell))

		switch {
		case errors.Is(err, ErrInterrupt):
			r.Session.Interrupt()
			continue
		case errors.Is(err, io.EOF):
			if mode == sessions.SubMode {
				r.Session.LeaveSubMode()
				continue
			}
			if r.Logger != nil {
				r.Logger.Info("input closed", "session", r.Session.ID)
			}
			fmt.Fprintln(r.Out, r.painter.error(Goodbye))
			return nil
		case err != nil:
			return err
		}

		if r.Step(ctx, line).Terminated {
			return nil
		}
		if mode == sessions.Shell && strings.TrimSpace(line) != "" {
			reader.Remember(line)
		}
	}
}

// Step executes one line and prints the reply.
func (r *REPL) Step(ctx context.Context, line string) sessions.Reply {
	// works in every mode
	if strings.EqualFold(strings.TrimSpace(line), "theme") {
		r.painter.theme = r.painter.theme.Toggle()
		fmt.Fprintln(r.Out, r.painter.paint(r.painter.theme.Green,
			fmt.Sprintf("Theme changed to %s mode.", r.painter.theme.Name)))
		return sessions.Reply{
			Mode: r.Session.Mode(),
		}
	}

	reply := r.Session.Execute(ctx, line)
	switch {
	case reply.Terminated:
		fmt.Fprintln(r.Out, r.painter.error(Goodbye))
	case reply.Text == "":
	case reply.Failed:
		fmt.Fprintln(r.Out, r.painter.error(reply.Text))
	default:
		fmt.Fprintln(r.Out, reply.Text)
	}
	return reply
}
