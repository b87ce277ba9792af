package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/reusee/dscope"
	"github.com/reusee/taish/cmds"
	"github.com/reusee/taish/errs"
	"github.com/reusee/taish/logs"
	"github.com/reusee/taish/modes"
	"github.com/reusee/taish/repls"
	"github.com/reusee/taish/sessions"
)

var commandLine = cmds.Var[string]("-c", "execute one line and exit")

func main() {
	if err := cmds.Execute(os.Args[1:]); err != nil {
		if errors.Is(err, cmds.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Ctrl-C aborts the line being read, never the shell. Caught signals
	// are reset to the default in child processes.
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	go func() {
		for range interrupts {
		}
	}()

	ctx := context.Background()
	exitCode := 0

	dscope.New(
		new(Module),
		modes.ForProduction(),
	).Call(func(
		logger logs.Logger,
		newSession sessions.NewSession,
		newREPL repls.NewREPL,
	) {
		session, err := newSession("")
		if err != nil {
			fmt.Fprintln(os.Stderr, errs.Format(err))
			exitCode = 1
			return
		}
		repl := newREPL(session, os.Stdin, os.Stdout)

		if *commandLine != "" {
			if repl.Step(ctx, *commandLine).Failed {
				exitCode = 1
			}
			return
		}

		if err := repl.Run(ctx); err != nil {
			logger.Error("repl", "error", err)
			fmt.Fprintln(os.Stderr, errs.Format(err))
			exitCode = 1
		}
	})

	os.Exit(exitCode)
}
