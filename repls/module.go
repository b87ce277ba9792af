package repls

import (
	"io"

	"github.com/reusee/dscope"
	"github.com/reusee/taish/logs"
	"github.com/reusee/taish/sessions"
)

type Module struct {
	dscope.Module
	Sessions sessions.Module
}

type NewREPL func(session *sessions.Session, in io.Reader, out io.Writer) *REPL

func (Module) NewREPL(
	logger logs.Logger,
) NewREPL {
	return func(session *sessions.Session, in io.Reader, out io.Writer) *REPL {
		return New(session, in, out, logger)
	}
}
