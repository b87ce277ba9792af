package sessions

import (
	"context"

	"github.com/reusee/taish/submodes"
	"github.com/reusee/taish/tokens"
)

func (s *Session) makeInterpreter() *submodes.Interpreter {
	host := subModeHost{s}
	if s.newInterpreter != nil {
		return s.newInterpreter(host)
	}
	return submodes.New(host, s.logger)
}

// subModeHost exposes the shell to scripts.
type subModeHost struct {
	session *Session
}

var _ submodes.Host = subModeHost{}

// Run executes line like the shell does, without history or meta commands.
func (h subModeHost) Run(ctx context.Context, line string) string {
	argv := tokens.Tokenize(line)
	if len(argv) > 0 && (argv[0] == exitCommand || argv[0] == h.session.subModeCommand) {
		return "sh: " + argv[0] + ": not available in sub-mode"
	}
	out, err := h.session.run(ctx, argv)
	return h.session.reply(ctx, out, err).Text
}

func (h subModeHost) Environ() map[string]string {
	return h.session.env.Map()
}

func (h subModeHost) Dir() string {
	return h.session.dir
}
