package submodes

import (
	"github.com/reusee/dscope"
	"github.com/reusee/taish/logs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}

type NewInterpreter func(host Host) *Interpreter

func (Module) NewInterpreter(
	logger logs.Logger,
) NewInterpreter {
	return func(host Host) *Interpreter {
		return New(host, logger)
	}
}
