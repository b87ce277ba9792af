package externals

import (
	"time"

	"github.com/reusee/dscope"
	"github.com/reusee/taish/logs"
	"github.com/reusee/taish/shconfigs"
)

type Module struct {
	dscope.Module
	Configs shconfigs.Module
	Logs    logs.Module
}

func (Module) Bridge(
	timeout shconfigs.CommandTimeout,
	logger logs.Logger,
) *Bridge {
	return &Bridge{
		Timeout: time.Duration(timeout),
		Logger:  logger,
	}
}
