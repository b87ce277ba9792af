package syscmds

import (
	"time"

	"github.com/reusee/taish/builtins"
	"github.com/reusee/taish/logs"
)

// Commands are the process and resource inspection built-ins.
type Commands struct {
	Logger logs.Logger
	// CPU sampling window of top
	Interval time.Duration
}

func (c *Commands) Define(registry *builtins.Registry) {
	registry.Define("ps", builtins.Func(builtins.Process, c.ps).
		Desc("list processes"))
	registry.Define("top", builtins.Func(builtins.Process, c.top).
		Desc("show resource usage and busiest processes"))
	registry.Define("kill", builtins.Func(builtins.Process, c.kill).
		Desc("terminate a process by PID"))
	registry.Define("df", builtins.Func(builtins.Process, c.df).
		Desc("show disk usage"))
	registry.Define("free", builtins.Func(builtins.Process, c.free).
		Desc("show memory usage"))
	registry.Define("uptime", builtins.Func(builtins.Process, c.uptime).
		Desc("show system uptime"))
}

const (
	mb = 1 << 20
	gb = 1 << 30
)
