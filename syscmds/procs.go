package syscmds

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/reusee/taish/errs"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

type procInfo struct {
	pid    int32
	name   string
	cpu    float64
	memory float32
}

func (p procInfo) String() string {
	name := p.name
	if len(name) > 15 {
		name = name[:15]
	}
	return fmt.Sprintf("%d\t%-15s\t%.1f\t%.1f", p.pid, name, p.cpu, p.memory)
}

const procHeader = "PID\tNAME\t\tCPU%\tMEM%"

// inspect collects what can be read of procs. Processes that vanish or
// deny access are skipped.
func inspect(ctx context.Context, procs []*process.Process) []procInfo {
	ret := make([]procInfo, 0, len(procs))
	for _, proc := range procs {
		name, err := proc.NameWithContext(ctx)
		if err != nil {
			continue
		}
		info := procInfo{
			pid:  proc.Pid,
			name: name,
		}
		info.cpu, _ = proc.CPUPercentWithContext(ctx)
		info.memory, _ = proc.MemoryPercentWithContext(ctx)
		ret = append(ret, info)
	}
	return ret
}

func processes(ctx context.Context) ([]*process.Process, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(procs, func(a, b *process.Process) int {
		return cmp.Compare(a.Pid, b.Pid)
	})
	return procs, nil
}

func (c *Commands) ps(ctx context.Context, args []string) (string, error) {
	procs, err := processes(ctx)
	if err != nil {
		return "", errs.New(errs.Unhandled, "ps", "%v", err)
	}
	infos := inspect(ctx, procs[:min(len(procs), 20)])
	lines := []string{procHeader}
	for _, info := range infos {
		lines = append(lines, info.String())
	}
	return strings.Join(lines, "\n"), nil
}

func (c *Commands) top(ctx context.Context, args []string) (string, error) {
	interval := c.Interval
	if interval <= 0 {
		interval = time.Second
	}
	percents, err := cpu.PercentWithContext(ctx, interval, false)
	if err != nil {
		return "", errs.New(errs.Unhandled, "top", "%v", err)
	}
	var cpuPercent float64
	if len(percents) > 0 {
		cpuPercent = percents[0]
	}
	memory, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return "", errs.New(errs.Unhandled, "top", "%v", err)
	}
	usage, err := disk.UsageWithContext(ctx, "/")
	if err != nil {
		return "", errs.New(errs.Unhandled, "top", "%v", err)
	}

	lines := []string{
		"System Resource Usage:",
		fmt.Sprintf("CPU Usage: %.1f%%", cpuPercent),
		fmt.Sprintf("Memory Usage: %.1f%% (%dGB / %dGB)", memory.UsedPercent, memory.Used/gb, memory.Total/gb),
		fmt.Sprintf("Disk Usage: %.1f%% (%dGB / %dGB)", usage.UsedPercent, usage.Used/gb, usage.Total/gb),
		"",
		"Top Processes:",
		procHeader,
	}

	procs, err := processes(ctx)
	if err != nil {
		return strings.Join(lines, "\n"), errs.New(errs.Unhandled, "top", "%v", err)
	}
	infos := inspect(ctx, procs)
	slices.SortStableFunc(infos, func(a, b procInfo) int {
		return cmp.Compare(b.cpu, a.cpu)
	})
	for _, info := range infos[:min(len(infos), 10)] {
		lines = append(lines, info.String())
	}
	return strings.Join(lines, "\n"), nil
}

func (c *Commands) kill(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return "", errs.MissingOperand("kill")
	}
	pid, err := strconv.ParseInt(args[0], 10, 32)
	if err != nil || pid <= 0 {
		return "", errs.NewInvalid("kill", "invalid PID")
	}
	proc, err := process.NewProcessWithContext(ctx, int32(pid))
	if errors.Is(err, process.ErrorProcessNotRunning) {
		return "", errs.NewNotFound("kill", "no process with PID %s", args[0])
	} else if err != nil {
		return "", errs.New(errs.Unhandled, "kill", "%v", err)
	}
	if err := proc.TerminateWithContext(ctx); err != nil {
		switch {
		case errors.Is(err, os.ErrPermission):
			return "", errs.NewPermission("kill", "permission denied for PID %s", args[0])
		case errors.Is(err, os.ErrProcessDone):
			return "", errs.NewNotFound("kill", "no process with PID %s", args[0])
		}
		return "", errs.New(errs.Unhandled, "kill", "%v", err)
	}
	if c.Logger != nil {
		c.Logger.InfoContext(ctx, "process terminated", "pid", pid)
	}
	return fmt.Sprintf("Process %d terminated", pid), nil
}
