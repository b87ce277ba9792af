package syscmds

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/reusee/taish/errs"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

func (c *Commands) df(ctx context.Context, args []string) (string, error) {
	path := "/"
	if len(args) > 0 {
		path = args[0]
	}
	usage, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return "", errs.FromOS("df", path, err)
	}
	return fmt.Sprintf("Filesystem\tSize\tUsed\tAvail\tUse%%\n%s\t\t%.1fG\t%.1fG\t%.1fG\t%.0f%%",
		path,
		float64(usage.Total)/gb,
		float64(usage.Used)/gb,
		float64(usage.Free)/gb,
		usage.UsedPercent,
	), nil
}

func (c *Commands) free(ctx context.Context, args []string) (string, error) {
	memory, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return "", errs.New(errs.Unhandled, "free", "%v", err)
	}
	swap, err := mem.SwapMemoryWithContext(ctx)
	if err != nil {
		return "", errs.New(errs.Unhandled, "free", "%v", err)
	}
	return strings.Join([]string{
		"Type\t\tTotal\t\tUsed\t\tFree",
		fmt.Sprintf("Mem:\t\t%dMB\t\t%dMB\t\t%dMB", memory.Total/mb, memory.Used/mb, memory.Available/mb),
		fmt.Sprintf("Swap:\t\t%dMB\t\t%dMB\t\t%dMB", swap.Total/mb, swap.Used/mb, swap.Free/mb),
	}, "\n"), nil
}

func (c *Commands) uptime(ctx context.Context, args []string) (string, error) {
	secs, err := host.UptimeWithContext(ctx)
	if err != nil {
		return "", errs.New(errs.Unhandled, "uptime", "unable to get system uptime")
	}
	return formatUptime(time.Duration(secs) * time.Second), nil
}

func formatUptime(d time.Duration) string {
	days := int(d / (24 * time.Hour))
	d -= time.Duration(days) * 24 * time.Hour
	hours := int(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	return fmt.Sprintf("up %d days, %d hours, %d minutes", days, hours, int(d/time.Minute))
}
