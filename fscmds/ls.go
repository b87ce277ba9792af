package fscmds

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/reusee/taish/errs"
)

func (c *Commands) ls(ctx context.Context, args []string) (string, error) {
	flags, operands := parseArgs(args)
	showHidden := flags.has("a", "all")
	long := flags.has("l", "long")

	target := c.Dir()
	shown := target
	if len(operands) > 0 {
		shown = operands[0]
		target = c.resolve(operands[0])
	}

	info, err := os.Stat(target)
	if err != nil {
		return "", errs.FromOS("ls", shown, err)
	}

	var names []string
	dir := target
	if info.IsDir() {
		entries, err := os.ReadDir(target)
		if err != nil {
			return "", errs.FromOS("ls", shown, err)
		}
		for _, entry := range entries {
			names = append(names, entry.Name())
		}
	} else {
		names = []string{filepath.Base(target)}
		dir = filepath.Dir(target)
	}

	if !showHidden {
		names = slices.DeleteFunc(names, func(name string) bool {
			return strings.HasPrefix(name, ".")
		})
	}
	slices.Sort(names)

	if !long {
		return strings.Join(names, "  "), nil
	}

	lines := make([]string, 0, len(names))
	for _, name := range names {
		info, err := os.Lstat(filepath.Join(dir, name))
		if err != nil {
			lines = append(lines, fmt.Sprintf("?????????? %8s %12s %s", "?", "?", name))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %8d %s %s",
			info.Mode().String(),
			info.Size(),
			info.ModTime().Format("Jan 02 15:04"),
			name,
		))
	}
	return joinLines(lines), nil
}
