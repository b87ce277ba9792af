package fscmds

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/reusee/taish/builtins"
	"github.com/viant/afs"
)

// Commands are the filesystem built-ins. Relative operands resolve against Dir.
type Commands struct {
	Dir func() string
	FS  afs.Service
}

func (c *Commands) Define(registry *builtins.Registry) {
	registry.Define("ls", builtins.Func(builtins.Filesystem, c.ls).
		Desc("list directory contents (-a, -l)").
		Alias("dir"))
	registry.Define("mkdir", builtins.Func(builtins.Filesystem, c.mkdir).
		Desc("create directories (-p)"))
	registry.Define("rmdir", builtins.Func(builtins.Filesystem, c.rmdir).
		Desc("remove empty directories"))
	registry.Define("rm", builtins.Func(builtins.Filesystem, c.rm).
		Desc("remove files or directories (-r, -f)"))
	registry.Define("cp", builtins.Func(builtins.Filesystem, c.cp).
		Desc("copy files (-r for directories)"))
	registry.Define("mv", builtins.Func(builtins.Filesystem, c.mv).
		Desc("move or rename"))
	registry.Define("cat", builtins.Func(builtins.Filesystem, c.cat).
		Desc("print file contents"))
	registry.Define("touch", builtins.Func(builtins.Filesystem, c.touch).
		Desc("create files or update timestamps"))
	registry.Define("find", builtins.Func(builtins.Filesystem, c.find).
		Desc("find [path] [substring]"))
	registry.Define("grep", builtins.Func(builtins.Filesystem, c.grep).
		Desc("grep pattern files..."))
}

func (c *Commands) resolve(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(c.Dir(), path)
}

type flagSet map[string]bool

func (f flagSet) has(names ...string) bool {
	for _, name := range names {
		if f[name] {
			return true
		}
	}
	return false
}

// parseArgs splits options from operands. "-rf" sets r and f, "--all" sets
// all, and "--" ends the options.
func parseArgs(args []string) (flags flagSet, operands []string) {
	flags = make(flagSet)
	for i, arg := range args {
		switch {
		case arg == "--":
			operands = append(operands, args[i+1:]...)
			return
		case strings.HasPrefix(arg, "--"):
			flags[arg[2:]] = true
		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			for _, r := range arg[1:] {
				flags[string(r)] = true
			}
		default:
			operands = append(operands, arg)
		}
	}
	return
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
