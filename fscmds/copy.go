package fscmds

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"syscall"

	"github.com/reusee/taish/errs"
)

// checkParent fails when the directory that would hold path is missing.
// afs creates missing parents on write.
func checkParent(op string, name string, path string) error {
	info, err := os.Stat(filepath.Dir(path))
	if err != nil {
		return errs.FromOS(op, name, err)
	}
	if !info.IsDir() {
		return errs.FromOS(op, name, syscall.ENOTDIR)
	}
	return nil
}

// destination returns the final path of source when written to dest. An
// existing directory receives the source under its own base name.
func destination(source string, dest string) string {
	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		return filepath.Join(dest, filepath.Base(source))
	}
	return dest
}

func (c *Commands) cp(ctx context.Context, args []string) (string, error) {
	flags, operands := parseArgs(args)
	if len(operands) == 0 {
		return "", errs.MissingOperand("cp")
	}
	if len(operands) < 2 {
		return "", errs.NewInvalid("cp", "missing destination")
	}
	recursive := flags.has("r", "R", "recursive")
	dest := c.resolve(operands[len(operands)-1])

	var ret []error
	for _, name := range operands[:len(operands)-1] {
		source := c.resolve(name)
		info, err := os.Stat(source)
		if err != nil {
			ret = append(ret, errs.FromOS("cp", name, err))
			continue
		}
		if info.IsDir() && !recursive {
			ret = append(ret, errs.NewInvalid("cp", "%s: is a directory (not copied)", name))
			continue
		}
		target := destination(source, dest)
		if err := checkParent("cp", operands[len(operands)-1], target); err != nil {
			ret = append(ret, err)
			continue
		}
		if err := c.FS.Copy(ctx, source, target); err != nil {
			ret = append(ret, errs.FromOS("cp", name, err))
		}
	}
	return "", errors.Join(ret...)
}

func (c *Commands) mv(ctx context.Context, args []string) (string, error) {
	_, operands := parseArgs(args)
	if len(operands) < 2 {
		return "", errs.MissingOperand("mv")
	}
	source := c.resolve(operands[0])
	if _, err := os.Lstat(source); err != nil {
		return "", errs.FromOS("mv", operands[0], err)
	}
	dest := destination(source, c.resolve(operands[1]))
	if err := checkParent("mv", operands[1], dest); err != nil {
		return "", err
	}
	if err := c.FS.Move(ctx, source, dest); err != nil {
		return "", errs.FromOS("mv", operands[0], err)
	}
	return "", nil
}
