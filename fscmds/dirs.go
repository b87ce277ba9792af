package fscmds

import (
	"context"
	"errors"
	"os"

	"github.com/reusee/taish/errs"
)

func (c *Commands) mkdir(ctx context.Context, args []string) (string, error) {
	flags, operands := parseArgs(args)
	if len(operands) == 0 {
		return "", errs.MissingOperand("mkdir")
	}
	parents := flags.has("p", "parents")
	var ret []error
	for _, name := range operands {
		var err error
		if parents {
			err = os.MkdirAll(c.resolve(name), 0755)
		} else {
			err = os.Mkdir(c.resolve(name), 0755)
		}
		if err != nil {
			ret = append(ret, errs.FromOS("mkdir", name, err))
		}
	}
	return "", errors.Join(ret...)
}

func (c *Commands) rmdir(ctx context.Context, args []string) (string, error) {
	_, operands := parseArgs(args)
	if len(operands) == 0 {
		return "", errs.MissingOperand("rmdir")
	}
	var ret []error
	for _, name := range operands {
		path := c.resolve(name)
		info, err := os.Stat(path)
		if err != nil {
			ret = append(ret, errs.FromOS("rmdir", name, err))
			continue
		}
		if !info.IsDir() {
			ret = append(ret, errs.NewInvalid("rmdir", "%s: Not a directory", name))
			continue
		}
		if err := os.Remove(path); err != nil {
			ret = append(ret, errs.FromOS("rmdir", name, err))
		}
	}
	return "", errors.Join(ret...)
}

func (c *Commands) rm(ctx context.Context, args []string) (string, error) {
	flags, operands := parseArgs(args)
	if len(operands) == 0 {
		return "", errs.MissingOperand("rm")
	}
	recursive := flags.has("r", "R", "recursive")
	force := flags.has("f", "force")
	var ret []error
	for _, name := range operands {
		path := c.resolve(name)
		info, err := os.Lstat(path)
		if err != nil {
			if force && errors.Is(err, os.ErrNotExist) {
				continue
			}
			ret = append(ret, errs.FromOS("rm", name, err))
			continue
		}
		if info.IsDir() {
			if !recursive {
				ret = append(ret, errs.NewInvalid("rm", "%s: is a directory", name))
				continue
			}
			err = os.RemoveAll(path)
		} else {
			err = os.Remove(path)
		}
		if err != nil {
			ret = append(ret, errs.FromOS("rm", name, err))
		}
	}
	return "", errors.Join(ret...)
}
