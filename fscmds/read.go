package fscmds

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/reusee/taish/errs"
	"github.com/viant/afs/file"
)

func (c *Commands) cat(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return "", errs.MissingOperand("cat")
	}
	var parts []string
	var ret []error
	for _, name := range args {
		path := c.resolve(name)
		info, err := os.Stat(path)
		if err != nil {
			ret = append(ret, errs.FromOS("cat", name, err))
			continue
		}
		if info.IsDir() {
			ret = append(ret, errs.NewInvalid("cat", "%s: Is a directory", name))
			continue
		}
		content, err := c.FS.DownloadWithURL(ctx, path)
		if err != nil {
			ret = append(ret, errs.FromOS("cat", name, err))
			continue
		}
		parts = append(parts, strings.ToValidUTF8(string(content), "�"))
	}
	return strings.Join(parts, "\n"), errors.Join(ret...)
}

func (c *Commands) touch(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return "", errs.MissingOperand("touch")
	}
	now := time.Now()
	var ret []error
	for _, name := range args {
		path := c.resolve(name)
		_, err := os.Stat(path)
		switch {
		case err == nil:
			err = os.Chtimes(path, now, now)
		case errors.Is(err, os.ErrNotExist):
			if err = checkParent("touch", name, path); err != nil {
				ret = append(ret, err)
				continue
			}
			err = c.FS.Upload(ctx, path, file.DefaultFileOsMode, bytes.NewReader(nil))
		}
		if err != nil {
			ret = append(ret, errs.FromOS("touch", name, err))
		}
	}
	return "", errors.Join(ret...)
}
