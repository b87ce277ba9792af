package fscmds

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/reusee/taish/errs"
)

func (c *Commands) find(ctx context.Context, args []string) (string, error) {
	root, shown := c.Dir(), c.Dir()
	pattern := ""
	switch len(args) {
	case 0:
	case 1:
		if _, err := os.Stat(c.resolve(args[0])); err == nil {
			root, shown = c.resolve(args[0]), args[0]
		} else {
			pattern = args[0]
		}
	default:
		root, shown = c.resolve(args[0]), args[0]
		pattern = args[1]
	}
	if pattern == "*" {
		pattern = ""
	}

	var lines []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			// unreadable subtree
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if pattern == "" || strings.Contains(entry.Name(), pattern) {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			lines = append(lines, filepath.Join(shown, rel))
		}
		return nil
	})
	if err != nil {
		return joinLines(lines), errs.FromOS("find", shown, err)
	}
	return joinLines(lines), nil
}

func (c *Commands) grep(ctx context.Context, args []string) (string, error) {
	if len(args) < 2 {
		return "", errs.MissingOperand("grep")
	}
	re, err := regexp.Compile("(?i)" + args[0])
	if err != nil {
		return "", errs.NewInvalid("grep", "invalid pattern '%s'", args[0])
	}

	var lines []string
	var ret []error
	for _, name := range args[1:] {
		matches, err := grepFile(re, c.resolve(name))
		if err != nil {
			ret = append(ret, errs.FromOS("grep", name, err))
			continue
		}
		for _, m := range matches {
			lines = append(lines, fmt.Sprintf("%s:%d:%s", name, m.line, m.text))
		}
	}
	return joinLines(lines), errors.Join(ret...)
}

type match struct {
	line int
	text string
}

func grepFile(re *regexp.Regexp, path string) (ret []match, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for scanner.Scan() {
		n++
		text := scanner.Text()
		if re.MatchString(text) {
			ret = append(ret, match{
				line: n,
				text: strings.TrimSpace(text),
			})
		}
	}
	return ret, scanner.Err()
}
