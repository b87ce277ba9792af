package externals

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/reusee/taish/errs"
	"github.com/reusee/taish/logs"
)

// Bridge runs programs that are not built-in commands.
type Bridge struct {
	Timeout time.Duration
	Logger  logs.Logger
}

type Result struct {
	Stdout     string
	Stderr     string
	ExitStatus int
}

// Render joins both streams the way they are shown to the user.
func (r *Result) Render() string {
	out := r.Stdout
	if r.Stderr != "" {
		out += "\nError: " + r.Stderr
	}
	return strings.TrimSpace(out)
}

// Run executes name with args in dir. A non-zero exit status is reported in
// the result, not as an error. The child and its process group are gone when
// Run returns.
func (b *Bridge) Run(ctx context.Context, name string, args []string, dir string, env []string) (*Result, error) {
	path, err := lookPath(name, dir)
	if err != nil {
		return nil, errs.NewNotFound("Error", "Command '%s' not found", name)
	}

	timeout := b.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Args[0] = name
	cmd.Dir = dir
	cmd.Env = env
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// grandchildren may keep the pipes open after the group is killed
	cmd.WaitDelay = time.Second
	setProcessGroup(cmd)

	if b.Logger != nil {
		b.Logger.DebugContext(ctx, "external command",
			"name", name,
			"path", path,
			"args", args,
			"dir", dir,
		)
	}
	t0 := time.Now()
	err = cmd.Run()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		if b.Logger != nil {
			b.Logger.WarnContext(ctx, "external command timed out",
				"name", name,
				"timeout", timeout,
			)
		}
		return nil, &errs.Error{
			Kind: errs.Timeout,
			Op:   "Error",
			Msg:  "Command timed out",
			Err:  context.DeadlineExceeded,
		}
	}

	result := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitStatus = exitErr.ExitCode()
	} else if err != nil {
		return nil, logs.WrapSpan(ctx, &errs.Error{
			Kind: errs.KindOf(err),
			Op:   "Error",
			Msg:  err.Error(),
			Err:  err,
		})
	}

	if b.Logger != nil {
		b.Logger.DebugContext(ctx, "external command done",
			"name", name,
			"exit", result.ExitStatus,
			"duration", time.Since(t0),
		)
	}
	return result, nil
}

func lookPath(name string, dir string) (string, error) {
	if strings.ContainsRune(name, os.PathSeparator) || strings.ContainsRune(name, '/') {
		if !filepath.IsAbs(name) {
			name = filepath.Join(dir, name)
		}
		return exec.LookPath(name)
	}
	path, err := exec.LookPath(name)
	if errors.Is(err, exec.ErrDot) {
		err = nil
	}
	return path, err
}
