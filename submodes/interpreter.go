package submodes

import (
	"context"
	"errors"
	"strings"

	"github.com/reusee/taish/errs"
	"github.com/reusee/taish/logs"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

const (
	Prompt             = ">>> "
	ContinuationPrompt = "... "
	Banner             = "Starlark interactive mode. Type exit() or quit() to return to the shell."
)

var fileOptions = &syntax.FileOptions{
	Set:               true,
	While:             true,
	TopLevelControl:   true,
	GlobalReassign:    true,
	Recursion:         true,
	LoadBindsGlobally: true,
}

// Host is the shell the interpreter is embedded in.
type Host interface {
	// Run executes a shell line and returns its rendered text.
	Run(ctx context.Context, line string) string
	Environ() map[string]string
	Dir() string
}

// Interpreter evaluates lines in a persistent Starlark environment. Lines
// ending in ":" open a block that runs at the next blank line.
type Interpreter struct {
	host    Host
	logger  logs.Logger
	thread  *starlark.Thread
	globals starlark.StringDict
	pending []string
	output  strings.Builder
	ctx     context.Context
}

func New(host Host, logger logs.Logger) *Interpreter {
	i := &Interpreter{
		host:    host,
		logger:  logger,
		globals: make(starlark.StringDict),
	}
	i.thread = i.newThread()
	i.globals["sh"] = starlark.NewBuiltin("sh", i.sh)
	if cwd, err := toValue(func() string {
		return i.host.Dir()
	}); err == nil {
		i.globals["cwd"] = cwd
	}
	return i
}

func (i *Interpreter) newThread() *starlark.Thread {
	return &starlark.Thread{
		Name: "taish",
		Print: func(_ *starlark.Thread, msg string) {
			i.output.WriteString(msg)
			i.output.WriteString("\n")
		},
	}
}

func (i *Interpreter) Prompt() string {
	if i.Pending() {
		return ContinuationPrompt
	}
	return Prompt
}

// Pending reports whether a block is being accumulated.
func (i *Interpreter) Pending() bool {
	return len(i.pending) > 0
}

// Reset drops the block being accumulated.
func (i *Interpreter) Reset() {
	i.pending = i.pending[:0]
}

// Feed takes one line. Output printed by the script is returned even when
// evaluation fails.
func (i *Interpreter) Feed(ctx context.Context, line string) (string, error) {
	if len(i.pending) > 0 {
		if strings.TrimSpace(line) != "" {
			i.pending = append(i.pending, line)
			return "", nil
		}
		src := strings.Join(i.pending, "\n") + "\n"
		i.Reset()
		return i.exec(ctx, src)
	}

	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", nil
	}
	if strings.HasSuffix(trimmed, ":") {
		i.pending = append(i.pending, line)
		return "", nil
	}
	return i.exec(ctx, trimmed+"\n")
}

func (i *Interpreter) exec(ctx context.Context, src string) (ret string, err error) {
	i.output.Reset()
	defer func() {
		ret = strings.TrimRight(i.output.String()+ret, "\n")
	}()

	env, err := toValue(i.host.Environ())
	if err != nil {
		return "", err
	}
	i.globals["env"] = env

	if err := ctx.Err(); err != nil {
		return "", err
	}
	i.ctx = ctx
	thread := i.thread
	stop := context.AfterFunc(ctx, func() {
		thread.Cancel("interrupted")
	})
	defer func() {
		if !stop() {
			// a cancelled thread stays cancelled
			i.thread = i.newThread()
		}
	}()

	f, err := fileOptions.Parse("<stdin>", src, 0)
	if err != nil {
		return "", &errs.Error{
			Kind: errs.Parse,
			Msg:  err.Error(),
			Err:  err,
		}
	}

	if expr := soleExpr(f); expr != nil {
		v, err := starlark.EvalExprOptions(f.Options, i.thread, expr, i.globals)
		if err != nil {
			return "", i.evalError(ctx, err)
		}
		if v != starlark.None {
			return v.String(), nil
		}
		return "", nil
	}

	if err := starlark.ExecREPLChunk(f, i.thread, i.globals); err != nil {
		return "", i.evalError(ctx, err)
	}
	return "", nil
}

func (i *Interpreter) evalError(ctx context.Context, err error) error {
	msg := err.Error()
	var evalErr *starlark.EvalError
	if errors.As(err, &evalErr) {
		msg = evalErr.Backtrace()
	}
	if i.logger != nil {
		i.logger.DebugContext(ctx, "starlark error", "error", err)
	}
	return &errs.Error{
		Kind: errs.Unhandled,
		Msg:  msg,
		Err:  err,
	}
}

func soleExpr(f *syntax.File) syntax.Expr {
	if len(f.Stmts) == 1 {
		if stmt, ok := f.Stmts[0].(*syntax.ExprStmt); ok {
			return stmt.X
		}
	}
	return nil
}

func (i *Interpreter) sh(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var line string
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &line); err != nil {
		return nil, err
	}
	ctx := i.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return starlark.String(i.host.Run(ctx, line)), nil
}
