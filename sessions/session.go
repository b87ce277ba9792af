package sessions

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/reusee/taish/aliases"
	"github.com/reusee/taish/builtins"
	"github.com/reusee/taish/envs"
	"github.com/reusee/taish/errs"
	"github.com/reusee/taish/externals"
	"github.com/reusee/taish/fscmds"
	"github.com/reusee/taish/histories"
	"github.com/reusee/taish/logs"
	"github.com/reusee/taish/shconfigs"
	"github.com/reusee/taish/submodes"
	"github.com/reusee/taish/syscmds"
	"github.com/reusee/taish/tokens"
	"github.com/samber/lo"
	"github.com/viant/afs"
)

type Mode int

const (
	Shell Mode = iota
	SubMode
	Terminated
)

func (m Mode) String() string {
	switch m {
	case Shell:
		return "shell"
	case SubMode:
		return "sub-mode"
	case Terminated:
		return "terminated"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ExitSentinel is the text of the reply to the exit command.
const ExitSentinel = "EXIT"

const (
	exitCommand = "exit"
)

var subModeExits = []string{"exit()", "quit()"}

// Reply is the outcome of one input line.
type Reply struct {
	Text string
	// Mode after the line
	Mode       Mode
	Terminated bool
	// Failed marks error output for presentation
	Failed bool
}

type Options struct {
	Dir            string
	Identity       string
	Host           string
	HistorySize    int
	Aliases        map[string]string
	Env            map[string]string
	SubModeCommand string
	Bridge         *externals.Bridge
	NewInterpreter submodes.NewInterpreter
	FileService    afs.Service
	Logger         logs.Logger
	NewSpan        logs.NewSpan
}

// Session owns the interpreter state of one user. It is not safe for
// concurrent use; lines are processed one at a time.
type Session struct {
	ID             string
	identity       string
	host           string
	dir            string
	mode           Mode
	subModeCommand string

	env      *envs.Store
	aliases  *aliases.Table
	history  *histories.Buffer
	registry *builtins.Registry

	bridge         *externals.Bridge
	newInterpreter submodes.NewInterpreter
	interpreter    *submodes.Interpreter
	logger         logs.Logger
	newSpan        logs.NewSpan
	now            func() time.Time
}

func New(opts Options) (*Session, error) {
	dir, err := filepath.Abs(opts.Dir)
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(dir); err != nil {
		return nil, errs.FromOS("session", dir, err)
	} else if !info.IsDir() {
		return nil, errs.NewInvalid("session", "%s: Not a directory", dir)
	}

	s := &Session{
		ID:             uuid.NewString(),
		identity:       opts.Identity,
		host:           opts.Host,
		dir:            dir,
		mode:           Shell,
		subModeCommand: lo.CoalesceOrEmpty(opts.SubModeCommand, shconfigs.DefaultSubModeCommand),
		env:            envs.NewStore(os.Environ()),
		history:        histories.NewBuffer(opts.HistorySize),
		registry:       builtins.NewRegistry(),
		bridge:         opts.Bridge,
		newInterpreter: opts.NewInterpreter,
		logger:         opts.Logger,
		newSpan:        opts.NewSpan,
		now:            time.Now,
	}
	s.aliases = aliases.NewTable(s.reservedNames()...)

	if s.bridge == nil {
		s.bridge = &externals.Bridge{
			Timeout: shconfigs.DefaultCommandTimeout,
			Logger:  s.logger,
		}
	}
	if opts.FileService == nil {
		opts.FileService = afs.New()
	}

	// rejected config entries are skipped so that the session still starts
	envNames := lo.Keys(opts.Env)
	slices.Sort(envNames)
	for _, name := range envNames {
		if err := s.env.Set(name, opts.Env[name]); err != nil {
			s.warnSkipped("env", name, err)
		}
	}
	aliasNames := lo.Keys(opts.Aliases)
	slices.Sort(aliasNames)
	for _, name := range aliasNames {
		if err := s.aliases.Define(name, opts.Aliases[name]); err != nil {
			s.warnSkipped("alias", name, err)
		}
	}

	s.defineBuiltins()
	(&fscmds.Commands{
		Dir: s.Dir,
		FS:  opts.FileService,
	}).Define(s.registry)
	(&syscmds.Commands{
		Logger: s.logger,
	}).Define(s.registry)

	if s.logger != nil {
		s.logger.Info("session started",
			"session", s.ID,
			"dir", s.dir,
			"commands", len(s.registry.Entries()),
		)
	}
	return s, nil
}

func (s *Session) reservedNames() []string {
	return []string{exitCommand, s.subModeCommand}
}

func (s *Session) Mode() Mode {
	return s.mode
}

func (s *Session) Dir() string {
	return s.dir
}

func (s *Session) Identity() string {
	return s.identity
}

func (s *Session) Host() string {
	return s.host
}

func (s *Session) Registry() *builtins.Registry {
	return s.registry
}

// Prompt is derived from the session state only.
func (s *Session) Prompt() string {
	switch s.mode {
	case Shell:
		return fmt.Sprintf("%s@%s:%s$ ", s.identity, s.host, filepath.Base(s.dir))
	case SubMode:
		return s.interpreter.Prompt()
	}
	return ""
}

// LeaveSubMode returns to the shell, dropping any unfinished block.
func (s *Session) LeaveSubMode() {
	if s.mode != SubMode {
		return
	}
	s.interpreter.Reset()
	s.mode = Shell
}

// Interrupt abandons the line being composed. Running commands are not
// affected.
func (s *Session) Interrupt() {
	if s.mode != SubMode || !s.interpreter.Pending() {
		return
	}
	s.interpreter.Reset()
	if s.logger != nil {
		s.logger.Debug("pending block dropped",
			"session", s.ID,
		)
	}
}

// Execute processes one input line. Failures of any kind, panics included,
// are rendered into the reply; the session stays usable.
func (s *Session) Execute(ctx context.Context, line string) (reply Reply) {
	if s.mode == Terminated {
		return Reply{
			Mode:       Terminated,
			Terminated: true,
		}
	}

	ctx = logs.WithSession(ctx, s.ID)
	if s.newSpan != nil {
		label := s.subModeCommand
		if s.mode == Shell {
			label = spanLabel(line)
		}
		ctx, _ = s.newSpan(ctx, label)
	}

	defer func() {
		if p := recover(); p != nil {
			if s.logger != nil {
				s.logger.ErrorContext(ctx, "panic",
					"panic", p,
					"stack", string(debug.Stack()),
				)
			}
			reply = s.reply(ctx, "", &errs.Error{
				Kind: errs.Unhandled,
				Op:   "Error",
				Msg:  fmt.Sprint(p),
			})
		}
	}()

	if s.mode == SubMode {
		return s.executeSubMode(ctx, line)
	}
	return s.executeShell(ctx, line)
}

func (s *Session) warnSkipped(kind string, name string, err error) {
	if s.logger == nil {
		return
	}
	s.logger.Warn("config entry skipped",
		"kind", kind,
		"name", name,
		"error", err,
	)
}

func (s *Session) executeShell(ctx context.Context, line string) Reply {
	line = strings.TrimSpace(line)
	if line == "" {
		return s.reply(ctx, "", nil)
	}
	s.history.Append(line)
	argv := tokens.Tokenize(line)
	if len(argv) == 0 {
		return s.reply(ctx, "", nil)
	}

	// meta commands
	switch argv[0] {
	case exitCommand:
		s.mode = Terminated
		if s.logger != nil {
			s.logger.InfoContext(ctx, "session terminated")
		}
		return Reply{
			Text:       ExitSentinel,
			Mode:       Terminated,
			Terminated: true,
		}
	case s.subModeCommand:
		if s.interpreter == nil {
			s.interpreter = s.makeInterpreter()
		}
		s.mode = SubMode
		return Reply{
			Text: submodes.Banner,
			Mode: SubMode,
		}
	}

	out, err := s.run(ctx, argv)
	return s.reply(ctx, out, err)
}

func (s *Session) executeSubMode(ctx context.Context, line string) Reply {
	if slices.Contains(subModeExits, strings.TrimSpace(line)) {
		s.LeaveSubMode()
		return s.reply(ctx, "", nil)
	}
	out, err := s.interpreter.Feed(ctx, line)
	return s.reply(ctx, out, err)
}

// run substitutes an alias and dispatches to a built-in or an external program.
func (s *Session) run(ctx context.Context, argv []string) (string, error) {
	if len(argv) == 0 {
		return "", nil
	}
	if expanded, ok := s.aliases.Expand(argv); ok {
		if s.logger != nil {
			s.logger.DebugContext(ctx, "alias",
				"name", argv[0],
				"to", expanded[0],
			)
		}
		argv = expanded
	}
	name, args := argv[0], argv[1:]

	if entry, ok := s.registry.Lookup(name); ok {
		if s.logger != nil {
			s.logger.DebugContext(ctx, "builtin",
				"name", name,
				"capability", entry.Capability.String(),
				"args", len(args),
			)
		}
		return entry.Handler(ctx, args)
	}

	result, err := s.bridge.Run(ctx, name, args, s.dir, s.env.Environ())
	if err != nil {
		return "", err
	}
	return result.Render(), nil
}

func (s *Session) reply(ctx context.Context, out string, err error) Reply {
	text := out
	if err != nil {
		if s.logger != nil {
			s.logger.InfoContext(ctx, "command failed",
				"error", logs.WrapSpan(ctx, err),
				"kind", errs.KindOf(err).String(),
			)
		}
		msg := errs.Format(err)
		if text != "" && msg != "" {
			text += "\n" + msg
		} else if msg != "" {
			text = msg
		}
	}
	return Reply{
		Text:   text,
		Mode:   s.mode,
		Failed: err != nil || LooksFailed(text),
	}
}

// LooksFailed reports whether text reads like an error message.
func LooksFailed(text string) bool {
	for _, marker := range []string{"Error:", "No such file", "invalid"} {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// only the command name is logged, arguments may carry secrets
func spanLabel(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
