package sessions

import (
	"os"

	"github.com/reusee/dscope"
	"github.com/reusee/taish/externals"
	"github.com/reusee/taish/fscmds"
	"github.com/reusee/taish/logs"
	"github.com/reusee/taish/shconfigs"
	"github.com/reusee/taish/submodes"
	"github.com/viant/afs"
)

type Module struct {
	dscope.Module
	Configs   shconfigs.Module
	Externals externals.Module
	SubModes  submodes.Module
	FS        fscmds.Module
	Logs      logs.Module
}

// NewSession starts a session in dir, or in the process working directory
// when dir is empty.
type NewSession func(dir string) (*Session, error)

func (Module) NewSession(
	identity shconfigs.Identity,
	host shconfigs.Host,
	historySize shconfigs.HistorySize,
	initialAliases shconfigs.InitialAliases,
	initialEnv shconfigs.InitialEnv,
	subModeCommand shconfigs.SubModeCommand,
	bridge *externals.Bridge,
	newInterpreter submodes.NewInterpreter,
	fileService afs.Service,
	logger logs.Logger,
	newSpan logs.NewSpan,
) NewSession {
	return func(dir string) (*Session, error) {
		if dir == "" {
			var err error
			dir, err = os.Getwd()
			if err != nil {
				return nil, err
			}
		}
		return New(Options{
			Dir:            dir,
			Identity:       string(identity),
			Host:           string(host),
			HistorySize:    int(historySize),
			Aliases:        initialAliases,
			Env:            initialEnv,
			SubModeCommand: string(subModeCommand),
			Bridge:         bridge,
			NewInterpreter: newInterpreter,
			FileService:    fileService,
			Logger:         logger,
			NewSpan:        newSpan,
		})
	}
}
