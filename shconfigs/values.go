package shconfigs

import (
	"os"
	"os/user"
	"time"

	"github.com/reusee/taish/cmds"
	"github.com/reusee/taish/configs"
	"github.com/reusee/taish/histories"
	"github.com/reusee/taish/logs"
	"github.com/reusee/taish/vars"
)

const DefaultCommandTimeout = 30 * time.Second

type CommandTimeout time.Duration

var timeoutFlag = cmds.Var[time.Duration]("-timeout", "external command timeout")

func (Module) CommandTimeout(
	loader configs.Loader,
	logger logs.Logger,
) CommandTimeout {
	// flag
	if *timeoutFlag > 0 {
		return CommandTimeout(*timeoutFlag)
	}
	// config
	if str := first[string](loader, logger, "timeout"); str != "" {
		d, err := time.ParseDuration(str)
		if err == nil && d > 0 {
			return CommandTimeout(d)
		}
		logger.Warn("bad timeout in config", "value", str, "error", err)
	}
	return CommandTimeout(DefaultCommandTimeout)
}

type HistorySize int

var historySizeFlag = cmds.Var[int]("-history-size", "number of entries shown by history")

func (Module) HistorySize(
	loader configs.Loader,
	logger logs.Logger,
) HistorySize {
	return HistorySize(vars.FirstNonZero(
		max(*historySizeFlag, 0),
		first[int](loader, logger, "history_size"),
		histories.DefaultSize,
	))
}

// Identity is the user name shown in the prompt.
type Identity string

func (Module) Identity(
	loader configs.Loader,
	logger logs.Logger,
) Identity {
	var name string
	if u, err := user.Current(); err == nil {
		name = u.Username
	}
	return Identity(vars.FirstNonZero(
		first[string](loader, logger, "identity"),
		os.Getenv("USER"),
		os.Getenv("USERNAME"),
		name,
		"user",
	))
}

type Host string

func (Module) Host(
	loader configs.Loader,
	logger logs.Logger,
) Host {
	hostname, _ := os.Hostname()
	return Host(vars.FirstNonZero(
		first[string](loader, logger, "host"),
		hostname,
		"localhost",
	))
}

type InitialAliases map[string]string

func (Module) InitialAliases(
	loader configs.Loader,
	logger logs.Logger,
) InitialAliases {
	return merged(loader, logger, "aliases")
}

type InitialEnv map[string]string

func (Module) InitialEnv(
	loader configs.Loader,
	logger logs.Logger,
) InitialEnv {
	return merged(loader, logger, "env")
}

const DefaultSubModeCommand = "python"

// SubModeCommand is the meta command that enters the embedded interpreter.
type SubModeCommand string

func (Module) SubModeCommand(
	loader configs.Loader,
	logger logs.Logger,
) SubModeCommand {
	return SubModeCommand(vars.FirstNonZero(
		first[string](loader, logger, "sub_mode_command"),
		DefaultSubModeCommand,
	))
}

// A broken config file degrades to defaults instead of aborting startup.
// The load failure itself is reported by ConfigsLoader.
func first[T any](loader configs.Loader, logger logs.Logger, path string) T {
	value, err := configs.First[T](loader, path)
	if err != nil {
		logger.Debug("config value ignored",
			"path", path,
			"error", err,
		)
	}
	return value
}

func merged(loader configs.Loader, logger logs.Logger, path string) map[string]string {
	m, err := configs.Merge[string](loader, path)
	if err != nil {
		logger.Debug("config value ignored",
			"path", path,
			"error", err,
		)
		return nil
	}
	return m
}
