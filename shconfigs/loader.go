package shconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/taish/cmds"
	"github.com/reusee/taish/configs"
	"github.com/reusee/taish/logs"
)

//go:embed schema.cue
var schema string

var configFlag = cmds.Collect[string]("-config", "load configuration from file, may be repeated")

type ConfigPaths []string

// ConfigPaths lists explicit files first, then the working directory, the user config dir and /etc.
func (Module) ConfigPaths() (paths ConfigPaths) {
	paths = append(paths, *configFlag...)

	filenames := []string{
		"taish.cue",
		".taish.cue",
	}

	var dirs []string
	// working directory
	if workingDir, err := os.Getwd(); err == nil {
		dirs = append(dirs, workingDir)
	}
	// user config dir
	if configDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, configDir)
	}
	// system wide dir
	dirs = append(dirs, "/etc")

	for _, dir := range dirs {
		for _, filename := range filenames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}

	return
}

func (Module) ConfigsLoader(
	paths ConfigPaths,
	logger logs.Logger,
) configs.Loader {
	loader := configs.NewLoader(paths, schema)
	if len(loader.Paths()) > 0 {
		logger.Info("config file",
			"paths", loader.Paths(),
		)
	}
	if err := loader.Err(); err != nil {
		logger.Warn("config ignored, using defaults",
			"error", err,
		)
	}
	return loader
}
