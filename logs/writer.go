package logs

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/reusee/taish/cmds"
)

type Writer io.Writer

var logFile = cmds.Var[string]("-log-file", "write logs to file instead of stderr")

func (Module) Writer(
	t *testing.T,
) Writer {
	if t != nil {
		return testWriter{t}
	}
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err == nil {
			return f
		}
	}
	return os.Stderr
}

type testWriter struct {
	t *testing.T
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
