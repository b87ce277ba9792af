package shconfigs

import (
	"testing"
	"time"

	"github.com/reusee/dscope"
	"github.com/reusee/taish/configs"
	"github.com/reusee/taish/histories"
	"github.com/reusee/taish/modes"
)

func TestValuesFromFile(t *testing.T) {
	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		func() ConfigPaths {
			return ConfigPaths{"testdata/taish.cue"}
		},
	).Call(func(
		loader configs.Loader,
		timeout CommandTimeout,
		size HistorySize,
		identity Identity,
		host Host,
		aliases InitialAliases,
		env InitialEnv,
		subMode SubModeCommand,
	) {
		if paths := loader.Paths(); len(paths) != 1 || paths[0] != "testdata/taish.cue" {
			t.Fatalf("got %v", paths)
		}
		if time.Duration(timeout) != 5*time.Second {
			t.Fatalf("got %v", timeout)
		}
		if size != 7 {
			t.Fatalf("got %v", size)
		}
		if identity != "alice" {
			t.Fatalf("got %v", identity)
		}
		if host != "box" {
			t.Fatalf("got %v", host)
		}
		if aliases["ll"] != "ls -l" {
			t.Fatalf("got %v", aliases)
		}
		if env["EDITOR"] != "vi" {
			t.Fatalf("got %v", env)
		}
		if subMode != DefaultSubModeCommand {
			t.Fatalf("got %v", subMode)
		}
	})
}

func TestDefaults(t *testing.T) {
	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		func() ConfigPaths {
			return nil
		},
	).Call(func(
		timeout CommandTimeout,
		size HistorySize,
		identity Identity,
		host Host,
		aliases InitialAliases,
	) {
		if time.Duration(timeout) != DefaultCommandTimeout {
			t.Fatalf("got %v", timeout)
		}
		if size != histories.DefaultSize {
			t.Fatalf("got %v", size)
		}
		if identity == "" {
			t.Fatal()
		}
		if host == "" {
			t.Fatal()
		}
		if len(aliases) != 0 {
			t.Fatalf("got %v", aliases)
		}
	})
}

func TestSchemaViolation(t *testing.T) {
	loader := configs.NewLoader([]string{"testdata/bad.cue"}, schema)
	if err := loader.Err(); err == nil {
		t.Fatal("should error")
	}

	// falls back to defaults
	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		func() ConfigPaths {
			return ConfigPaths{"testdata/bad.cue"}
		},
	).Call(func(
		size HistorySize,
		subMode SubModeCommand,
		aliases InitialAliases,
	) {
		if size != histories.DefaultSize {
			t.Fatalf("got %v", size)
		}
		if subMode != DefaultSubModeCommand {
			t.Fatalf("got %v", subMode)
		}
		if len(aliases) != 0 {
			t.Fatalf("got %v", aliases)
		}
	})
}
