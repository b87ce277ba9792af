package builtins

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegistry(t *testing.T) {
	registry := NewRegistry()
	var called []string
	list := func(ctx context.Context, args []string) (string, error) {
		called = append(called, strings.Join(args, ","))
		return "listed", nil
	}
	registry.Define("ls", Func(Filesystem, list).Desc("list directory contents").Alias("dir"))
	registry.Define("pwd", Func(SessionState, func(ctx context.Context, args []string) (string, error) {
		return "/", nil
	}))

	entry, ok := registry.Lookup("dir")
	if !ok {
		t.Fatal()
	}
	if entry.Name != "ls" {
		t.Fatalf("got %v", entry.Name)
	}
	if entry.Capability != Filesystem {
		t.Fatalf("got %v", entry.Capability)
	}
	out, err := entry.Handler(context.Background(), []string{"-l", "/tmp"})
	if err != nil {
		t.Fatal(err)
	}
	if out != "listed" {
		t.Fatalf("got %q", out)
	}
	if diff := cmp.Diff([]string{"-l,/tmp"}, called); diff != "" {
		t.Fatal(diff)
	}

	if _, ok := registry.Lookup("cd"); ok {
		t.Fatal()
	}

	if diff := cmp.Diff([]string{"dir", "ls", "pwd"}, registry.Names()); diff != "" {
		t.Fatal(diff)
	}

	entries := registry.Entries()
	if len(entries) != 2 || entries[0].Name != "ls" || entries[1].Name != "pwd" {
		t.Fatalf("got %v", entries)
	}
}

func TestDuplicatedCommand(t *testing.T) {
	registry := NewRegistry()
	nop := func(ctx context.Context, args []string) (string, error) {
		return "", nil
	}
	registry.Define("ls", Func(Filesystem, nop))
	defer func() {
		p := recover()
		if p == nil {
			t.Fatal("should panic")
		}
		if !strings.Contains(p.(error).Error(), "duplicated command ls") {
			t.Fatalf("got %v", p)
		}
	}()
	registry.Define("list", Func(Filesystem, nop).Alias("ls"))
}

func TestCapabilityString(t *testing.T) {
	if Meta.String() != "meta" {
		t.Fatal()
	}
	if Capability(42).String() != "capability(42)" {
		t.Fatal()
	}
}
