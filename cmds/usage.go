package cmds

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

func (p *Executor) PrintUsage() {
	printUsage(p, p.commands, 0)
}

func printUsage(p *Executor, commands map[string]*Command, depth int) {
	// aliases are listed with the command that owns them
	seen := make(map[*Command]bool)
	var names []string
	for name, cmd := range commands {
		if cmd == nil || seen[cmd] {
			continue
		}
		if slices.Contains(cmd.Aliases, name) {
			continue
		}
		seen[cmd] = true
		names = append(names, name)
	}
	slices.Sort(names)

	indent := strings.Repeat("  ", depth)
	for _, name := range names {
		cmd := commands[name]
		label := strings.Join(append([]string{name}, cmd.Aliases...), ", ")
		if cmd.Func.IsValid() {
			for i := 0; i < cmd.Func.Type().NumIn(); i++ {
				label += " <" + argName(cmd.Func.Type().In(i)) + ">"
			}
		}
		if cmd.Description != "" {
			fmt.Fprintf(p.Output, "%s%-28s %s\n", indent, label, cmd.Description)
		} else {
			fmt.Fprintf(p.Output, "%s%s\n", indent, label)
		}
		if len(cmd.Subs) > 0 {
			printUsage(p, cmd.Subs, depth+1)
		}
	}
}

func argName(t reflect.Type) string {
	optional := false
	if t.Kind() == reflect.Pointer {
		optional = true
		t = t.Elem()
	}
	name := t.Kind().String()
	if t == durationType {
		name = "duration"
	}
	if optional {
		name += "?"
	}
	return name
}
