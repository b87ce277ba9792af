package repls

import (
	"bufio"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/samber/lo"
	"golang.org/x/term"
)

// ErrInterrupt is returned by ReadLine when the user aborts the line.
var ErrInterrupt = readline.ErrInterrupt

type lineReader interface {
	ReadLine(prompt string) (string, error)
	// Remember adds line to the in-memory recall list.
	Remember(line string)
	Close() error
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type editingReader struct {
	instance *readline.Instance
}

func newEditingReader(names []string) (*editingReader, error) {
	instance, err := readline.NewEx(&readline.Config{
		InterruptPrompt:        "^C",
		EOFPrompt:              "exit",
		HistoryLimit:           1000,
		DisableAutoSaveHistory: true,
		AutoComplete: readline.NewPrefixCompleter(
			lo.Map(names, func(name string, _ int) readline.PrefixCompleterInterface {
				return readline.PcItem(name)
			})...,
		),
	})
	if err != nil {
		return nil, err
	}
	return &editingReader{
		instance: instance,
	}, nil
}

func (e *editingReader) ReadLine(prompt string) (string, error) {
	e.instance.SetPrompt(prompt)
	return e.instance.Readline()
}

func (e *editingReader) Remember(line string) {
	_ = e.instance.SaveHistory(line)
}

func (e *editingReader) Close() error {
	return e.instance.Close()
}

// scanReader reads piped input. Prompts are not shown.
type scanReader struct {
	scanner *bufio.Scanner
}

func newScanReader(r io.Reader) *scanReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &scanReader{
		scanner: scanner,
	}
}

func (s *scanReader) ReadLine(prompt string) (string, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

func (s *scanReader) Remember(line string) {
}

func (s *scanReader) Close() error {
	return nil
}
