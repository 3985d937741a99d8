package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/shlex"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
)

const prompt = "mcp7940> "

type prompter interface {
	Prompt(prompt string) (string, error)
}

// scanner reads commands from a script or pipe.
type scanner struct {
	s *bufio.Scanner
}

func (p scanner) Prompt(string) (string, error) {
	if !p.s.Scan() {
		if err := p.s.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return p.s.Text(), nil
}

// shell runs commands read from in until EOF, "quit" or ^C. A terminal on stdin gets
// line editing and history.
func (c *ctl) shell(in *os.File) error {
	if !isatty.IsTerminal(in.Fd()) {
		return c.repl(scanner{bufio.NewScanner(in)}, nil)
	}

	term := liner.NewLiner()
	defer term.Close()
	term.SetCtrlCAborts(true)
	term.SetCompleter(complete)
	return c.repl(term, term.AppendHistory)
}

func (c *ctl) repl(p prompter, history func(string)) error {
	for {
		line, err := p.Prompt(prompt)
		switch {
		case err == nil:
		case errors.Is(err, io.EOF), errors.Is(err, liner.ErrPromptAborted):
			return nil
		default:
			return err
		}

		args, err := splitLine(line)
		if err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		if history != nil {
			history(line)
		}
		if args[0] == "quit" || args[0] == "exit" {
			return nil
		}
		if err := c.run(args); err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
		}
	}
}

// splitLine tokenizes a shell line, dropping # comments.
func splitLine(line string) ([]string, error) {
	return shlex.Split(line)
}

func complete(line string) []string {
	var out []string
	for _, name := range commands {
		if strings.HasPrefix(name, line) {
			out = append(out, name)
		}
	}
	return out
}
