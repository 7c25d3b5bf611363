// Package cli runs line oriented interactive tools.
// On a terminal it uses go-prompt with completion, otherwise reads stdin line by line.
package cli

import (
	"bufio"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/c-bata/go-prompt"
	"github.com/juju/errors"
	"github.com/mattn/go-isatty"
)

type Executor func(line string)
type Completer func(d prompt.Document) []prompt.Suggest

// MainLoop returns when input ends.
// Executor may call os.Exit to stop interactive session.
func MainLoop(tag string, exec Executor, complete Completer) error {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)
	go func() {
		// batch has no cancellation, only way to interrupt is exit
		for range signalCh {
			os.Exit(1)
		}
	}()

	if isatty.IsTerminal(os.Stdin.Fd()) {
		prompt.New(prompt.Executor(exec), prompt.Completer(complete),
			prompt.OptionTitle(tag),
			prompt.OptionPrefix(tag+"> "),
		).Run()
		return nil
	}
	return errors.Annotate(RunLines(os.Stdin, exec), tag)
}

// RunLines passes every trimmed line of r to exec.
func RunLines(r io.Reader, exec Executor) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		exec(strings.TrimSpace(scanner.Text()))
	}
	return errors.Trace(scanner.Err())
}

// FilterSuggest is default completer behavior on the word before cursor.
func FilterSuggest(suggests []prompt.Suggest) Completer {
	return func(d prompt.Document) []prompt.Suggest {
		w := d.GetWordBeforeCursor()
		if w == "" {
			return nil
		}
		return prompt.FilterHasPrefix(suggests, w, true)
	}
}
