package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/c-bata/go-prompt"
	"github.com/juju/errors"
	"github.com/temoto/cancrc/batch"
	"github.com/temoto/cancrc/bitseq"
	"github.com/temoto/cancrc/config"
	"github.com/temoto/cancrc/log2"
)

const usage = `syntax: words separated by whitespace
(settings, apply to this and next lines)
- hex       input is hex bytes: AA BB 01 (max 12 bytes)
- bin       input is bits: 0101 1100 (max 96 bits)
- n=N       repeat computation N times, 1..1,000,000,000
- v=yes     verbose: show batch strategy
- v=no      quiet

(other)
- help      show this text
- exit      quit
anything else is input data in current format
`

var suggests = []prompt.Suggest{
	{Text: "hex", Description: "input format hex bytes"},
	{Text: "bin", Description: "input format bits"},
	{Text: "n=", Description: "iterations 1..1e9"},
	{Text: "v=yes", Description: "verbose"},
	{Text: "v=no", Description: "quiet"},
	{Text: "help", Description: "usage"},
	{Text: "exit", Description: "quit"},
}

type session struct {
	format     string
	iterations uint64
	runner     *batch.Runner
	log        *log2.Log
	out        io.Writer
}

func newSession(ctx context.Context, c *config.Config, out io.Writer) *session {
	log := log2.FromContext(ctx)
	s := &session{
		format:     c.Format,
		iterations: uint64(c.Iterations),
		runner:     c.Runner(log),
		log:        log,
		out:        out,
	}
	s.setVerbose(c.Verbose)
	return s
}

func (s *session) setVerbose(v bool) {
	if v {
		s.log.SetLevel(log2.LDebug)
	} else {
		s.log.SetLevel(log2.LInfo)
	}
}

func (s *session) parse(text string) (bitseq.Bits, error) {
	switch s.format {
	case config.FormatBinary:
		return bitseq.ParseBinary(text)
	case config.FormatHex:
		return bitseq.ParseHex(text)
	}
	return nil, errors.NotValidf("format='%s'", s.format)
}

func (s *session) compute(text string) (batch.Result, error) {
	if err := batch.CheckIterations(s.iterations); err != nil {
		return batch.Result{}, errors.Trace(err)
	}
	bits, err := s.parse(text)
	if err != nil {
		return batch.Result{}, errors.Annotatef(err, "input='%s'", text)
	}
	s.log.Debugf("input format=%s bits=%s", s.format, bits.String())
	return s.runner.Run(bits, s.iterations), nil
}

func (s *session) report(r batch.Result) {
	fmt.Fprintf(s.out, "CRC: 0x%s  dec: %s  bin: %s\n", r.Hex(), r.Decimal(), r.Binary())
	fmt.Fprintf(s.out, "bits: %d  iterations: %d  workers: %d  elapsed: %.3f ms\n",
		r.Bits, r.Iterations, r.Workers, r.Millis())
	if r.Iterations > 1 {
		per := r.PerIteration()
		fmt.Fprintf(s.out, "per CRC: %.6f ms (%.3f us)  throughput: %s CRC/s\n",
			float64(per)/float64(time.Millisecond), float64(per)/float64(time.Microsecond),
			batch.FormatThousands(uint64(r.Throughput())))
	}
	if r.Workers > 1 && s.log.Enabled(log2.LDebug) {
		fmt.Fprintf(s.out, "note: parallel processing used, workers=%d\n", r.Workers)
	}
}

// exec runs one line, returns quit=true on exit command.
// Settings words are applied even if data fails to parse.
func (s *session) exec(line string) (quit bool, err error) {
	data := make([]string, 0, 8)
	for _, w := range strings.Fields(line) {
		switch {
		case w == "exit" || w == "quit":
			quit = true
		case w == "help":
			fmt.Fprint(s.out, usage)
		case w == config.FormatHex || w == config.FormatBinary:
			s.format = w
		case w == "v=yes":
			s.setVerbose(true)
		case w == "v=no":
			s.setVerbose(false)
		case strings.HasPrefix(w, "n="):
			n, err := batch.ParseIterations(w[2:])
			if err != nil {
				return quit, errors.Trace(err)
			}
			s.iterations = n
		default:
			data = append(data, w)
		}
	}
	if len(data) == 0 {
		return quit, nil
	}
	result, err := s.compute(strings.Join(data, " "))
	if err != nil {
		return quit, err
	}
	s.report(result)
	return quit, nil
}
