package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/juju/errors"
	"github.com/temoto/cancrc/batch"
	"github.com/temoto/cancrc/config"
	"github.com/temoto/cancrc/helpers/cli"
	"github.com/temoto/cancrc/log2"
)

var log = log2.NewStderr(log2.LInfo)

func main() {
	cmdline := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	configPath := cmdline.String("config", "cancrc.hcl", "HCL config, optional")
	format := cmdline.String("format", "", "bin|hex, overrides config")
	iterations := cmdline.String("n", "", "iterations 1..1000000000, overrides config")
	verbose := cmdline.Bool("v", false, "verbose")
	_ = cmdline.Parse(os.Args[1:])

	log.SetFlags(log2.LInteractiveFlags)

	c, err := config.ReadFile(log, *configPath, true)
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	if *format != "" {
		c.Format = *format
	}
	if *iterations != "" {
		n, err := batch.ParseIterations(*iterations)
		if err != nil {
			log.Fatal(errors.ErrorStack(err))
		}
		c.Iterations = int(n)
	}
	c.Verbose = c.Verbose || *verbose
	if err := c.Validate(); err != nil {
		log.Fatal(errors.ErrorStack(err))
	}

	ctx := log2.NewContext(context.Background(), log)
	s := newSession(ctx, c, os.Stdout)
	if cmdline.NArg() != 0 {
		result, err := s.compute(strings.Join(cmdline.Args(), " "))
		if err != nil {
			log.Fatal(errors.ErrorStack(err))
		}
		s.report(result)
		return
	}

	log.Infof("type help for usage")
	err = cli.MainLoop("cancrc", func(line string) {
		quit, err := s.exec(line)
		if err != nil {
			log.Error(errors.ErrorStack(err))
		}
		if quit {
			os.Exit(0)
		}
	}, cli.FilterSuggest(suggests))
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
}
