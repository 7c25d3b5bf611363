// Package config reads cancrc settings from HCL file.
//
//	format = "hex"
//	iterations = 1000
//	verbose = false
//	batch {
//	  workers = 0
//	  parallel_min = 100000
//	}
package config

import (
	"io/ioutil"
	"os"

	"github.com/hashicorp/hcl"
	"github.com/hashicorp/hcl/hcl/scanner"
	"github.com/hashicorp/hcl/hcl/token"
	"github.com/juju/errors"
	"github.com/temoto/cancrc/batch"
	"github.com/temoto/cancrc/helpers"
	"github.com/temoto/cancrc/log2"
)

const (
	FormatBinary = "bin"
	FormatHex    = "hex"
)

type Config struct {
	Format     string `hcl:"format"`
	Iterations int    `hcl:"iterations"`
	Verbose    bool   `hcl:"verbose"`
	Batch      struct {
		Workers     int `hcl:"workers"`
		ParallelMin int `hcl:"parallel_min"`
	} `hcl:"batch"`
}

func Default() *Config {
	c := &Config{
		Format:     FormatHex,
		Iterations: 1,
	}
	c.Batch.ParallelMin = int(batch.DefaultParallelMin)
	return c
}

// Parse decodes HCL over defaults and validates.
func Parse(b []byte) (*Config, error) {
	c := Default()
	if err := checkDangling(b); err != nil {
		return nil, errors.Annotate(err, "config unmarshal")
	}
	if err := hcl.Unmarshal(b, c); err != nil {
		return nil, errors.Annotate(err, "config unmarshal")
	}
	return c, c.Validate()
}

// hcl accepts `key = ` at end of block or line and keeps default value.
// Value must start on the same line as '='.
func checkDangling(b []byte) error {
	s := scanner.New(b)
	s.Error = func(token.Pos, string) {}
	var assign *token.Token
	for {
		tok := s.Scan()
		if tok.Type == token.COMMENT {
			continue
		}
		if assign != nil {
			switch {
			case tok.Type == token.EOF, tok.Type == token.RBRACE, tok.Pos.Line != assign.Pos.Line:
				return errors.NotValidf("line=%d missing value after '='", assign.Pos.Line)
			}
			assign = nil
		}
		switch tok.Type {
		case token.EOF:
			return nil
		case token.ASSIGN:
			t := tok
			assign = &t
		}
	}
}

// ReadFile with optional=true returns Default() when file does not exist.
func ReadFile(log *log2.Log, path string, optional bool) (*Config, error) {
	b, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) && optional {
		log.Debugf("config path=%s not found, using defaults", path)
		return Default(), nil
	}
	if err != nil {
		return nil, errors.Annotatef(err, "config path=%s", path)
	}
	log.Debugf("config reading path=%s", path)
	c, err := Parse(b)
	return c, errors.Annotatef(err, "config path=%s", path)
}

func (c *Config) Validate() error {
	errs := make([]error, 0, 4)
	switch c.Format {
	case FormatBinary, FormatHex:
	default:
		errs = append(errs, errors.NotValidf("format='%s' (expected %s|%s)", c.Format, FormatBinary, FormatHex))
	}
	if c.Iterations < 0 {
		errs = append(errs, errors.NotValidf("iterations=%d", c.Iterations))
	} else if err := batch.CheckIterations(uint64(c.Iterations)); err != nil {
		errs = append(errs, err)
	}
	if c.Batch.Workers < 0 {
		errs = append(errs, errors.NotValidf("batch.workers=%d", c.Batch.Workers))
	}
	if c.Batch.ParallelMin < 0 {
		errs = append(errs, errors.NotValidf("batch.parallel_min=%d", c.Batch.ParallelMin))
	}
	return helpers.FoldErrors(errs)
}

func (c *Config) Runner(log *log2.Log) *batch.Runner {
	return &batch.Runner{
		Workers:     c.Batch.Workers,
		ParallelMin: uint64(c.Batch.ParallelMin),
		Log:         log,
	}
}
