package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/cancrc/batch"
	"github.com/temoto/cancrc/bitseq"
	"github.com/temoto/cancrc/config"
	"github.com/temoto/cancrc/log2"
)

func newTestSession(t testing.TB) (*session, *bytes.Buffer) {
	buf := bytes.NewBuffer(nil)
	ctx := log2.NewContext(context.Background(), log2.NewTest(t, log2.LDebug))
	s := newSession(ctx, config.Default(), buf)
	return s, buf
}

func TestSessionExec(t *testing.T) {
	t.Parallel()

	type Case struct {
		name    string
		lines   []string
		expect  string
		errKind bitseq.Kind
		errIter bool
	}
	cases := []Case{
		{"hex-default", []string{"31 32 33 34 35 36 37 38 39"}, "CRC: 0x059E  dec: 1438  bin: 000010110011110\n", bitseq.KindNone, false},
		{"bin-switch", []string{"bin 1"}, "CRC: 0x4599  dec: 17817  bin: 100010110011001\n", bitseq.KindNone, false},
		{"bin-sticky", []string{"bin", "1101"}, "CRC: 0x6951", bitseq.KindNone, false},
		{"zero", []string{"bin 0"}, "CRC: 0x0000", bitseq.KindNone, false},
		{"iterations", []string{"n=1000 AA"}, "iterations: 1000", bitseq.KindNone, false},
		{"throughput", []string{"n=1000 AA"}, " CRC/s\n", bitseq.KindNone, false},
		{"per-crc", []string{"n=1_000 AA"}, "per CRC: ", bitseq.KindNone, false},
		{"help", []string{"help"}, "syntax:", bitseq.KindNone, false},
		{"invalid", []string{"bin 12X34"}, "", bitseq.InvalidCharacter, false},
		{"odd", []string{"ABC"}, "", bitseq.OddLength, false},
		{"iterations-range", []string{"n=0"}, "", bitseq.KindNone, true},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			s, buf := newTestSession(t)
			var err error
			for _, line := range c.lines {
				_, err = s.exec(line)
			}
			if c.errKind != bitseq.KindNone || c.errIter {
				require.Error(t, err)
				assert.Equal(t, c.errKind, bitseq.KindOf(err))
				assert.Equal(t, c.errIter, batch.IsIterationsOutOfRange(err))
				return
			}
			require.NoError(t, err)
			assert.Contains(t, buf.String(), c.expect)
		})
	}
}

func TestSessionReport(t *testing.T) {
	t.Parallel()

	s, buf := newTestSession(t)
	s.report(batch.Result{CRC: 0x059e, Bits: 72, Iterations: 1})
	assert.NotContains(t, buf.String(), "CRC/s")
	assert.NotContains(t, buf.String(), "parallel")

	buf.Reset()
	_, err := s.exec("v=yes")
	require.NoError(t, err)
	s.report(batch.Result{CRC: 0x059e, Bits: 72, Iterations: 1000000, Workers: 4, Elapsed: 2 * time.Second})
	out := buf.String()
	assert.Contains(t, out, "per CRC: 0.002000 ms (2.000 us)  throughput: 500 000 CRC/s\n")
	assert.Contains(t, out, "note: parallel processing used, workers=4\n")

	buf.Reset()
	_, err = s.exec("v=no")
	require.NoError(t, err)
	s.report(batch.Result{Iterations: 1000000, Workers: 4, Elapsed: 2 * time.Second})
	assert.NotContains(t, buf.String(), "parallel")
}

func TestSessionQuit(t *testing.T) {
	t.Parallel()

	s, buf := newTestSession(t)
	quit, err := s.exec("exit")
	require.NoError(t, err)
	assert.True(t, quit)
	assert.Equal(t, "", buf.String())

	quit, err = s.exec("   ")
	require.NoError(t, err)
	assert.False(t, quit)
}

func TestSessionVerbose(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession(t)
	_, err := s.exec("v=no")
	require.NoError(t, err)
	assert.False(t, s.log.Enabled(log2.LDebug))
	_, err = s.exec("v=yes")
	require.NoError(t, err)
	assert.True(t, s.log.Enabled(log2.LDebug))
}
