package batch

import (
	"fmt"
	"strconv"
	"time"

	"github.com/juju/errors"
)

type Result struct {
	CRC        uint16
	Bits       int
	Iterations uint64
	Workers    int
	Elapsed    time.Duration
}

func (r Result) Hex() string     { return fmt.Sprintf("%04X", r.CRC) }
func (r Result) Decimal() string { return strconv.FormatUint(uint64(r.CRC), 10) }
func (r Result) Binary() string  { return fmt.Sprintf("%015b", r.CRC) }

func (r Result) Millis() float64 { return float64(r.Elapsed) / float64(time.Millisecond) }

// PerIteration is average time of one CRC computation.
func (r Result) PerIteration() time.Duration {
	if r.Iterations == 0 {
		return 0
	}
	return r.Elapsed / time.Duration(r.Iterations)
}

// Throughput in CRC per second, 0 when elapsed time is not measurable.
func (r Result) Throughput() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Iterations) / r.Elapsed.Seconds()
}

// FormatThousands groups digits by three with space: 1 234 567
func FormatThousands(n uint64) string {
	s := strconv.FormatUint(n, 10)
	out := make([]byte, 0, len(s)+len(s)/3)
	for i := 0; i < len(s); i++ {
		if i != 0 && (len(s)-i)%3 == 0 {
			out = append(out, ' ')
		}
		out = append(out, s[i])
	}
	return string(out)
}

func (r Result) String() string {
	return fmt.Sprintf("crc=0x%s (%s) bin=%s bits=%d iterations=%d workers=%d elapsed=%.3fms",
		r.Hex(), r.Decimal(), r.Binary(), r.Bits, r.Iterations, r.Workers, r.Millis())
}

// CheckIterations returns NotValid error when n is outside [MinIterations, MaxIterations].
func CheckIterations(n uint64) error {
	if n < MinIterations || n > MaxIterations {
		return errors.NotValidf("iterations=%d out of range [%d, %d]", n, MinIterations, MaxIterations)
	}
	return nil
}

func IsIterationsOutOfRange(err error) bool { return errors.IsNotValid(err) }

// ParseIterations accepts decimal with optional '_' or ',' separators: "1_000_000".
func ParseIterations(s string) (uint64, error) {
	clean := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c != '_' && c != ',' {
			clean = append(clean, c)
		}
	}
	n, err := strconv.ParseUint(string(clean), 10, 64)
	if err != nil {
		return 0, errors.Annotatef(err, "iterations='%s'", s)
	}
	return n, errors.Trace(CheckIterations(n))
}
