package oracle

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"github.com/Borislavv/go-lcg48/internal/engine"
	"io"
	"os"
	"strconv"
)

// DefaultGolden is the golden stream of seed 985456376, multiplier 0, stream 0 of 1.
//
// Golden streams were computed by a separate model of the recurrence written for this
// repository, not by an external generator, so they guard against regressions and against
// scalar/vector drift but do not prove agreement with any third-party implementation.
const DefaultGolden = "lcg48_s985456376_m0_p0_t1.txt"

//go:embed golden/*.txt
var golden embed.FS

var ErrReferenceExhausted = errors.New("reference stream exhausted")

// Source opens a fresh copy of a reference stream; each validation category reads it from the start.
type Source func() (io.ReadCloser, error)

// FileSource reads a reference stream from disk.
func FileSource(path string) Source {
	return func() (io.ReadCloser, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open reference %s: %w", path, err)
		}
		return f, nil
	}
}

// GoldenSource reads one of the golden streams shipped with the package.
func GoldenSource(name string) Source {
	return func() (io.ReadCloser, error) {
		f, err := golden.Open("golden/" + name)
		if err != nil {
			return nil, fmt.Errorf("open golden %s: %w", name, err)
		}
		return f, nil
	}
}

// Reference yields expected raw integers strictly in order from a whitespace-separated
// decimal text stream.
type Reference struct {
	sc    *bufio.Scanner
	read  int
	err   error
	ended bool
}

func NewReference(r io.Reader) *Reference {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &Reference{sc: sc}
}

// Next returns the next expected value. ok is false once the stream ends or fails to parse;
// Err tells the two apart.
func (r *Reference) Next() (v int64, ok bool) {
	if r.ended {
		return 0, false
	}
	if !r.sc.Scan() {
		r.ended = true
		if err := r.sc.Err(); err != nil {
			r.err = fmt.Errorf("read reference: %w", err)
		}
		return 0, false
	}
	v, err := strconv.ParseInt(r.sc.Text(), 10, 64)
	if err != nil {
		r.ended = true
		r.err = fmt.Errorf("parse reference value %d (%q): %w", r.read+1, r.sc.Text(), err)
		return 0, false
	}
	r.read++
	return v, true
}

// Read reports how many values have been consumed.
func (r *Reference) Read() int { return r.read }

func (r *Reference) Err() error { return r.err }

// CompareInt consumes the next reference value and matches it exactly.
func (r *Reference) CompareInt(got int32) bool {
	ref, ok := r.Next()
	return ok && MatchInt(ref, got)
}

// CompareFloat consumes the next reference value and matches it within the float tolerance.
func (r *Reference) CompareFloat(got float32) bool {
	ref, ok := r.Next()
	return ok && MatchFloat(ref, got)
}

// CompareDouble consumes the next reference value and matches it within the double tolerance.
func (r *Reference) CompareDouble(got float64) bool {
	ref, ok := r.Next()
	return ok && MatchDouble(ref, got)
}

// Capture writes n integer outputs of g as a reference stream, one per line.
func Capture(w io.Writer, g engine.Generator, n int) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 16)
	for i := 0; i < n; i++ {
		buf = strconv.AppendInt(buf[:0], int64(g.NextInt()), 10)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("write reference value %d: %w", i, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush reference: %w", err)
	}
	return nil
}
