package oracle

import (
	"github.com/google/uuid"
	"log/slog"
	"sync/atomic"
)

type Kind uint8

const (
	KindInt Kind = iota
	KindFloat
	KindDouble
	numKinds
)

var Kinds = [...]Kind{KindInt, KindFloat, KindDouble}

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	}
	return "unknown"
}

type Impl uint8

const (
	ImplScalar Impl = iota
	ImplVector
	// ImplEquivalence compares vector lanes carrying distinct streams against scalar engines.
	ImplEquivalence
	numImpls
)

func (i Impl) String() string {
	switch i {
	case ImplScalar:
		return "scalar"
	case ImplVector:
		return "vector"
	case ImplEquivalence:
		return "equivalence"
	}
	return "unknown"
}

type Category struct {
	Kind Kind
	Impl Impl
}

func (c Category) String() string { return c.Impl.String() + "/" + c.Kind.String() }

type tally struct {
	compared   atomic.Int64
	mismatched atomic.Int64
	exhausted  atomic.Int64
}

// Report accumulates outcomes per category. It is safe to read while a run is in progress.
type Report struct {
	RunID   string
	tallies [numKinds][numImpls]tally
	errors  atomic.Int64
}

func NewReport() *Report {
	return &Report{RunID: uuid.NewString()}
}

func (r *Report) record(c Category, ok bool) {
	t := &r.tallies[c.Kind][c.Impl]
	t.compared.Add(1)
	if !ok {
		t.mismatched.Add(1)
	}
}

// exhaust counts the comparisons a category could not make because the reference ran out.
func (r *Report) exhaust(c Category, missing int64) {
	t := &r.tallies[c.Kind][c.Impl]
	t.exhausted.Add(missing)
}

func (r *Report) fail() { r.errors.Add(1) }

// Snapshot returns the tallies of one category.
func (r *Report) Snapshot(c Category) (compared, mismatched, exhausted int64) {
	t := &r.tallies[c.Kind][c.Impl]
	return t.compared.Load(), t.mismatched.Load(), t.exhausted.Load()
}

// Metrics returns totals over every category.
func (r *Report) Metrics() (compared, mismatched, exhausted, errors int64) {
	for k := range r.tallies {
		for i := range r.tallies[k] {
			t := &r.tallies[k][i]
			compared += t.compared.Load()
			mismatched += t.mismatched.Load()
			exhausted += t.exhausted.Load()
		}
	}
	return compared, mismatched, exhausted, r.errors.Load()
}

// CategoryPassed reports whether c made at least one comparison and none failed.
func (r *Report) CategoryPassed(c Category) bool {
	compared, mismatched, exhausted := r.Snapshot(c)
	return compared > 0 && mismatched == 0 && exhausted == 0
}

// Failed lists the categories that ran and did not pass.
func (r *Report) Failed() []Category {
	var out []Category
	for _, c := range r.Ran() {
		if !r.CategoryPassed(c) {
			out = append(out, c)
		}
	}
	return out
}

// Ran lists the categories that recorded anything.
func (r *Report) Ran() []Category {
	var out []Category
	for i := Impl(0); i < numImpls; i++ {
		for _, k := range Kinds {
			c := Category{Kind: k, Impl: i}
			compared, _, exhausted := r.Snapshot(c)
			if compared > 0 || exhausted > 0 {
				out = append(out, c)
			}
		}
	}
	return out
}

// Passed reports whether at least one output was compared against the reference and every
// category that ran passed without errors. Equivalence alone never certifies a stream.
func (r *Report) Passed() bool {
	return r.referenceCompared() && len(r.Failed()) == 0 && r.errors.Load() == 0
}

func (r *Report) referenceCompared() bool {
	for _, impl := range []Impl{ImplScalar, ImplVector} {
		for _, k := range Kinds {
			if compared, _, _ := r.Snapshot(Category{Kind: k, Impl: impl}); compared > 0 {
				return true
			}
		}
	}
	return false
}

// Log writes one record per category and a final verdict.
func (r *Report) Log(logger *slog.Logger) {
	for _, c := range r.Ran() {
		compared, mismatched, exhausted := r.Snapshot(c)
		status := "PASS"
		if !r.CategoryPassed(c) {
			status = "FAIL"
		}
		logger.Info("validation",
			"run_id", r.RunID,
			"impl", c.Impl.String(),
			"kind", c.Kind.String(),
			"compared", compared,
			"mismatched", mismatched,
			"exhausted", exhausted,
			"status", status,
		)
	}

	if r.Passed() {
		logger.Info("validation passed", "run_id", r.RunID)
		return
	}
	failed := make([]string, 0, len(r.Failed()))
	for _, c := range r.Failed() {
		failed = append(failed, c.String())
	}
	logger.Error("validation failed", "run_id", r.RunID, "categories", failed, "errors", r.errors.Load())
}
