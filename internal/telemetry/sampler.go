package telemetry

type sampler struct {
	validation Validation
	throughput Throughput
}

func newSampler(v Validation, t Throughput) sampler {
	return sampler{validation: v, throughput: t}
}

// snapshot holds cumulative counters (monotonic).
type snapshot struct {
	compared   uint64
	mismatched uint64
	exhausted  uint64
	errors     uint64
	generated  uint64
}

func (s sampler) snapshot() snapshot {
	var out snapshot
	if s.validation != nil {
		compared, mismatched, exhausted, errs := s.validation.Metrics()
		out.compared = uint64(max(compared, 0))
		out.mismatched = uint64(max(mismatched, 0))
		out.exhausted = uint64(max(exhausted, 0))
		out.errors = uint64(max(errs, 0))
	}
	if s.throughput != nil {
		out.generated = uint64(max(s.throughput.Generated(), 0))
	}
	return out
}

// deltaSnapshot converts cumulative snapshots to per-interval deltas.
// If counters reset (cur < prev), it treats cur as the delta.
func deltaSnapshot(prev, cur snapshot) snapshot {
	return snapshot{
		compared:   delta(prev.compared, cur.compared),
		mismatched: delta(prev.mismatched, cur.mismatched),
		exhausted:  delta(prev.exhausted, cur.exhausted),
		errors:     delta(prev.errors, cur.errors),
		generated:  delta(prev.generated, cur.generated),
	}
}

func delta(prev, cur uint64) uint64 {
	if cur >= prev {
		return cur - prev
	}
	return cur
}
