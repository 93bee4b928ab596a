package compress

import "math/bits"

// A Counter is the 128-bit number of bytes absorbed by a job.
type Counter struct {
	Lo, Hi uint64
}

// Add returns c+delta. Hi is incremented exactly when Lo overflows.
func (c Counter) Add(delta uint64) Counter {
	lo, carry := bits.Add64(c.Lo, delta, 0)
	return Counter{Lo: lo, Hi: c.Hi + carry}
}

// addCounts adds delta to the 128-bit counters held in the lo and hi lanes. Each lane carries independently and
// without branching. A carry-out agrees with checking whether lo wrapped to exactly zero whenever the earlier counts
// are block-aligned, which every non-final call guarantees.
func addCounts(lo, hi, delta *vec, n int) {
	for j := range n {
		c := Counter{Lo: lo[j], Hi: hi[j]}.Add(delta[j])
		lo[j], hi[j] = c.Lo, c.Hi
	}
}
