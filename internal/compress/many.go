package compress

import "slices"

// degrees are the supported batch widths, widest first.
var degrees = [...]int{MaxDegree, 4, 2, 1} //nolint:gochecknoglobals // constant

// CompressMany runs every job through Compress until all of them are drained, using batches of at most degree jobs.
//
// Jobs are taken in order. After each batch, drained jobs are evicted and their slots refilled, so that jobs of unequal
// length share batches with as little waste as possible. Once too few jobs remain to fill a batch, the rest cascade
// through the narrower widths. The results do not depend on degree or on the order of jobs.
func CompressMany(jobs []*Job, degree int, finalize bool, stride Stride) {
	checkDegree(degree)

	var buf [MaxDegree]*Job
	batch := buf[:0]
	queue := jobs
	for _, d := range degrees {
		if d > degree {
			continue
		}

		for {
			for len(batch) < d && len(queue) > 0 {
				batch = append(batch, queue[0])
				queue = queue[1:]
			}
			if len(batch) < d {
				break
			}

			Compress(batch[:d], finalize, stride)
			batch = slices.DeleteFunc(batch, func(job *Job) bool {
				return drained(job, finalize)
			})
		}
	}
}

// drained returns true if the job needs no more compression in this pass. When finalizing, an empty job still needs
// its (empty) final block.
func drained(job *Job, finalize bool) bool {
	if finalize {
		return job.finalized
	}
	return len(job.Input) == 0
}
