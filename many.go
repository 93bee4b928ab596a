package blake2many

import (
	"fmt"
	"slices"

	"github.com/codahale/blake2many/internal/compress"
	"github.com/codahale/blake2many/internal/mem"
)

// A HashJob is one message for HashMany.
type HashJob struct {
	// Params are the job's parameters. Nil means BLAKE2b-512.
	Params *Params

	// Input is the message.
	Input []byte

	// Sum receives the digest. Its storage is reused if it has sufficient capacity.
	Sum []byte
}

// HashMany computes the digest of every job, hashing them in batches of degree jobs at a time. A degree of zero
// selects DefaultDegree; otherwise it must be 1, 2, 4, or 8.
//
// If any job has invalid parameters, HashMany returns an error before hashing anything.
func HashMany(jobs []*HashJob, degree int) error {
	degree = resolveDegree(degree)

	work := make([]compress.Job, len(jobs))
	ptrs := make([]*compress.Job, len(jobs))
	for i, job := range jobs {
		cj, err := job.Params.job()
		if err != nil {
			return fmt.Errorf("blake2many: job %d: %w", i, err)
		}
		cj.Input = job.Input
		work[i] = cj
		ptrs[i] = &work[i]
	}

	compress.CompressMany(ptrs, degree, true, compress.Serial)

	for i, job := range jobs {
		job.Sum = mem.AppendWords(job.Sum[:0], work[i].CV[:], job.Params.digestSize())
	}
	return nil
}

// UpdateMany writes inputs[i] to hashers[i] for every i, compressing in batches of degree hashers at a time. A degree
// of zero selects DefaultDegree; otherwise it must be 1, 2, 4, or 8. The hashers must be distinct.
//
// The result is the same as calling Write on each hasher in turn.
func UpdateMany(hashers []*Hasher, inputs [][]byte, degree int) {
	if len(hashers) != len(inputs) {
		panic("blake2many: mismatched hashers and inputs")
	}
	degree = resolveDegree(degree)
	rest := slices.Clone(inputs)

	// Top up buffered blocks. A full buffer is only compressed once more input is known to follow it, since otherwise
	// it might be the last block.
	var buffered []*compress.Job
	for i, h := range hashers {
		if h.n == 0 || len(rest[i]) == 0 {
			continue
		}

		m := copy(h.block[h.n:], rest[i])
		h.n += m
		rest[i] = rest[i][m:]
		if len(rest[i]) > 0 {
			h.job.Input = h.block[:]
			h.n = 0
			buffered = append(buffered, &h.job)
		}
	}
	compress.CompressMany(buffered, degree, false, compress.Serial)

	// Compress all but the last block of each remaining input in place.
	var bulk []*compress.Job
	for i, h := range hashers {
		if len(rest[i]) <= BlockSize {
			continue
		}

		n := (len(rest[i]) - 1) / BlockSize * BlockSize
		h.job.Input = rest[i][:n]
		rest[i] = rest[i][n:]
		bulk = append(bulk, &h.job)
	}
	compress.CompressMany(bulk, degree, false, compress.Serial)

	for i, h := range hashers {
		h.n += copy(h.block[h.n:], rest[i])
		h.job.Input = nil
	}
}
