// Package blake2many implements the BLAKE2b hash algorithm defined by RFC 7693, with support for hashing many
// independent messages in lockstep.
//
// HashMany and UpdateMany group their inputs into batches of up to eight jobs which share one pass of the BLAKE2b
// compression function; Hasher is the ordinary incremental form. All of them produce standard BLAKE2b digests,
// independent of how the inputs are batched.
//
// Keyed hashing is not supported.
package blake2many

import (
	"github.com/codahale/blake2many/internal/compress"
	"github.com/codahale/blake2many/internal/mem"
)

const (
	// BlockSize is the BLAKE2b block size in bytes.
	BlockSize = compress.BlockSize

	// Size is the size of a BLAKE2b-512 digest in bytes, and the largest supported digest size.
	Size = compress.MaxSize

	// Size256 is the size of a BLAKE2b-256 digest in bytes.
	Size256 = 32
)

// Sum512 returns the BLAKE2b-512 digest of data.
func Sum512(data []byte) [Size]byte {
	var sum [Size]byte
	job, _ := (*Params)(nil).job()
	finish(&job, data)
	mem.AppendWords(sum[:0], job.CV[:], Size)
	return sum
}

// Sum256 returns the BLAKE2b-256 digest of data.
func Sum256(data []byte) [Size256]byte {
	var sum [Size256]byte
	job, _ := (&Params{Size: Size256}).job()
	finish(&job, data)
	mem.AppendWords(sum[:0], job.CV[:], Size256)
	return sum
}

// Sum returns the BLAKE2b digest of data using the given parameters.
func Sum(p *Params, data []byte) ([]byte, error) {
	job, err := p.job()
	if err != nil {
		return nil, err
	}
	finish(&job, data)
	return mem.AppendWords(nil, job.CV[:], p.digestSize()), nil
}

// DefaultDegree returns the batch width HashMany and UpdateMany use when passed a degree of zero.
func DefaultDegree() int {
	return compress.DefaultDegree()
}

// finish absorbs all of data into job and finalizes it.
func finish(job *compress.Job, data []byte) {
	job.Input = data
	compress.Compress([]*compress.Job{job}, true, compress.Serial)
}

// resolveDegree maps a degree of zero to DefaultDegree.
func resolveDegree(degree int) int {
	if degree == 0 {
		return compress.DefaultDegree()
	}
	return degree
}
