// Package compress implements a batched BLAKE2b block-compression engine as specified in RFC 7693.
//
// Compress advances up to MaxDegree independent BLAKE2b computations (Jobs) in lockstep. Every job in a batch goes
// through the same sequence of additions, rotations, and XORs; the jobs differ only in the data fed into them. The
// chaining values, counters, and message blocks of a batch are transposed into lanes, one vector per word position,
// so that a single pass of the round function mixes all of them at once.
//
// A batch of width 1 is the ordinary scalar BLAKE2b compression loop and produces identical results to any wider
// batch.
package compress

import "github.com/codahale/blake2many/internal/mem"

const (
	// BlockSize is the BLAKE2b block size in bytes.
	BlockSize = 128

	// MaxSize is the largest BLAKE2b digest size in bytes.
	MaxSize = 64

	// MaxDegree is the widest batch Compress accepts.
	MaxDegree = 8
)

// A Job is a single in-flight BLAKE2b computation.
type Job struct {
	// CV is the chaining value. It is advanced in place by each call to Compress.
	CV [8]uint64

	// Input is the data not yet absorbed. Compress trims the bytes it consumes.
	Input []byte

	// Count is the total number of bytes absorbed into CV so far.
	Count Counter

	// LastNode marks the job as the last node of a hash tree. It only affects the final block.
	LastNode bool

	finalized bool
}

// NewJob returns a job with a zero counter whose chaining value is the IV XORed with the 64-byte parameter block of
// RFC 7693, section 2.5.
func NewJob(params *[64]byte, lastNode bool) Job {
	job := Job{CV: IV, LastNode: lastNode} //nolint:exhaustruct // empty input
	var words [8]uint64
	mem.LoadWords(words[:], params[:])
	for i, w := range words {
		job.CV[i] ^= w
	}
	return job
}

// Finalized returns true once a block with the last-block flag has been compressed into the job's CV. The CV is then
// the digest.
func (j *Job) Finalized() bool {
	return j.finalized
}

// A Stride is the distance in bytes between the starting offsets of consecutive blocks of a single job.
//
// The zero value is Serial.
type Stride int

// Serial is the ordinary stride, where each job's blocks are contiguous.
const Serial Stride = 0

// Padded returns a stride of n bytes, where each job reads one block out of every n bytes of its input. This is used
// by fan-out schemes which interleave the blocks of several jobs in one buffer. The interleaving is only sound when
// every job's input ends within the final stride; the caller owns that alignment.
//
// Padded panics if n is not a positive multiple of BlockSize.
func Padded(n int) Stride {
	if n <= 0 || n%BlockSize != 0 {
		panic("blake2many: stride must be a positive multiple of the block size")
	}
	return Stride(n)
}

// Bytes returns the stride in bytes.
func (s Stride) Bytes() int {
	switch {
	case s == Serial:
		return BlockSize
	case s < 0 || s%BlockSize != 0:
		panic("blake2many: stride must be a positive multiple of the block size")
	default:
		return int(s)
	}
}

// checkDegree panics unless n is a supported batch width.
func checkDegree(n int) {
	switch n {
	case 1, 2, 4, MaxDegree:
	default:
		panic("blake2many: batch width must be 1, 2, 4, or 8")
	}
}
