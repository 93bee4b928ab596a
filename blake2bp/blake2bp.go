// Package blake2bp implements BLAKE2bp, the 4-way parallel variant of BLAKE2b-512 described in the BLAKE2 paper,
// section 2.9.
//
// The message is split into 128-byte blocks which are dealt out to four leaves in turn: leaf i hashes blocks i, i+4,
// i+8, and so on. The four leaf digests are then hashed by a root node. The leaves run in lockstep as one batch,
// reading their blocks directly out of the interleaved message.
package blake2bp

import (
	"hash"

	"github.com/codahale/blake2many"
	"github.com/codahale/blake2many/internal/compress"
	"github.com/codahale/blake2many/internal/mem"
)

const (
	// Size is the size of a BLAKE2bp digest in bytes.
	Size = blake2many.Size

	// BlockSize is the size of one stripe of leaf blocks in bytes.
	BlockSize = leaves * compress.BlockSize

	leaves = 4
)

// Hasher is an incremental BLAKE2bp instance that implements hash.Hash.
type Hasher struct {
	jobs [leaves]compress.Job // leaf states
	buf  []byte               // stripes not yet compressed
}

// New returns a new Hasher.
func New() *Hasher {
	h := &Hasher{} //nolint:exhaustruct // initialized via Reset
	h.Reset()
	return h
}

// Sum returns the BLAKE2bp digest of data.
func Sum(data []byte) [Size]byte {
	var (
		h   = New()
		sum [Size]byte
	)
	h.finalize(sum[:0], h.absorb(data))
	return sum
}

// Write absorbs message bytes. It never returns an error.
func (h *Hasher) Write(p []byte) (int, error) {
	h.buf = append(h.buf, p...)
	remaining := copy(h.buf, h.absorb(h.buf))
	h.buf = h.buf[:remaining]
	return len(p), nil
}

// Sum appends the current digest to b without changing the underlying state.
func (h *Hasher) Sum(b []byte) []byte {
	clone := *h
	return clone.finalize(b, h.buf)
}

// Reset resets the Hasher to its initial state.
func (h *Hasher) Reset() {
	for i := range h.jobs {
		h.jobs[i] = compress.NewJob(leafParams(i), i == leaves-1)
	}
	h.buf = h.buf[:0]
}

// Size returns the digest size in bytes.
func (h *Hasher) Size() int { return Size }

// BlockSize returns the stripe size.
func (h *Hasher) BlockSize() int { return BlockSize }

// absorb compresses every stripe of data after which each leaf is known to have more input, and returns the rest.
func (h *Hasher) absorb(data []byte) []byte {
	// The last leaf has input beyond k stripes iff len(data) > k*BlockSize + 3*compress.BlockSize.
	k := (len(data) - (leaves-1)*compress.BlockSize - 1) / BlockSize
	if k <= 0 {
		return data
	}

	var batch [leaves]*compress.Job
	for i := range h.jobs {
		start := i * compress.BlockSize
		h.jobs[i].Input = data[start : start+(k-1)*BlockSize+compress.BlockSize]
		batch[i] = &h.jobs[i]
	}
	compress.Compress(batch[:], false, compress.Padded(BlockSize))

	return data[k*BlockSize:]
}

// finalize hashes the leaves' remaining input out of rest, then the root node, and appends the digest to b.
func (h *Hasher) finalize(b, rest []byte) []byte {
	var (
		batch [leaves]*compress.Job
		tails [leaves][]byte
	)
	for i := range h.jobs {
		for off := i * compress.BlockSize; off < len(rest); off += BlockSize {
			tails[i] = append(tails[i], rest[off:min(off+compress.BlockSize, len(rest))]...)
		}
		h.jobs[i].Input = tails[i]
		batch[i] = &h.jobs[i]
	}
	compress.CompressMany(batch[:], leaves, true, compress.Serial)

	cvs := make([]byte, 0, leaves*Size)
	for i := range h.jobs {
		cvs = mem.AppendWords(cvs, h.jobs[i].CV[:], Size)
	}

	sum, err := blake2many.Sum(rootParams, cvs)
	if err != nil {
		panic(err)
	}
	return append(b, sum...)
}

// leafParams returns the parameter block of leaf i.
func leafParams(i int) *[64]byte {
	// digest length, key length, fanout, depth, leaf length (4 bytes), node offset (8 bytes), node depth, inner length
	return &[64]byte{0: Size, 2: leaves, 3: 2, 8: byte(i), 17: Size} //nolint:gosec // i < leaves
}

//nolint:gochecknoglobals // constant
var rootParams = &blake2many.Params{
	Size: Size,
	Tree: &blake2many.Tree{FanOut: leaves, MaxDepth: 2, NodeDepth: 1, InnerSize: Size, LastNode: true},
}

var _ hash.Hash = (*Hasher)(nil)
