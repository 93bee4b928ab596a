package blake2many

import (
	"encoding"
	"encoding/binary"
	"errors"
	"hash"

	"github.com/codahale/blake2many/internal/compress"
	"github.com/codahale/blake2many/internal/mem"
)

// ErrInvalidState is returned when unmarshaling a malformed Hasher state.
var ErrInvalidState = errors.New("blake2many: invalid hasher state")

// A Hasher is an incremental BLAKE2b computation. It implements hash.Hash.
//
// The last block written is always held back, so that Sum can compress it with the last-block flag set.
type Hasher struct {
	job   compress.Job
	init  [8]uint64
	block [BlockSize]byte
	n     int
	size  int
}

// New returns a new Hasher using the given parameters.
func New(p *Params) (*Hasher, error) {
	job, err := p.job()
	if err != nil {
		return nil, err
	}
	return &Hasher{job: job, init: job.CV, size: p.digestSize()}, nil //nolint:exhaustruct // empty buffer
}

// New512 returns a new Hasher computing BLAKE2b-512.
func New512() *Hasher {
	h, _ := New(nil)
	return h
}

// New256 returns a new Hasher computing BLAKE2b-256.
func New256() *Hasher {
	h, _ := New(&Params{Size: Size256})
	return h
}

// Write absorbs p. It never returns an error.
func (h *Hasher) Write(p []byte) (int, error) {
	UpdateMany([]*Hasher{h}, [][]byte{p}, 1)
	return len(p), nil
}

// Sum appends the current digest to b without changing the underlying state.
func (h *Hasher) Sum(b []byte) []byte {
	job := h.job
	finish(&job, h.block[:h.n])
	return mem.AppendWords(b, job.CV[:], h.size)
}

// Reset resets the Hasher to its initial state, retaining its parameters.
func (h *Hasher) Reset() {
	h.job = compress.Job{CV: h.init, LastNode: h.job.LastNode}
	h.n = 0
}

// Size returns the digest size in bytes.
func (h *Hasher) Size() int {
	return h.size
}

// BlockSize returns the BLAKE2b block size.
func (h *Hasher) BlockSize() int {
	return BlockSize
}

// Clone returns an independent copy of the Hasher.
func (h *Hasher) Clone() *Hasher {
	c := *h
	c.job.Input = nil
	return &c
}

const (
	magic         = "b2m\x01"
	marshaledSize = len(magic) + 3 + 2*8*8 + 2*8 + BlockSize
)

// AppendBinary appends the Hasher's state to b.
func (h *Hasher) AppendBinary(b []byte) ([]byte, error) {
	var lastNode byte
	if h.job.LastNode {
		lastNode = 1
	}

	b = append(b, magic...)
	b = append(b, byte(h.size), lastNode, byte(h.n))
	for _, w := range h.init {
		b = binary.LittleEndian.AppendUint64(b, w)
	}
	for _, w := range h.job.CV {
		b = binary.LittleEndian.AppendUint64(b, w)
	}
	b = binary.LittleEndian.AppendUint64(b, h.job.Count.Lo)
	b = binary.LittleEndian.AppendUint64(b, h.job.Count.Hi)
	return append(b, h.block[:]...), nil
}

// MarshalBinary returns the Hasher's state.
func (h *Hasher) MarshalBinary() ([]byte, error) {
	return h.AppendBinary(make([]byte, 0, marshaledSize))
}

// UnmarshalBinary restores a state produced by MarshalBinary.
func (h *Hasher) UnmarshalBinary(data []byte) error {
	if len(data) != marshaledSize || string(data[:len(magic)]) != magic {
		return ErrInvalidState
	}

	data = data[len(magic):]
	size, lastNode, n := int(data[0]), data[1], int(data[2])
	if size < 1 || size > Size || lastNode > 1 || n > BlockSize {
		return ErrInvalidState
	}
	data = data[3:]

	var job compress.Job
	mem.LoadWords(h.init[:], data)
	mem.LoadWords(job.CV[:], data[8*8:])
	data = data[2*8*8:]
	job.Count.Lo = binary.LittleEndian.Uint64(data)
	job.Count.Hi = binary.LittleEndian.Uint64(data[8:])
	job.LastNode = lastNode == 1
	copy(h.block[:], data[2*8:])

	h.job, h.size, h.n = job, size, n
	return nil
}

var (
	_ hash.Hash                  = (*Hasher)(nil)
	_ encoding.BinaryAppender    = (*Hasher)(nil)
	_ encoding.BinaryMarshaler   = (*Hasher)(nil)
	_ encoding.BinaryUnmarshaler = (*Hasher)(nil)
)
