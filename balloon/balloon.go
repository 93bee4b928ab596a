// Package balloon implements [balloon hashing], a memory-hard algorithm suitable for use with low-entropy secrets,
// like passwords, using BLAKE2b-512 as its compression function.
//
// The parallel instances of the algorithm run in lockstep: every step hashes one equal-length message per instance,
// and those messages are compressed together as one batch.
//
// [balloon hashing]: https://eprint.iacr.org/2016/027.pdf
package balloon

import (
	"encoding/binary"

	"github.com/codahale/blake2many"
	"github.com/codahale/blake2many/internal/mem"
)

// Size is the size of a balloon hash in bytes.
const Size = blake2many.Size

const delta = 3

// Hash returns a Size-byte digest of the password using the given personalization string (at most 16 bytes), random
// salt, cost parameters, and parallelism.
//
// Hash panics if personal is too long, or if spaceCost or parallelism are zero.
func Hash(personal string, password, salt []byte, spaceCost, timeCost, parallelism uint32) []byte {
	if spaceCost == 0 || parallelism == 0 {
		panic("balloon: space cost and parallelism must be positive")
	}

	l := newLanes(personal, int(parallelism))
	bufs := make([][][Size]byte, parallelism)
	for p := range bufs {
		bufs[p] = make([][Size]byte, spaceCost)
	}

	// Step 1. Expand input into the buffer.
	var params [4 * 4]byte
	binary.LittleEndian.PutUint32(params[0:], spaceCost)
	binary.LittleEndian.PutUint32(params[4:], timeCost)
	binary.LittleEndian.PutUint32(params[8:], parallelism)
	l.hash(func(p int, msg []byte) []byte {
		binary.LittleEndian.PutUint32(params[12:], uint32(p)) //nolint:gosec // p < parallelism
		msg = append(msg, params[:]...)
		msg = append(msg, password...)
		return append(msg, salt...)
	}, func(p int) []byte { return bufs[p][0][:] })
	for m := 1; m < int(spaceCost); m++ {
		l.hash(func(p int, msg []byte) []byte {
			return append(msg, bufs[p][m-1][:]...)
		}, func(p int) []byte { return bufs[p][m][:] })
	}

	// Step 2. Mix buffer contents.
	others := make([]uint32, parallelism)
	for t := range timeCost {
		for m := range spaceCost {
			// Step 2a. Hash last and current blocks.
			prev := previous(m, spaceCost)
			l.hash(func(p int, msg []byte) []byte {
				msg = append(msg, bufs[p][prev][:]...)
				return append(msg, bufs[p][m][:]...)
			}, func(p int) []byte { return bufs[p][m][:] })

			// Step 2b. Hash in pseudorandomly chosen blocks.
			for i := range uint32(delta) {
				l.hash(func(_ int, msg []byte) []byte {
					msg = append(msg, salt...)
					msg = binary.LittleEndian.AppendUint32(msg, t)
					msg = binary.LittleEndian.AppendUint32(msg, m)
					return binary.LittleEndian.AppendUint32(msg, i)
				}, nil)
				for p, job := range l.jobs {
					others[p] = uint32(binary.LittleEndian.Uint64(job.Sum) % uint64(spaceCost)) //nolint:gosec // < spaceCost
				}
				l.hash(func(p int, msg []byte) []byte {
					msg = append(msg, bufs[p][m][:]...)
					return append(msg, bufs[p][others[p]][:]...)
				}, func(p int) []byte { return bufs[p][m][:] })
			}
		}
	}

	// Step 3. Extract output from the buffer, XORing the final blocks of all instances together.
	out := bufs[0][spaceCost-1]
	for _, buf := range bufs[1:] {
		mem.XOR(out[:], out[:], buf[spaceCost-1][:])
	}
	return out[:]
}

// previous returns the index of the block before m in a ring of spaceCost blocks.
func previous(m, spaceCost uint32) uint32 {
	if m == 0 {
		return spaceCost - 1
	}
	return m - 1
}

// lanes runs one hash per instance per step, all in a single batch.
type lanes struct {
	jobs []*blake2many.HashJob
	msgs [][]byte
	cnt  uint64
}

func newLanes(personal string, n int) *lanes {
	params := &blake2many.Params{Personal: []byte(personal)}
	if err := params.Validate(); err != nil {
		panic(err)
	}

	l := &lanes{jobs: make([]*blake2many.HashJob, n), msgs: make([][]byte, n)}
	for p := range l.jobs {
		l.jobs[p] = &blake2many.HashJob{Params: params}
	}
	return l
}

// hash increments the counter, then for each instance p hashes the counter followed by whatever msg appends, and
// copies the digest into out(p) if out is non-nil. The messages of one step must all be the same length.
func (l *lanes) hash(msg func(p int, msg []byte) []byte, out func(p int) []byte) {
	l.cnt++
	for p, job := range l.jobs {
		l.msgs[p] = msg(p, binary.LittleEndian.AppendUint64(l.msgs[p][:0], l.cnt))
		job.Input = l.msgs[p]
	}

	if err := blake2many.HashMany(l.jobs, 0); err != nil {
		panic(err)
	}

	if out != nil {
		for p, job := range l.jobs {
			copy(out(p), job.Sum)
		}
	}
}
