// Package derive maps messages onto ristretto255 scalars and elements by hashing them with BLAKE2b-512 and
// wide-reducing the 64-byte digests.
//
// The messages of a call are hashed together in batches, so deriving many values at once costs little more than
// deriving one. The domain string is used as the BLAKE2b personalization and so must be at most 16 bytes.
package derive

import (
	"github.com/codahale/blake2many"
	"github.com/gtank/ristretto255"
)

// Scalars returns one uniformly distributed scalar per message.
func Scalars(domain string, msgs ...[]byte) []*ristretto255.Scalar {
	digests := sum(domain, msgs)
	scalars := make([]*ristretto255.Scalar, len(digests))
	for i, d := range digests {
		s, err := ristretto255.NewScalar().SetUniformBytes(d)
		if err != nil {
			panic(err)
		}
		scalars[i] = s
	}
	return scalars
}

// Elements returns one uniformly distributed group element per message.
func Elements(domain string, msgs ...[]byte) []*ristretto255.Element {
	digests := sum(domain, msgs)
	elements := make([]*ristretto255.Element, len(digests))
	for i, d := range digests {
		e, err := ristretto255.NewIdentityElement().SetUniformBytes(d)
		if err != nil {
			panic(err)
		}
		elements[i] = e
	}
	return elements
}

func sum(domain string, msgs [][]byte) [][]byte {
	params := &blake2many.Params{Personal: []byte(domain)}
	jobs := make([]*blake2many.HashJob, len(msgs))
	for i, msg := range msgs {
		jobs[i] = &blake2many.HashJob{Params: params, Input: msg}
	}

	if err := blake2many.HashMany(jobs, 0); err != nil {
		panic(err)
	}

	digests := make([][]byte, len(jobs))
	for i, job := range jobs {
		digests[i] = job.Sum
	}
	return digests
}
