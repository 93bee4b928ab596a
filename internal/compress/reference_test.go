package compress

import (
	"encoding/binary"
	"encoding/hex"
	"math/bits"
)

// referenceCompress is the compression function F of RFC 7693, section 3.2, for a single block.
func referenceCompress(h *[8]uint64, block []byte, t Counter, last, lastNode bool) {
	var v, m [16]uint64
	copy(v[:8], h[:])
	copy(v[8:], IV[:])
	v[12] ^= t.Lo
	v[13] ^= t.Hi
	if last {
		v[14] = ^v[14]
	}
	if lastNode {
		v[15] = ^v[15]
	}
	for i := range m {
		m[i] = binary.LittleEndian.Uint64(block[i*8:])
	}

	mix := func(a, b, c, d int, x, y uint64) {
		v[a] = v[a] + v[b] + x
		v[d] = bits.RotateLeft64(v[d]^v[a], -32)
		v[c] = v[c] + v[d]
		v[b] = bits.RotateLeft64(v[b]^v[c], -24)
		v[a] = v[a] + v[b] + y
		v[d] = bits.RotateLeft64(v[d]^v[a], -16)
		v[c] = v[c] + v[d]
		v[b] = bits.RotateLeft64(v[b]^v[c], -63)
	}

	for i := range 12 {
		s := sigma[i%10]
		mix(0, 4, 8, 12, m[s[0]], m[s[1]])
		mix(1, 5, 9, 13, m[s[2]], m[s[3]])
		mix(2, 6, 10, 14, m[s[4]], m[s[5]])
		mix(3, 7, 11, 15, m[s[6]], m[s[7]])
		mix(0, 5, 10, 15, m[s[8]], m[s[9]])
		mix(1, 6, 11, 12, m[s[10]], m[s[11]])
		mix(2, 7, 8, 13, m[s[12]], m[s[13]])
		mix(3, 4, 9, 14, m[s[14]], m[s[15]])
	}

	for i := range h {
		h[i] ^= v[i] ^ v[i+8]
	}
}

// referenceHash absorbs all of msg into cv one block at a time, starting from the counter t, and finalizes it.
func referenceHash(cv [8]uint64, msg []byte, t Counter, lastNode bool) ([8]uint64, Counter) {
	for len(msg) > BlockSize {
		t = t.Add(BlockSize)
		referenceCompress(&cv, msg[:BlockSize], t, false, false)
		msg = msg[BlockSize:]
	}

	var block [BlockSize]byte
	copy(block[:], msg)
	t = t.Add(uint64(len(msg)))
	referenceCompress(&cv, block[:], t, true, lastNode)
	return cv, t
}

// initCV returns the initial chaining value of unkeyed sequential BLAKE2b with the given digest size.
func initCV(size int) [8]uint64 {
	cv := IV
	cv[0] ^= 0x01010000 ^ uint64(size) //nolint:gosec // size <= 64
	return cv
}

// newJob returns an unkeyed BLAKE2b-512 job for input.
func newJob(input []byte) *Job {
	return &Job{CV: initCV(MaxSize), Input: input} //nolint:exhaustruct // zero counter
}

// digest encodes the first size bytes of cv.
func digest(cv [8]uint64, size int) []byte {
	var b [MaxSize]byte
	for i, w := range cv {
		binary.LittleEndian.PutUint64(b[i*8:], w)
	}
	return b[:size]
}

func digestHex(cv [8]uint64) string {
	return hex.EncodeToString(digest(cv, MaxSize))
}
