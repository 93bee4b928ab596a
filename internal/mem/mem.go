package mem

import (
	"crypto/subtle"
	"encoding/binary"
	"slices"
)

// XOR XORs a and b into dst. Uses subtle.XORBytes for slices larger than
// 16 bytes (which benefits from SIMD) and a scalar loop for small slices.
func XOR(dst, a, b []byte) {
	if len(dst) > 16 {
		subtle.XORBytes(dst, a, b)
	} else {
		for i := range dst {
			dst[i] = a[i] ^ b[i]
		}
	}
}

// SliceForAppend takes a slice and a requested number of bytes. It returns a
// slice with the contents of the given slice followed by that many bytes and a
// second slice that aliases into it and contains only the extra bytes. If the
// original slice has sufficient capacity, then no allocation is performed.
func SliceForAppend(in []byte, n int) (head, tail []byte) {
	head = slices.Grow(in, n)
	head = head[:len(in)+n]
	tail = head[len(in):]
	return head, tail
}

// AppendWords appends the first n bytes of the little-endian encoding of words to dst.
func AppendWords(dst []byte, words []uint64, n int) []byte {
	var buf [8]byte
	ret, out := SliceForAppend(dst, n)
	for _, w := range words {
		if len(out) == 0 {
			break
		}
		binary.LittleEndian.PutUint64(buf[:], w)
		out = out[copy(out, buf[:]):]
	}
	return ret
}

// LoadWords decodes len(words) little-endian words from b.
func LoadWords(words []uint64, b []byte) {
	for i := range words {
		words[i] = binary.LittleEndian.Uint64(b[i*8:])
	}
}
