package compress

import "math/bits"

// g is the BLAKE2b mixing function, applied to the first n lanes of its arguments.
func g(a, b, c, d, x, y *vec, n int) {
	for j := range n {
		a[j] += b[j] + x[j]
		d[j] = bits.RotateLeft64(d[j]^a[j], -32)
		c[j] += d[j]
		b[j] = bits.RotateLeft64(b[j]^c[j], -24)
		a[j] += b[j] + y[j]
		d[j] = bits.RotateLeft64(d[j]^a[j], -16)
		c[j] += d[j]
		b[j] = bits.RotateLeft64(b[j]^c[j], -63)
	}
}

// rounds applies the twelve BLAKE2b rounds to the working vectors v using the message lanes m.
func rounds(v, m *[16]vec, n int) {
	for r := range sigma {
		s := &sigma[r]

		// columns
		g(&v[0], &v[4], &v[8], &v[12], &m[s[0]], &m[s[1]], n)
		g(&v[1], &v[5], &v[9], &v[13], &m[s[2]], &m[s[3]], n)
		g(&v[2], &v[6], &v[10], &v[14], &m[s[4]], &m[s[5]], n)
		g(&v[3], &v[7], &v[11], &v[15], &m[s[6]], &m[s[7]], n)

		// diagonals
		g(&v[0], &v[5], &v[10], &v[15], &m[s[8]], &m[s[9]], n)
		g(&v[1], &v[6], &v[11], &v[12], &m[s[10]], &m[s[11]], n)
		g(&v[2], &v[7], &v[8], &v[13], &m[s[12]], &m[s[13]], n)
		g(&v[3], &v[4], &v[9], &v[14], &m[s[14]], &m[s[15]], n)
	}
}

// compressLanes compresses one message block into each of the first n chaining values held in h. The counter lanes
// must already include the bytes of m.
func compressLanes(h *[8]vec, m *[16]vec, lo, hi, f0, f1 *vec, n int) {
	var v [16]vec
	copy(v[:8], h[:])
	for i := range IV {
		v[8+i] = splat(IV[i], n)
	}
	for j := range n {
		v[12][j] ^= lo[j]
		v[13][j] ^= hi[j]
		v[14][j] ^= f0[j]
		v[15][j] ^= f1[j]
	}

	rounds(&v, m, n)

	for i := range h {
		for j := range n {
			h[i][j] ^= v[i][j] ^ v[i+8][j]
		}
	}
}
