package compress

import "github.com/codahale/blake2many/internal/mem"

// A vec holds one word position across every job of a batch. Only the first n lanes of a batch of width n are used.
type vec [MaxDegree]uint64

// splat returns a vec with x in each of its first n lanes.
func splat(x uint64, n int) vec {
	var v vec
	for j := range n {
		v[j] = x
	}
	return v
}

// transpose converts n rows of len(dst) words into lane form, so that dst[i][j] is word i of row j.
func transpose(dst []vec, src *[MaxDegree][]uint64, n int) {
	for j := range n {
		row := src[j][:len(dst)]
		for i, w := range row {
			dst[i][j] = w
		}
	}
}

// untranspose is the inverse of transpose, so that word i of row j is src[i][j].
func untranspose(dst *[MaxDegree][]uint64, src []vec, n int) {
	for j := range n {
		row := dst[j][:len(src)]
		for i := range row {
			row[i] = src[i][j]
		}
	}
}

// transposeBlocks decodes n 128-byte message blocks as little-endian words and loads them into lane form.
func transposeBlocks(m *[16]vec, blocks *[MaxDegree][]byte, n int) {
	var (
		words [MaxDegree][16]uint64
		rows  [MaxDegree][]uint64
	)
	for j := range n {
		mem.LoadWords(words[j][:], blocks[j][:BlockSize])
		rows[j] = words[j][:]
	}
	transpose(m[:], &rows, n)
}
