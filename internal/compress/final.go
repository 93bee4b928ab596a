package compress

// finalBlock returns the block of input at offset which ends a batch, along with the number of input bytes it holds
// and whether it is the last block of input. A short block is copied into buf, which must be zeroed, and the rest of buf
// is left as padding.
//
// A full block is only the last block if the input ends within one stride of offset; otherwise the job has more data
// for a later call.
func finalBlock(input []byte, offset int, buf *[BlockSize]byte, stride Stride) (block []byte, length uint64, last bool) {
	rest := input[min(offset, len(input)):]
	if len(rest) >= BlockSize {
		return rest[:BlockSize], BlockSize, len(rest) <= stride.Bytes()
	}

	copy(buf[:], rest)
	return buf[:], uint64(len(rest)), true
}

// finalBlocks is the data for the last step of a Compress call, built before entering the step loop.
type finalBlocks struct {
	bufs     [MaxDegree][BlockSize]byte
	blocks   [MaxDegree][]byte
	lengths  vec
	f0, f1   vec
	finished [MaxDegree]bool
}

// build fills in the final blocks of jobs at offset. The flag lanes are only set if finalize is true; otherwise jobs
// which end at offset will be continued by a later call.
func (fb *finalBlocks) build(jobs []*Job, offset int, finalize bool, stride Stride) {
	for j, job := range jobs {
		var last bool
		fb.blocks[j], fb.lengths[j], last = finalBlock(job.Input, offset, &fb.bufs[j], stride)
		if !finalize || !last {
			continue
		}

		fb.finished[j] = true
		fb.f0[j] = flagWord
		if job.LastNode {
			fb.f1[j] = flagWord
		}
	}
}
