package compress

// Compress absorbs input into every job of a batch in lockstep, stopping after the block which exhausts the shortest
// job. The batch width is len(jobs), which must be 1, 2, 4, or 8.
//
// Each job's Input is trimmed of the bytes consumed. Jobs left with input must be passed to a later call. If finalize is
// true, each job whose input ends in the last block of this call is finalized, with LastNode setting the last-node
// flag; otherwise every job's Input must be a non-zero multiple of BlockSize, since the caller intends to continue them.
//
// Compress panics if any job has already been finalized.
func Compress(jobs []*Job, finalize bool, stride Stride) {
	n := len(jobs)
	checkDegree(n)
	step := stride.Bytes()

	commonLen := len(jobs[0].Input)
	for _, job := range jobs {
		if job.finalized {
			panic("blake2many: job already finalized")
		}
		if !finalize && (len(job.Input) == 0 || len(job.Input)%BlockSize != 0) {
			panic("blake2many: non-final input must be a non-zero multiple of the block size")
		}
		commonLen = min(commonLen, len(job.Input))
	}

	// The offset of the block which exhausts the shortest job.
	finOffset := max(commonLen-1, 0)
	finOffset -= finOffset % step

	var fin finalBlocks
	fin.build(jobs, finOffset, finalize, stride)

	var (
		h      [8]vec
		lo, hi vec
		cvs    [MaxDegree][]uint64
	)
	for j, job := range jobs {
		cvs[j] = job.CV[:]
		lo[j], hi[j] = job.Count.Lo, job.Count.Hi
	}
	transpose(h[:], &cvs, n)

	var (
		full = splat(BlockSize, n)
		none vec
	)
	for offset := 0; ; offset += step {
		var (
			blocks      [MaxDegree][]byte
			delta       = &full
			f0, f1      = &none, &none
			m           [16]vec
			isFinalStep = offset == finOffset
		)
		if isFinalStep {
			blocks = fin.blocks
			delta, f0, f1 = &fin.lengths, &fin.f0, &fin.f1
		} else {
			for j, job := range jobs {
				blocks[j] = job.Input[offset : offset+BlockSize]
			}
		}

		transposeBlocks(&m, &blocks, n)
		addCounts(&lo, &hi, delta, n)
		compressLanes(&h, &m, &lo, &hi, f0, f1, n)

		if isFinalStep {
			break
		}
	}

	untranspose(&cvs, h[:], n)
	for j, job := range jobs {
		job.Count = Counter{Lo: lo[j], Hi: hi[j]}
		job.Input = job.Input[min(finOffset+BlockSize, len(job.Input)):]
		job.finalized = fin.finished[j]
	}
}
