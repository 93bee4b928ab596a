//go:build amd64 && !purego

package compress

import "golang.org/x/sys/cpu"

var defaultDegree = amd64Degree() //nolint:gochecknoglobals // should only check once

func amd64Degree() int {
	switch {
	case cpu.X86.HasAVX512F:
		return MaxDegree
	case cpu.X86.HasAVX2:
		return 4
	default:
		return 2
	}
}
