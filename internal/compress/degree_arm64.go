//go:build arm64 && !purego

package compress

import "golang.org/x/sys/cpu"

var defaultDegree = arm64Degree() //nolint:gochecknoglobals // should only check once

func arm64Degree() int {
	if cpu.ARM64.HasASIMD {
		return 2
	}
	return 1
}
