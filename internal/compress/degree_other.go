//go:build (!amd64 && !arm64) || purego

package compress

var defaultDegree = 1 //nolint:gochecknoglobals // should only check once
