package compress

// DefaultDegree returns the batch width best suited to the current CPU. Digests never depend on it.
func DefaultDegree() int {
	return defaultDegree
}
