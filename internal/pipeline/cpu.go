package pipeline

import "github.com/shirou/gopsutil/v3/cpu"

// HasherCount returns N = min(logical CPU count, MaxHashers), falling back
// to 1 if the host's CPU topology can't be read (e.g. inside a restrictive
// container sandbox).
func HasherCount() int {
	counts, err := cpu.Counts(true)
	if err != nil || counts <= 0 {
		return 1
	}
	if counts > MaxHashers {
		return MaxHashers
	}
	return counts
}
