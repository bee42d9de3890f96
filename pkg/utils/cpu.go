package utils

import "github.com/shirou/gopsutil/cpu"

// CheckCPUUsage reports whether the host is below maxCPUUsage percent and
// the current usage.
func CheckCPUUsage(maxCPUUsage float64) (bool, float64) {
	usage, err := cpu.Percent(0, false)
	if err != nil || len(usage) == 0 {
		return false, 0
	}
	return usage[0] <= maxCPUUsage, usage[0]
}
