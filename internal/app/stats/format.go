package stats

import (
	"fmt"
	"time"
)

// FormatMemory formats bytes into human-readable format (Bytes, Kb, Mb, Gb)
func FormatMemory(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%5dB", bytes)
	}

	suffixes := []string{"Kb", "Mb", "Gb"}
	value := float64(bytes)

	for i, suffix := range suffixes {
		value /= float64(unit)
		if value < float64(unit) || i == len(suffixes)-1 {
			if value >= 100 {
				return fmt.Sprintf("%4.0f %s", value, suffix)
			} else if value >= 10 {
				return fmt.Sprintf("%4.1f %s", value, suffix)
			}
			return fmt.Sprintf("%4.2f %s", value, suffix)
		}
	}

	return fmt.Sprintf("%4.0f Tb", value)
}

// FormatUptime formats a duration into human-readable uptime (Xh Ym or Xm Ys or Xs)
func FormatUptime(d time.Duration) string {
	d = d.Round(time.Second)

	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
