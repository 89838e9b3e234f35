package main

import (
	"fmt"
	"time"
)

const durationPrecision = 100 * time.Millisecond

// formatClock renders a second offset as h:mm:ss for table output.
func formatClock(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%d:%02d:%02d", total/3600, total%3600/60, total%60)
}
