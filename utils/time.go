package utils

import (
	"fmt"
	"time"
)

// FormatDuration prints run times for the "Finished in" line. Anything over a minute is truncated
// to whole minutes, e.g. "1d 2h 0m".
func FormatDuration(duration time.Duration) string {
	if duration < time.Minute {
		return duration.String()
	}

	minutes := int64(duration / time.Minute)
	days, minutes := minutes/(24*60), minutes%(24*60)
	hours, minutes := minutes/60, minutes%60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}

	return fmt.Sprintf("%dm", minutes)
}
