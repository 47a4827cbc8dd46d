// Package journey renders ledger journey events for humans. Events arrive as
// free-text strings ending in "at <unix-seconds>"; only that trailing
// timestamp is rewritten.
package journey

import (
	"regexp"
	"strconv"
	"time"
)

// dateLayout matches the original UI rendering: short month, 12-hour clock.
const dateLayout = "Jan 2, 2006, 3:04:05 PM"

var trailingTimestamp = regexp.MustCompile(`\bat (\d+)$`)

// Format rewrites each event's trailing "at <digits>" into a readable date.
// Events without the trailing pattern pass through unchanged; order is
// preserved. Earlier "at <digits>" occurrences inside an event are prose and
// are left alone.
func Format(events []string) []string {
	out := make([]string, len(events))
	for i, event := range events {
		out[i] = formatEvent(event)
	}
	return out
}

func formatEvent(event string) string {
	match := trailingTimestamp.FindStringSubmatchIndex(event)
	if match == nil {
		return event
	}

	seconds, err := strconv.ParseInt(event[match[2]:match[3]], 10, 64)
	if err != nil {
		return event
	}

	rendered := time.Unix(seconds, 0).Format(dateLayout)
	return event[:match[0]] + "at " + rendered
}
