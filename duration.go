package main

import (
	"regexp"
	"strconv"
)

// Matches ISO 8601 durations of the PT1H30M5S form, every component optional.
var durationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// parseISODuration converts an ISO 8601 duration token (e.g. "PT2M18S") to
// total seconds. Empty, absent or malformed tokens parse to 0.
func parseISODuration(token string) int64 {
	if token == "" {
		return 0
	}

	match := durationPattern.FindStringSubmatch(token)
	if match == nil {
		return 0
	}

	hours := atoiOrZero(match[1])
	minutes := atoiOrZero(match[2])
	seconds := atoiOrZero(match[3])

	return hours*3600 + minutes*60 + seconds
}

func atoiOrZero(s string) int64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
