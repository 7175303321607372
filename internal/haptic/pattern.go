// Package haptic models vibration pulse patterns and the collaborators that
// play them.
package haptic

import "time"

// Pattern is a sequence of durations in milliseconds alternating between
// motor on and motor off, starting with on.
type Pattern []int

// Valid reports whether the pattern has at least one entry and no negative values.
func (pattern Pattern) Valid() bool {
	if len(pattern) == 0 {
		return false
	}
	for _, value := range pattern {
		if value < 0 {
			return false
		}
	}
	return true
}

// Total returns the summed duration of the pattern.
func (pattern Pattern) Total() time.Duration {
	var total int
	for _, value := range pattern {
		total += value
	}
	return time.Duration(total) * time.Millisecond
}

// Fill repeats unit until the pattern spans total. The last repetition is
// truncated so that the sum equals total exactly. A unit of odd length is
// padded with a zero pause so every repetition starts with the motor on.
func Fill(unit []int, total time.Duration) Pattern {
	if len(unit)%2 != 0 {
		unit = append(append([]int(nil), unit...), 0)
	}
	remaining := int(total / time.Millisecond)
	unitSum := 0
	for _, value := range unit {
		unitSum += value
	}
	if remaining <= 0 || unitSum <= 0 {
		return Pattern{0}
	}

	pattern := make(Pattern, 0, len(unit)*(remaining/unitSum+1))
	for remaining > 0 {
		for _, value := range unit {
			if remaining <= 0 {
				break
			}
			if value > remaining {
				value = remaining
			}
			pattern = append(pattern, value)
			remaining -= value
		}
	}
	return pattern
}
