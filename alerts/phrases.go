package alerts

import (
	"math/rand"
	"strconv"
)

var greetings = []string{
	"Heads up!",
	"Time to get ready!",
	"Don't forget!",
	"Coming up:",
	"Reminder:",
}

// Greeting picks a greeting phrase from an explicit random source so tests
// can seed it.
func Greeting(r *rand.Rand) string {
	return greetings[r.Intn(len(greetings))]
}

// OffsetPhrase renders a minutes-before offset idiomatically.
func OffsetPhrase(minutes int) string {
	switch minutes {
	case 30:
		return "in half an hour"
	case 45:
		return "in three quarters of an hour"
	case 60:
		return "in about an hour"
	case 90:
		return "in an hour and a half"
	case 120:
		return "in about two hours"
	default:
		if minutes == 1 {
			return "in 1 minute"
		}

		return "in " + strconv.Itoa(minutes) + " minutes"
	}
}

// ComposeMessage builds the human-readable alert body for a reminder.
func ComposeMessage(r *rand.Rand, title string, location *string, minutes int) string {
	msg := Greeting(r) + " " + title + " starts " + OffsetPhrase(minutes)

	if location != nil && *location != "" {
		msg += " at " + *location
	}

	return msg + "."
}
