// Package protocol implements the flat tag grammar spoken with the controller:
// a frame is any number of <name>value</name> pairs, with no nesting and no
// escaping.
package protocol

import (
	"strconv"
	"strings"
)

// NoData is returned by Value when a token is absent.
const NoData = "NoData"

// Parse returns the payload of the last <token>...</token> pair in msg.
func Parse(msg, token string) (string, bool) {
	open := "<" + token + ">"
	closing := "</" + token + ">"
	value, found := NoData, false
	for i := 0; ; {
		start := strings.Index(msg[i:], open)
		if start < 0 {
			break
		}
		start += i + len(open)
		end := strings.Index(msg[start:], closing)
		if end < 0 {
			break
		}
		end += start
		value, found = msg[start:end], true
		i = end + len(closing)
	}
	return value, found
}

// Value is Parse without the presence flag.
func Value(msg, token string) string {
	v, _ := Parse(msg, token)
	return v
}

// ParseInt decodes value as a decimal integer. A malformed value or one outside
// [min, max] yields fallback.
func ParseInt(value string, min, max, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < min || n > max {
		return fallback
	}
	return n
}

// Encode builds a single <token>value</token> pair.
func Encode(token, value string) string {
	return "<" + token + ">" + value + "</" + token + ">"
}

// StatusRequest is the heartbeat poll sent to the controller.
func StatusRequest(host string) string { return Encode(TokenGetStatus, host) }

func ClosedSpot() string { return Encode(TokenClosedSpot, "1") }

func ClosedLive() string { return Encode(TokenClosedLive, "1") }

// Orientation reports the mirrored flag, 1 when mirrored.
func Orientation(mirrored bool) string { return Encode(TokenOrientation, boolDigit(mirrored)) }

func ScoreOnly(on bool) string { return Encode(TokenIsScoreOnly, boolDigit(on)) }

func boolDigit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
