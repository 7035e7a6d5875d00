package brain

import (
	"regexp"
	"strconv"
	"strings"
)

// Timebase: the product renders at 30 units per second.
const FramesPerSecond = 30

// Sane duration window: roughly half a second to one minute.
const (
	MinDurationFrames = FramesPerSecond / 2
	MaxDurationFrames = FramesPerSecond * 60
)

// "5 seconds", "12s", "3.5 sec", "45 frames"
var durationPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(seconds|second|secs|sec|s|frames|frame|f)\b`)

// ExtractDurationFrames scans free text for an explicit duration expression
// and converts it to frames. Returns 0 when no in-range duration is present.
// Deterministic regex-level extraction, independent of any model output.
//
// Seconds are accepted in [0.5, 60] and converted at 30 frames/second.
// Frame counts are accepted verbatim when they fall inside [1, 1800]; small
// frame counts like "10 frames" are an explicit unit choice and pass through.
func ExtractDurationFrames(text string) int {
	match := durationPattern.FindStringSubmatch(text)
	if match == nil {
		return 0
	}

	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0
	}

	unit := strings.ToLower(match[2])
	if unit == "frames" || unit == "frame" || unit == "f" {
		frames := int(value)
		if frames < 1 || frames > MaxDurationFrames {
			return 0
		}
		return frames
	}

	// Seconds
	if value < 0.5 || value > 60 {
		return 0
	}
	return int(value * FramesPerSecond)
}
