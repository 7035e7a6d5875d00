package brain

import (
	"regexp"
	"strings"
)

var urlPattern = regexp.MustCompile(`https?://[^\s<>"')\]]+`)

// Hosts whose links are long-form video sources, not analyzable pages.
var videoHostPatterns = []string{
	"youtube.com",
	"youtu.be",
	"vimeo.com",
	"tiktok.com",
	"twitch.tv",
	"dailymotion.com",
}

// DetectPageURL finds at most one explicit external URL in the prompt that is
// worth a page analysis. Video-hosting links are excluded; those belong to the
// long-form source flow, not page analysis.
func DetectPageURL(prompt string) string {
	for _, raw := range urlPattern.FindAllString(prompt, -1) {
		url := strings.TrimRight(raw, ".,;:!?")
		if IsVideoHostURL(url) {
			continue
		}
		return url
	}
	return ""
}

// DetectVideoURL finds at most one video-hosting URL in the prompt.
func DetectVideoURL(prompt string) string {
	for _, raw := range urlPattern.FindAllString(prompt, -1) {
		url := strings.TrimRight(raw, ".,;:!?")
		if IsVideoHostURL(url) {
			return url
		}
	}
	return ""
}

// IsVideoHostURL reports whether the URL points at a known video host.
func IsVideoHostURL(url string) bool {
	lower := strings.ToLower(url)
	for _, host := range videoHostPatterns {
		if strings.Contains(lower, host) {
			return true
		}
	}
	return false
}

// "from 0:30 to 1:45", "0:30 - 1:45", "between 1:00 and 2:30"
var timeRangePattern = regexp.MustCompile(`(?i)(?:from\s+|between\s+)?(\d{1,2}:\d{2}(?::\d{2})?)\s*(?:to|-|–|and)\s*(\d{1,2}:\d{2}(?::\d{2})?)`)

// TimeRange is an explicit start/end reference inside a prompt, in seconds.
type TimeRange struct {
	StartSec int
	EndSec   int
}

// DetectTimeRange extracts an explicit, unambiguous time range from the
// prompt. Returns nil when no range is present or the range is inverted.
func DetectTimeRange(prompt string) *TimeRange {
	match := timeRangePattern.FindStringSubmatch(prompt)
	if match == nil {
		return nil
	}

	start := parseClock(match[1])
	end := parseClock(match[2])
	if start < 0 || end < 0 || end <= start {
		return nil
	}
	return &TimeRange{StartSec: start, EndSec: end}
}

// parseClock converts "m:ss" or "h:mm:ss" to seconds. Returns -1 on bad input.
func parseClock(s string) int {
	parts := strings.Split(s, ":")
	total := 0
	for _, p := range parts {
		n := 0
		for _, c := range p {
			if c < '0' || c > '9' {
				return -1
			}
			n = n*10 + int(c-'0')
		}
		total = total*60 + n
	}
	return total
}
