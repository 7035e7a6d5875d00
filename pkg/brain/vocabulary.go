package brain

import (
	"regexp"
	"strings"
)

// Media-intent vocabulary. A bare creation request that mentions none of this
// (and carries no attachments) should not silently inherit stale media.
var mediaWordPattern = regexp.MustCompile(`(?i)\b(image|images|photo|photos|picture|pictures|logo|logos|screenshot|screenshots|background|overlay|icon|icons|ui|asset|assets|embed)\b`)

var mediaPhrases = []string{
	"use the", "use my", "use this", "use that", "use previous",
}

// HasMediaIntent reports whether the prompt contains any media-directed
// vocabulary. Deliberately permissive; the scope-safety rule downstream is
// what keeps resolution safe.
func HasMediaIntent(prompt string) bool {
	if mediaWordPattern.MatchString(prompt) {
		return true
	}
	lower := strings.ToLower(prompt)
	for _, phrase := range mediaPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
