package brain

import (
	"testing"
)

func TestDetectPageURL(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   string
	}{
		{
			name:   "plain page link",
			prompt: "build an intro from https://example.com/pricing please",
			want:   "https://example.com/pricing",
		},
		{
			name:   "video host is not a page",
			prompt: "summarize https://www.youtube.com/watch?v=abc123",
			want:   "",
		},
		{
			name:   "video link first, page link second",
			prompt: "see https://youtu.be/xyz and https://example.com/about",
			want:   "https://example.com/about",
		},
		{
			name:   "trailing punctuation stripped",
			prompt: "check https://example.com/features.",
			want:   "https://example.com/features",
		},
		{
			name:   "no link",
			prompt: "make a scene about onboarding",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectPageURL(tt.prompt); got != tt.want {
				t.Errorf("DetectPageURL(%q) = %q, want %q", tt.prompt, got, tt.want)
			}
		})
	}
}

func TestDetectVideoURL(t *testing.T) {
	if got := DetectVideoURL("use https://vimeo.com/12345 from 0:30 to 1:00"); got != "https://vimeo.com/12345" {
		t.Errorf("DetectVideoURL = %q, want the vimeo link", got)
	}
	if got := DetectVideoURL("look at https://example.com/page"); got != "" {
		t.Errorf("DetectVideoURL = %q, want empty for a non-video link", got)
	}
}

func TestDetectTimeRange(t *testing.T) {
	tests := []struct {
		name      string
		prompt    string
		wantStart int
		wantEnd   int
		wantNil   bool
	}{
		{
			name:      "from/to form",
			prompt:    "use the part from 0:30 to 1:45",
			wantStart: 30,
			wantEnd:   105,
		},
		{
			name:      "dash form with hours",
			prompt:    "clip 1:00:00 - 1:02:30",
			wantStart: 3600,
			wantEnd:   3750,
		},
		{
			name:    "inverted range rejected",
			prompt:  "from 2:00 to 1:00",
			wantNil: true,
		},
		{
			name:    "no range",
			prompt:  "use this video",
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectTimeRange(tt.prompt)
			if tt.wantNil {
				if got != nil {
					t.Errorf("DetectTimeRange(%q) = %+v, want nil", tt.prompt, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("DetectTimeRange(%q) = nil, want a range", tt.prompt)
			}
			if got.StartSec != tt.wantStart || got.EndSec != tt.wantEnd {
				t.Errorf("DetectTimeRange(%q) = [%d, %d], want [%d, %d]",
					tt.prompt, got.StartSec, got.EndSec, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestHasMediaIntent(t *testing.T) {
	positives := []string{
		"use this image as the background",
		"put the logo in the corner",
		"recreate that screenshot",
		"embed it behind the title",
		"use my previous upload",
	}
	for _, p := range positives {
		if !HasMediaIntent(p) {
			t.Errorf("HasMediaIntent(%q) = false, want true", p)
		}
	}

	negatives := []string{
		"create an intro",
		"make a scene about pricing",
		"delete the last scene",
	}
	for _, p := range negatives {
		if HasMediaIntent(p) {
			t.Errorf("HasMediaIntent(%q) = true, want false", p)
		}
	}
}
