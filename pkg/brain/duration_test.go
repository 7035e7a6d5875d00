package brain

import (
	"testing"
)

func TestExtractDurationFrames(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{
			name: "whole seconds",
			text: "make it 5 seconds",
			want: 150,
		},
		{
			name: "frames pass through",
			text: "trim this to 10 frames",
			want: 10,
		},
		{
			name: "below the sane range",
			text: "flash it for 0.1 seconds",
			want: 0,
		},
		{
			name: "above the sane range",
			text: "loop it for 90 seconds",
			want: 0,
		},
		{
			name: "fractional seconds",
			text: "a quick 1.5s sting",
			want: 45,
		},
		{
			name: "single second abbreviation",
			text: "hold for 2 sec",
			want: 60,
		},
		{
			name: "no duration at all",
			text: "make an intro about our product",
			want: 0,
		},
		{
			name: "number without unit ignored",
			text: "add 3 scenes",
			want: 0,
		},
		{
			name: "upper bound inclusive",
			text: "a full 60 seconds",
			want: 1800,
		},
		{
			name: "lower bound inclusive",
			text: "just 0.5 seconds",
			want: 15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractDurationFrames(tt.text)
			if got != tt.want {
				t.Errorf("ExtractDurationFrames(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}
