package text

import (
	"testing"
)

func TestCharDirection(t *testing.T) {
	tests := []struct {
		r    rune
		want Direction
	}{
		{'A', LTR},
		{'я', LTR},
		{'中', LTR},
		{'א', RTL},
		{'ب', RTL},
		{'ܐ', RTL},
		{'5', Neutral},
		{'.', Neutral},
		{' ', Neutral},
		{'+', Neutral},
	}

	for _, tt := range tests {
		if got := CharDirection(tt.r); got != tt.want {
			t.Errorf("CharDirection(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestDetectDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
	}{
		{"", Neutral},
		{"123 - 456", Neutral},
		{"Hello world", LTR},
		{"שלום עולם", RTL},
		{"مرحبا بالعالم", RTL},
		{"Chapter 3: שלום", LTR},
		{"ab שלום", RTL},
	}

	for _, tt := range tests {
		if got := DetectDirection(tt.in); got != tt.want {
			t.Errorf("DetectDirection(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
