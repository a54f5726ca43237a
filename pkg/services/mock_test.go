package services

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateIsRuneSafe(t *testing.T) {
	// Devanagari: every character is multi-byte
	s := strings.Repeat("गेहूं की फसल में रोग ", 8)
	got := truncate(s, 60)
	if !utf8.ValidString(got) {
		t.Fatalf("truncate produced invalid UTF-8: %q", got)
	}
	if n := len([]rune(got)); n != 60 {
		t.Fatalf("expected 60 runes including ellipsis, got %d", n)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
}

func TestTruncateShortStringUnchanged(t *testing.T) {
	if got := truncate("short", 60); got != "short" {
		t.Fatalf("expected unchanged string, got %q", got)
	}
}

func TestLocalAnswerHandlesNonASCIIQuery(t *testing.T) {
	q := strings.Repeat("टमाटर में कीट नियंत्रण कैसे करें? ", 5)
	out := AskAgronomyLocal(context.Background(), q, "Hindi")
	if !utf8.ValidString(out) {
		t.Fatalf("local answer contains invalid UTF-8")
	}
	if !strings.Contains(out, "Hindi") {
		t.Fatalf("expected the requested language to be echoed")
	}
}
