package services

import (
	"context"
	"fmt"
	"strings"
)

// AskAgronomyLocal produces a canned but structured agronomy answer. It keeps
// development and demo environments usable when the inference gateway is
// disabled via config.
func AskAgronomyLocal(ctx context.Context, query, language string) string {
	q := strings.TrimSpace(query)
	if idx := strings.Index(q, "\n\nIMPORTANT:"); idx >= 0 {
		q = strings.TrimSpace(q[:idx])
	}
	if q == "" {
		q = "your question"
	}
	b := &strings.Builder{}
	fmt.Fprintf(b, "**Summary for: %s**\n\n", truncate(q, 60))
	fmt.Fprintln(b, "General guidance:")
	fmt.Fprintln(b, "1) Inspect the crop closely: leaves, stems and soil moisture.")
	fmt.Fprintln(b, "2) Prefer integrated pest management before chemical treatment.")
	fmt.Fprintln(b, "3) Follow label dosage exactly when applying fertilizer or pesticide.")
	fmt.Fprintln(b, "\nNotes:")
	fmt.Fprintln(b, "- This is an offline placeholder answer; enable the inference gateway for a real diagnosis.")
	fmt.Fprintf(b, "- Requested answer language: %s.\n", language)
	return b.String()
}

// truncate shortens to n runes, never splitting a multi-byte character.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
