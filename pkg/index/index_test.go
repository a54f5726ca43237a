package index

import (
	"testing"

	"AgriBot/models"
)

func sidebar() []models.Conversation {
	return []models.Conversation{
		{Title: "Tomato pest control"},
		{Title: "Best fertilizer for Wheat"},
		{Title: "New Chat"},
		{Title: "wheat rust on lower leaves"},
	}
}

func TestEmptyQueryIsIdentity(t *testing.T) {
	convs := sidebar()
	got := Filter(convs, "")
	if len(got) != len(convs) {
		t.Fatalf("expected all %d conversations, got %d", len(convs), len(got))
	}
	for i := range got {
		if got[i].Title != convs[i].Title {
			t.Fatalf("order changed at position %d", i)
		}
	}
}

func TestWhitespaceQueryIsIdentity(t *testing.T) {
	if got := Filter(sidebar(), "   "); len(got) != 4 {
		t.Fatalf("expected whitespace query to match everything, got %d", len(got))
	}
}

func TestCaseInsensitiveSubstring(t *testing.T) {
	got := Filter(sidebar(), "WHEAT")
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if got[0].Title != "Best fertilizer for Wheat" || got[1].Title != "wheat rust on lower leaves" {
		t.Fatalf("unexpected matches: %q, %q", got[0].Title, got[1].Title)
	}
}

func TestNoMatches(t *testing.T) {
	if got := Filter(sidebar(), "sugarcane"); len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}
