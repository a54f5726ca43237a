// Package index provides the sidebar search view: a pure filter over an
// already-fetched conversation listing. It never touches the store.
package index

import (
	"strings"

	"AgriBot/models"
)

// Filter returns the conversations whose title contains query as a
// case-insensitive substring, preserving the input order. An empty query
// returns the listing unchanged.
func Filter(convs []models.Conversation, query string) []models.Conversation {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return convs
	}
	filtered := make([]models.Conversation, 0, len(convs))
	for _, conv := range convs {
		if strings.Contains(strings.ToLower(conv.Title), q) {
			filtered = append(filtered, conv)
		}
	}
	return filtered
}
