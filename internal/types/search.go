package types

import "gorm.io/datatypes"

// SearchResult is one row from the similarity query, ordered by descending
// similarity.
type SearchResult struct {
	ID         string         `json:"id"`
	Content    string         `json:"content"`
	Metadata   datatypes.JSON `json:"metadata"`
	Similarity float64        `json:"similarity"`
}

// Source cites one retrieved chunk in a chat answer.
type Source struct {
	Title   string `json:"title"`
	Type    string `json:"type"`
	Excerpt string `json:"excerpt,omitempty"`
}

// ChatAnswer is what the answer composer returns to the chat endpoint.
type ChatAnswer struct {
	Response string   `json:"response"`
	Sources  []Source `json:"sources"`
}
