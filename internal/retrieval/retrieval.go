// Package retrieval provides semantic passage search over a vector
// database.
package retrieval

import (
	"context"
	"errors"
)

// Sentinel errors for retrieval operations.
var (
	// ErrInvalidConfig indicates invalid retriever configuration.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConnectionFailed indicates the vector database is unreachable.
	ErrConnectionFailed = errors.New("failed to connect to Qdrant")

	// ErrSearchFailed indicates a search request failed.
	ErrSearchFailed = errors.New("search failed")
)

// Passage is a unit of retrieved text evidence. Title and Score are
// enrichments; Text is the evidence the agent reasons over.
type Passage struct {
	Text  string  `json:"text"`
	Title string  `json:"title,omitempty"`
	Score float32 `json:"score,omitempty"`
}

// Retriever searches a passage store.
//
// Results are ordered relevance-descending with length <= limit; an
// empty result is valid and not an error.
type Retriever interface {
	Search(ctx context.Context, query string, limit int) ([]Passage, error)
}
