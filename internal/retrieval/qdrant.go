package retrieval

import (
	"context"
	"fmt"
	"time"

	"github.com/qdrant/go-client/qdrant"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/KShivendu/agentic-search/internal/embeddings"
)

// Tracer for OpenTelemetry instrumentation.
var tracer = otel.Tracer("agentic-search.retrieval")

// QdrantConfig holds configuration for the Qdrant gRPC client.
type QdrantConfig struct {
	// Host is the Qdrant server hostname or IP address.
	Host string `koanf:"host"`

	// Port is the Qdrant gRPC port (6334, not the 6333 REST port).
	Port int `koanf:"port"`

	// APIKey is the optional API key for Qdrant Cloud.
	APIKey string `koanf:"api_key"`

	// UseTLS enables TLS for the gRPC connection.
	UseTLS bool `koanf:"use_tls"`

	// Collection is the passage collection to search.
	Collection string `koanf:"collection"`
}

// QdrantStore implements Retriever on top of a Qdrant collection.
//
// Query embedding is delegated to an embeddings.Provider, so the same
// store serves both client-side (local ONNX) and server-side (TEI/
// OpenAI) embedding configurations.
type QdrantStore struct {
	client   *qdrant.Client
	embedder embeddings.Provider
	config   QdrantConfig
}

// NewQdrantStore connects to Qdrant and verifies the connection with a
// health check.
func NewQdrantStore(cfg QdrantConfig, embedder embeddings.Provider) (*QdrantStore, error) {
	if cfg.Collection == "" {
		return nil, fmt.Errorf("%w: collection required", ErrInvalidConfig)
	}
	if embedder == nil {
		return nil, fmt.Errorf("%w: embedder required", ErrInvalidConfig)
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.APIKey,
		UseTLS: cfg.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	store := &QdrantStore{
		client:   client,
		embedder: embedder,
		config:   cfg,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.HealthCheck(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: health check: %v", ErrConnectionFailed, err)
	}

	return store, nil
}

// Search embeds the query and returns the top passages by similarity.
func (s *QdrantStore) Search(ctx context.Context, query string, limit int) ([]Passage, error) {
	ctx, span := tracer.Start(ctx, "QdrantStore.Search")
	defer span.End()

	span.SetAttributes(
		attribute.String("collection", s.config.Collection),
		attribute.Int("limit", limit),
	)

	if query == "" {
		return nil, fmt.Errorf("%w: empty query", ErrSearchFailed)
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", ErrSearchFailed, limit)
	}

	vector, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	points, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.config.Collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: collection %s: %v", ErrSearchFailed, s.config.Collection, err)
	}

	passages := make([]Passage, len(points))
	for i, point := range points {
		passages[i] = passageFromPoint(point)
	}

	span.SetAttributes(attribute.Int("results_count", len(passages)))
	span.SetStatus(codes.Ok, "success")
	return passages, nil
}

// Close closes the Qdrant gRPC connection.
func (s *QdrantStore) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// passageFromPoint extracts a Passage from a scored point payload.
// Missing payload fields yield empty strings rather than errors.
func passageFromPoint(point *qdrant.ScoredPoint) Passage {
	passage := Passage{Score: point.Score}
	for key, value := range point.Payload {
		str, ok := value.Kind.(*qdrant.Value_StringValue)
		if !ok {
			continue
		}
		switch key {
		case "text":
			passage.Text = str.StringValue
		case "title":
			passage.Title = str.StringValue
		}
	}
	return passage
}
