// Package retrieval defines the similarity-search/ingest port the pipeline
// consumes and ships a reference in-memory implementation for tests and
// local runs.
package retrieval

import "context"

// Document is an opaque evidence unit: text content plus metadata. The core
// treats documents as immutable values once returned by the port.
type Document struct {
	Content  string
	Metadata map[string]interface{}
}

// Source returns the document's source filename, or "" if unset.
func (d Document) Source() string {
	if v, ok := d.Metadata["source"].(string); ok {
		return v
	}
	return ""
}

// Page returns the document's page number, or 0 if unset.
func (d Document) Page() int {
	if v, ok := d.Metadata["page"].(int); ok {
		return v
	}
	return 0
}

// IndexedDocument summarizes one ingested file for the documents-listing
// endpoint.
type IndexedDocument struct {
	Name   string
	Chunks int
}

// Service is the retrieval port: similarity search over an ingested corpus,
// plus the ingestion/administration operations the HTTP surface delegates
// to directly. The core never depends on the underlying vector-store
// identity.
type Service interface {
	SimilaritySearch(ctx context.Context, query string, k int) ([]Document, error)
	IngestDocument(ctx context.Context, content, originalFilename string) (int, error)
	ClearIndex(ctx context.Context) (bool, error)
	GetStats(ctx context.Context) (map[string]interface{}, error)
	GetIndexedDocuments(ctx context.Context) ([]IndexedDocument, error)
	HealthCheck(ctx context.Context) bool
}
