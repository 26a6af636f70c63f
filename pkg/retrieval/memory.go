package retrieval

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

type chunk struct {
	id      string
	content string
	source  string
	page    int
}

type fileEntry struct {
	name   string
	chunks []*chunk
}

// MemoryStore is a reference, process-memory retrieval backend: documents
// are chunked by paragraph and scored against a query by token overlap. It
// exists so the graph engine and HTTP surface are exercisable without a real
// embedding service; production deployments supply their own Service.
type MemoryStore struct {
	mu    sync.RWMutex
	files map[string]*fileEntry // keyed by originalFilename
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{files: make(map[string]*fileEntry)}
}

// IngestDocument chunks content (the document's text itself, treated as a
// pre-extracted text blob in this reference implementation — PDF parsing
// is out of scope) by
// blank-line-separated paragraphs and stores them under originalFilename,
// replacing any prior ingest of the same filename (idempotent per
// filename).
func (m *MemoryStore) IngestDocument(ctx context.Context, content, originalFilename string) (int, error) {
	paragraphs := splitParagraphs(content)

	chunks := make([]*chunk, 0, len(paragraphs))
	for i, p := range paragraphs {
		chunks = append(chunks, &chunk{
			id:      uuid.New().String(),
			content: p,
			source:  originalFilename,
			page:    i + 1,
		})
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[originalFilename] = &fileEntry{name: originalFilename, chunks: chunks}

	return len(chunks), nil
}

func splitParagraphs(content string) []string {
	raw := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n\n")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 && strings.TrimSpace(content) != "" {
		out = append(out, strings.TrimSpace(content))
	}
	return out
}

// SimilaritySearch scores every chunk by token overlap with query and
// returns the top-k, best-first. Ties keep chunk order within one file
// (stable sort); the order of tied chunks from different files follows map
// iteration and is not defined.
func (m *MemoryStore) SimilaritySearch(ctx context.Context, query string, k int) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	queryTokens := tokenize(query)

	type scored struct {
		doc   Document
		score float64
	}

	var all []scored
	for _, f := range m.files {
		for _, c := range f.chunks {
			score := overlapScore(queryTokens, tokenize(c.content))
			all = append(all, scored{
				doc: Document{
					Content: c.content,
					Metadata: map[string]interface{}{
						"source": c.source,
						"page":   c.page,
						"score":  score,
						"id":     c.id,
					},
				},
				score: score,
			})
		}
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].score > all[j].score })

	if k > len(all) {
		k = len(all)
	}
	out := make([]Document, 0, k)
	for i := 0; i < k; i++ {
		out = append(out, all[i].doc)
	}
	return out, nil
}

func tokenize(s string) map[string]bool {
	fields := strings.Fields(strings.ToLower(s))
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,;:¿?¡!\"'()")
		if f != "" {
			set[f] = true
		}
	}
	return set
}

func overlapScore(query, doc map[string]bool) float64 {
	if len(query) == 0 || len(doc) == 0 {
		return 0
	}
	var hits int
	for tok := range query {
		if doc[tok] {
			hits++
		}
	}
	return float64(hits) / float64(len(query))
}

// ClearIndex wipes every ingested file.
func (m *MemoryStore) ClearIndex(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files = make(map[string]*fileEntry)
	return true, nil
}

// GetStats reports chunk and file counts.
func (m *MemoryStore) GetStats(ctx context.Context) (map[string]interface{}, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	chunks := 0
	for _, f := range m.files {
		chunks += len(f.chunks)
	}
	return map[string]interface{}{
		"documents": len(m.files),
		"chunks":    chunks,
	}, nil
}

// GetIndexedDocuments lists every ingested file with its chunk count. The
// filename is stored and returned verbatim — no sanitization pass is
// mandated by the port contract, only that the name be human-readable.
func (m *MemoryStore) GetIndexedDocuments(ctx context.Context) ([]IndexedDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]IndexedDocument, 0, len(m.files))
	for _, f := range m.files {
		out = append(out, IndexedDocument{Name: f.name, Chunks: len(f.chunks)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// HealthCheck always reports healthy for the in-memory reference store.
func (m *MemoryStore) HealthCheck(ctx context.Context) bool {
	return true
}
