package index

import (
	"sort"
	"sync"
)

// Document is one indexed text with its unit-length embedding.
type Document struct {
	ID        string
	Text      string
	Embedding []float32
}

// Match is one search hit with its cosine similarity score.
type Match struct {
	Document Document
	Score    float32
}

// MemoryIndex is an in-process vector index over normalized embeddings.
// Safe for concurrent use.
type MemoryIndex struct {
	mu   sync.RWMutex
	docs map[string]Document
}

func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{docs: make(map[string]Document)}
}

// Upsert adds or replaces a document by ID.
func (idx *MemoryIndex) Upsert(doc Document) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.docs[doc.ID] = doc
}

// Delete removes a document. Unknown IDs are a no-op.
func (idx *MemoryIndex) Delete(id string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	delete(idx.docs, id)
}

// Len returns the number of indexed documents.
func (idx *MemoryIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.docs)
}

// Search returns the topK most similar documents to the query embedding,
// best first. Both query and stored embeddings must be normalized.
func (idx *MemoryIndex) Search(query []float32, topK int) []Match {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	matches := make([]Match, 0, len(idx.docs))
	for _, doc := range idx.docs {
		if len(doc.Embedding) != len(query) {
			continue
		}
		matches = append(matches, Match{Document: doc, Score: dot(query, doc.Embedding)})
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if topK > 0 && len(matches) > topK {
		matches = matches[:topK]
	}
	return matches
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
