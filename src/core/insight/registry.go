package insight

import "sync"

// Registry is the process-wide mapping from document identifier to its index.
// Queries read it concurrently; ingestion overwrites whole entries. An
// in-flight ingestion racing a query for the same identifier has no ordering
// guarantee: the query sees either the old index or the new one, never a torn
// entry.
type Registry struct {
	mu      sync.RWMutex
	indexes map[string]*DocumentIndex
}

func NewRegistry() *Registry {
	return &Registry{
		indexes: make(map[string]*DocumentIndex),
	}
}

// Put stores a document index, replacing any previous entry for the same
// identifier wholesale.
func (r *Registry) Put(idx *DocumentIndex) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.indexes[idx.Identifier] = idx
}

// Get returns the index for an identifier, if present.
func (r *Registry) Get(identifier string) (*DocumentIndex, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.indexes[identifier]
	return idx, ok
}

// Snapshot returns the current set of document indexes. The slice is a copy;
// entries themselves are immutable.
func (r *Registry) Snapshot() []*DocumentIndex {
	r.mu.RLock()
	defer r.mu.RUnlock()
	indexes := make([]*DocumentIndex, 0, len(r.indexes))
	for _, idx := range r.indexes {
		indexes = append(indexes, idx)
	}
	return indexes
}

// Len returns the number of registered documents.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.indexes)
}
