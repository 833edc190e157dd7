package analysis

import (
	"context"
	"sync"
)

// MemoryRepo holds analyses in memory and is safe for concurrent use.
// The store is bounded: past the cap, the oldest entry is evicted on
// insert. Nothing survives a restart.
type MemoryRepo struct {
	mu    sync.RWMutex
	byID  map[string]Analysis
	order []string
	cap   int
}

const defaultCap = 100

// NewMemoryRepo constructs a MemoryRepo holding at most cap entries.
func NewMemoryRepo(cap int) *MemoryRepo {
	if cap <= 0 {
		cap = defaultCap
	}
	return &MemoryRepo{
		byID: make(map[string]Analysis),
		cap:  cap,
	}
}

// Create stores the analysis, evicting the oldest entry when full.
func (r *MemoryRepo) Create(ctx context.Context, analysis Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[analysis.ID]; !exists {
		r.order = append(r.order, analysis.ID)
	}
	r.byID[analysis.ID] = analysis
	for len(r.order) > r.cap {
		oldest := r.order[0]
		r.order = r.order[1:]
		delete(r.byID, oldest)
	}
	return nil
}

// GetByID returns an analysis by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	analysis, ok := r.byID[analysisID]
	if !ok {
		return Analysis{}, ErrNotFound
	}
	return analysis, nil
}

// Len reports the number of held analyses.
func (r *MemoryRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
