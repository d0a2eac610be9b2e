// Package vectorstore persists L2-normalized embedding vectors and answers
// nearest-neighbor queries by inner product.
//
// A store owns one directory holding meta.json (the id list) and vectors.npy (the
// row-major matrix). Both files are rewritten in full after every Add.
//
// A Store is not safe for concurrent Add calls; callers serialize writes. Search may run
// concurrently with other searches.
package vectorstore

import (
	"container/heap"
	"fmt"
	"math"
	"os"
	"sort"
)

// Result is one search hit.
type Result struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// Option configures a Store.
type Option func(*Store)

// WithIndex enables or disables the BLAS-backed flat index. When disabled, searches use
// a linear scan with a partial sort. Enabled by default.
func WithIndex(enabled bool) Option {
	return func(s *Store) {
		s.useIndex = enabled
	}
}

// Store is a directory-backed vector store with a fixed dimension.
type Store struct {
	dir      string
	dim      int
	useIndex bool

	ids  []string
	rows map[string]int
	data []float32 // len(ids) * dim, row-major

	index *flatIndex
}

// Open creates dir if needed and loads any vectors persisted there.
func Open(dir string, dim int, opts ...Option) (*Store, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("invalid vector dimension %d", dim)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create vector store directory: %w", err)
	}

	s := &Store{
		dir:      dir,
		dim:      dim,
		useIndex: true,
		rows:     make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	s.rebuildIndex()
	return s, nil
}

// Dim returns the fixed vector dimension.
func (s *Store) Dim() int {
	return s.dim
}

// Len returns the number of stored vectors.
func (s *Store) Len() int {
	return len(s.ids)
}

// IDs returns stored ids in row order.
func (s *Store) IDs() []string {
	return append([]string(nil), s.ids...)
}

// IndexEnabled reports whether searches go through the flat index.
func (s *Store) IndexEnabled() bool {
	return s.useIndex
}

// Get returns a copy of the stored, normalized vector for id.
func (s *Store) Get(id string) ([]float32, bool) {
	row, ok := s.rows[id]
	if !ok {
		return nil, false
	}
	return append([]float32(nil), s.row(row)...), true
}

// Add normalizes v and stores it under id, overwriting an existing entry in place.
// The index is rebuilt and both files are persisted before Add returns.
func (s *Store) Add(id string, v []float32) error {
	if len(v) != s.dim {
		return &DimensionMismatchError{Expected: s.dim, Got: len(v)}
	}
	normalized := L2Normalize(v)

	if row, ok := s.rows[id]; ok {
		copy(s.row(row), normalized)
	} else {
		s.rows[id] = len(s.ids)
		s.ids = append(s.ids, id)
		s.data = append(s.data, normalized...)
	}

	s.rebuildIndex()
	return s.persist()
}

// Search returns the topK ids with the highest inner product against the normalized query,
// highest first. Equal scores are ordered by insertion row.
func (s *Store) Search(query []float32, topK int) ([]Result, error) {
	if len(s.ids) == 0 || topK <= 0 {
		return []Result{}, nil
	}
	if len(query) != s.dim {
		return nil, &DimensionMismatchError{Expected: s.dim, Got: len(query)}
	}
	q := L2Normalize(query)
	if topK > len(s.ids) {
		topK = len(s.ids)
	}

	if s.index != nil {
		return s.searchIndex(q, topK), nil
	}
	return s.searchLinear(q, topK), nil
}

func (s *Store) row(i int) []float32 {
	return s.data[i*s.dim : (i+1)*s.dim]
}

func (s *Store) rebuildIndex() {
	if !s.useIndex || len(s.ids) == 0 {
		s.index = nil
		return
	}
	s.index = newFlatIndex(s.data, len(s.ids), s.dim)
}

func (s *Store) searchIndex(q []float32, topK int) []Result {
	scores := s.index.scores(q)
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	out := make([]Result, 0, topK)
	for _, row := range order[:topK] {
		out = append(out, Result{ID: s.ids[row], Score: float64(scores[row])})
	}
	return out
}

func (s *Store) searchLinear(q []float32, topK int) []Result {
	h := make(hitHeap, 0, topK)
	for row := range s.ids {
		hit := hit{row: row, score: rowDot(s.row(row), q)}
		if len(h) < topK {
			heap.Push(&h, hit)
			continue
		}
		if hit.better(h[0]) {
			h[0] = hit
			heap.Fix(&h, 0)
		}
	}

	out := make([]Result, len(h))
	for i := len(h) - 1; i >= 0; i-- {
		top := heap.Pop(&h).(hit)
		out[i] = Result{ID: s.ids[top.row], Score: float64(top.score)}
	}
	return out
}

// L2Normalize returns v scaled to unit length. A zero vector is returned as zeros.
func L2Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	out := make([]float32, len(v))
	if sum == 0 {
		return out
	}
	norm := math.Sqrt(sum)
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

type hit struct {
	row   int
	score float32
}

// better orders hits by score descending, then row ascending.
func (h hit) better(o hit) bool {
	if h.score != o.score {
		return h.score > o.score
	}
	return h.row < o.row
}

// hitHeap is a min-heap whose root is the worst hit kept so far.
type hitHeap []hit

func (h hitHeap) Len() int            { return len(h) }
func (h hitHeap) Less(i, j int) bool  { return h[j].better(h[i]) }
func (h hitHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *hitHeap) Push(x interface{}) { *h = append(*h, x.(hit)) }
func (h *hitHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
