package vectorstore

import (
	"gonum.org/v1/gonum/blas/blas32"
)

// flatIndex is an exact inner-product index over a snapshot of the store matrix.
type flatIndex struct {
	matrix blas32.General
}

func newFlatIndex(data []float32, rows, dim int) *flatIndex {
	snapshot := make([]float32, len(data))
	copy(snapshot, data)
	return &flatIndex{
		matrix: blas32.General{
			Rows:   rows,
			Cols:   dim,
			Stride: dim,
			Data:   snapshot,
		},
	}
}

// scores returns the inner product of q with every row. Rows are scored with rowDot so
// index and linear searches produce bit-identical scores and therefore identical orderings.
func (ix *flatIndex) scores(q []float32) []float32 {
	out := make([]float32, ix.matrix.Rows)
	for i := range out {
		start := i * ix.matrix.Stride
		out[i] = rowDot(ix.matrix.Data[start:start+ix.matrix.Cols], q)
	}
	return out
}

// rowDot is the single scoring routine shared by both search paths.
func rowDot(row, q []float32) float32 {
	return blas32.Dot(
		blas32.Vector{N: len(row), Inc: 1, Data: row},
		blas32.Vector{N: len(q), Inc: 1, Data: q},
	)
}
