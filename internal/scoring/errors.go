package scoring

import (
	"fmt"

	"github.com/jonathan/resume-matcher/internal/vectorstore"
)

// DimensionMismatchError reports resume and job description embeddings of different lengths.
// It matches vectorstore.ErrDimensionMismatch via errors.Is.
type DimensionMismatchError struct {
	Resume         int
	JobDescription int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("embedding dim mismatch: resume %d, job description %d", e.Resume, e.JobDescription)
}

// Is lets errors.Is(err, vectorstore.ErrDimensionMismatch) succeed.
func (e *DimensionMismatchError) Is(target error) bool {
	return target == vectorstore.ErrDimensionMismatch
}
