// Package scoring fuses semantic similarity and skill overlap into a single match score.
package scoring

import (
	"math"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/jonathan/resume-matcher/internal/vectorstore"
)

// Default fusion weights, used when the supplied weights do not sum to a positive value.
const (
	DefaultSemanticWeight = 0.65
	DefaultSkillWeight    = 0.35
)

const (
	requiredOverlapWeight  = 0.8
	preferredOverlapWeight = 0.2
)

// ComputeMatchScore scores a resume against a job description.
//
// Weights are rescaled to sum to one. Semantic similarity is the cosine of the two vectors
// mapped from [-1, 1] to [0, 100]; skill overlap weighs required coverage 0.8 and preferred
// coverage 0.2.
func ComputeMatchScore(
	resumeVec, jdVec []float32,
	resumeSkills, required, preferred []string,
	semanticWeight, skillWeight float64,
) (*types.ScoreResult, error) {
	ws, wk := NormalizeWeights(semanticWeight, skillWeight)

	sim, err := CosineSimilarity(resumeVec, jdVec)
	if err != nil {
		return nil, err
	}
	semantic := toPercent(clamp01((sim + 1) / 2))
	skill := SkillOverlapScore(resumeSkills, required, preferred)
	final := toPercent(ws*(semantic/100) + wk*(skill/100))

	return &types.ScoreResult{
		SemanticSimilarityScore: semantic,
		SkillOverlapScore:       skill,
		FinalMatchScore:         final,
		Weights: types.Weights{
			Semantic: round(ws, 4),
			Skill:    round(wk, 4),
		},
	}, nil
}

// NormalizeWeights rescales the weights to sum to one, falling back to the defaults
// when their sum is not positive.
func NormalizeWeights(semantic, skill float64) (float64, float64) {
	sum := semantic + skill
	if sum <= 0 {
		return DefaultSemanticWeight, DefaultSkillWeight
	}
	return semantic / sum, skill / sum
}

// CosineSimilarity normalizes both vectors and returns their dot product.
// A zero vector yields 0.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, &DimensionMismatchError{Resume: len(a), JobDescription: len(b)}
	}
	na := vectorstore.L2Normalize(a)
	nb := vectorstore.L2Normalize(b)

	var sum float32
	for i := range na {
		sum += na[i] * nb[i]
	}
	return float64(sum), nil
}

// SkillOverlapScore returns 0.8 x required coverage + 0.2 x preferred coverage on a 0-100 scale.
// An empty list counts as fully covered.
func SkillOverlapScore(resumeSkills, required, preferred []string) float64 {
	resume := lowerSet(resumeSkills)
	total := requiredOverlapWeight*coverage(resume, lowerSet(required)) +
		preferredOverlapWeight*coverage(resume, lowerSet(preferred))
	return toPercent(total)
}

func coverage(resume, wanted map[string]struct{}) float64 {
	if len(wanted) == 0 {
		return 1
	}
	hits := 0
	for s := range wanted {
		if _, ok := resume[s]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(wanted))
}

func lowerSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		set[strings.ToLower(s)] = struct{}{}
	}
	return set
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

// toPercent maps a [0,1] value to [0,100] rounded to two decimals.
func toPercent(x01 float64) float64 {
	return round(math.Max(0, math.Min(100, x01*100)), 2)
}

func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.RoundToEven(x*p) / p
}
