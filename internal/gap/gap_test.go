package gap

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeSkillGap(t *testing.T) {
	tests := []struct {
		name      string
		resume    []string
		required  []string
		preferred []string
		matching  []string
		missing   []string
		nice      []string
	}{
		{
			name:      "reference example",
			resume:    []string{"python", "sql"},
			required:  []string{"python", "aws"},
			preferred: []string{"docker"},
			matching:  []string{"python"},
			missing:   []string{"aws"},
			nice:      []string{"docker"},
		},
		{
			name:     "all empty",
			matching: []string{},
			missing:  []string{},
			nice:     []string{},
		},
		{
			name:      "case insensitive and deduplicated",
			resume:    []string{"Python", "DOCKER"},
			required:  []string{"python", "PYTHON", "Go"},
			preferred: []string{"Docker", "docker"},
			matching:  []string{"docker", "python"},
			missing:   []string{"go"},
			nice:      []string{},
		},
		{
			name:      "skill in both lists counted once",
			resume:    []string{"aws"},
			required:  []string{"aws"},
			preferred: []string{"aws", "gcp"},
			matching:  []string{"aws"},
			missing:   []string{},
			nice:      []string{"gcp"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeSkillGap(tt.resume, tt.required, tt.preferred)
			assert.Equal(t, tt.matching, got.MatchingSkills)
			assert.Equal(t, tt.missing, got.MissingRequiredSkills)
			assert.Equal(t, tt.nice, got.NiceToHaveSkills)
		})
	}
}

func TestComputeSkillGap_CoversRequiredWhenNoPreferred(t *testing.T) {
	resume := []string{"python", "go", "sql"}
	required := []string{"Python", "rust", "SQL", "kafka"}

	got := ComputeSkillGap(resume, required, nil)

	union := append(append([]string{}, got.MatchingSkills...), got.MissingRequiredSkills...)
	sort.Strings(union)
	assert.Equal(t, []string{"kafka", "python", "rust", "sql"}, union)
	assert.Empty(t, got.NiceToHaveSkills)
}
