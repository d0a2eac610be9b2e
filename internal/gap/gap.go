// Package gap computes the skill gap between a resume and a job description.
package gap

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

// ComputeSkillGap compares lowercased skill sets. Inputs are expected to be canonical already.
func ComputeSkillGap(resumeSkills, required, preferred []string) types.SkillGap {
	resume := lowerSet(resumeSkills)
	req := lowerSet(required)
	pref := lowerSet(preferred)

	matching := make(map[string]struct{})
	for s := range req {
		if _, ok := resume[s]; ok {
			matching[s] = struct{}{}
		}
	}
	for s := range pref {
		if _, ok := resume[s]; ok {
			matching[s] = struct{}{}
		}
	}

	return types.SkillGap{
		MatchingSkills:        sortedKeys(matching),
		MissingRequiredSkills: difference(req, resume),
		NiceToHaveSkills:      difference(pref, resume),
	}
}

func lowerSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		set[strings.ToLower(s)] = struct{}{}
	}
	return set
}

func difference(a, b map[string]struct{}) []string {
	out := make(map[string]struct{})
	for s := range a {
		if _, ok := b[s]; !ok {
			out[s] = struct{}{}
		}
	}
	return sortedKeys(out)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
