// Package taxonomy provides the curated skill taxonomy used to normalize skill spellings.
package taxonomy

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_taxonomy.yaml
var defaultTaxonomyYAML []byte

var defaultTaxonomy = mustParse(defaultTaxonomyYAML)

// Kind is how a surface form is registered in the taxonomy.
// Lower values are stronger registrations.
type Kind int

const (
	// KindCanonical is the canonical skill name itself
	KindCanonical Kind = iota
	// KindAlias is an alternate spelling registered in the alias map
	KindAlias
	// KindVariation is a case/format variant registered in the variation map
	KindVariation
)

func (k Kind) String() string {
	switch k {
	case KindCanonical:
		return "canonical"
	case KindAlias:
		return "alias"
	case KindVariation:
		return "variation"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// SurfaceForm is one spelling that maps to a canonical skill.
type SurfaceForm struct {
	Text      string // Registered spelling
	Canonical string // Canonical skill it maps to
	Kind      Kind
}

// Taxonomy maps raw skill spellings to canonical names.
// It is immutable once built and safe for concurrent use.
type Taxonomy struct {
	canonical     map[string]struct{}
	canonicalList []string
	aliases       map[string]string
	variations    map[string][]string

	// lookup maps every lowercase surface form to its canonical name, honoring
	// alias > variation > canonical precedence.
	lookup map[string]string
	// forms lists surface forms deduplicated case-insensitively, in match order:
	// canonical names, then aliases, then variations.
	forms []SurfaceForm
}

type taxonomyFile struct {
	Canonical  []string            `yaml:"canonical"`
	Aliases    map[string]string   `yaml:"aliases"`
	Variations map[string][]string `yaml:"variations"`
}

// Default returns the built-in taxonomy.
func Default() *Taxonomy {
	return defaultTaxonomy
}

// New builds a taxonomy and validates that every alias and variation targets a canonical skill.
func New(canonical []string, aliases map[string]string, variations map[string][]string) (*Taxonomy, error) {
	t := &Taxonomy{
		canonical:  make(map[string]struct{}, len(canonical)),
		aliases:    make(map[string]string, len(aliases)),
		variations: make(map[string][]string, len(variations)),
	}

	for _, c := range canonical {
		c = strings.TrimSpace(c)
		if c == "" {
			return nil, &InvalidTaxonomyError{Field: "canonical", Message: "empty canonical skill name"}
		}
		if _, dup := t.canonical[c]; dup {
			continue
		}
		t.canonical[c] = struct{}{}
		t.canonicalList = append(t.canonicalList, c)
	}
	sort.Strings(t.canonicalList)

	for raw, target := range aliases {
		key := strings.ToLower(strings.TrimSpace(raw))
		if key == "" {
			return nil, &InvalidTaxonomyError{Field: "aliases", Message: "empty alias"}
		}
		t.aliases[key] = target
	}
	for c, forms := range variations {
		t.variations[c] = append([]string(nil), forms...)
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	t.buildLookup()
	t.buildForms()
	return t, nil
}

// Parse builds a taxonomy from YAML data with canonical, aliases and variations keys.
func Parse(data []byte) (*Taxonomy, error) {
	var f taxonomyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &InvalidTaxonomyError{Message: "failed to parse taxonomy YAML", Cause: err}
	}
	return New(f.Canonical, f.Aliases, f.Variations)
}

// Load reads a taxonomy YAML file.
func Load(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy file %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("taxonomy file %s: %w", path, err)
	}
	return t, nil
}

func mustParse(data []byte) *Taxonomy {
	t, err := Parse(data)
	if err != nil {
		panic(fmt.Sprintf("built-in taxonomy is invalid: %v", err))
	}
	return t
}

// Validate checks that every alias and variation target exists in the canonical set.
func (t *Taxonomy) Validate() error {
	for _, alias := range sortedKeys(t.aliases) {
		if _, ok := t.canonical[t.aliases[alias]]; !ok {
			return &InvalidTaxonomyError{
				Field:   "aliases",
				Message: fmt.Sprintf("alias %q targets unknown canonical skill %q", alias, t.aliases[alias]),
			}
		}
	}
	for _, c := range sortedKeys(t.variations) {
		if _, ok := t.canonical[c]; !ok {
			return &InvalidTaxonomyError{
				Field:   "variations",
				Message: fmt.Sprintf("variations key %q is not a canonical skill", c),
			}
		}
	}
	return nil
}

func (t *Taxonomy) buildLookup() {
	t.lookup = make(map[string]string)
	for _, c := range t.canonicalList {
		t.lookup[strings.ToLower(c)] = c
	}

	fromVariation := make(map[string]bool)
	for _, c := range sortedKeys(t.variations) {
		for _, form := range append([]string{c}, t.variations[c]...) {
			key := strings.ToLower(strings.TrimSpace(form))
			if key == "" || fromVariation[key] {
				continue
			}
			fromVariation[key] = true
			t.lookup[key] = c
		}
	}

	for alias, c := range t.aliases {
		t.lookup[alias] = c
	}
}

func (t *Taxonomy) buildForms() {
	seen := make(map[string]bool)
	add := func(text, canonical string, kind Kind) {
		text = strings.TrimSpace(text)
		key := strings.ToLower(text)
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		t.forms = append(t.forms, SurfaceForm{Text: text, Canonical: canonical, Kind: kind})
	}

	for _, c := range t.canonicalList {
		add(c, c, KindCanonical)
	}
	for _, alias := range sortedKeys(t.aliases) {
		add(alias, t.aliases[alias], KindAlias)
	}
	for _, c := range sortedKeys(t.variations) {
		for _, form := range t.variations[c] {
			add(form, c, KindVariation)
		}
	}
}

// Normalize maps a raw skill spelling to its canonical name.
// Unknown skills pass through trimmed and lowercased.
func (t *Taxonomy) Normalize(skill string) string {
	s := strings.ToLower(strings.TrimSpace(skill))
	if c, ok := t.lookup[s]; ok {
		return c
	}
	return s
}

// IsAlias reports whether the spelling is a registered alias.
func (t *Taxonomy) IsAlias(form string) bool {
	_, ok := t.aliases[strings.ToLower(strings.TrimSpace(form))]
	return ok
}

// IsCanonical reports whether name is a canonical skill.
func (t *Taxonomy) IsCanonical(name string) bool {
	_, ok := t.canonical[name]
	return ok
}

// Canonical returns the sorted canonical skill names.
func (t *Taxonomy) Canonical() []string {
	return append([]string(nil), t.canonicalList...)
}

// Aliases returns a copy of the alias map, keyed by lowercase alias.
func (t *Taxonomy) Aliases() map[string]string {
	out := make(map[string]string, len(t.aliases))
	for k, v := range t.aliases {
		out[k] = v
	}
	return out
}

// Forms returns every surface form in match order.
func (t *Taxonomy) Forms() []SurfaceForm {
	return append([]SurfaceForm(nil), t.forms...)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
