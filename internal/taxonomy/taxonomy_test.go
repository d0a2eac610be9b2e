package taxonomy

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	tax := Default()
	require.NotNil(t, tax)
	require.NoError(t, tax.Validate())
	assert.Contains(t, tax.Canonical(), "python")
	assert.Contains(t, tax.Canonical(), "scikit-learn")
}

func TestNormalize(t *testing.T) {
	tax := Default()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"canonical unchanged", "python", "python"},
		{"canonical uppercase", "PYTHON", "python"},
		{"canonical with spaces", "  docker  ", "docker"},
		{"alias", "sklearn", "scikit-learn"},
		{"alias mixed case", "Torch", "pytorch"},
		{"multi word alias", "Apache Spark", "spark"},
		{"variation", "K8s", "kubernetes"},
		{"variation multi word", "Amazon Web Services", "aws"},
		{"unknown passes through lowercased", "  Haskell ", "haskell"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tax.Normalize(tt.input))
		})
	}
}

func TestNormalize_CanonicalRoundTrip(t *testing.T) {
	tax := Default()
	for _, c := range tax.Canonical() {
		assert.Equal(t, c, tax.Normalize(c), "canonical %q should normalize to itself", c)
	}
}

func TestNormalize_EveryAliasMapsToItsTarget(t *testing.T) {
	tax := Default()
	for alias, target := range tax.Aliases() {
		assert.Equal(t, target, tax.Normalize(alias), "alias %q", alias)
		assert.True(t, tax.IsCanonical(target))
	}
}

func TestNew_RejectsUnknownAliasTarget(t *testing.T) {
	_, err := New([]string{"go"}, map[string]string{"golang": "go", "rs": "rust"}, nil)
	require.Error(t, err)

	var taxErr *InvalidTaxonomyError
	require.True(t, errors.As(err, &taxErr))
	assert.Equal(t, "aliases", taxErr.Field)
	assert.Contains(t, err.Error(), "rust")
}

func TestNew_RejectsUnknownVariationKey(t *testing.T) {
	_, err := New([]string{"go"}, nil, map[string][]string{"rust": {"Rust"}})
	require.Error(t, err)

	var taxErr *InvalidTaxonomyError
	require.True(t, errors.As(err, &taxErr))
	assert.Equal(t, "variations", taxErr.Field)
}

func TestNew_RejectsEmptyCanonical(t *testing.T) {
	_, err := New([]string{"go", "  "}, nil, nil)
	assert.Error(t, err)
}

func TestForms_OrderAndDedup(t *testing.T) {
	tax, err := New(
		[]string{"python", "go"},
		map[string]string{"golang": "go", "py": "python"},
		map[string][]string{"python": {"Python", "PYTHON", "py3"}},
	)
	require.NoError(t, err)

	forms := tax.Forms()
	texts := make([]string, 0, len(forms))
	for _, f := range forms {
		texts = append(texts, f.Text)
	}
	// "Python" and "PYTHON" collapse into the canonical "python" form.
	assert.Equal(t, []string{"go", "python", "golang", "py", "py3"}, texts)

	assert.Equal(t, KindCanonical, forms[0].Kind)
	assert.Equal(t, KindAlias, forms[2].Kind)
	assert.Equal(t, "go", forms[2].Canonical)
	assert.Equal(t, KindVariation, forms[4].Kind)
	assert.Equal(t, "python", forms[4].Canonical)
}

func TestIsAlias(t *testing.T) {
	tax := Default()
	assert.True(t, tax.IsAlias("sklearn"))
	assert.True(t, tax.IsAlias("SKLEARN"))
	assert.False(t, tax.IsAlias("python"))
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("canonical: [unterminated"))
	require.Error(t, err)

	var taxErr *InvalidTaxonomyError
	assert.True(t, errors.As(err, &taxErr))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taxonomy.yaml")
	data := []byte(`canonical: [go, rust]
aliases:
  golang: go
variations:
  rust: [Rust, RUST]
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	tax, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "rust"}, tax.Canonical())
	assert.Equal(t, "go", tax.Normalize("Golang"))
	assert.Equal(t, "rust", tax.Normalize("RUST"))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "canonical", KindCanonical.String())
	assert.Equal(t, "alias", KindAlias.String())
	assert.Equal(t, "variation", KindVariation.String())
}
