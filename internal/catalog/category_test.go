package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorySlug(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"indoor-plants", "indoor-plants"},
		{"plantes-interieur", "indoor-plants"},
		{"Indoor Plants", "indoor-plants"},
		{"ACCESSOIRES", "accessories"},
		{"Plant Care", "care-products"},
		{"produits-entretien", "care-products"},
		{"plantes-exterieur", "outdoor-plants"},
		{"unknown-thing", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CategorySlug(tc.input), "input %q", tc.input)
	}
}

func TestCategorySlugIdempotent(t *testing.T) {
	for _, slug := range CategorySlugs() {
		assert.Equal(t, slug, CategorySlug(slug))
		assert.Equal(t, slug, CategorySlug(CategorySlug(slug)))
	}
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Plantes d'Intérieur", CategoryLabel("indoor-plants"))
	assert.Equal(t, "Plantes d'Intérieur", CategoryLabel("plantes-interieur"))
	assert.Equal(t, "Accessoires", CategoryLabel("accessoires"))

	// Unknown slugs fall back to a prettified form.
	assert.Equal(t, "Gift Cards", CategoryLabel("gift-cards"))
	assert.Equal(t, "Pots", CategoryLabel("pots"))
	assert.Equal(t, "", CategoryLabel(""))
}
