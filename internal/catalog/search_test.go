package catalog

import (
	"testing"

	"github.com/greenhaven-store/greenhaven/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Monstera Deliciosa", Category: "indoor-plants", Description: "Perfect for beginners"},
		{ID: 2, Name: "Snake Plant", Category: "indoor-plants", Description: "Low maintenance beauty"},
		{ID: 3, Name: "Olive Tree", Category: "outdoor-plants", Description: "Mediterranean classic"},
		{ID: 4, Name: "Plant Care Kit", Category: "accessories", Description: "Essential care tools & fertilizer"},
		{ID: 5, Name: "Monstera Mini", Category: "indoor-plants", Description: "Compact monstera variety"},
	}
}

func TestScoreNameTiers(t *testing.T) {
	p := domain.Product{Name: "Snake Plant", Category: "indoor-plants"}

	// Exact match wins the top tier, token rules still add up.
	assert.Equal(t, 100+20+20, Score(p, "snake plant"))
	// Prefix match.
	assert.Equal(t, 80+20, Score(p, "snake"))
	// Contains match, not prefix. "plant" also hits the category after
	// hyphen replacement.
	assert.Equal(t, 60+30+20, Score(p, "plant"))
	// No match at all.
	assert.Equal(t, 0, Score(p, "cactus"))
}

func TestScoreDescriptionAndCategory(t *testing.T) {
	p := domain.Product{
		Name:        "Olive Tree",
		Category:    "outdoor-plants",
		Description: "Mediterranean classic",
	}
	// Description contains + token in description.
	assert.Equal(t, 40+10, Score(p, "mediterranean"))
	// Category with hyphens replaced by spaces.
	assert.Equal(t, 30, Score(p, "outdoor"))
	// Short tokens contribute nothing on their own.
	assert.Equal(t, 0, Score(p, "xy"))
}

func TestSearchExactMatchRanksFirst(t *testing.T) {
	results := SearchProducts("Monstera Deliciosa", testCatalog())
	require.NotEmpty(t, results)
	assert.Equal(t, "Monstera Deliciosa", results[0].Name)
}

func TestSearchOrderingAndSubset(t *testing.T) {
	products := testCatalog()
	results := SearchProducts("monstera", products)

	// Results are a subset of the catalog with nonzero score, sorted by
	// non-increasing score.
	require.Len(t, results, 2)
	term := "monstera"
	prev := Score(results[0], term)
	for _, r := range results[1:] {
		s := Score(r, term)
		assert.LessOrEqual(t, s, prev)
		assert.Greater(t, s, 0)
		prev = s
	}
	for _, r := range results {
		assert.Greater(t, Score(r, term), 0)
	}
}

func TestSearchStableTieBreak(t *testing.T) {
	products := []domain.Product{
		{ID: 10, Name: "Fern One", Description: ""},
		{ID: 11, Name: "Fern Two", Description: ""},
		{ID: 12, Name: "Fern Three", Description: ""},
	}
	// All three score identically; original order must be preserved.
	results := SearchProducts("fern", products)
	require.Len(t, results, 3)
	assert.Equal(t, int64(10), results[0].ID)
	assert.Equal(t, int64(11), results[1].ID)
	assert.Equal(t, int64(12), results[2].ID)
}

func TestSearchEmptyQueryReturnsAll(t *testing.T) {
	products := testCatalog()
	results := SearchProducts("   ", products)
	require.Len(t, results, len(products))
	for i := range products {
		assert.Equal(t, products[i].ID, results[i].ID)
	}
}

func TestSearchDeterministic(t *testing.T) {
	products := testCatalog()
	first := SearchProducts("plant care", products)
	second := SearchProducts("plant care", products)
	assert.Equal(t, first, second)
}

func TestSearchZeroScoreExcluded(t *testing.T) {
	results := SearchProducts("bamboo", testCatalog())
	assert.Empty(t, results)
}
