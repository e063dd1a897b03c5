package catalog

import (
	"sort"
	"strings"

	"github.com/greenhaven-store/greenhaven/internal/domain"
)

// Relevance scoring weights. Name tiers are mutually exclusive; all other
// rules are additive.
const (
	scoreNameExact    = 100
	scoreNamePrefix   = 80
	scoreNameContains = 60
	scoreDescription  = 40
	scoreCategory     = 30
	scoreNameToken    = 20
	scoreDescToken    = 10
	minTokenLen       = 3
)

// Score computes the additive relevance of a product against a lowercased,
// trimmed search term. A zero score means no match.
func Score(p domain.Product, term string) int {
	name := strings.ToLower(p.Name)
	description := strings.ToLower(p.Description)
	category := strings.ReplaceAll(strings.ToLower(p.Category), "-", " ")

	score := 0
	switch {
	case name == term:
		score += scoreNameExact
	case strings.HasPrefix(name, term):
		score += scoreNamePrefix
	case strings.Contains(name, term):
		score += scoreNameContains
	}

	if strings.Contains(description, term) {
		score += scoreDescription
	}
	if strings.Contains(category, term) {
		score += scoreCategory
	}

	for _, word := range strings.Fields(term) {
		if len(word) < minTokenLen {
			continue
		}
		if strings.Contains(name, word) {
			score += scoreNameToken
		}
		if strings.Contains(description, word) {
			score += scoreDescToken
		}
	}
	return score
}

// SearchProducts ranks products against a free-text query and returns the
// matches ordered by descending relevance. Ties keep the original collection
// order. An empty query returns the collection unchanged. The function is
// pure and deterministic for identical inputs.
func SearchProducts(query string, products []domain.Product) []domain.Product {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		out := make([]domain.Product, len(products))
		copy(out, products)
		return out
	}

	type scored struct {
		product domain.Product
		score   int
	}
	results := make([]scored, 0, len(products))
	for _, p := range products {
		if s := Score(p, term); s > 0 {
			results = append(results, scored{product: p, score: s})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	out := make([]domain.Product, len(results))
	for i, r := range results {
		out[i] = r.product
	}
	return out
}
