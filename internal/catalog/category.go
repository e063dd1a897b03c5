package catalog

import "strings"

// categorySlugMap maps bilingual display labels, legacy slugs and canonical
// slugs to the single canonical slug used as the storage/query key.
var categorySlugMap = map[string]string{
	"indoor-plants":      "indoor-plants",
	"plantes-interieur":  "indoor-plants",
	"indoor plants":      "indoor-plants",
	"outdoor-plants":     "outdoor-plants",
	"plantes-exterieur":  "outdoor-plants",
	"outdoor plants":     "outdoor-plants",
	"accessories":        "accessories",
	"accessoires":        "accessories",
	"care-products":      "care-products",
	"produits-entretien": "care-products",
	"plant care":         "care-products",
}

var categoryLabels = map[string]string{
	"indoor-plants":  "Plantes d'Intérieur",
	"outdoor-plants": "Plantes d'Extérieur",
	"accessories":    "Accessoires",
	"care-products":  "Produits d'Entretien",
}

// CategorySlug maps an arbitrary category input to its canonical slug.
// Matching is a case-insensitive exact lookup; unknown input yields "".
func CategorySlug(input string) string {
	if input == "" {
		return ""
	}
	if slug, ok := categorySlugMap[input]; ok {
		return slug
	}
	return categorySlugMap[strings.ToLower(input)]
}

// CategoryLabel returns the localized display label for a category input,
// falling back to a prettified form of the slug when no label exists.
func CategoryLabel(input string) string {
	slug := CategorySlug(input)
	if slug == "" {
		slug = input
	}
	if label, ok := categoryLabels[slug]; ok {
		return label
	}
	return prettifySlug(slug)
}

// CategorySlugs returns every canonical category slug.
func CategorySlugs() []string {
	return []string{"indoor-plants", "outdoor-plants", "accessories", "care-products"}
}

func prettifySlug(slug string) string {
	words := strings.Split(strings.ReplaceAll(slug, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
