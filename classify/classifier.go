package classify

import "strings"

// DefaultCategory is chosen when no keyword of any category matches
const DefaultCategory = "tech"

// Category is a named keyword list
type Category struct {
	Name     string
	Keywords []string
}

// Table is an immutable, ordered category -> keyword lookup.
// Order matters: ties between categories resolve to the earlier one.
type Table struct {
	categories []Category
	index      map[string]int
	fallback   string
}

// NewTable builds a table from categories in priority order.
// fallback names the category returned when nothing matches.
func NewTable(fallback string, categories ...Category) Table {
	t := Table{
		categories: make([]Category, 0, len(categories)),
		index:      make(map[string]int, len(categories)),
		fallback:   fallback,
	}
	for _, c := range categories {
		kws := make([]string, len(c.Keywords))
		for i, kw := range c.Keywords {
			kws[i] = strings.ToLower(kw)
		}
		t.index[c.Name] = len(t.categories)
		t.categories = append(t.categories, Category{Name: c.Name, Keywords: kws})
	}
	return t
}

// DefaultTable returns the built-in ai/tech/research table
func DefaultTable() Table {
	return NewTable(DefaultCategory,
		Category{Name: "ai", Keywords: []string{
			"llm", "gpt", "transformer", "machine learning", "deep learning",
			"neural", "ai", "fine-tuning", "rag", "embedding", "prompt",
			"diffusion", "generative", "chatbot", "copilot", "langchain",
			"openai", "anthropic", "claude", "gemini", "llama", "mistral",
		}},
		Category{Name: "tech", Keywords: []string{
			"docker", "kubernetes", "python", "rust", "typescript", "devops",
			"cloud", "api", "database", "microservices", "cicd", "linux",
			"security", "wasm", "edge", "serverless", "terraform",
		}},
		Category{Name: "research", Keywords: []string{
			"arxiv", "paper", "benchmark", "dataset", "model", "training",
			"inference", "scaling", "alignment", "evaluation", "survey",
			"attention", "reasoning", "multimodal",
		}},
	)
}

// Default returns the fallback category
func (t Table) Default() string { return t.fallback }

// Names returns category names in priority order
func (t Table) Names() []string {
	names := make([]string, len(t.categories))
	for i, c := range t.categories {
		names[i] = c.Name
	}
	return names
}

// Has reports whether the table knows the category
func (t Table) Has(category string) bool {
	_, ok := t.index[category]
	return ok
}

// Matches counts how many keywords of category occur in text.
// Each keyword counts once no matter how often it appears.
func (t Table) Matches(text, category string) int {
	i, ok := t.index[category]
	if !ok {
		return 0
	}
	return countKeywords(strings.ToLower(text), t.categories[i].Keywords)
}

// Classify returns the category with the most keyword matches in text
func (t Table) Classify(text string) string {
	lower := strings.ToLower(text)
	best, bestCount := "", -1
	for _, c := range t.categories {
		n := countKeywords(lower, c.Keywords)
		if n > bestCount {
			best, bestCount = c.Name, n
		}
	}
	if bestCount <= 0 {
		return t.fallback
	}
	return best
}

// ResolveCategory applies the feed-level category hint.
// The hint replaces the classifier's pick only when that pick is the
// fallback category and the hint names something else.
func ResolveCategory(classified, feedCategory, fallback string) string {
	if classified == fallback && feedCategory != "" && feedCategory != fallback {
		return feedCategory
	}
	return classified
}

func countKeywords(lower string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			n++
		}
	}
	return n
}
