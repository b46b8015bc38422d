package jobinsights

import (
	"sort"
	"strings"

	"github.com/goliatone/go-roadmap/pkg/model"
)

// Search returns the titles containing query, prefix matches first. An empty
// query returns the first titles in catalog order.
func Search(titles []string, query string, limit int, opts Options) []string {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if len(titles) <= limit {
			return append([]string{}, titles...)
		}
		return append([]string{}, titles[:limit]...)
	}

	q := strings.ToLower(query)
	matches := make([]matchedTitle, 0, len(titles))
	for _, title := range titles {
		lower := strings.ToLower(title)
		if !strings.Contains(lower, q) {
			continue
		}
		matches = append(matches, matchedTitle{
			name:     title,
			isPrefix: strings.HasPrefix(lower, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].name < matches[j].name
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]string, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.name)
	}
	return out
}

// SearchOptions wraps Search results as select options labelled in title case.
func SearchOptions(titles []string, query string, limit int, opts Options) []model.Option {
	results := Search(titles, query, limit, opts)
	if len(results) == 0 {
		return nil
	}

	out := make([]model.Option, 0, len(results))
	for _, title := range results {
		out = append(out, model.Option{Value: title, Label: titleCase(title)})
	}
	return out
}

func titleCase(value string) string {
	words := strings.Fields(value)
	for i, word := range words {
		if len(word) <= 2 {
			words[i] = strings.ToUpper(word)
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

type matchedTitle struct {
	name     string
	isPrefix bool
}
