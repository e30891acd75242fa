package search

import (
	"strconv"
	"strings"
)

const DefaultLimit = 20

// Query represents the structured parameters of an incident search.
// It decouples the raw admin input from the actual index engine requirements.
type Query struct {
	RawInput string            // The original input
	Terms    string            // Free text matched against keywords
	Filters  map[string]string // Exact filters: outcome, lang, room
	Limit    int
}

// NewSearchQuery parses a raw string to extract command-line style arguments.
// Example: suicide --outcome unavailable --lang en --limit 5
func NewSearchQuery(input string) *Query {
	query := &Query{
		RawInput: input,
		Filters:  make(map[string]string),
		Limit:    DefaultLimit,
	}

	parts := strings.Fields(input)
	var textTerms []string

	for i := 0; i < len(parts); i++ {
		part := parts[i]

		if strings.HasPrefix(part, "--") && i+1 < len(parts) {
			key := strings.TrimPrefix(part, "--")
			val := parts[i+1]

			switch key {
			case "limit":
				if n, err := strconv.Atoi(val); err == nil && n > 0 {
					query.Limit = n
				}
			case "outcome", "lang", "room":
				query.Filters[key] = strings.ToLower(val)
			}
			i++ // Skip the value part in next iteration
			continue
		}

		textTerms = append(textTerms, part)
	}

	query.Terms = strings.Join(textTerms, " ")
	return query
}

func (q *Query) IsEmpty() bool {
	return q.Terms == "" && len(q.Filters) == 0
}
