package ai

import (
	"hash/fnv"
	"strings"
	"unicode"
)

// Vectorizer maps text to a fixed-size bag-of-words vector with the hashing trick.
type Vectorizer struct {
	size int
}

func NewVectorizer(size int) *Vectorizer {
	return &Vectorizer{size: size}
}

// Features returns a binary vector: 1.0 at the bucket of every token present.
// Tokens are lower-cased and stripped of surrounding punctuation, so "myself!" is "myself".
func (v *Vectorizer) Features(text string) []float64 {
	vec := make([]float64, v.size)
	for _, token := range Tokens(text) {
		vec[v.Index(token)] = 1.0
	}
	return vec
}

func (v *Vectorizer) Index(token string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(token))
	return int(h.Sum32()) % v.size
}

func Tokens(text string) []string {
	var tokens []string
	for _, field := range strings.Fields(strings.ToLower(text)) {
		token := strings.TrimFunc(field, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}
