package moderation

import (
	"mood-chat/domain"
	"mood-chat/errors"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/samber/lo"
)

// KeywordMatcher finds crisis phrases inside a message, case-insensitively.
type KeywordMatcher struct {
	matcher *goahocorasick.Machine
	phrases []string
}

// NewKeywordMatcher initializes the Aho-Corasick automaton with the normalized phrases.
// Phrases that normalize to nothing are skipped.
func NewKeywordMatcher(phrases []string) (*KeywordMatcher, error) {
	normalized := lo.Uniq(lo.FilterMap(phrases, func(p string, _ int) (string, bool) {
		n := domain.NormalizePhrase(p)
		return n, n != ""
	}))
	if len(normalized) == 0 {
		return nil, errors.ErrEmptyWords
	}

	patterns := lo.Map(normalized, func(p string, _ int) []rune { return []rune(p) })
	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &KeywordMatcher{matcher: m, phrases: normalized}, nil
}

// Match returns the distinct phrases found in text, in order of first appearance.
func (m *KeywordMatcher) Match(text string) []string {
	content := []rune(domain.NormalizePhrase(text))
	if len(content) == 0 {
		return nil
	}
	terms := m.matcher.MultiPatternSearch(content, false)
	if len(terms) == 0 {
		return nil
	}
	return lo.Uniq(lo.Map(terms, func(t *goahocorasick.Term, _ int) string {
		return string(t.Word)
	}))
}

func (m *KeywordMatcher) Phrases() []string {
	return append([]string(nil), m.phrases...)
}
