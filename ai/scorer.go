// Package ai is the reference content-safety model served by cmd/classifier.
// It is a hashed linear model over a small weighted lexicon: good enough to
// exercise the classifier boundary, not a moderation policy.
package ai

import "math"

const (
	DefaultFeatures  = 4096
	DefaultBias      = -2.0
	DefaultThreshold = 0.8

	LabelSafe   = "safe"
	LabelUnsafe = "unsafe"
)

// Signal is a token and its contribution to the logit.
type Signal struct {
	Term   string
	Weight float64
}

// DefaultLexicon raises the score on distress vocabulary and lowers it on
// context that usually means fiction, media or prevention.
var DefaultLexicon = []Signal{
	{"kill", 2.2}, {"myself", 1.4}, {"suicide", 2.6}, {"suicidal", 2.8},
	{"die", 1.8}, {"dead", 1.2}, {"hurt", 1.4}, {"harm", 1.6}, {"cut", 1.2},
	{"pills", 1.8}, {"overdose", 2.4}, {"hopeless", 1.6}, {"worthless", 1.4},
	{"goodbye", 1.0}, {"tonight", 0.6}, {"want", 0.4}, {"end", 0.6}, {"life", 0.6},
	{"mourir", 1.8}, {"tuer", 2.2},
	{"movie", -2.5}, {"film", -2.5}, {"squad", -2.5}, {"song", -2.0},
	{"game", -2.0}, {"joke", -2.0}, {"lol", -1.5}, {"prevention", -2.5},
	{"hotline", -2.0}, {"book", -1.5},
}

// Model scores a message in [0,1].
type Model struct {
	vectorizer *Vectorizer
	weights    []float64
	bias       float64
	threshold  float64
}

func NewModel(size int, lexicon []Signal, bias, threshold float64) *Model {
	v := NewVectorizer(size)
	weights := make([]float64, size)
	for _, s := range lexicon {
		weights[v.Index(s.Term)] += s.Weight
	}
	return &Model{vectorizer: v, weights: weights, bias: bias, threshold: threshold}
}

func NewDefaultModel() *Model {
	return NewModel(DefaultFeatures, DefaultLexicon, DefaultBias, DefaultThreshold)
}

// Score returns the probability that text is unsafe and the matching label.
func (m *Model) Score(text string) (float64, string) {
	z := m.bias
	for i, x := range m.vectorizer.Features(text) {
		if x != 0 {
			z += m.weights[i] * x
		}
	}
	score := 1 / (1 + math.Exp(-z))
	if score >= m.threshold {
		return score, LabelUnsafe
	}
	return score, LabelSafe
}
