package moderation

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"mood-chat/contract"
	"mood-chat/domain"
	"mood-chat/errors"
	"sync/atomic"
	"time"

	"github.com/abadojack/whatlanggo"
)

const (
	DefaultClassifierTimeout = 2 * time.Second
	DefaultUnsafeThreshold   = 0.8

	LabelSafe   = "safe"
	LabelUnsafe = "unsafe"
)

// Decision is the outcome of the gate for one message.
type Decision struct {
	Verdict   domain.Verdict
	Keywords  []string
	Escalated bool
	Outcome   domain.Outcome
	Score     float64
	Lang      string
	Latency   time.Duration
}

// Gate admits or rejects outgoing messages in two tiers: a local keyword match,
// then, only on a hit, the external classifier. Any classifier failure closes
// the gate.
type Gate struct {
	log        *slog.Logger
	matcher    atomic.Pointer[KeywordMatcher]
	classifier contract.Classifier
	timeout    time.Duration
	threshold  float64
}

func NewGate(log *slog.Logger, matcher *KeywordMatcher, classifier contract.Classifier,
	timeout time.Duration, threshold float64) *Gate {
	if timeout <= 0 {
		timeout = DefaultClassifierTimeout
	}
	if threshold <= 0 {
		threshold = DefaultUnsafeThreshold
	}
	g := &Gate{log: log, classifier: classifier, timeout: timeout, threshold: threshold}
	g.matcher.Store(matcher)
	return g
}

// Reload swaps the keyword list without interrupting in-flight classifications.
func (g *Gate) Reload(phrases []string) error {
	matcher, err := NewKeywordMatcher(phrases)
	if err != nil {
		return err
	}
	g.matcher.Store(matcher)
	g.log.Info("Keyword list reloaded", "phrases", len(phrases))
	return nil
}

func (g *Gate) Phrases() []string {
	return g.matcher.Load().Phrases()
}

// Classify never holds any session state; it may block up to the classifier timeout.
func (g *Gate) Classify(ctx context.Context, text string) Decision {
	keywords := g.matcher.Load().Match(text)
	if len(keywords) == 0 {
		return Decision{Verdict: domain.Safe}
	}

	decision := Decision{
		Keywords:  keywords,
		Escalated: true,
		Lang:      whatlanggo.Detect(text).Lang.Iso6391(),
	}

	start := time.Now()
	classification, err := g.escalate(ctx, text)
	latency := time.Since(start)
	decision.Latency = latency

	if err != nil {
		g.log.Warn("Classifier unavailable, failing closed",
			"error", err,
			"keywords", keywords,
			"latency_ms", latency.Milliseconds())
		decision.Verdict = domain.Unsafe
		decision.Outcome = domain.OutcomeUnavailable
		return decision
	}

	decision.Score = classification.Score
	if classification.Label == LabelUnsafe || classification.Score >= g.threshold {
		decision.Verdict = domain.Unsafe
		decision.Outcome = domain.OutcomeUnsafe
	} else {
		decision.Verdict = domain.Safe
		decision.Outcome = domain.OutcomeCleared
	}
	g.log.Debug("Classifier decision",
		"outcome", decision.Outcome,
		"score", classification.Score,
		"lang", decision.Lang,
		"latency_ms", latency.Milliseconds())
	return decision
}

func (g *Gate) escalate(ctx context.Context, text string) (contract.Classification, error) {
	if g.classifier == nil {
		return contract.Classification{}, errors.ErrClassifierUnavailable
	}
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	classification, err := g.classifier.Classify(ctx, text)
	if err != nil {
		return contract.Classification{}, fmt.Errorf("%w: %v", errors.ErrClassifierUnavailable, err)
	}
	if err := validate(classification); err != nil {
		return contract.Classification{}, err
	}
	return classification, nil
}

func validate(c contract.Classification) error {
	if math.IsNaN(c.Score) || c.Score < 0 || c.Score > 1 {
		return fmt.Errorf("%w: score %v", errors.ErrMalformedClassification, c.Score)
	}
	switch c.Label {
	case LabelSafe, LabelUnsafe:
		return nil
	default:
		return fmt.Errorf("%w: label %q", errors.ErrMalformedClassification, c.Label)
	}
}
