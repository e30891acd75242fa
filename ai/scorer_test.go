package ai

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModel_Score(t *testing.T) {
	model := NewDefaultModel()

	tests := []struct {
		name  string
		text  string
		label string
	}{
		{"Explicit distress", "I want to kill myself", LabelUnsafe},
		{"Punctuation does not hide it", "i want to KILL myself!!!", LabelUnsafe},
		{"Media context", "that suicide squad movie was great", LabelSafe},
		{"Prevention context", "calling a suicide prevention hotline helped", LabelSafe},
		{"Small talk", "hello, how are you?", LabelSafe},
		{"Empty", "", LabelSafe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			score, label := model.Score(tt.text)
			req.Equal(tt.label, label, "score=%f", score)
			req.GreaterOrEqual(score, 0.0)
			req.LessOrEqual(score, 1.0)
		})
	}
}

func TestTokens(t *testing.T) {
	req := require.New(t)
	req.Equal([]string{"don't", "cut", "yourself"}, Tokens("  Don't   CUT, yourself... "))
	req.Empty(Tokens(" !!! "))
}
