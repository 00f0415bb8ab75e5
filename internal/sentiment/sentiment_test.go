//nolint:testpackage // requires internal access to unexported types and functions
package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLexiconScorerBounds(t *testing.T) {
	scorer := NewLexiconScorer()

	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace only", "   \t\n"},
		{"no lexicon matches", "the quick brown fox"},
		{"strongly positive", "amazing perfect wonderful best incredible"},
		{"strongly negative", "worst terrible horrible awful useless"},
		{"mixed", "love the texture but terrible smell"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := scorer.Score(tt.text)
			assert.GreaterOrEqual(t, score, -1.0)
			assert.LessOrEqual(t, score, 1.0)
		})
	}
}

func TestLexiconScorerNeutralOnEmpty(t *testing.T) {
	scorer := NewLexiconScorer()
	assert.Zero(t, scorer.Score(""))
	assert.Zero(t, scorer.Score("the and of"))
}

func TestLexiconScorerPolarity(t *testing.T) {
	scorer := NewLexiconScorer()

	assert.Positive(t, scorer.Score("love it"))
	assert.Positive(t, scorer.Score("Absolutely AMAZING product!"))
	assert.Negative(t, scorer.Score("terrible"))
	assert.Negative(t, scorer.Score("complete waste, returned it"))
}

func TestLexiconScorerNegation(t *testing.T) {
	scorer := NewLexiconScorer()

	assert.Negative(t, scorer.Score("not good"))
	assert.Positive(t, scorer.Score("not bad"))
}

func TestLexiconScorerDeterministic(t *testing.T) {
	scorer := NewLexiconScorer()
	text := "great scent, a bit greasy but worth it"
	first := scorer.Score(text)
	for i := 0; i < 10; i++ {
		assert.InDelta(t, first, scorer.Score(text), 1e-12)
	}
}

func TestScorerFunc(t *testing.T) {
	constant := ScorerFunc(func(string) float64 { return 0.25 })
	assert.InDelta(t, 0.25, constant.Score("anything"), 1e-12)
}

func TestClamp(t *testing.T) {
	assert.InDelta(t, 1.0, Clamp(3.2), 1e-12)
	assert.InDelta(t, -1.0, Clamp(-2.0), 1e-12)
	assert.InDelta(t, 0.4, Clamp(0.4), 1e-12)
}
