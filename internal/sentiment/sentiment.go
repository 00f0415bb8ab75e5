// Package sentiment defines the polarity-scoring contract used by the
// annotation stage and ships a deterministic lexicon-based scorer as
// the default implementation. The pipeline treats any Scorer as a
// black box: total over strings, result in [-1, 1], empty text neutral.
package sentiment

// Scorer computes a polarity score for a piece of review text.
// Implementations must be total over strings: every input, including
// the empty string, yields a score in [-1, 1]. Empty text must score
// 0 (neutral).
type Scorer interface {
	Score(text string) float64
}

// ScorerFunc adapts a plain function to the Scorer interface.
type ScorerFunc func(text string) float64

// Score implements Scorer
func (f ScorerFunc) Score(text string) float64 {
	return f(text)
}

// Clamp bounds a score to the valid [-1, 1] polarity range.
func Clamp(score float64) float64 {
	if score > 1 {
		return 1
	}
	if score < -1 {
		return -1
	}
	return score
}
