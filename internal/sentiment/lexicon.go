package sentiment

import (
	"strings"
	"unicode"
)

// LexiconScorer scores text by averaging the polarity of matched
// lexicon words, flipping the sign of a word preceded by a negator.
// Tokens that match no lexicon entry contribute nothing; text with no
// matches scores 0.
type LexiconScorer struct {
	polarity map[string]float64
	negators map[string]bool
}

// NewLexiconScorer creates a scorer backed by the built-in lexicon.
func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{
		polarity: defaultLexicon,
		negators: defaultNegators,
	}
}

// Score implements Scorer.
func (l *LexiconScorer) Score(text string) float64 {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return 0
	}

	var sum float64
	var matched int
	negate := false

	for _, token := range tokens {
		if l.negators[token] {
			negate = true
			continue
		}

		score, ok := l.polarity[token]
		if !ok {
			negate = false
			continue
		}

		if negate {
			score = -score
			negate = false
		}
		sum += score
		matched++
	}

	if matched == 0 {
		return 0
	}
	return Clamp(sum / float64(matched))
}

// tokenize lower-cases the text and splits it on any run of
// non-alphanumeric characters.
func tokenize(text string) []string {
	text = strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Fields(b.String())
}

var defaultNegators = map[string]bool{
	"not":     true,
	"no":      true,
	"never":   true,
	"nothing": true,
	"hardly":  true,
	"barely":  true,
	"dont":    true,
	"doesnt":  true,
	"didnt":   true,
	"wont":    true,
	"cant":    true,
	"isnt":    true,
	"wasnt":   true,
}

var defaultLexicon = map[string]float64{
	// Positive
	"amazing":      0.9,
	"awesome":      0.9,
	"beautiful":    0.8,
	"best":         0.9,
	"brilliant":    0.9,
	"comfortable":  0.6,
	"excellent":    0.9,
	"fantastic":    0.9,
	"favorite":     0.8,
	"flawless":     0.9,
	"fresh":        0.5,
	"gentle":       0.5,
	"glowing":      0.7,
	"good":         0.6,
	"great":        0.8,
	"happy":        0.7,
	"healthy":      0.5,
	"hydrating":    0.6,
	"impressed":    0.7,
	"incredible":   0.9,
	"lightweight":  0.4,
	"love":         0.8,
	"loved":        0.8,
	"lovely":       0.7,
	"moisturizing": 0.5,
	"nice":         0.5,
	"perfect":      0.9,
	"pleasant":     0.6,
	"recommend":    0.6,
	"refreshing":   0.6,
	"silky":        0.5,
	"smooth":       0.5,
	"soft":         0.5,
	"soothing":     0.6,
	"wonderful":    0.9,
	"works":        0.4,
	"worth":        0.5,

	// Neutral-ish
	"decent": 0.3,
	"fine":   0.2,
	"okay":   0.2,
	"ok":     0.2,

	// Negative
	"awful":         -0.9,
	"bad":           -0.6,
	"breakout":      -0.7,
	"broke":         -0.6,
	"burned":        -0.8,
	"burning":       -0.8,
	"cheap":         -0.4,
	"disappointed":  -0.7,
	"disappointing": -0.7,
	"dry":           -0.4,
	"expensive":     -0.3,
	"greasy":        -0.5,
	"harsh":         -0.6,
	"hate":          -0.8,
	"hated":         -0.8,
	"horrible":      -0.9,
	"irritated":     -0.7,
	"irritating":    -0.7,
	"itchy":         -0.6,
	"mediocre":      -0.4,
	"oily":          -0.4,
	"overpriced":    -0.5,
	"poor":          -0.6,
	"rash":          -0.7,
	"return":        -0.4,
	"returned":      -0.5,
	"sticky":        -0.4,
	"terrible":      -0.9,
	"useless":       -0.8,
	"waste":         -0.7,
	"worst":         -1.0,
}
