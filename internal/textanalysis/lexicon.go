package textanalysis

import (
	"strings"
	"unicode"
)

const (
	negationFactor    = -0.5
	intensifierFactor = 1.5
)

var negators = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "none": {}, "nobody": {}, "nothing": {},
	"neither": {}, "nor": {}, "cannot": {}, "dont": {}, "didnt": {}, "doesnt": {},
	"isnt": {}, "wasnt": {}, "wont": {}, "cant": {}, "hardly": {},
}

var intensifiers = map[string]struct{}{
	"very": {}, "really": {}, "extremely": {}, "so": {}, "super": {}, "incredibly": {},
	"absolutely": {}, "totally": {}, "highly": {}, "quite": {}, "too": {},
}

// LexiconEngine scores polarity as the mean lexicon score of the opinion
// words in a text, flipping and damping scores after a negator and boosting
// them after an intensifier.
type LexiconEngine struct {
	lexicon   map[string]float64
	stopwords map[string]struct{}
}

// NewLexiconEngine creates a lexicon engine. Lexicon scores must already be
// normalized to [-1, 1].
func NewLexiconEngine(lexicon map[string]float64, stopwords map[string]struct{}) *LexiconEngine {
	return &LexiconEngine{lexicon: lexicon, stopwords: stopwords}
}

// Name implements Engine
func (e *LexiconEngine) Name() string { return "lexicon" }

// Tokenize splits text into words and standalone punctuation tokens.
// Hyphens and decimal points stay inside a token when both neighbours are
// letters or digits.
func (e *LexiconEngine) Tokenize(text string) []string {
	runes := []rune(text)
	tokens := make([]string, 0, len(runes)/4)
	var current []rune

	flush := func() {
		if len(current) > 0 {
			tokens = append(tokens, string(current))
			current = current[:0]
		}
	}

	for i, r := range runes {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			current = append(current, r)
		case unicode.IsSpace(r):
			flush()
		case (r == '-' || r == '.' || r == ',') && joinsWord(runes, i, r):
			current = append(current, r)
		default:
			flush()
			tokens = append(tokens, string(r))
		}
	}
	flush()

	return tokens
}

func joinsWord(runes []rune, i int, r rune) bool {
	if i == 0 || i == len(runes)-1 {
		return false
	}
	prev, next := runes[i-1], runes[i+1]
	if r == '-' {
		return isWordRune(prev) && isWordRune(next)
	}
	return unicode.IsDigit(prev) && unicode.IsDigit(next)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Polarity implements Engine
func (e *LexiconEngine) Polarity(text string) float64 {
	tokens := e.Tokenize(strings.ToLower(text))

	var sum float64
	var scored int
	for i, tok := range tokens {
		score, ok := e.lexicon[tok]
		if !ok {
			continue
		}

		j := i - 1
		if j >= 0 {
			if _, ok := intensifiers[tokens[j]]; ok {
				score = clamp(score*intensifierFactor, -1, 1)
				j--
			}
		}
		if j >= 0 {
			if _, ok := negators[tokens[j]]; ok {
				score *= negationFactor
			}
		}

		sum += score
		scored++
	}

	if scored == 0 {
		return 0
	}
	return clamp(sum/float64(scored), -1, 1)
}

// IsStopword implements Engine
func (e *LexiconEngine) IsStopword(token string) bool {
	_, ok := e.stopwords[token]
	return ok
}

// defaultLexicon is a compact opinion lexicon tuned for survey feedback.
// Scores are AFINN style values divided by 5.
var defaultLexicon = map[string]float64{
	// positive
	"amazing": 0.8, "awesome": 0.8, "excellent": 0.8, "outstanding": 1.0, "perfect": 0.6,
	"fantastic": 0.8, "wonderful": 0.8, "superb": 1.0, "brilliant": 0.8, "great": 0.6,
	"good": 0.6, "nice": 0.6, "love": 0.6, "loved": 0.6, "like": 0.4, "liked": 0.4,
	"enjoy": 0.4, "enjoyed": 0.4, "happy": 0.6, "pleased": 0.6, "satisfied": 0.4,
	"helpful": 0.4, "useful": 0.4, "easy": 0.2, "intuitive": 0.4, "friendly": 0.4,
	"fast": 0.2, "quick": 0.2, "clear": 0.2, "smooth": 0.4, "reliable": 0.4,
	"recommend": 0.4, "recommended": 0.4, "best": 0.6, "better": 0.4, "impressive": 0.6,
	"convenient": 0.4, "efficient": 0.4, "responsive": 0.4, "professional": 0.4,
	"thanks": 0.4, "thank": 0.4, "appreciate": 0.4, "glad": 0.6, "delighted": 0.6,
	"fine": 0.2, "ok": 0.2, "okay": 0.2, "positive": 0.4, "fair": 0.4, "valuable": 0.4,
	"comfortable": 0.4, "affordable": 0.4, "improved": 0.4, "works": 0.2, "fun": 0.8,
	// negative
	"bad": -0.6, "terrible": -0.6, "awful": -0.6, "horrible": -0.6, "worst": -0.6,
	"poor": -0.4, "hate": -0.6, "hated": -0.6, "dislike": -0.4, "disliked": -0.4,
	"slow": -0.4, "confusing": -0.4, "confused": -0.4, "difficult": -0.2, "hard": -0.2,
	"broken": -0.4, "bug": -0.4, "bugs": -0.4, "buggy": -0.4, "crash": -0.4, "crashes": -0.4,
	"error": -0.4, "errors": -0.4, "fail": -0.4, "failed": -0.4, "failure": -0.4,
	"annoying": -0.4, "annoyed": -0.4, "frustrating": -0.4, "frustrated": -0.4,
	"disappointed": -0.4, "disappointing": -0.4, "useless": -0.4, "expensive": -0.2,
	"problem": -0.4, "problems": -0.4, "issue": -0.2, "issues": -0.2, "unhappy": -0.4,
	"rude": -0.4, "unhelpful": -0.4, "complicated": -0.4, "waste": -0.4, "worse": -0.6,
	"angry": -0.6, "sad": -0.4, "negative": -0.4, "unclear": -0.2, "late": -0.2,
	"missing": -0.4, "lacking": -0.4, "boring": -0.6, "ugly": -0.6, "unreliable": -0.4,
}
