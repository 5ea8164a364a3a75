package textanalysis

import "strings"

// basicStopwords is the minimal stopword set used without a full stopword list
var basicStopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
}

// BasicEngine is the deterministic fallback engine. It has no sentiment
// model, so every text scores 0 and classifies as neutral.
type BasicEngine struct{}

// NewBasicEngine creates the fallback engine
func NewBasicEngine() *BasicEngine {
	return &BasicEngine{}
}

// Name implements Engine
func (e *BasicEngine) Name() string { return "basic" }

// Tokenize splits on whitespace only
func (e *BasicEngine) Tokenize(text string) []string {
	return strings.Fields(text)
}

// Polarity always reports neutral
func (e *BasicEngine) Polarity(string) float64 { return 0 }

// IsStopword implements Engine
func (e *BasicEngine) IsStopword(token string) bool {
	_, ok := basicStopwords[token]
	return ok
}
