// Package textanalysis cleans free-text survey answers and derives word counts,
// sentiment distributions and keyword frequencies from them.
//
// Sentiment and tokenization come from an Engine chosen once at start-up:
//
//   - LexiconEngine scores polarity with a word lexicon (negation and
//     intensifier aware), splits punctuation into separate tokens and filters
//     an extended English stopword list.
//   - BasicEngine is the deterministic fallback used when no lexicon is
//     available: whitespace tokenization, a 14 word stopword set and a
//     polarity of zero for every text, so every text classifies as neutral.
//
// Example usage:
//
//	engine := textanalysis.NewEngine(cfg.Analysis, logger)
//	analyzer := textanalysis.NewAnalyzer(engine, cfg.Analysis.MaxKeywords)
//	result := analyzer.AnalyzeTextSet([]string{"Great support", "slow checkout"})
//
// All functions are pure and safe for concurrent use.
package textanalysis
