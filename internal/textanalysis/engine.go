package textanalysis

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"surveypulse/internal/config"
)

// Engine is the sentiment and tokenization capability behind an Analyzer
type Engine interface {
	// Name identifies the engine in logs and health output
	Name() string
	// Tokenize splits lower-cased text into word and punctuation tokens
	Tokenize(text string) []string
	// Polarity scores text in [-1, 1]
	Polarity(text string) float64
	// IsStopword reports whether a lower-cased token should be ignored
	IsStopword(token string) bool
}

// NewEngine selects the engine configured for the process. A lexicon engine
// whose resource files cannot be read degrades to the basic engine.
func NewEngine(cfg config.AnalysisConfig, logger *slog.Logger) Engine {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "text_engine"))

	if strings.ToLower(cfg.TextEngine) == config.TextEngineBasic {
		logger.Info("Using basic text engine")
		return NewBasicEngine()
	}

	lexicon := defaultLexicon
	if cfg.LexiconFile != "" {
		loaded, err := LoadLexicon(cfg.LexiconFile)
		if err != nil {
			logger.Warn("Lexicon unavailable, falling back to basic text engine",
				slog.String("lexicon_file", cfg.LexiconFile),
				slog.String("error", err.Error()))
			return NewBasicEngine()
		}
		lexicon = loaded
	}

	stopwords := extendedStopwords
	if cfg.StopwordsFile != "" {
		loaded, err := LoadStopwords(cfg.StopwordsFile)
		if err != nil {
			logger.Warn("Stopword list unavailable, falling back to basic text engine",
				slog.String("stopwords_file", cfg.StopwordsFile),
				slog.String("error", err.Error()))
			return NewBasicEngine()
		}
		stopwords = loaded
	}

	logger.Info("Using lexicon text engine",
		slog.Int("lexicon_size", len(lexicon)),
		slog.Int("stopword_count", len(stopwords)))

	return NewLexiconEngine(lexicon, stopwords)
}

// LoadStopwords reads one stopword per line. Blank lines and lines starting
// with # are ignored.
func LoadStopwords(path string) (map[string]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stopwords file: %w", err)
	}
	defer f.Close()

	words := make(map[string]struct{})
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words[strings.ToLower(line)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stopwords file: %w", err)
	}
	return words, nil
}

// LoadLexicon reads "word<TAB>score" lines with AFINN style integer scores
// in [-5, 5] and normalizes them to [-1, 1].
func LoadLexicon(path string) (map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open lexicon file: %w", err)
	}
	defer f.Close()

	lexicon := make(map[string]float64)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.LastIndexAny(line, "\t ")
		if idx <= 0 {
			return nil, fmt.Errorf("lexicon line %d: expected word and score", lineNo)
		}
		score, err := strconv.ParseFloat(strings.TrimSpace(line[idx+1:]), 64)
		if err != nil {
			return nil, fmt.Errorf("lexicon line %d: %w", lineNo, err)
		}
		lexicon[strings.ToLower(strings.TrimSpace(line[:idx]))] = clamp(score/5, -1, 1)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lexicon file: %w", err)
	}
	if len(lexicon) == 0 {
		return nil, fmt.Errorf("lexicon file %s is empty", path)
	}
	return lexicon, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
