package textanalysis

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveypulse/internal/config"
	"surveypulse/pkg/contracts/domain"
)

func newTestAnalyzer() *Analyzer {
	return NewAnalyzer(NewLexiconEngine(defaultLexicon, extendedStopwords), 10)
}

func TestExtractKeywords_RanksByCount(t *testing.T) {
	for name, engine := range map[string]Engine{
		"lexicon": NewLexiconEngine(defaultLexicon, extendedStopwords),
		"basic":   NewBasicEngine(),
	} {
		t.Run(name, func(t *testing.T) {
			a := NewAnalyzer(engine, 10)
			keywords := a.ExtractKeywords([]string{"great great service", "great support"}, 2)

			require.Len(t, keywords, 2)
			assert.Equal(t, "great", keywords[0].Word)
			assert.Equal(t, 3, keywords[0].Count)
			assert.Equal(t, 60.0, keywords[0].Relevance)

			// service and support tie; service was seen first
			assert.Equal(t, "service", keywords[1].Word)
			assert.Equal(t, 20.0, keywords[1].Relevance)
		})
	}
}

func TestExtractKeywords_RelevanceUsesSurvivingTokens(t *testing.T) {
	a := NewAnalyzer(NewBasicEngine(), 10)
	keywords := a.ExtractKeywords([]string{"the great product", "a great day"}, 10)

	require.Len(t, keywords, 3)
	assert.Equal(t, "great", keywords[0].Word)
	// 4 surviving tokens (great, product, great, day) out of 6 raw tokens
	assert.Equal(t, 50.0, keywords[0].Relevance)
	assert.Equal(t, "product", keywords[1].Word)
	assert.Equal(t, "day", keywords[2].Word)
}

func TestExtractKeywords_DropsShortAndNonAlphanumeric(t *testing.T) {
	a := NewAnalyzer(NewBasicEngine(), 10)
	keywords := a.ExtractKeywords([]string{"ok go well-known fix fix"}, 10)

	require.Len(t, keywords, 1)
	assert.Equal(t, domain.Keyword{Word: "fix", Count: 2, Relevance: 100}, keywords[0])
}

func TestExtractKeywords_Empty(t *testing.T) {
	a := newTestAnalyzer()
	assert.Empty(t, a.ExtractKeywords(nil, 10))
	assert.Empty(t, a.ExtractKeywords([]string{"the and of"}, 10))
	assert.Empty(t, a.ExtractKeywords([]string{"great"}, 0))
}

func TestExtractKeywords_LexiconSplitsPunctuation(t *testing.T) {
	lexicon := NewAnalyzer(NewLexiconEngine(defaultLexicon, extendedStopwords), 10)
	basic := NewAnalyzer(NewBasicEngine(), 10)

	// The basic engine keeps "great." as one token, which is not alphanumeric
	assert.Len(t, lexicon.ExtractKeywords([]string{"great. great!"}, 10), 1)
	assert.Empty(t, basic.ExtractKeywords([]string{"great. great!"}, 10))
}

func TestAnalyzeTextSet(t *testing.T) {
	a := newTestAnalyzer()
	result := a.AnalyzeTextSet([]string{
		"The support team was excellent and helpful",
		"Checkout was slow and confusing",
		"I used it on Tuesday",
		"",
	})

	assert.Equal(t, 17, result.WordCount)
	assert.InDelta(t, 17.0/3.0, result.AverageLength, 1e-9)
	assert.Equal(t, 33.3, result.Sentiment.Positive)
	assert.Equal(t, 33.3, result.Sentiment.Neutral)
	assert.Equal(t, 33.3, result.Sentiment.Negative)
	assert.NotEmpty(t, result.Keywords)
	assert.Empty(t, result.Topics)
}

func TestAnalyzeTextSet_PercentagesSumTo100(t *testing.T) {
	a := newTestAnalyzer()
	sets := [][]string{
		{"great"},
		{"great", "bad"},
		{"great", "bad", "tuesday"},
		{"great", "great", "bad", "tuesday", "awful", "nice", "meh"},
	}

	for _, texts := range sets {
		result := a.AnalyzeTextSet(texts)
		sum := result.Sentiment.Positive + result.Sentiment.Neutral + result.Sentiment.Negative
		// three-way rounding to one decimal can drift by 0.1
		assert.InDelta(t, 100.0, sum, 0.1+1e-9, "texts: %v", texts)
	}
}

func TestAnalyzeTextSet_Empty(t *testing.T) {
	a := newTestAnalyzer()

	result := a.AnalyzeTextSet(nil)
	assert.Equal(t, 0, result.WordCount)
	assert.Equal(t, 0.0, result.AverageLength)
	assert.Equal(t, domain.SentimentDistribution{}, result.Sentiment)
	assert.NotNil(t, result.Keywords)

	// Texts that clean down to nothing count towards the average but are not classified
	result = a.AnalyzeTextSet([]string{"@@@"})
	assert.Equal(t, 0, result.WordCount)
	assert.Equal(t, domain.SentimentDistribution{}, result.Sentiment)
}

func TestAnalyzeTextSet_BasicEngineIsNeutral(t *testing.T) {
	a := NewAnalyzer(NewBasicEngine(), 10)
	result := a.AnalyzeTextSet([]string{"excellent", "terrible", "fine"})

	assert.Equal(t, 0.0, result.Sentiment.Positive)
	assert.Equal(t, 100.0, result.Sentiment.Neutral)
	assert.Equal(t, 0.0, result.Sentiment.Negative)
}

func TestAnalyzeText(t *testing.T) {
	a := newTestAnalyzer()

	tests := []struct {
		name      string
		text      string
		overall   string
		score     float64
		wordCount int
	}{
		{"positive", "I love this great product", domain.SentimentPositive, 1.0, 5},
		{"negative", "Terrible and slow checkout", domain.SentimentNegative, -1.0, 4},
		{"neutral", "I bought it on Tuesday", domain.SentimentNeutral, 0, 5},
		{"empty", "", domain.SentimentNeutral, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.AnalyzeText(tt.text)
			assert.Equal(t, tt.overall, got.Overall)
			assert.Equal(t, tt.score, got.Score)
			assert.Equal(t, tt.wordCount, got.WordCount)
		})
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, domain.SentimentPositive, Classify(0.11))
	assert.Equal(t, domain.SentimentNeutral, Classify(0.1))
	assert.Equal(t, domain.SentimentNeutral, Classify(-0.1))
	assert.Equal(t, domain.SentimentNegative, Classify(-0.11))
}

func TestLexiconEngine_Polarity(t *testing.T) {
	e := NewLexiconEngine(defaultLexicon, extendedStopwords)

	assert.InDelta(t, 0.6, e.Polarity("good"), 1e-9)
	assert.InDelta(t, -0.3, e.Polarity("not good"), 1e-9)
	assert.InDelta(t, 0.9, e.Polarity("very good"), 1e-9)
	assert.InDelta(t, -0.45, e.Polarity("not very good"), 1e-9)
	assert.Equal(t, 0.0, e.Polarity("the meeting is on monday"))
	assert.InDelta(t, 0.0, e.Polarity("good but bad"), 1e-9)
}

func TestLexiconEngine_Tokenize(t *testing.T) {
	e := NewLexiconEngine(defaultLexicon, extendedStopwords)

	assert.Equal(t, []string{"great", ",", "service", "!"}, e.Tokenize("great, service!"))
	assert.Equal(t, []string{"well-known", "brand"}, e.Tokenize("well-known brand"))
	assert.Equal(t, []string{"rated", "4.5", "-", "ok"}, e.Tokenize("rated 4.5 - ok"))
	assert.Empty(t, e.Tokenize("   "))
}

func TestNewEngine(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	dir := t.TempDir()

	lexiconPath := filepath.Join(dir, "lexicon.txt")
	require.NoError(t, os.WriteFile(lexiconPath, []byte("# comment\nsplendid\t5\ndreadful\t-4\n"), 0644))
	stopwordsPath := filepath.Join(dir, "stopwords.txt")
	require.NoError(t, os.WriteFile(stopwordsPath, []byte("product\n\nservice\n"), 0644))

	t.Run("basic by config", func(t *testing.T) {
		e := NewEngine(config.AnalysisConfig{TextEngine: "basic"}, logger)
		assert.Equal(t, "basic", e.Name())
	})

	t.Run("lexicon with defaults", func(t *testing.T) {
		e := NewEngine(config.AnalysisConfig{TextEngine: "lexicon"}, logger)
		assert.Equal(t, "lexicon", e.Name())
		assert.True(t, e.IsStopword("the"))
	})

	t.Run("lexicon with custom files", func(t *testing.T) {
		e := NewEngine(config.AnalysisConfig{
			TextEngine:    "lexicon",
			LexiconFile:   lexiconPath,
			StopwordsFile: stopwordsPath,
		}, logger)
		require.Equal(t, "lexicon", e.Name())
		assert.InDelta(t, 1.0, e.Polarity("splendid"), 1e-9)
		assert.InDelta(t, -0.8, e.Polarity("dreadful"), 1e-9)
		assert.True(t, e.IsStopword("product"))
		assert.False(t, e.IsStopword("the"))
	})

	t.Run("missing lexicon falls back to basic", func(t *testing.T) {
		e := NewEngine(config.AnalysisConfig{
			TextEngine:  "lexicon",
			LexiconFile: filepath.Join(dir, "missing.txt"),
		}, logger)
		assert.Equal(t, "basic", e.Name())
	})

	t.Run("missing stopwords falls back to basic", func(t *testing.T) {
		e := NewEngine(config.AnalysisConfig{
			TextEngine:    "lexicon",
			StopwordsFile: filepath.Join(dir, "missing.txt"),
		}, logger)
		assert.Equal(t, "basic", e.Name())
	})
}

func TestLoadLexicon_Invalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("splendid\tlots\n"), 0644))
	_, err := LoadLexicon(bad)
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("# nothing\n"), 0644))
	_, err = LoadLexicon(empty)
	assert.Error(t, err)
}
