package textanalysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \t\n ", ""},
		{"trims and collapses", "  great   service \n here  ", "great service here"},
		{"keeps allowed punctuation", "Fast, simple - done! Really? Yes.", "Fast, simple - done! Really? Yes."},
		{"strips symbols", "price: $100 (too much) #fail", "price 100 too much fail"},
		{"keeps unicode letters", "très bien café", "très bien café"},
		{"strips apostrophes", "don't", "dont"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.raw))
		})
	}
}

func TestCleanValue(t *testing.T) {
	assert.Equal(t, "hello", CleanValue(" hello "))
	assert.Equal(t, "", CleanValue(42.0))
	assert.Equal(t, "", CleanValue(nil))
	assert.Equal(t, "", CleanValue([]interface{}{"a"}))
}

func TestIsAlphanumeric(t *testing.T) {
	assert.True(t, isAlphanumeric("abc123"))
	assert.True(t, isAlphanumeric("café"))
	assert.False(t, isAlphanumeric(""))
	assert.False(t, isAlphanumeric("well-known"))
	assert.False(t, isAlphanumeric("great."))
}
