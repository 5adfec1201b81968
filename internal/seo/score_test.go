package seo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordCount(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		expected int
	}{
		{name: "empty", markdown: "", expected: 0},
		{name: "plain", markdown: "NVDA beat earnings again", expected: 4},
		{name: "markup ignored", markdown: "# Weekly **watchlist**\n\n- [SPY](https://x.test) puts", expected: 4},
		{name: "code skipped", markdown: "Setup:\n\n```go\nfunc main() { run() }\n```\n", expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, WordCount(tt.markdown))
		})
	}
}

func TestScore(t *testing.T) {
	t.Run("complete post", func(t *testing.T) {
		res := Score(Input{
			Title:           strings.Repeat("a", 45),
			MetaDescription: strings.Repeat("b", 140),
			Image:           "https://cdn.local/hero.png",
			Content:         strings.Repeat("word ", 320),
		})
		assert.Equal(t, 100, res.Score)
		assert.Equal(t, 320, res.Words)
	})

	t.Run("empty post", func(t *testing.T) {
		res := Score(Input{})
		assert.Zero(t, res.Score)
		for _, c := range res.Checks {
			assert.False(t, c.Passed, c.Name)
		}
	})

	t.Run("partial", func(t *testing.T) {
		res := Score(Input{
			Title:   "Too short",
			Image:   "hero.png",
			Content: strings.Repeat("word ", 300),
		})
		assert.Equal(t, 50, res.Score)
	})

	t.Run("title boundaries", func(t *testing.T) {
		assert.Equal(t, 25, Score(Input{Title: strings.Repeat("t", 30)}).Score)
		assert.Equal(t, 25, Score(Input{Title: strings.Repeat("t", 60)}).Score)
		assert.Zero(t, Score(Input{Title: strings.Repeat("t", 61)}).Score)
	})
}
