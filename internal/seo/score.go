// Package seo computes the completeness score shown next to the post editor.
// The score is informational and never blocks saving.
package seo

import (
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

const (
	TitleMin       = 30
	TitleMax       = 60
	DescriptionMin = 120
	DescriptionMax = 160
	MinWords       = 300
)

type Input struct {
	Title           string
	MetaDescription string
	Image           string
	Content         string
}

type Check struct {
	Name   string
	Passed bool
	Weight int
	Hint   string
}

type Result struct {
	Score  int
	Words  int
	Checks []Check
}

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Score rates title length, meta description length, featured image and
// content length. The meta title falls back to the post title upstream.
func Score(in Input) Result {
	words := WordCount(in.Content)
	titleLen := utf8.RuneCountInString(strings.TrimSpace(in.Title))
	descLen := utf8.RuneCountInString(strings.TrimSpace(in.MetaDescription))

	checks := []Check{
		{
			Name:   "title",
			Passed: titleLen >= TitleMin && titleLen <= TitleMax,
			Weight: 25,
			Hint:   "title should be 30-60 characters",
		},
		{
			Name:   "meta_description",
			Passed: descLen >= DescriptionMin && descLen <= DescriptionMax,
			Weight: 25,
			Hint:   "meta description should be 120-160 characters",
		},
		{
			Name:   "featured_image",
			Passed: strings.TrimSpace(in.Image) != "",
			Weight: 20,
			Hint:   "add a featured image",
		},
		{
			Name:   "content_length",
			Passed: words >= MinWords,
			Weight: 30,
			Hint:   "content should have at least 300 words",
		},
	}

	res := Result{Words: words, Checks: checks}
	for _, c := range checks {
		if c.Passed {
			res.Score += c.Weight
		}
	}
	return res
}

// WordCount counts words in the rendered text of markdown, ignoring markup
// and code blocks.
func WordCount(markdown string) int {
	src := []byte(markdown)
	doc := md.Parser().Parse(text.NewReader(src))

	count := 0
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			count += len(strings.Fields(string(node.Segment.Value(src))))
		}
		return ast.WalkContinue, nil
	})

	return count
}
