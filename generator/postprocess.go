package generator

import (
	"errors"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ErrEmptyCompletion is returned when the model answered with blank text.
var ErrEmptyCompletion = errors.New("model returned empty post")

// PostProcess trims the model output and, when stripMarkdown is set, flattens
// any markdown the model added into plain text.
func PostProcess(raw string, stripMarkdown bool) (string, error) {
	post := strings.TrimSpace(raw)
	if post == "" {
		return "", ErrEmptyCompletion
	}
	if !stripMarkdown {
		return post, nil
	}
	plain := plainText([]byte(post))
	if plain == "" {
		return post, nil
	}
	return plain, nil
}

// plainText renders the text content of a markdown document, one line per block.
func plainText(src []byte) string {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))
	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			switch n.(type) {
			case *ast.Paragraph, *ast.Heading, *ast.TextBlock:
				b.WriteByte('\n')
			}
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(src))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte('\n')
			}
		case *ast.String:
			b.Write(v.Value)
		case *ast.AutoLink:
			b.Write(v.Label(src))
		case *ast.RawHTML, *ast.HTMLBlock:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
