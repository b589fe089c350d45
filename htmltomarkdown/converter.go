// Package htmltomarkdown compacts reduced HTML into Markdown before it is
// sent to an oracle. Links keep their targets and titles.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/siteask"
)

// Ensure Converter implements siteask.Converter at compile time.
var _ siteask.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", siteask.Errorf(siteask.EINVALID, "empty HTML input")
	}

	return c.conv.ConvertString(html)
}

// Ensure Reducer implements siteask.Reducer at compile time.
var _ siteask.Reducer = (*Reducer)(nil)

// Reducer runs a base Reducer and converts its output to Markdown.
type Reducer struct {
	next siteask.Reducer
	conv siteask.Converter
}

// NewReducer creates a Reducer that converts the output of next.
func NewReducer(next siteask.Reducer, conv siteask.Converter) *Reducer {
	return &Reducer{next: next, conv: conv}
}

// Reduce reduces html with the wrapped Reducer, then converts the result.
// Pages that reduce to nothing stay empty.
func (r *Reducer) Reduce(html string) (string, error) {
	reduced, err := r.next.Reduce(html)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(reduced) == "" {
		return "", nil
	}
	return r.conv.Convert(reduced)
}
