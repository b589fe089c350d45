// Package goquery reduces raw HTML pages to the markup an oracle needs.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/siteask"
	"golang.org/x/net/html"
)

// Ensure Reducer implements siteask.Reducer at compile time.
var _ siteask.Reducer = (*Reducer)(nil)

// Reducer strips document metadata, comments and styling classes from HTML.
// Every other attribute is kept: link targets and title attributes are what
// the oracle reasons over when it suggests a link.
type Reducer struct{}

// NewReducer creates a new Reducer.
func NewReducer() *Reducer {
	return &Reducer{}
}

// Reduce returns the serialized body of the cleaned document, or the whole
// document if it has no body. Empty input returns an empty string.
func (r *Reducer) Reduce(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", siteask.Errorf(siteask.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find("head").Remove()
	for _, n := range doc.Nodes {
		removeComments(n)
	}
	doc.Find("[class]").RemoveAttr("class")

	if body := doc.Find("body").First(); body.Length() > 0 {
		return goquery.OuterHtml(body)
	}
	return doc.Html()
}

// removeComments detaches every comment node below n.
func removeComments(n *html.Node) {
	var next *html.Node
	for c := n.FirstChild; c != nil; c = next {
		next = c.NextSibling
		if c.Type == html.CommentNode {
			n.RemoveChild(c)
			continue
		}
		removeComments(c)
	}
}
