// Package etree renders run reports as XML.
package etree

import (
	"io"
	"strconv"

	"github.com/beevik/etree"
	"github.com/fwojciec/siteask/crawl"
)

// EncodeReport writes r to w as an indented XML document.
//
//	<report session="..." start-url="..." iterations="3" max-iterations="10">
//	  <result url="..."><summary>...</summary>
//	    <question id="01"><text>...</text><answer>...</answer></question>
//	  </result>
//	  <visits><visit url="..." depth="0" outcome="ok" .../></visits>
//	</report>
func EncodeReport(w io.Writer, r *crawl.Report) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("report")
	root.CreateAttr("session", r.SessionID)
	root.CreateAttr("start-url", r.StartURL)
	root.CreateAttr("iterations", strconv.Itoa(r.Iterations))
	root.CreateAttr("max-iterations", strconv.Itoa(r.MaxIterations))

	if res := r.Result; res != nil {
		el := root.CreateElement("result")
		el.CreateAttr("url", res.CurrentURL)
		el.CreateElement("summary").SetText(res.Summary)

		for _, id := range res.IDs() {
			q := res.Questions[id]
			qe := el.CreateElement("question")
			qe.CreateAttr("id", id)
			qe.CreateElement("text").SetText(q.Question)
			switch {
			case q.Answered():
				qe.CreateElement("answer").SetText(*q.Answer)
			case q.SuggestedLink != nil:
				qe.CreateElement("suggested-link").SetText(*q.SuggestedLink)
			}
		}
	}

	visits := root.CreateElement("visits")
	for _, v := range r.Visits {
		ve := visits.CreateElement("visit")
		ve.CreateAttr("url", v.URL)
		ve.CreateAttr("depth", strconv.Itoa(v.Depth))
		ve.CreateAttr("outcome", v.Outcome)
		ve.CreateAttr("bytes", strconv.Itoa(v.Bytes))
		if v.Fingerprint != "" {
			ve.CreateAttr("fingerprint", v.Fingerprint)
		}
		if v.Tokens > 0 {
			ve.CreateAttr("tokens", strconv.Itoa(v.Tokens))
		}
		if v.Error != "" {
			ve.CreateAttr("error", v.Error)
		}
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}
