package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/siteask"
	"github.com/fwojciec/siteask/crawl"
	"github.com/fwojciec/siteask/etree"
)

// encodeReport writes report to w in the named format.
func encodeReport(w io.Writer, report *crawl.Report, format string) error {
	switch format {
	case "", "text":
		_, err := fmt.Fprintln(w, siteask.FormatResult(report.Result))
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "xml":
		return etree.EncodeReport(w, report)
	default:
		return siteask.Errorf(siteask.EINVALID, "unknown format %q", format)
	}
}
