package crawl

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint identifies raw page content in visit records. Pages served
// with identical bytes share a fingerprint; empty content has none.
func Fingerprint(content string) string {
	if content == "" {
		return ""
	}
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// TruncateURL fits url into maxLen characters for the progress line.
// The tail is kept since the path is what tells pages of one site apart.
func TruncateURL(url string, maxLen int) string {
	switch {
	case maxLen <= 0:
		return ""
	case len(url) <= maxLen:
		return url
	case maxLen < 4:
		return url[:maxLen]
	}
	return "..." + url[len(url)-(maxLen-3):]
}

var byteUnits = []string{"KB", "MB", "GB"}

// FormatBytes renders a byte count with a binary unit, e.g. "1.5 KB".
func FormatBytes(n int) string {
	if n < 1024 {
		return strconv.Itoa(n) + " B"
	}
	v := float64(n) / 1024
	unit := 0
	for v >= 1024 && unit < len(byteUnits)-1 {
		v /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", v, byteUnits[unit])
}

// FormatTokens renders an approximate token count, rounded to thousands
// above 1000.
func FormatTokens(n int) string {
	if n < 1000 {
		return fmt.Sprintf("~%d tokens", n)
	}
	return fmt.Sprintf("~%dk tokens", (n+500)/1000)
}
