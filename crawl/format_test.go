package crawl_test

import (
	"testing"

	"github.com/fwojciec/siteask/crawl"
	"github.com/stretchr/testify/assert"
)

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	t.Run("returns URL unchanged when shorter than max", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "https://x.com", crawl.TruncateURL("https://x.com", 50))
	})

	t.Run("keeps the end of long URLs", func(t *testing.T) {
		t.Parallel()
		result := crawl.TruncateURL("https://example.com/very/long/path/to/contact", 20)
		assert.Equal(t, "...g/path/to/contact", result)
		assert.Len(t, result, 20)
	})

	t.Run("returns empty string when maxLen is not positive", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, crawl.TruncateURL("https://example.com", 0))
		assert.Empty(t, crawl.TruncateURL("https://example.com", -1))
	})

	t.Run("returns prefix when maxLen is too small for ellipsis", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "htt", crawl.TruncateURL("https://example.com", 3))
		assert.Equal(t, "a", crawl.TruncateURL("a", 2))
	})
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "512 B", crawl.FormatBytes(512))
	assert.Equal(t, "1.5 KB", crawl.FormatBytes(1536))
	assert.Equal(t, "2.0 MB", crawl.FormatBytes(2*1024*1024))
	assert.Equal(t, "3.0 GB", crawl.FormatBytes(3*1024*1024*1024))
}

func TestFormatTokens(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "~500 tokens", crawl.FormatTokens(500))
	assert.Equal(t, "~10k tokens", crawl.FormatTokens(10000))
	assert.Equal(t, "~2k tokens", crawl.FormatTokens(1500))
}

func TestFingerprint(t *testing.T) {
	t.Parallel()

	t.Run("is stable for the same content", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, crawl.Fingerprint("<p>a</p>"), crawl.Fingerprint("<p>a</p>"))
	})

	t.Run("differs for different content", func(t *testing.T) {
		t.Parallel()
		assert.NotEqual(t, crawl.Fingerprint("a"), crawl.Fingerprint("b"))
	})

	t.Run("is a 16 digit hex string", func(t *testing.T) {
		t.Parallel()
		assert.Regexp(t, `^[0-9a-f]{16}$`, crawl.Fingerprint("test"))
	})

	t.Run("is empty for empty content", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, crawl.Fingerprint(""))
	})
}
