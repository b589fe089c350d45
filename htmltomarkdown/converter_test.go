package htmltomarkdown_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/siteask"
	"github.com/fwojciec/siteask/htmltomarkdown"
	"github.com/fwojciec/siteask/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts basic paragraph", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<p>Hello, world!</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "Hello, world!")
	})

	t.Run("converts headings", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<h1>Title</h1><h2>Subtitle</h2>`)

		require.NoError(t, err)
		assert.Contains(t, md, "# Title")
		assert.Contains(t, md, "## Subtitle")
	})

	t.Run("keeps link target and title", func(t *testing.T) {
		t.Parallel()

		html := `<p>See <a href="/contact" title="Contact us">Contact</a>.</p>`

		md, err := htmltomarkdown.NewConverter().Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "[Contact](/contact")
		assert.Contains(t, md, "Contact us")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := htmltomarkdown.NewConverter().Convert("   ")

		require.Error(t, err)
		assert.Equal(t, siteask.EINVALID, siteask.ErrorCode(err))
	})
}

func TestReducer_Reduce(t *testing.T) {
	t.Parallel()

	t.Run("converts reduced HTML", func(t *testing.T) {
		t.Parallel()

		next := &mock.Reducer{
			ReduceFn: func(html string) (string, error) {
				return "<body><h1>FAQ</h1></body>", nil
			},
		}

		md, err := htmltomarkdown.NewReducer(next, htmltomarkdown.NewConverter()).Reduce("<html>...</html>")

		require.NoError(t, err)
		assert.Contains(t, md, "# FAQ")
	})

	t.Run("keeps empty pages empty", func(t *testing.T) {
		t.Parallel()

		next := &mock.Reducer{
			ReduceFn: func(html string) (string, error) { return "", nil },
		}
		conv := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				t.Fatal("converter must not be called for empty content")
				return "", nil
			},
		}

		md, err := htmltomarkdown.NewReducer(next, conv).Reduce("")

		require.NoError(t, err)
		assert.Empty(t, md)
	})

	t.Run("propagates reducer error", func(t *testing.T) {
		t.Parallel()

		next := &mock.Reducer{
			ReduceFn: func(html string) (string, error) { return "", errors.New("parse failed") },
		}

		_, err := htmltomarkdown.NewReducer(next, htmltomarkdown.NewConverter()).Reduce("<p>")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse failed")
	})
}
