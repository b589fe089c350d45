package siteask_test

import (
	"testing"

	"github.com/fwojciec/siteask"
	"github.com/stretchr/testify/assert"
)

func TestFormatQuestions(t *testing.T) {
	t.Parallel()

	t.Run("returns empty string for no questions", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, siteask.FormatQuestions(nil))
	})

	t.Run("lists questions in ID order", func(t *testing.T) {
		t.Parallel()

		got := siteask.FormatQuestions(siteask.QuestionSet{"02": "second", "01": "first"})

		assert.Equal(t, "01: first\n02: second", got)
	})
}

func TestFormatResult(t *testing.T) {
	t.Parallel()

	t.Run("reports empty result", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "No analysis available.", siteask.FormatResult(&siteask.AnalysisResult{}))
	})

	t.Run("shows answers and unresolved questions", func(t *testing.T) {
		t.Parallel()

		result := &siteask.AnalysisResult{
			Summary:    "Homepage",
			CurrentURL: "https://example.com",
			Questions: map[string]*siteask.QuestionResult{
				"02": {Question: "Where is the FAQ?", SuggestedLink: strPtr("/faq")},
				"01": {Question: "What is the email?", Answer: strPtr("hi@example.com")},
				"03": {Question: "Who is the CEO?"},
			},
		}

		got := siteask.FormatResult(result)

		want := "Page: https://example.com\n" +
			"Summary: Homepage\n" +
			"\n01: What is the email?\n" +
			"    Answer: hi@example.com\n" +
			"\n02: Where is the FAQ?\n" +
			"    Unanswered (suggested link: /faq)\n" +
			"\n03: Who is the CEO?\n" +
			"    Unanswered"
		assert.Equal(t, want, got)
	})
}
