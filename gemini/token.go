package gemini

import (
	"context"

	"github.com/fwojciec/siteask"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ siteask.TokenCounter = (*TokenCounter)(nil)

// TokenCounter measures reduced pages with the model's local tokenizer.
// No API call is made; the tokenizer model is downloaded once and cached.
type TokenCounter struct {
	local *tokenizer.LocalTokenizer
}

// NewTokenCounter loads the tokenizer for model.
// An empty model selects DefaultModel.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = DefaultModel
	}
	local, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, err
	}
	return &TokenCounter{local: local}, nil
}

// CountTokens returns the number of tokens text occupies as a user turn.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	res, err := tc.local.CountTokens(genai.Text(text), nil)
	if err != nil {
		return 0, err
	}
	return int(res.TotalTokens), nil
}
