// Package gemini implements siteask.Oracle on top of Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/fwojciec/siteask"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// SessionHeader carries the run's session ID on every request.
const SessionHeader = "X-Siteask-Session"

// Ensure Oracle implements siteask.Oracle at compile time.
var _ siteask.Oracle = (*Oracle)(nil)

// Oracle implements siteask.Oracle using Google Gemini structured output.
type Oracle struct {
	client *genai.Client
	model  string
}

// NewOracle creates a new Oracle. An empty model selects DefaultModel.
func NewOracle(client *genai.Client, model string) *Oracle {
	if model == "" {
		model = DefaultModel
	}
	return &Oracle{client: client, model: model}
}

// Analyze asks the model about a single page and parses its JSON answer.
// Output that does not match the result schema returns ESCHEMA.
func (o *Oracle) Analyze(ctx context.Context, req *siteask.AnalysisRequest) (*siteask.AnalysisResult, error) {
	if req == nil {
		return nil, siteask.Errorf(siteask.EINVALID, "analysis request required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prompt, err := BuildUserPrompt(req)
	if err != nil {
		return nil, err
	}

	result, err := o.client.Models.GenerateContent(ctx, o.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(req),
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, siteask.Errorf(siteask.EINTERNAL, "gemini returned nil result")
	}

	return siteask.ParseAnalysis(result.Text(), req)
}

const systemInstruction = `You answer questions about a single web page.
For every question you receive, return an entry under the same ID.
Prefer literal answers taken from the page: exact text, a link, or a path, in the format the question implies.
If the page does not answer a question, set "answer" to null and set "suggested_link" to the one link on this page most likely to lead to the answer. Judge links by their text, their title attribute, and the surrounding content. Copy the href exactly as it appears on the page.
If no link looks promising, set "suggested_link" to null.
When a question is answered, set "suggested_link" to null.
Also return a one or two sentence summary of the page and echo the current URL.`

// BuildConfig returns the GenerateContentConfig for one analysis request.
// The response schema lists every requested question ID as a required
// property so the model cannot drop or invent questions.
func BuildConfig(req *siteask.AnalysisRequest) *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema:   BuildSchema(req.Questions),
		HTTPOptions: &genai.HTTPOptions{
			Headers: http.Header{SessionHeader: []string{req.SessionID}},
		},
	}
}

// BuildSchema returns the response schema for the given questions.
func BuildSchema(questions siteask.QuestionSet) *genai.Schema {
	ids := questions.IDs()
	props := make(map[string]*genai.Schema, len(ids))
	for _, id := range ids {
		props[id] = questionSchema()
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"summary":     {Type: genai.TypeString},
			"current_url": {Type: genai.TypeString},
			"questions": {
				Type:             genai.TypeObject,
				Properties:       props,
				Required:         ids,
				PropertyOrdering: ids,
			},
		},
		Required:         []string{"summary", "current_url", "questions"},
		PropertyOrdering: []string{"summary", "current_url", "questions"},
	}
}

func questionSchema() *genai.Schema {
	nullable := true
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"question":       {Type: genai.TypeString},
			"answer":         {Type: genai.TypeString, Nullable: &nullable},
			"suggested_link": {Type: genai.TypeString, Nullable: &nullable},
		},
		Required:         []string{"question", "answer", "suggested_link"},
		PropertyOrdering: []string{"question", "answer", "suggested_link"},
	}
}

// BuildUserPrompt builds the user prompt containing the page and questions.
func BuildUserPrompt(req *siteask.AnalysisRequest) (string, error) {
	questions, err := json.MarshalIndent(req.Questions, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode questions: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "<current_url>%s</current_url>\n\n", req.CurrentURL)
	fmt.Fprintf(&sb, "<questions>\n%s\n</questions>\n\n", questions)
	fmt.Fprintf(&sb, "<page>\n%s\n</page>", req.Content)
	return sb.String(), nil
}
