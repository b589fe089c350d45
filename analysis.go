package siteask

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
)

// QuestionResult is the resolution state of a single question.
// A nil Answer means the question is unresolved; SuggestedLink, when set,
// points at the page most likely to hold the answer.
type QuestionResult struct {
	Question      string  `json:"question"`
	Answer        *string `json:"answer"`
	SuggestedLink *string `json:"suggested_link"`
}

// Answered reports whether the question has an answer.
func (r *QuestionResult) Answered() bool {
	return r != nil && r.Answer != nil
}

// Followable reports whether the question is unanswered and carries a
// non-empty link suggestion.
func (r *QuestionResult) Followable() bool {
	return r != nil && r.Answer == nil && r.SuggestedLink != nil && strings.TrimSpace(*r.SuggestedLink) != ""
}

// AnalysisResult is the outcome of analyzing one page.
// The zero value is the empty result returned for dead ends and for
// branches cut off by the iteration budget.
type AnalysisResult struct {
	Summary    string                     `json:"summary"`
	CurrentURL string                     `json:"current_url"`
	Questions  map[string]*QuestionResult `json:"questions"`
}

// IsEmpty reports whether the result carries no analysis.
func (r *AnalysisResult) IsEmpty() bool {
	return r == nil || (r.Summary == "" && r.CurrentURL == "" && len(r.Questions) == 0)
}

// IDs returns the IDs of the result's questions in sorted order.
func (r *AnalysisResult) IDs() []string {
	if r == nil {
		return nil
	}
	ids := make([]string, 0, len(r.Questions))
	for id := range r.Questions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Merge replaces the entry for id with the child's entry for the same id.
// It reports whether a replacement happened; empty children and children
// without the id leave r untouched.
func (r *AnalysisResult) Merge(id string, child *AnalysisResult) bool {
	if child.IsEmpty() {
		return false
	}
	res, ok := child.Questions[id]
	if !ok || res == nil {
		return false
	}
	if r.Questions == nil {
		r.Questions = make(map[string]*QuestionResult)
	}
	r.Questions[id] = res
	return true
}

// Counts returns the number of answered questions and the number of
// unanswered questions that carry a link suggestion.
func (r *AnalysisResult) Counts() (answered, suggested int) {
	if r == nil {
		return 0, 0
	}
	for _, q := range r.Questions {
		if q.Answered() {
			answered++
		} else if q.Followable() {
			suggested++
		}
	}
	return answered, suggested
}

// ParseAnalysis decodes a raw oracle response and checks it against the
// request it answers. Malformed JSON, a missing required key, an unknown
// question ID, or a requested ID absent from the response all return
// ESCHEMA. Question text is taken from the request.
func ParseAnalysis(raw string, req *AnalysisRequest) (*AnalysisResult, error) {
	body := trimCodeFence(raw)

	var top map[string]json.RawMessage
	if err := decodeStrict(body, &top); err != nil {
		return nil, Errorf(ESCHEMA, "malformed oracle response: %v", err)
	}

	var result AnalysisResult
	if err := requireString(top, "summary", &result.Summary); err != nil {
		return nil, err
	}
	if err := requireString(top, "current_url", &result.CurrentURL); err != nil {
		return nil, err
	}

	rawQuestions, ok := top["questions"]
	if !ok || isNull(rawQuestions) {
		return nil, Errorf(ESCHEMA, "oracle response missing %q", "questions")
	}
	var questions map[string]map[string]json.RawMessage
	if err := json.Unmarshal(rawQuestions, &questions); err != nil {
		return nil, Errorf(ESCHEMA, "oracle response %q malformed: %v", "questions", err)
	}

	result.Questions = make(map[string]*QuestionResult, len(questions))
	for id, fields := range questions {
		if fields == nil {
			result.Questions[id] = nil
			continue
		}

		var echoed string
		if err := requireString(fields, "question", &echoed); err != nil {
			return nil, Errorf(ESCHEMA, "question %s: %s", id, ErrorMessage(err))
		}
		answer, err := requireNullableString(fields, "answer")
		if err != nil {
			return nil, Errorf(ESCHEMA, "question %s: %s", id, ErrorMessage(err))
		}
		link, err := requireNullableString(fields, "suggested_link")
		if err != nil {
			return nil, Errorf(ESCHEMA, "question %s: %s", id, ErrorMessage(err))
		}

		result.Questions[id] = &QuestionResult{
			Question:      req.Questions[id],
			Answer:        answer,
			SuggestedLink: link,
		}
	}

	if err := result.Validate(req); err != nil {
		return nil, err
	}
	return &result, nil
}

// Validate checks a result against the request it answers. A nil result,
// a missing question map, an unknown or null question entry, or a requested
// ID absent from the result all return ESCHEMA.
func (r *AnalysisResult) Validate(req *AnalysisRequest) error {
	if r == nil {
		return Errorf(ESCHEMA, "oracle returned no result")
	}
	if r.Questions == nil {
		return Errorf(ESCHEMA, "oracle response missing %q", "questions")
	}
	for _, id := range r.IDs() {
		if _, ok := req.Questions[id]; !ok {
			return Errorf(ESCHEMA, "oracle response contains unknown question %q", id)
		}
		if r.Questions[id] == nil {
			return Errorf(ESCHEMA, "question %s: result is null", id)
		}
	}
	for _, id := range req.Questions.IDs() {
		if _, ok := r.Questions[id]; !ok {
			return Errorf(ESCHEMA, "oracle response missing question %q", id)
		}
	}
	return nil
}

// trimCodeFence strips surrounding whitespace and a Markdown code fence,
// which some models wrap around JSON output.
func trimCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func decodeStrict(s string, v any) error {
	dec := json.NewDecoder(strings.NewReader(s))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return Errorf(ESCHEMA, "trailing data after JSON object")
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func requireString(fields map[string]json.RawMessage, key string, dst *string) error {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return Errorf(ESCHEMA, "oracle response missing %q", key)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return Errorf(ESCHEMA, "%q must be a string", key)
	}
	return nil
}

func requireNullableString(fields map[string]json.RawMessage, key string) (*string, error) {
	raw, ok := fields[key]
	if !ok {
		return nil, Errorf(ESCHEMA, "oracle response missing %q", key)
	}
	if isNull(raw) {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, Errorf(ESCHEMA, "%q must be a string or null", key)
	}
	return &s, nil
}
