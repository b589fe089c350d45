package siteask

import (
	"fmt"
	"sort"
	"strings"
)

// QuestionSet maps a question ID to the question text.
// IDs are zero-padded sequence numbers so that lexical order matches the
// order in which the questions were collected.
type QuestionSet map[string]string

// QuestionID returns the ID for the n-th question (1-based), e.g. "01".
func QuestionID(n int) string {
	return fmt.Sprintf("%02d", n)
}

// NewQuestionSet numbers the non-blank questions in order, starting at "01".
func NewQuestionSet(questions []string) QuestionSet {
	set := make(QuestionSet, len(questions))
	n := 0
	for _, q := range questions {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		n++
		set[QuestionID(n)] = q
	}
	return set
}

// IDs returns the question IDs in sorted order.
func (s QuestionSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Subset returns a set holding only the question with the given ID.
// The returned set is empty if the ID is not present.
func (s QuestionSet) Subset(id string) QuestionSet {
	text, ok := s[id]
	if !ok {
		return QuestionSet{}
	}
	return QuestionSet{id: text}
}

// Validate returns an error if the set is empty or holds a blank question.
func (s QuestionSet) Validate() error {
	if len(s) == 0 {
		return Errorf(EINVALID, "at least one question required")
	}
	for _, id := range s.IDs() {
		if id == "" {
			return Errorf(EINVALID, "question ID required")
		}
		if strings.TrimSpace(s[id]) == "" {
			return Errorf(EINVALID, "question %s is blank", id)
		}
	}
	return nil
}
