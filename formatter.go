package siteask

import "strings"

// FormatQuestions lists the questions one per line as "ID: text".
func FormatQuestions(questions QuestionSet) string {
	if len(questions) == 0 {
		return ""
	}

	lines := make([]string, 0, len(questions))
	for _, id := range questions.IDs() {
		lines = append(lines, id+": "+questions[id])
	}
	return strings.Join(lines, "\n")
}

// FormatResult formats an analysis result for display.
// Questions are listed in ID order; unresolved questions show the last
// link suggestion that could not be followed, if any.
func FormatResult(result *AnalysisResult) string {
	if result.IsEmpty() {
		return "No analysis available."
	}

	var sb strings.Builder
	if result.CurrentURL != "" {
		sb.WriteString("Page: " + result.CurrentURL + "\n")
	}
	if result.Summary != "" {
		sb.WriteString("Summary: " + result.Summary + "\n")
	}

	for _, id := range result.IDs() {
		q := result.Questions[id]
		sb.WriteString("\n" + id + ": " + q.Question + "\n")
		switch {
		case q.Answered():
			sb.WriteString("    Answer: " + *q.Answer + "\n")
		case q.SuggestedLink != nil && *q.SuggestedLink != "":
			sb.WriteString("    Unanswered (suggested link: " + *q.SuggestedLink + ")\n")
		default:
			sb.WriteString("    Unanswered\n")
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}
