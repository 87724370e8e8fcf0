package questiongen

import (
	"fmt"
	"strings"
)

// buildDedup formats prior questions for the prompt, keeping the most
// recent max. Returns "None" if there are none.
func buildDedup(priorQuestions []string, max int) string {
	if len(priorQuestions) == 0 {
		return "None"
	}
	if max > 0 && len(priorQuestions) > max {
		priorQuestions = priorQuestions[len(priorQuestions)-max:]
	}

	var b strings.Builder
	for i, q := range priorQuestions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}

// seenSet matches question texts ignoring case and surrounding space.
type seenSet map[string]struct{}

func newSeenSet(texts []string) seenSet {
	s := make(seenSet, len(texts))
	for _, t := range texts {
		s.add(t)
	}
	return s
}

func dedupKey(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}

func (s seenSet) add(text string) { s[dedupKey(text)] = struct{}{} }

func (s seenSet) has(text string) bool {
	_, ok := s[dedupKey(text)]
	return ok
}
