package document

import (
	"regexp"
	"strings"
)

const maxTopics = 30

var (
	capsHeading     = regexp.MustCompile(`^[A-Z][A-Z\s]{3,50}$`)
	numberedHeading = regexp.MustCompile(`^\d+\.?\d*\.?\s+[A-Z][A-Za-z\s]{3,50}`)
	keywordHeading  = regexp.MustCompile(`(?i)^(chapter|section|part|unit|lesson|introduction|conclusion|summary)\s+\d*:?\s*([A-Za-z\s]{3,50})`)
	markdownHeading = regexp.MustCompile(`^#{1,6}\s+(.+)$`)
)

// Topics returns likely section headings in document order, without
// duplicates.
func Topics(text string) []string {
	var topics []string
	seen := make(map[string]bool)
	add := func(t string) {
		t = strings.Join(strings.Fields(t), " ")
		if t == "" || seen[strings.ToLower(t)] || len(topics) >= maxTopics {
			return
		}
		seen[strings.ToLower(t)] = true
		topics = append(topics, t)
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case markdownHeading.MatchString(line):
			add(markdownHeading.FindStringSubmatch(line)[1])
		case capsHeading.MatchString(line):
			add(titleCase(line))
		case numberedHeading.MatchString(line):
			add(numberedHeading.FindString(line))
		case keywordHeading.MatchString(line):
			m := keywordHeading.FindStringSubmatch(line)
			add(m[1] + " " + m[2])
		}
	}
	return topics
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
