package document

import (
	"regexp"
	"strings"
)

// DefaultChunkSize is the largest chunk sent for question generation.
const DefaultChunkSize = 4000

// Chunk is a slice of a document small enough for one generation call.
type Chunk struct {
	ID    int
	Text  string
	Chars int
}

var sentenceBreak = regexp.MustCompile(`[.!?]+\s+`)

// Split packs paragraphs into chunks of at most size characters. A
// paragraph larger than size is packed sentence by sentence instead; a
// single sentence larger than size becomes its own chunk.
func Split(text string, size int) []Chunk {
	if size <= 0 {
		size = DefaultChunkSize
	}

	var (
		chunks  []Chunk
		current strings.Builder
	)
	flush := func() {
		t := strings.TrimSpace(current.String())
		current.Reset()
		if t == "" {
			return
		}
		chunks = append(chunks, Chunk{ID: len(chunks) + 1, Text: t, Chars: len(t)})
	}
	appendPart := func(part, sep string) {
		if current.Len() > 0 && current.Len()+len(sep)+len(part) > size {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString(sep)
		}
		current.WriteString(part)
	}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if len(para) <= size {
			appendPart(para, "\n\n")
			continue
		}
		flush()
		for _, sentence := range splitSentences(para) {
			appendPart(sentence, " ")
		}
		flush()
	}
	flush()
	return chunks
}

// splitSentences splits on terminal punctuation, keeping the punctuation
// with its sentence.
func splitSentences(para string) []string {
	var out []string
	start := 0
	for _, loc := range sentenceBreak.FindAllStringIndex(para, -1) {
		end := loc[1]
		if s := strings.TrimSpace(para[start:end]); s != "" {
			out = append(out, s)
		}
		start = end
	}
	if s := strings.TrimSpace(para[start:]); s != "" {
		out = append(out, s)
	}
	return out
}
