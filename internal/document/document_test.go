package document

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizrogue/internal/store"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		size  int
		wants []string
	}{
		{
			name:  "paragraphs packed together",
			text:  "Alpha one.\n\nBeta two.\n\nGamma three.",
			size:  100,
			wants: []string{"Alpha one.\n\nBeta two.\n\nGamma three."},
		},
		{
			name:  "paragraph boundary respected",
			text:  "Alpha one.\n\nBeta two.\n\nGamma three.",
			size:  22,
			wants: []string{"Alpha one.\n\nBeta two.", "Gamma three."},
		},
		{
			name:  "oversized paragraph split by sentence",
			text:  "Intro.\n\nFirst sentence here. Second one! Third one? Last",
			size:  25,
			wants: []string{"Intro.", "First sentence here.", "Second one! Third one?", "Last"},
		},
		{
			name:  "blank paragraphs skipped",
			text:  "\n\n  \n\nOnly.\n\n\n\n",
			size:  10,
			wants: []string{"Only."},
		},
		{
			name: "empty",
			text: "",
			size: 10,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := Split(tt.text, tt.size)
			var got []string
			for i, c := range chunks {
				assert.Equal(t, i+1, c.ID)
				assert.Equal(t, len(c.Text), c.Chars)
				got = append(got, c.Text)
			}
			assert.Equal(t, tt.wants, got)
		})
	}
}

func TestSplitRespectsSize(t *testing.T) {
	para := strings.Repeat("Cells divide by mitosis. ", 40)
	text := strings.Join([]string{para, para, "Short closing paragraph."}, "\n\n")

	chunks := Split(text, 300)
	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.LessOrEqual(t, c.Chars, 300)
	}
	assert.Equal(t, "Short closing paragraph.", chunks[len(chunks)-1].Text)
}

func TestClean(t *testing.T) {
	in := "“Quoted” text’s here   \r\n\r\n12\r\n\r\n\r\n\r\nNext paragraph\n"
	assert.Equal(t, "\"Quoted\" text's here\n\nNext paragraph", Clean(in))
}

func TestTopics(t *testing.T) {
	text := strings.Join([]string{
		"# Cell Biology",
		"CELL STRUCTURE",
		"Some body text about cells.",
		"1. Membranes and Transport",
		"Chapter 3: Genetics Basics",
		"# cell biology",
		"not a heading",
	}, "\n")

	assert.Equal(t, []string{
		"Cell Biology",
		"Cell Structure",
		"1. Membranes and Transport",
		"Chapter Genetics Basics",
	}, Topics(text))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Photosynthesis", Title("intro\n## Photosynthesis \nbody", "/x/notes.md"))
	assert.Equal(t, "notes", Title("no headings", "/x/notes.md"))
}

type memRegistry struct {
	docs []store.Document
}

func (m *memRegistry) GetByPath(_ context.Context, path string) (*store.Document, error) {
	for i := range m.docs {
		if m.docs[i].Path == path {
			return &m.docs[i], nil
		}
	}
	return nil, nil
}

func (m *memRegistry) Create(_ context.Context, d store.Document) (int64, error) {
	d.ID = int64(len(m.docs) + 1)
	m.docs = append(m.docs, d)
	return d.ID, nil
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRegister(t *testing.T) {
	reg := &memRegistry{}
	path := writeFile(t, "biology.md", "# Biology 101\n\nCells are the unit of life.\n\nCÉLULA means cell.")

	l, err := Register(context.Background(), reg, path)
	require.NoError(t, err)
	assert.Equal(t, int64(1), l.ID)
	assert.False(t, l.Existing)
	assert.Equal(t, "Biology 101", l.Title)
	assert.Equal(t, "biology.md", l.Filename)
	require.Len(t, l.Chunks, 1)
	require.Len(t, reg.docs, 1)
	assert.Equal(t, len([]rune(l.Text)), reg.docs[0].TotalChars)

	again, err := Register(context.Background(), reg, path)
	require.NoError(t, err)
	assert.True(t, again.Existing)
	assert.Equal(t, l.ID, again.ID)
	assert.Len(t, reg.docs, 1)
}

func TestRegisterRejects(t *testing.T) {
	reg := &memRegistry{}
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"pdf", "scan.pdf", "%PDF-1.4"},
		{"empty", "blank.txt", "  \n\n 3 \n"},
		{"binary", "data.txt", "\xff\xfe\x00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Register(context.Background(), reg, writeFile(t, tt.file, tt.content))
			assert.True(t, errors.Is(err, ErrUnsupported), "err = %v", err)
		})
	}

	_, err := Register(context.Background(), reg, filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
	assert.Empty(t, reg.docs)
}
