// Package document loads study texts, registers them in the store and
// splits them into chunks for question generation.
package document

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/quizrogue/internal/store"
)

// MaxFileSize is the largest document accepted.
const MaxFileSize = 16 << 20

var allowedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".text":     true,
}

// ErrUnsupported is returned for files that are not plain text.
var ErrUnsupported = errors.New("unsupported document")

// Registry is the slice of store.DocumentRepo used here.
type Registry interface {
	GetByPath(ctx context.Context, path string) (*store.Document, error)
	Create(ctx context.Context, d store.Document) (int64, error)
}

// Loaded is a document read from disk and registered.
type Loaded struct {
	ID       int64
	Filename string
	Title    string
	Text     string
	Chunks   []Chunk
	Topics   []string

	// Existing is true when the path was already registered.
	Existing bool
}

// Read loads and cleans the text at path.
func Read(path string) (string, error) {
	if ext := strings.ToLower(filepath.Ext(path)); !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: %s (want .txt or .md)", ErrUnsupported, filepath.Base(path))
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat document: %w", err)
	}
	if info.Size() > MaxFileSize {
		return "", fmt.Errorf("%w: %s is larger than %d MB", ErrUnsupported, info.Name(), MaxFileSize>>20)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: %s is not UTF-8 text", ErrUnsupported, info.Name())
	}
	text := Clean(string(raw))
	if text == "" {
		return "", fmt.Errorf("%w: %s has no text", ErrUnsupported, info.Name())
	}
	return text, nil
}

// Register reads the file at path and records it, reusing the existing
// row when the same absolute path was registered before.
func Register(ctx context.Context, docs Registry, path string) (*Loaded, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	text, err := Read(abs)
	if err != nil {
		return nil, err
	}

	l := &Loaded{
		Filename: filepath.Base(abs),
		Title:    Title(text, abs),
		Text:     text,
		Chunks:   Split(text, DefaultChunkSize),
		Topics:   Topics(text),
	}

	existing, err := docs.GetByPath(ctx, abs)
	if err != nil {
		return nil, fmt.Errorf("lookup document: %w", err)
	}
	if existing != nil {
		l.ID, l.Title, l.Existing = existing.ID, existing.Title, true
		return l, nil
	}

	l.ID, err = docs.Create(ctx, store.Document{
		Filename:   l.Filename,
		Path:       abs,
		Title:      l.Title,
		TotalChars: utf8.RuneCountInString(text),
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

// Title is the first markdown heading of text, else the file name without
// its extension.
func Title(text, path string) string {
	for _, line := range strings.Split(text, "\n") {
		if m := markdownHeading.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
