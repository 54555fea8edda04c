// Package readme rewrites marker-delimited sections of text files.
package readme

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"

	"github.com/kathekon/kathekon/internal/quotes"
)

// ErrFileMissing is returned when the target file does not exist.
var ErrFileMissing = errors.New("file does not exist")

// Section names recognised in templates.
const (
	SectionText           = "quote-text"
	SectionAuthor         = "quote-author"
	SectionInterpretation = "quote-interpretation"
)

// StartMarker returns the comment that opens section name.
func StartMarker(name string) string {
	return "<!--START_SECTION:" + name + "-->"
}

// EndMarker returns the comment that closes section name.
func EndMarker(name string) string {
	return "<!--END_SECTION:" + name + "-->"
}

// ReplaceSection replaces everything between each START/END marker pair of name with
// replacement, framed by newlines. The markers are kept. Content without both markers
// is returned unchanged.
func ReplaceSection(content, name, replacement string) string {
	start, end := StartMarker(name), EndMarker(name)
	pattern := regexp.MustCompile(`(?s)` + regexp.QuoteMeta(start) + `.*?` + regexp.QuoteMeta(end))

	// The literal form keeps "$" in quote text from being read as a group reference.
	return pattern.ReplaceAllLiteralString(content, start+"\n"+replacement+"\n"+end)
}

// Sections returns the template values for a resolved quote.
func Sections(q *quotes.ResolvedQuote) map[string]string {
	return map[string]string{
		SectionText:           q.Text,
		SectionAuthor:         q.Author,
		SectionInterpretation: q.Interpretation,
	}
}

// UpdateFile applies every section replacement to the file at path and writes it back
// with its existing permissions.
func UpdateFile(path string, sections map[string]string) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", path, ErrFileMissing)
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	content := string(raw)
	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		content = ReplaceSection(content, name, sections[name])
	}

	if err := os.WriteFile(path, []byte(content), info.Mode().Perm()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
