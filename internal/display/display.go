// Package display renders quotes as a centered, wrapped block for the terminal.
package display

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const defaultWidth = 80

// ANSI escape codes for terminal formatting.
const (
	italic = "\x1b[3m"
	bold   = "\x1b[1m"
	reset  = "\x1b[0m"
)

// Style is the emphasis applied to a rendered line.
type Style int

const (
	Plain Style = iota
	Italic
	Bold
)

// Line is one logical line of a quote block, before wrapping.
type Line struct {
	Text  string
	Style Style
}

// FormatQuote returns the logical lines of a quote block: the quoted text, the
// author, then the interpretation when present.
func FormatQuote(text, author, interpretation string) []Line {
	lines := []Line{
		{Text: "“" + text + "”", Style: Italic},
		{Text: "— " + author, Style: Bold},
	}
	if interpretation != "" {
		lines = append(lines, Line{Text: interpretation, Style: Plain})
	}
	return lines
}

// Render word-wraps every line to width display columns, centers each resulting
// line and writes it to w. Styles are emitted only when color is set.
func Render(w io.Writer, lines []Line, width int, color bool) error {
	if width <= 0 {
		width = defaultWidth
	}

	for _, line := range lines {
		for _, physical := range Wrap(line.Text, width) {
			if _, err := fmt.Fprintln(w, center(physical, width, line.Style, color)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Wrap breaks s into lines no wider than width columns, splitting on whitespace
// and breaking words that cannot fit on a line of their own.
func Wrap(s string, width int) []string {
	var (
		lines []string
		cur   strings.Builder
		curW  int
	)
	flush := func() {
		if cur.Len() > 0 {
			lines = append(lines, cur.String())
			cur.Reset()
			curW = 0
		}
	}

	for _, word := range strings.Fields(s) {
		wordW := runewidth.StringWidth(word)

		if curW > 0 && curW+1+wordW <= width {
			cur.WriteByte(' ')
			cur.WriteString(word)
			curW += 1 + wordW
			continue
		}

		flush()
		for wordW > width {
			head := runewidth.Truncate(word, width, "")
			if head == "" {
				// A single rune wider than the line; emit it alone.
				_, size := utf8.DecodeRuneInString(word)
				head = word[:size]
			}
			lines = append(lines, head)
			word = word[len(head):]
			wordW = runewidth.StringWidth(word)
		}
		if word != "" {
			cur.WriteString(word)
			curW = wordW
		}
	}
	flush()

	return lines
}

func center(s string, width int, style Style, color bool) string {
	pad := (width - runewidth.StringWidth(s)) / 2
	if pad < 0 {
		pad = 0
	}
	indent := strings.Repeat(" ", pad)

	if !color {
		return indent + s
	}
	switch style {
	case Italic:
		return indent + italic + s + reset
	case Bold:
		return indent + bold + s + reset
	default:
		return indent + s
	}
}

// TerminalWidth returns the column count of f when it is a terminal, falling back
// to $COLUMNS and then 80.
func TerminalWidth(f *os.File) int {
	if f != nil {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && cols > 0 {
		return cols
	}
	return defaultWidth
}

// ColorEnabled reports whether styled output should be written to f.
func ColorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return f != nil && term.IsTerminal(int(f.Fd()))
}
