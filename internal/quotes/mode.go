package quotes

import "fmt"

// Mode selects where a resolved quote's interpretation comes from.
type Mode int

const (
	// ModeDB picks a random stored interpretation.
	ModeDB Mode = iota
	// ModeDBFixed picks the first stored interpretation, so repeated calls agree.
	ModeDBFixed
	// ModeGPT asks the Interpreter and fails if it errors.
	ModeGPT
	// ModeGPTFallback asks the Interpreter once and falls back to ModeDB on error.
	ModeGPTFallback
)

var modeNames = map[Mode]string{
	ModeDB:          "db",
	ModeDBFixed:     "db+fixed",
	ModeGPT:         "gpt",
	ModeGPTFallback: "gpt+fallback",
}

// String returns the flag spelling of m.
func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses the flag spelling of a mode.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown interpretation mode %q", s)
}

// RandomModes are the modes accepted for random lookups.
var RandomModes = []Mode{ModeGPT, ModeDB, ModeGPTFallback}

// DailyModes are the modes accepted for the daily quote.
var DailyModes = []Mode{ModeGPT, ModeDB, ModeDBFixed, ModeGPTFallback}
