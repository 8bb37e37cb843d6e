package domain

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// symbolRanges lists the inclusive code-point ranges recognized as a
// custom choice symbol when one of them starts the choice text.
var symbolRanges = [...]struct{ lo, hi rune }{
	{0x2600, 0x26FF},   // Miscellaneous Symbols
	{0x2700, 0x27BF},   // Dingbats
	{0x1F300, 0x1F5FF}, // Miscellaneous Symbols and Pictographs
	{0x1F600, 0x1F64F}, // Emoticons
	{0x1F680, 0x1F6FF}, // Transport and Map Symbols
	{0x1F900, 0x1F9FF}, // Supplemental Symbols and Pictographs
}

// keycapSuffix follows a digit in the keycap emoji sequence
// (U+FE0F variation selector + U+20E3 combining enclosing keycap).
const keycapSuffix = "️⃣"

// defaultSymbols returns the pool of keycap digits 1..9 handed out to
// choices without a custom symbol.
func defaultSymbols() []string {
	pool := make([]string, 0, 9)
	for d := '1'; d <= '9'; d++ {
		pool = append(pool, string(d)+keycapSuffix)
	}
	return pool
}

// leadingSymbol returns the symbol text begins with, either a single rune
// from symbolRanges or a keycap digit sequence, or "" when there is none.
func leadingSymbol(text string) string {
	r, size := utf8.DecodeRuneInString(text)
	if r == utf8.RuneError {
		return ""
	}

	if r >= '0' && r <= '9' && strings.HasPrefix(text[size:], keycapSuffix) {
		return text[:size+len(keycapSuffix)]
	}

	for _, rng := range symbolRanges {
		if r >= rng.lo && r <= rng.hi {
			return text[:size]
		}
	}
	return ""
}

// assignSymbols turns raw choice texts into choices with pairwise
// distinct symbols. A leading emoji is kept as the choice's own symbol
// and stripped from its text; everyone else draws from the default pool,
// minus the symbols already claimed, in ascending keycap order.
func assignSymbols(rawChoices []string) ([]*Choice, error) {
	choices := make([]*Choice, len(rawChoices))
	claimed := make(map[string]bool, len(rawChoices))

	for i, raw := range rawChoices {
		text := strings.TrimSpace(raw)
		symbol := leadingSymbol(text)
		if symbol != "" {
			if claimed[symbol] {
				return nil, ErrDuplicateSymbol
			}
			text = strings.TrimSpace(text[len(symbol):])
			claimed[symbol] = true
		}
		choices[i] = &Choice{Text: text, Symbol: symbol}
	}

	pool := defaultSymbols()
	remaining := pool[:0]
	for _, symbol := range pool {
		if !claimed[symbol] {
			remaining = append(remaining, symbol)
		}
	}
	// Descending, popped from the end: defaults come out 1, 2, 3, ...
	sort.Sort(sort.Reverse(sort.StringSlice(remaining)))

	for _, choice := range choices {
		if choice.Symbol != "" {
			continue
		}
		if len(remaining) == 0 {
			return nil, ErrDefaultPoolExhausted
		}
		choice.Symbol = remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]
	}

	return choices, nil
}
