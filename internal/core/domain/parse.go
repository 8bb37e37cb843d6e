package domain

import "strings"

// ParseSetup splits a poll setup string into the question and the raw
// choice texts. Two syntaxes are accepted and may be mixed: double-quoted
// segments (which may span lines) and plain lines without any quote, each
// yielding one token. The first token is the question.
func ParseSetup(setup string) (string, []string, error) {
	tokens := tokenize(setup)
	if len(tokens) < 3 {
		return "", nil, ErrInsufficientChoices
	}
	return tokens[0], tokens[1:], nil
}

func tokenize(s string) []string {
	var tokens []string

	atLineStart := true
	for i := 0; i < len(s); {
		switch {
		case s[i] == '"':
			end := strings.IndexByte(s[i+1:], '"')
			if end < 0 {
				// Unterminated quote, skip it and keep scanning.
				i++
				atLineStart = false
				continue
			}
			tokens = append(tokens, s[i+1:i+1+end])
			i += end + 2
			atLineStart = false
		case s[i] == '\n':
			i++
			atLineStart = true
		case atLineStart:
			line := s[i:]
			next := len(s)
			if nl := strings.IndexByte(line, '\n'); nl >= 0 {
				line = line[:nl]
				next = i + nl + 1
			}
			if strings.ContainsRune(line, '"') {
				// Quoted segments take over on lines that carry quotes.
				i++
				atLineStart = false
				continue
			}
			if line = strings.TrimSuffix(line, "\r"); line != "" {
				tokens = append(tokens, line)
			}
			i = next
		default:
			i++
		}
	}

	return tokens
}
