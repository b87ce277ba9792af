package tokens

import (
	"strings"
	"unicode"
)

type tokenBuffer struct {
	builder strings.Builder
	// quoted is set when the current token contained a quoted section,
	// so that "" still produces a token
	quoted bool
}

func (b *tokenBuffer) flush(tokens []string) []string {
	if b.builder.Len() == 0 && !b.quoted {
		return tokens
	}
	tokens = append(tokens, b.builder.String())
	b.builder.Reset()
	b.quoted = false
	return tokens
}

// Tokenize splits line into words. Single and double quotes group words and
// are consumed; inside a quote, the other quote character is literal. An
// unterminated quote extends to the end of the line.
func Tokenize(line string) []string {
	tokens := []string{}
	var buf tokenBuffer
	var quote rune // active quote character, 0 when outside quotes

	for _, r := range line {
		switch {

		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				buf.builder.WriteRune(r)
			}

		case r == '"' || r == '\'':
			quote = r
			buf.quoted = true

		case unicode.IsSpace(r):
			tokens = buf.flush(tokens)

		default:
			buf.builder.WriteRune(r)
		}
	}

	return buf.flush(tokens)
}
