// Package sqllex is a small SQL-aware tokenizer. It recognizes keywords
// case-insensitively, string and numeric literals, plain and quoted
// identifiers, operators, comments and punctuation. It makes no attempt to
// validate grammar; callers that need structure work off the token stream.
package sqllex

import (
	"fmt"
	"strings"
	"unicode"
)

// Kind classifies a token.
type Kind int

const (
	KindKeyword Kind = iota
	KindIdent
	KindNumber
	KindString
	KindOperator
	KindLParen
	KindRParen
	KindComma
	KindSemicolon
)

// Token is a single lexical unit of a SQL string. Keywords carry their
// canonical upper-case spelling in Text; identifiers keep the original.
type Token struct {
	Kind Kind
	Text string
	Pos  int // rune offset in the input
}

// keywords is the set of words recognized as SQL keywords. Anything else
// that looks like a word is an identifier.
var keywords = map[string]bool{
	"SELECT": true, "FROM": true, "WHERE": true, "AS": true, "ON": true,
	"JOIN": true, "INNER": true, "LEFT": true, "RIGHT": true, "FULL": true,
	"OUTER": true, "CROSS": true, "NATURAL": true,
	"GROUP": true, "BY": true, "HAVING": true, "ORDER": true,
	"LIMIT": true, "OFFSET": true, "DISTINCT": true, "ALL": true,
	"AND": true, "OR": true, "NOT": true, "IN": true, "EXISTS": true,
	"BETWEEN": true, "LIKE": true, "IS": true, "NULL": true,
	"CASE": true, "WHEN": true, "THEN": true, "ELSE": true, "END": true,
	"UNION": true, "INTERSECT": true, "EXCEPT": true, "WITH": true,
	"OVER": true, "PARTITION": true, "ASC": true, "DESC": true,
	"INSERT": true, "INTO": true, "VALUES": true, "UPDATE": true,
	"SET": true, "DELETE": true,
}

// Scan tokenizes input. It returns an error for inputs it cannot fully lex
// (unterminated string literals, quoted identifiers or block comments);
// tokens produced before the failure point are still returned.
func Scan(input string) ([]Token, error) {
	var tokens []Token

	runes := []rune(input)
	i := 0
	for i < len(runes) {
		r := runes[i]

		switch {
		case unicode.IsSpace(r):
			i++

		case r == '-' && i+1 < len(runes) && runes[i+1] == '-':
			// Line comment runs to end of line.
			for i < len(runes) && runes[i] != '\n' {
				i++
			}

		case r == '/' && i+1 < len(runes) && runes[i+1] == '*':
			j := i + 2
			for j+1 < len(runes) && !(runes[j] == '*' && runes[j+1] == '/') {
				j++
			}
			if j+1 >= len(runes) {
				return tokens, fmt.Errorf("unterminated block comment at offset %d", i)
			}
			i = j + 2

		case r == '\'':
			text, next, ok := scanQuoted(runes, i, '\'')
			if !ok {
				return tokens, fmt.Errorf("unterminated string literal at offset %d", i)
			}
			tokens = append(tokens, Token{Kind: KindString, Text: text, Pos: i})
			i = next

		case r == '"' || r == '`':
			text, next, ok := scanQuoted(runes, i, r)
			if !ok {
				return tokens, fmt.Errorf("unterminated quoted identifier at offset %d", i)
			}
			tokens = append(tokens, Token{Kind: KindIdent, Text: text, Pos: i})
			i = next

		case unicode.IsDigit(r):
			start := i
			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.') {
				i++
			}
			tokens = append(tokens, Token{Kind: KindNumber, Text: string(runes[start:i]), Pos: start})

		case isWordStart(r):
			start := i
			for i < len(runes) && isWordPart(runes[i]) {
				i++
			}
			word := string(runes[start:i])
			upper := strings.ToUpper(word)
			if keywords[upper] {
				tokens = append(tokens, Token{Kind: KindKeyword, Text: upper, Pos: start})
			} else {
				tokens = append(tokens, Token{Kind: KindIdent, Text: word, Pos: start})
			}

		case r == '(':
			tokens = append(tokens, Token{Kind: KindLParen, Text: "(", Pos: i})
			i++

		case r == ')':
			tokens = append(tokens, Token{Kind: KindRParen, Text: ")", Pos: i})
			i++

		case r == ',':
			tokens = append(tokens, Token{Kind: KindComma, Text: ",", Pos: i})
			i++

		case r == ';':
			tokens = append(tokens, Token{Kind: KindSemicolon, Text: ";", Pos: i})
			i++

		default:
			start := i
			for i < len(runes) && isOperatorRune(runes[i]) {
				i++
			}
			if i == start {
				// Unknown rune; consume it as a single operator token so
				// lexing always makes progress.
				i++
			}
			tokens = append(tokens, Token{Kind: KindOperator, Text: string(runes[start:i]), Pos: start})
		}
	}

	return tokens, nil
}

// scanQuoted reads a literal delimited by quote, honoring doubled-quote
// escapes. It returns the unquoted text, the index after the closing quote
// and whether the literal was terminated.
func scanQuoted(runes []rune, start int, quote rune) (string, int, bool) {
	var sb strings.Builder
	i := start + 1
	for i < len(runes) {
		if runes[i] == quote {
			if i+1 < len(runes) && runes[i+1] == quote {
				sb.WriteRune(quote)
				i += 2
				continue
			}
			return sb.String(), i + 1, true
		}
		sb.WriteRune(runes[i])
		i++
	}
	return sb.String(), i, false
}

func isWordStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isWordPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$'
}

func isOperatorRune(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '<', '>', '=', '!', '%', '|', '&', '^', '~', '.', ':', '?', '[', ']':
		return true
	}
	return false
}
