package query

import "strings"

// Tokenize splits text into tokens. It never fails: every input yields some
// token sequence and validity is left to the parser.
//
// Words are scanned independently, so '=' and ',' only act as delimiters
// within a whitespace separated word. A word with several '=' produces one
// Ident/Equal pair per '='.
func Tokenize(text string) []Token {
	tokens := []Token{}
	for _, word := range strings.Fields(text) {
		tokens = append(tokens, tokenizeWord(word)...)
	}
	return tokens
}

func tokenizeWord(word string) []Token {
	var tokens []Token
	var draft strings.Builder

	for _, ch := range word {
		switch ch {
		case '=':
			tokens = append(tokens,
				Token{Type: TokenIdent, Value: draft.String()},
				Token{Type: TokenEqual, Value: "="},
			)
			draft.Reset()
		case ',':
			tokens = append(tokens,
				Token{Type: TokenString, Value: draft.String()},
				Token{Type: TokenComma, Value: ","},
			)
			draft.Reset()
		default:
			draft.WriteRune(ch)
		}
	}
	if draft.Len() > 0 {
		tokens = append(tokens, Token{Type: TokenString, Value: draft.String()})
	}
	return tokens
}
