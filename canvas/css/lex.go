package css

import (
	"io"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

type token struct {
	tt   css.TokenType
	data string
}

// lex splits a single CSS value into tokens. Comments are dropped and runs of
// whitespace become one WhitespaceToken. ok is false on a lexing error.
func lex(s string) (tokens []token, ok bool) {
	l := css.NewLexer(parse.NewInputString(s))
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			return tokens, l.Err() == io.EOF
		case css.CommentToken:
			continue
		case css.WhitespaceToken:
			data = []byte(" ")
		}
		tokens = append(tokens, token{tt: tt, data: string(data)})
	}
}

// significant drops whitespace tokens.
func significant(tokens []token) []token {
	out := tokens[:0:0]
	for _, t := range tokens {
		if t.tt != css.WhitespaceToken {
			out = append(out, t)
		}
	}
	return out
}
