package gestaltwerk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func lexAll(t *testing.T, src string) []token {
	t.Helper()
	l := newLexer(src)
	var toks []token
	for {
		tok, err := l.next()
		assert.Nil(t, err)
		toks = append(toks, tok)
		if tok.kind == tokEOF {
			return toks
		}
	}
}

func TestLexerPunctuationAndIdent(t *testing.T) {
	toks := lexAll(t, `panel > @text(x=1) { }`)
	kinds := make([]tokenKind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.kind
	}
	assert.Equal(t, []tokenKind{
		tokIdent, tokGT, tokAtText, tokLParen, tokIdent, tokEquals, tokInt, tokRParen,
		tokLBrace, tokRBrace, tokEOF,
	}, kinds)
}

func TestLexerSkipsLineComments(t *testing.T) {
	toks := lexAll(t, "panel // a trailing comment\n{ }")
	assert.Equal(t, tokIdent, toks[0].kind)
	assert.Equal(t, tokLBrace, toks[1].kind)
}

func TestLexerStringEscapes(t *testing.T) {
	toks := lexAll(t, `"a\nb\tc\"d"`)
	assert.Equal(t, tokString, toks[0].kind)
	assert.Equal(t, "a\nb\tc\"d", toks[0].text)
}

func TestLexerUnterminatedStringIsAnError(t *testing.T) {
	l := newLexer(`"unterminated`)
	_, err := l.next()
	assert.NotNil(t, err)
}

func TestLexerFloatRequiresDigitAfterDot(t *testing.T) {
	toks := lexAll(t, `5.5 5`)
	assert.Equal(t, tokFloat, toks[0].kind)
	assert.Equal(t, 5.5, toks[0].fval)
	assert.Equal(t, tokInt, toks[1].kind)
	assert.Equal(t, int32(5), toks[1].ival)
}

func TestLexerUnknownCharacterIsAnError(t *testing.T) {
	l := newLexer(`#`)
	_, err := l.next()
	assert.NotNil(t, err)
}
