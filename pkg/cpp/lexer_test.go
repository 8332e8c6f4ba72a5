package cpp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeBasicKinds(t *testing.T) {
	toks, err := Tokenize("foo 42 3.14e+1 'a' \"hi\" ( ) , ; { } [ ] ? . ...", false, false)
	require.NoError(t, err)

	kinds := make([]Kind, len(toks))
	texts := make([]string, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
		texts[i] = tok.Text
	}

	assert.Equal(t, Identifier, kinds[0])
	assert.Equal(t, "foo", texts[0])
	assert.Equal(t, "42", texts[1])
	assert.Equal(t, "3.14e+1", texts[2])
	assert.Equal(t, "'a'", texts[3])
	assert.Equal(t, "\"hi\"", texts[4])
	assert.Equal(t, "...", texts[len(texts)-1])
}

func TestTokenizeWhitespaceFlag(t *testing.T) {
	toks, err := Tokenize("a  b\tc", false, false)
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.False(t, toks[0].WS)
	assert.True(t, toks[1].WS)
	assert.True(t, toks[2].WS)
}

func TestTokenizeDigraphs(t *testing.T) {
	toks, err := Tokenize("<: :> <% %> %: %:%:", false, false)
	require.NoError(t, err)
	texts := make([]string, len(toks))
	for i, tok := range toks {
		texts[i] = tok.Text
	}
	assert.Equal(t, []string{"<:", ":>", "<%", "%>", "%:", "%:%:"}, texts)
}

func TestTokenizeStringifyAndPasteContext(t *testing.T) {
	// Top level: always Other.
	toks, err := Tokenize("# ##", false, false)
	require.NoError(t, err)
	assert.Equal(t, Other, toks[0].Kind)
	assert.Equal(t, Other, toks[1].Kind)

	// Object-like replacement: ## pastes, # stays Other.
	toks, err = Tokenize("# ##", false, true)
	require.NoError(t, err)
	assert.Equal(t, Other, toks[0].Kind)
	assert.Equal(t, Paste, toks[1].Kind)

	// Function-like replacement: both become operators.
	toks, err = Tokenize("# ##", true, true)
	require.NoError(t, err)
	assert.Equal(t, Stringify, toks[0].Kind)
	assert.Equal(t, Paste, toks[1].Kind)
}

func TestTokenizeStringifyPasteCarryNoText(t *testing.T) {
	toks, err := Tokenize("# ##", true, true)
	require.NoError(t, err)
	assert.Empty(t, toks[0].Text)
	assert.Empty(t, toks[1].Text)
}

func TestTokenizeEscapeSequences(t *testing.T) {
	toks, err := Tokenize(`"a\n\t\\\"" '\x4A' '\101'`, false, false)
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, `"a\n\t\\\""`, toks[0].Text)
	assert.Equal(t, `'\x4A'`, toks[1].Text)
	assert.Equal(t, `'\101'`, toks[2].Text)
}

func TestTokenizeInvalidEscapeFails(t *testing.T) {
	_, err := Tokenize(`'\z'`, false, false)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenizeUnterminatedStringFails(t *testing.T) {
	_, err := Tokenize(`"unterminated`, false, false)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenizeMaximalMunchPunctuators(t *testing.T) {
	toks, err := Tokenize("-> -- <<= >>= ...", false, false)
	require.NoError(t, err)
	texts := make([]string, len(toks))
	for i, tok := range toks {
		texts[i] = tok.Text
	}
	assert.Equal(t, []string{"->", "--", "<<=", ">>=", "..."}, texts)
}
