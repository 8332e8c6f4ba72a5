package cpp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDefinitionObjectLikeNoBody(t *testing.T) {
	d := ParseDefinition("FOO")
	assert.Equal(t, "FOO", d.Name)
	assert.Empty(t, d.Params)
	assert.Empty(t, d.Replacement)
	assert.False(t, d.IsFunctionLike())
}

func TestParseDefinitionObjectLikeWithBody(t *testing.T) {
	d := ParseDefinition("FOO 1 + 2")
	assert.Equal(t, "FOO", d.Name)
	assert.Empty(t, d.Params)
	assert.Equal(t, "1 + 2", d.Replacement)
}

func TestParseDefinitionFunctionLikeEmptyParamList(t *testing.T) {
	d := ParseDefinition("FOO() body")
	assert.Equal(t, "FOO", d.Name)
	assert.Equal(t, []string{""}, d.Params)
	assert.True(t, d.IsFunctionLike())
}

func TestParseDefinitionFunctionLikeSingleParam(t *testing.T) {
	d := ParseDefinition("FOO(abc) abc + 1")
	assert.Equal(t, "FOO", d.Name)
	assert.Equal(t, []string{"abc"}, d.Params)
	assert.Equal(t, "abc + 1", d.Replacement)
}

func TestParseDefinitionFunctionLikeMultiParam(t *testing.T) {
	d := ParseDefinition("ADD(a,b) a + b")
	assert.Equal(t, "ADD", d.Name)
	assert.Equal(t, []string{"a", "b"}, d.Params)
}

func TestParseDefinitionVariadic(t *testing.T) {
	d := ParseDefinition("LOG(fmt,...) printf(fmt, __VA_ARGS__)")
	assert.Equal(t, []string{"fmt", "..."}, d.Params)
	assert.True(t, d.IsVariadic())
	assert.Equal(t, 1, d.paramIndex("__VA_ARGS__"))
	assert.Equal(t, 0, d.paramIndex("fmt"))
	assert.Equal(t, -1, d.paramIndex("nope"))
}

func TestDefinitionValidateRejectsLeadingPaste(t *testing.T) {
	d := &Definition{Name: "A", Params: []string{"x"}, Replacement: "## x"}
	err := d.Validate()
	assert.ErrorIs(t, err, ErrMalformedReplacement)
}

func TestDefinitionValidateRejectsTrailingPaste(t *testing.T) {
	d := &Definition{Name: "A", Params: []string{"x"}, Replacement: "x ##"}
	err := d.Validate()
	assert.ErrorIs(t, err, ErrMalformedReplacement)
}

func TestDefinitionValidateRejectsHashWithoutParam(t *testing.T) {
	d := &Definition{Name: "A", Params: []string{"x"}, Replacement: "# 1"}
	err := d.Validate()
	assert.ErrorIs(t, err, ErrMalformedReplacement)
}

func TestDefinitionValidateRejectsVAArgsWithoutVariadic(t *testing.T) {
	d := &Definition{Name: "A", Params: []string{"x"}, Replacement: "x __VA_ARGS__"}
	err := d.Validate()
	assert.ErrorIs(t, err, ErrMalformedReplacement)
}

func TestDefinitionValidateMemoizes(t *testing.T) {
	d := &Definition{Name: "A", Params: []string{"x"}, Replacement: "x"}
	assert.NoError(t, d.Validate())
	assert.True(t, d.checked)
	assert.NoError(t, d.Validate())
}
