package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"episolve/apperr"
)

func TestParse(t *testing.T) {
	o := Parse([]string{"cloud-security", "--title", "Cloud Security", "--featured", "--order", "2", "extra"})

	assert.Equal(t, []string{"cloud-security", "extra"}, o.Positionals)
	assert.Equal(t, "Cloud Security", o.Get("title"))
	assert.True(t, o.Bool("featured"))
	assert.Equal(t, []string{"title", "featured", "order"}, o.Keys())

	n, err := o.Int("order")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestParse_TrailingFlagIsTrue(t *testing.T) {
	o := Parse([]string{"--published"})
	assert.Equal(t, "true", o.Get("published"))
	assert.True(t, o.Bool("published"))
}

func TestParse_UnknownKeysKeptVerbatim(t *testing.T) {
	o := Parse([]string{"--colour", "teal"})
	assert.True(t, o.Has("colour"))
	assert.Equal(t, "teal", o.Get("colour"))
}

func TestParse_LastValueWins(t *testing.T) {
	o := Parse([]string{"--order", "1", "--order", "5"})
	assert.Equal(t, "5", o.Get("order"))
	assert.Equal(t, 1, o.Len())
}

func TestParse_BareDashesArePositional(t *testing.T) {
	o := Parse([]string{"--", "-x"})
	assert.Equal(t, []string{"--", "-x"}, o.Positionals)
	assert.Zero(t, o.Len())
}

func TestBool_OnlyLiteralTrue(t *testing.T) {
	o := Parse([]string{"--featured", "yes", "--draft", "false"})
	assert.False(t, o.Bool("featured"))
	assert.False(t, o.Bool("draft"))
	assert.False(t, o.Bool("missing"))
}

func TestInt_NotANumber(t *testing.T) {
	o := Parse([]string{"--order", "first"})
	_, err := o.Int("order")
	assert.True(t, apperr.IsUsage(err))

	n, err := o.Int("missing")
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestList(t *testing.T) {
	o := Parse([]string{"--keywords", " ai, ml ,,data "})
	assert.Equal(t, []string{"ai", "ml", "data"}, o.List("keywords"))
	assert.Nil(t, o.List("missing"))
}

func TestRequire(t *testing.T) {
	o := Parse([]string{"--name", "Ann"})
	assert.NoError(t, o.Require("name"))

	err := o.Require("role", "name", "company")
	require.Error(t, err)
	assert.True(t, apperr.IsUsage(err))
	assert.Contains(t, err.Error(), "--company, --role")
}

func TestGetOr(t *testing.T) {
	o := Parse([]string{"--tone", ""})
	assert.Equal(t, "professional", o.GetOr("tone", "professional"))
	assert.Equal(t, "x", o.GetOr("missing", "x"))
}
