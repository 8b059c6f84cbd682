package resolve

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/acamark/acamark/ast"
	"github.com/acamark/acamark/parser"
)

func nopLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func TestExpandZeroArgMacro(t *testing.T) {
	macros := map[string]ast.Macro{
		"R": {ArgCount: 0, Template: `\mathbb{R}`},
	}
	got := expandMathMacros(`f: \R \to \R`, macros, nopLogger())
	assert.Equal(t, `f: \mathbb{R} \to \mathbb{R}`, got)

	// Expansion is idempotent at its fixed point.
	assert.Equal(t, got, expandMathMacros(got, macros, nopLogger()))
}

func TestZeroArgMacroKeepsAuthorBraces(t *testing.T) {
	macros := map[string]ast.Macro{
		"R": {ArgCount: 0, Template: `\mathbb{R}`},
	}
	// A brace group right after a zero-argument macro is the author's.
	got := expandMathMacros(`\R{2}`, macros, nopLogger())
	assert.Equal(t, `\R{2}`, got)
}

func TestExpandMacroWithArgs(t *testing.T) {
	macros := map[string]ast.Macro{
		"norm":  {ArgCount: 1, Template: `\lVert #1 \rVert`},
		"inner": {ArgCount: 2, Template: `\langle #1, #2 \rangle`},
	}

	got := expandMathMacros(`\norm{x}`, macros, nopLogger())
	assert.Equal(t, `\lVert x \rVert`, got)

	got = expandMathMacros(`\norm{\vec{v}}`, macros, nopLogger())
	assert.Equal(t, `\lVert \vec{v} \rVert`, got)

	got = expandMathMacros(`\inner{a}{b}`, macros, nopLogger())
	assert.Equal(t, `\langle a, b \rangle`, got)
}

func TestMacroMissingArgsLeftAlone(t *testing.T) {
	macros := map[string]ast.Macro{
		"norm": {ArgCount: 1, Template: `\lVert #1 \rVert`},
	}
	got := expandMathMacros(`\norm x`, macros, nopLogger())
	assert.Equal(t, `\norm x`, got)
}

func TestMacroNamePrefixNotExpanded(t *testing.T) {
	macros := map[string]ast.Macro{
		"R":  {ArgCount: 0, Template: `\mathbb{R}`},
		"RR": {ArgCount: 0, Template: `\R \times \R`},
	}
	got := expandMathMacros(`\RR`, macros, nopLogger())
	assert.Equal(t, `\mathbb{R} \times \mathbb{R}`, got)
}

func TestMacroNonConvergence(t *testing.T) {
	macros := map[string]ast.Macro{
		"loop": {ArgCount: 0, Template: `\loop x`},
	}
	got := expandMathMacros(`\loop`, macros, nopLogger())
	// Expansion stops at the iteration cap and keeps the partial result.
	assert.True(t, strings.HasPrefix(got, `\loop`))
	assert.Equal(t, maxMacroIterations, strings.Count(got, "x"))
}

func TestExpandMacrosDocument(t *testing.T) {
	src := `+++
[macros]
R = '\mathbb{R}'
+++

Let $f: \R \to \R$ be continuous.

$$\R$$
`
	doc, err := parser.Parse("test.mda", []byte(src))
	require.NoError(t, err)

	d := ExpandMacros(*doc, nopLogger())

	para, ok := d.Blocks[0].(*ast.Paragraph)
	require.True(t, ok)
	math, ok := para.Content[1].(*ast.InlineMath)
	require.True(t, ok)
	assert.Equal(t, `f: \mathbb{R} \to \mathbb{R}`, math.Content)

	display, ok := d.Blocks[1].(*ast.DisplayMath)
	require.True(t, ok)
	assert.Equal(t, `\mathbb{R}`, display.Content)
}
