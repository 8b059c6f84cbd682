package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acamark/acamark/ast"
)

func TestHeadings(t *testing.T) {
	blocks := ParseBlocks("## Results {#sec:results}")
	require.Len(t, blocks, 1)

	h, ok := blocks[0].(*ast.Heading)
	require.True(t, ok)
	assert.Equal(t, 2, h.Level)
	assert.Equal(t, "sec:results", h.Label)
	assert.Equal(t, "Results", ast.InlinesText(h.Content))
}

func TestHeadingLevelCap(t *testing.T) {
	blocks := ParseBlocks("####### Deep")
	require.Len(t, blocks, 1)

	h, ok := blocks[0].(*ast.Heading)
	require.True(t, ok)
	assert.Equal(t, 6, h.Level)
	assert.Equal(t, "Deep", ast.InlinesText(h.Content))
}

func TestStructuralMarkers(t *testing.T) {
	src := "intro\n\n---\n\n\\pagebreak\n\n\\appendix\n\n[[toc]]"
	blocks := ParseBlocks(src)
	require.Len(t, blocks, 5)

	assert.IsType(t, &ast.Paragraph{}, blocks[0])
	assert.IsType(t, &ast.ThematicBreak{}, blocks[1])
	assert.IsType(t, &ast.PageBreak{}, blocks[2])
	assert.IsType(t, &ast.AppendixMarker{}, blocks[3])
	assert.IsType(t, &ast.TableOfContents{}, blocks[4])
}

func TestFencedCode(t *testing.T) {
	src := "```golang\nfmt.Println(\"hi\")\n```"
	blocks := ParseBlocks(src)
	require.Len(t, blocks, 1)

	code, ok := blocks[0].(*ast.CodeBlock)
	require.True(t, ok)
	// The fence tag collapses to the canonical lexer name.
	assert.Equal(t, "go", code.Language)
	assert.Equal(t, "fmt.Println(\"hi\")", code.Content)
}

func TestFencedCodeUnterminated(t *testing.T) {
	blocks := ParseBlocks("```python\nx = 1\ny = 2")
	require.Len(t, blocks, 1)

	code, ok := blocks[0].(*ast.CodeBlock)
	require.True(t, ok)
	assert.Equal(t, "python", code.Language)
	assert.Equal(t, "x = 1\ny = 2", code.Content)
}

func TestTildeFenceNoLanguage(t *testing.T) {
	blocks := ParseBlocks("~~~\nplain text\n~~~")
	require.Len(t, blocks, 1)

	code, ok := blocks[0].(*ast.CodeBlock)
	require.True(t, ok)
	assert.Equal(t, "", code.Language)
	assert.Equal(t, "plain text", code.Content)
}

func TestDisplayMath(t *testing.T) {
	blocks := ParseBlocks("$$E = mc^2$$ {#eq:energy}")
	require.Len(t, blocks, 1)

	m, ok := blocks[0].(*ast.DisplayMath)
	require.True(t, ok)
	assert.Equal(t, "E = mc^2", m.Content)
	assert.Equal(t, "eq:energy", m.Label)
}

func TestDisplayMathMultiline(t *testing.T) {
	blocks := ParseBlocks("$$\na + b = c\n$$ {#eq:sum}")
	require.Len(t, blocks, 1)

	m, ok := blocks[0].(*ast.DisplayMath)
	require.True(t, ok)
	assert.Equal(t, "a + b = c", m.Content)
	assert.Equal(t, "eq:sum", m.Label)
}

func TestDisplayMathUnterminated(t *testing.T) {
	blocks := ParseBlocks("$$\na + b")
	require.Len(t, blocks, 1)

	m, ok := blocks[0].(*ast.DisplayMath)
	require.True(t, ok)
	assert.Equal(t, "a + b", m.Content)
	assert.Equal(t, "", m.Label)
}

func TestEnvironment(t *testing.T) {
	src := "::: theorem {#thm:main}\nLet $x$ be a number.\n:::"
	blocks := ParseBlocks(src)
	require.Len(t, blocks, 1)

	env, ok := blocks[0].(*ast.Environment)
	require.True(t, ok)
	assert.Equal(t, ast.KindTheorem, env.Kind)
	assert.Equal(t, "thm:main", env.Label)
	require.Len(t, env.Blocks, 1)
	assert.IsType(t, &ast.Paragraph{}, env.Blocks[0])
}

func TestEnvironmentAbbreviation(t *testing.T) {
	blocks := ParseBlocks("::: thm\nBody.\n:::")
	require.Len(t, blocks, 1)

	env, ok := blocks[0].(*ast.Environment)
	require.True(t, ok)
	assert.Equal(t, ast.KindTheorem, env.Kind)
}

func TestEnvironmentCustomKind(t *testing.T) {
	blocks := ParseBlocks("::: mybox\nBody.\n:::")
	require.Len(t, blocks, 1)

	env, ok := blocks[0].(*ast.Environment)
	require.True(t, ok)
	assert.Equal(t, ast.EnvironmentKind("mybox"), env.Kind)
	assert.True(t, env.Kind.Custom())
}

func TestEnvironmentNested(t *testing.T) {
	src := "::: note\nouter text\n::: warning\ninner text\n:::\n:::"
	blocks := ParseBlocks(src)
	require.Len(t, blocks, 1)

	outer, ok := blocks[0].(*ast.Environment)
	require.True(t, ok)
	assert.Equal(t, ast.KindNote, outer.Kind)
	require.Len(t, outer.Blocks, 2)

	inner, ok := outer.Blocks[1].(*ast.Environment)
	require.True(t, ok)
	assert.Equal(t, ast.KindWarning, inner.Kind)
}

func TestFigureCaption(t *testing.T) {
	src := "::: figure {#fig:plot}\n![plot](plot.png)\n\nRuntime by input size.\n:::"
	blocks := ParseBlocks(src)
	require.Len(t, blocks, 1)

	env, ok := blocks[0].(*ast.Environment)
	require.True(t, ok)
	assert.Equal(t, ast.KindFigure, env.Kind)
	// The trailing paragraph becomes the caption.
	require.Len(t, env.Blocks, 1)
	assert.Equal(t, "Runtime by input size.", ast.InlinesText(env.Caption))
}

func TestBlockQuote(t *testing.T) {
	blocks := ParseBlocks("> first\n\n> second")
	require.Len(t, blocks, 1)

	q, ok := blocks[0].(*ast.BlockQuote)
	require.True(t, ok)
	require.Len(t, q.Blocks, 2)
	assert.IsType(t, &ast.Paragraph{}, q.Blocks[0])
	assert.IsType(t, &ast.Paragraph{}, q.Blocks[1])
}

func TestUnorderedList(t *testing.T) {
	blocks := ParseBlocks("- alpha\n- beta\n- gamma")
	require.Len(t, blocks, 1)

	list, ok := blocks[0].(*ast.List)
	require.True(t, ok)
	assert.False(t, list.Ordered)
	require.Len(t, list.Items, 3)
	assert.Nil(t, list.Items[0].Checked)
}

func TestOrderedListStart(t *testing.T) {
	blocks := ParseBlocks("3. third\n4. fourth")
	require.Len(t, blocks, 1)

	list, ok := blocks[0].(*ast.List)
	require.True(t, ok)
	assert.True(t, list.Ordered)
	assert.Equal(t, 3, list.Start)
	require.Len(t, list.Items, 2)
}

func TestCheckboxList(t *testing.T) {
	blocks := ParseBlocks("- [ ] open task\n- [x] done task")
	require.Len(t, blocks, 1)

	list, ok := blocks[0].(*ast.List)
	require.True(t, ok)
	require.Len(t, list.Items, 2)
	require.NotNil(t, list.Items[0].Checked)
	assert.False(t, *list.Items[0].Checked)
	require.NotNil(t, list.Items[1].Checked)
	assert.True(t, *list.Items[1].Checked)
}

func TestListItemContinuation(t *testing.T) {
	src := "- first line\n\n  continued paragraph\n- second item"
	blocks := ParseBlocks(src)
	require.Len(t, blocks, 1)

	list, ok := blocks[0].(*ast.List)
	require.True(t, ok)
	require.Len(t, list.Items, 2)
	assert.Len(t, list.Items[0].Blocks, 2)
}

func TestNestedList(t *testing.T) {
	blocks := ParseBlocks("- outer\n  - inner")
	require.Len(t, blocks, 1)

	list, ok := blocks[0].(*ast.List)
	require.True(t, ok)
	require.Len(t, list.Items, 1)
	require.Len(t, list.Items[0].Blocks, 2)
	assert.IsType(t, &ast.List{}, list.Items[0].Blocks[1])
}

func TestTable(t *testing.T) {
	src := "| Name | Count |\n| :--- | ---: |\n| foo | 1 |\n| bar | 2 |\nTable: Occurrences. {#tab:counts}"
	blocks := ParseBlocks(src)
	require.Len(t, blocks, 1)

	table, ok := blocks[0].(*ast.Table)
	require.True(t, ok)
	require.Len(t, table.Headers, 2)
	assert.Equal(t, "Name", ast.InlinesText(table.Headers[0]))
	assert.Equal(t, "Count", ast.InlinesText(table.Headers[1]))
	assert.Equal(t, []ast.Alignment{ast.AlignLeft, ast.AlignRight}, table.Alignments)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "bar", ast.InlinesText(table.Rows[1][0]))
	assert.Equal(t, "tab:counts", table.Label)
	assert.Equal(t, "Occurrences.", ast.InlinesText(table.Caption))
}

func TestTableCenterAlignment(t *testing.T) {
	blocks := ParseBlocks("| A | B |\n| :-: | --- |\n| x | y |")
	require.Len(t, blocks, 1)

	table, ok := blocks[0].(*ast.Table)
	require.True(t, ok)
	assert.Equal(t, []ast.Alignment{ast.AlignCenter, ast.AlignLeft}, table.Alignments)
}

func TestDescriptionList(t *testing.T) {
	src := "Term one\n: First definition.\n\nTerm two\n: Second definition."
	blocks := ParseBlocks(src)
	require.Len(t, blocks, 1)

	dl, ok := blocks[0].(*ast.DescriptionList)
	require.True(t, ok)
	require.Len(t, dl.Items, 2)
	assert.Equal(t, "Term one", ast.InlinesText(dl.Items[0].Term))
	require.Len(t, dl.Items[1].Definition, 1)
	p, ok := dl.Items[1].Definition[0].(*ast.Paragraph)
	require.True(t, ok)
	assert.Equal(t, "Second definition.", ast.InlinesText(p.Content))
}

func TestParagraphInterrupted(t *testing.T) {
	blocks := ParseBlocks("some text\n# Heading")
	require.Len(t, blocks, 2)
	assert.IsType(t, &ast.Paragraph{}, blocks[0])
	assert.IsType(t, &ast.Heading{}, blocks[1])
}

func TestCanonicalLanguage(t *testing.T) {
	assert.Equal(t, "go", canonicalLanguage("golang"))
	assert.Equal(t, "go", canonicalLanguage("go"))
	assert.Equal(t, "", canonicalLanguage(""))
	// Tags chroma does not know pass through unchanged.
	assert.Equal(t, "notalanguage", canonicalLanguage("notalanguage"))
}
