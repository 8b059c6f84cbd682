package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acamark/acamark/ast"
)

func TestFrontMatterMetadata(t *testing.T) {
	src := `+++
title = "Spectral Methods on Graphs"
subtitle = "A Survey"
authors = ["Ada Lovelace", "Charles Babbage"]
date = "2024-05-01"
keywords = ["spectra", "graphs"]
institution = "Analytical Engine Institute"
department = "Mathematics"
advisor = "Augustus De Morgan"
language = "en"
bibliography = "refs.yaml"

[macros]
R = '\mathbb{R}'
norm = '\lVert #1 \rVert'
inner = '\langle #1, #2 \rangle'
+++

# Introduction
`

	doc, err := Parse("test.mda", []byte(src))
	require.NoError(t, err)

	meta := doc.Metadata
	assert.Equal(t, "Spectral Methods on Graphs", meta.Title)
	assert.Equal(t, "A Survey", meta.Subtitle)
	assert.Equal(t, []string{"Ada Lovelace", "Charles Babbage"}, meta.Authors)
	assert.Equal(t, "2024-05-01", meta.Date)
	assert.Equal(t, []string{"spectra", "graphs"}, meta.Keywords)
	assert.Equal(t, "Analytical Engine Institute", meta.Institution)
	assert.Equal(t, "Mathematics", meta.Department)
	assert.Equal(t, "Augustus De Morgan", meta.Advisor)
	assert.Equal(t, "en", meta.Lang)
	assert.Equal(t, "refs.yaml", meta.BibliographyPath)

	require.Len(t, meta.Macros, 3)
	assert.Equal(t, ast.Macro{ArgCount: 0, Template: `\mathbb{R}`}, meta.Macros["R"])
	assert.Equal(t, ast.Macro{ArgCount: 1, Template: `\lVert #1 \rVert`}, meta.Macros["norm"])
	assert.Equal(t, ast.Macro{ArgCount: 2, Template: `\langle #1, #2 \rangle`}, meta.Macros["inner"])

	require.Len(t, doc.Blocks, 1)
	h, ok := doc.Blocks[0].(*ast.Heading)
	require.True(t, ok)
	assert.Equal(t, "Introduction", ast.InlinesText(h.Content))
}

func TestFrontMatterAuthorFallback(t *testing.T) {
	src := "+++\nauthor = \"Single Author\"\n+++\n\nBody.\n"

	doc, err := Parse("test.mda", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"Single Author"}, doc.Metadata.Authors)
}

func TestFrontMatterBibliographyTable(t *testing.T) {
	src := "+++\nbibliography = { path = \"library/refs.yaml\" }\n+++\n\nBody.\n"

	doc, err := Parse("test.mda", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, "library/refs.yaml", doc.Metadata.BibliographyPath)
}

func TestFrontMatterAbsent(t *testing.T) {
	doc, err := Parse("test.mda", []byte("# Hello\n"))
	require.NoError(t, err)
	assert.Equal(t, ast.Metadata{}, doc.Metadata)
	require.Len(t, doc.Blocks, 1)
}

func TestFrontMatterUnclosed(t *testing.T) {
	src := "\n\n+++\ntitle = \"Oops\"\n"

	_, err := Parse("test.mda", []byte(src))
	require.Error(t, err)

	var se *SyntaxError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "test.mda", se.Filename)
	assert.Equal(t, 3, se.Line)
	assert.Contains(t, se.Msg, "unclosed front matter")
}

func TestFrontMatterInvalidTOML(t *testing.T) {
	src := "+++\ntitle = unquoted\n+++\n\nBody.\n"

	_, err := Parse("test.mda", []byte(src))
	require.Error(t, err)

	var se *SyntaxError
	require.True(t, errors.As(err, &se))
	assert.Contains(t, se.Msg, "invalid front matter")
}

func TestCountMacroArgs(t *testing.T) {
	tests := []struct {
		template string
		want     int
	}{
		{`\mathbb{R}`, 0},
		{`\lVert #1 \rVert`, 1},
		{`\frac{#1}{#2}`, 2},
		{`#2 before #1`, 2},
		{`trailing #`, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, countMacroArgs(tt.template), tt.template)
	}
}
