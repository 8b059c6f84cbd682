// Package ast defines the document tree produced by the acamark parser and
// consumed by the resolution passes and by external renderers.
//
// Blocks and inlines are tagged unions: closed interfaces with one marker
// method, implemented by concrete node structs. Resolution passes never
// mutate a tree they received; they build new nodes, so every pass observes
// a fully consistent input.
package ast

import "strings"

// Document is the root of the tree: the front-matter metadata plus the
// ordered sequence of top-level blocks.
type Document struct {
	Metadata Metadata
	Blocks   []Block
}

// Metadata holds the front-matter configuration of a document.
// All fields are optional; the zero value is a valid empty metadata.
type Metadata struct {
	Title            string
	Subtitle         string
	Authors          []string
	Date             string
	Keywords         []string
	Institution      string
	Department       string
	Advisor          string
	Lang             string
	BibliographyPath string
	Macros           map[string]Macro
}

// Macro is a user-defined math macro: a flat template with positional
// placeholders #1..#N. ArgCount is the highest placeholder in the template.
type Macro struct {
	ArgCount int
	Template string
}

// Block is a block-level node.
type Block interface {
	block()
}

// Inline is an inline-level node.
type Inline interface {
	inline()
}

// Paragraph is a run of inline content.
type Paragraph struct {
	Content []Inline
}

// Heading is an ATX heading, level 1 to 6, with an optional label.
type Heading struct {
	Level   int
	Content []Inline
	Label   string
}

// CodeBlock is a fenced code block. Language is the canonical lowercase
// lexer name when the fence tag is known to chroma, the raw tag otherwise,
// or empty when the fence had no tag.
type CodeBlock struct {
	Language string
	Content  string
}

// BlockQuote contains re-parsed quoted blocks.
type BlockQuote struct {
	Blocks []Block
}

// List is an ordered or unordered list. Start is the first ordinal of an
// ordered list (0 when unordered).
type List struct {
	Ordered bool
	Start   int
	Items   []ListItem
}

// ListItem holds the blocks of one item. Checked is nil for a plain item,
// otherwise the state of its checkbox.
type ListItem struct {
	Blocks  []Block
	Checked *bool
}

// ThematicBreak is a horizontal rule.
type ThematicBreak struct{}

// DisplayMath is a display equation with the raw LaTeX body.
type DisplayMath struct {
	Content string
	Label   string
}

// Environment is a fenced ::: block: a theorem-like or structural unit.
type Environment struct {
	Kind    EnvironmentKind
	Label   string
	Blocks  []Block
	Caption []Inline
}

// TableOfContents marks where the renderer should place the TOC.
type TableOfContents struct{}

// RawHTML is a block-level HTML passthrough.
type RawHTML struct {
	HTML string
}

// Table is a pipe table. Every row has one cell per header; Alignments is
// parallel to Headers.
type Table struct {
	Headers    [][]Inline
	Alignments []Alignment
	Rows       [][][]Inline
	Label      string
	Caption    []Inline
}

// DescriptionList is a sequence of term/definition pairs.
type DescriptionList struct {
	Items []DescriptionItem
}

// DescriptionItem pairs one term with its definition blocks.
type DescriptionItem struct {
	Term       []Inline
	Definition []Block
}

// PageBreak forces a page break in paged output.
type PageBreak struct{}

// Abstract wraps the blocks of an abstract section.
type Abstract struct {
	Blocks []Block
}

// AppendixMarker switches section numbering to appendix letters.
type AppendixMarker struct{}

func (*Paragraph) block()       {}
func (*Heading) block()         {}
func (*CodeBlock) block()       {}
func (*BlockQuote) block()      {}
func (*List) block()            {}
func (*ThematicBreak) block()   {}
func (*DisplayMath) block()     {}
func (*Environment) block()     {}
func (*TableOfContents) block() {}
func (*RawHTML) block()         {}
func (*Table) block()           {}
func (*DescriptionList) block() {}
func (*PageBreak) block()       {}
func (*Abstract) block()        {}
func (*AppendixMarker) block()  {}

// Text is a run of plain characters.
type Text struct {
	Text string
}

// Emphasis is italic text.
type Emphasis struct {
	Content []Inline
}

// Strong is bold text.
type Strong struct {
	Content []Inline
}

// Strikethrough is struck-out text.
type Strikethrough struct {
	Content []Inline
}

// Subscript is subscript text outside math mode, e.g. H~2~O.
type Subscript struct {
	Content []Inline
}

// Superscript is superscript text outside math mode, e.g. x^2^.
type Superscript struct {
	Content []Inline
}

// SmallCaps is small-capitals text. It has no markup surface of its own;
// renderers may construct it.
type SmallCaps struct {
	Content []Inline
}

// Code is an inline code span.
type Code struct {
	Text string
}

// Link is a hyperlink with nested content.
type Link struct {
	URL     string
	Title   string
	Content []Inline
}

// Image references an image by URL.
type Image struct {
	URL   string
	Alt   string
	Title string
}

// InlineMath is an inline equation with the raw LaTeX body.
type InlineMath struct {
	Content string
}

// Citation cites one or more bibliography keys.
type Citation struct {
	Keys    []string
	Style   CitationStyle
	Prefix  string
	Locator string
}

// Reference is a cross-reference to a label. Resolved is nil until the
// reference-resolution pass runs; that pass populates it exactly once.
type Reference struct {
	Label    string
	Resolved *string
}

// Footnote is either an inline footnote body or a reference to a footnote
// defined elsewhere. Exactly one of Content and ID is set.
type Footnote struct {
	Content []Inline
	ID      string
}

// SoftBreak is a line break that renders as a space.
type SoftBreak struct{}

// HardBreak is a forced line break.
type HardBreak struct{}

// RawHTMLInline is an inline HTML passthrough.
type RawHTMLInline struct {
	HTML string
}

func (*Text) inline()          {}
func (*Emphasis) inline()      {}
func (*Strong) inline()        {}
func (*Strikethrough) inline() {}
func (*Subscript) inline()     {}
func (*Superscript) inline()   {}
func (*SmallCaps) inline()     {}
func (*Code) inline()          {}
func (*Link) inline()          {}
func (*Image) inline()         {}
func (*InlineMath) inline()    {}
func (*Citation) inline()      {}
func (*Reference) inline()     {}
func (*Footnote) inline()      {}
func (*SoftBreak) inline()     {}
func (*HardBreak) inline()     {}
func (*RawHTMLInline) inline() {}

// LabelInfo is one entry of the label registry.
type LabelInfo struct {
	// Display is the text a reference to this label resolves to,
	// e.g. "Theorem 1" or "(3)".
	Display string
	// ID is the stable identifier derived from the label string.
	ID string
}

// ResolvedDocument is the output of resolution: the rewritten tree plus the
// derived side tables. The tables are read-only for consumers; renderers
// must not add to them.
type ResolvedDocument struct {
	Document Document

	// Labels maps every declared label to its display text and stable id.
	Labels map[string]LabelInfo
	// Citations is the bibliography mapping supplied to resolution.
	Citations map[string]BibEntry
	// Footnotes maps footnote id (fn-1, fn-2, ...) to the inline body.
	Footnotes map[string][]Inline
	// SectionNumbers maps heading labels to dotted numerals ("1.2").
	SectionNumbers map[string]string
	// EnvNumbers maps equation/environment/table labels to their counter.
	EnvNumbers map[string]int
	// CitationOrder lists citation keys in order of first appearance.
	CitationOrder []string
}

// BibEntry is one bibliography record, produced by an external bibliography
// parser and only read here.
type BibEntry struct {
	Key       string
	Type      string
	Title     string
	Authors   []string
	Year      string
	Journal   string
	BookTitle string
	Publisher string
	Volume    string
	Number    string
	Pages     string
	DOI       string
	URL       string
	Extra     map[string]string
}

// InlinesText flattens inline content to plain text, for label display
// fallbacks and diagnostics. Breaks become single spaces; citations,
// references and footnotes are skipped.
func InlinesText(inlines []Inline) string {
	var sb strings.Builder
	for _, in := range inlines {
		switch n := in.(type) {
		case *Text:
			sb.WriteString(n.Text)
		case *Code:
			sb.WriteString(n.Text)
		case *InlineMath:
			sb.WriteString(n.Content)
		case *Emphasis:
			sb.WriteString(InlinesText(n.Content))
		case *Strong:
			sb.WriteString(InlinesText(n.Content))
		case *Strikethrough:
			sb.WriteString(InlinesText(n.Content))
		case *Subscript:
			sb.WriteString(InlinesText(n.Content))
		case *Superscript:
			sb.WriteString(InlinesText(n.Content))
		case *SmallCaps:
			sb.WriteString(InlinesText(n.Content))
		case *Link:
			sb.WriteString(InlinesText(n.Content))
		case *SoftBreak, *HardBreak:
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
