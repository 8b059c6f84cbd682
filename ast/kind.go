package ast

import "strings"

// EnvironmentKind identifies a ::: fence. Known kinds are the canonical
// lowercase tags below; any other fence keyword is kept verbatim as a
// custom kind. Display name and numbering are pure functions of the tag.
type EnvironmentKind string

const (
	KindTheorem     EnvironmentKind = "theorem"
	KindLemma       EnvironmentKind = "lemma"
	KindProposition EnvironmentKind = "proposition"
	KindCorollary   EnvironmentKind = "corollary"
	KindDefinition  EnvironmentKind = "definition"
	KindExample     EnvironmentKind = "example"
	KindRemark      EnvironmentKind = "remark"
	KindProof       EnvironmentKind = "proof"
	KindFigure      EnvironmentKind = "figure"
	KindTable       EnvironmentKind = "table"
	KindAlgorithm   EnvironmentKind = "algorithm"
	KindAbstract    EnvironmentKind = "abstract"
	KindNote        EnvironmentKind = "note"
	KindWarning     EnvironmentKind = "warning"
	KindQuote       EnvironmentKind = "quote"
	KindConjecture  EnvironmentKind = "conjecture"
	KindAxiom       EnvironmentKind = "axiom"
	KindExercise    EnvironmentKind = "exercise"
	KindSolution    EnvironmentKind = "solution"
	KindCase        EnvironmentKind = "case"
)

// environmentAliases maps fence keywords and their short forms to the
// canonical kind.
var environmentAliases = map[string]EnvironmentKind{
	"theorem":     KindTheorem,
	"thm":         KindTheorem,
	"lemma":       KindLemma,
	"lem":         KindLemma,
	"proposition": KindProposition,
	"prop":        KindProposition,
	"corollary":   KindCorollary,
	"cor":         KindCorollary,
	"definition":  KindDefinition,
	"def":         KindDefinition,
	"example":     KindExample,
	"ex":          KindExample,
	"remark":      KindRemark,
	"rem":         KindRemark,
	"proof":       KindProof,
	"pf":          KindProof,
	"figure":      KindFigure,
	"fig":         KindFigure,
	"table":       KindTable,
	"tab":         KindTable,
	"algorithm":   KindAlgorithm,
	"algo":        KindAlgorithm,
	"abstract":    KindAbstract,
	"abs":         KindAbstract,
	"note":        KindNote,
	"warning":     KindWarning,
	"caution":     KindWarning,
	"quote":       KindQuote,
	"blockquote":  KindQuote,
	"conjecture":  KindConjecture,
	"conj":        KindConjecture,
	"axiom":       KindAxiom,
	"ax":          KindAxiom,
	"exercise":    KindExercise,
	"solution":    KindSolution,
	"sol":         KindSolution,
	"case":        KindCase,
}

// ParseEnvironmentKind maps a fence keyword to its kind. Unrecognized
// keywords become custom kinds carrying the keyword unchanged.
func ParseEnvironmentKind(keyword string) EnvironmentKind {
	if k, ok := environmentAliases[strings.ToLower(keyword)]; ok {
		return k
	}
	return EnvironmentKind(keyword)
}

// Custom reports whether the kind is outside the closed catalogue.
func (k EnvironmentKind) Custom() bool {
	_, ok := environmentAliases[string(k)]
	return !ok
}

// DisplayName is the capitalized name used in captions and in resolved
// reference text, e.g. "Theorem 3".
func (k EnvironmentKind) DisplayName() string {
	s := string(k)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Numbered reports whether environments of this kind draw a counter.
// Proofs, abstracts, notes, warnings, quotes, cases and custom kinds
// are never numbered.
func (k EnvironmentKind) Numbered() bool {
	switch k {
	case KindProof, KindAbstract, KindNote, KindWarning, KindQuote, KindCase:
		return false
	}
	return !k.Custom()
}

// Alignment is a table column alignment, taken from the delimiter row.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return "left"
}

// CitationStyle selects how a citation is rendered.
type CitationStyle int

const (
	// Parenthetical is the bracketed form [@key].
	Parenthetical CitationStyle = iota
	// Textual is the in-sentence form, produced when a bare @key names a
	// bibliography entry rather than a label.
	Textual
	// AuthorOnly cites the author names without the year (@key-).
	AuthorOnly
	// YearOnly cites the year alone ([-@key]).
	YearOnly
)

func (s CitationStyle) String() string {
	switch s {
	case Textual:
		return "textual"
	case AuthorOnly:
		return "author-only"
	case YearOnly:
		return "year-only"
	}
	return "parenthetical"
}
