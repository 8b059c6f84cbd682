package resolve

import (
	"strconv"
	"strings"

	"github.com/acamark/acamark/ast"
)

// numberingState carries every counter through one numbering walk. The
// state is threaded explicitly; nothing here survives across documents.
type numberingState struct {
	h        [6]int
	appendix bool

	equation   int
	figure     int
	table      int
	theorem    int
	lemma      int
	definition int
	example    int
	algorithm  int

	sections map[string]string
	envs     map[string]int
}

// AssignNumbers walks the tree once, top to bottom, and returns the
// section-number and environment-number tables.
//
// Headings increment their level's counter and reset deeper levels.
// Every display equation draws the equation counter. Theorem-family kinds
// (theorem, proposition, corollary, conjecture, axiom, exercise,
// solution) share one counter, example and remark share another, and
// standalone tables share the counter of table environments. After an
// appendix marker the level-1 component renders as a letter.
func AssignNumbers(doc *ast.Document) (map[string]string, map[string]int) {
	st := &numberingState{
		sections: make(map[string]string),
		envs:     make(map[string]int),
	}
	st.walk(doc.Blocks)
	return st.sections, st.envs
}

func (st *numberingState) walk(blocks []ast.Block) {
	for _, b := range blocks {
		switch n := b.(type) {
		case *ast.Heading:
			st.heading(n)
		case *ast.DisplayMath:
			st.equation++
			if n.Label != "" {
				st.envs[n.Label] = st.equation
			}
		case *ast.Environment:
			if num, ok := st.envCounter(n.Kind); ok && n.Label != "" {
				st.envs[n.Label] = num
			}
			st.walk(n.Blocks)
		case *ast.Table:
			st.table++
			if n.Label != "" {
				st.envs[n.Label] = st.table
			}
		case *ast.BlockQuote:
			st.walk(n.Blocks)
		case *ast.List:
			for _, item := range n.Items {
				st.walk(item.Blocks)
			}
		case *ast.DescriptionList:
			for _, item := range n.Items {
				st.walk(item.Definition)
			}
		case *ast.Abstract:
			st.walk(n.Blocks)
		case *ast.AppendixMarker:
			st.appendix = true
			st.h = [6]int{}
		}
	}
}

func (st *numberingState) heading(h *ast.Heading) {
	idx := h.Level - 1
	if idx < 0 {
		idx = 0
	}
	if idx > 5 {
		idx = 5
	}
	st.h[idx]++
	for i := idx + 1; i < 6; i++ {
		st.h[i] = 0
	}
	if h.Label != "" {
		st.sections[h.Label] = st.sectionNumber(idx)
	}
}

func (st *numberingState) sectionNumber(maxLevel int) string {
	parts := make([]string, 0, maxLevel+1)
	for i := 0; i <= maxLevel; i++ {
		if i == 0 && st.appendix {
			parts = append(parts, appendixLetter(st.h[0]))
			continue
		}
		parts = append(parts, strconv.Itoa(st.h[i]))
	}
	return strings.Join(parts, ".")
}

// appendixLetter maps 1, 2, 3... to A, B, C...; past Z it wraps to AA, AB
// like spreadsheet columns.
func appendixLetter(n int) string {
	if n <= 0 {
		return "0"
	}
	var sb []byte
	for n > 0 {
		n--
		sb = append([]byte{byte('A' + n%26)}, sb...)
		n /= 26
	}
	return string(sb)
}

// envCounter bumps and returns the counter for a kind, or reports that the
// kind is unnumbered.
func (st *numberingState) envCounter(kind ast.EnvironmentKind) (int, bool) {
	switch kind {
	case ast.KindTheorem, ast.KindProposition, ast.KindCorollary,
		ast.KindConjecture, ast.KindAxiom, ast.KindExercise, ast.KindSolution:
		st.theorem++
		return st.theorem, true
	case ast.KindLemma:
		st.lemma++
		return st.lemma, true
	case ast.KindDefinition:
		st.definition++
		return st.definition, true
	case ast.KindExample, ast.KindRemark:
		st.example++
		return st.example, true
	case ast.KindFigure:
		st.figure++
		return st.figure, true
	case ast.KindTable:
		st.table++
		return st.table, true
	case ast.KindAlgorithm:
		st.algorithm++
		return st.algorithm, true
	}
	return 0, false
}
