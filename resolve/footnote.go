package resolve

import (
	"fmt"

	"github.com/acamark/acamark/ast"
)

// CollectFootnotes assigns sequential ids (fn-1, fn-2, ...) to every
// inline footnote body in document order and returns the id-to-body
// table. Footnotes written as references ([^id]) already carry an id and
// are left for the renderer.
func CollectFootnotes(doc *ast.Document) map[string][]ast.Inline {
	footnotes := make(map[string][]ast.Inline)
	counter := 0

	eachInlineSeq(doc.Blocks, func(inlines []ast.Inline) {
		eachInline(inlines, func(in ast.Inline) {
			fn, ok := in.(*ast.Footnote)
			if !ok || fn.ID != "" {
				return
			}
			counter++
			footnotes[fmt.Sprintf("fn-%d", counter)] = fn.Content
		})
	})

	return footnotes
}
