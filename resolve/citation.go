package resolve

import (
	"sort"

	"go.uber.org/zap"

	"github.com/acamark/acamark/ast"
)

// ValidateCitations cross-checks every citation key in the tree against
// the bibliography. In strict mode a missing key is fatal; otherwise it
// logs a warning and the raw key serves as fallback text downstream.
func ValidateCitations(doc *ast.Document, bibliography map[string]ast.BibEntry, cfg Config, log *zap.SugaredLogger) error {
	for _, key := range collectCitationKeys(doc) {
		if _, ok := bibliography[key]; ok {
			continue
		}
		if cfg.StrictCitations {
			return &UnknownCitationError{Key: key}
		}
		log.Warnw("unknown citation key", "key", key)
	}
	return nil
}

// collectCitationKeys returns the deduplicated, sorted set of citation
// keys used anywhere in the document.
func collectCitationKeys(doc *ast.Document) []string {
	seen := make(map[string]struct{})
	var keys []string

	eachInlineSeq(doc.Blocks, func(inlines []ast.Inline) {
		eachInline(inlines, func(in ast.Inline) {
			cite, ok := in.(*ast.Citation)
			if !ok {
				return
			}
			for _, key := range cite.Keys {
				if _, dup := seen[key]; !dup {
					seen[key] = struct{}{}
					keys = append(keys, key)
				}
			}
		})
	})

	sort.Strings(keys)
	return keys
}

// CitationOrder lists citation keys in order of first appearance, for
// bibliography-list generation by the renderer.
func CitationOrder(doc *ast.Document) []string {
	seen := make(map[string]struct{})
	var keys []string

	eachInlineSeq(doc.Blocks, func(inlines []ast.Inline) {
		eachInline(inlines, func(in ast.Inline) {
			cite, ok := in.(*ast.Citation)
			if !ok {
				return
			}
			for _, key := range cite.Keys {
				if _, dup := seen[key]; !dup {
					seen[key] = struct{}{}
					keys = append(keys, key)
				}
			}
		})
	})

	return keys
}
