// Package resolve links a parsed document into a renderable whole: it
// expands macros, assigns numbers, registers labels, collects footnotes,
// rewrites references and validates citations, in that fixed order. Every
// pass returns a new tree, so no pass ever observes a partially updated
// one.
package resolve

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/acamark/acamark/ast"
	"github.com/acamark/acamark/bib"
)

// Config controls resolution.
type Config struct {
	// BasePath anchors relative bibliography paths.
	BasePath string
	// StrictCitations makes an unknown citation key fatal.
	StrictCitations bool
	// StrictReferences makes an unknown reference label fatal.
	StrictReferences bool
	// Logger receives warnings for lenient-mode degradations. Nil keeps
	// resolution silent.
	Logger *zap.SugaredLogger
	// BibParser turns bibliography file contents into entries. Defaults
	// to the YAML loader; an external BibTeX parser slots in here.
	BibParser bib.ParserFunc
}

// DuplicateLabelError reports a label declared twice. Always fatal.
type DuplicateLabelError struct {
	Label string
}

func (e *DuplicateLabelError) Error() string {
	return fmt.Sprintf("duplicate label %q", e.Label)
}

// UnknownReferenceError reports a reference to an undeclared label, in
// strict-references mode.
type UnknownReferenceError struct {
	Label string
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("unknown reference %q", e.Label)
}

// UnknownCitationError reports a citation key missing from the
// bibliography, in strict-citations mode.
type UnknownCitationError struct {
	Key string
}

func (e *UnknownCitationError) Error() string {
	return fmt.Sprintf("unknown citation key %q", e.Key)
}

// BibliographyError reports an unreadable or unparseable bibliography
// file. Always fatal.
type BibliographyError struct {
	Path string
	Err  error
}

func (e *BibliographyError) Error() string {
	return fmt.Sprintf("bibliography %s: %v", e.Path, e.Err)
}

func (e *BibliographyError) Unwrap() error { return e.Err }

// Resolve runs all resolution passes over a parsed document and returns
// the resolved tree with its side tables.
func Resolve(doc *ast.Document, cfg Config) (*ast.ResolvedDocument, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	citations := map[string]ast.BibEntry{}
	if doc.Metadata.BibliographyPath != "" {
		var err error
		citations, err = loadBibliography(doc.Metadata.BibliographyPath, cfg)
		if err != nil {
			return nil, err
		}
	}

	d := ExpandMacros(*doc, log)

	sections, envs := AssignNumbers(&d)

	labels, err := BuildLabelRegistry(&d, sections, envs)
	if err != nil {
		return nil, err
	}

	footnotes := CollectFootnotes(&d)

	d, err = ResolveReferences(d, labels, citations, cfg, log)
	if err != nil {
		return nil, err
	}

	if err := ValidateCitations(&d, citations, cfg, log); err != nil {
		return nil, err
	}

	return &ast.ResolvedDocument{
		Document:       d,
		Labels:         labels,
		Citations:      citations,
		Footnotes:      footnotes,
		SectionNumbers: sections,
		EnvNumbers:     envs,
		CitationOrder:  CitationOrder(&d),
	}, nil
}

func loadBibliography(path string, cfg Config) (map[string]ast.BibEntry, error) {
	full := path
	if cfg.BasePath != "" {
		full = filepath.Join(cfg.BasePath, path)
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return nil, &BibliographyError{Path: full, Err: err}
	}

	parse := cfg.BibParser
	if parse == nil {
		parse = bib.ParseYAML
	}
	entries, err := parse(data)
	if err != nil {
		return nil, &BibliographyError{Path: full, Err: err}
	}
	return entries, nil
}
