// Package bib defines the bibliography collaborator contract: any parser
// that turns file contents into entries keyed by citation key can feed
// resolution. The default loader reads a YAML mapping file; a BibTeX
// parser plugs in through the same function type.
package bib

import (
	"fmt"
	"sort"
	"strings"

	goyaml "github.com/goccy/go-yaml"
	"github.com/hesusruiz/vcutils/yaml"

	"github.com/acamark/acamark/ast"
)

// ParserFunc turns raw bibliography file contents into entries.
type ParserFunc func(data []byte) (map[string]ast.BibEntry, error)

// scalarFields maps YAML field names to their BibEntry destination; every
// other field lands in Extra.
var scalarFields = map[string]struct{}{
	"type": {}, "title": {}, "author": {}, "authors": {}, "year": {},
	"journal": {}, "booktitle": {}, "publisher": {}, "volume": {},
	"number": {}, "pages": {}, "doi": {}, "url": {},
}

// ParseYAML loads a YAML bibliography: a top-level mapping from citation
// key to an entry mapping (type, title, author or authors, year, ...).
func ParseYAML(data []byte) (map[string]ast.BibEntry, error) {
	var raw map[string]any
	if err := goyaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing bibliography YAML: %w", err)
	}

	entries := make(map[string]ast.BibEntry, len(raw))
	for key, value := range raw {
		fields, ok := value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("bibliography entry %q is not a mapping", key)
		}
		entries[key] = convertEntry(key, fields)
	}
	return entries, nil
}

func convertEntry(key string, fields map[string]any) ast.BibEntry {
	e := yaml.New(fields)

	entry := ast.BibEntry{
		Key:       key,
		Type:      scalar(e, fields, "type"),
		Title:     scalar(e, fields, "title"),
		Year:      scalar(e, fields, "year"),
		Journal:   scalar(e, fields, "journal"),
		BookTitle: scalar(e, fields, "booktitle"),
		Publisher: scalar(e, fields, "publisher"),
		Volume:    scalar(e, fields, "volume"),
		Number:    scalar(e, fields, "number"),
		Pages:     scalar(e, fields, "pages"),
		DOI:       scalar(e, fields, "doi"),
		URL:       scalar(e, fields, "url"),
		Authors:   authors(fields),
	}

	var extraKeys []string
	for k := range fields {
		if _, known := scalarFields[k]; !known {
			extraKeys = append(extraKeys, k)
		}
	}
	if len(extraKeys) > 0 {
		sort.Strings(extraKeys)
		entry.Extra = make(map[string]string, len(extraKeys))
		for _, k := range extraKeys {
			entry.Extra[k] = fmt.Sprint(fields[k])
		}
	}

	return entry
}

// scalar reads one string field, falling back to the raw value for
// YAML scalars that are not strings (a bare year parses as an int).
func scalar(e *yaml.YAML, fields map[string]any, key string) string {
	if s := e.String(key); s != "" {
		return s
	}
	if v, ok := fields[key]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return ""
}

// authors accepts either an `authors` list or a single `author` string,
// the latter split on " and " in the BibTeX tradition.
func authors(fields map[string]any) []string {
	if list, ok := fields["authors"].([]any); ok {
		out := make([]string, 0, len(list))
		for _, v := range list {
			out = append(out, fmt.Sprint(v))
		}
		return out
	}
	if s, ok := fields["author"].(string); ok && s != "" {
		parts := strings.Split(s, " and ")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			out = append(out, strings.TrimSpace(p))
		}
		return out
	}
	return nil
}
