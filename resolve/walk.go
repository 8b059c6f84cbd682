package resolve

import "github.com/acamark/acamark/ast"

// transform rebuilds a block tree, applying the math hook to every raw
// math body (inline and display) and the inline hook to every leaf inline
// node. Container blocks and inlines are copied, never aliased, so a pass
// always hands back a tree the caller owns.
type transform struct {
	math   func(string) string
	inline func(ast.Inline) (ast.Inline, error)
}

func (t transform) blocks(blocks []ast.Block) ([]ast.Block, error) {
	if blocks == nil {
		return nil, nil
	}
	out := make([]ast.Block, 0, len(blocks))
	for _, b := range blocks {
		nb, err := t.block(b)
		if err != nil {
			return nil, err
		}
		out = append(out, nb)
	}
	return out, nil
}

func (t transform) block(b ast.Block) (ast.Block, error) {
	switch n := b.(type) {
	case *ast.Paragraph:
		content, err := t.inlines(n.Content)
		if err != nil {
			return nil, err
		}
		return &ast.Paragraph{Content: content}, nil
	case *ast.Heading:
		content, err := t.inlines(n.Content)
		if err != nil {
			return nil, err
		}
		return &ast.Heading{Level: n.Level, Content: content, Label: n.Label}, nil
	case *ast.DisplayMath:
		content := n.Content
		if t.math != nil {
			content = t.math(content)
		}
		return &ast.DisplayMath{Content: content, Label: n.Label}, nil
	case *ast.BlockQuote:
		inner, err := t.blocks(n.Blocks)
		if err != nil {
			return nil, err
		}
		return &ast.BlockQuote{Blocks: inner}, nil
	case *ast.Environment:
		inner, err := t.blocks(n.Blocks)
		if err != nil {
			return nil, err
		}
		caption, err := t.inlines(n.Caption)
		if err != nil {
			return nil, err
		}
		return &ast.Environment{Kind: n.Kind, Label: n.Label, Blocks: inner, Caption: caption}, nil
	case *ast.List:
		items := make([]ast.ListItem, 0, len(n.Items))
		for _, item := range n.Items {
			inner, err := t.blocks(item.Blocks)
			if err != nil {
				return nil, err
			}
			items = append(items, ast.ListItem{Blocks: inner, Checked: item.Checked})
		}
		return &ast.List{Ordered: n.Ordered, Start: n.Start, Items: items}, nil
	case *ast.Table:
		headers, err := t.inlineRows(n.Headers)
		if err != nil {
			return nil, err
		}
		rows := make([][][]ast.Inline, 0, len(n.Rows))
		for _, row := range n.Rows {
			nr, err := t.inlineRows(row)
			if err != nil {
				return nil, err
			}
			rows = append(rows, nr)
		}
		caption, err := t.inlines(n.Caption)
		if err != nil {
			return nil, err
		}
		return &ast.Table{
			Headers:    headers,
			Alignments: n.Alignments,
			Rows:       rows,
			Label:      n.Label,
			Caption:    caption,
		}, nil
	case *ast.DescriptionList:
		items := make([]ast.DescriptionItem, 0, len(n.Items))
		for _, item := range n.Items {
			term, err := t.inlines(item.Term)
			if err != nil {
				return nil, err
			}
			def, err := t.blocks(item.Definition)
			if err != nil {
				return nil, err
			}
			items = append(items, ast.DescriptionItem{Term: term, Definition: def})
		}
		return &ast.DescriptionList{Items: items}, nil
	case *ast.Abstract:
		inner, err := t.blocks(n.Blocks)
		if err != nil {
			return nil, err
		}
		return &ast.Abstract{Blocks: inner}, nil
	default:
		// CodeBlock, ThematicBreak, TableOfContents, RawHTML, PageBreak,
		// AppendixMarker carry no rewritable content.
		return b, nil
	}
}

func (t transform) inlineRows(rows [][]ast.Inline) ([][]ast.Inline, error) {
	out := make([][]ast.Inline, 0, len(rows))
	for _, cell := range rows {
		nc, err := t.inlines(cell)
		if err != nil {
			return nil, err
		}
		out = append(out, nc)
	}
	return out, nil
}

func (t transform) inlines(inlines []ast.Inline) ([]ast.Inline, error) {
	if inlines == nil {
		return nil, nil
	}
	out := make([]ast.Inline, 0, len(inlines))
	for _, in := range inlines {
		ni, err := t.inlineNode(in)
		if err != nil {
			return nil, err
		}
		out = append(out, ni)
	}
	return out, nil
}

func (t transform) inlineNode(in ast.Inline) (ast.Inline, error) {
	switch n := in.(type) {
	case *ast.Emphasis:
		c, err := t.inlines(n.Content)
		if err != nil {
			return nil, err
		}
		return &ast.Emphasis{Content: c}, nil
	case *ast.Strong:
		c, err := t.inlines(n.Content)
		if err != nil {
			return nil, err
		}
		return &ast.Strong{Content: c}, nil
	case *ast.Strikethrough:
		c, err := t.inlines(n.Content)
		if err != nil {
			return nil, err
		}
		return &ast.Strikethrough{Content: c}, nil
	case *ast.Subscript:
		c, err := t.inlines(n.Content)
		if err != nil {
			return nil, err
		}
		return &ast.Subscript{Content: c}, nil
	case *ast.Superscript:
		c, err := t.inlines(n.Content)
		if err != nil {
			return nil, err
		}
		return &ast.Superscript{Content: c}, nil
	case *ast.SmallCaps:
		c, err := t.inlines(n.Content)
		if err != nil {
			return nil, err
		}
		return &ast.SmallCaps{Content: c}, nil
	case *ast.Link:
		c, err := t.inlines(n.Content)
		if err != nil {
			return nil, err
		}
		return &ast.Link{URL: n.URL, Title: n.Title, Content: c}, nil
	case *ast.Footnote:
		if n.ID != "" {
			return &ast.Footnote{ID: n.ID}, nil
		}
		c, err := t.inlines(n.Content)
		if err != nil {
			return nil, err
		}
		return &ast.Footnote{Content: c}, nil
	case *ast.InlineMath:
		content := n.Content
		if t.math != nil {
			content = t.math(content)
		}
		return &ast.InlineMath{Content: content}, nil
	default:
		if t.inline != nil {
			return t.inline(in)
		}
		return in, nil
	}
}

// eachInlineSeq calls fn on every inline sequence of the block tree in
// document order: paragraphs, headings, captions, table cells, terms and
// definitions, recursing into container blocks.
func eachInlineSeq(blocks []ast.Block, fn func([]ast.Inline)) {
	for _, b := range blocks {
		switch n := b.(type) {
		case *ast.Paragraph:
			fn(n.Content)
		case *ast.Heading:
			fn(n.Content)
		case *ast.BlockQuote:
			eachInlineSeq(n.Blocks, fn)
		case *ast.Environment:
			eachInlineSeq(n.Blocks, fn)
			if n.Caption != nil {
				fn(n.Caption)
			}
		case *ast.List:
			for _, item := range n.Items {
				eachInlineSeq(item.Blocks, fn)
			}
		case *ast.Table:
			for _, cell := range n.Headers {
				fn(cell)
			}
			for _, row := range n.Rows {
				for _, cell := range row {
					fn(cell)
				}
			}
			if n.Caption != nil {
				fn(n.Caption)
			}
		case *ast.DescriptionList:
			for _, item := range n.Items {
				fn(item.Term)
				eachInlineSeq(item.Definition, fn)
			}
		case *ast.Abstract:
			eachInlineSeq(n.Blocks, fn)
		}
	}
}

// eachInline calls fn on every inline node, recursing into nested content
// before moving on.
func eachInline(inlines []ast.Inline, fn func(ast.Inline)) {
	for _, in := range inlines {
		fn(in)
		switch n := in.(type) {
		case *ast.Emphasis:
			eachInline(n.Content, fn)
		case *ast.Strong:
			eachInline(n.Content, fn)
		case *ast.Strikethrough:
			eachInline(n.Content, fn)
		case *ast.Subscript:
			eachInline(n.Content, fn)
		case *ast.Superscript:
			eachInline(n.Content, fn)
		case *ast.SmallCaps:
			eachInline(n.Content, fn)
		case *ast.Link:
			eachInline(n.Content, fn)
		case *ast.Footnote:
			eachInline(n.Content, fn)
		}
	}
}
