package parser

import "akhil.cc/mexdoc/doc"

// styleTag maps style tags to the style they toggle.
var styleTag = map[string]doc.Style{
	"b":      doc.Bold,
	"strong": doc.Bold,
	"i":      doc.Italic,
	"em":     doc.Italic,
	"code":   doc.Code,
	"tt":     doc.Code,
	"center": doc.Center,
	"small":  doc.Small,
	"sub":    doc.Subscript,
	"sup":    doc.Superscript,
	"pre":    doc.Preformatted,
	"span":   doc.Span,
	"div":    doc.Div,
}

func (p *parser) isOpenContainer(tag string) bool {
	for _, t := range p.containers {
		if t == tag {
			return true
		}
	}
	return false
}

// isSiblingStart reports whether an opening tag implicitly closes the
// current item, the way a second <li> ends the one before it.
func (p *parser) isSiblingStart(tag string) bool {
	switch tag {
	case "li":
		return p.isOpenContainer("ul") || p.isOpenContainer("ol")
	case "dt", "dd":
		return p.isOpenContainer("dl")
	case "tr", "td", "th", "caption":
		return p.isOpenContainer("table")
	}
	return false
}

func (p *parser) styleEnable(c doc.Composite, st doc.Style, attrs doc.AttrList) {
	c.Append(doc.NewStyleChange(c, len(c.Children()), st, true, attrs))
	p.styleBits |= st
}

func (p *parser) styleDisable(c doc.Composite, st doc.Style) {
	if p.styleBits&st == 0 {
		p.warnf("found </%s> without matching <%s>", st, st)
		return
	}
	c.Append(doc.NewStyleChange(c, len(c.Children()), st, false, nil))
	p.styleBits &^= st
}

func (p *parser) handleTagOpen(c doc.Composite, tok token) {
	if st, ok := styleTag[tok.name]; ok {
		p.styleEnable(c, st, tok.attrs)
		return
	}
	switch tok.name {
	case "br":
		c.Append(doc.NewLineBreak(c))
	case "hr":
		c.Append(doc.NewHorRule(c))
	case "p":
		// paragraphs come from blank lines; the tag itself carries nothing
	case "a":
		if href, ok := tok.attrs.Get("href"); ok {
			h := doc.NewHRef(c, tok.attrs, href, "")
			c.Append(h)
			p.parseInlineUntilClose(h, "a")
		} else if name, ok := tok.attrs.Get("name"); ok {
			c.Append(doc.NewAnchor(c, name, ""))
		} else if id, ok := tok.attrs.Get("id"); ok {
			c.Append(doc.NewAnchor(c, id, ""))
		} else {
			p.warnf("<a> tag without href or name attribute")
		}
	case "img":
		src, ok := tok.attrs.Get("src")
		if !ok {
			p.warnf("<img> tag without src attribute")
			return
		}
		c.Append(doc.NewImage(c, tok.attrs, src, doc.ImageHTML, src))
	case "ul":
		p.parseHTMLList(c, tok.attrs, doc.Unordered)
	case "ol":
		p.parseHTMLList(c, tok.attrs, doc.Ordered)
	case "dl":
		p.parseHTMLDescList(c, tok.attrs)
	case "table":
		p.parseHTMLTable(c, tok.attrs)
	case "blockquote":
		b := doc.NewHTMLBlockQuote(c, tok.attrs)
		c.Append(b)
		p.parseBlocks(b, "blockquote")
	case "h1", "h2", "h3", "h4", "h5", "h6":
		h := doc.NewHTMLHeader(c, tok.attrs, int(tok.name[1]-'0'))
		c.Append(h)
		p.parseInlineUntilClose(h, tok.name)
	case "li":
		p.warnf("lonely <li> tag found")
	case "dt", "dd", "tr", "td", "th", "caption":
		p.warnf("<%s> tag outside of its list or table", tok.name)
	default:
		p.warnf("unsupported HTML tag <%s>", tok.name)
	}
}

func (p *parser) handleTagClose(c doc.Composite, tok token) {
	if st, ok := styleTag[tok.name]; ok {
		p.styleDisable(c, st)
		return
	}
	switch tok.name {
	case "p", "br", "hr", "img":
		// nothing to close
	case "a":
		p.warnf("found </a> without matching <a>")
	default:
		p.warnf("unexpected closing tag </%s>", tok.name)
	}
}

// parseInlineUntilClose fills c with inline content up to the closing tag.
// Paragraph breaks and structural boundaries end it early with a warning.
func (p *parser) parseInlineUntilClose(c doc.Composite, tag string) {
	for {
		tok := p.next()
		switch tok.kind {
		case tEOF:
			p.warnf("reached end of comment while <%s> is still open", tag)
			return
		case tParaBreak:
			p.warnf("</%s> is missing before the end of the paragraph", tag)
			p.push(tok)
			return
		}
		if tok.kind == tTagClose && tok.name == tag {
			return
		}
		if !p.inlineTok(c, tok) {
			p.warnf("</%s> is missing", tag)
			p.push(tok)
			return
		}
	}
}

// parseBlocks fills a structural container with paragraphs until its own
// closing tag. Boundaries of enclosing containers and sibling starters are
// pushed back for the caller.
func (p *parser) parseBlocks(c doc.Composite, self string) {
	p.containers = append(p.containers, self)
	defer func() { p.containers = p.containers[:len(p.containers)-1] }()
	for {
		tok := p.next()
		switch tok.kind {
		case tEOF:
			p.warnf("reached end of comment while <%s> is still open", self)
			doc.MarkParagraphs(c)
			return
		case tSpace, tNewline, tParaBreak:
			continue
		case tTagClose:
			if tok.name == self {
				doc.MarkParagraphs(c)
				return
			}
			if p.isOpenContainer(tok.name) {
				p.push(tok)
				doc.MarkParagraphs(c)
				return
			}
			p.warnf("unexpected closing tag </%s> inside <%s>", tok.name, self)
			continue
		case tTagOpen:
			if p.isSiblingStart(tok.name) {
				p.push(tok)
				doc.MarkParagraphs(c)
				return
			}
		}
		p.push(tok)
		para := doc.NewPara(c)
		t := p.parsePara(para)
		if !para.IsEmpty() {
			c.Append(para)
		}
		switch t {
		case termEOF:
			p.warnf("reached end of comment while <%s> is still open", self)
			doc.MarkParagraphs(c)
			return
		case termStruct:
			bad := p.next()
			p.warnf("section command \\%s is not allowed inside <%s>", bad.name, self)
			p.lex.readRestOfLine()
		}
	}
}

func (p *parser) parseHTMLList(parent doc.Composite, attrs doc.AttrList, typ doc.ListType) {
	tag := "ul"
	if typ == doc.Ordered {
		tag = "ol"
	}
	list := doc.NewHTMLList(parent, attrs, typ)
	parent.Append(list)
	p.containers = append(p.containers, tag)
	defer func() { p.containers = p.containers[:len(p.containers)-1] }()
	num := 1
	for {
		tok := p.next()
		switch tok.kind {
		case tEOF:
			p.warnf("reached end of comment while <%s> is still open", tag)
			return
		case tSpace, tNewline, tParaBreak:
			continue
		case tTagOpen:
			if tok.name == "li" {
				item := doc.NewHTMLListItem(list, tok.attrs, num)
				num++
				list.Append(item)
				p.parseBlocks(item, "li")
				continue
			}
			p.warnf("expected <li> inside <%s>, found <%s>", tag, tok.name)
		case tTagClose:
			if tok.name == tag {
				return
			}
			if p.isOpenContainer(tok.name) {
				p.push(tok)
				return
			}
			p.warnf("unexpected closing tag </%s> inside <%s>", tok.name, tag)
		default:
			p.warnf("content outside <li> inside <%s>", tag)
		}
	}
}

func (p *parser) parseHTMLDescList(parent doc.Composite, attrs doc.AttrList) {
	list := doc.NewHTMLDescList(parent, attrs)
	parent.Append(list)
	p.containers = append(p.containers, "dl")
	defer func() { p.containers = p.containers[:len(p.containers)-1] }()
	for {
		tok := p.next()
		switch tok.kind {
		case tEOF:
			p.warnf("reached end of comment while <dl> is still open")
			return
		case tSpace, tNewline, tParaBreak:
			continue
		case tTagOpen:
			switch tok.name {
			case "dt":
				t := doc.NewHTMLDescTitle(list, tok.attrs)
				list.Append(t)
				p.parseBlocks(t, "dt")
			case "dd":
				d := doc.NewHTMLDescData(list, tok.attrs)
				list.Append(d)
				p.parseBlocks(d, "dd")
			default:
				p.warnf("expected <dt> or <dd> inside <dl>, found <%s>", tok.name)
			}
		case tTagClose:
			if tok.name == "dl" {
				return
			}
			if p.isOpenContainer(tok.name) {
				p.push(tok)
				return
			}
			p.warnf("unexpected closing tag </%s> inside <dl>", tok.name)
		default:
			p.warnf("content outside <dt> or <dd> inside <dl>")
		}
	}
}

func (p *parser) parseHTMLTable(parent doc.Composite, attrs doc.AttrList) {
	table := doc.NewHTMLTable(parent, attrs)
	parent.Append(table)
	p.containers = append(p.containers, "table")
	defer func() { p.containers = p.containers[:len(p.containers)-1] }()
	for {
		tok := p.next()
		switch tok.kind {
		case tEOF:
			p.warnf("reached end of comment while <table> is still open")
			return
		case tSpace, tNewline, tParaBreak:
			continue
		case tTagOpen:
			switch tok.name {
			case "tr":
				row := doc.NewHTMLRow(table, tok.attrs)
				table.Append(row)
				p.parseRow(row)
			case "td", "th":
				// a cell with no row opens one implicitly
				row := doc.NewHTMLRow(table, nil)
				table.Append(row)
				p.push(tok)
				p.parseRow(row)
			case "caption":
				if table.HasCaption() {
					p.warnf("table already has a caption")
					p.parseInlineUntilClose(doc.NewHTMLCaption(table, tok.attrs), "caption")
					continue
				}
				caption := doc.NewHTMLCaption(table, tok.attrs)
				table.SetCaption(caption)
				p.parseInlineUntilClose(caption, "caption")
			case "thead", "tbody", "tfoot":
				// row groups carry no meaning here
			default:
				p.warnf("expected <tr> inside <table>, found <%s>", tok.name)
			}
		case tTagClose:
			switch tok.name {
			case "table":
				return
			case "thead", "tbody", "tfoot":
				continue
			}
			if p.isOpenContainer(tok.name) {
				p.push(tok)
				return
			}
			p.warnf("unexpected closing tag </%s> inside <table>", tok.name)
		default:
			p.warnf("content outside of cells inside <table>")
		}
	}
}

func (p *parser) parseRow(row *doc.HTMLRow) {
	p.containers = append(p.containers, "tr")
	defer func() { p.containers = p.containers[:len(p.containers)-1] }()
	for {
		tok := p.next()
		switch tok.kind {
		case tEOF:
			p.warnf("reached end of comment while <tr> is still open")
			return
		case tSpace, tNewline, tParaBreak:
			continue
		case tTagOpen:
			switch tok.name {
			case "td", "th":
				cell := doc.NewHTMLCell(row, tok.attrs, tok.name == "th")
				row.Append(cell)
				p.parseBlocks(cell, tok.name)
			case "tr":
				p.push(tok)
				return
			default:
				p.warnf("expected <td> or <th> inside <tr>, found <%s>", tok.name)
			}
		case tTagClose:
			if tok.name == "tr" {
				return
			}
			if p.isOpenContainer(tok.name) {
				p.push(tok)
				return
			}
			p.warnf("unexpected closing tag </%s> inside <tr>", tok.name)
		default:
			p.warnf("content outside of cells inside <tr>")
		}
	}
}
