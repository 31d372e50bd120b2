package parser

import (
	"fmt"
	"strings"

	"akhil.cc/mexdoc/doc"
	"akhil.cc/mexdoc/gen"
)

func simpleSectType(name string) (doc.SectionType, bool) {
	switch name {
	case "sa", "see":
		return doc.SectSee, true
	case "return", "returns", "result":
		return doc.SectReturn, true
	case "author":
		return doc.SectAuthor, true
	case "authors":
		return doc.SectAuthors, true
	case "version":
		return doc.SectVersion, true
	case "since":
		return doc.SectSince, true
	case "date":
		return doc.SectDate, true
	case "note":
		return doc.SectNote, true
	case "warning":
		return doc.SectWarning, true
	case "copyright":
		return doc.SectCopyright, true
	case "pre":
		return doc.SectPre, true
	case "post":
		return doc.SectPost, true
	case "invariant":
		return doc.SectInvariant, true
	case "remark", "remarks":
		return doc.SectRemark, true
	case "attention":
		return doc.SectAttention, true
	case "par":
		return doc.SectUser, true
	}
	return doc.SectUnknown, false
}

func paramSectType(name string) (doc.ParamType, bool) {
	switch name {
	case "param":
		return doc.ParamParam, true
	case "tparam":
		return doc.ParamTemplate, true
	case "retval":
		return doc.ParamRetVal, true
	case "exception", "throw", "throws":
		return doc.ParamException, true
	}
	return 0, false
}

func xrefKey(name string) (string, bool) {
	switch name {
	case "todo", "bug", "deprecated", "test":
		return name, true
	}
	return "", false
}

// structuralCmd reports whether a command terminates the body of a simple
// section, parameter description or cross-reference item.
func structuralCmd(name string) bool {
	if _, ok := sectionLevel(name); ok {
		return true
	}
	if _, ok := simpleSectType(name); ok {
		return true
	}
	if _, ok := paramSectType(name); ok {
		return true
	}
	if _, ok := xrefKey(name); ok {
		return true
	}
	return name == "xrefitem"
}

func (p *parser) handleCommand(c doc.Composite, tok token) {
	name := tok.name
	if t, ok := simpleSectType(name); ok {
		p.parseSimpleSect(c, t)
		return
	}
	if t, ok := paramSectType(name); ok {
		p.parseParamSect(c, t)
		return
	}
	if key, ok := xrefKey(name); ok {
		p.parseXRef(c, key, gen.English{}.Tr(key))
		return
	}
	switch name {
	case "b":
		p.styleNextWord(c, doc.Bold)
	case "e", "em", "a":
		p.styleNextWord(c, doc.Italic)
	case "c", "p":
		p.styleNextWord(c, doc.Code)
	case "n":
		c.Append(doc.NewLineBreak(c))
	case "hruler":
		c.Append(doc.NewHorRule(c))
	case "li", "arg":
		p.parseSimpleListCmd(c)
	case "xrefitem":
		key := p.lex.readWord()
		_, _ = p.lex.readQuoted() // per-item heading, unused by the backends
		title, _ := p.lex.readQuoted()
		p.parseXRef(c, key, title)
	case "code":
		p.parseVerbatim(c, doc.VerbCode, "endcode")
	case "verbatim":
		p.parseVerbatim(c, doc.VerbVerbatim, "endverbatim")
	case "htmlonly":
		p.parseVerbatim(c, doc.VerbHTMLOnly, "endhtmlonly")
	case "manonly":
		p.parseVerbatim(c, doc.VerbManOnly, "endmanonly")
	case "latexonly":
		p.parseVerbatim(c, doc.VerbLatexOnly, "endlatexonly")
	case "xmlonly":
		p.parseVerbatim(c, doc.VerbXMLOnly, "endxmlonly")
	case "rtfonly":
		p.parseVerbatim(c, doc.VerbRTFOnly, "endrtfonly")
	case "dot":
		p.parseVerbatim(c, doc.VerbDot, "enddot")
	case "msc":
		p.parseVerbatim(c, doc.VerbMsc, "endmsc")
	case "f$":
		p.parseFormula(c, "f$", "", "")
	case "f[":
		p.parseFormula(c, "f]", "\\[", "\\]")
	case "f{":
		env := p.lex.readUntilByte('}')
		if p.lex.peekByte() == '{' {
			p.lex.pos++
		}
		p.parseFormula(c, "f}", "\\begin{"+env+"}", "\\end{"+env+"}")
	case "include":
		p.parseInclude(c, doc.IncInclude)
	case "includelineno":
		p.parseInclude(c, doc.IncWithLines)
	case "htmlinclude":
		p.parseInclude(c, doc.IncHTMLInclude)
	case "verbinclude":
		p.parseInclude(c, doc.IncVerbInclude)
	case "snippet":
		p.parseInclude(c, doc.IncSnippet)
	case "dontinclude":
		p.parseInclude(c, doc.IncDontInclude)
	case "line":
		p.parseIncOperator(c, doc.IncOpLine)
	case "skipline":
		p.parseIncOperator(c, doc.IncOpSkipLine)
	case "skip":
		p.parseIncOperator(c, doc.IncOpSkip)
	case "until":
		p.parseIncOperator(c, doc.IncOpUntil)
	case "ref":
		p.parseRefCmd(c)
	case "anchor":
		id := p.lex.readWord()
		a := doc.NewAnchor(c, id, "")
		if t, ok := p.resolve(id); ok {
			a.File = t.File
		}
		c.Append(a)
	case "cite":
		p.parseCite(c)
	case "link":
		p.parseLinkCmd(c)
	case "secreflist":
		p.parseSecRefList(c)
	case "parblock":
		b := doc.NewParBlock(c)
		c.Append(b)
		p.parseBlockCmd(b, "endparblock")
	case "internal":
		i := doc.NewInternal(c)
		c.Append(i)
		p.parseBlockCmd(i, "endinternal")
	case "copydoc":
		c.Append(doc.NewCopy(c, p.lex.readWord(), true, true))
	case "copybrief":
		c.Append(doc.NewCopy(c, p.lex.readWord(), true, false))
	case "copydetails":
		c.Append(doc.NewCopy(c, p.lex.readWord(), false, true))
	case "addindex":
		c.Append(doc.NewIndexEntry(c, p.lex.readRestOfLine(), p.opt.Context))
	case "image":
		p.parseImage(c)
	case "dotfile", "mscfile", "diafile":
		p.parseFileCmd(c, name)
	case "endcode", "endverbatim", "endhtmlonly", "endmanonly", "endlatexonly",
		"endxmlonly", "endrtfonly", "enddot", "endmsc", "endlink",
		"endparblock", "endinternal", "endsecreflist", "f]", "f}":
		p.warnf("found \\%s without matching opening command", name)
	case "refitem":
		p.warnf("\\refitem outside of \\secreflist")
		p.lex.readRestOfLine()
	case "brief", "details", "short":
		// comment sectioning is handled before the body reaches the parser
		p.warnf("\\%s has no effect here", name)
	default:
		p.warnf("unknown command \\%s", name)
		p.appendWord(c, "\\"+name)
	}
}

// styleNextWord styles exactly one following word, the way \b and \c do.
func (p *parser) styleNextWord(c doc.Composite, st doc.Style) {
	w := p.lex.readWord()
	if w == "" {
		p.warnf("expected a word after the style command")
		return
	}
	c.Append(doc.NewStyleChange(c, len(c.Children()), st, true, nil))
	p.appendWord(c, w)
	c.Append(doc.NewStyleChange(c, len(c.Children()), st, false, nil))
}

// parseSectBody fills one paragraph of a section-like body. It stops on a
// blank line, a structural command, a container boundary, or any command
// named in extraStops; the terminator is pushed back.
func (p *parser) parseSectBody(inner *doc.Para, extraStops ...string) {
	for {
		tok := p.next()
		switch tok.kind {
		case tEOF:
			p.finishPara(inner)
			return
		case tParaBreak:
			p.finishPara(inner)
			p.push(tok)
			return
		case tListItem:
			p.parseAutoList(inner, tok)
			continue
		}
		if tok.kind == tCommand {
			stop := structuralCmd(tok.name)
			for _, s := range extraStops {
				if tok.name == s {
					stop = true
				}
			}
			if stop {
				p.finishPara(inner)
				p.push(tok)
				return
			}
		}
		if p.inlineTok(inner, tok) {
			continue
		}
		p.finishPara(inner)
		p.push(tok)
		return
	}
}

// parseSimpleSect parses the body of \see, \note and friends. A section
// directly following one of the same type merges into it, separated by a
// marker node, so backends emit a single heading.
func (p *parser) parseSimpleSect(c doc.Composite, typ doc.SectionType) {
	var ss *doc.SimpleSect
	if prev, ok := lastNonWS(c).(*doc.SimpleSect); ok && prev.Type == typ && typ != doc.SectUser {
		ss = prev
		ss.Append(doc.NewSimpleSectSep(ss))
	} else {
		ss = doc.NewSimpleSect(c, typ)
		c.Append(ss)
	}
	if typ == doc.SectUser {
		title := p.lex.readRestOfLine()
		if title != "" {
			t := doc.NewTitle(ss)
			p.fillWords(t, title)
			ss.SetTitle(t)
		}
	}
	inner := doc.NewPara(ss)
	p.parseSectBody(inner)
	if !inner.IsEmpty() {
		ss.Append(inner)
	}
	doc.MarkParagraphs(ss)
}

// parseParamSect parses one \param style entry. Consecutive entries of the
// same flavor collect under a single section node so they render as one
// table.
func (p *parser) parseParamSect(c doc.Composite, typ doc.ParamType) {
	var ps *doc.ParamSect
	if prev, ok := lastNonWS(c).(*doc.ParamSect); ok && prev.Type == typ {
		ps = prev
	} else {
		ps = doc.NewParamSect(c, typ)
		c.Append(ps)
	}
	dir := doc.DirUnspecified
	if typ == doc.ParamParam {
		switch strings.ReplaceAll(p.lex.readBracketOption(), " ", "") {
		case "in":
			dir = doc.DirIn
		case "out":
			dir = doc.DirOut
		case "in,out", "inout", "out,in":
			dir = doc.DirInOut
		}
		if dir != doc.DirUnspecified {
			ps.HasInOut = true
		}
	}
	pl := doc.NewParamList(ps, typ, dir)
	ps.Append(pl)
	names := p.lex.readWord()
	if names == "" {
		p.warnf("parameter command is missing a name")
	}
	for _, nm := range strings.Split(names, ",") {
		if nm = strings.TrimSpace(nm); nm != "" {
			pl.AddParam(doc.NewWord(pl, nm))
		}
	}
	desc := doc.NewPara(pl)
	p.parseSectBody(desc)
	if !desc.IsEmpty() {
		pl.Append(desc)
	}
	doc.MarkParagraphs(pl)
	markParamLists(ps)
}

func markParamLists(ps *doc.ParamSect) {
	var lists []*doc.ParamList
	for _, n := range ps.Children() {
		if l, ok := n.(*doc.ParamList); ok {
			lists = append(lists, l)
		}
	}
	for i, l := range lists {
		l.MarkFirst(i == 0)
		l.MarkLast(i == len(lists)-1)
	}
}

// parseXRef parses a cross-referenced list item such as \todo. The item
// links back to its collecting page when the resolver knows one.
func (p *parser) parseXRef(c doc.Composite, key, title string) {
	p.xrefN++
	x := doc.NewXRefItem(c, p.xrefN, key)
	x.Title = title
	if t, ok := p.resolve(key); ok {
		x.File, x.Anchor = t.File, t.Anchor
	} else {
		x.File = key
		x.Anchor = fmt.Sprintf("_%s%06d", key, p.xrefN)
	}
	c.Append(x)
	desc := doc.NewPara(x)
	p.parseSectBody(desc)
	if !desc.IsEmpty() {
		x.Append(desc)
	}
	doc.MarkParagraphs(x)
}

// parseSimpleListCmd parses one \li item, extending the previous item's
// list when they are adjacent.
func (p *parser) parseSimpleListCmd(c doc.Composite) {
	var sl *doc.SimpleList
	if prev, ok := lastNonWS(c).(*doc.SimpleList); ok {
		sl = prev
	} else {
		sl = doc.NewSimpleList(c)
		c.Append(sl)
	}
	item := doc.NewSimpleListItem(sl)
	sl.Append(item)
	inner := doc.NewPara(item)
	p.parseSectBody(inner, "li", "arg")
	if !inner.IsEmpty() {
		item.Append(inner)
	}
	doc.MarkParagraphs(item)
}

// parseBlockCmd fills a block construct that runs until an explicit end
// command, such as \parblock or \internal.
func (p *parser) parseBlockCmd(c doc.Composite, endName string) {
	for {
		tok := p.next()
		switch tok.kind {
		case tEOF:
			p.warnf("reached end of comment while looking for \\%s", endName)
			doc.MarkParagraphs(c)
			return
		case tParaBreak, tNewline, tSpace:
			continue
		}
		if tok.kind == tCommand && tok.name == endName {
			doc.MarkParagraphs(c)
			return
		}
		p.push(tok)
		para := doc.NewPara(c)
		t := p.parseParaStop(para, endName)
		if !para.IsEmpty() {
			c.Append(para)
		}
		if t == termEOF || t == termClose {
			doc.MarkParagraphs(c)
			return
		}
	}
}

// parseParaStop is parsePara with one extra terminator: the named end
// command, which it consumes.
func (p *parser) parseParaStop(para *doc.Para, endName string) term {
	for {
		tok := p.next()
		switch tok.kind {
		case tEOF:
			p.finishPara(para)
			return termEOF
		case tParaBreak:
			p.finishPara(para)
			return termBlank
		case tListItem:
			p.parseAutoList(para, tok)
			continue
		}
		if tok.kind == tCommand && tok.name == endName {
			p.finishPara(para)
			p.push(tok)
			return termBlank
		}
		if p.inlineTok(para, tok) {
			continue
		}
		p.finishPara(para)
		p.push(tok)
		if tok.kind == tCommand {
			return termStruct
		}
		return termClose
	}
}

func (p *parser) parseVerbatim(c doc.Composite, typ doc.VerbatimType, endName string) {
	lang := ""
	isBlock := false
	switch typ {
	case doc.VerbCode:
		lang = p.lex.readBraceOption()
	case doc.VerbHTMLOnly:
		isBlock = p.lex.readBracketOption() == "block"
	}
	text, found := p.lex.readUntilCommand(endName)
	if !found {
		p.errorf("verbatim block is missing its \\%s", endName)
	}
	text = strings.TrimPrefix(text, "\n")
	v := doc.NewVerbatim(c, p.opt.Context, text, typ, p.opt.IsExample, p.opt.ExampleFile)
	v.Lang = lang
	v.IsBlock = isBlock
	c.Append(v)
}

func (p *parser) parseFormula(c doc.Composite, endName, pre, post string) {
	text, found := p.lex.readUntilCommand(endName)
	if !found {
		p.errorf("formula is missing its closing \\%s", endName)
	}
	p.formulaN++
	f := doc.NewFormula(c, p.formulaN, fmt.Sprintf("form_%d", p.formulaN), pre+strings.TrimSpace(text)+post)
	c.Append(f)
}

func (p *parser) parseInclude(c doc.Composite, typ doc.IncludeType) {
	if typ == doc.IncHTMLInclude {
		p.lex.readBracketOption() // [block] changes nothing for an include
	}
	file, ok := p.lex.readQuoted()
	if !ok {
		p.warnf("include command is missing a file name")
		return
	}
	blockID := ""
	if typ == doc.IncSnippet {
		blockID = p.lex.readWord()
	}
	inc := doc.NewInclude(c, file, p.opt.Context, typ, p.opt.IsExample, p.opt.ExampleFile, blockID)
	text, err := p.readIncludeFile(file)
	if err != nil {
		p.warnf("unable to read included file %q: %v", file, err)
	}
	if typ == doc.IncSnippet {
		snip, found := snippet(text, blockID)
		if !found {
			p.warnf("snippet block %q not found in %q", blockID, file)
		}
		text = snip
	}
	inc.Text = text
	if typ == doc.IncDontInclude {
		p.inc = &includeState{lines: strings.Split(text, "\n")}
	}
	c.Append(inc)
}

func (p *parser) readIncludeFile(name string) (string, error) {
	if p.opt.Files == nil {
		return "", fmt.Errorf("no include path configured")
	}
	b, err := p.opt.Files.ReadFile(name)
	return string(b), err
}

func (p *parser) parseIncOperator(c doc.Composite, typ doc.IncOpType) {
	pattern := p.lex.readRestOfLine()
	op := doc.NewIncOperator(c, typ, pattern, p.opt.Context, p.opt.IsExample, p.opt.ExampleFile)
	if p.inc == nil {
		p.warnf("include operator used without a preceding \\dontinclude")
	} else {
		op.Text = p.inc.apply(typ, pattern)
	}
	c.Append(op)
}

// includeState is the read cursor \dontinclude leaves behind for the
// streaming operators.
type includeState struct {
	lines []string
	idx   int
}

func (s *includeState) apply(t doc.IncOpType, pattern string) string {
	switch t {
	case doc.IncOpLine, doc.IncOpSkipLine:
		for ; s.idx < len(s.lines); s.idx++ {
			if strings.Contains(s.lines[s.idx], pattern) {
				l := s.lines[s.idx]
				s.idx++
				return l
			}
		}
	case doc.IncOpSkip:
		for ; s.idx < len(s.lines); s.idx++ {
			if strings.Contains(s.lines[s.idx], pattern) {
				return ""
			}
		}
	case doc.IncOpUntil:
		var b strings.Builder
		for ; s.idx < len(s.lines); s.idx++ {
			b.WriteString(s.lines[s.idx])
			b.WriteByte('\n')
			if strings.Contains(s.lines[s.idx], pattern) {
				s.idx++
				break
			}
		}
		return strings.TrimSuffix(b.String(), "\n")
	}
	return ""
}

// snippet cuts the text between the two [id] marker lines.
func snippet(text, id string) (string, bool) {
	marker := "[" + id + "]"
	lines := strings.Split(text, "\n")
	start := -1
	for i, l := range lines {
		if !strings.Contains(l, marker) {
			continue
		}
		if start == -1 {
			start = i + 1
			continue
		}
		return strings.Join(lines[start:i], "\n"), true
	}
	return "", false
}

func (p *parser) parseRefCmd(c doc.Composite) {
	target := p.lex.readWord()
	var text string
	hasText := false
	if p.lex.peekQuoted() {
		text, _ = p.lex.readQuoted()
		hasText = true
	}
	t, ok := p.resolve(target)
	if !ok {
		p.warnf("unable to resolve reference to %q", target)
		if hasText {
			p.fillWords(c, text)
		} else {
			p.appendWord(c, target)
		}
		return
	}
	r := doc.NewRef(c)
	r.Ref = t.Ref
	r.File = t.File
	r.Anchor = t.Anchor
	r.RelPath = t.RelPath
	r.TargetTitle = t.Tooltip
	r.RefToAnchor = t.Anchor != ""
	r.RefToSection = t.Anchor == ""
	r.IsSubPage = t.IsSubPage
	if hasText {
		p.fillWords(r, text)
	}
	c.Append(r)
}

func (p *parser) parseCite(c doc.Composite) {
	label := p.lex.readWord()
	ct := doc.NewCite(c, label)
	if t, ok := p.resolve("cite:" + label); ok {
		ct.File, ct.Anchor, ct.Ref, ct.RelPath = t.File, t.Anchor, t.Ref, t.RelPath
	} else {
		p.warnf("citation %q is not in the bibliography", label)
	}
	c.Append(ct)
}

// parseLinkCmd parses \link target text... \endlink.
func (p *parser) parseLinkCmd(c doc.Composite) {
	target := p.lex.readWord()
	t, ok := p.resolve(target)
	if !ok {
		p.warnf("unable to resolve link to %q", target)
	}
	lk := doc.NewLink(c, t.File, t.RelPath, t.Ref, t.Anchor)
	c.Append(lk)
	for {
		tok := p.next()
		switch tok.kind {
		case tEOF:
			p.warnf("reached end of comment while looking for \\endlink")
			return
		case tParaBreak:
			p.warnf("\\endlink is missing before the end of the paragraph")
			p.push(tok)
			return
		}
		if tok.kind == tCommand && tok.name == "endlink" {
			return
		}
		if !p.inlineTok(lk, tok) {
			p.warnf("\\endlink is missing")
			p.push(tok)
			return
		}
	}
}

func (p *parser) parseSecRefList(c doc.Composite) {
	list := doc.NewSecRefList(c)
	c.Append(list)
	for {
		tok := p.next()
		switch tok.kind {
		case tEOF:
			p.warnf("reached end of comment while looking for \\endsecreflist")
			return
		case tSpace, tNewline, tParaBreak:
			continue
		}
		if tok.kind != tCommand {
			p.warnf("only \\refitem is allowed inside \\secreflist")
			continue
		}
		switch tok.name {
		case "endsecreflist":
			return
		case "refitem":
			target := p.lex.readWord()
			item := doc.NewSecRefItem(list, target)
			if t, ok := p.resolve(target); ok {
				item.File, item.Anchor = t.File, t.Anchor
			} else {
				p.warnf("unable to resolve reference to %q", target)
			}
			p.fillWords(item, p.lex.readRestOfLine())
			list.Append(item)
		default:
			p.warnf("only \\refitem is allowed inside \\secreflist")
		}
	}
}

func (p *parser) parseImage(c doc.Composite) {
	format := p.lex.readWord()
	var typ doc.ImageType
	switch format {
	case "html":
		typ = doc.ImageHTML
	case "latex":
		typ = doc.ImageLatex
	case "rtf":
		typ = doc.ImageRTF
	case "docbook":
		typ = doc.ImageDocbook
	default:
		p.warnf("unknown image format %q, assuming html", format)
		typ = doc.ImageHTML
	}
	name, ok := p.lex.readQuoted()
	if !ok {
		p.warnf("\\image is missing a file name")
		return
	}
	img := doc.NewImage(c, nil, name, typ, "")
	if p.lex.peekQuoted() {
		caption, _ := p.lex.readQuoted()
		p.fillWords(img, caption)
	}
	p.sizeOptions(&img.Width, &img.Height)
	c.Append(img)
}

func (p *parser) parseFileCmd(c doc.Composite, name string) {
	file, ok := p.lex.readQuoted()
	if !ok {
		p.warnf("\\%s is missing a file name", name)
		return
	}
	var node doc.Composite
	var w, h *string
	switch name {
	case "dotfile":
		d := doc.NewDotFile(c, file, p.opt.Context)
		node, w, h = d, &d.Width, &d.Height
	case "mscfile":
		m := doc.NewMscFile(c, file, p.opt.Context)
		node, w, h = m, &m.Width, &m.Height
	default:
		d := doc.NewDiaFile(c, file, p.opt.Context)
		node, w, h = d, &d.Width, &d.Height
	}
	if p.lex.peekQuoted() {
		caption, _ := p.lex.readQuoted()
		p.fillWords(node, caption)
	}
	p.sizeOptions(w, h)
	c.Append(node)
}

// sizeOptions consumes trailing width= and height= specifiers on the
// current line.
func (p *parser) sizeOptions(width, height *string) {
	for {
		p.lex.skipSpace()
		b := p.lex.peekByte()
		if b == 0 || b == '\n' {
			return
		}
		w := p.lex.readWord()
		switch {
		case strings.HasPrefix(w, "width="):
			*width = w[len("width="):]
		case strings.HasPrefix(w, "height="):
			*height = w[len("height="):]
		default:
			p.warnf("ignoring unexpected image option %q", w)
		}
	}
}

// fillWords splits plain text into word and whitespace children of c.
func (p *parser) fillWords(c doc.Composite, text string) {
	fields := strings.Fields(text)
	for i, f := range fields {
		if i > 0 {
			c.Append(doc.NewWhiteSpace(c, " "))
		}
		c.Append(doc.NewWord(c, f))
	}
}
