// MIT License

// Copyright (c) 2018 Akhil Indurti

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package html renders a document tree as HTML.
//
// The parser nests block constructs such as lists and tables inside
// paragraph nodes, but HTML forbids them inside <p>. The balancer closes
// the open paragraph before such a construct and reopens it after, unless
// the construct sits at the paragraph's edge, so the output never carries
// an empty <p></p> pair.
package html // import "akhil.cc/mexdoc/gen/html"

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"akhil.cc/mexdoc/doc"
	"akhil.cc/mexdoc/entity"
	"akhil.cc/mexdoc/gen"
)

const (
	prefragStart = "<div class=\"fragment\"><pre class=\"fragment\">"
	prefragEnd   = "</pre></div>"
)

// stickyCountWriter keeps the first write error and swallows the rest, so
// the visitor never has to check errors mid-traversal.
type stickyCountWriter struct {
	n   int64
	err error
	w   io.Writer
}

func (c *stickyCountWriter) Write(p []byte) (n int, err error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err = c.w.Write(p)
	c.err = err
	c.n += int64(n)
	return
}

// IndexItem is one search index registration collected during rendering.
type IndexItem struct {
	Anchor string
	Entry  string
}

// Visitor writes HTML for every node it is dispatched. It implements
// gen.Backend; use gen.Walk or Render to drive it.
type Visitor struct {
	w         *stickyCountWriter
	ctx       *gen.Context
	hide      bool
	hideStack []bool
	diagramN  int
	index     []IndexItem
}

// New returns a visitor writing to w. A nil ctx acts like the zero
// context.
func New(w io.Writer, ctx *gen.Context) *Visitor {
	if ctx == nil {
		ctx = &gen.Context{}
	}
	return &Visitor{w: &stickyCountWriter{w: w}, ctx: ctx}
}

// Render walks n with a fresh visitor and returns the first write error.
func Render(w io.Writer, n doc.Node, ctx *gen.Context) error {
	v := New(w, ctx)
	gen.Walk(v, n)
	return v.Err()
}

// Err returns the first error encountered while writing.
func (v *Visitor) Err() error { return v.w.err }

// Index returns the entries registered through AddIndexItem, in order.
func (v *Visitor) Index() []IndexItem { return v.index }

// AddIndexItem records a search index entry. The HTML format keeps them
// aside for the surrounding tool instead of writing markup.
func (v *Visitor) AddIndexItem(anchor, entry string) {
	v.index = append(v.index, IndexItem{Anchor: anchor, Entry: entry})
}

func (v *Visitor) pf(format string, args ...interface{}) {
	fmt.Fprintf(v.w, format, args...)
}

func (v *Visitor) ps(s string) {
	io.WriteString(v.w, s)
}

// filter writes s with the HTML special characters escaped.
func (v *Visitor) filter(s string) {
	for _, r := range s {
		switch r {
		case '<':
			v.ps("&lt;")
		case '>':
			v.ps("&gt;")
		case '&':
			v.ps("&amp;")
		default:
			v.pf("%c", r)
		}
	}
}

func escapeAttr(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return strings.ReplaceAll(s, "\"", "&quot;")
}

// attrString renders an attribute list, skipping the named attributes.
func attrString(attrs doc.AttrList, skip ...string) string {
	var b strings.Builder
	for _, a := range attrs {
		skipped := false
		for _, s := range skip {
			if a.Name == s {
				skipped = true
			}
		}
		if skipped {
			continue
		}
		b.WriteString(" ")
		b.WriteString(a.Name)
		b.WriteString("=\"")
		b.WriteString(escapeAttr(a.Value))
		b.WriteString("\"")
	}
	return b.String()
}

func (v *Visitor) startLink(ref, file, relPath, anchor, tooltip string) {
	if ref != "" {
		v.ps("<a class=\"elRef\" ")
	} else {
		v.ps("<a class=\"el\" ")
	}
	v.pf("href=\"%s", relPath)
	if file != "" {
		v.pf("%s%s", file, v.ctx.FileSuffix)
	}
	if anchor != "" {
		v.pf("#%s", anchor)
	}
	v.ps("\"")
	if tooltip != "" {
		v.pf(" title=\"%s\"", escapeAttr(tooltip))
	}
	v.ps(">")
}

func (v *Visitor) endLink() { v.ps("</a>") }

func (v *Visitor) pushHidden() { v.hideStack = append(v.hideStack, v.hide) }

func (v *Visitor) popHidden() {
	if n := len(v.hideStack); n > 0 {
		v.hide = v.hideStack[n-1]
		v.hideStack = v.hideStack[:n-1]
	} else {
		v.hide = false
	}
}

func (v *Visitor) imageExt() string {
	if v.ctx.ImageExt != "" {
		return v.ctx.ImageExt
	}
	return ".png"
}

// mustBeOutsideParagraph reports whether a node renders as an HTML block
// construct that may not appear inside <p>.
func mustBeOutsideParagraph(n doc.Node) bool {
	switch n.Kind() {
	case doc.KindHTMLList, doc.KindSimpleList, doc.KindAutoList,
		doc.KindSimpleSect, doc.KindParamSect, doc.KindHTMLDescList, doc.KindXRefItem,
		doc.KindHTMLTable, doc.KindSection, doc.KindHTMLHeader, doc.KindInternal,
		doc.KindImage, doc.KindSecRefList, doc.KindHorRule,
		doc.KindCopy, doc.KindHTMLBlockQuote, doc.KindParBlock, doc.KindIncOperator:
		return true
	case doc.KindInclude:
		switch n.(*doc.Include).Type {
		case doc.IncDontInclude, doc.IncHTMLInclude:
			// these render no block of their own
			return false
		}
		return true
	case doc.KindVerbatim:
		dv := n.(*doc.Verbatim)
		return dv.Type != doc.VerbHTMLOnly || dv.IsBlock
	case doc.KindStyleChange:
		st := n.(*doc.StyleChange).Style
		return st == doc.Preformatted || st == doc.Div || st == doc.Center
	case doc.KindFormula:
		return !n.(*doc.Formula).IsInline()
	}
	return false
}

// styleOutsideParagraph scans backwards from children[i] for a style span
// that renders as a block and is still open at that point. Styles seen
// closed on the way accumulate in a mask so their earlier opens do not
// count.
func styleOutsideParagraph(children []doc.Node, i int) bool {
	var styleMask doc.Style
	for ; i >= 0; i-- {
		sc, ok := children[i].(*doc.StyleChange)
		if !ok {
			continue
		}
		if !sc.Enable {
			styleMask |= sc.Style
		} else if styleMask&sc.Style == 0 {
			switch sc.Style {
			case doc.Center, doc.Div, doc.Preformatted:
				return true
			}
		}
	}
	return false
}

func indexOf(children []doc.Node, n doc.Node) int {
	for i, c := range children {
		if c == n {
			return i
		}
	}
	return -1
}

// forceEndParagraph closes the paragraph enclosing n before a block
// construct, unless a preceding sibling already did or the paragraph
// would otherwise be empty.
func (v *Visitor) forceEndParagraph(n doc.Node) {
	p, ok := n.Parent().(*doc.Para)
	if !ok {
		return
	}
	children := p.Children()
	i := indexOf(children, n)
	i--
	if i < 0 {
		return // first node in the paragraph
	}
	for i >= 0 && children[i].Kind() == doc.KindWhiteSpace {
		i--
	}
	if i >= 0 && mustBeOutsideParagraph(children[i]) {
		return
	}
	i--
	if styleOutsideParagraph(children, i) {
		return
	}
	_, isFirst, isLast := paragraphContext(p)
	if isFirst && isLast {
		return
	}
	v.ps("</p>")
}

// forceStartParagraph reopens the paragraph after a block construct,
// unless only whitespace or another block construct follows.
func (v *Visitor) forceStartParagraph(n doc.Node) {
	p, ok := n.Parent().(*doc.Para)
	if !ok {
		return
	}
	children := p.Children()
	i := indexOf(children, n)
	if styleOutsideParagraph(children, i) {
		return
	}
	i++
	if i >= len(children) {
		return // last node in the paragraph
	}
	for i < len(children) && children[i].Kind() == doc.KindWhiteSpace {
		i++
	}
	if i >= len(children) {
		return // only whitespace at the end
	}
	if mustBeOutsideParagraph(children[i]) {
		return
	}
	_, isFirst, isLast := paragraphContext(p)
	if isFirst && isLast {
		return
	}
	v.ps("<p>")
}

// paragraph context codes select the CSS class that compensates list and
// table margins around an edge paragraph.
const (
	ctxNone = iota
	ctxStartLI
	ctxStartDD
	ctxEndLI
	ctxEndDD
	ctxStartTD
	ctxEndTD
)

var contextClass = [...]string{
	ctxNone:    "",
	ctxStartLI: " class=\"startli\"",
	ctxStartDD: " class=\"startdd\"",
	ctxEndLI:   " class=\"endli\"",
	ctxEndDD:   " class=\"enddd\"",
	ctxStartTD: " class=\"starttd\"",
	ctxEndTD:   " class=\"endtd\"",
}

// isSeparatedParagraph reports whether par is fenced by section separators
// inside a merged simple section, which keeps it inside the open <dd>.
func isSeparatedParagraph(parent *doc.SimpleSect, par *doc.Para) bool {
	nodes := parent.Children()
	i := indexOf(nodes, par)
	if i == -1 {
		return false
	}
	count := len(nodes)
	sepAt := func(j int) bool {
		return j >= 0 && j < count && nodes[j].Kind() == doc.KindSimpleSectSep
	}
	switch {
	case count > 1 && i == 0:
		return sepAt(i + 1)
	case count > 1 && i == count-1:
		return sepAt(i - 1)
	case count > 2 && i > 0 && i < count-1:
		return sepAt(i-1) && sepAt(i+1)
	}
	return false
}

// paragraphContext classifies p by its enclosing construct: the context
// code, and whether p is the first or last paragraph of that construct.
func paragraphContext(p *doc.Para) (t int, isFirst, isLast bool) {
	parent := p.Parent()
	if parent == nil {
		return
	}
	switch q := parent.(type) {
	case *doc.ParBlock:
		// the paragraph markers must compensate for the construct the
		// parblock's own paragraph sits in
		kind := doc.KindPara
		if pp := q.Parent(); pp != nil {
			if ppp := pp.Parent(); ppp != nil {
				kind = ppp.Kind()
			}
		}
		isFirst, isLast = p.IsFirst(), p.IsLast()
		if isFirst {
			switch kind {
			case doc.KindHTMLListItem, doc.KindSecRefItem:
				t = ctxStartLI
			case doc.KindHTMLDescData, doc.KindXRefItem, doc.KindSimpleSect:
				t = ctxStartDD
			case doc.KindHTMLCell, doc.KindParamList:
				t = ctxStartTD
			}
		}
		if isLast {
			switch kind {
			case doc.KindHTMLListItem, doc.KindSecRefItem:
				t = ctxEndLI
			case doc.KindHTMLDescData, doc.KindXRefItem, doc.KindSimpleSect:
				t = ctxEndDD
			case doc.KindHTMLCell, doc.KindParamList:
				t = ctxEndTD
			}
		}
	case *doc.AutoListItem, *doc.SimpleListItem:
		isFirst, isLast = true, true
	case *doc.HTMLListItem, *doc.SecRefItem:
		isFirst, isLast = p.IsFirst(), p.IsLast()
		if isFirst {
			t = ctxStartLI
		}
		if isLast {
			t = ctxEndLI
		}
	case *doc.HTMLDescData, *doc.XRefItem:
		isFirst, isLast = p.IsFirst(), p.IsLast()
		if isFirst {
			t = ctxStartDD
		}
		if isLast {
			t = ctxEndDD
		}
	case *doc.SimpleSect:
		isFirst, isLast = p.IsFirst(), p.IsLast()
		if isFirst {
			t = ctxStartDD
		}
		if isLast {
			t = ctxEndDD
		}
		if isSeparatedParagraph(q, p) {
			// fenced by separators, so it stays inside the open <dd>
			isFirst, isLast = true, true
		}
	case *doc.HTMLCell, *doc.ParamList:
		isFirst, isLast = p.IsFirst(), p.IsLast()
		if isFirst {
			t = ctxStartTD
		}
		if isLast {
			t = ctxEndTD
		}
	}
	return
}

// paraNeedsTag decides whether the paragraph gets explicit <p> markers:
// only inside constructs whose content model wants them, and never when a
// block child at the relevant edge already breaks out of the paragraph.
func paraNeedsTag(p *doc.Para, atEnd bool) bool {
	needsTag := false
	if parent := p.Parent(); parent != nil {
		switch parent.Kind() {
		case doc.KindSection, doc.KindInternal, doc.KindHTMLListItem,
			doc.KindHTMLDescData, doc.KindHTMLCell, doc.KindSimpleListItem,
			doc.KindAutoListItem, doc.KindSimpleSect, doc.KindXRefItem,
			doc.KindCopy, doc.KindHTMLBlockQuote, doc.KindParBlock:
			needsTag = true
		case doc.KindRoot:
			needsTag = !parent.(*doc.Root).SingleLine
		}
	}
	children := p.Children()
	if atEnd {
		i := len(children) - 1
		for i >= 0 && children[i].Kind() == doc.KindWhiteSpace {
			i--
		}
		if i >= 0 && mustBeOutsideParagraph(children[i]) {
			needsTag = false
		}
	} else {
		i := 0
		for i < len(children) && children[i].Kind() == doc.KindWhiteSpace {
			i++
		}
		if i < len(children) && mustBeOutsideParagraph(children[i]) {
			needsTag = false
		}
	}
	return needsTag
}

// Visit renders a leaf node.
func (v *Visitor) Visit(n doc.Node) {
	if op, ok := n.(*doc.IncOperator); ok {
		v.incOperator(op)
		return
	}
	if v.hide {
		return
	}
	switch t := n.(type) {
	case *doc.Word:
		v.filter(t.Text)
	case *doc.LinkedWord:
		v.startLink(t.Ref, t.File, t.RelPath, t.Anchor, t.Tooltip)
		v.filter(t.Text)
		v.endLink()
	case *doc.WhiteSpace:
		if t.IsPreformatted() {
			v.ps(t.Chars)
		} else {
			v.ps(" ")
		}
	case *doc.Symbol:
		if s, ok := entity.Lookup(t.Name); ok {
			v.ps(s.HTML)
		} else {
			v.ctx.Errorf("unknown symbol %q in HTML output", t.Name)
		}
	case *doc.URL:
		if t.IsEmail {
			v.pf("<a href=\"mailto:%s\">", escapeAttr(t.Text))
		} else {
			v.pf("<a href=\"%s\">", escapeAttr(t.Text))
		}
		v.filter(t.Text)
		v.endLink()
	case *doc.LineBreak:
		v.ps("<br />\n")
	case *doc.HorRule:
		v.forceEndParagraph(t)
		v.ps("<hr/>\n")
		v.forceStartParagraph(t)
	case *doc.StyleChange:
		v.styleChange(t)
	case *doc.Verbatim:
		v.verbatim(t)
	case *doc.Include:
		v.include(t)
	case *doc.Formula:
		v.formula(t)
	case *doc.Anchor:
		v.pf("<a class=\"anchor\" id=\"%s\"></a>", t.ID)
	case *doc.IndexEntry:
		v.AddIndexItem(t.Scope, t.Entry)
	case *doc.SimpleSectSep:
		v.ps("</dd>\n<dd>\n")
	case *doc.Cite:
		if t.File != "" || t.Ref != "" {
			v.startLink(t.Ref, t.File, t.RelPath, t.Anchor, "")
			v.filter(t.Text)
			v.endLink()
		} else {
			v.ps("[")
			v.filter(t.Text)
			v.ps("]")
		}
	case *doc.Copy:
		// resolved by the surrounding tool before rendering
	}
}

func (v *Visitor) styleChange(s *doc.StyleChange) {
	attrs := attrString(s.Attrs)
	switch s.Style {
	case doc.Bold:
		v.tag("b", attrs, s.Enable)
	case doc.Italic:
		v.tag("em", attrs, s.Enable)
	case doc.Code:
		v.tag("code", attrs, s.Enable)
	case doc.Small:
		v.tag("small", attrs, s.Enable)
	case doc.Subscript:
		v.tag("sub", attrs, s.Enable)
	case doc.Superscript:
		v.tag("sup", attrs, s.Enable)
	case doc.Span:
		v.tag("span", attrs, s.Enable)
	case doc.Center:
		v.blockTag("center", attrs, s)
	case doc.Div:
		v.blockTag("div", attrs, s)
	case doc.Preformatted:
		v.blockTag("pre", attrs, s)
	}
}

func (v *Visitor) tag(name, attrs string, enable bool) {
	if enable {
		v.pf("<%s%s>", name, attrs)
	} else {
		v.pf("</%s>", name)
	}
}

// blockTag opens or closes a style span that is a block construct, keeping
// the paragraph balanced around it.
func (v *Visitor) blockTag(name, attrs string, s *doc.StyleChange) {
	if s.Enable {
		v.forceEndParagraph(s)
		v.pf("<%s%s>", name, attrs)
	} else {
		v.pf("</%s>", name)
		v.forceStartParagraph(s)
	}
}

func (v *Visitor) verbatim(t *doc.Verbatim) {
	switch t.Type {
	case doc.VerbCode:
		v.forceEndParagraph(t)
		v.ps(prefragStart)
		v.ctx.Highlight(v, strings.TrimPrefix(t.Lang, "."), t.Text, false, 0)
		v.ps(prefragEnd)
		v.forceStartParagraph(t)
	case doc.VerbVerbatim:
		v.forceEndParagraph(t)
		v.ps("<pre class=\"fragment\">")
		v.filter(t.Text)
		v.ps("</pre>")
		v.forceStartParagraph(t)
	case doc.VerbHTMLOnly:
		if t.IsBlock {
			v.forceEndParagraph(t)
		}
		v.ps(t.Text)
		if t.IsBlock {
			v.forceStartParagraph(t)
		}
	case doc.VerbManOnly, doc.VerbLatexOnly, doc.VerbXMLOnly, doc.VerbRTFOnly:
		// other formats' verbatim blocks are invisible here
	case doc.VerbDot:
		v.forceEndParagraph(t)
		v.diagram("dot", "dotgraph", "dot_inline", t.Text)
		v.forceStartParagraph(t)
	case doc.VerbMsc:
		v.forceEndParagraph(t)
		v.diagram("mscgen", "mscgraph", "msc_inline", t.Text)
		v.forceStartParagraph(t)
	}
}

// diagram runs the external tool on the source text and embeds the
// resulting image. The image tag is written even when the tool fails, so
// the output degrades visibly instead of silently dropping content.
func (v *Visitor) diagram(tool, class, prefix, text string) {
	v.diagramN++
	base := fmt.Sprintf("%s_%d", prefix, v.diagramN)
	out := filepath.Join(v.ctx.OutputDir, base+v.imageExt())
	cmd := gen.Command{}
	if err := cmd.Render(tool, strings.TrimPrefix(v.imageExt(), "."), out, text); err != nil {
		v.ctx.Errorf("problem running %s: %v", tool, err)
	}
	v.pf("<div class=\"%s\">\n<img src=\"%s%s%s\" alt=\"%s\"/>\n</div>\n",
		class, v.ctx.RelPath, base, v.imageExt(), base)
}

func (v *Visitor) include(t *doc.Include) {
	switch t.Type {
	case doc.IncInclude:
		v.forceEndParagraph(t)
		v.ps(prefragStart)
		v.ctx.Highlight(v, strings.TrimPrefix(t.Extension(), "."), t.Text, false, 0)
		v.ps(prefragEnd)
		v.forceStartParagraph(t)
	case doc.IncWithLines:
		v.forceEndParagraph(t)
		v.ps(prefragStart)
		v.ctx.Highlight(v, strings.TrimPrefix(t.Extension(), "."), t.Text, true, 1)
		v.ps(prefragEnd)
		v.forceStartParagraph(t)
	case doc.IncVerbInclude:
		v.forceEndParagraph(t)
		v.ps(prefragStart)
		v.filter(t.Text)
		v.ps(prefragEnd)
		v.forceStartParagraph(t)
	case doc.IncHTMLInclude:
		v.ps(t.Text)
	case doc.IncSnippet:
		v.forceEndParagraph(t)
		v.ps(prefragStart)
		v.ctx.Highlight(v, strings.TrimPrefix(t.Extension(), "."), t.Text, false, 0)
		v.ps(prefragEnd)
		v.forceStartParagraph(t)
	case doc.IncDontInclude:
		// only sets up the streaming cursor; renders nothing
	}
}

// incOperator renders one step of a streaming include. The whole run
// shares a single fragment: the first operator opens it and hides the
// surrounding paragraph content, the last one closes it.
func (v *Visitor) incOperator(op *doc.IncOperator) {
	if op.IsFirst {
		if !v.hide {
			v.forceEndParagraph(op)
			v.ps(prefragStart)
		}
		v.pushHidden()
		v.hide = true
	}
	if op.Type != doc.IncOpSkip {
		v.popHidden()
		if !v.hide {
			v.filter(op.Text)
			v.ps("\n")
		}
		v.pushHidden()
		v.hide = true
	}
	if op.IsLast {
		v.popHidden()
		if !v.hide {
			v.ps(prefragEnd)
			v.forceStartParagraph(op)
		}
	}
}

func (v *Visitor) formula(f *doc.Formula) {
	if f.IsInline() {
		v.pf("<img class=\"formulaInl\" alt=\"%s\" src=\"%s%s.png\"/>",
			escapeAttr("$"+f.Text+"$"), v.ctx.RelPath, f.Name)
		return
	}
	v.forceEndParagraph(f)
	v.pf("<img class=\"formulaDsp\" alt=\"%s\" src=\"%s%s.png\"/>\n",
		escapeAttr(f.Text), v.ctx.RelPath, f.Name)
	v.forceStartParagraph(f)
}

// VisitPre opens a composite node.
func (v *Visitor) VisitPre(n doc.Node) {
	if img, ok := n.(*doc.Image); ok {
		v.preImage(img)
		return
	}
	if v.hide {
		return
	}
	switch t := n.(type) {
	case *doc.Para:
		ctxCode, isFirst, isLast := paragraphContext(t)
		needsTag := paraNeedsTag(t, false)
		if isFirst && isLast {
			needsTag = false
		}
		if needsTag {
			v.pf("<p%s>", contextClass[ctxCode])
		}
	case *doc.AutoList:
		v.forceEndParagraph(t)
		if t.Ordered {
			v.pf("<ol type=\"%s\">", orderedTypes[t.Depth%len(orderedTypes)])
		} else {
			v.ps("<ul>")
		}
	case *doc.AutoListItem:
		v.ps("<li>")
	case *doc.SimpleList:
		v.forceEndParagraph(t)
		v.ps("<ul>")
	case *doc.SimpleListItem:
		v.ps("<li>")
	case *doc.SimpleSect:
		v.forceEndParagraph(t)
		v.pf("<dl class=\"section %s\"><dt>", t.Type)
		if t.Type != doc.SectUser && t.Type != doc.SectRcs {
			v.filter(v.ctx.Tr(t.Type.String()))
			v.ps("</dt><dd>")
		}
	case *doc.Title:
		// closed by VisitPost, which ends the heading it sits in
	case *doc.Section:
		v.forceEndParagraph(t)
		v.pf("<h%d><a class=\"anchor\" id=\"%s\"></a>\n", t.Level, t.Anchor)
		v.filter(t.Title)
		v.pf("</h%d>\n", t.Level)
	case *doc.HTMLHeader:
		v.forceEndParagraph(t)
		v.pf("<h%d%s>", t.Level, attrString(t.Attrs))
	case *doc.HTMLList:
		v.forceEndParagraph(t)
		if t.Type == doc.Ordered {
			v.pf("<ol%s>\n", attrString(t.Attrs))
		} else {
			v.pf("<ul%s>\n", attrString(t.Attrs))
		}
	case *doc.HTMLListItem:
		v.pf("<li%s>", attrString(t.Attrs))
	case *doc.HTMLDescList:
		v.forceEndParagraph(t)
		v.pf("<dl%s>\n", attrString(t.Attrs))
	case *doc.HTMLDescTitle:
		v.pf("<dt%s>", attrString(t.Attrs))
	case *doc.HTMLDescData:
		v.pf("<dd%s>", attrString(t.Attrs))
	case *doc.HTMLTable:
		v.forceEndParagraph(t)
		t.NumColumns() // run the grid pass before any cell renders
		v.pf("<table%s>\n", attrString(t.Attrs))
	case *doc.HTMLRow:
		v.pf("<tr%s>\n", attrString(t.Attrs))
	case *doc.HTMLCell:
		if t.IsHeading {
			v.pf("<th%s>", attrString(t.Attrs))
		} else {
			v.pf("<td%s>", attrString(t.Attrs))
		}
	case *doc.HTMLCaption:
		v.pf("<caption%s>", attrString(t.Attrs))
		if t.Anchor != "" {
			v.pf("<a class=\"anchor\" id=\"%s\"></a>", t.Anchor)
		}
	case *doc.HTMLBlockQuote:
		v.forceEndParagraph(t)
		v.pf("<blockquote class=\"doxtable\"%s>\n", attrString(t.Attrs))
	case *doc.ParamSect:
		v.preParamSect(t)
	case *doc.ParamList:
		v.preParamList(t)
	case *doc.XRefItem:
		v.forceEndParagraph(t)
		v.pf("<dl class=\"xrefitem %s\"><dt><b>", t.Key)
		if t.File != "" {
			v.pf("<a class=\"el\" href=\"%s%s%s#%s\">", t.RelPath, t.File, v.ctx.FileSuffix, t.Anchor)
			v.filter(t.Title)
			v.endLink()
		} else {
			v.filter(t.Title)
		}
		v.ps("</b></dt><dd>")
	case *doc.HRef:
		v.pf("<a href=\"%s\"%s>", escapeAttr(t.URL), attrString(t.Attrs, "href"))
	case *doc.Link:
		v.startLink(t.Ref, t.File, t.RelPath, t.Anchor, "")
	case *doc.Ref:
		if t.File != "" || t.Ref != "" || t.Anchor != "" {
			v.startLink(t.Ref, t.File, t.RelPath, t.Anchor, "")
		}
		if !t.HasLinkText() {
			v.filter(t.TargetTitle)
		}
	case *doc.InternalRef:
		v.startLink("", t.File, t.RelPath, t.Anchor, "")
	case *doc.SecRefList:
		v.forceEndParagraph(t)
		v.ps("<div class=\"multicol\">\n<ul>\n")
	case *doc.SecRefItem:
		v.ps("<li>")
		if t.File != "" {
			v.startLink("", t.File, "", t.Anchor, "")
		}
	case *doc.DotFile:
		v.preDiagramFile(t, "dot", "dotgraph", t.File, t.HasCaption())
	case *doc.MscFile:
		v.preDiagramFile(t, "mscgen", "mscgraph", t.File, t.HasCaption())
	case *doc.DiaFile:
		v.preDiagramFile(t, "dia", "diagraph", t.File, t.HasCaption())
	}
}

// VisitPost closes a composite node.
func (v *Visitor) VisitPost(n doc.Node) {
	if img, ok := n.(*doc.Image); ok {
		v.postImage(img)
		return
	}
	if v.hide {
		return
	}
	switch t := n.(type) {
	case *doc.Para:
		_, isFirst, isLast := paragraphContext(t)
		needsTag := paraNeedsTag(t, true)
		if isFirst && isLast {
			needsTag = false
		}
		if needsTag {
			v.ps("</p>\n")
		}
	case *doc.AutoList:
		if t.Ordered {
			v.ps("</ol>\n")
		} else {
			v.ps("</ul>\n")
		}
		v.forceStartParagraph(t)
	case *doc.AutoListItem:
		v.ps("</li>\n")
	case *doc.SimpleList:
		v.ps("</ul>\n")
		v.forceStartParagraph(t)
	case *doc.SimpleListItem:
		v.ps("</li>\n")
	case *doc.SimpleSect:
		v.ps("</dd></dl>\n")
		v.forceStartParagraph(t)
	case *doc.Title:
		v.ps("</dt><dd>")
	case *doc.HTMLHeader:
		v.pf("</h%d>\n", t.Level)
		v.forceStartParagraph(t)
	case *doc.HTMLList:
		if t.Type == doc.Ordered {
			v.ps("</ol>\n")
		} else {
			v.ps("</ul>\n")
		}
		v.forceStartParagraph(t)
	case *doc.HTMLListItem:
		v.ps("</li>\n")
	case *doc.HTMLDescList:
		v.ps("</dl>\n")
		v.forceStartParagraph(t)
	case *doc.HTMLDescTitle:
		v.ps("</dt>\n")
	case *doc.HTMLDescData:
		v.ps("</dd>\n")
	case *doc.HTMLTable:
		v.ps("</table>\n")
		v.forceStartParagraph(t)
	case *doc.HTMLRow:
		v.ps("</tr>\n")
	case *doc.HTMLCell:
		if t.IsHeading {
			v.ps("</th>")
		} else {
			v.ps("</td>")
		}
	case *doc.HTMLCaption:
		v.ps("</caption>\n")
	case *doc.HTMLBlockQuote:
		v.ps("</blockquote>\n")
		v.forceStartParagraph(t)
	case *doc.ParamSect:
		v.ps("  </table>\n  </dd>\n</dl>\n")
		v.forceStartParagraph(t)
	case *doc.ParamList:
		v.ps("</td></tr>\n")
	case *doc.XRefItem:
		v.ps("</dd></dl>\n")
		v.forceStartParagraph(t)
	case *doc.HRef:
		v.endLink()
	case *doc.Link:
		v.endLink()
	case *doc.Ref:
		if t.File != "" || t.Ref != "" || t.Anchor != "" {
			v.endLink()
		}
	case *doc.InternalRef:
		v.endLink()
	case *doc.SecRefList:
		v.ps("</ul>\n</div>\n")
		v.forceStartParagraph(t)
	case *doc.SecRefItem:
		if t.File != "" {
			v.endLink()
		}
		v.ps("</li>\n")
	case *doc.DotFile:
		v.postDiagramFile(t, t.HasCaption())
	case *doc.MscFile:
		v.postDiagramFile(t, t.HasCaption())
	case *doc.DiaFile:
		v.postDiagramFile(t, t.HasCaption())
	}
}

var orderedTypes = [...]string{"1", "a", "i", "A"}

func (v *Visitor) preParamSect(s *doc.ParamSect) {
	v.forceEndParagraph(s)
	var class, heading string
	switch s.Type {
	case doc.ParamParam:
		class, heading = "params", v.ctx.Tr("params")
	case doc.ParamRetVal:
		class, heading = "retval", v.ctx.Tr("retvals")
	case doc.ParamException:
		class, heading = "exception", v.ctx.Tr("exceptions")
	default:
		class, heading = "tparams", v.ctx.Tr("tparams")
	}
	v.pf("<dl class=\"%s\"><dt>%s</dt><dd>\n", class, heading)
	v.ps("  <table class=\"params\">\n")
}

func (v *Visitor) preParamList(l *doc.ParamList) {
	sect, _ := l.Parent().(*doc.ParamSect)
	v.ps("    <tr>")
	if sect != nil && sect.HasInOut {
		v.ps("<td class=\"paramdir\">")
		if l.Dir != doc.DirUnspecified {
			v.pf("[%s]", l.Dir)
		}
		v.ps("</td>")
	}
	if sect != nil && sect.HasType {
		v.ps("<td class=\"paramtype\">")
		for i, t := range l.Types {
			if i > 0 {
				v.ps("&#160;|&#160;")
			}
			v.paramWord(t)
		}
		v.ps("</td>")
	}
	v.ps("<td class=\"paramname\">")
	for i, pn := range l.Params {
		if i > 0 {
			v.ps(",")
		}
		v.paramWord(pn)
	}
	v.ps("</td><td>")
}

func (v *Visitor) paramWord(n doc.Node) {
	switch t := n.(type) {
	case *doc.Word:
		v.filter(t.Text)
	case *doc.LinkedWord:
		v.startLink(t.Ref, t.File, t.RelPath, t.Anchor, t.Tooltip)
		v.filter(t.Text)
		v.endLink()
	}
}

func (v *Visitor) preImage(m *doc.Image) {
	if m.Type != doc.ImageHTML {
		v.pushHidden()
		v.hide = true
		return
	}
	if v.hide {
		return
	}
	v.forceEndParagraph(m)
	src := m.URL
	if src == "" {
		src = v.ctx.RelPath + m.Name
	}
	sizes := ""
	if m.Width != "" {
		sizes += fmt.Sprintf(" width=\"%s\"", escapeAttr(m.Width))
	}
	if m.Height != "" {
		sizes += fmt.Sprintf(" height=\"%s\"", escapeAttr(m.Height))
	}
	v.ps("<div class=\"image\">\n")
	if strings.HasSuffix(strings.ToLower(src), ".svg") {
		// browsers only scale svg properly through an object element
		v.pf("<object type=\"image/svg+xml\" data=\"%s\"%s>%s</object>\n",
			escapeAttr(src), sizes, escapeAttr(filepath.Base(m.Name)))
	} else {
		v.pf("<img src=\"%s\" alt=\"%s\"%s/>\n", escapeAttr(src), escapeAttr(filepath.Base(m.Name)), sizes)
	}
	if m.HasCaption() {
		v.ps("<div class=\"caption\">\n")
	}
}

func (v *Visitor) postImage(m *doc.Image) {
	if m.Type != doc.ImageHTML {
		v.popHidden()
		return
	}
	if v.hide {
		return
	}
	if m.HasCaption() {
		v.ps("</div>\n")
	}
	v.ps("</div>\n")
	v.forceStartParagraph(m)
}

// preDiagramFile renders an external diagram source through its tool and
// opens the caption block.
func (v *Visitor) preDiagramFile(n doc.Node, tool, class, file string, hasCaption bool) {
	v.forceEndParagraph(n)
	text := ""
	if data, err := os.ReadFile(file); err != nil {
		v.ctx.Errorf("unable to read diagram file %q: %v", file, err)
	} else {
		text = string(data)
	}
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	v.diagramN++
	out := filepath.Join(v.ctx.OutputDir, fmt.Sprintf("%s_%d%s", base, v.diagramN, v.imageExt()))
	cmd := gen.Command{}
	if err := cmd.Render(tool, strings.TrimPrefix(v.imageExt(), "."), out, text); err != nil {
		v.ctx.Errorf("problem running %s: %v", tool, err)
	}
	v.pf("<div class=\"%s\">\n<img src=\"%s%s_%d%s\" alt=\"%s\"/>\n",
		class, v.ctx.RelPath, base, v.diagramN, v.imageExt(), base)
	if hasCaption {
		v.ps("<div class=\"caption\">\n")
	}
}

func (v *Visitor) postDiagramFile(n doc.Node, hasCaption bool) {
	if hasCaption {
		v.ps("</div>\n")
	}
	v.ps("</div>\n")
	v.forceStartParagraph(n)
}

// WriteCode writes a source fragment with HTML escaping.
func (v *Visitor) WriteCode(text string) { v.filter(text) }

// StartFontClass opens a token styling span.
func (v *Visitor) StartFontClass(name string) { v.pf("<span class=\"%s\">", name) }

func (v *Visitor) EndFontClass() { v.ps("</span>") }

// WriteCodeAnchor drops a named anchor inside a fragment.
func (v *Visitor) WriteCodeAnchor(anchor string) { v.pf("<a name=\"%s\"></a>", anchor) }

// WriteLineNumber starts a numbered code line, linking the number when a
// target is given.
func (v *Visitor) WriteLineNumber(ref, file, anchor string, n int) {
	v.ps("<span class=\"lineno\">")
	if file != "" {
		v.startLink(ref, file, v.ctx.RelPath, anchor, "")
		v.pf("%5d", n)
		v.endLink()
	} else {
		v.pf("%5d", n)
	}
	v.ps("</span>&#160;")
}
