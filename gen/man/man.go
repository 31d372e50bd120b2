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

// Package man renders a document tree as roff for man pages. Man output is
// flat text: links lose their targets, images disappear, and index
// registration is a no-op. What remains is the running text with bold and
// italic font switches and indented blocks for lists and sections.
package man // import "akhil.cc/mexdoc/gen/man"

import (
	"fmt"
	"io"
	"strings"

	"akhil.cc/mexdoc/doc"
	"akhil.cc/mexdoc/entity"
	"akhil.cc/mexdoc/gen"
)

// Visitor writes roff for every node it is dispatched. It implements
// gen.Backend.
type Visitor struct {
	w        io.Writer
	err      error
	ctx      *gen.Context
	hide     bool
	hideStk  []bool
	firstCol bool
	indent   int
}

// New returns a visitor writing to w. A nil ctx acts like the zero
// context.
func New(w io.Writer, ctx *gen.Context) *Visitor {
	if ctx == nil {
		ctx = &gen.Context{}
	}
	return &Visitor{w: w, ctx: ctx, firstCol: true}
}

// Render walks n with a fresh visitor and returns the first write error.
func Render(w io.Writer, n doc.Node, ctx *gen.Context) error {
	v := New(w, ctx)
	gen.Walk(v, n)
	return v.Err()
}

// Err returns the first error encountered while writing.
func (v *Visitor) Err() error { return v.err }

func (v *Visitor) ps(s string) {
	if v.err != nil || s == "" {
		return
	}
	_, v.err = io.WriteString(v.w, s)
	v.firstCol = s[len(s)-1] == '\n'
}

func (v *Visitor) pf(format string, args ...interface{}) {
	v.ps(fmt.Sprintf(format, args...))
}

// filter escapes the characters roff treats specially. A period would
// start a request at the beginning of a line, so it is always neutralized.
func (v *Visitor) filter(s string) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '.':
			b.WriteString("\\&.")
		case '\\':
			b.WriteString("\\\\")
		case '"':
			b.WriteByte('\'')
		default:
			b.WriteByte(s[i])
		}
	}
	v.ps(b.String())
}

// newline moves to column zero without emitting a blank output line.
func (v *Visitor) newline() {
	if !v.firstCol {
		v.ps("\n")
	}
}

func (v *Visitor) pushHidden() { v.hideStk = append(v.hideStk, v.hide) }

func (v *Visitor) popHidden() {
	if n := len(v.hideStk); n > 0 {
		v.hide = v.hideStk[n-1]
		v.hideStk = v.hideStk[:n-1]
	} else {
		v.hide = false
	}
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
		v.ps("\\fB")
		v.filter(t.Text)
		v.ps("\\fP")
	case *doc.WhiteSpace:
		if t.IsPreformatted() {
			v.ps(t.Chars)
		} else if !v.firstCol {
			v.ps(" ")
		}
	case *doc.Symbol:
		if s, ok := entity.Lookup(t.Name); ok {
			v.filter(s.Text)
		} else {
			v.ctx.Errorf("unknown symbol %q in man output", t.Name)
		}
	case *doc.URL:
		v.filter(t.Text)
	case *doc.LineBreak:
		v.ps("\n.br\n")
	case *doc.HorRule:
		v.newline()
		v.ps(".ti 0\n\\l'\\n(.lu'\n")
	case *doc.StyleChange:
		v.styleChange(t)
	case *doc.Verbatim:
		v.verbatim(t)
	case *doc.Include:
		v.include(t)
	case *doc.Formula:
		// no math rendering in roff; show the source text
		v.filter(t.Text)
	case *doc.Anchor, *doc.IndexEntry, *doc.Copy:
		// invisible in man output
	case *doc.SimpleSectSep:
		v.ps("\n.PP\n")
	case *doc.Cite:
		v.ps("\\fB[")
		v.filter(t.Text)
		v.ps("]\\fP")
	}
}

func (v *Visitor) styleChange(s *doc.StyleChange) {
	switch s.Style {
	case doc.Bold:
		v.font(s.Enable, "\\fB")
	case doc.Italic:
		v.font(s.Enable, "\\fI")
	case doc.Code:
		v.font(s.Enable, "\\fC")
	case doc.Subscript:
		if s.Enable {
			v.ps("\\*<")
		} else {
			v.ps("\\*> ")
		}
	case doc.Superscript:
		if s.Enable {
			v.ps("\\*{")
		} else {
			v.ps("\\*} ")
		}
	case doc.Preformatted:
		if s.Enable {
			v.newline()
			v.ps(".PP\n.nf\n")
		} else {
			v.newline()
			v.ps(".fi\n.PP\n")
		}
	case doc.Small, doc.Center, doc.Span, doc.Div:
		// no roff equivalent
	}
}

func (v *Visitor) font(enable bool, open string) {
	if enable {
		v.ps(open)
	} else {
		v.ps("\\fP")
	}
}

func (v *Visitor) fragment(text string) {
	v.newline()
	v.ps(".PP\n.nf\n")
	v.filter(text)
	v.newline()
	v.ps(".fi\n.PP\n")
}

func (v *Visitor) verbatim(t *doc.Verbatim) {
	switch t.Type {
	case doc.VerbCode, doc.VerbVerbatim:
		v.fragment(t.Text)
	case doc.VerbManOnly:
		v.ps(t.Text)
	default:
		// other formats' blocks, and diagrams, are invisible here
	}
}

func (v *Visitor) include(t *doc.Include) {
	switch t.Type {
	case doc.IncInclude, doc.IncWithLines, doc.IncVerbInclude, doc.IncSnippet:
		v.fragment(t.Text)
	case doc.IncHTMLInclude, doc.IncDontInclude:
		// nothing to show
	}
}

func (v *Visitor) incOperator(op *doc.IncOperator) {
	if op.IsFirst {
		if !v.hide {
			v.newline()
			v.ps(".PP\n.nf\n")
		}
		v.pushHidden()
		v.hide = true
	}
	if op.Type != doc.IncOpSkip {
		v.popHidden()
		if !v.hide {
			v.filter(op.Text)
		}
		v.pushHidden()
		v.hide = true
	}
	if op.IsLast {
		v.popHidden()
		if !v.hide {
			v.newline()
			v.ps(".fi\n.PP\n")
		}
	} else if !v.hide {
		v.ps("\n")
	}
}

// VisitPre opens a composite node.
func (v *Visitor) VisitPre(n doc.Node) {
	if _, ok := n.(*doc.Image); ok {
		// images cannot appear on a terminal; drop the caption with them
		v.pushHidden()
		v.hide = true
		return
	}
	if v.hide {
		return
	}
	switch t := n.(type) {
	case *doc.Para:
		// spacing handled in VisitPost
	case *doc.AutoList:
		v.indent++
	case *doc.AutoListItem:
		v.newline()
		list, _ := t.Parent().(*doc.AutoList)
		if list != nil && list.Ordered {
			v.pf(".IP \"%d.\" %d\n", t.Num, v.indent*4)
		} else {
			v.pf(".IP \"\\(bu\" %d\n", v.indent*4)
		}
	case *doc.SimpleList:
		v.indent++
	case *doc.SimpleListItem:
		v.newline()
		v.pf(".IP \"\\(bu\" %d\n", v.indent*4)
	case *doc.SimpleSect:
		v.newline()
		v.ps(".PP\n\\fB")
		if t.Type != doc.SectUser && t.Type != doc.SectRcs {
			v.filter(v.ctx.Tr(t.Type.String()))
			v.ps("\\fP\n.RS 4\n")
		}
	case *doc.Title:
		// closed in VisitPost
	case *doc.Section:
		v.newline()
		if t.Level == 1 {
			v.ps(".SH \"")
		} else {
			v.ps(".SS \"")
		}
		v.filter(strings.ToUpper(t.Title))
		v.ps("\"\n")
	case *doc.HTMLHeader:
		v.newline()
		if t.Level == 1 {
			v.ps(".SH \"")
		} else {
			v.ps(".SS \"")
		}
	case *doc.HTMLList:
		v.indent++
	case *doc.HTMLListItem:
		v.newline()
		list, _ := t.Parent().(*doc.HTMLList)
		if list != nil && list.Type == doc.Ordered {
			v.pf(".IP \"%d.\" %d\n", t.Num, v.indent*4)
		} else {
			v.pf(".IP \"\\(bu\" %d\n", v.indent*4)
		}
	case *doc.HTMLDescTitle:
		v.newline()
		v.ps(".IP \"\\fB")
	case *doc.HTMLDescData:
		v.newline()
		v.ps(".RS 4\n")
	case *doc.HTMLBlockQuote:
		v.newline()
		v.ps(".RS 4\n")
	case *doc.HTMLCell:
		// tables flatten to cell text separated by spaces
		if !v.firstCol {
			v.ps(" ")
		}
	case *doc.ParamSect:
		v.preParamSect(t)
	case *doc.ParamList:
		v.preParamList(t)
	case *doc.XRefItem:
		v.newline()
		v.ps(".PP\n\\fB")
		v.filter(t.Title)
		v.ps("\\fP\n.RS 4\n")
	case *doc.Ref:
		v.ps("\\fB")
		if !t.HasLinkText() {
			v.filter(t.TargetTitle)
		}
	case *doc.Link, *doc.InternalRef:
		v.ps("\\fB")
	case *doc.HRef:
		// link text renders plain; the target follows in angle brackets
	case *doc.SecRefItem:
		v.newline()
		v.pf(".IP \"\\(bu\" %d\n", (v.indent+1)*4)
	}
}

// VisitPost closes a composite node.
func (v *Visitor) VisitPost(n doc.Node) {
	if _, ok := n.(*doc.Image); ok {
		v.popHidden()
		return
	}
	if v.hide {
		return
	}
	switch t := n.(type) {
	case *doc.Para:
		// one paragraph break unless a tighter construct encloses us
		switch t.Parent().Kind() {
		case doc.KindAutoListItem, doc.KindSimpleListItem, doc.KindHTMLListItem,
			doc.KindHTMLCell, doc.KindParamList:
			v.newline()
		default:
			v.newline()
			v.ps(".PP\n")
		}
	case *doc.AutoList:
		v.indent--
		if v.indent == 0 {
			v.newline()
			v.ps(".PP\n")
		}
	case *doc.SimpleList:
		v.indent--
		if v.indent == 0 {
			v.newline()
			v.ps(".PP\n")
		}
	case *doc.HTMLList:
		v.indent--
		if v.indent == 0 {
			v.newline()
			v.ps(".PP\n")
		}
	case *doc.SimpleSect:
		v.newline()
		v.ps(".RE\n.PP\n")
	case *doc.Title:
		v.ps("\\fP\n.RS 4\n")
	case *doc.Section:
		// heading line already closed in VisitPre
	case *doc.HTMLHeader:
		v.ps("\"\n")
	case *doc.HTMLDescTitle:
		v.ps("\\fP\" 4\n")
	case *doc.HTMLDescData:
		v.newline()
		v.ps(".RE\n")
	case *doc.HTMLBlockQuote:
		v.newline()
		v.ps(".RE\n.PP\n")
	case *doc.HTMLRow:
		v.newline()
	case *doc.ParamSect:
		v.newline()
		v.ps(".RE\n.PP\n")
	case *doc.ParamList:
		v.newline()
	case *doc.XRefItem:
		v.newline()
		v.ps(".RE\n.PP\n")
	case *doc.Ref, *doc.Link, *doc.InternalRef:
		v.ps("\\fP")
	case *doc.HRef:
		v.ps(" <")
		v.filter(t.URL)
		v.ps(">")
	}
}

func (v *Visitor) preParamSect(s *doc.ParamSect) {
	v.newline()
	v.ps(".PP\n\\fB")
	switch s.Type {
	case doc.ParamParam:
		v.filter(v.ctx.Tr("params"))
	case doc.ParamRetVal:
		v.filter(v.ctx.Tr("retvals"))
	case doc.ParamException:
		v.filter(v.ctx.Tr("exceptions"))
	default:
		v.filter(v.ctx.Tr("tparams"))
	}
	v.ps("\\fP\n.RS 4\n")
}

func (v *Visitor) preParamList(l *doc.ParamList) {
	v.ps("\\fI")
	for i, pn := range l.Params {
		if i > 0 {
			v.ps(",")
		}
		if w, ok := pn.(*doc.Word); ok {
			v.filter(w.Text)
		} else if w, ok := pn.(*doc.LinkedWord); ok {
			v.filter(w.Text)
		}
	}
	v.ps("\\fP ")
}

// AddIndexItem is a no-op: man pages carry no search index.
func (v *Visitor) AddIndexItem(anchor, entry string) {}

// WriteCode writes a source fragment. The caller has already switched to
// no-fill mode.
func (v *Visitor) WriteCode(text string) { v.filter(text) }

// StartFontClass is a no-op: roff has no token styling classes.
func (v *Visitor) StartFontClass(name string) {}

func (v *Visitor) EndFontClass() {}

// WriteCodeAnchor is a no-op: man pages have no anchors.
func (v *Visitor) WriteCodeAnchor(anchor string) {}

// WriteLineNumber writes the number alone; man output never links it.
func (v *Visitor) WriteLineNumber(ref, file, anchor string, n int) {
	v.pf("%5d ", n)
}
