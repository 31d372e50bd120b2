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

// Package parser turns one documentation comment into a doc tree. The
// input mixes running text, backslash commands and a subset of HTML; the
// parser is a recursive descent over a token stream, with raw reads for
// command arguments and verbatim blocks.
//
// Malformed input never aborts a run. The parser reports a diagnostic
// through the options' sink, degrades the construct to plain text, and
// carries on; every open construct is closed implicitly at end of input.
package parser // import "akhil.cc/mexdoc/parser"

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"akhil.cc/mexdoc/alias"
	"akhil.cc/mexdoc/doc"
	"akhil.cc/mexdoc/entity"
	"akhil.cc/mexdoc/gen"
)

// FileReader loads the files named by include commands.
type FileReader interface {
	ReadFile(name string) ([]byte, error)
}

// OSFiles reads include files from a directory on disk.
type OSFiles struct {
	Dir string
}

func (o OSFiles) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(o.Dir, name))
}

// Options configures one parse. The zero value parses standalone text with
// no link resolution and silent diagnostics.
type Options struct {
	// FileName and StartLine locate the comment in its source file, for
	// diagnostics.
	FileName  string
	StartLine int
	// Context is the scope the comment documents, passed through to code
	// fragments for cross-referencing.
	Context string
	// IsExample marks comments that document an example file.
	IsExample   bool
	ExampleFile string
	// SingleLine parses a one-line summary: the result renders without
	// paragraph markers.
	SingleLine bool
	// Indent preserves leading indentation in the output.
	Indent bool

	Resolver gen.Resolver
	Sink     gen.Sink
	Aliases  *alias.Table
	Files    FileReader
}

// MustParse is like Parse but panics if the source cannot be parsed.
func MustParse(input string, opt Options) *doc.Root {
	root, err := Parse(input, opt)
	if err != nil {
		panic("Parse error: " + err.Error())
	}
	return root
}

// Parse parses one comment body and returns the document tree. The tree is
// always usable; err collects the recoverable problems found on the way.
func Parse(input string, opt Options) (root *doc.Root, err error) {
	if opt.Aliases != nil {
		input = opt.Aliases.Expand(input)
	}
	p := &parser{
		errors: []error{},
		lex:    newLexer(input, opt.StartLine),
		opt:    opt,
	}
	root = doc.NewRoot(opt.Indent, opt.SingleLine)
	p.parseContent(root, 0)
	doc.MarkParagraphs(root)
	if p.styleBits != 0 {
		p.warnf("unbalanced style markup still open at end of comment")
	}
	var es strings.Builder
	for _, e := range p.errors {
		es.WriteString(e.Error())
		es.WriteString("\n")
	}
	if len(p.errors) > 0 {
		err = errors.New(es.String())
	}
	return root, err
}

type term int

const (
	termEOF term = iota
	termBlank
	termStruct // a section-opening command was pushed back
	termClose  // an enclosing container's boundary was pushed back
)

type parser struct {
	errors     []error
	lex        *lexer
	opt        Options
	saved      *token
	styleBits  doc.Style
	containers []string
	listDepth  int
	formulaN   int
	xrefN      int
	inc        *includeState
}

func (p *parser) next() token {
	if p.saved != nil {
		t := *p.saved
		p.saved = nil
		return t
	}
	return p.lex.next()
}

func (p *parser) push(t token) { p.saved = &t }

// parseContent fills c with paragraphs and sections. Sections at a level
// not deeper than the container's own terminate it.
func (p *parser) parseContent(c doc.Composite, level int) {
	for {
		tok := p.next()
		switch tok.kind {
		case tEOF:
			return
		case tParaBreak, tNewline, tSpace:
			continue
		}
		if tok.kind == tCommand {
			if lv, ok := sectionLevel(tok.name); ok {
				if lv <= level {
					p.push(tok)
					return
				}
				p.parseSection(c, lv)
				continue
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
			return
		case termClose:
			return
		}
	}
}

func sectionLevel(name string) (int, bool) {
	switch name {
	case "section":
		return 1, true
	case "subsection":
		return 2, true
	case "subsubsection":
		return 3, true
	case "paragraph":
		return 4, true
	}
	return 0, false
}

func (p *parser) parseSection(parent doc.Composite, level int) {
	id := p.lex.readWord()
	title := p.lex.readRestOfLine()
	s := doc.NewSection(parent, level, id)
	s.Title = title
	if t, ok := p.resolve(id); ok {
		s.File, s.Anchor = t.File, t.Anchor
	}
	parent.Append(s)
	p.parseContent(s, level)
	doc.MarkParagraphs(s)
}

// parsePara consumes one paragraph's worth of tokens into para. Structural
// boundaries are pushed back for the caller.
func (p *parser) parsePara(para *doc.Para) term {
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

// inlineTok handles one token in a paragraph-like context. It returns
// false for tokens the surrounding construct must handle: section commands,
// closes of open containers, and sibling starters like a second <li>.
func (p *parser) inlineTok(c doc.Composite, tok token) bool {
	switch tok.kind {
	case tNewline:
		p.appendSpace(c, " ")
	case tSpace:
		p.appendSpace(c, tok.text)
	case tWord:
		p.appendWord(c, tok.text)
	case tURL:
		c.Append(doc.NewURL(c, tok.text, tok.isEmail))
	case tEntity:
		if _, ok := entity.Lookup(tok.name); !ok {
			p.warnf("unknown symbol &%s;", tok.name)
			c.Append(doc.NewWord(c, "&"+tok.name+";"))
			break
		}
		sym := doc.NewSymbol(c, tok.name)
		sym.SetInsidePre(p.insidePre())
		c.Append(sym)
	case tCommand:
		if _, ok := sectionLevel(tok.name); ok {
			return false
		}
		p.handleCommand(c, tok)
	case tTagOpen:
		if p.isSiblingStart(tok.name) {
			return false
		}
		p.handleTagOpen(c, tok)
	case tTagClose:
		if p.isOpenContainer(tok.name) {
			return false
		}
		p.handleTagClose(c, tok)
	case tListItem:
		// only reached from contexts that did not claim it
		p.parseAutoList(c, tok)
	}
	return true
}

func (p *parser) insidePre() bool { return p.styleBits&doc.Preformatted != 0 }

func (p *parser) appendSpace(c doc.Composite, text string) {
	pre := p.insidePre()
	if !pre {
		if len(c.Children()) == 0 {
			return
		}
		if _, ok := lastChild(c).(*doc.WhiteSpace); ok {
			return
		}
		text = " "
	}
	w := doc.NewWhiteSpace(c, text)
	w.SetInsidePre(pre)
	c.Append(w)
}

// appendWord links words that look like symbol references when the
// resolver knows them; everything else stays a plain word.
func (p *parser) appendWord(c doc.Composite, text string) {
	if looksLikeSymbol(text) {
		if t, ok := p.resolve(text); ok {
			w := doc.NewLinkedWord(c, text, t.Ref, t.File, t.RelPath, t.Anchor, t.Tooltip)
			w.SetInsidePre(p.insidePre())
			c.Append(w)
			return
		}
	}
	w := doc.NewWord(c, text)
	w.SetInsidePre(p.insidePre())
	c.Append(w)
}

func looksLikeSymbol(s string) bool {
	return strings.Contains(s, "::") || strings.Contains(s, "#") || strings.HasSuffix(s, "()")
}

// parseAutoList reads a run of item markers at one indent into a list node
// under parent. The terminating token is pushed back.
func (p *parser) parseAutoList(parent doc.Composite, first token) {
	list := doc.NewAutoList(parent, first.indent, first.ordered, p.listDepth)
	p.listDepth++
	parent.Append(list)
	tok := first
	num := 1
	for tok.kind == tListItem && tok.indent >= first.indent {
		item := doc.NewAutoListItem(list, tok.indent, num)
		num++
		list.Append(item)
		tok = p.parseAutoListItem(item, first.indent)
	}
	p.listDepth--
	p.push(tok)
}

// parseAutoListItem fills one item and returns the token that ended it: a
// marker for the next item, a paragraph break, or a structural boundary.
func (p *parser) parseAutoListItem(item *doc.AutoListItem, indent int) token {
	para := doc.NewPara(item)
	for {
		tok := p.next()
		switch tok.kind {
		case tEOF, tParaBreak:
			p.closeItemPara(item, para)
			return tok
		case tListItem:
			if tok.indent > indent {
				p.parseAutoList(para, tok)
				// the nested list already pushed back its terminator
				continue
			}
			p.closeItemPara(item, para)
			return tok
		}
		if p.inlineTok(para, tok) {
			continue
		}
		p.closeItemPara(item, para)
		return tok
	}
}

func (p *parser) closeItemPara(item *doc.AutoListItem, para *doc.Para) {
	p.finishPara(para)
	if !para.IsEmpty() {
		item.Append(para)
	}
	doc.MarkParagraphs(item)
}

// finishPara runs the per-paragraph fixups: marking the first and last
// include operator of each run.
func (p *parser) finishPara(c doc.Composite) {
	prevOp := false
	var lastOp *doc.IncOperator
	for _, n := range c.Children() {
		if _, ok := n.(*doc.WhiteSpace); ok {
			continue
		}
		op, ok := n.(*doc.IncOperator)
		if ok {
			op.IsFirst = !prevOp
			lastOp = op
		} else if lastOp != nil {
			lastOp.IsLast = true
			lastOp = nil
		}
		prevOp = ok
	}
	if lastOp != nil {
		lastOp.IsLast = true
	}
}

func lastChild(c doc.Composite) doc.Node {
	ch := c.Children()
	if len(ch) == 0 {
		return nil
	}
	return ch[len(ch)-1]
}

// lastNonWS returns the last child that is not whitespace, for the
// same-type merge checks.
func lastNonWS(c doc.Composite) doc.Node {
	ch := c.Children()
	for i := len(ch) - 1; i >= 0; i-- {
		if _, ok := ch[i].(*doc.WhiteSpace); ok {
			continue
		}
		return ch[i]
	}
	return nil
}

func (p *parser) resolve(name string) (gen.Target, bool) {
	if p.opt.Resolver == nil {
		return gen.Target{}, false
	}
	return p.opt.Resolver.Resolve(name)
}

func (p *parser) warnf(format string, args ...interface{}) {
	if p.opt.Sink == nil {
		return
	}
	where := p.opt.FileName
	if where == "" {
		where = "<input>"
	}
	p.opt.Sink.Warnf("%s:%d: %s", where, p.lex.line, fmt.Sprintf(format, args...))
}

func (p *parser) errorf(format string, args ...interface{}) {
	p.errors = append(p.errors, fmt.Errorf(format, args...))
	p.warnf(format, args...)
}
