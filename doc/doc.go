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

// Package doc defines the document tree produced by parsing one
// documentation comment. Every node carries a Kind tag and a back-reference
// to its parent; composite nodes own an ordered child list. The tree is
// immutable after parsing, except for the table grid computation which runs
// lazily on first render.
package doc // import "akhil.cc/mexdoc/doc"

// Kind discriminates the concrete type of a Node. Code that needs to
// special-case a node compares this tag.
type Kind int

const (
	KindRoot Kind = iota
	KindWord
	KindLinkedWord
	KindWhiteSpace
	KindPara
	KindAutoList
	KindAutoListItem
	KindSymbol
	KindURL
	KindStyleChange
	KindSimpleSect
	KindSimpleSectSep
	KindTitle
	KindSimpleList
	KindSimpleListItem
	KindSection
	KindVerbatim
	KindXRefItem
	KindHTMLList
	KindHTMLListItem
	KindHTMLDescList
	KindHTMLDescTitle
	KindHTMLDescData
	KindHTMLTable
	KindHTMLRow
	KindHTMLCell
	KindHTMLCaption
	KindHTMLBlockQuote
	KindHTMLHeader
	KindLineBreak
	KindHorRule
	KindAnchor
	KindIndexEntry
	KindInternal
	KindHRef
	KindInclude
	KindIncOperator
	KindImage
	KindDotFile
	KindMscFile
	KindDiaFile
	KindLink
	KindRef
	KindInternalRef
	KindCite
	KindFormula
	KindSecRefItem
	KindSecRefList
	KindParamSect
	KindParamList
	KindCopy
	KindText
	KindParBlock
)

// Node is one tagged variant of the document tree.
type Node interface {
	Kind() Kind
	// Parent returns the enclosing node, or nil for the root. The parent is
	// looked up, never owned, by the child.
	Parent() Node
	SetParent(Node)
	// IsPreformatted reports whether the node sits inside a preformatted
	// span, which makes whitespace significant when rendering.
	IsPreformatted() bool
	SetInsidePre(bool)
}

// Composite is a node that owns an ordered list of children. Insertion
// order is significant and is never reordered.
type Composite interface {
	Node
	Children() []Node
	// Append adds children and points their parent link at this node.
	Append(...Node)
}

// base carries the state shared by every node.
type base struct {
	parent    Node
	insidePre bool
}

func (b *base) Parent() Node          { return b.parent }
func (b *base) SetParent(p Node)      { b.parent = p }
func (b *base) IsPreformatted() bool  { return b.insidePre }
func (b *base) SetInsidePre(on bool)  { b.insidePre = on }

// comp implements Composite. Concrete composites embed it and register
// themselves through init so Append can fix up child parent links.
type comp struct {
	base
	self     Node
	children []Node
}

func (c *comp) init(self, parent Node) {
	c.self = self
	c.parent = parent
}

func (c *comp) Children() []Node { return c.children }

func (c *comp) Append(ns ...Node) {
	for _, n := range ns {
		n.SetParent(c.self)
		c.children = append(c.children, n)
	}
}

// Attr is one name="value" pair carried over from an HTML-style tag.
type Attr struct {
	Name  string
	Value string
}

// AttrList preserves attribute order as written.
type AttrList []Attr

// Get returns the value of the named attribute and whether it was present.
func (l AttrList) Get(name string) (string, bool) {
	for _, a := range l {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Root is the top of a parsed documentation comment.
type Root struct {
	comp
	// Indent records whether indentation is significant for the output.
	Indent bool
	// SingleLine suppresses paragraph markers, used for one-line summaries.
	SingleLine bool
}

func NewRoot(indent, singleLine bool) *Root {
	r := &Root{Indent: indent, SingleLine: singleLine}
	r.init(r, nil)
	return r
}

func (*Root) Kind() Kind        { return KindRoot }
func (r *Root) IsEmpty() bool   { return len(r.children) == 0 }

// Text is the root of a plain text fragment: words, whitespace and symbols
// only. Used for titles and other single-line contexts.
type Text struct {
	comp
}

func NewText() *Text {
	t := &Text{}
	t.init(t, nil)
	return t
}

func (*Text) Kind() Kind      { return KindText }
func (t *Text) IsEmpty() bool { return len(t.children) == 0 }

// Para is the default container for inline content. Block constructs are
// freely nested inside paragraphs by the parser; backends that cannot nest
// blocks inside paragraphs break out with the balancer in gen/html.
type Para struct {
	comp
	first bool
	last  bool
}

func NewPara(parent Node) *Para {
	p := &Para{}
	p.init(p, parent)
	return p
}

func (*Para) Kind() Kind        { return KindPara }
func (p *Para) IsEmpty() bool   { return len(p.children) == 0 }
func (p *Para) IsFirst() bool   { return p.first }
func (p *Para) IsLast() bool    { return p.last }
func (p *Para) MarkFirst(v bool) { p.first = v }
func (p *Para) MarkLast(v bool)  { p.last = v }

// MarkParagraphs sets the first/last flags on the paragraph children of c.
// Called once at the end of a construct's parse, not re-derived per render.
func MarkParagraphs(c Composite) {
	var paras []*Para
	for _, n := range c.Children() {
		if p, ok := n.(*Para); ok {
			paras = append(paras, p)
		}
	}
	for i, p := range paras {
		p.MarkFirst(i == 0)
		p.MarkLast(i == len(paras)-1)
	}
}
