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

// Package gen defines the contract between a parsed document tree and an
// output backend, and the traversal that connects them. Backends implement
// Visitor; Walk drives the double dispatch so a backend never needs to know
// how to descend the tree.
package gen

import "akhil.cc/mexdoc/doc"

// Visitor receives every node of a document tree in order. Leaves arrive
// through Visit; composites bracket their children with VisitPre and
// VisitPost. A backend that does not care about some kind ignores it, so
// adding a node kind never breaks existing backends.
type Visitor interface {
	Visit(n doc.Node)
	VisitPre(n doc.Node)
	VisitPost(n doc.Node)
}

// Walk traverses n depth first, dispatching to v. Children are visited in
// insertion order.
func Walk(v Visitor, n doc.Node) {
	if c, ok := n.(doc.Composite); ok {
		v.VisitPre(n)
		for _, child := range c.Children() {
			Walk(v, child)
		}
		v.VisitPost(n)
		return
	}
	v.Visit(n)
}

// CodeWriter is the surface the syntax highlighter emits through. Backends
// that cannot style code implement the font-class methods as no-ops.
type CodeWriter interface {
	// WriteCode writes a source fragment verbatim, escaping for the output
	// format only.
	WriteCode(text string)
	// StartFontClass opens a styling span named after a token class, such as
	// "keyword" or "comment".
	StartFontClass(name string)
	EndFontClass()
	// WriteCodeAnchor drops a named anchor inside a code block.
	WriteCodeAnchor(anchor string)
	// WriteLineNumber starts a new code line numbered n, linked to the given
	// target when ref or file is non-empty.
	WriteLineNumber(ref, file, anchor string, n int)
}

// Backend is what a complete output format implements: the visitor protocol
// for document nodes, the code writer for highlighted source, and the index
// hook. Formats without an index implement AddIndexItem as a no-op rather
// than leaving it out, so callers need no capability check.
type Backend interface {
	Visitor
	CodeWriter
	// AddIndexItem registers a search index entry pointing at an anchor.
	AddIndexItem(anchor, entry string)
}
