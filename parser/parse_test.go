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

// Tests for parse.go, command.go and lex.go
package parser

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"akhil.cc/mexdoc/alias"
	"akhil.cc/mexdoc/doc"
	"akhil.cc/mexdoc/gen"
)

type recordSink struct {
	warns []string
	errs  []string
}

func (r *recordSink) Warnf(format string, args ...interface{}) {
	r.warns = append(r.warns, fmt.Sprintf(format, args...))
}

func (r *recordSink) Errorf(format string, args ...interface{}) {
	r.errs = append(r.errs, fmt.Sprintf(format, args...))
}

type mapFiles map[string]string

func (m mapFiles) ReadFile(name string) ([]byte, error) {
	if s, ok := m[name]; ok {
		return []byte(s), nil
	}
	return nil, fmt.Errorf("no such file %q", name)
}

func kinds(c doc.Composite) []doc.Kind {
	var ks []doc.Kind
	for _, n := range c.Children() {
		ks = append(ks, n.Kind())
	}
	return ks
}

func nonWSKinds(c doc.Composite) []doc.Kind {
	var ks []doc.Kind
	for _, n := range c.Children() {
		if n.Kind() == doc.KindWhiteSpace {
			continue
		}
		ks = append(ks, n.Kind())
	}
	return ks
}

func nonWS(c doc.Composite) []doc.Node {
	var ns []doc.Node
	for _, n := range c.Children() {
		if n.Kind() == doc.KindWhiteSpace {
			continue
		}
		ns = append(ns, n)
	}
	return ns
}

func firstPara(t *testing.T, r *doc.Root) *doc.Para {
	t.Helper()
	require.NotEmpty(t, r.Children())
	p, ok := r.Children()[0].(*doc.Para)
	require.True(t, ok, "first child is %T, want *doc.Para", r.Children()[0])
	return p
}

func TestParagraphBreaks(t *testing.T) {
	root := MustParse("first para\n\nsecond para", Options{})
	want := []doc.Kind{doc.KindPara, doc.KindPara}
	if diff := cmp.Diff(want, kinds(root)); diff != "" {
		t.Fatalf("root children mismatch (-want +got):\n%s", diff)
	}
	p1 := root.Children()[0].(*doc.Para)
	p2 := root.Children()[1].(*doc.Para)
	assert.True(t, p1.IsFirst())
	assert.False(t, p1.IsLast())
	assert.False(t, p2.IsFirst())
	assert.True(t, p2.IsLast())
}

func TestSectionNesting(t *testing.T) {
	in := "intro\n\\section s1 One\ntext\n\\subsection s2 Two\nmore\n\\section s3 Three\nend"
	root := MustParse(in, Options{})
	want := []doc.Kind{doc.KindPara, doc.KindSection, doc.KindSection}
	if diff := cmp.Diff(want, kinds(root)); diff != "" {
		t.Fatalf("root children mismatch (-want +got):\n%s", diff)
	}
	s1 := root.Children()[1].(*doc.Section)
	assert.Equal(t, 1, s1.Level)
	assert.Equal(t, "s1", s1.ID)
	assert.Equal(t, "One", s1.Title)
	if diff := cmp.Diff([]doc.Kind{doc.KindPara, doc.KindSection}, nonWSKinds(s1)); diff != "" {
		t.Fatalf("s1 children mismatch (-want +got):\n%s", diff)
	}
	s2 := nonWS(s1)[1].(*doc.Section)
	assert.Equal(t, 2, s2.Level)
	s3 := root.Children()[2].(*doc.Section)
	assert.Equal(t, 1, s3.Level)
	assert.Equal(t, "Three", s3.Title)
}

func TestSimpleSectMerge(t *testing.T) {
	root := MustParse("\\see A\n\\see B", Options{})
	para := firstPara(t, root)
	require.Equal(t, []doc.Kind{doc.KindSimpleSect}, nonWSKinds(para))
	ss := nonWS(para)[0].(*doc.SimpleSect)
	assert.Equal(t, doc.SectSee, ss.Type)
	want := []doc.Kind{doc.KindPara, doc.KindSimpleSectSep, doc.KindPara}
	if diff := cmp.Diff(want, kinds(ss)); diff != "" {
		t.Errorf("merged section children mismatch (-want +got):\n%s", diff)
	}
}

func TestUserSectionTitle(t *testing.T) {
	root := MustParse("\\par Side Effects\nbody", Options{})
	para := firstPara(t, root)
	ss := nonWS(para)[0].(*doc.SimpleSect)
	assert.Equal(t, doc.SectUser, ss.Type)
	require.NotNil(t, ss.Title())
	if diff := cmp.Diff([]doc.Kind{doc.KindTitle, doc.KindPara}, nonWSKinds(ss)); diff != "" {
		t.Fatalf("user section children mismatch (-want +got):\n%s", diff)
	}
	title := nonWS(ss)[0].(*doc.Title)
	assert.Equal(t, "Side", title.Children()[0].(*doc.Word).Text)
}

func TestParamDirections(t *testing.T) {
	root := MustParse("\\param[in] x first\n\\param[out] y second", Options{})
	para := firstPara(t, root)
	require.Equal(t, []doc.Kind{doc.KindParamSect}, nonWSKinds(para))
	ps := nonWS(para)[0].(*doc.ParamSect)
	assert.True(t, ps.HasInOut)
	var lists []*doc.ParamList
	for _, n := range ps.Children() {
		if l, ok := n.(*doc.ParamList); ok {
			lists = append(lists, l)
		}
	}
	require.Len(t, lists, 2)
	assert.Equal(t, doc.DirIn, lists[0].Dir)
	assert.Equal(t, doc.DirOut, lists[1].Dir)
	assert.Equal(t, "x", lists[0].Params[0].(*doc.Word).Text)
	assert.Equal(t, "y", lists[1].Params[0].(*doc.Word).Text)
	assert.True(t, lists[0].IsFirst())
	assert.False(t, lists[0].IsLast())
	assert.False(t, lists[1].IsFirst())
	assert.True(t, lists[1].IsLast())
}

func TestParamMultipleNames(t *testing.T) {
	root := MustParse("\\param a,b shared description", Options{})
	ps := nonWS(firstPara(t, root))[0].(*doc.ParamSect)
	var pl *doc.ParamList
	for _, n := range ps.Children() {
		if l, ok := n.(*doc.ParamList); ok {
			pl = l
			break
		}
	}
	require.NotNil(t, pl)
	require.Len(t, pl.Params, 2)
	assert.Equal(t, "a", pl.Params[0].(*doc.Word).Text)
	assert.Equal(t, "b", pl.Params[1].(*doc.Word).Text)
}

func TestXRefAnchors(t *testing.T) {
	root := MustParse("\\todo fix\n\ntext\n\n\\todo more", Options{})
	require.Len(t, root.Children(), 3)
	x1 := nonWS(root.Children()[0].(*doc.Para))[0].(*doc.XRefItem)
	x2 := nonWS(root.Children()[2].(*doc.Para))[0].(*doc.XRefItem)
	assert.Equal(t, "todo", x1.Key)
	assert.Equal(t, "_todo000001", x1.Anchor)
	assert.Equal(t, "_todo000002", x2.Anchor)
	assert.Equal(t, "Todo", x1.Title)
}

func TestRefUnresolvedDegrades(t *testing.T) {
	sink := &recordSink{}
	root, err := Parse("\\ref missing", Options{Sink: sink})
	require.NoError(t, err)
	require.Len(t, sink.warns, 1)
	assert.Contains(t, sink.warns[0], "missing")
	para := firstPara(t, root)
	require.Equal(t, []doc.Kind{doc.KindWord}, nonWSKinds(para))
	assert.Equal(t, "missing", nonWS(para)[0].(*doc.Word).Text)
}

func TestRefResolved(t *testing.T) {
	res := gen.ResolverFunc(func(name string) (gen.Target, bool) {
		if name == "Widget" {
			return gen.Target{File: "classWidget", Tooltip: "The Widget class"}, true
		}
		return gen.Target{}, false
	})
	root := MustParse("see \\ref Widget here", Options{Resolver: res})
	para := firstPara(t, root)
	want := []doc.Kind{doc.KindWord, doc.KindRef, doc.KindWord}
	require.Equal(t, want, nonWSKinds(para))
	ref := nonWS(para)[1].(*doc.Ref)
	assert.Equal(t, "classWidget", ref.File)
	assert.Equal(t, "The Widget class", ref.TargetTitle)
	assert.True(t, ref.RefToSection)
	assert.False(t, ref.RefToAnchor)
	assert.False(t, ref.HasLinkText())
}

func TestRefWithLinkText(t *testing.T) {
	res := gen.ResolverFunc(func(name string) (gen.Target, bool) {
		return gen.Target{File: "page"}, true
	})
	root := MustParse("\\ref target \"the page\"", Options{Resolver: res})
	ref := nonWS(firstPara(t, root))[0].(*doc.Ref)
	assert.True(t, ref.HasLinkText())
	assert.Equal(t, "the", ref.Children()[0].(*doc.Word).Text)
}

func TestAutoListNesting(t *testing.T) {
	root := MustParse("- a\n  - b\n- c", Options{})
	para := firstPara(t, root)
	require.Equal(t, []doc.Kind{doc.KindAutoList}, nonWSKinds(para))
	list := nonWS(para)[0].(*doc.AutoList)
	assert.Equal(t, 0, list.Depth)
	assert.False(t, list.Ordered)
	require.Len(t, list.Children(), 2)
	item1 := list.Children()[0].(*doc.AutoListItem)
	itemPara := nonWS(item1)[0].(*doc.Para)
	want := []doc.Kind{doc.KindWord, doc.KindAutoList}
	require.Equal(t, want, nonWSKinds(itemPara))
	nested := nonWS(itemPara)[1].(*doc.AutoList)
	assert.Equal(t, 1, nested.Depth)
}

func TestOrderedAutoList(t *testing.T) {
	root := MustParse("-# one\n-# two", Options{})
	list := nonWS(firstPara(t, root))[0].(*doc.AutoList)
	assert.True(t, list.Ordered)
	require.Len(t, list.Children(), 2)
	assert.Equal(t, 1, list.Children()[0].(*doc.AutoListItem).Num)
	assert.Equal(t, 2, list.Children()[1].(*doc.AutoListItem).Num)
}

func TestEntities(t *testing.T) {
	sink := &recordSink{}
	root, err := Parse("&amp; &bogus;", Options{Sink: sink})
	require.NoError(t, err)
	require.Len(t, sink.warns, 1)
	para := firstPara(t, root)
	want := []doc.Kind{doc.KindSymbol, doc.KindWord}
	require.Equal(t, want, nonWSKinds(para))
	assert.Equal(t, "amp", nonWS(para)[0].(*doc.Symbol).Name)
	assert.Equal(t, "&bogus;", nonWS(para)[1].(*doc.Word).Text)
}

func TestEmailAutolink(t *testing.T) {
	root := MustParse("mail me@example.com now", Options{})
	para := firstPara(t, root)
	want := []doc.Kind{doc.KindWord, doc.KindURL, doc.KindWord}
	require.Equal(t, want, nonWSKinds(para))
	url := nonWS(para)[1].(*doc.URL)
	assert.True(t, url.IsEmail)
	assert.Equal(t, "me@example.com", url.Text)
}

func TestDontincludeOperators(t *testing.T) {
	files := mapFiles{"ex.c": "A\nB needle\nC\nD end\nE"}
	in := "\\dontinclude ex.c\n\\skipline needle\n\\until end"
	root := MustParse(in, Options{Files: files})
	para := firstPara(t, root)
	want := []doc.Kind{doc.KindInclude, doc.KindIncOperator, doc.KindIncOperator}
	require.Equal(t, want, nonWSKinds(para))
	op1 := nonWS(para)[1].(*doc.IncOperator)
	op2 := nonWS(para)[2].(*doc.IncOperator)
	assert.Equal(t, "B needle", op1.Text)
	assert.Equal(t, "C\nD end", op2.Text)
	assert.True(t, op1.IsFirst)
	assert.False(t, op1.IsLast)
	assert.False(t, op2.IsFirst)
	assert.True(t, op2.IsLast)
}

func TestSnippet(t *testing.T) {
	files := mapFiles{"s.c": "pre\n//! [blk]\nbody line\n//! [blk]\npost"}
	root := MustParse("\\snippet s.c blk", Options{Files: files})
	inc := nonWS(firstPara(t, root))[0].(*doc.Include)
	assert.Equal(t, doc.IncSnippet, inc.Type)
	assert.Equal(t, "blk", inc.BlockID)
	assert.Equal(t, "body line", inc.Text)
}

func TestUnterminatedCode(t *testing.T) {
	root, err := Parse("\\code{.c}\nint x;", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "endcode")
	v := nonWS(firstPara(t, root))[0].(*doc.Verbatim)
	assert.Equal(t, ".c", v.Lang)
	assert.Equal(t, "int x;", v.Text)
}

func TestUnbalancedStyleWarns(t *testing.T) {
	sink := &recordSink{}
	_, err := Parse("<b>unclosed", Options{Sink: sink})
	require.NoError(t, err)
	require.Len(t, sink.warns, 1)
	assert.Contains(t, sink.warns[0], "unbalanced")
}

func TestStyleChangePositions(t *testing.T) {
	root, err := Parse("a <b>x</b>", Options{})
	require.NoError(t, err)
	para := firstPara(t, root)
	toggles := 0
	for i, n := range para.Children() {
		sc, ok := n.(*doc.StyleChange)
		if !ok {
			continue
		}
		toggles++
		assert.Equal(t, i, sc.Position, "toggle at child %d", i)
	}
	require.Equal(t, 2, toggles)
}

func TestTruncatedTableClosesImplicitly(t *testing.T) {
	sink := &recordSink{}
	root, err := Parse("<table><tr><td>x", Options{Sink: sink})
	require.NoError(t, err)
	// one warning each for the open td, tr and table
	require.Len(t, sink.warns, 3)
	para := firstPara(t, root)
	require.Equal(t, []doc.Kind{doc.KindHTMLTable}, nonWSKinds(para))
	tbl := nonWS(para)[0].(*doc.HTMLTable)
	require.Equal(t, 1, tbl.NumRows())
	assert.Equal(t, 1, tbl.NumColumns())
}

func TestAliasExpansion(t *testing.T) {
	al := alias.New()
	require.NoError(t, al.Define("warnbox", "\\warning"))
	root := MustParse("\\warnbox overflow", Options{Aliases: al})
	ss := nonWS(firstPara(t, root))[0].(*doc.SimpleSect)
	assert.Equal(t, doc.SectWarning, ss.Type)
}

func TestUnknownCommandDegrades(t *testing.T) {
	sink := &recordSink{}
	root, err := Parse("a \\nosuchcmd b", Options{Sink: sink})
	require.NoError(t, err)
	require.Len(t, sink.warns, 1)
	para := firstPara(t, root)
	want := []doc.Kind{doc.KindWord, doc.KindWord, doc.KindWord}
	require.Equal(t, want, nonWSKinds(para))
	assert.Equal(t, "\\nosuchcmd", nonWS(para)[1].(*doc.Word).Text)
}

func TestListMarkers(t *testing.T) {
	l := newLexer("  - x", 1)
	tok := l.next()
	require.Equal(t, tListItem, tok.kind)
	assert.Equal(t, 2, tok.indent)
	assert.False(t, tok.ordered)

	l = newLexer("\t-# y", 1)
	tok = l.next()
	require.Equal(t, tListItem, tok.kind)
	assert.Equal(t, 4, tok.indent)
	assert.True(t, tok.ordered)

	l = newLexer("-x", 1)
	tok = l.next()
	require.Equal(t, tWord, tok.kind)
	assert.Equal(t, "-x", tok.text)
}

func TestFormulaDelimiterNames(t *testing.T) {
	l := newLexer("\\f[x\\f]", 1)
	tok := l.next()
	require.Equal(t, tCommand, tok.kind)
	assert.Equal(t, "f[", tok.name)
}

func TestDiagnosticLocation(t *testing.T) {
	sink := &recordSink{}
	_, err := Parse("fine\n\\nosuchcmd", Options{FileName: "widget.h", StartLine: 10, Sink: sink})
	require.NoError(t, err)
	require.Len(t, sink.warns, 1)
	assert.Contains(t, sink.warns[0], "widget.h:11:")
}
