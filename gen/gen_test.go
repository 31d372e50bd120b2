package gen

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"akhil.cc/mexdoc/doc"
)

// traceVisitor records the dispatch order as "pre/leaf/post kind" strings.
type traceVisitor struct {
	events []string
}

func (v *traceVisitor) Visit(n doc.Node)     { v.events = append(v.events, fmt.Sprintf("leaf %d", n.Kind())) }
func (v *traceVisitor) VisitPre(n doc.Node)  { v.events = append(v.events, fmt.Sprintf("pre %d", n.Kind())) }
func (v *traceVisitor) VisitPost(n doc.Node) { v.events = append(v.events, fmt.Sprintf("post %d", n.Kind())) }

func TestWalkOrder(t *testing.T) {
	root := doc.NewRoot(false, false)
	para := doc.NewPara(root)
	root.Append(para)
	para.Append(doc.NewWord(para, "a"))
	para.Append(doc.NewWhiteSpace(para, " "))
	para.Append(doc.NewWord(para, "b"))

	v := &traceVisitor{}
	Walk(v, root)

	want := []string{
		fmt.Sprintf("pre %d", doc.KindRoot),
		fmt.Sprintf("pre %d", doc.KindPara),
		fmt.Sprintf("leaf %d", doc.KindWord),
		fmt.Sprintf("leaf %d", doc.KindWhiteSpace),
		fmt.Sprintf("leaf %d", doc.KindWord),
		fmt.Sprintf("post %d", doc.KindPara),
		fmt.Sprintf("post %d", doc.KindRoot),
	}
	if diff := cmp.Diff(want, v.events); diff != "" {
		t.Errorf("walk order mismatch (-want +got):\n%s", diff)
	}
}

// recordWriter collects highlighter output as plain text with markers.
type recordWriter struct {
	out bytes.Buffer
}

func (r *recordWriter) WriteCode(text string)      { r.out.WriteString(text) }
func (r *recordWriter) StartFontClass(name string) { fmt.Fprintf(&r.out, "[%s]", name) }
func (r *recordWriter) EndFontClass()              { r.out.WriteString("[/]") }
func (r *recordWriter) WriteCodeAnchor(anchor string) {
	fmt.Fprintf(&r.out, "{#%s}", anchor)
}
func (r *recordWriter) WriteLineNumber(ref, file, anchor string, n int) {
	fmt.Fprintf(&r.out, "%d|", n)
}

func TestPlainHighlighter(t *testing.T) {
	var w recordWriter
	PlainHighlighter{}.Highlight(&w, "c", "x;\ny;\n", false, 0)
	if got := w.out.String(); got != "x;\ny;\n" {
		t.Errorf("unnumbered output = %q, want %q", got, "x;\ny;\n")
	}

	w.out.Reset()
	PlainHighlighter{}.Highlight(&w, "c", "x;\ny;\n", true, 4)
	want := "4|x;\n5|y;\n"
	if got := w.out.String(); got != want {
		t.Errorf("numbered output = %q, want %q", got, want)
	}
}

func TestEnglishTranslator(t *testing.T) {
	tr := English{}
	if got := tr.Tr("see"); got != "See also" {
		t.Errorf("Tr(see) = %q", got)
	}
	if got := tr.Tr("retvals"); got != "Return values" {
		t.Errorf("Tr(retvals) = %q", got)
	}
	// unknown keys pass through so new labels degrade readably
	if got := tr.Tr("mystery"); got != "mystery" {
		t.Errorf("Tr(mystery) = %q", got)
	}
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	s := WriterSink{W: &buf}
	s.Warnf("file %s not found", "a.c")
	s.Errorf("bad %s", "input")
	want := "warning: file a.c not found\nerror: bad input\n"
	if got := buf.String(); got != want {
		t.Errorf("sink output = %q, want %q", got, want)
	}
}

func TestZeroContext(t *testing.T) {
	ctx := &Context{}
	if _, ok := ctx.Resolve("anything"); ok {
		t.Error("zero context resolved a name")
	}
	if got := ctx.Tr("note"); got != "Note" {
		t.Errorf("zero context Tr(note) = %q", got)
	}
	var w recordWriter
	ctx.Highlight(&w, "", "code", false, 0)
	if got := w.out.String(); got != "code" {
		t.Errorf("zero context Highlight wrote %q", got)
	}
	// diagnostics on a zero context must not panic
	ctx.Warnf("w")
	ctx.Errorf("e")
}
