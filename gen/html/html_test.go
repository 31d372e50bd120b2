package html

import (
	"bytes"
	"fmt"
	"testing"

	"akhil.cc/mexdoc/gen"
	"akhil.cc/mexdoc/parser"
)

type smallcase struct {
	in   string
	want string
}

type mapFiles map[string]string

func (m mapFiles) ReadFile(name string) ([]byte, error) {
	if s, ok := m[name]; ok {
		return []byte(s), nil
	}
	return nil, fmt.Errorf("no such file %q", name)
}

var renderSmall = []smallcase{
	{"hello world", "<p>hello world</p>\n"},
	{"a \\b word b", "<p>a <b>word</b> b</p>\n"},
	{"a < b", "<p>a &lt; b</p>\n"},
	{"n &lt; m", "<p>n &lt; m</p>\n"},
	{"100\\% sure", "<p>100% sure</p>\n"},
	{"\\note something important", "<dl class=\"section note\"><dt>Note</dt><dd>something important</dd></dl>\n"},
	{"\\see A\n\\see B", "<dl class=\"section see\"><dt>See also</dt><dd>A </dd>\n<dd>\nB</dd></dl>\n"},
	{"\\param x the input\n\\param y the output", "<dl class=\"params\"><dt>Parameters</dt><dd>\n" +
		"  <table class=\"params\">\n" +
		"    <tr><td class=\"paramname\">x</td><td>the input </td></tr>\n" +
		"    <tr><td class=\"paramname\">y</td><td>the output</td></tr>\n" +
		"  </table>\n" +
		"  </dd>\n" +
		"</dl>\n"},
	{"text\n- one\n- two", "<p>text </p><ul><li>one </li>\n<li>two</li>\n</ul>\n"},
	{"\\section intro Introduction\nbody text", "<h1><a class=\"anchor\" id=\"intro\"></a>\nIntroduction</h1>\n<p>body text</p>\n"},
	{"<table><tr><td>a</td><td>b</td></tr></table>", "<table>\n<tr>\n<td>a</td><td>b</td></tr>\n</table>\n"},
	{"<ul><li>one</li><li>two</li></ul>", "<ul>\n<li>one</li>\n<li>two</li>\n</ul>\n"},
	{"\\verbatim\nraw text\n\\endverbatim", "<pre class=\"fragment\">raw text\n</pre>"},
	{"\\f$x^2\\f$ scales", "<p><img class=\"formulaInl\" alt=\"$x^2$\" src=\"form_1.png\"/> scales</p>\n"},
	{"\\todo fix this", "<dl class=\"xrefitem todo\"><dt><b><a class=\"el\" href=\"todo#_todo000001\">Todo</a></b></dt><dd>fix this</dd></dl>\n"},
	{"before <center>mid</center> after", "<p>before </p><center>mid</center><p> after</p>\n"},
}

func TestRender(t *testing.T) {
	for i, test := range renderSmall {
		root := parser.MustParse(test.in, parser.Options{})
		var buf bytes.Buffer
		if err := Render(&buf, root, nil); err != nil {
			t.Fatalf("case %d, in %q, render: %v", i, test.in, err)
		}
		got := buf.String()
		if test.want != got {
			t.Errorf("case %d, in %q,\nwant %s, \ngot %s", i, test.in, test.want, got)
		}
	}
}

func TestRenderInclude(t *testing.T) {
	files := mapFiles{"f.c": "int main(){}\n"}
	root := parser.MustParse("\\include f.c", parser.Options{Files: files})
	var buf bytes.Buffer
	if err := Render(&buf, root, nil); err != nil {
		t.Fatal(err)
	}
	want := "<div class=\"fragment\"><pre class=\"fragment\">int main(){}\n</pre></div>"
	if got := buf.String(); want != got {
		t.Errorf("in \\include f.c,\nwant %s, \ngot %s", want, got)
	}
}

func TestRenderIncludeLineNumbers(t *testing.T) {
	files := mapFiles{"f.c": "a();\nb();\n"}
	root := parser.MustParse("\\includelineno f.c", parser.Options{Files: files})
	var buf bytes.Buffer
	if err := Render(&buf, root, nil); err != nil {
		t.Fatal(err)
	}
	want := "<div class=\"fragment\"><pre class=\"fragment\">" +
		"<span class=\"lineno\">    1</span>&#160;a();\n" +
		"<span class=\"lineno\">    2</span>&#160;b();\n" +
		"</pre></div>"
	if got := buf.String(); want != got {
		t.Errorf("in \\includelineno f.c,\nwant %s, \ngot %s", want, got)
	}
}

func TestRenderDontinclude(t *testing.T) {
	files := mapFiles{"ex.c": "A\nB needle\nC\nD end\nE"}
	in := "hidden text \\dontinclude ex.c\n\\skipline needle\n\\until end"
	root := parser.MustParse(in, parser.Options{Files: files})
	var buf bytes.Buffer
	if err := Render(&buf, root, nil); err != nil {
		t.Fatal(err)
	}
	want := "<p>hidden text  </p><div class=\"fragment\"><pre class=\"fragment\">" +
		"B needle\nC\nD end\n</pre></div>"
	if got := buf.String(); want != got {
		t.Errorf("in %q,\nwant %s, \ngot %s", in, want, got)
	}
}

func TestIndexEntries(t *testing.T) {
	root := parser.MustParse("\\addindex sorting", parser.Options{})
	var buf bytes.Buffer
	v := New(&buf, nil)
	gen.Walk(v, root)
	items := v.Index()
	if len(items) != 1 {
		t.Fatalf("got %d index items, want 1", len(items))
	}
	if items[0].Entry != "sorting" {
		t.Errorf("index entry = %q, want %q", items[0].Entry, "sorting")
	}
}
