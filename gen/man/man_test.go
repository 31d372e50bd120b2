package man

import (
	"bytes"
	"testing"

	"akhil.cc/mexdoc/parser"
)

type smallcase struct {
	in   string
	want string
}

var renderSmall = []smallcase{
	{"hello world", "hello world\n.PP\n"},
	{"a.b x", "a\\&.b x\n.PP\n"},
	{"code \\c word here", "code \\fCword\\fP here\n.PP\n"},
	{"\\note x", ".PP\n\\fBNote\\fP\n.RS 4\nx\n.PP\n.RE\n.PP\n.PP\n"},
	{"- a\n- b", ".IP \"\\(bu\" 4\na \n.IP \"\\(bu\" 4\nb\n.PP\n.PP\n"},
	{"\\param x desc", ".PP\n\\fBParameters\\fP\n.RS 4\n\\fIx\\fP desc\n.RE\n.PP\n.PP\n"},
	{"\\section s Some Title\nbody", ".SH \"SOME TITLE\"\nbody\n.PP\n"},
	{"\\verbatim\nx y\n\\endverbatim", ".PP\n.nf\nx y\n.fi\n.PP\n.PP\n"},
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
			t.Errorf("case %d, in %q,\nwant %q, \ngot %q", i, test.in, test.want, got)
		}
	}
}
