package doc

import "testing"

func TestTableGrid(t *testing.T) {
	tbl := NewHTMLTable(nil, nil)
	r1 := NewHTMLRow(tbl, nil)
	tbl.Append(r1)
	c11 := NewHTMLCell(r1, AttrList{{Name: "colspan", Value: "2"}}, true)
	r1.Append(c11)
	c12 := NewHTMLCell(r1, nil, true)
	r1.Append(c12)
	r2 := NewHTMLRow(tbl, nil)
	tbl.Append(r2)
	var cells []*HTMLCell
	for i := 0; i < 3; i++ {
		c := NewHTMLCell(r2, nil, false)
		r2.Append(c)
		cells = append(cells, c)
	}

	if got := tbl.NumColumns(); got != 3 {
		t.Errorf("NumColumns() = %d, want 3", got)
	}
	if got := r1.VisibleCells(); got != 3 {
		t.Errorf("row 1 VisibleCells() = %d, want 3", got)
	}
	if got := c12.ColumnIndex(); got != 2 {
		t.Errorf("spanned-over cell ColumnIndex() = %d, want 2", got)
	}
	for i, c := range cells {
		if c.ColumnIndex() != i {
			t.Errorf("row 2 cell %d ColumnIndex() = %d", i, c.ColumnIndex())
		}
		if c.RowIndex() != 1 {
			t.Errorf("row 2 cell %d RowIndex() = %d, want 1", i, c.RowIndex())
		}
	}
	if !r1.IsHeading() {
		t.Error("row 1 IsHeading() = false, want true")
	}
	if r2.IsHeading() {
		t.Error("row 2 IsHeading() = true, want false")
	}
	if c11.ColSpan() != 2 || c11.RowSpan() != 1 {
		t.Errorf("c11 spans = (%d,%d), want (2,1)", c11.ColSpan(), c11.RowSpan())
	}
}

func TestCellAlignment(t *testing.T) {
	left := NewHTMLCell(nil, nil, false)
	right := NewHTMLCell(nil, AttrList{{Name: "align", Value: "right"}}, false)
	center := NewHTMLCell(nil, AttrList{{Name: "align", Value: "center"}}, false)
	if left.Alignment() != AlignLeft {
		t.Error("default alignment is not left")
	}
	if right.Alignment() != AlignRight {
		t.Error("align=right not recognized")
	}
	if center.Alignment() != AlignCenter {
		t.Error("align=center not recognized")
	}
}

func TestMarkParagraphs(t *testing.T) {
	root := NewRoot(false, false)
	p1 := NewPara(root)
	root.Append(p1)
	s := NewSection(root, 1, "id")
	root.Append(s)
	p2 := NewPara(root)
	root.Append(p2)
	MarkParagraphs(root)

	if !p1.IsFirst() || p1.IsLast() {
		t.Errorf("p1 first/last = %v/%v, want true/false", p1.IsFirst(), p1.IsLast())
	}
	if p2.IsFirst() || !p2.IsLast() {
		t.Errorf("p2 first/last = %v/%v, want false/true", p2.IsFirst(), p2.IsLast())
	}
}

func TestStyleString(t *testing.T) {
	tests := []struct {
		st   Style
		want string
	}{
		{Bold, "b"},
		{Italic, "em"},
		{Code, "code"},
		{Center, "center"},
		{Small, "small"},
		{Subscript, "sub"},
		{Superscript, "sup"},
		{Preformatted, "pre"},
		{Span, "span"},
		{Div, "div"},
	}
	for _, test := range tests {
		if got := test.st.String(); got != test.want {
			t.Errorf("%d.String() = %q, want %q", test.st, got, test.want)
		}
	}
	// the styles are independent bits, so a mask can hold several at once
	mask := Bold | Italic
	if mask&Code != 0 {
		t.Error("Code unexpectedly set in Bold|Italic mask")
	}
	if mask&Bold == 0 || mask&Italic == 0 {
		t.Error("Bold|Italic mask lost a bit")
	}
}

func TestSimpleSectTitle(t *testing.T) {
	ss := NewSimpleSect(nil, SectUser)
	ss.Append(NewPara(ss))
	title := NewTitle(ss)
	ss.SetTitle(title)
	if ss.Title() != title {
		t.Error("Title() does not return the installed title")
	}
	if ss.Children()[0] != Node(title) {
		t.Error("SetTitle did not prepend the title node")
	}
}
