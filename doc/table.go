package doc

import "strconv"

// Alignment is the horizontal alignment of a table cell.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
)

// HTMLCell is one table cell. Row and column indices are assigned by the
// table grid pass.
type HTMLCell struct {
	comp
	Attrs     AttrList
	IsHeading bool
	first     bool
	last      bool
	rowIdx    int
	colIdx    int
}

func NewHTMLCell(parent Node, attrs AttrList, isHeading bool) *HTMLCell {
	c := &HTMLCell{Attrs: attrs, IsHeading: isHeading, rowIdx: -1, colIdx: -1}
	c.init(c, parent)
	return c
}

func (*HTMLCell) Kind() Kind         { return KindHTMLCell }
func (c *HTMLCell) IsFirst() bool    { return c.first }
func (c *HTMLCell) IsLast() bool     { return c.last }
func (c *HTMLCell) MarkFirst(v bool) { c.first = v }
func (c *HTMLCell) MarkLast(v bool)  { c.last = v }
func (c *HTMLCell) RowIndex() int    { return c.rowIdx }
func (c *HTMLCell) ColumnIndex() int { return c.colIdx }

// RowSpan returns the rowspan attribute, or 1 when absent or malformed.
func (c *HTMLCell) RowSpan() int { return c.span("rowspan") }

// ColSpan returns the colspan attribute, or 1 when absent or malformed.
func (c *HTMLCell) ColSpan() int { return c.span("colspan") }

func (c *HTMLCell) span(name string) int {
	if v, ok := c.Attrs.Get(name); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 1
}

// Alignment reads the align attribute, defaulting to left.
func (c *HTMLCell) Alignment() Alignment {
	switch v, _ := c.Attrs.Get("align"); v {
	case "right":
		return AlignRight
	case "center":
		return AlignCenter
	}
	return AlignLeft
}

// HTMLRow is one table row. The visible cell count differs from the
// literal cell count because spanning cells consume virtual slots.
type HTMLRow struct {
	comp
	Attrs        AttrList
	visibleCells int
	rowIdx       int
}

func NewHTMLRow(parent Node, attrs AttrList) *HTMLRow {
	r := &HTMLRow{Attrs: attrs, visibleCells: -1, rowIdx: -1}
	r.init(r, parent)
	return r
}

func (*HTMLRow) Kind() Kind { return KindHTMLRow }

func (r *HTMLRow) NumCells() int     { return len(r.children) }
func (r *HTMLRow) VisibleCells() int { return r.visibleCells }
func (r *HTMLRow) RowIndex() int     { return r.rowIdx }

// IsHeading reports whether the row's first cell is a heading cell.
func (r *HTMLRow) IsHeading() bool {
	if len(r.children) == 0 {
		return false
	}
	c, ok := r.children[0].(*HTMLCell)
	return ok && c.IsHeading
}

// HTMLCaption is a table caption, anchored so it can be linked.
type HTMLCaption struct {
	comp
	Attrs  AttrList
	Anchor string
	File   string
}

func NewHTMLCaption(parent Node, attrs AttrList) *HTMLCaption {
	c := &HTMLCaption{Attrs: attrs}
	c.init(c, parent)
	return c
}

func (*HTMLCaption) Kind() Kind { return KindHTMLCaption }

// HTMLTable is a table written with explicit tags. The grid (row/column
// indices and total column count) is computed lazily on the first call to
// NumColumns and cached; rendering triggers it exactly once per table.
type HTMLTable struct {
	comp
	Attrs    AttrList
	caption  *HTMLCaption
	numCols  int
	gridDone bool
}

func NewHTMLTable(parent Node, attrs AttrList) *HTMLTable {
	t := &HTMLTable{Attrs: attrs}
	t.init(t, parent)
	return t
}

func (*HTMLTable) Kind() Kind { return KindHTMLTable }

func (t *HTMLTable) NumRows() int          { return len(t.children) }
func (t *HTMLTable) HasCaption() bool      { return t.caption != nil }
func (t *HTMLTable) Caption() *HTMLCaption { return t.caption }

// SetCaption installs the caption and appends it to the child list so that
// traversal reaches it.
func (t *HTMLTable) SetCaption(c *HTMLCaption) {
	t.caption = c
	t.Append(c)
}

// NumColumns returns the table's column count, running the grid pass on
// first use.
func (t *HTMLTable) NumColumns() int {
	if !t.gridDone {
		t.computeGrid()
	}
	return t.numCols
}

// computeGrid assigns 0-based row and column indices to every row and
// cell, counts visible cells per row, and takes the column count as the
// maximum over rows of cell count plus extra spanned slots. Irregular row
// lengths are tolerated.
func (t *HTMLTable) computeGrid() {
	maxCols := 0
	rowIdx := 0
	for _, n := range t.children {
		row, ok := n.(*HTMLRow)
		if !ok {
			continue
		}
		row.rowIdx = rowIdx
		colIdx := 0
		cells := 0
		for i, cn := range row.children {
			cell, ok := cn.(*HTMLCell)
			if !ok {
				continue
			}
			cell.rowIdx = rowIdx
			cell.colIdx = colIdx
			cell.MarkFirst(i == 0)
			cell.MarkLast(i == len(row.children)-1)
			span := cell.ColSpan()
			colIdx += span
			cells += span
		}
		row.visibleCells = cells
		if cells > maxCols {
			maxCols = cells
		}
		rowIdx++
	}
	t.numCols = maxCols
	t.gridDone = true
}
