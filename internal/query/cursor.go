package query

// Cursor is the forward-only result-set reader (C10): SQLFetch advances it
// one row at a time, bound columns read the current row back by 1-indexed
// column number.
type Cursor struct {
	Columns []ColumnDesc
	cells   [][]string
	nulls   [][]bool
	pos     int // -1 = before first row
}

// NewCursor builds a cursor over already-materialized rows. cells and nulls
// must be row-major and have one entry per column per row.
func NewCursor(cols []ColumnDesc, cells [][]string, nulls [][]bool) *Cursor {
	return &Cursor{Columns: cols, cells: cells, nulls: nulls, pos: -1}
}

// NumCols returns the column count, as SQLNumResultCols reports it.
func (c *Cursor) NumCols() int16 {
	return int16(len(c.Columns))
}

// RowCount returns the total materialized row count, as SQLRowCount reports
// it for a SELECT.
func (c *Cursor) RowCount() int64 {
	return int64(len(c.cells))
}

// ColumnAt returns the 1-indexed column's metadata.
func (c *Cursor) ColumnAt(col int) (ColumnDesc, bool) {
	if col < 1 || col > len(c.Columns) {
		return ColumnDesc{}, false
	}
	return c.Columns[col-1], true
}

// Fetch advances to the next row. It returns false once past the last row
// (the driver maps this to SQL_NO_DATA).
func (c *Cursor) Fetch() bool {
	if c.pos+1 >= len(c.cells) {
		c.pos = len(c.cells)
		return false
	}
	c.pos++
	return true
}

// Value returns the 1-indexed column's value for the current row. ok is
// false before the first Fetch, after the last row, or for an out-of-range
// column.
func (c *Cursor) Value(col int) (value string, isNull bool, ok bool) {
	if c.pos < 0 || c.pos >= len(c.cells) {
		return "", false, false
	}
	if col < 1 || col > len(c.Columns) {
		return "", false, false
	}
	row := c.cells[c.pos]
	nullRow := c.nulls[c.pos]
	return row[col-1], nullRow[col-1], true
}
