package blocks

import (
	"fmt"
	"sort"
)

// IndexKey constrains RowBlock keys to concrete, comparable index types.
type IndexKey interface {
	comparable
	NasIndex
}

// RowBlock accumulates rows of a data block while it is being decoded. The
// column set and its order are fixed at construction; rows grow as lines are
// consumed. Inserting at an existing row key overwrites that row — solver
// reports can re-emit a row after a page break, and the later value wins.
type RowBlock[R IndexKey, C IndexKey] struct {
	width int
	cols  map[C]int
	rows  map[R][]float64
}

// NewRowBlock constructs a row block with a fixed column-to-position map.
// Positions must be 0..len(cols)-1 with no gaps.
func NewRowBlock[R IndexKey, C IndexKey](cols map[C]int) *RowBlock[R, C] {
	return &RowBlock[R, C]{
		width: len(cols),
		cols:  cols,
		rows:  make(map[R][]float64),
	}
}

// Width returns the fixed number of columns.
func (rb *RowBlock[R, C]) Width() int {
	return rb.width
}

// NumRows returns the number of distinct row keys inserted so far.
func (rb *RowBlock[R, C]) NumRows() int {
	return len(rb.rows)
}

// Insert sets the values for a row, overwriting any previous row at the same
// key. The values must be in column-position order and exactly Width long.
func (rb *RowBlock[R, C]) Insert(row R, values []float64) {
	if len(values) != rb.width {
		panic(fmt.Sprintf("row has %d values, block has %d columns", len(values), rb.width))
	}
	stored := make([]float64, rb.width)
	copy(stored, values)
	rb.rows[row] = stored
}

// Finalize turns the accumulated rows into an immutable FinalBlock. Row keys
// are sorted by their natural order; columns keep construction order. This
// is the only point where row ordering is fixed — insertion order never
// matters.
func (rb *RowBlock[R, C]) Finalize(bt BlockType, subcase int, lines *LineRange) *FinalBlock {
	rowIxs := make([]NasIndex, 0, len(rb.rows))
	for row := range rb.rows {
		rowIxs = append(rowIxs, row)
	}
	sort.Slice(rowIxs, func(i, j int) bool {
		return CompareIndexes(rowIxs[i], rowIxs[j]) < 0
	})
	colIxs := make([]NasIndex, rb.width)
	for col, pos := range rb.cols {
		colIxs[pos] = col
	}
	data := make([][]float64, len(rowIxs))
	for i, ix := range rowIxs {
		data[i] = rb.rows[ix.(R)]
	}
	fb := &FinalBlock{
		BlockType:  bt,
		Subcase:    subcase,
		LineRange:  lines,
		RowIndexes: rowIxs,
		ColIndexes: colIxs,
		Data:       data,
	}
	fb.reindex()
	return fb
}
