package blocks

import (
	"fmt"
	"sort"
)

// LineRange is a half-open-free, inclusive range of 1-based line numbers in
// the source file.
type LineRange struct {
	Start int
	End   int
}

// Span returns how many lines the range covers.
func (r LineRange) Span() int {
	return r.End - r.Start + 1
}

// Union returns the smallest range covering both.
func (r LineRange) Union(other LineRange) LineRange {
	out := r
	if other.Start < out.Start {
		out.Start = other.Start
	}
	if other.End > out.End {
		out.End = other.End
	}
	return out
}

// FinalBlock is the immutable result of decoding one data block: its type,
// owning subcase, optional source line range, sorted row index table, column
// index table in layout order, and the dense value matrix.
type FinalBlock struct {
	BlockType  BlockType
	Subcase    int
	LineRange  *LineRange
	RowIndexes []NasIndex
	ColIndexes []NasIndex
	Data       [][]float64

	rowPos map[NasIndex]int
	colPos map[NasIndex]int
}

// reindex rebuilds the key-to-position lookups from the index tables.
func (fb *FinalBlock) reindex() {
	fb.rowPos = make(map[NasIndex]int, len(fb.RowIndexes))
	for i, ix := range fb.RowIndexes {
		fb.rowPos[ix] = i
	}
	fb.colPos = make(map[NasIndex]int, len(fb.ColIndexes))
	for i, ix := range fb.ColIndexes {
		fb.colPos[ix] = i
	}
}

// NumRows returns the number of rows.
func (fb *FinalBlock) NumRows() int {
	return len(fb.RowIndexes)
}

// NumCols returns the number of columns.
func (fb *FinalBlock) NumCols() int {
	return len(fb.ColIndexes)
}

// Get returns the value at a (row, col) index pair, if present.
func (fb *FinalBlock) Get(row, col NasIndex) (float64, bool) {
	ri, ok := fb.rowPos[row]
	if !ok {
		return 0, false
	}
	ci, ok := fb.colPos[col]
	if !ok {
		return 0, false
	}
	return fb.Data[ri][ci], true
}

// Row returns the values of a row in column order, if present.
func (fb *FinalBlock) Row(row NasIndex) ([]float64, bool) {
	ri, ok := fb.rowPos[row]
	if !ok {
		return nil, false
	}
	return fb.Data[ri], true
}

// CanMerge reports whether other is a continuation of this block: same type,
// same subcase, same column layout. Blocks that differ in any of those came
// from different tables and must not be combined.
func (fb *FinalBlock) CanMerge(other *FinalBlock) error {
	if fb.BlockType != other.BlockType {
		return fmt.Errorf("block types differ: %s vs %s", fb.BlockType, other.BlockType)
	}
	if fb.Subcase != other.Subcase {
		return fmt.Errorf("subcases differ: %d vs %d", fb.Subcase, other.Subcase)
	}
	if len(fb.ColIndexes) != len(other.ColIndexes) {
		return fmt.Errorf("column counts differ: %d vs %d", len(fb.ColIndexes), len(other.ColIndexes))
	}
	for i, col := range fb.ColIndexes {
		if CompareIndexes(col, other.ColIndexes[i]) != 0 {
			return fmt.Errorf("column %d differs: %s vs %s", i, col, other.ColIndexes[i])
		}
	}
	return nil
}

// byRowIndex sorts a block's row index table and data matrix together.
type byRowIndex struct{ fb *FinalBlock }

func (s byRowIndex) Len() int { return len(s.fb.RowIndexes) }

func (s byRowIndex) Less(i, j int) bool {
	return CompareIndexes(s.fb.RowIndexes[i], s.fb.RowIndexes[j]) < 0
}

func (s byRowIndex) Swap(i, j int) {
	s.fb.RowIndexes[i], s.fb.RowIndexes[j] = s.fb.RowIndexes[j], s.fb.RowIndexes[i]
	s.fb.Data[i], s.fb.Data[j] = s.fb.Data[j], s.fb.Data[i]
}

// Merge absorbs the rows of other into this block. Rows present in both keep
// other's values, matching the overwrite policy of RowBlock. Line ranges are
// unioned. Merge fails, changing nothing, if CanMerge does.
func (fb *FinalBlock) Merge(other *FinalBlock) error {
	if err := fb.CanMerge(other); err != nil {
		return err
	}
	for i, row := range other.RowIndexes {
		if pos, ok := fb.rowPos[row]; ok {
			fb.Data[pos] = other.Data[i]
			continue
		}
		fb.RowIndexes = append(fb.RowIndexes, row)
		fb.Data = append(fb.Data, other.Data[i])
	}
	sort.Sort(byRowIndex{fb})
	fb.reindex()
	if fb.LineRange == nil {
		fb.LineRange = other.LineRange
	} else if other.LineRange != nil {
		merged := fb.LineRange.Union(*other.LineRange)
		fb.LineRange = &merged
	}
	return nil
}
