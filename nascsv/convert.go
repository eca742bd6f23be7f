package nascsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/tliron/commonlog"

	"github.com/Bruno02468/f06tools/blocks"
	"github.com/Bruno02468/f06tools/parser"
)

var log = commonlog.GetLogger("f06tools.nascsv")

// errorField is what a field renders as when its value could not be read
// from the block. Conversion never fails a whole record over one field.
var errorField = StringField("<ERROR>")

// ConvertBlock turns one finalized block into CSV records, one or more per
// row. Unsupported block types yield an error; missing values inside a
// supported block yield "<ERROR>" fields and a log entry.
func ConvertBlock(fb *blocks.FinalBlock) ([]Record, error) {
	switch fb.BlockType {
	case blocks.Displacements, blocks.AppliedForces, blocks.SpcForces:
		return convertVector(fb), nil
	case blocks.GridPointForceBalance:
		return convertGpForces(fb), nil
	case blocks.QuadStresses, blocks.QuadStrains:
		return convertQuad(fb), nil
	}
	return nil, fmt.Errorf("no CSV layout for %s blocks", fb.BlockType)
}

// dofFields reads the six DOF columns of a row into fields starting at pos.
func dofFields(fb *blocks.FinalBlock, row blocks.NasIndex, fields *[NumCols - 1]Field, pos int) {
	for i, dof := range blocks.AllDofs {
		x, ok := fb.Get(row, dof)
		if !ok {
			log.Errorf("missing %s for %s in %s block", dof, row, fb.BlockType.ShortName())
			fields[pos+i] = errorField
			continue
		}
		fields[pos+i] = RealField(x)
	}
}

func convertVector(fb *blocks.FinalBlock) []Record {
	records := make([]Record, 0, fb.NumRows())
	for _, row := range fb.RowIndexes {
		rec := Record{BlockID: BlockIDFor(fb.BlockType), Subcase: fb.Subcase}
		if gp, ok := row.(blocks.GridPointRef); ok {
			rec.Fields[0] = IntField(gp.ID)
		} else {
			log.Errorf("row %s of a %s block is not a grid point", row, fb.BlockType.ShortName())
			rec.Fields[0] = errorField
		}
		rec.Fields[1] = IntField(fb.Subcase)
		dofFields(fb, row, &rec.Fields, 2)
		records = append(records, rec)
	}
	return records
}

func convertGpForces(fb *blocks.FinalBlock) []Record {
	records := make([]Record, 0, fb.NumRows())
	for _, row := range fb.RowIndexes {
		rec := Record{BlockID: GpForceBlock, Subcase: fb.Subcase}
		if gfo, ok := row.(blocks.GridPointForceOrigin); ok {
			rec.Fields[0] = IntField(gfo.GridPoint.ID)
			rec.Fields[2] = StringField(gfo.Origin.Kind.String())
			if gfo.Origin.Kind == blocks.OriginElement {
				rec.Fields[3] = IntField(gfo.Origin.Element.EID)
			}
		} else {
			log.Errorf("row %s of a gpforce block has the wrong key type", row)
			rec.Fields[0] = errorField
		}
		rec.Fields[1] = IntField(fb.Subcase)
		dofFields(fb, row, &rec.Fields, 4)
		records = append(records, rec)
	}
	return records
}

// pointLabel renders a sided element point compactly, e.g. "CEN/TOP" or
// "G4/BOT".
func pointLabel(sp blocks.ElementSidedPoint) string {
	side := "BOT"
	if sp.Side == blocks.Top {
		side = "TOP"
	}
	if sp.Point.IsCentroid() {
		return "CEN/" + side
	}
	return fmt.Sprintf("G%d/%s", sp.Point.Corner.ID, side)
}

func convertQuad(fb *blocks.FinalBlock) []Record {
	records := make([]Record, 0, fb.NumRows())
	for _, row := range fb.RowIndexes {
		rec := Record{BlockID: BlockIDFor(fb.BlockType), Subcase: fb.Subcase}
		sp, ok := row.(blocks.ElementSidedPoint)
		if !ok {
			log.Errorf("row %s of a %s block is not a sided point", row, fb.BlockType.ShortName())
			rec.Fields[0] = errorField
			rec.Fields[1] = errorField
		} else {
			rec.Fields[0] = IntField(sp.Element.EID)
			rec.Fields[1] = StringField(pointLabel(sp))
		}
		values, ok := fb.Row(row)
		if !ok {
			log.Errorf("row %s missing from its own %s block", row, fb.BlockType.ShortName())
			continue
		}
		for i, x := range values {
			rec.Fields[2+i] = RealField(x)
		}
		records = append(records, rec)
	}
	return records
}

// solInfoRecords builds the 0-block: one record per subcase with the
// flavour and the number of blocks the subcase owns.
func solInfoRecords(f *parser.F06File) []Record {
	var records []Record
	for _, subcase := range f.Subcases() {
		rec := Record{BlockID: SolInfo, Subcase: subcase}
		rec.Fields[0] = IntField(subcase)
		rec.Fields[1] = StringField(f.Flavour.Solver.String())
		rec.Fields[2] = StringField(f.Flavour.SolType.String())
		rec.Fields[3] = IntField(f.Flavour.SolType.Number())
		rec.Fields[4] = IntField(len(f.BlocksForSubcase(subcase)))
		records = append(records, rec)
	}
	return records
}

// ConvertFile converts every block of a parsed file, plus the solution-info
// 0-block, into records sorted by block ID then subcase. Blocks with no CSV
// layout are skipped with a log entry.
func ConvertFile(f *parser.F06File) []Record {
	records := solInfoRecords(f)
	for _, fb := range f.Blocks {
		recs, err := ConvertBlock(fb)
		if err != nil {
			log.Warningf("skipping block: %s", err)
			continue
		}
		records = append(records, recs...)
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].BlockID != records[j].BlockID {
			return records[i].BlockID < records[j].BlockID
		}
		return records[i].Subcase < records[j].Subcase
	})
	return records
}

// WriteCSV writes records in CSV form. When withHeaders is set, a title row
// precedes each run of records with a new block ID. The keep filter, when
// non-nil, drops records whose block ID maps to false.
func WriteCSV(w io.Writer, records []Record, withHeaders bool, keep map[BlockID]bool) error {
	out := csv.NewWriter(w)
	lastID := BlockID(-1)
	for _, rec := range records {
		if keep != nil && !keep[rec.BlockID] {
			continue
		}
		if withHeaders && rec.BlockID != lastID {
			if err := out.Write(rec.BlockID.Headers()); err != nil {
				return fmt.Errorf("write headers: %w", err)
			}
			lastID = rec.BlockID
		}
		if err := out.Write(rec.Strings()); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	out.Flush()
	if err := out.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
