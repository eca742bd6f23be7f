package blocks

import (
	"strings"

	"github.com/tliron/commonlog"

	"github.com/Bruno02468/f06tools/flavour"
)

var log = commonlog.GetLogger("f06tools.blocks")

// MYSTRAN ends its tables with a run of dashes.
const mystranDashes = "-------------"

// dofCols returns the column map shared by all six-DOF vector blocks.
func dofCols() map[Dof]int {
	cols := make(map[Dof]int, SixDof)
	for i, d := range AllDofs {
		cols[d] = i
	}
	return cols
}

// quadStressCols returns the column map for 2D element stress/strain blocks,
// in the order the solvers print them.
func quadStressCols() map[StressField]int {
	order := []StressField{
		FibreDistance,
		NormalX,
		NormalY,
		ShearXY,
		Angle,
		Major,
		Minor,
		VonMises,
	}
	cols := make(map[StressField]int, len(order))
	for i, f := range order {
		cols[f] = i
	}
	return cols
}

// vectorDecoder decodes the grid-point vector blocks (displacements, SPC
// forces, applied forces). One row per grid point, six DOF columns. The
// layout is the same across the supported solvers, so it never needs to
// branch on flavour.
type vectorDecoder struct {
	blockType BlockType
	flavour   flavour.Flavour
	data      *RowBlock[GridPointRef, Dof]
}

func newVectorDecoder(bt BlockType, f flavour.Flavour) Decoder {
	return &vectorDecoder{
		blockType: bt,
		flavour:   f,
		data:      NewRowBlock[GridPointRef, Dof](dofCols()),
	}
}

func newDisplacementsDecoder(f flavour.Flavour) Decoder {
	return newVectorDecoder(Displacements, f)
}

func newSpcForcesDecoder(f flavour.Flavour) Decoder {
	return newVectorDecoder(SpcForces, f)
}

func newAppliedForcesDecoder(f flavour.Flavour) Decoder {
	return newVectorDecoder(AppliedForces, f)
}

func (d *vectorDecoder) BlockType() BlockType {
	return d.blockType
}

func (d *vectorDecoder) GoodHeader(header string) bool {
	return true
}

func (d *vectorDecoder) Consume(line string) LineResponse {
	if strings.Contains(line, mystranDashes) {
		return Done
	}
	dofs, ok := ExtractReals(line, SixDof)
	if !ok {
		return Useless
	}
	gid, ok := NthInteger(line, 0)
	if !ok {
		return Useless
	}
	d.data.Insert(GridPointRef{ID: gid}, dofs)
	return Data
}

func (d *vectorDecoder) Finalize(subcase int, lines *LineRange) *FinalBlock {
	return d.data.Finalize(d.blockType, subcase, lines)
}

// gpfbDecoder decodes grid point force balance blocks. Rows are keyed by
// (grid point, force origin). MYSTRAN announces the grid point on its own
// line and labels each row's origin textually; Simcenter repeats the grid
// ID on every row and distinguishes origins by column tags, with "APP-LOAD"
// rows shifting which field holds the ID.
type gpfbDecoder struct {
	flavour flavour.Flavour
	gpref   *GridPointRef
	data    *RowBlock[GridPointForceOrigin, Dof]
}

func newGridPointForceBalanceDecoder(f flavour.Flavour) Decoder {
	return &gpfbDecoder{
		flavour: f,
		data:    NewRowBlock[GridPointForceOrigin, Dof](dofCols()),
	}
}

func (d *gpfbDecoder) BlockType() BlockType {
	return GridPointForceBalance
}

func (d *gpfbDecoder) GoodHeader(header string) bool {
	return true
}

func (d *gpfbDecoder) Consume(line string) LineResponse {
	if strings.Contains(line, mystranDashes) {
		return Done
	}
	if strings.Contains(line, "FORCE BALANCE FOR GRID POINT") {
		if gid, ok := NthInteger(line, 0); ok {
			d.gpref = &GridPointRef{ID: gid}
		} else {
			d.gpref = nil
		}
		return Metadata
	}
	if strings.Contains(line, "*TOTALS*") {
		return Useless
	}
	var origin ForceOrigin
	switch d.flavour.Solver {
	case flavour.Mystran:
		switch {
		case strings.Contains(line, "APPLIED FORCE"):
			origin = ForceOrigin{Kind: OriginLoad}
		case strings.Contains(line, "SPC FORCE"):
			origin = ForceOrigin{Kind: OriginSinglePointConstraint}
		case strings.Contains(line, "MPC FORCE"):
			origin = ForceOrigin{Kind: OriginMultiPointConstraint}
		case strings.Contains(line, "ELEM"):
			eid, ok := NthInteger(line, 0)
			if !ok {
				return Useless
			}
			etype, _ := NthEtype(line, 0)
			origin = ForceOrigin{
				Kind:    OriginElement,
				Element: ElementRef{EID: eid, Etype: etype},
			}
		default:
			return Useless
		}
	case flavour.Simcenter:
		// the grid ID rides along on every row here
		if gid, ok := NthInteger(line, 0); ok {
			d.gpref = &GridPointRef{ID: gid}
		} else {
			d.gpref = nil
		}
		switch {
		case strings.Contains(line, "APP-LOAD"):
			// APP-LOAD rows push the grid ID one field over
			if gid, ok := NthInteger(line, 1); ok {
				d.gpref = &GridPointRef{ID: gid}
			} else {
				d.gpref = nil
			}
			origin = ForceOrigin{Kind: OriginLoad}
		case strings.Contains(line, "F-OF-SPC"):
			origin = ForceOrigin{Kind: OriginSinglePointConstraint}
		case strings.Contains(line, "F-OF-MPC"):
			origin = ForceOrigin{Kind: OriginMultiPointConstraint}
		default:
			eid, hasEid := NthInteger(line, 1)
			etype, hasEtype := NthEtype(line, 0)
			if d.gpref == nil || !hasEid || !hasEtype {
				return Useless
			}
			origin = ForceOrigin{
				Kind:    OriginElement,
				Element: ElementRef{EID: eid, Etype: etype},
			}
		}
	default:
		return BadFlavour
	}
	if d.gpref == nil {
		return Useless
	}
	values, ok := ExtractReals(line, SixDof)
	if !ok {
		log.Warningf("force origin resolved but values unparseable: %s", strings.TrimSpace(line))
		return Abort
	}
	d.data.Insert(GridPointForceOrigin{GridPoint: *d.gpref, Origin: origin}, values)
	return Data
}

func (d *gpfbDecoder) Finalize(subcase int, lines *LineRange) *FinalBlock {
	return d.data.Finalize(GridPointForceBalance, subcase, lines)
}

// quadStressesDecoder decodes stresses in quadrilateral elements. Rows are
// keyed by element-sided-point. MYSTRAN writes an element ID plus a marker
// on the first line of an element, point markers on continuation lines, and
// flips the side on lines with neither; Simcenter infers row identity from
// which integer fields are present, with "CEN/4" marking the centroid.
type quadStressesDecoder struct {
	flavour flavour.Flavour
	data    *RowBlock[ElementSidedPoint, StressField]
	curRow  *ElementSidedPoint
	etype   ElementType
}

const quadStressWidth = 8

func newQuadStressesDecoder(f flavour.Flavour) Decoder {
	return &quadStressesDecoder{
		flavour: f,
		data:    NewRowBlock[ElementSidedPoint, StressField](quadStressCols()),
	}
}

func (d *quadStressesDecoder) BlockType() BlockType {
	return QuadStresses
}

// GoodHeader rejects the thermal/elastic sub-variants, which share a header
// prefix with the supported table, and grabs the element type hint.
func (d *quadStressesDecoder) GoodHeader(header string) bool {
	if et, ok := NthEtype(header, 0); ok {
		d.etype = et
	}
	if strings.Contains(header, "THERMAL") || strings.Contains(header, "ELASTIC") {
		return false
	}
	return true
}

func (d *quadStressesDecoder) Consume(line string) LineResponse {
	cols, ok := ExtractReals(line, quadStressWidth)
	if !ok {
		return Useless
	}
	fields := LineBreakdown(line)
	switch d.flavour.Solver {
	case flavour.Mystran:
		if resp := d.consumeMystran(line, fields); resp != Data {
			return resp
		}
	case flavour.Simcenter:
		if resp := d.consumeSimcenter(line, fields); resp != Data {
			return resp
		}
	default:
		return BadFlavour
	}
	if d.curRow == nil {
		log.Warningf("data with no resolvable row index: %s", strings.TrimSpace(line))
		return Abort
	}
	d.data.Insert(*d.curRow, cols)
	return Data
}

// consumeMystran resolves the row key for a MYSTRAN line, returning Data
// when resolution succeeded. The first two fields decide everything.
func (d *quadStressesDecoder) consumeMystran(line string, fields []LineField) LineResponse {
	var first, second *LineField
	if len(fields) > 0 {
		first = &fields[0]
	}
	if len(fields) > 1 {
		second = &fields[1]
	}
	switch {
	// element ID plus marker word: a new element starts, bottom side first
	case first != nil && first.Kind == FieldInteger &&
		second != nil && second.Kind == FieldWord:
		var point ElementPoint
		switch {
		case strings.Contains(line, "CENTER"):
			point = Centroid
		case strings.Contains(line, "GRD"):
			if len(fields) > 2 && fields[2].Kind == FieldInteger {
				point = CornerPoint(fields[2].Int)
			} else {
				log.Warningf("no corner grid point in: %s", strings.TrimSpace(line))
				return Abort
			}
		default:
			log.Warningf("no element point in: %s", strings.TrimSpace(line))
			return Abort
		}
		d.curRow = &ElementSidedPoint{
			Element: ElementRef{EID: first.Int, Etype: d.etype},
			Point:   point,
			Side:    Bottom,
		}
	// corner marker: same element, new corner
	case first != nil && first.Kind == FieldWord && first.Text == "GRD" &&
		second != nil && second.Kind == FieldInteger:
		if d.curRow == nil {
			log.Warningf("corner line with no current element: %s", strings.TrimSpace(line))
			return Abort
		}
		d.curRow.Point = CornerPoint(second.Int)
	// centroid marker: same element, back to the center
	case first != nil && first.Kind == FieldWord && first.Text == "CENTER":
		if d.curRow == nil {
			log.Warningf("centroid line with no current element: %s", strings.TrimSpace(line))
			return Abort
		}
		d.curRow.Point = Centroid
	// nothing identifying: continuation, flip to the other side
	default:
		if d.curRow == nil {
			log.Warningf("continuation with no current row: %s", strings.TrimSpace(line))
			return Abort
		}
		d.curRow.Side = d.curRow.Side.Flipped()
	}
	return Data
}

// consumeSimcenter resolves the row key for a Simcenter line. Identity is
// inferred purely from which integer fields are present.
func (d *quadStressesDecoder) consumeSimcenter(line string, fields []LineField) LineResponse {
	var ints []int
	for _, f := range fields {
		if f.Kind == FieldInteger {
			ints = append(ints, f.Int)
		}
	}
	if len(ints) == 0 {
		// continuation: flip the side
		if d.curRow == nil {
			log.Warningf("continuation with no current row: %s", strings.TrimSpace(line))
			return Abort
		}
		d.curRow.Side = d.curRow.Side.Flipped()
		return Data
	}
	var point ElementPoint
	if strings.Contains(line, "CEN/4") {
		point = Centroid
	} else {
		point = CornerPoint(ints[len(ints)-1])
	}
	eid := 0
	switch {
	case len(ints) > 1:
		eid = ints[1]
	case d.curRow != nil:
		eid = d.curRow.Element.EID
	default:
		log.Warningf("no element ID in: %s", strings.TrimSpace(line))
		return Abort
	}
	d.curRow = &ElementSidedPoint{
		Element: ElementRef{EID: eid, Etype: d.etype},
		Point:   point,
		Side:    Top,
	}
	return Data
}

func (d *quadStressesDecoder) Finalize(subcase int, lines *LineRange) *FinalBlock {
	return d.data.Finalize(QuadStresses, subcase, lines)
}

// quadStrainsDecoder reuses the stresses decoder and only remaps the column
// tags on finalization. The tables are printed identically.
type quadStrainsDecoder struct {
	inner *quadStressesDecoder
}

func newQuadStrainsDecoder(f flavour.Flavour) Decoder {
	return &quadStrainsDecoder{
		inner: newQuadStressesDecoder(f).(*quadStressesDecoder),
	}
}

func (d *quadStrainsDecoder) BlockType() BlockType {
	return QuadStrains
}

func (d *quadStrainsDecoder) GoodHeader(header string) bool {
	return d.inner.GoodHeader(header)
}

func (d *quadStrainsDecoder) Consume(line string) LineResponse {
	return d.inner.Consume(line)
}

func (d *quadStrainsDecoder) Finalize(subcase int, lines *LineRange) *FinalBlock {
	fb := d.inner.Finalize(subcase, lines)
	fb.BlockType = QuadStrains
	for i, col := range fb.ColIndexes {
		fb.ColIndexes[i] = StrainField(col.(StressField))
	}
	fb.reindex()
	return fb
}
