package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bruno02468/f06tools/flavour"
)

var (
	mystran   = flavour.Flavour{Solver: flavour.Mystran}
	simcenter = flavour.Flavour{Solver: flavour.Simcenter}
)

const dashes = "  --------------------------"

func TestVectorDecoderRoundTrip(t *testing.T) {
	dec := Displacements.InitDecoder(mystran)
	require.True(t, dec.GoodHeader("D I S P L A C E M E N T S"))

	assert.Equal(t, Useless, dec.Consume("   GRID   TYPE   T1  T2  T3  R1  R2  R3"))
	assert.Equal(t, Data, dec.Consume("      7      G      0.1  0.2  0.3  0.0  0.0  0.0"))
	assert.Equal(t, Data, dec.Consume("      9      G      0.4  0.5  0.6  0.0  0.0  0.0"))
	assert.Equal(t, Done, dec.Consume(dashes))

	fb := dec.Finalize(3, &LineRange{Start: 1, End: 4})
	require.Equal(t, Displacements, fb.BlockType)
	require.Equal(t, 3, fb.Subcase)
	require.Equal(t, 2, fb.NumRows())
	require.Equal(t, SixDof, fb.NumCols())

	want := []float64{0.1, 0.2, 0.3, 0.0, 0.0, 0.0}
	for i, dof := range AllDofs {
		x, ok := fb.Get(GridPointRef{ID: 7}, dof)
		require.True(t, ok)
		assert.InDelta(t, want[i], x, 1e-12)
	}
}

func TestVectorDecoderIgnoresNonData(t *testing.T) {
	dec := SpcForces.InitDecoder(mystran)
	// six reals but no leading integer: no row to hang them on
	assert.Equal(t, Useless, dec.Consume("          0.1  0.2  0.3  0.0  0.0  0.0"))
	// integer but no reals
	assert.Equal(t, Useless, dec.Consume("      12"))
	fb := dec.Finalize(1, nil)
	assert.Zero(t, fb.NumRows())
}

func TestGpfbMystran(t *testing.T) {
	dec := GridPointForceBalance.InitDecoder(mystran)

	assert.Equal(t, Metadata, dec.Consume("   FORCE BALANCE FOR GRID POINT      3"))
	assert.Equal(t, Data, dec.Consume("   APPLIED FORCE        1.0E+0  0.0  0.0  0.0  0.0  0.0"))
	assert.Equal(t, Data, dec.Consume("   SPC FORCE           -1.0E+0  0.0  0.0  0.0  0.0  0.0"))
	assert.Equal(t, Data, dec.Consume("   MPC FORCE            0.5E+0  0.0  0.0  0.0  0.0  0.0"))
	assert.Equal(t, Data, dec.Consume("   ELEM     42   QUAD4  0.25E+0 0.0  0.0  0.0  0.0  0.0"))
	assert.Equal(t, Useless, dec.Consume("   *TOTALS*             0.75E+0 0.0  0.0  0.0  0.0  0.0"))
	assert.Equal(t, Done, dec.Consume(dashes))

	fb := dec.Finalize(1, nil)
	require.Equal(t, 4, fb.NumRows())

	gp := GridPointRef{ID: 3}
	x, ok := fb.Get(GridPointForceOrigin{GridPoint: gp, Origin: ForceOrigin{Kind: OriginLoad}}, T1)
	require.True(t, ok)
	assert.Equal(t, 1.0, x)

	elem := ForceOrigin{Kind: OriginElement, Element: ElementRef{EID: 42, Etype: Quad4}}
	x, ok = fb.Get(GridPointForceOrigin{GridPoint: gp, Origin: elem}, T1)
	require.True(t, ok)
	assert.Equal(t, 0.25, x)
}

func TestGpfbMystranFailureModes(t *testing.T) {
	dec := GridPointForceBalance.InitDecoder(mystran)
	dec.Consume("   FORCE BALANCE FOR GRID POINT      3")

	// a line with no resolvable force origin is useless, not fatal
	assert.Equal(t, Useless, dec.Consume("        1.0  2.0  3.0  4.0  5.0  6.0"))
	// a line with an origin but unparseable values kills the block
	assert.Equal(t, Abort, dec.Consume("   APPLIED FORCE    1.0  2.0"))
}

func TestGpfbUnknownSolverIsBadFlavour(t *testing.T) {
	dec := GridPointForceBalance.InitDecoder(flavour.Flavour{})
	assert.Equal(t, BadFlavour, dec.Consume("   APPLIED FORCE   1.0 0.0 0.0 0.0 0.0 0.0"))
}

func TestGpfbSimcenter(t *testing.T) {
	dec := GridPointForceBalance.InitDecoder(simcenter)

	// applied loads carry the grid ID in the second integer field
	assert.Equal(t, Data, dec.Consume("   0     11  APP-LOAD   1.0E+0  0.0  0.0  0.0  0.0  0.0"))
	assert.Equal(t, Data, dec.Consume("  11     F-OF-SPC      -1.0E+0  0.0  0.0  0.0  0.0  0.0"))
	assert.Equal(t, Data, dec.Consume("  11    101  QUAD4      0.5E+0  0.0  0.0  0.0  0.0  0.0"))
	assert.Equal(t, Useless, dec.Consume("        *TOTALS*        0.5E+0  0.0  0.0  0.0  0.0  0.0"))

	fb := dec.Finalize(1, nil)
	require.Equal(t, 3, fb.NumRows())

	gp := GridPointRef{ID: 11}
	_, ok := fb.Get(GridPointForceOrigin{GridPoint: gp, Origin: ForceOrigin{Kind: OriginLoad}}, T1)
	assert.True(t, ok)
	_, ok = fb.Get(GridPointForceOrigin{GridPoint: gp, Origin: ForceOrigin{Kind: OriginSinglePointConstraint}}, T1)
	assert.True(t, ok)
	elem := ForceOrigin{Kind: OriginElement, Element: ElementRef{EID: 101, Etype: Quad4}}
	_, ok = fb.Get(GridPointForceOrigin{GridPoint: gp, Origin: elem}, T1)
	assert.True(t, ok)
}

const quadLine1 = "  -5.000000E-02  1.0E+0  2.0E+0  5.0E-1  4.5E+1  2.5E+0  5.0E-1  2.2E+0"
const quadLine2 = "   5.000000E-02  1.1E+0  2.1E+0  5.1E-1  4.6E+1  2.6E+0  5.1E-1  2.3E+0"

func TestQuadStressesSimcenter(t *testing.T) {
	dec := QuadStresses.InitDecoder(simcenter)
	require.True(t, dec.GoodHeader("S T R E S S E S   I N   Q U A D R I L A T E R A L   E L E M E N T S   ( Q U A D 4 )"))

	// first line of an element: centroid, top side
	assert.Equal(t, Data, dec.Consume("0       101    CEN/4 "+quadLine1))
	// no integers at all: continuation, flips to the bottom side
	assert.Equal(t, Data, dec.Consume("             "+quadLine2))
	// corner line: single integer, element carried over
	assert.Equal(t, Data, dec.Consume("          4  "+quadLine1))
	assert.Equal(t, Data, dec.Consume("             "+quadLine2))

	fb := dec.Finalize(1, nil)
	require.Equal(t, QuadStresses, fb.BlockType)
	require.Equal(t, 4, fb.NumRows())

	elem := ElementRef{EID: 101}
	x, ok := fb.Get(ElementSidedPoint{Element: elem, Point: Centroid, Side: Top}, NormalX)
	require.True(t, ok)
	assert.InDelta(t, 1.0, x, 1e-12)
	x, ok = fb.Get(ElementSidedPoint{Element: elem, Point: Centroid, Side: Bottom}, NormalX)
	require.True(t, ok)
	assert.InDelta(t, 1.1, x, 1e-12)
	_, ok = fb.Get(ElementSidedPoint{Element: elem, Point: CornerPoint(4), Side: Top}, VonMises)
	assert.True(t, ok)
	_, ok = fb.Get(ElementSidedPoint{Element: elem, Point: CornerPoint(4), Side: Bottom}, VonMises)
	assert.True(t, ok)
}

func TestQuadStressesSimcenterAbortsOnOrphan(t *testing.T) {
	dec := QuadStresses.InitDecoder(simcenter)
	// a continuation line before any row was established cannot resolve
	assert.Equal(t, Abort, dec.Consume(quadLine1))
}

func TestQuadStressesMystran(t *testing.T) {
	dec := QuadStresses.InitDecoder(mystran)

	// element ID plus marker word: new element, bottom side first
	assert.Equal(t, Data, dec.Consume("   101  CENTER  "+quadLine1))
	// neither ID nor marker: flip to top
	assert.Equal(t, Data, dec.Consume("                "+quadLine2))
	// corner marker on continuation
	assert.Equal(t, Data, dec.Consume("   GRD   4      "+quadLine1))
	assert.Equal(t, Data, dec.Consume("                "+quadLine2))

	fb := dec.Finalize(1, nil)
	require.Equal(t, 4, fb.NumRows())

	elem := ElementRef{EID: 101}
	_, ok := fb.Get(ElementSidedPoint{Element: elem, Point: Centroid, Side: Bottom}, NormalX)
	assert.True(t, ok)
	_, ok = fb.Get(ElementSidedPoint{Element: elem, Point: Centroid, Side: Top}, NormalX)
	assert.True(t, ok)
}

func TestQuadRejectsThermalHeader(t *testing.T) {
	dec := QuadStresses.InitDecoder(simcenter)
	assert.False(t, dec.GoodHeader("STRESSES IN QUADRILATERAL ELEMENTS (QUAD4) DUE TO THERMAL LOADS"))

	dec = QuadStrains.InitDecoder(simcenter)
	assert.False(t, dec.GoodHeader("STRAINS IN QUADRILATERAL ELEMENTS (QUAD4) ELASTIC"))
}

func TestQuadUnknownSolverIsBadFlavour(t *testing.T) {
	dec := QuadStresses.InitDecoder(flavour.Flavour{})
	assert.Equal(t, BadFlavour, dec.Consume("0       101    CEN/4 "+quadLine1))
}

func TestQuadStrainsRemapColumns(t *testing.T) {
	dec := QuadStrains.InitDecoder(simcenter)
	assert.Equal(t, Data, dec.Consume("0       101    CEN/4 "+quadLine1))

	fb := dec.Finalize(2, nil)
	require.Equal(t, QuadStrains, fb.BlockType)
	require.Equal(t, 2, fb.Subcase)

	// columns come out as strain fields, not stress fields
	for _, col := range fb.ColIndexes {
		assert.IsType(t, StrainField(0), col)
	}
	row := ElementSidedPoint{Element: ElementRef{EID: 101}, Point: Centroid, Side: Top}
	x, ok := fb.Get(row, StrainField(NormalX))
	require.True(t, ok)
	assert.InDelta(t, 1.0, x, 1e-12)
	_, ok = fb.Get(row, NormalX)
	assert.False(t, ok, "stress-tagged lookups must miss in a strains block")
}
