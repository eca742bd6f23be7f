// Package blocks implements the data blocks found in F06 files: the typed
// row/column indexes, the accumulating RowBlock, the immutable FinalBlock,
// the catalog of known block types, and one line-decoding state machine per
// block type.
package blocks

import (
	"fmt"
)

// NasIndex is a row or column key within a data block. It is a closed set of
// plain value types: grid point references, element references, sided element
// points, degrees of freedom, stress/strain fields and grid point force
// origins. All of them are comparable and totally ordered, so finalized
// blocks sort deterministically.
type NasIndex interface {
	fmt.Stringer
	// sortKey places the index in the total order. The first slot ranks the
	// variant, the rest rank within it, lexicographically.
	sortKey() [6]int
}

// CompareIndexes orders two indexes of any variant. Variants sort before one
// another by kind, then by their own fields.
func CompareIndexes(a, b NasIndex) int {
	ka, kb := a.sortKey(), b.sortKey()
	for i := range ka {
		if ka[i] != kb[i] {
			if ka[i] < kb[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Variant ranks for sortKey. Order is arbitrary but fixed.
const (
	rankGridPoint = iota
	rankElement
	rankSidedPoint
	rankDof
	rankStressField
	rankStrainField
	rankForceOrigin
)

// GridPointRef identifies a grid point by its ID.
type GridPointRef struct {
	ID int
}

func (g GridPointRef) String() string {
	return fmt.Sprintf("grid %d", g.ID)
}

func (g GridPointRef) sortKey() [6]int {
	return [6]int{rankGridPoint, g.ID}
}

// ElementType is a hint about what kind of element an ElementRef points to.
// The zero value means the type is unknown.
type ElementType int

const (
	NoElementType ElementType = iota
	Elas1
	Rod
	Bar
	Tria3
	Quad4
	Tetra
	Penta
	Hexa
)

// AllElementTypes lists the known element types.
var AllElementTypes = []ElementType{
	Elas1, Rod, Bar, Tria3, Quad4, Tetra, Penta, Hexa,
}

func (et ElementType) String() string {
	switch et {
	case Elas1:
		return "ELAS1"
	case Rod:
		return "ROD"
	case Bar:
		return "BAR"
	case Tria3:
		return "TRIA3"
	case Quad4:
		return "QUAD4"
	case Tetra:
		return "TETRA"
	case Penta:
		return "PENTA"
	case Hexa:
		return "HEXA"
	}
	return "?"
}

// ElementRef identifies an element by ID, with an optional type hint.
type ElementRef struct {
	EID   int
	Etype ElementType
}

func (e ElementRef) String() string {
	if e.Etype == NoElementType {
		return fmt.Sprintf("element %d", e.EID)
	}
	return fmt.Sprintf("element %d (%s)", e.EID, e.Etype)
}

func (e ElementRef) sortKey() [6]int {
	return [6]int{rankElement, e.EID, int(e.Etype)}
}

// ElementPoint is a location within an element: its centroid or one of its
// corner grid points.
type ElementPoint struct {
	// Corner is the corner grid point, or zero for the centroid.
	Corner GridPointRef
}

// Centroid is the element point for the element's center.
var Centroid = ElementPoint{}

// CornerPoint returns the element point for a corner grid point.
func CornerPoint(gid int) ElementPoint {
	return ElementPoint{Corner: GridPointRef{ID: gid}}
}

// IsCentroid reports whether the point is the element centroid.
func (p ElementPoint) IsCentroid() bool {
	return p.Corner.ID == 0
}

func (p ElementPoint) String() string {
	if p.IsCentroid() {
		return "centroid"
	}
	return fmt.Sprintf("corner %d", p.Corner.ID)
}

// ElementSide is the top or bottom side of a 2D element.
type ElementSide int

const (
	Bottom ElementSide = iota
	Top
)

func (s ElementSide) String() string {
	if s == Top {
		return "top"
	}
	return "bottom"
}

// Flipped returns the other side.
func (s ElementSide) Flipped() ElementSide {
	if s == Top {
		return Bottom
	}
	return Top
}

// ElementSidedPoint identifies a point on a specific side of an element. It
// is the row key for 2D element stress and strain blocks.
type ElementSidedPoint struct {
	Element ElementRef
	Point   ElementPoint
	Side    ElementSide
}

func (sp ElementSidedPoint) String() string {
	return fmt.Sprintf("%s, %s, %s side", sp.Element, sp.Point, sp.Side)
}

func (sp ElementSidedPoint) sortKey() [6]int {
	return [6]int{
		rankSidedPoint,
		sp.Element.EID,
		int(sp.Element.Etype),
		sp.Point.Corner.ID,
		int(sp.Side),
	}
}

// Dof is one of the six degrees of freedom.
type Dof int

const (
	T1 Dof = iota
	T2
	T3
	R1
	R2
	R3
)

// SixDof is the number of degrees of freedom.
const SixDof = 6

// AllDofs lists the degrees of freedom in column order.
var AllDofs = [SixDof]Dof{T1, T2, T3, R1, R2, R3}

func (d Dof) String() string {
	switch d {
	case T1:
		return "T1"
	case T2:
		return "T2"
	case T3:
		return "T3"
	case R1:
		return "R1"
	case R2:
		return "R2"
	case R3:
		return "R3"
	}
	return "?"
}

func (d Dof) sortKey() [6]int {
	return [6]int{rankDof, int(d)}
}

// StressField tags a column of a 2D element stress block.
type StressField int

const (
	FibreDistance StressField = iota
	NormalX
	NormalY
	ShearXY
	Angle
	Major
	Minor
	VonMises
)

func (f StressField) String() string {
	switch f {
	case FibreDistance:
		return "fibre distance"
	case NormalX:
		return "normal X"
	case NormalY:
		return "normal Y"
	case ShearXY:
		return "shear XY"
	case Angle:
		return "angle"
	case Major:
		return "major principal"
	case Minor:
		return "minor principal"
	case VonMises:
		return "von Mises"
	}
	return "?"
}

func (f StressField) sortKey() [6]int {
	return [6]int{rankStressField, int(f)}
}

// StrainField tags a column of a 2D element strain block. Strain blocks have
// the same shape as stress blocks, so the values mirror StressField.
type StrainField int

func (f StrainField) String() string {
	return StressField(f).String()
}

func (f StrainField) sortKey() [6]int {
	return [6]int{rankStrainField, int(f)}
}

// ForceOriginKind says where a force at a grid point came from.
type ForceOriginKind int

const (
	OriginLoad ForceOriginKind = iota
	OriginSinglePointConstraint
	OriginMultiPointConstraint
	OriginElement
)

func (k ForceOriginKind) String() string {
	switch k {
	case OriginLoad:
		return "applied load"
	case OriginSinglePointConstraint:
		return "single-point constraint"
	case OriginMultiPointConstraint:
		return "multi-point constraint"
	case OriginElement:
		return "element"
	}
	return "?"
}

// ForceOrigin is the source of a force at a grid point; element origins
// carry the element reference.
type ForceOrigin struct {
	Kind    ForceOriginKind
	Element ElementRef
}

func (fo ForceOrigin) String() string {
	if fo.Kind == OriginElement {
		return fo.Element.String()
	}
	return fo.Kind.String()
}

// GridPointForceOrigin is the row key for grid point force balance blocks:
// a grid point plus the origin of the force acting on it.
type GridPointForceOrigin struct {
	GridPoint GridPointRef
	Origin    ForceOrigin
}

func (gfo GridPointForceOrigin) String() string {
	return fmt.Sprintf("%s, from %s", gfo.GridPoint, gfo.Origin)
}

func (gfo GridPointForceOrigin) sortKey() [6]int {
	return [6]int{
		rankForceOrigin,
		gfo.GridPoint.ID,
		int(gfo.Origin.Kind),
		gfo.Origin.Element.EID,
		int(gfo.Origin.Element.Etype),
	}
}
