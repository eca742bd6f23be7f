// Package nascsv renders finalized F06 data blocks as fixed-form CSV
// records. Every record has eleven fields: a numeric block ID followed by
// ten payload fields whose meaning depends on the block ID.
package nascsv

import (
	"strconv"
	"strings"

	"github.com/Bruno02468/f06tools/blocks"
)

// NumCols is the fixed number of fields in a CSV record.
const NumCols = 11

// BlockID numbers the kinds of CSV blocks in the output format.
type BlockID int

const (
	// SolInfo is the 0-block: general solution info.
	SolInfo BlockID = iota
	// DispBlock is the 1-block: grid point displacements.
	DispBlock
	// StressBlock is the 2-block: element stresses.
	StressBlock
	// StrainBlock is the 3-block: element strains.
	StrainBlock
	// EngForceBlock is the 4-block: element engineering forces.
	EngForceBlock
	// GpForceBlock is the 5-block: grid point force balance.
	GpForceBlock
	// AppliedBlock is the 6-block: applied forces.
	AppliedBlock
	// SpcForceBlock is the 7-block: single-point constraint forces.
	SpcForceBlock
)

// AllBlockIDs lists the block IDs in numeric order.
var AllBlockIDs = []BlockID{
	SolInfo,
	DispBlock,
	StressBlock,
	StrainBlock,
	EngForceBlock,
	GpForceBlock,
	AppliedBlock,
	SpcForceBlock,
}

// Name returns the block ID's long name.
func (b BlockID) Name() string {
	switch b {
	case SolInfo:
		return "SolutionInfo"
	case DispBlock:
		return "Displacements"
	case StressBlock:
		return "Stresses"
	case StrainBlock:
		return "Strains"
	case EngForceBlock:
		return "EngForces"
	case GpForceBlock:
		return "GridPointForces"
	case AppliedBlock:
		return "AppliedForces"
	case SpcForceBlock:
		return "SpcForces"
	}
	return "?"
}

// Shorthand returns the name used to select this block ID on the CLI.
func (b BlockID) Shorthand() string {
	switch b {
	case SolInfo:
		return "sol"
	case DispBlock:
		return "disp"
	case StressBlock:
		return "stress"
	case StrainBlock:
		return "strain"
	case EngForceBlock:
		return "engfor"
	case GpForceBlock:
		return "gpforce"
	case AppliedBlock:
		return "load"
	case SpcForceBlock:
		return "spcfor"
	}
	return "?"
}

// Aliases returns extra accepted spellings for the block ID, including its
// number.
func (b BlockID) Aliases() []string {
	switch b {
	case SolInfo:
		return []string{"0", "solinfo", "info"}
	case DispBlock:
		return []string{"1", "displacements"}
	case StressBlock:
		return []string{"2", "stresses"}
	case StrainBlock:
		return []string{"3", "strains"}
	case EngForceBlock:
		return []string{"4", "engforces"}
	case GpForceBlock:
		return []string{"5", "gpfb", "gpforces", "grid_point_force_balance"}
	case AppliedBlock:
		return []string{"6", "applied"}
	case SpcForceBlock:
		return []string{"7", "spcf", "spcforces"}
	}
	return nil
}

// BlockIDFromString resolves a shorthand, alias, name or number.
func BlockIDFromString(s string) (BlockID, bool) {
	want := strings.ToLower(strings.TrimSpace(s))
	for _, b := range AllBlockIDs {
		if want == b.Shorthand() || want == strings.ToLower(b.Name()) {
			return b, true
		}
		for _, alias := range b.Aliases() {
			if want == alias {
				return b, true
			}
		}
	}
	return 0, false
}

// BlockIDFor maps an F06 block type to the CSV block ID it feeds.
func BlockIDFor(bt blocks.BlockType) BlockID {
	switch bt {
	case blocks.Displacements:
		return DispBlock
	case blocks.QuadStresses:
		return StressBlock
	case blocks.QuadStrains:
		return StrainBlock
	case blocks.GridPointForceBalance:
		return GpForceBlock
	case blocks.AppliedForces:
		return AppliedBlock
	case blocks.SpcForces:
		return SpcForceBlock
	}
	return SolInfo
}

// FieldKind tags the payload variants a CSV field can hold.
type FieldKind int

const (
	FieldBlank FieldKind = iota
	FieldInt
	FieldReal
	FieldString
)

// Field is one payload field of a CSV record.
type Field struct {
	Kind FieldKind
	Int  int
	Real float64
	Str  string
}

// Blank is the empty field.
var Blank = Field{}

// IntField returns an integer field.
func IntField(n int) Field {
	return Field{Kind: FieldInt, Int: n}
}

// RealField returns a real-number field.
func RealField(x float64) Field {
	return Field{Kind: FieldReal, Real: x}
}

// StringField returns a text field.
func StringField(s string) Field {
	return Field{Kind: FieldString, Str: s}
}

func (f Field) String() string {
	switch f.Kind {
	case FieldInt:
		return strconv.Itoa(f.Int)
	case FieldReal:
		return strconv.FormatFloat(f.Real, 'E', 6, 64)
	case FieldString:
		return f.Str
	}
	return ""
}

// Record is one output row: a block ID plus ten payload fields, with the
// identifying metadata kept alongside for filtering and for header output.
type Record struct {
	BlockID BlockID
	Subcase int
	Fields  [NumCols - 1]Field
}

// Strings renders the record as its eleven CSV fields.
func (r Record) Strings() []string {
	out := make([]string, 0, NumCols)
	out = append(out, strconv.Itoa(int(r.BlockID)))
	for _, f := range r.Fields {
		out = append(out, f.String())
	}
	return out
}

// Headers returns the column titles for a block ID's records.
func (b BlockID) Headers() []string {
	titles := [NumCols - 1]string{}
	switch b {
	case SolInfo:
		titles = [NumCols - 1]string{
			"Subcase", "Solver", "SolType", "SolNumber", "Blocks",
		}
	case DispBlock, AppliedBlock, SpcForceBlock:
		titles = [NumCols - 1]string{
			"Gid", "Subcase", "T1", "T2", "T3", "R1", "R2", "R3",
		}
	case GpForceBlock:
		titles = [NumCols - 1]string{
			"Gid", "Subcase", "Origin", "Eid", "T1", "T2", "T3", "R1", "R2", "R3",
		}
	case StressBlock, StrainBlock:
		titles = [NumCols - 1]string{
			"Eid", "Point", "FibreDist", "NormalX", "NormalY", "ShearXY",
			"Angle", "Major", "Minor", "VonMises",
		}
	}
	out := make([]string, 0, NumCols)
	out = append(out, b.Name()+" block ID")
	out = append(out, titles[:]...)
	return out
}
