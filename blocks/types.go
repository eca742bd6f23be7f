package blocks

import (
	"strings"

	"github.com/Bruno02468/f06tools/flavour"
)

// LineResponse is what a decoder says about a line it was fed.
type LineResponse int

const (
	// Useless: the line contributed nothing. Not an error.
	Useless LineResponse = iota
	// Metadata: the line updated decoder state without producing a row.
	Metadata
	// Data: the line produced (or amended) a value row.
	Data
	// Done: the line marks the end of the block; ready to finalize.
	Done
	// Abort: the line was data-shaped but unparseable in the current state.
	// Fatal for this block instance only.
	Abort
	// BadFlavour: the detected flavour cannot be honored by this decoder.
	// Fatal for this block instance only, attributed to the flavour.
	BadFlavour
)

func (lr LineResponse) String() string {
	switch lr {
	case Useless:
		return "useless"
	case Metadata:
		return "metadata"
	case Data:
		return "data"
	case Done:
		return "done"
	case Abort:
		return "abort"
	case BadFlavour:
		return "bad flavour"
	}
	return "?"
}

// Fatal reports whether the response kills the current block instance.
func (lr LineResponse) Fatal() bool {
	return lr == Abort || lr == BadFlavour
}

// Decoder is the capability interface every block decoder implements. A
// decoder is created when a header matches, consumes lines until a Done (or
// a fatal response, or end of block), and is consumed by Finalize into
// exactly one FinalBlock.
type Decoder interface {
	// BlockType returns the type of block this decoder produces.
	BlockType() BlockType
	// GoodHeader decides, given the matched header line, whether this
	// decoder actually wants the block. It may also capture hints embedded
	// in the header, like the element type.
	GoodHeader(header string) bool
	// Consume classifies one line and updates internal state.
	Consume(line string) LineResponse
	// Finalize yields the finished block. The decoder must not be used
	// afterwards.
	Finalize(subcase int, lines *LineRange) *FinalBlock
}

// BlockType identifies a kind of data block found in F06 files.
type BlockType int

const (
	Displacements BlockType = iota
	GridPointForceBalance
	SpcForces
	AppliedForces
	QuadStresses
	QuadStrains
)

// blockTypeInfo is one catalog entry: a description, the header literals
// that announce the block (letter-spaced all-caps, as printed by solvers),
// and the decoder factory.
type blockTypeInfo struct {
	desc     string
	short    string
	spaceds  []string
	initFunc func(flavour.Flavour) Decoder
}

// The catalog of known block types. Adding a block type means implementing
// Decoder and adding a row here; the driver never changes.
var blockTypes = map[BlockType]blockTypeInfo{
	Displacements: {
		desc:  "Grid point displacements",
		short: "displacements",
		spaceds: []string{
			"D I S P L A C E M E N T S",
			"D I S P L A C E M E N T   V E C T O R",
		},
		initFunc: newDisplacementsDecoder,
	},
	GridPointForceBalance: {
		desc:  "Grid point force balance",
		short: "gpforcebalance",
		spaceds: []string{
			"G R I D   P O I N T   F O R C E   B A L A N C E",
		},
		initFunc: newGridPointForceBalanceDecoder,
	},
	SpcForces: {
		desc:  "Forces of single-point constraint",
		short: "spcforces",
		spaceds: []string{
			"S P C   F O R C E S",
			"F O R C E S   O F   S I N G L E - P O I N T   C O N S T R A I N T",
		},
		initFunc: newSpcForcesDecoder,
	},
	AppliedForces: {
		desc:  "Applied forces (load vector)",
		short: "appliedforces",
		spaceds: []string{
			"A P P L I E D   F O R C E S",
			"L O A D   V E C T O R",
		},
		initFunc: newAppliedForcesDecoder,
	},
	QuadStresses: {
		desc:  "Stresses in quadrilateral elements",
		short: "quadstresses",
		spaceds: []string{
			"S T R E S S E S   I N   Q U A D R I L A T E R A L   E L E M E N T S",
		},
		initFunc: newQuadStressesDecoder,
	},
	QuadStrains: {
		desc:  "Strains in quadrilateral elements",
		short: "quadstrains",
		spaceds: []string{
			"S T R A I N S   I N   Q U A D R I L A T E R A L   E L E M E N T S",
		},
		initFunc: newQuadStrainsDecoder,
	},
}

// AllBlockTypes returns every registered block type, in catalog order.
func AllBlockTypes() []BlockType {
	return []BlockType{
		Displacements,
		GridPointForceBalance,
		SpcForces,
		AppliedForces,
		QuadStresses,
		QuadStrains,
	}
}

func (bt BlockType) String() string {
	return blockTypes[bt].desc
}

// ShortName returns a compact lowercase name for the block type.
func (bt BlockType) ShortName() string {
	return blockTypes[bt].short
}

// Spaceds returns the header literals that announce this block type, in
// their letter-spaced form.
func (bt BlockType) Spaceds() []string {
	return blockTypes[bt].spaceds
}

// InitDecoder constructs a fresh decoder for this block type.
func (bt BlockType) InitDecoder(f flavour.Flavour) Decoder {
	return blockTypes[bt].initFunc(f)
}

// Despace removes all spaces from a string. Header literals are stored
// letter-spaced ("D I S P L A C E M E N T S"); despacing both the literal
// and the candidate line makes matching spelling-agnostic, so the plain
// form ("DISPLACEMENTS") matches too.
func Despace(s string) string {
	return strings.ReplaceAll(s, " ", "")
}

// MatchesHeader reports whether a line contains one of this block type's
// header literals, in either spelling convention.
func (bt BlockType) MatchesHeader(line string) bool {
	flat := Despace(line)
	for _, spaced := range bt.Spaceds() {
		if strings.Contains(flat, Despace(spaced)) {
			return true
		}
	}
	return false
}

// DetectHeader tests a line against every registered block type and returns
// the first match in catalog order.
func DetectHeader(line string) (BlockType, bool) {
	for _, bt := range AllBlockTypes() {
		if bt.MatchesHeader(line) {
			return bt, true
		}
	}
	return 0, false
}
