// Package flavour identifies which solver dialect produced an F06 file and
// which kind of solution it contains. Every block decoder is constructed with
// a Flavour and branches on it internally; an undetermined solver makes
// flavour-sensitive decoders refuse to decode rather than guess.
package flavour

import (
	"strconv"
	"strings"
)

// Solver is a known solver dialect. The zero value means "not yet detected".
type Solver int

const (
	SolverUnknown Solver = iota
	Mystran
	Simcenter
)

// All known solvers, detection order.
var AllSolvers = []Solver{Mystran, Simcenter}

func (s Solver) String() string {
	switch s {
	case Mystran:
		return "MYSTRAN"
	case Simcenter:
		return "Simcenter Nastran"
	}
	return "Unknown"
}

// SolType is a known solution type. The zero value means "not yet detected".
type SolType int

const (
	SolUnknown SolType = iota
	LinearStatic
	Eigenvalue
	LinearStaticAero
	EigenvalueAero
)

// All known solution types.
var AllSolTypes = []SolType{
	LinearStatic,
	Eigenvalue,
	LinearStaticAero,
	EigenvalueAero,
}

// Number returns the SOL sequence number, or 0 if unknown.
func (st SolType) Number() int {
	switch st {
	case LinearStatic:
		return 101
	case Eigenvalue:
		return 103
	case LinearStaticAero:
		return 144
	case EigenvalueAero:
		return 145
	}
	return 0
}

func (st SolType) String() string {
	switch st {
	case LinearStatic:
		return "linear static"
	case Eigenvalue:
		return "eigenvalue"
	case LinearStaticAero:
		return "linear static aeroelastic"
	case EigenvalueAero:
		return "eigenvalue aeroelastic"
	}
	return "?"
}

// solTypeFromNumber maps SOL sequence numbers to solution types.
func solTypeFromNumber(n int) SolType {
	switch n {
	case 1, 101:
		return LinearStatic
	case 3, 103:
		return Eigenvalue
	case 144:
		return LinearStaticAero
	case 145:
		return EigenvalueAero
	}
	return SolUnknown
}

// Flavour is the (solver, solution type) pair that governs how ambiguous
// lines are interpreted. Either half may be unknown.
type Flavour struct {
	Solver  Solver
	SolType SolType
}

func (f Flavour) String() string {
	return f.Solver.String() + ", " + f.SolType.String()
}

// Detected reports whether the solver half of the flavour is known.
func (f Flavour) Detected() bool {
	return f.Solver != SolverUnknown
}

// Banner phrases that identify a solver. Matched against upper-cased lines.
var solverBanners = map[Solver][]string{
	Mystran:   {"MYSTRAN"},
	Simcenter: {"SIMCENTER NASTRAN", "NX NASTRAN"},
}

// Sniff updates any still-unknown half of the flavour from a header line.
// It returns true if something new was learned. Safe to call on every line;
// once both halves are set it does nothing.
func (f *Flavour) Sniff(line string) bool {
	if f.Solver != SolverUnknown && f.SolType != SolUnknown {
		return false
	}
	upper := strings.ToUpper(line)
	learned := false
	if f.Solver == SolverUnknown {
		for _, solver := range AllSolvers {
			for _, banner := range solverBanners[solver] {
				if strings.Contains(upper, banner) {
					f.Solver = solver
					learned = true
					break
				}
			}
			if learned {
				break
			}
		}
	}
	if f.SolType == SolUnknown {
		if st := sniffSolType(upper); st != SolUnknown {
			f.SolType = st
			learned = true
		}
	}
	return learned
}

// sniffSolType looks for a "SOL <n>" announcement or a spelled-out solution
// name in an upper-cased line.
func sniffSolType(upper string) SolType {
	if n, ok := numberAfter(upper, "SOL"); ok {
		if st := solTypeFromNumber(n); st != SolUnknown {
			return st
		}
	}
	switch {
	case strings.Contains(upper, "STATICS"):
		return LinearStatic
	case strings.Contains(upper, "NORMAL MODES"):
		return Eigenvalue
	}
	return SolUnknown
}

// numberAfter finds the word w followed by an unsigned integer and returns
// that integer. The word must be a whole field, not a substring of one.
func numberAfter(line, w string) (int, bool) {
	fields := strings.Fields(line)
	for i, field := range fields {
		if field != w || i+1 >= len(fields) {
			continue
		}
		if n, err := strconv.Atoi(fields[i+1]); err == nil && n >= 0 {
			return n, true
		}
	}
	return 0, false
}
