package flavour

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSniffSolver(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Solver
	}{
		{"mystran banner", "THIS IS MYSTRAN VERSION 15.2", Mystran},
		{"mystran mixed case", " >> MyStran output <<", Mystran},
		{"simcenter", "* * * SIMCENTER NASTRAN * * *", Simcenter},
		{"nx alias", "NX Nastran 2023.1", Simcenter},
		{"nothing", "GRID POINT OUTPUT", SolverUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Flavour
			f.Sniff(tt.line)
			assert.Equal(t, tt.want, f.Solver)
		})
	}
}

func TestSniffSolType(t *testing.T) {
	tests := []struct {
		name string
		line string
		want SolType
	}{
		{"sol 101", "EXECUTING SOL 101", LinearStatic},
		{"sol 103", "SOL 103", Eigenvalue},
		{"sol 144", "SOL 144", LinearStaticAero},
		{"sol 145", "SOL 145", EigenvalueAero},
		{"statics word", "SOLUTION: STATICS", LinearStatic},
		{"normal modes", "NORMAL MODES ANALYSIS", Eigenvalue},
		{"solve is not sol", "SOLVE 103 THINGS", SolUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Flavour
			f.Sniff(tt.line)
			assert.Equal(t, tt.want, f.SolType)
		})
	}
}

func TestSniffNeverForgets(t *testing.T) {
	var f Flavour
	require.True(t, f.Sniff("MYSTRAN VERSION 15.2"))
	// a later banner from another solver must not overwrite the detection
	assert.False(t, f.Sniff("NX NASTRAN"))
	assert.Equal(t, Mystran, f.Solver)
}

func TestDetected(t *testing.T) {
	assert.False(t, Flavour{}.Detected())
	assert.True(t, Flavour{Solver: Simcenter}.Detected())
}

func TestSolTypeNumbers(t *testing.T) {
	assert.Equal(t, 101, LinearStatic.Number())
	assert.Equal(t, 103, Eigenvalue.Number())
	assert.Equal(t, 144, LinearStaticAero.Number())
	assert.Equal(t, 145, EigenvalueAero.Number())
	assert.Zero(t, SolUnknown.Number())
}
