package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bruno02468/f06tools/flavour"
)

func TestCatalogComplete(t *testing.T) {
	for _, bt := range AllBlockTypes() {
		assert.NotEmpty(t, bt.String())
		assert.NotEmpty(t, bt.ShortName())
		assert.NotEmpty(t, bt.Spaceds())
		dec := bt.InitDecoder(flavour.Flavour{})
		require.NotNil(t, dec)
		assert.Equal(t, bt, dec.BlockType())
	}
}

func TestHeaderMatchingSpellingAgnostic(t *testing.T) {
	tests := []struct {
		name string
		line string
		want BlockType
	}{
		{
			name: "letter-spaced",
			line: "                        D I S P L A C E M E N T S",
			want: Displacements,
		},
		{
			name: "plain",
			line: "                        DISPLACEMENTS",
			want: Displacements,
		},
		{
			name: "alternate phrasing",
			line: "      D I S P L A C E M E N T   V E C T O R",
			want: Displacements,
		},
		{
			name: "force balance",
			line: "   G R I D   P O I N T   F O R C E   B A L A N C E",
			want: GridPointForceBalance,
		},
		{
			name: "spc plain",
			line: " FORCES OF SINGLE-POINT CONSTRAINT",
			want: SpcForces,
		},
		{
			name: "quad stresses",
			line: "S T R E S S E S   I N   Q U A D R I L A T E R A L   E L E M E N T S   ( Q U A D 4 )",
			want: QuadStresses,
		},
		{
			name: "quad strains plain",
			line: "   STRAINS   IN   QUADRILATERAL   ELEMENTS   (QUAD4)",
			want: QuadStrains,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bt, ok := DetectHeader(tt.line)
			require.True(t, ok)
			assert.Equal(t, tt.want, bt)
		})
	}
}

func TestHeaderMatchingRejectsNonHeaders(t *testing.T) {
	lines := []string{
		"",
		"      7      G      0.1  0.2  0.3  0.0  0.0  0.0",
		"  -------------",
		"  SOME OTHER TABLE WE DO NOT KNOW",
	}
	for _, line := range lines {
		_, ok := DetectHeader(line)
		assert.False(t, ok, "line %q should not match a header", line)
	}
}

func TestSpellingVariantsProduceIdenticalDecoders(t *testing.T) {
	f := flavour.Flavour{Solver: flavour.Mystran}
	spaced, ok := DetectHeader("D I S P L A C E M E N T S")
	require.True(t, ok)
	plain, ok := DetectHeader("DISPLACEMENTS")
	require.True(t, ok)
	require.Equal(t, spaced, plain)

	// both routes yield decoders that behave the same
	line := "      7      G      0.1  0.2  0.3  0.0  0.0  0.0"
	a := spaced.InitDecoder(f)
	b := plain.InitDecoder(f)
	assert.Equal(t, a.Consume(line), b.Consume(line))
}
