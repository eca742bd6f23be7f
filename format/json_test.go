package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bruno02468/f06tools/parser"
)

func TestJSONEncoder(t *testing.T) {
	file, err := parser.ParseReader(strings.NewReader(strings.Join([]string{
		" >> MYSTRAN Version 15.2 <<",
		"   DISPLACEMENTS",
		"      7      G      0.1  0.2  0.3  0.0  0.0  0.0",
		"  --------------------------",
	}, "\n")))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewJSONEncoder(&buf).Encode(file))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "MYSTRAN", decoded["solver"])

	blocks, ok := decoded["blocks"].([]any)
	require.True(t, ok)
	require.Len(t, blocks, 1)
	block := blocks[0].(map[string]any)
	assert.Equal(t, "displacements", block["type"])
	assert.Equal(t, float64(1), block["subcase"])

	rows := block["rows"].([]any)
	require.Len(t, rows, 1)
	assert.Equal(t, "grid 7", rows[0])

	cols := block["columns"].([]any)
	require.Len(t, cols, 6)
	assert.Equal(t, "T1", cols[0])
}
