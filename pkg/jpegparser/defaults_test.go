package jpegparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Annex K.1 and K.2 as they appear in a DQT segment (zigzag order)
var (
	wantLuminanceZigzag = [QuantElements]uint16{
		16, 11, 12, 14, 12, 10, 16, 14, 13, 14, 18, 17, 16, 19, 24, 40,
		26, 24, 22, 22, 24, 49, 35, 37, 29, 40, 58, 51, 61, 60, 57, 51,
		56, 55, 64, 72, 92, 78, 64, 68, 87, 69, 55, 56, 80, 109, 81, 87,
		95, 98, 103, 104, 103, 62, 77, 113, 121, 112, 100, 120, 92, 101, 103, 99,
	}
	wantChrominanceZigzag = [QuantElements]uint16{
		17, 18, 18, 24, 21, 24, 47, 26, 26, 47, 99, 66, 56, 66, 99, 99,
		99, 99, 99, 99, 99, 99, 99, 99, 99, 99, 99, 99, 99, 99, 99, 99,
		99, 99, 99, 99, 99, 99, 99, 99, 99, 99, 99, 99, 99, 99, 99, 99,
		99, 99, 99, 99, 99, 99, 99, 99, 99, 99, 99, 99, 99, 99, 99, 99,
	}
)

func TestDefaultQuantTables(t *testing.T) {
	tables := make([]QuantTable, 4)
	DefaultQuantTables(tables)

	assert.Equal(t, wantLuminanceZigzag, tables[0].Values)
	for i := 1; i < len(tables); i++ {
		assert.Equal(t, wantChrominanceZigzag, tables[i].Values, "slot %d", i)
	}
	for i, qt := range tables {
		assert.True(t, qt.Valid, "slot %d", i)
		assert.Equal(t, uint8(0), qt.Precision, "slot %d", i)
	}
	assert.Equal(t, luminanceQuant, tables[0].Natural())
	assert.Equal(t, chrominanceQuant, tables[1].Natural())
}

func TestDefaultQuantTables_Repeatable(t *testing.T) {
	a := make([]QuantTable, 4)
	b := make([]QuantTable, 4)
	DefaultQuantTables(a)
	DefaultQuantTables(b)
	DefaultQuantTables(b)
	assert.Equal(t, a, b)

	// smaller storage takes what fits
	one := make([]QuantTable, 1)
	DefaultQuantTables(one)
	assert.Equal(t, a[0], one[0])
	DefaultQuantTables(nil)
}

func TestDefaultQuantTables_MatchesEncodedSegment(t *testing.T) {
	data := body(segment(MarkerDQT, dqtPayload(
		testQuant{id: 0, values: wantLuminanceZigzag},
		testQuant{id: 1, values: wantChrominanceZigzag},
	)...))
	parsed := make([]QuantTable, 2)
	require.NoError(t, ParseQuantTables(parsed, data, 0))

	defaults := make([]QuantTable, 2)
	DefaultQuantTables(defaults)
	assert.Equal(t, defaults, parsed)
}

func TestDefaultHuffmanTables(t *testing.T) {
	var tables HuffmanTables
	DefaultHuffmanTables(&tables)

	assert.Equal(t, [16]uint8{0, 1, 5, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0}, tables.DC(0).Bits)
	assert.Equal(t, []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, tables.DC(0).Symbols())
	assert.Equal(t, [16]uint8{0, 3, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0}, tables.DC(1).Bits)
	assert.Equal(t, []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, tables.DC(1).Symbols())

	assert.Equal(t, 162, tables.AC(0).NumValues())
	assert.Equal(t, 162, tables.AC(1).NumValues())
	assert.Equal(t, byte(0xfa), tables.AC(0).Symbols()[161])
	assert.Equal(t, byte(0x00), tables.AC(1).Symbols()[0])

	for id := 2; id < MaxScanComponents; id++ {
		assert.Equal(t, *tables.DC(1), *tables.DC(id), "dc %d", id)
		assert.Equal(t, *tables.AC(1), *tables.AC(id), "ac %d", id)
	}
	for i := range tables {
		assert.True(t, tables[i].Valid, "slot %d", i)
	}

	var again HuffmanTables
	DefaultHuffmanTables(&again)
	assert.Equal(t, tables, again)

	DefaultHuffmanTables(nil)
}
