package jpegparser

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHuffmanTables_TwoTablesInOneSegment(t *testing.T) {
	dc := testHuffman{class: ClassDC, id: 1, bits: [16]byte{0, 2, 1}, values: []byte{3, 4, 5}}
	ac := testHuffman{class: ClassAC, id: 1, bits: [16]byte{1, 1}, values: []byte{0x01, 0xF0}}
	payload := dhtPayload(dc, ac)

	// each table consumes 1 + 16 + sum(bits) bytes
	require.Len(t, payload, (1+16+3)+(1+16+2))

	var out HuffmanTables
	require.NoError(t, ParseHuffmanTables(&out, body(segment(MarkerDHT, payload...)), 0))

	gotDC := out.DC(1)
	assert.True(t, gotDC.Valid)
	assert.Equal(t, dc.bits, gotDC.Bits)
	assert.Equal(t, dc.values, gotDC.Symbols())
	assert.Equal(t, 3, gotDC.NumValues())

	gotAC := out.AC(1)
	assert.True(t, gotAC.Valid)
	assert.Equal(t, ac.bits, gotAC.Bits)
	assert.Equal(t, ac.values, gotAC.Symbols())

	for i := range out {
		if i == 1 || i == MaxScanComponents+1 {
			continue
		}
		assert.False(t, out[i].Valid, "slot %d", i)
	}
}

func TestParseHuffmanTables_LastWriterWins(t *testing.T) {
	first := testHuffman{class: ClassDC, id: 0, bits: [16]byte{0, 3}, values: []byte{7, 8, 9}}
	second := testHuffman{class: ClassDC, id: 0, bits: [16]byte{1}, values: []byte{1}}
	other := testHuffman{class: ClassAC, id: 0, bits: [16]byte{0, 1}, values: []byte{0x11}}

	var out HuffmanTables
	require.NoError(t, ParseHuffmanTables(&out, body(segment(MarkerDHT, dhtPayload(first, other, second)...)), 0))

	assert.Equal(t, []byte{1}, out.DC(0).Symbols())
	assert.Equal(t, second.bits, out.DC(0).Bits)
	assert.Equal(t, uint8(0), out.DC(0).Values[1], "stale symbols cleared")
	assert.Equal(t, []byte{0x11}, out.AC(0).Symbols(), "same id in the other class is separate")
}

func TestParseHuffmanTables_Broken(t *testing.T) {
	full := [16]byte{}
	full[15] = 255
	full[14] = 2

	tests := []struct {
		name    string
		payload []byte
	}{
		{"bad class", dhtPayload(testHuffman{class: 2, bits: [16]byte{1}, values: []byte{0}})},
		{"bad destination", dhtPayload(testHuffman{class: 0, id: 4, bits: [16]byte{1}, values: []byte{0}})},
		{"symbols past segment", dhtPayload(testHuffman{bits: [16]byte{0, 4}, values: []byte{1, 2}})},
		{"counts cut short", dhtPayload(testHuffman{bits: [16]byte{1}, values: []byte{0}})[:10]},
		{"more than 256 symbols", dhtPayload(testHuffman{bits: full, values: make([]byte, 257)})},
		{"no table", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out HuffmanTables
			err := ParseHuffmanTables(&out, body(segment(MarkerDHT, tt.payload...)), 0)
			require.ErrorIs(t, err, ErrBrokenData)
		})
	}
}

func TestParseHuffmanTables_InvalidArguments(t *testing.T) {
	data := body(segment(MarkerDHT, dhtPayload(testHuffman{bits: [16]byte{1}, values: []byte{0}})...))

	assert.ErrorIs(t, ParseHuffmanTables(nil, data, 0), ErrInvalidArgument)
	var out HuffmanTables
	assert.ErrorIs(t, ParseHuffmanTables(&out, data, -3), ErrInvalidArgument)
}

func TestHuffmanTable_Codes(t *testing.T) {
	var tables HuffmanTables
	DefaultHuffmanTables(&tables)

	// Table K.3: category 0 is "00", 6 is "1110", 11 is "111111110"
	codes := tables.DC(0).Codes()
	require.Len(t, codes, 12)
	assert.Equal(t, HuffmanCode{Code: 0b00, Size: 2, Value: 0}, codes[0])
	assert.Equal(t, HuffmanCode{Code: 0b010, Size: 3, Value: 1}, codes[1])
	assert.Equal(t, HuffmanCode{Code: 0b1110, Size: 4, Value: 6}, codes[6])
	assert.Equal(t, HuffmanCode{Code: 0b111111110, Size: 9, Value: 11}, codes[11])

	// Table K.5: 0x01 is "00", EOB (0x00) is "1010"
	ac := tables.AC(0).Codes()
	assert.Equal(t, HuffmanCode{Code: 0b00, Size: 2, Value: 0x01}, ac[0])
	assert.Equal(t, HuffmanCode{Code: 0b1010, Size: 4, Value: 0x00}, ac[3])
}

func TestHuffmanTable_CodesPrefixFree(t *testing.T) {
	var tables HuffmanTables
	DefaultHuffmanTables(&tables)

	for i := range tables {
		t.Run(fmt.Sprintf("slot%d", i), func(t *testing.T) {
			codes := tables[i].Codes()
			require.Len(t, codes, tables[i].NumValues())
			for a := range codes {
				for b := range codes {
					if a == b || codes[a].Size > codes[b].Size {
						continue
					}
					prefix := codes[b].Code >> (codes[b].Size - codes[a].Size)
					assert.NotEqual(t, codes[a].Code, prefix, "code %d prefixes code %d", a, b)
				}
			}
		})
	}
}
