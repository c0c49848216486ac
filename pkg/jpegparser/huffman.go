package jpegparser

import "fmt"

// Huffman table classes
const (
	ClassDC = 0
	ClassAC = 1
)

// HuffmanTable is one DHT table: BITS and HUFFVAL.
type HuffmanTable struct {
	Bits   [16]uint8  `json:"bits"` // Bits[i] codes of length i+1
	Values [256]uint8 `json:"-"`
	Valid  bool       `json:"valid"`
}

// HuffmanTables is a bank of DC tables in [0,4) followed by AC tables in
// [4,8), each half indexed by destination identifier.
type HuffmanTables [2 * MaxScanComponents]HuffmanTable

// DC returns DC table id
func (t *HuffmanTables) DC(id int) *HuffmanTable {
	return &t[id]
}

// AC returns AC table id
func (t *HuffmanTables) AC(id int) *HuffmanTable {
	return &t[MaxScanComponents+id]
}

// NumValues is the number of symbols, the sum of Bits.
func (h *HuffmanTable) NumValues() int {
	n := 0
	for _, b := range h.Bits {
		n += int(b)
	}
	return n
}

// Symbols returns the populated part of Values.
func (h *HuffmanTable) Symbols() []byte {
	n := min(h.NumValues(), len(h.Values))
	return append([]byte(nil), h.Values[:n]...)
}

// HuffmanCode is one canonical code.
type HuffmanCode struct {
	Code  uint16
	Size  int
	Value byte
}

// Codes assigns the canonical codes (T.81 Annex C): codes of each length
// are consecutive and lengthening a code appends a zero bit.
func (h *HuffmanTable) Codes() []HuffmanCode {
	total := min(h.NumValues(), len(h.Values))
	codes := make([]HuffmanCode, 0, total)

	code := uint16(0)
	k := 0
	for size := 1; size <= 16 && k < total; size++ {
		for j := 0; j < int(h.Bits[size-1]) && k < total; j++ {
			codes = append(codes, HuffmanCode{Code: code, Size: size, Value: h.Values[k]})
			code++
			k++
		}
		code <<= 1
	}
	return codes
}

// ParseHuffmanTables decodes every table of the DHT segment whose length
// field is at offset into tables. Earlier contents at the same class and
// identifier are overwritten. Tables decoded before a broken one stay
// written.
func ParseHuffmanTables(tables *HuffmanTables, data []byte, offset int) error {
	if tables == nil {
		return fmt.Errorf("%w: no Huffman table storage", ErrInvalidArgument)
	}
	r, err := newByteReader(data, offset)
	if err != nil {
		return err
	}
	if _, err := r.readLength(); err != nil {
		return fmt.Errorf("huffman tables: %w", err)
	}
	if r.remaining() == 0 {
		return fmt.Errorf("%w: huffman segment holds no table", ErrBrokenData)
	}

	for r.remaining() > 0 {
		tc, th, err := r.readNibbles()
		if err != nil {
			return err
		}
		if tc > ClassAC {
			return fmt.Errorf("%w: huffman table class %d", ErrBrokenData, tc)
		}
		if int(th) >= MaxScanComponents {
			return fmt.Errorf("%w: huffman table destination %d", ErrBrokenData, th)
		}

		var ht HuffmanTable
		bits, err := r.readBytes(len(ht.Bits))
		if err != nil {
			return fmt.Errorf("huffman table %d/%d counts: %w", tc, th, err)
		}
		copy(ht.Bits[:], bits)
		n := ht.NumValues()
		if n > len(ht.Values) {
			return fmt.Errorf("%w: huffman table %d/%d declares %d symbols", ErrBrokenData, tc, th, n)
		}
		values, err := r.readBytes(n)
		if err != nil {
			return fmt.Errorf("huffman table %d/%d symbols: %w", tc, th, err)
		}
		copy(ht.Values[:], values)
		ht.Valid = true

		if tc == ClassDC {
			*tables.DC(int(th)) = ht
		} else {
			*tables.AC(int(th)) = ht
		}
	}
	return nil
}
