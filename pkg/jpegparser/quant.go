package jpegparser

import "fmt"

// QuantTable is one DQT table. Values are kept in zigzag order, as stored in
// the bitstream.
type QuantTable struct {
	Precision uint8                 `json:"precision"` // 0 = 8-bit, 1 = 16-bit
	Values    [QuantElements]uint16 `json:"values"`
	Valid     bool                  `json:"valid"`
}

// ElementSize is the number of bytes each element takes in the bitstream.
func (q *QuantTable) ElementSize() int {
	if q.Precision == 1 {
		return 2
	}
	return 1
}

// Natural returns the values in row-major order.
func (q *QuantTable) Natural() [QuantElements]uint16 {
	var out [QuantElements]uint16
	for i, v := range q.Values {
		out[zigzag[i]] = v
	}
	return out
}

// zigzag maps zigzag position to row-major position (T.81 Figure A.6).
var zigzag = [QuantElements]int{
	0, 1, 8, 16, 9, 2, 3, 10,
	17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34,
	27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36,
	29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46,
	53, 60, 61, 54, 47, 55, 62, 63,
}

// ParseQuantTables decodes every table of the DQT segment whose length field
// is at offset into tables, indexed by destination identifier. Earlier
// contents at the same identifier are overwritten. Tables decoded before a
// broken one stay written.
func ParseQuantTables(tables []QuantTable, data []byte, offset int) error {
	if len(tables) == 0 {
		return fmt.Errorf("%w: no quantization table storage", ErrInvalidArgument)
	}
	r, err := newByteReader(data, offset)
	if err != nil {
		return err
	}
	if _, err := r.readLength(); err != nil {
		return fmt.Errorf("quantization tables: %w", err)
	}
	if r.remaining() == 0 {
		return fmt.Errorf("%w: quantization segment holds no table", ErrBrokenData)
	}

	for r.remaining() > 0 {
		pq, tq, err := r.readNibbles()
		if err != nil {
			return err
		}
		if pq > 1 {
			return fmt.Errorf("%w: quantization table precision %d", ErrBrokenData, pq)
		}
		if tq > 3 {
			return fmt.Errorf("%w: quantization table destination %d", ErrBrokenData, tq)
		}
		if int(tq) >= len(tables) {
			return fmt.Errorf("%w: quantization table destination %d beyond %d slots", ErrBrokenData, tq, len(tables))
		}

		qt := QuantTable{Precision: pq, Valid: true}
		if err := r.need(QuantElements * qt.ElementSize()); err != nil {
			return fmt.Errorf("quantization table %d: %w", tq, err)
		}
		for i := range qt.Values {
			if pq == 0 {
				v, err := r.readUint8()
				if err != nil {
					return fmt.Errorf("quantization table %d element %d: %w", tq, i, err)
				}
				qt.Values[i] = uint16(v)
			} else if qt.Values[i], err = r.readUint16(); err != nil {
				return fmt.Errorf("quantization table %d element %d: %w", tq, i, err)
			}
		}
		tables[tq] = qt
	}
	return nil
}
