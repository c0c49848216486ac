package jpegparser

import "bytes"

// Synthetic bitstream builders for tests.

func marker(m Marker) []byte {
	return []byte{0xFF, byte(m)}
}

// segment returns marker + length + payload.
func segment(m Marker, payload ...byte) []byte {
	n := len(payload) + 2
	return append([]byte{0xFF, byte(m), byte(n >> 8), byte(n)}, payload...)
}

// body strips the marker so the result starts at the length field.
func body(seg []byte) []byte {
	return seg[2:]
}

func concat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

type testComponent struct {
	id, h, v, tq byte
}

func sofPayload(precision byte, height, width uint16, comps ...testComponent) []byte {
	p := []byte{precision, byte(height >> 8), byte(height), byte(width >> 8), byte(width), byte(len(comps))}
	for _, c := range comps {
		p = append(p, c.id, c.h<<4|c.v, c.tq)
	}
	return p
}

type testScanComponent struct {
	cs, td, ta byte
}

func sosPayload(params []byte, comps ...testScanComponent) []byte {
	p := []byte{byte(len(comps))}
	for _, c := range comps {
		p = append(p, c.cs, c.td<<4|c.ta)
	}
	return append(p, params...)
}

type testQuant struct {
	id, precision byte
	values        [QuantElements]uint16
}

func dqtPayload(tables ...testQuant) []byte {
	var p []byte
	for _, t := range tables {
		p = append(p, t.precision<<4|t.id)
		for _, v := range t.values {
			if t.precision == 0 {
				p = append(p, byte(v))
			} else {
				p = append(p, byte(v>>8), byte(v))
			}
		}
	}
	return p
}

type testHuffman struct {
	class, id byte
	bits      [16]byte
	values    []byte
}

func dhtPayload(tables ...testHuffman) []byte {
	var p []byte
	for _, t := range tables {
		p = append(p, t.class<<4|t.id)
		p = append(p, t.bits[:]...)
		p = append(p, t.values...)
	}
	return p
}

func sequence(start, step uint16) [QuantElements]uint16 {
	var v [QuantElements]uint16
	for i := range v {
		v[i] = start + uint16(i)*step
	}
	return v
}

// baselineImage is SOI, SOF0 (2 components, 8-bit, 64x48), DHT (one DC
// table), SOS (2 components), 3 bytes of entropy data holding a stuffed
// 0xFF 0x00, EOI.
func baselineImage() []byte {
	return concat(
		marker(MarkerSOI),
		segment(MarkerSOF0, sofPayload(8, 48, 64,
			testComponent{id: 1, h: 2, v: 2, tq: 0},
			testComponent{id: 2, h: 1, v: 1, tq: 1})...),
		segment(MarkerDHT, dhtPayload(testHuffman{class: 0, id: 0,
			bits: [16]byte{1}, values: []byte{0x05}})...),
		segment(MarkerSOS, sosPayload([]byte{0, 63, 0},
			testScanComponent{cs: 1, td: 0, ta: 0},
			testScanComponent{cs: 2, td: 1, ta: 1})...),
		[]byte{0x12, 0xFF, 0x00},
		marker(MarkerEOI),
	)
}
