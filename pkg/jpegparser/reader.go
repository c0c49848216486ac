package jpegparser

import (
	"encoding/binary"
	"fmt"
)

// byteReader is a bounds-checked big-endian cursor over a byte slice.
// end caps reads below len(data) once a segment length is known.
type byteReader struct {
	data []byte
	pos  int
	end  int
}

// newByteReader positions a reader at offset. The offset must address a byte
// inside data.
func newByteReader(data []byte, offset int) (*byteReader, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty buffer", ErrInvalidArgument)
	}
	if offset < 0 || offset >= len(data) {
		return nil, fmt.Errorf("%w: offset %d outside buffer of %d bytes", ErrInvalidArgument, offset, len(data))
	}
	return &byteReader{data: data, pos: offset, end: len(data)}, nil
}

func (r *byteReader) remaining() int {
	return r.end - r.pos
}

func (r *byteReader) need(n int) error {
	if n > r.remaining() {
		return fmt.Errorf("%w: need %d bytes at offset %d, %d left", ErrBrokenData, n, r.pos, r.remaining())
	}
	return nil
}

func (r *byteReader) readUint8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.data[r.pos]
	r.pos++
	return v, nil
}

func (r *byteReader) readUint16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

// readNibbles splits one byte into its high and low 4 bits.
func (r *byteReader) readNibbles() (hi, lo uint8, err error) {
	v, err := r.readUint8()
	if err != nil {
		return 0, 0, err
	}
	return v >> 4, v & 0x0F, nil
}

func (r *byteReader) readBytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *byteReader) skip(n int) error {
	if err := r.need(n); err != nil {
		return err
	}
	r.pos += n
	return nil
}

// readLength reads a segment length field, which counts itself, and narrows
// the reader to the end of that segment. It returns the payload size.
func (r *byteReader) readLength() (int, error) {
	length, err := r.readUint16()
	if err != nil {
		return 0, err
	}
	if length < 2 {
		return 0, fmt.Errorf("%w: segment length %d below minimum 2", ErrBrokenData, length)
	}
	payload := int(length) - 2
	if err := r.need(payload); err != nil {
		return 0, fmt.Errorf("segment length %d: %w", length, err)
	}
	r.end = r.pos + payload
	return payload, nil
}
