package jpegparser

import (
	"bytes"
	"fmt"
)

// ParseRestartInterval decodes the DRI segment whose length field is at
// offset and returns Ri, the number of MCUs between restart markers.
func ParseRestartInterval(data []byte, offset int) (uint16, error) {
	v, err := parseFixedWord(data, offset)
	if err != nil {
		return 0, fmt.Errorf("restart interval: %w", err)
	}
	return v, nil
}

// ParseLineCount decodes the DNL segment whose length field is at offset and
// returns NL, the frame height for frames that declared a height of 0.
func ParseLineCount(data []byte, offset int) (uint16, error) {
	v, err := parseFixedWord(data, offset)
	if err != nil {
		return 0, fmt.Errorf("line count: %w", err)
	}
	return v, nil
}

// parseFixedWord reads a segment of length 4 carrying one 16-bit value.
func parseFixedWord(data []byte, offset int) (uint16, error) {
	r, err := newByteReader(data, offset)
	if err != nil {
		return 0, err
	}
	length, err := r.readUint16()
	if err != nil {
		return 0, err
	}
	if length != 4 {
		return 0, fmt.Errorf("%w: length %d, want 4", ErrBrokenData, length)
	}
	return r.readUint16()
}

// ParseApplicationID returns the NUL-terminated identifier that opens the
// APPn segment whose length field is at offset, such as "JFIF" or "Exif".
// A payload without a terminator yields the empty string.
func ParseApplicationID(data []byte, offset int) (string, error) {
	payload, err := segmentPayload(data, offset)
	if err != nil {
		return "", fmt.Errorf("application segment: %w", err)
	}
	i := bytes.IndexByte(payload, 0)
	if i < 0 {
		return "", nil
	}
	return string(payload[:i]), nil
}

// ParseComment returns a copy of the COM segment payload whose length field
// is at offset.
func ParseComment(data []byte, offset int) ([]byte, error) {
	payload, err := segmentPayload(data, offset)
	if err != nil {
		return nil, fmt.Errorf("comment: %w", err)
	}
	return bytes.Clone(payload), nil
}

func segmentPayload(data []byte, offset int) ([]byte, error) {
	r, err := newByteReader(data, offset)
	if err != nil {
		return nil, err
	}
	n, err := r.readLength()
	if err != nil {
		return nil, err
	}
	return r.readBytes(n)
}
