package jpegparser

import "fmt"

// SizeUnknown is the Size of a scan segment whose entropy-coded data runs
// to the end of the buffer without a terminating marker.
const SizeUnknown = -1

// Segment locates one marker segment in a buffer.
type Segment struct {
	Marker Marker `json:"marker"`
	// Offset is the position right after the marker code, where the length
	// field (if any) starts. The decoders take this offset.
	Offset int `json:"offset"`
	// Size counts the length field and payload, plus the entropy-coded data
	// for SOS. Zero for stand-alone markers.
	Size int `json:"size"`
}

// MarkerOffset is the position of the 0xFF prefix.
func (s Segment) MarkerOffset() int {
	return s.Offset - 2
}

// End returns the first byte past the segment, if known.
func (s Segment) End() (int, bool) {
	if s.Size == SizeUnknown {
		return 0, false
	}
	return s.Offset + s.Size, true
}

func (s Segment) String() string {
	if s.Size == SizeUnknown {
		return fmt.Sprintf("%s@%d+?", s.Marker, s.Offset)
	}
	return fmt.Sprintf("%s@%d+%d", s.Marker, s.Offset, s.Size)
}

// Scanner walks the marker segments of a buffer one at a time, in the manner
// of bufio.Scanner. It stops after EOI, at the end of the buffer, after a
// scan whose end cannot be found, or at the first broken segment.
type Scanner struct {
	data     []byte
	pos      int
	seg      Segment
	err      error
	done     bool
	stopNext bool
	sawScan  bool
}

// NewScanner returns a scanner that starts looking for markers at offset.
func NewScanner(data []byte, offset int) *Scanner {
	s := &Scanner{data: data, pos: offset}
	switch {
	case len(data) == 0:
		s.fail(fmt.Errorf("%w: empty buffer", ErrInvalidArgument))
	case offset < 0 || offset >= len(data):
		s.fail(fmt.Errorf("%w: offset %d outside buffer of %d bytes", ErrInvalidArgument, offset, len(data)))
	}
	return s
}

// Next advances to the next segment. It returns false when the walk is over;
// Err then tells whether it ended cleanly.
func (s *Scanner) Next() bool {
	if s.done {
		return false
	}
	if s.stopNext {
		s.stop()
		return false
	}
	at, ok := s.findMarker(s.pos)
	if !ok {
		s.stop()
		return false
	}

	seg := Segment{Marker: Marker(s.data[at+1]), Offset: at + 2}
	if !seg.Marker.HasLength() {
		s.pos = seg.Offset
		s.stopNext = seg.Marker == MarkerEOI
		s.seg = seg
		return true
	}

	r := &byteReader{data: s.data, pos: seg.Offset, end: len(s.data)}
	payload, err := r.readLength()
	if err != nil {
		s.fail(fmt.Errorf("%s segment at offset %d: %w", seg.Marker, seg.Offset, err))
		return false
	}
	seg.Size = payload + 2
	s.pos = seg.Offset + seg.Size

	if seg.Marker == MarkerSOS {
		s.sawScan = true
		end, found := s.findScanEnd(s.pos)
		if !found {
			seg.Size = SizeUnknown
			s.stopNext = true
		} else {
			seg.Size = end - seg.Offset
			s.pos = end
		}
	}
	s.seg = seg
	return true
}

// Segment returns the segment found by the last call to Next.
func (s *Scanner) Segment() Segment {
	return s.seg
}

// Err returns the reason the walk ended, or nil if it ended after at least
// one scan.
func (s *Scanner) Err() error {
	return s.err
}

func (s *Scanner) stop() {
	s.done = true
	if s.err == nil && !s.sawScan {
		s.err = ErrNoScanFound
	}
}

func (s *Scanner) fail(err error) {
	s.done = true
	s.err = err
}

// findMarker returns the index of the next 0xFF followed by a marker code.
// 0xFF 0x00 and runs of 0xFF fill bytes are passed over.
func (s *Scanner) findMarker(from int) (int, bool) {
	for i := from; i+1 < len(s.data); i++ {
		if s.data[i] != markerPrefix {
			continue
		}
		if c := s.data[i+1]; c != 0x00 && c != markerPrefix {
			return i, true
		}
	}
	return 0, false
}

// findScanEnd skips entropy-coded data: stuffed 0xFF 0x00 pairs, fill bytes
// and RSTn markers belong to the scan. Any other marker ends it.
func (s *Scanner) findScanEnd(from int) (int, bool) {
	i := from
	for i+1 < len(s.data) {
		if s.data[i] != markerPrefix {
			i++
			continue
		}
		c := Marker(s.data[i+1])
		switch {
		case c == 0x00:
			i += 2
		case c == markerPrefix:
			i++
		case c.Kind() == KindRestart:
			i += 2
		default:
			return i, true
		}
	}
	return 0, false
}

// Parse collects every segment from offset onwards. When no SOS is met the
// segments found are returned together with ErrNoScanFound. Broken segments
// fail the whole walk.
func Parse(data []byte, offset int) ([]Segment, error) {
	s := NewScanner(data, offset)
	var segs []Segment
	for s.Next() {
		segs = append(segs, s.Segment())
	}
	switch err := s.Err(); {
	case err == nil:
		return segs, nil
	case err == ErrNoScanFound:
		return segs, err
	default:
		return nil, err
	}
}
