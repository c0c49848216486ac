package jpegparser

import "fmt"

// FrameComponent is one Ci/Hi/Vi/Tqi entry of a frame header.
type FrameComponent struct {
	Identifier         uint8 `json:"identifier"`
	HorizontalFactor   uint8 `json:"horizontal_factor"`
	VerticalFactor     uint8 `json:"vertical_factor"`
	QuantTableSelector uint8 `json:"quant_table_selector"`
}

// FrameHeader is a decoded SOFn segment.
type FrameHeader struct {
	Profile         Profile          `json:"profile"`
	SamplePrecision uint8            `json:"sample_precision"`
	Width           uint16           `json:"width"`
	Height          uint16           `json:"height"` // 0 means the height comes from a DNL segment
	Components      []FrameComponent `json:"components"`
}

// ParseFrameHeader decodes the SOF segment whose length field is at offset.
// The marker supplies the profile, which the payload does not carry.
func ParseFrameHeader(data []byte, offset int, marker Marker) (*FrameHeader, error) {
	profile, ok := marker.Profile()
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a start-of-frame marker", ErrInvalidArgument, marker)
	}
	r, err := newByteReader(data, offset)
	if err != nil {
		return nil, err
	}
	payload, err := r.readLength()
	if err != nil {
		return nil, fmt.Errorf("frame header: %w", err)
	}

	hdr := &FrameHeader{Profile: profile}
	if hdr.SamplePrecision, err = r.readUint8(); err != nil {
		return nil, fmt.Errorf("frame header precision: %w", err)
	}
	if hdr.Height, err = r.readUint16(); err != nil {
		return nil, fmt.Errorf("frame header height: %w", err)
	}
	if hdr.Width, err = r.readUint16(); err != nil {
		return nil, fmt.Errorf("frame header width: %w", err)
	}
	if hdr.Width == 0 {
		return nil, fmt.Errorf("%w: frame width 0", ErrBrokenData)
	}
	nf, err := r.readUint8()
	if err != nil {
		return nil, fmt.Errorf("frame header component count: %w", err)
	}
	if nf == 0 {
		return nil, fmt.Errorf("%w: frame component count %d", ErrBrokenData, nf)
	}
	// Lf = 8 + 3*Nf, with the length field itself counting 2 of the 8
	if want := 6 + 3*int(nf); payload != want {
		return nil, fmt.Errorf("%w: frame length %d does not fit %d components (want %d)",
			ErrBrokenData, payload+2, nf, want+2)
	}

	hdr.Components = make([]FrameComponent, nf)
	for i := range hdr.Components {
		c := &hdr.Components[i]
		if c.Identifier, err = r.readUint8(); err != nil {
			return nil, fmt.Errorf("frame component %d: %w", i, err)
		}
		if c.HorizontalFactor, c.VerticalFactor, err = r.readNibbles(); err != nil {
			return nil, fmt.Errorf("frame component %d: %w", i, err)
		}
		if c.HorizontalFactor == 0 || c.VerticalFactor == 0 {
			return nil, fmt.Errorf("%w: frame component %d has sampling factor %dx%d",
				ErrBrokenData, i, c.HorizontalFactor, c.VerticalFactor)
		}
		if c.QuantTableSelector, err = r.readUint8(); err != nil {
			return nil, fmt.Errorf("frame component %d: %w", i, err)
		}
	}
	return hdr, nil
}

// MaxFactors returns the largest horizontal and vertical sampling factors,
// which size the MCU.
func (h *FrameHeader) MaxFactors() (hmax, vmax uint8) {
	for _, c := range h.Components {
		hmax = max(hmax, c.HorizontalFactor)
		vmax = max(vmax, c.VerticalFactor)
	}
	return hmax, vmax
}

// Component returns the component with the given identifier.
func (h *FrameHeader) Component(id uint8) (FrameComponent, bool) {
	for _, c := range h.Components {
		if c.Identifier == id {
			return c, true
		}
	}
	return FrameComponent{}, false
}
