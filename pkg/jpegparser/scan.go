package jpegparser

import "fmt"

// ScanComponent is one Csj/Tdj/Taj entry of a scan header.
type ScanComponent struct {
	Selector   uint8 `json:"selector"`
	DCSelector uint8 `json:"dc_selector"`
	ACSelector uint8 `json:"ac_selector"`
}

// ScanHeader is a decoded SOS header. The entropy-coded data after it is not
// touched.
type ScanHeader struct {
	Components []ScanComponent `json:"components"`

	// Ss, Se, Ah and Al. Only set when the declared length covers them.
	HasParameters bool  `json:"has_parameters"`
	SpectralStart uint8 `json:"spectral_start"`
	SpectralEnd   uint8 `json:"spectral_end"`
	ApproxHigh    uint8 `json:"approx_high"`
	ApproxLow     uint8 `json:"approx_low"`
}

// ParseScanHeader decodes the SOS header whose length field is at offset.
// Table selectors outside 0-3 are broken data.
func ParseScanHeader(data []byte, offset int) (*ScanHeader, error) {
	r, err := newByteReader(data, offset)
	if err != nil {
		return nil, err
	}
	payload, err := r.readLength()
	if err != nil {
		return nil, fmt.Errorf("scan header: %w", err)
	}
	ns, err := r.readUint8()
	if err != nil {
		return nil, fmt.Errorf("scan header component count: %w", err)
	}
	if ns == 0 || int(ns) > MaxScanComponents {
		return nil, fmt.Errorf("%w: scan component count %d", ErrBrokenData, ns)
	}
	if need := 1 + 2*int(ns); payload < need {
		return nil, fmt.Errorf("%w: scan length %d too short for %d components", ErrBrokenData, payload+2, ns)
	}

	hdr := &ScanHeader{Components: make([]ScanComponent, ns)}
	for i := range hdr.Components {
		c := &hdr.Components[i]
		if c.Selector, err = r.readUint8(); err != nil {
			return nil, fmt.Errorf("scan component %d: %w", i, err)
		}
		if c.DCSelector, c.ACSelector, err = r.readNibbles(); err != nil {
			return nil, fmt.Errorf("scan component %d: %w", i, err)
		}
		if int(c.DCSelector) >= MaxScanComponents || int(c.ACSelector) >= MaxScanComponents {
			return nil, fmt.Errorf("%w: scan component %d selects tables DC%d/AC%d",
				ErrBrokenData, i, c.DCSelector, c.ACSelector)
		}
	}

	if r.remaining() < 3 {
		return hdr, nil
	}
	if hdr.SpectralStart, err = r.readUint8(); err != nil {
		return nil, fmt.Errorf("scan spectral start: %w", err)
	}
	if hdr.SpectralEnd, err = r.readUint8(); err != nil {
		return nil, fmt.Errorf("scan spectral end: %w", err)
	}
	if hdr.ApproxHigh, hdr.ApproxLow, err = r.readNibbles(); err != nil {
		return nil, fmt.Errorf("scan successive approximation: %w", err)
	}
	hdr.HasParameters = true
	return hdr, nil
}

// Predictor is the lossless predictor selection, carried in Ss.
func (h *ScanHeader) Predictor() uint8 {
	return h.SpectralStart
}

// PointTransform is the lossless point transform, carried in Al.
func (h *ScanHeader) PointTransform() uint8 {
	return h.ApproxLow
}
