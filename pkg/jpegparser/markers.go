// Package jpegparser walks a JPEG (ITU-T T.81) bitstream and decodes its
// marker segment headers without touching the entropy-coded data.
//
// A consumer runs Parse (or a Scanner) to find the segments, then hands each
// segment of interest to the decoder for its marker:
//
//	segs, err := jpegparser.Parse(data, 0)
//	for _, s := range segs {
//		switch s.Marker.Kind() {
//		case jpegparser.KindStartOfFrame:
//			hdr, err := jpegparser.ParseFrameHeader(data, s.Offset, s.Marker)
//		case jpegparser.KindQuantization:
//			err := jpegparser.ParseQuantTables(qt[:], data, s.Offset)
//		}
//	}
//
// The decoders hold no state, never log and never read outside the slice
// they are given.
package jpegparser

import "fmt"

// Format limits
const (
	MaxFrameComponents = 256 // Nf
	MaxScanComponents  = 4   // Ns
	QuantElements      = 64  // Qk per table
)

// Marker is the code byte that follows 0xFF.
type Marker byte

// JPEG marker codes (ITU-T T.81 Table B.1)
const (
	MarkerTEM  Marker = 0x01 // Temporary private use (no length)
	MarkerSOF0 Marker = 0xC0 // Baseline DCT
	MarkerSOF1 Marker = 0xC1 // Extended sequential DCT
	MarkerSOF2 Marker = 0xC2 // Progressive DCT
	MarkerSOF3 Marker = 0xC3 // Lossless
	MarkerDHT  Marker = 0xC4 // Define Huffman table(s)
	MarkerSOF5 Marker = 0xC5 // Differential sequential DCT
	MarkerSOF6 Marker = 0xC6 // Differential progressive DCT
	MarkerSOF7 Marker = 0xC7 // Differential lossless
	MarkerJPG  Marker = 0xC8 // Reserved for JPEG extensions
	MarkerSOF9 Marker = 0xC9 // Extended sequential DCT, arithmetic
	MarkerSOFA Marker = 0xCA // Progressive DCT, arithmetic
	MarkerSOFB Marker = 0xCB // Lossless, arithmetic
	MarkerDAC  Marker = 0xCC // Define arithmetic conditioning
	MarkerSOFD Marker = 0xCD // Differential sequential DCT, arithmetic
	MarkerSOFE Marker = 0xCE // Differential progressive DCT, arithmetic
	MarkerSOFF Marker = 0xCF // Differential lossless, arithmetic
	MarkerRST0 Marker = 0xD0 // Restart 0
	MarkerRST7 Marker = 0xD7 // Restart 7
	MarkerSOI  Marker = 0xD8 // Start of image
	MarkerEOI  Marker = 0xD9 // End of image
	MarkerSOS  Marker = 0xDA // Start of scan
	MarkerDQT  Marker = 0xDB // Define quantization table(s)
	MarkerDNL  Marker = 0xDC // Define number of lines
	MarkerDRI  Marker = 0xDD // Define restart interval
	MarkerAPP0 Marker = 0xE0 // Application segment 0 (JFIF)
	MarkerAPP1 Marker = 0xE1 // Application segment 1 (Exif, XMP)
	MarkerAPPF Marker = 0xEF // Application segment 15
	MarkerCOM  Marker = 0xFE // Comment
)

// markerPrefix precedes every marker code.
const markerPrefix = 0xFF

// Kind groups marker codes into the families a consumer dispatches on.
type Kind int

const (
	KindOther Kind = iota
	KindStartOfFrame
	KindHuffman
	KindArithmetic
	KindRestart
	KindStartOfImage
	KindEndOfImage
	KindStartOfScan
	KindQuantization
	KindLineCount
	KindRestartInterval
	KindApplication
	KindComment
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindStartOfFrame:
		return "StartOfFrame"
	case KindHuffman:
		return "Huffman"
	case KindArithmetic:
		return "Arithmetic"
	case KindRestart:
		return "Restart"
	case KindStartOfImage:
		return "StartOfImage"
	case KindEndOfImage:
		return "EndOfImage"
	case KindStartOfScan:
		return "StartOfScan"
	case KindQuantization:
		return "Quantization"
	case KindLineCount:
		return "LineCount"
	case KindRestartInterval:
		return "RestartInterval"
	case KindApplication:
		return "Application"
	case KindComment:
		return "Comment"
	default:
		return "Other"
	}
}

// Kind classifies the marker. DHT, JPG and DAC sit inside the SOF code range
// and are matched before it.
func (m Marker) Kind() Kind {
	switch {
	case m == MarkerDHT:
		return KindHuffman
	case m == MarkerDAC:
		return KindArithmetic
	case m == MarkerJPG:
		return KindOther
	case m >= MarkerSOF0 && m <= MarkerSOFF:
		return KindStartOfFrame
	case m >= MarkerRST0 && m <= MarkerRST7:
		return KindRestart
	case m == MarkerSOI:
		return KindStartOfImage
	case m == MarkerEOI:
		return KindEndOfImage
	case m == MarkerSOS:
		return KindStartOfScan
	case m == MarkerDQT:
		return KindQuantization
	case m == MarkerDNL:
		return KindLineCount
	case m == MarkerDRI:
		return KindRestartInterval
	case m >= MarkerAPP0 && m <= MarkerAPPF:
		return KindApplication
	case m == MarkerCOM:
		return KindComment
	default:
		return KindOther
	}
}

// HasLength reports whether a 2-byte length field follows the marker.
// SOI, EOI, RSTn and TEM stand alone.
func (m Marker) HasLength() bool {
	switch m.Kind() {
	case KindStartOfImage, KindEndOfImage, KindRestart:
		return false
	}
	return m != MarkerTEM
}

// RestartIndex returns n for RSTn markers.
func (m Marker) RestartIndex() (int, bool) {
	if m.Kind() != KindRestart {
		return 0, false
	}
	return int(m - MarkerRST0), true
}

// ApplicationIndex returns n for APPn markers.
func (m Marker) ApplicationIndex() (int, bool) {
	if m.Kind() != KindApplication {
		return 0, false
	}
	return int(m - MarkerAPP0), true
}

// Profile returns the encoding process selected by a SOF marker.
func (m Marker) Profile() (Profile, bool) {
	if m.Kind() != KindStartOfFrame {
		return 0, false
	}
	// low two bits select the process, bit 3 selects arithmetic coding
	p := Profile(m & 0x03)
	if m&0x08 != 0 {
		p |= ProfileArithmetic
	}
	return p, true
}

// String returns the conventional marker mnemonic
func (m Marker) String() string {
	switch k := m.Kind(); k {
	case KindStartOfFrame:
		return fmt.Sprintf("SOF%d", int(m-MarkerSOF0))
	case KindRestart:
		return fmt.Sprintf("RST%d", int(m-MarkerRST0))
	case KindApplication:
		return fmt.Sprintf("APP%d", int(m-MarkerAPP0))
	}
	switch m {
	case MarkerTEM:
		return "TEM"
	case MarkerDHT:
		return "DHT"
	case MarkerJPG:
		return "JPG"
	case MarkerDAC:
		return "DAC"
	case MarkerSOI:
		return "SOI"
	case MarkerEOI:
		return "EOI"
	case MarkerSOS:
		return "SOS"
	case MarkerDQT:
		return "DQT"
	case MarkerDNL:
		return "DNL"
	case MarkerDRI:
		return "DRI"
	case MarkerCOM:
		return "COM"
	}
	return fmt.Sprintf("0x%02X", byte(m))
}

// Profile is the JPEG encoding process of a frame.
type Profile byte

const (
	ProfileBaseline    Profile = 0x00
	ProfileExtended    Profile = 0x01
	ProfileProgressive Profile = 0x02
	ProfileLossless    Profile = 0x03
	ProfileArithmetic  Profile = 0x80 // flag, combined with one of the above
)

// Process strips the arithmetic flag
func (p Profile) Process() Profile {
	return p &^ ProfileArithmetic
}

// Arithmetic reports whether the frame is arithmetic coded
func (p Profile) Arithmetic() bool {
	return p&ProfileArithmetic != 0
}

// String returns the profile name
func (p Profile) String() string {
	var name string
	switch p.Process() {
	case ProfileBaseline:
		name = "baseline"
	case ProfileExtended:
		name = "extended"
	case ProfileProgressive:
		name = "progressive"
	case ProfileLossless:
		name = "lossless"
	default:
		name = "unknown"
	}
	if p.Arithmetic() {
		name += "+arithmetic"
	}
	return name
}
