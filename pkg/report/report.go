// Package report runs the segment scanner over a JPEG buffer, dispatches each
// segment to the decoder for its marker and gathers the results into one
// JSON-serializable summary.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jpfielding/jpegparser.go/pkg/jpegparser"
	"github.com/jpfielding/jpegparser.go/pkg/util"
)

// SegmentInfo is a readable form of jpegparser.Segment.
type SegmentInfo struct {
	Marker string `json:"marker"`
	Code   string `json:"code"`
	Kind   string `json:"kind"`
	Offset int    `json:"offset"`
	Size   int    `json:"size"`
}

// QuantInfo is one defined quantization table.
type QuantInfo struct {
	ID        int      `json:"id"`
	Precision int      `json:"precision"`
	Values    []uint16 `json:"values"`
}

// HuffmanInfo is one defined Huffman table.
type HuffmanInfo struct {
	Class   string `json:"class"`
	ID      int    `json:"id"`
	Bits    []int  `json:"bits"`
	Symbols []int  `json:"symbols"`
}

// AppInfo names an APPn segment.
type AppInfo struct {
	Marker string `json:"marker"`
	Offset int    `json:"offset"`
	ID     string `json:"id"`
}

// Problem is a segment that failed to decode. The rest of the report is
// still built.
type Problem struct {
	Segment SegmentInfo `json:"segment"`
	Result  string      `json:"result"`
	Error   string      `json:"error"`
}

// Report summarises the headers of one JPEG buffer.
type Report struct {
	ID              string                   `json:"id"`
	MD5             string                   `json:"md5"`
	Length          int                      `json:"length"`
	Result          string                   `json:"result"`
	Segments        []SegmentInfo            `json:"segments"`
	Frame           *jpegparser.FrameHeader  `json:"frame,omitempty"`
	FrameMarker     string                   `json:"frame_marker,omitempty"`
	Profile         string                   `json:"profile,omitempty"`
	Scans           []*jpegparser.ScanHeader `json:"scans,omitempty"`
	QuantTables     []QuantInfo              `json:"quant_tables,omitempty"`
	HuffmanTables   []HuffmanInfo            `json:"huffman_tables,omitempty"`
	RestartInterval *uint16                  `json:"restart_interval,omitempty"`
	LineCount       *uint16                  `json:"line_count,omitempty"`
	Applications    []AppInfo                `json:"applications,omitempty"`
	Comments        []string                 `json:"comments,omitempty"`
	// DefaultHuffman is set when a scan has no DHT before it, as in Motion
	// JPEG, and the Annex K tables were assumed.
	DefaultHuffman bool      `json:"default_huffman,omitempty"`
	Problems       []Problem `json:"problems,omitempty"`
}

// Describe converts segments to their readable form.
func Describe(segs []jpegparser.Segment) []SegmentInfo {
	infos := make([]SegmentInfo, 0, len(segs))
	for _, s := range segs {
		infos = append(infos, describe(s))
	}
	return infos
}

func describe(s jpegparser.Segment) SegmentInfo {
	return SegmentInfo{
		Marker: s.Marker.String(),
		Code:   fmt.Sprintf("0xFF%02X", byte(s.Marker)),
		Kind:   s.Marker.Kind().String(),
		Offset: s.Offset,
		Size:   s.Size,
	}
}

// Analyze walks data and decodes every header it understands. A broken
// segment becomes a Problem; only a walk that cannot complete is an error.
// Tables defined more than once keep their last definition.
func Analyze(ctx context.Context, data []byte) (*Report, error) {
	segs, err := jpegparser.Parse(data, 0)
	if err != nil && !errors.Is(err, jpegparser.ErrNoScanFound) {
		return nil, fmt.Errorf("scanning segments: %w", err)
	}

	rep := &Report{
		MD5:      util.Md5ThenHex(data),
		Length:   len(data),
		Result:   jpegparser.ResultOf(err).String(),
		Segments: Describe(segs),
	}
	rep.ID = util.HashUUID(rep.Segments)

	b := builder{rep: rep, data: data}
	for _, s := range segs {
		slog.DebugContext(ctx, "dispatching segment",
			slog.String("marker", s.Marker.String()),
			slog.Int("offset", s.Offset),
			slog.Int("size", s.Size))
		if err := b.dispatch(s); err != nil {
			slog.WarnContext(ctx, "segment failed to decode",
				slog.String("marker", s.Marker.String()),
				slog.Int("offset", s.Offset),
				slog.Any("error", err))
			rep.Problems = append(rep.Problems, Problem{
				Segment: describe(s),
				Result:  jpegparser.ResultOf(err).String(),
				Error:   err.Error(),
			})
		}
	}
	b.finish()
	return rep, nil
}

type builder struct {
	rep     *Report
	data    []byte
	quant   [jpegparser.MaxScanComponents]jpegparser.QuantTable
	huffman jpegparser.HuffmanTables
	sawDHT  bool
}

func (b *builder) dispatch(s jpegparser.Segment) error {
	switch s.Marker.Kind() {
	case jpegparser.KindStartOfFrame:
		hdr, err := jpegparser.ParseFrameHeader(b.data, s.Offset, s.Marker)
		if err != nil {
			return err
		}
		b.rep.Frame = hdr
		b.rep.FrameMarker = s.Marker.String()
		b.rep.Profile = hdr.Profile.String()
	case jpegparser.KindStartOfScan:
		if !b.sawDHT && !b.rep.DefaultHuffman {
			jpegparser.DefaultHuffmanTables(&b.huffman)
			b.rep.DefaultHuffman = true
		}
		hdr, err := jpegparser.ParseScanHeader(b.data, s.Offset)
		if err != nil {
			return err
		}
		b.rep.Scans = append(b.rep.Scans, hdr)
	case jpegparser.KindQuantization:
		return jpegparser.ParseQuantTables(b.quant[:], b.data, s.Offset)
	case jpegparser.KindHuffman:
		b.sawDHT = true
		return jpegparser.ParseHuffmanTables(&b.huffman, b.data, s.Offset)
	case jpegparser.KindRestartInterval:
		ri, err := jpegparser.ParseRestartInterval(b.data, s.Offset)
		if err != nil {
			return err
		}
		b.rep.RestartInterval = &ri
	case jpegparser.KindLineCount:
		nl, err := jpegparser.ParseLineCount(b.data, s.Offset)
		if err != nil {
			return err
		}
		b.rep.LineCount = &nl
	case jpegparser.KindApplication:
		id, err := jpegparser.ParseApplicationID(b.data, s.Offset)
		if err != nil {
			return err
		}
		b.rep.Applications = append(b.rep.Applications, AppInfo{Marker: s.Marker.String(), Offset: s.Offset, ID: id})
	case jpegparser.KindComment:
		c, err := jpegparser.ParseComment(b.data, s.Offset)
		if err != nil {
			return err
		}
		b.rep.Comments = append(b.rep.Comments, string(c))
	}
	return nil
}

func (b *builder) finish() {
	for id, qt := range b.quant {
		if !qt.Valid {
			continue
		}
		vals := qt.Values
		b.rep.QuantTables = append(b.rep.QuantTables, QuantInfo{
			ID:        id,
			Precision: int(qt.Precision),
			Values:    vals[:],
		})
	}
	for id := 0; id < jpegparser.MaxScanComponents; id++ {
		if ht := b.huffman.DC(id); ht.Valid {
			b.rep.HuffmanTables = append(b.rep.HuffmanTables, huffmanInfo("DC", id, ht))
		}
	}
	for id := 0; id < jpegparser.MaxScanComponents; id++ {
		if ht := b.huffman.AC(id); ht.Valid {
			b.rep.HuffmanTables = append(b.rep.HuffmanTables, huffmanInfo("AC", id, ht))
		}
	}
}

func huffmanInfo(class string, id int, ht *jpegparser.HuffmanTable) HuffmanInfo {
	info := HuffmanInfo{Class: class, ID: id}
	for _, n := range ht.Bits {
		info.Bits = append(info.Bits, int(n))
	}
	for _, v := range ht.Symbols() {
		info.Symbols = append(info.Symbols, int(v))
	}
	return info
}

// Height is the frame height, taken from DNL when the frame deferred it.
func (r *Report) Height() int {
	if r.Frame == nil {
		return 0
	}
	if r.Frame.Height == 0 && r.LineCount != nil {
		return int(*r.LineCount)
	}
	return int(r.Frame.Height)
}
