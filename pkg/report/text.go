package report

import (
	"fmt"
	"io"
)

// WriteSegments prints one line per segment.
func WriteSegments(w io.Writer, segs []SegmentInfo) {
	for i, s := range segs {
		size := fmt.Sprint(s.Size)
		if s.Size < 0 {
			size = "?"
		}
		fmt.Fprintf(w, "%3d  %-5s %s  %-15s offset=%-8d size=%s\n", i, s.Marker, s.Code, s.Kind, s.Offset, size)
	}
}

// WriteText prints the report for people.
func (r *Report) WriteText(w io.Writer) {
	fmt.Fprintf(w, "ID: %s\n", r.ID)
	fmt.Fprintf(w, "MD5: %s\n", r.MD5)
	fmt.Fprintf(w, "Length: %d bytes\n", r.Length)
	fmt.Fprintf(w, "Result: %s\n\n", r.Result)

	fmt.Fprintln(w, "=== Segments ===")
	WriteSegments(w, r.Segments)

	if r.Frame != nil {
		fmt.Fprintln(w, "\n=== Frame ===")
		fmt.Fprintf(w, "Marker: %s (%s)\n", r.FrameMarker, r.Profile)
		fmt.Fprintf(w, "Size: %dx%d\n", r.Frame.Width, r.Height())
		fmt.Fprintf(w, "Precision: %d bits\n", r.Frame.SamplePrecision)
		for _, c := range r.Frame.Components {
			fmt.Fprintf(w, "Component %d: sampling %dx%d, quant table %d\n",
				c.Identifier, c.HorizontalFactor, c.VerticalFactor, c.QuantTableSelector)
		}
	}

	for i, s := range r.Scans {
		fmt.Fprintf(w, "\n=== Scan %d ===\n", i)
		for _, c := range s.Components {
			fmt.Fprintf(w, "Component %d: DC table %d, AC table %d\n", c.Selector, c.DCSelector, c.ACSelector)
		}
		if s.HasParameters {
			fmt.Fprintf(w, "Ss=%d Se=%d Ah=%d Al=%d\n", s.SpectralStart, s.SpectralEnd, s.ApproxHigh, s.ApproxLow)
		}
	}

	if len(r.QuantTables) > 0 {
		fmt.Fprintln(w, "\n=== Quantization Tables ===")
		WriteQuantTables(w, r.QuantTables)
	}
	if len(r.HuffmanTables) > 0 {
		fmt.Fprintln(w, "\n=== Huffman Tables ===")
		if r.DefaultHuffman {
			fmt.Fprintln(w, "(standard tables assumed, no DHT before the first scan)")
		}
		WriteHuffmanTables(w, r.HuffmanTables)
	}

	if r.RestartInterval != nil {
		fmt.Fprintf(w, "\nRestart interval: %d MCUs\n", *r.RestartInterval)
	}
	if r.LineCount != nil {
		fmt.Fprintf(w, "Line count (DNL): %d\n", *r.LineCount)
	}
	for _, a := range r.Applications {
		fmt.Fprintf(w, "%s at %d: %q\n", a.Marker, a.Offset, a.ID)
	}
	for _, c := range r.Comments {
		fmt.Fprintf(w, "Comment: %q\n", c)
	}

	if len(r.Problems) > 0 {
		fmt.Fprintln(w, "\n=== Problems ===")
		for _, p := range r.Problems {
			fmt.Fprintf(w, "%s at %d: %s (%s)\n", p.Segment.Marker, p.Segment.Offset, p.Error, p.Result)
		}
	}
}

// WriteQuantTables prints each table as an 8x8 block in zigzag order.
func WriteQuantTables(w io.Writer, tables []QuantInfo) {
	for _, q := range tables {
		fmt.Fprintf(w, "Table %d (%d-bit):\n", q.ID, 8<<q.Precision)
		for row := 0; row < 8; row++ {
			fmt.Fprint(w, " ")
			for _, v := range q.Values[row*8 : row*8+8] {
				fmt.Fprintf(w, " %5d", v)
			}
			fmt.Fprintln(w)
		}
	}
}

// WriteHuffmanTables prints the code counts and symbol count of each table.
func WriteHuffmanTables(w io.Writer, tables []HuffmanInfo) {
	for _, h := range tables {
		fmt.Fprintf(w, "%s%d: %d symbols, bits %v\n", h.Class, h.ID, len(h.Symbols), h.Bits)
	}
}
