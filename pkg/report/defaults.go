package report

import "github.com/jpfielding/jpegparser.go/pkg/jpegparser"

// Defaults holds the standard tables in report form.
type Defaults struct {
	QuantTables   []QuantInfo   `json:"quant_tables"`
	HuffmanTables []HuffmanInfo `json:"huffman_tables"`
}

// StandardTables returns the Annex K tables as the parser supplies them.
func StandardTables() *Defaults {
	b := builder{rep: &Report{}}
	jpegparser.DefaultQuantTables(b.quant[:])
	jpegparser.DefaultHuffmanTables(&b.huffman)
	b.finish()
	return &Defaults{
		QuantTables:   b.rep.QuantTables,
		HuffmanTables: b.rep.HuffmanTables,
	}
}
