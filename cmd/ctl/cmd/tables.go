package cmd

import (
	"context"
	"fmt"

	"github.com/jpfielding/jpegparser.go/pkg/report"
	"github.com/spf13/cobra"
)

// NewTablesCmd prints the standard tables the parser falls back to
func NewTablesCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Print the standard quantization and Huffman tables",
		Long:  "Prints the Annex K example tables that are assumed when a stream, such as Motion JPEG, carries none.",
		RunE: func(cmd *cobra.Command, args []string) error {
			d := report.StandardTables()
			w := cmd.OutOrStdout()
			switch format, _ := cmd.Flags().GetString("format"); format {
			case "json":
				return writeJSON(w, d)
			default:
				fmt.Fprintln(w, "=== Quantization Tables ===")
				report.WriteQuantTables(w, d.QuantTables)
				fmt.Fprintln(w, "\n=== Huffman Tables ===")
				report.WriteHuffmanTables(w, d.HuffmanTables)
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringP("format", "f", "text", "output format (text|json)")
	return cmd
}
