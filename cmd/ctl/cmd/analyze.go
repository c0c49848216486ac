package cmd

import (
	"context"
	"fmt"

	"github.com/jpfielding/jpegparser.go/pkg/report"
	"github.com/jpfielding/jpegparser.go/pkg/util"
	"github.com/spf13/cobra"
)

// NewAnalyzeCmd creates the analyze cobra command
func NewAnalyzeCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [uri]",
		Short: "Analyze JPEG header structure",
		Long:  "Parses and displays the frame, scan, table, restart and application headers of a JPEG file.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uri, err := inputURI(cmd, args)
			if err != nil {
				return err
			}
			insecure, _ := cmd.Flags().GetBool("insecure")
			format, _ := cmd.Flags().GetString("format")

			data, err := util.ReadInput(ctx, uri, insecure)
			if err != nil {
				return err
			}
			rep, err := report.Analyze(ctx, data)
			if err != nil {
				return fmt.Errorf("parse error: %w", err)
			}
			switch format {
			case "json":
				return writeJSON(cmd.OutOrStdout(), rep)
			default:
				rep.WriteText(cmd.OutOrStdout())
			}
			return nil
		},
	}
	inputFlags(cmd)
	return cmd
}
