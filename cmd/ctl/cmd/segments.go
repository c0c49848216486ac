package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jpfielding/jpegparser.go/pkg/jpegparser"
	"github.com/jpfielding/jpegparser.go/pkg/report"
	"github.com/jpfielding/jpegparser.go/pkg/util"
	"github.com/spf13/cobra"
)

// NewSegmentsCmd lists the marker segments of a JPEG
func NewSegmentsCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "segments [uri]",
		Short: "List JPEG marker segments",
		Long:  "Walks the buffer from --offset and prints the marker, position and size of every segment.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uri, err := inputURI(cmd, args)
			if err != nil {
				return err
			}
			insecure, _ := cmd.Flags().GetBool("insecure")
			offset, _ := cmd.Flags().GetInt("offset")
			format, _ := cmd.Flags().GetString("format")

			data, err := util.ReadInput(ctx, uri, insecure)
			if err != nil {
				return err
			}
			segs, err := jpegparser.Parse(data, offset)
			if err != nil && !errors.Is(err, jpegparser.ErrNoScanFound) {
				return fmt.Errorf("parse error: %w", err)
			}
			if err != nil {
				slog.WarnContext(ctx, "no scan found", slog.String("uri", uri), slog.Int("segments", len(segs)))
			}

			infos := report.Describe(segs)
			switch format {
			case "json":
				return writeJSON(cmd.OutOrStdout(), infos)
			default:
				report.WriteSegments(cmd.OutOrStdout(), infos)
			}
			return nil
		},
	}
	inputFlags(cmd)
	cmd.PersistentFlags().Int("offset", 0, "byte offset to start the walk at")
	return cmd
}
