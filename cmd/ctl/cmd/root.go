package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jpfielding/jpegparser.go/pkg/logging"
	"github.com/spf13/cobra"
)

func NewRoot(ctx context.Context, gitsha string) *cobra.Command {
	var logFile io.Closer
	cmd := &cobra.Command{
		Use:   "jpegctl",
		Short: "a CLI to inspect the marker structure of JPEG files",
		Long:  "jpegctl walks the marker segments of a JPEG bitstream and decodes its frame, scan and table headers without decoding pixels.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logLevel, _ := cmd.Flags().GetString("log-level")
			logPath, _ := cmd.Flags().GetString("log-file")
			logJSON, _ := cmd.Flags().GetBool("log-json")

			// Parse log level
			var level slog.Level
			levelErr := level.UnmarshalText([]byte(strings.ToUpper(logLevel)))
			if levelErr != nil {
				level = slog.LevelInfo
			}

			var out io.Writer = os.Stderr
			if logPath != "" {
				w := logging.RotatingWriter(logPath, 10, 3, 28)
				out, logFile = w, w
			}
			slog.SetDefault(logging.Logger(out, logJSON, level))

			if levelErr != nil {
				slog.WarnContext(ctx, "Invalid log level, defaulting to INFO", "level", logLevel, "error", levelErr)
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logFile == nil {
				return
			}
			slog.SetDefault(logging.Logger(os.Stderr, false, slog.LevelInfo))
			if err := logFile.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "closing log file: %v\n", err)
			}
			logFile = nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			printCommandTree(cmd, 0)
		},
	}
	cmd.AddCommand(
		NewVersionCmd(ctx, gitsha),
		NewSegmentsCmd(ctx),
		NewAnalyzeCmd(ctx),
		NewTablesCmd(ctx),
	)
	pf := cmd.PersistentFlags()
	pf.String("log-level", "INFO", "Log level (DEBUG, INFO, WARN, ERROR)")
	pf.String("log-file", "", "write logs to this file, rotated, instead of stderr")
	pf.Bool("log-json", false, "log as JSON")
	return cmd
}

func printCommandTree(cmd *cobra.Command, indent int) {
	fmt.Println(strings.Repeat("\t", indent), cmd.Use+":", cmd.Short)
	for _, subCmd := range cmd.Commands() {
		printCommandTree(subCmd, indent+1)
	}
}

func NewVersionCmd(ctx context.Context, gitsha string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "git sha for this build",
		Long:  "git sha for this build",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), gitsha)
		},
	}
	return cmd
}

// inputFlags adds the flags every reading command shares
func inputFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringP("uri", "u", "", "JPEG URI to read (file path, http(s) URL or - for stdin)")
	pf.Bool("insecure", false, "skip TLS verification for https URIs")
	pf.StringP("format", "f", "text", "output format (text|json)")
}

// inputURI takes the uri flag, or the first argument when the flag is unset
func inputURI(cmd *cobra.Command, args []string) (string, error) {
	uri, _ := cmd.Flags().GetString("uri")
	if uri == "" && len(args) > 0 {
		uri = args[0]
	}
	if uri == "" {
		return "", fmt.Errorf("input is required. Use --uri flag or provide as argument")
	}
	return uri, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
