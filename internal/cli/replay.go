package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/piwi3910/PillBoard/internal/export"
	"github.com/piwi3910/PillBoard/internal/gcode"
	"github.com/piwi3910/PillBoard/internal/script"
)

type replayOptions struct {
	formats []string
	outDir  string
	session string
}

func newReplayCmd(root *rootOptions) *cobra.Command {
	opts := &replayOptions{}

	cmd := &cobra.Command{
		Use:   "replay <script.toml>",
		Short: "Replay a gesture script and export the resulting board",
		Long: `Replay runs the gestures of a TOML script against an empty board, prints
the resulting pills and writes one file per requested format.

The board size comes from the script, falling back to --width/--height and
then the config file.`,
		Example: `  pillboard replay board.toml
  pillboard replay board.toml -f pdf,dxf,gcode -o out/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd, root, opts, args[0])
		},
	}

	cmd.Flags().StringSliceVarP(&opts.formats, "format", "f", []string{string(export.FormatPDF)},
		fmt.Sprintf("export formats %v; pass an empty value to only print the board", export.Formats()))
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", ".", "output directory")
	cmd.Flags().StringVar(&opts.session, "session", "", "session id used in file names (default random)")

	return cmd
}

func runReplay(cmd *cobra.Command, root *rootOptions, opts *replayOptions, path string) error {
	logger := loggerFromContext(cmd.Context())

	formats := make([]export.Format, 0, len(opts.formats))
	for _, s := range opts.formats {
		if s == "" {
			continue
		}
		f, err := export.ParseFormat(s)
		if err != nil {
			return err
		}
		formats = append(formats, f)
	}

	cfg, err := root.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	s, err := script.Load(path)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	e := s.NewEngine(cfg.Board())
	results, err := script.Replay(e, s, logger)
	if err != nil {
		return fmt.Errorf("replay %s: %w", path, err)
	}
	prog.done(fmt.Sprintf("Replayed %d gestures", len(results)))

	doc := export.NewDocument(e.Board(), e.Pills(), cfg.Cut)
	if opts.session != "" {
		doc.Session = opts.session
	}
	printBoard(cmd.OutOrStdout(), doc)

	if len(doc.Pills) == 0 {
		if len(formats) > 0 {
			logger.Warn("board is empty, nothing exported")
		}
		return nil
	}
	if len(formats) == 0 {
		return nil
	}

	if err := os.MkdirAll(opts.outDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	for _, f := range formats {
		if f == export.FormatGCode {
			for _, w := range gcode.FormatClearanceWarnings(gcode.CheckClearance(doc.Board, doc.Pills, doc.Cut)) {
				logger.Warn(w)
			}
		}
		out := filepath.Join(opts.outDir, f.DefaultFileName(doc))
		if err := export.Export(f, out, doc); err != nil {
			return err
		}
		logger.Info("exported", "format", f, "path", out)
	}
	return nil
}

// printBoard writes one line per pill, in stacking order.
func printBoard(w io.Writer, doc export.Document) {
	stats := doc.Stats()
	fmt.Fprintf(w, "Board %gx%g, %d pills, %.1f%% covered\n",
		doc.Board.Width, doc.Board.Height, stats.Count, stats.Coverage())
	for _, p := range doc.Pills {
		fmt.Fprintf(w, "#%-4d %-22s corners=%-12s %s\n", p.ID, p.Rect, p.Corners, p.Color)
	}
}
