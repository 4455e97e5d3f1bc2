package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/PillBoard/internal/model"
	"github.com/piwi3910/PillBoard/internal/project"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// rootOptions are the flags shared by every command.
type rootOptions struct {
	verbose    bool
	configPath string
	width      float64
	height     float64
}

// loadConfig reads the config file and applies the board size flags.
func (o *rootOptions) loadConfig() (model.AppConfig, error) {
	cfg, err := project.LoadAppConfig(o.configPath)
	if err != nil {
		return cfg, err
	}
	if o.width > 0 {
		cfg.BoardWidth = o.width
	}
	if o.height > 0 {
		cfg.BoardHeight = o.height
	}
	return cfg, nil
}

// Execute runs the pillboard CLI and returns an error if any command fails.
func Execute() error {
	return newRootCmd(os.Stderr).ExecuteContext(context.Background())
}

func newRootCmd(logOut io.Writer) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "pillboard",
		Short:        "PillBoard draws, drags and splits rounded pills on a board",
		Long:         `PillBoard is a drawing board for pills: drag on the board to draw one, drag a pill to move it and click inside a pill to split it into pieces. Boards export to PDF, labels, DXF, XLSX and GCode.`,
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			level := configLevel(cfg.LogLevel)
			if opts.verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(logOut, level)))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd.Context(), opts)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("pillboard %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&opts.configPath, "config", project.DefaultConfigPath(), "path to the config file")
	root.PersistentFlags().Float64Var(&opts.width, "width", 0, "board width in pixels (overrides the config)")
	root.PersistentFlags().Float64Var(&opts.height, "height", 0, "board height in pixels (overrides the config)")

	root.AddCommand(newReplayCmd(opts))

	return root
}
