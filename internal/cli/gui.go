package cli

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	fynetooltip "github.com/dweymouth/fyne-tooltip"

	"github.com/piwi3910/PillBoard/internal/ui"
)

// Window chrome around the board: toolbar, status bar and menu.
const (
	chromeWidth  = 20
	chromeHeight = 90
)

// runGUI opens the drawing window and blocks until it is closed.
func runGUI(ctx context.Context, opts *rootOptions) error {
	logger := loggerFromContext(ctx)
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	application := app.NewWithID("com.piwi3910.pillboard")
	window := application.NewWindow("PillBoard")

	appUI := ui.NewApp(application, window, cfg, opts.configPath, logger)
	appUI.SetupMenus()
	window.SetContent(fynetooltip.AddWindowToolTipLayer(appUI.Build(), window.Canvas()))

	board := cfg.Board()
	window.Resize(fyne.NewSize(float32(board.Width)+chromeWidth, float32(board.Height)+chromeHeight))
	window.CenterOnScreen()

	logger.Debug("opening window", "board", board, "config", opts.configPath)
	window.ShowAndRun()
	return nil
}
