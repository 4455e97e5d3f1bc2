package ui

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	"github.com/piwi3910/PillBoard/internal/engine"
	"github.com/piwi3910/PillBoard/internal/export"
	"github.com/piwi3910/PillBoard/internal/gcode"
	"github.com/piwi3910/PillBoard/internal/model"
	"github.com/piwi3910/PillBoard/internal/project"
	"github.com/piwi3910/PillBoard/internal/ui/widgets"
)

// App holds all application state and UI references.
type App struct {
	app        fyne.App
	window     fyne.Window
	config     model.AppConfig
	configPath string
	logger     *log.Logger
	engine     *engine.Engine

	// UI references for dynamic updates
	board  *widgets.BoardCanvas
	status *widget.Label
}

// NewApp creates the application state. The board is mounted once the
// canvas is laid out, so the engine starts with a zero-sized board.
func NewApp(application fyne.App, window fyne.Window, config model.AppConfig, configPath string, logger *log.Logger) *App {
	a := &App{
		app:        application,
		window:     window,
		config:     config,
		configPath: configPath,
		logger:     logger,
		engine:     engine.New(model.Board{}),
	}
	a.engine.OnChange(a.updateStatus)
	a.applyTheme()
	return a
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	exportItems := make([]*fyne.MenuItem, 0, len(export.Formats()))
	for _, f := range export.Formats() {
		f := f
		exportItems = append(exportItems, fyne.NewMenuItem(formatLabel(f)+"...", func() {
			a.exportBoard(f)
		}))
	}
	exportItem := fyne.NewMenuItem("Export", nil)
	exportItem.ChildMenu = fyne.NewMenu("", exportItems...)

	recentItem := fyne.NewMenuItem("Recent Exports", nil)
	recentItem.ChildMenu = fyne.NewMenu("", a.recentExportItems()...)

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Board", a.newBoard),
		fyne.NewMenuItemSeparator(),
		exportItem,
		recentItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Settings...", a.showSettingsDialog),
		fyne.NewMenuItem("Import / Export Settings...", a.showImportExportDialog),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Toolpath Preview...", a.showToolpathPreview),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, helpMenu))
}

func (a *App) recentExportItems() []*fyne.MenuItem {
	if len(a.config.RecentExports) == 0 {
		empty := fyne.NewMenuItem("No recent exports", nil)
		empty.Disabled = true
		return []*fyne.MenuItem{empty}
	}
	items := make([]*fyne.MenuItem, 0, len(a.config.RecentExports))
	for _, path := range a.config.RecentExports {
		path := path
		items = append(items, fyne.NewMenuItem(filepath.Base(path), func() {
			a.openRecent(path)
		}))
	}
	return items
}

func (a *App) openRecent(path string) {
	u, err := url.Parse(storage.NewFileURI(path).String())
	if err == nil {
		err = a.app.OpenURL(u)
	}
	if err != nil {
		a.logger.Warn("could not open export", "path", path, "err", err)
		dialog.ShowError(fmt.Errorf("could not open %s: %w", path, err), a.window)
	}
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About PillBoard",
		"PillBoard: Pill Canvas\n\n"+
			"Drag on the board to draw a pill, drag a pill to move it,\n"+
			"and click inside a pill to split it into pieces.\n\n"+
			"Boards can be exported as PDF, labels, DXF, XLSX and GCode.",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	board := a.config.Board()
	a.board = widgets.NewBoardCanvas(a.engine, float32(board.Width), float32(board.Height))
	a.board.OnResult = a.logResult
	a.status = widget.NewLabel("")
	a.updateStatus(a.engine.Frame())

	toolbar := container.NewHBox(
		newIconButtonWithTooltip(theme.DocumentCreateIcon(), "New board", a.newBoard),
		widget.NewSeparator(),
		newIconButtonWithTooltip(theme.DocumentPrintIcon(), "Export PDF", func() { a.exportBoard(export.FormatPDF) }),
		newIconButtonWithTooltip(theme.FileImageIcon(), "Export DXF", func() { a.exportBoard(export.FormatDXF) }),
		newIconButtonWithTooltip(theme.GridIcon(), "Export spreadsheet", func() { a.exportBoard(export.FormatXLSX) }),
		newIconButtonWithTooltip(theme.DocumentSaveIcon(), "Export GCode", func() { a.exportBoard(export.FormatGCode) }),
		newIconButtonWithTooltip(theme.VisibilityIcon(), "Toolpath preview", a.showToolpathPreview),
		layout.NewSpacer(),
		newIconButtonWithTooltip(theme.SettingsIcon(), "Settings", a.showSettingsDialog),
	)

	return container.NewBorder(toolbar, a.status, nil, nil, a.board)
}

func (a *App) newBoard() {
	if len(a.engine.Pills()) == 0 {
		a.engine.Reset()
		return
	}
	dialog.ShowConfirm("New Board", "Discard every pill on the board?", func(ok bool) {
		if !ok {
			return
		}
		a.engine.Reset()
		a.logger.Info("board cleared")
	}, a.window)
}

func (a *App) logResult(res engine.Result) {
	a.logger.Debug("gesture",
		"result", res.Kind,
		"at", fmt.Sprintf("%.0f,%.0f", res.At.X, res.At.Y),
		"created", len(res.Created),
		"removed", len(res.Removed),
		"nudged", len(res.Nudged),
	)
}

func (a *App) updateStatus(f engine.Frame) {
	if a.status == nil {
		return
	}
	a.status.SetText(statusText(f, a.engine.Gesture()))
}

// statusText summarises a frame for the status bar.
func statusText(f engine.Frame, g engine.Gesture) string {
	stats := engine.ComputeStats(f.Pills, f.Board)
	parts := []string{
		fmt.Sprintf("Pills: %d", stats.Count),
		fmt.Sprintf("Coverage: %.1f%%", stats.Coverage()),
		fmt.Sprintf("Rounded corners: %d", stats.RoundedCorners),
	}
	if f.HasCursor {
		parts = append(parts, fmt.Sprintf("Cursor: %.0f, %.0f", f.Cursor.X, f.Cursor.Y))
	}
	parts = append(parts, gestureName(g))
	return strings.Join(parts, " | ")
}

func gestureName(g engine.Gesture) string {
	switch g := g.(type) {
	case engine.Drawing:
		if g.Preview == nil {
			return "Pressing"
		}
		return "Drawing"
	case engine.Dragging:
		if g.Moved {
			return fmt.Sprintf("Dragging #%d", g.ID)
		}
		return fmt.Sprintf("Holding #%d", g.ID)
	default:
		return "Idle"
	}
}

func formatLabel(f export.Format) string {
	switch f {
	case export.FormatPDF:
		return "PDF Report"
	case export.FormatLabels:
		return "Pill Labels"
	case export.FormatDXF:
		return "DXF Drawing"
	case export.FormatXLSX:
		return "Excel Workbook"
	case export.FormatGCode:
		return "GCode"
	default:
		return string(f)
	}
}

func (a *App) document() export.Document {
	return export.NewDocument(a.engine.Board(), a.engine.Pills(), a.config.Cut)
}

// exportBoard asks for a destination and writes the board in format f.
// GCode exports warn first when pills are too close for the tool.
func (a *App) exportBoard(f export.Format) {
	doc := a.document()
	if len(doc.Pills) == 0 {
		dialog.ShowInformation("Nothing to export", "Draw at least one pill first.", a.window)
		return
	}
	if f == export.FormatGCode {
		if err := gcode.New(doc.Cut).Validate(); err != nil {
			dialog.ShowError(fmt.Errorf("invalid cut settings: %w", err), a.window)
			return
		}
		warnings := gcode.FormatClearanceWarnings(gcode.CheckClearance(doc.Board, doc.Pills, doc.Cut))
		if len(warnings) > 0 {
			dialog.ShowConfirm("Clearance Warnings",
				strings.Join(warnings, "\n")+"\n\nExport anyway?",
				func(ok bool) {
					if ok {
						a.saveExport(f, doc)
					}
				}, a.window)
			return
		}
	}
	a.saveExport(f, doc)
}

func (a *App) saveExport(f export.Format, doc export.Document) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := export.Export(f, path, doc); err != nil {
			a.logger.Error("export failed", "format", f, "path", path, "err", err)
			dialog.ShowError(err, a.window)
			return
		}
		a.logger.Info("exported board", "format", f, "path", path, "pills", len(doc.Pills))

		a.config.AddRecentExport(path)
		a.config.ExportDir = filepath.Dir(path)
		if err := a.saveConfig(); err != nil {
			a.logger.Warn("could not save config", "err", err)
		}
		a.SetupMenus()
		dialog.ShowInformation("Export Complete",
			fmt.Sprintf("%s saved to:\n%s", formatLabel(f), path), a.window)
	}, a.window)
	d.SetFileName(f.DefaultFileName(doc))
	if a.config.ExportDir != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(a.config.ExportDir)); err == nil {
			d.SetLocation(lister)
		}
	}
	d.Show()
}

func (a *App) showToolpathPreview() {
	doc := a.document()
	if len(doc.Pills) == 0 {
		dialog.ShowInformation("Nothing to preview", "Draw at least one pill first.", a.window)
		return
	}
	code, err := gcode.New(doc.Cut).Generate(doc.Board, doc.Pills)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	preview := widgets.RenderGCodePreview(doc.Board, doc.Pills, doc.Cut, code)
	d := dialog.NewCustom("Toolpath Preview", "Close", container.NewScroll(preview), a.window)
	d.Resize(fyne.NewSize(760, 540))
	d.Show()
}

func (a *App) applyTheme() {
	a.app.Settings().SetTheme(themeFor(a.config.Theme))
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() error {
	return project.SaveAppConfig(a.configPath, a.config)
}
