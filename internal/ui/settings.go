package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	"github.com/piwi3910/PillBoard/internal/gcode"
	"github.com/piwi3910/PillBoard/internal/model"
	"github.com/piwi3910/PillBoard/internal/project"
)

// floatEntry creates an entry bound to val. Unparseable text leaves val unchanged.
func floatEntry(val *float64) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(strconv.FormatFloat(*val, 'f', -1, 64))
	e.OnChanged = func(text string) {
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			*val = v
		}
	}
	return e
}

func intEntry(val *int) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(strconv.Itoa(*val))
	e.OnChanged = func(text string) {
		if v, err := strconv.Atoi(text); err == nil {
			*val = v
		}
	}
	return e
}

// showSettingsDialog displays the application settings editor.
func (a *App) showSettingsDialog() {
	cfg := a.config
	cut := &cfg.Cut

	profileSelect := widget.NewSelect(model.GetProfileNames(), func(selected string) {
		cut.GCodeProfile = selected
	})
	profileSelect.SetSelected(cut.GCodeProfile)

	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	levelSelect := widget.NewSelect([]string{"debug", "info", "warn", "error"}, func(selected string) {
		cfg.LogLevel = selected
	})
	levelSelect.SetSelected(cfg.LogLevel)

	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("Log Level", levelSelect),
		widget.NewFormItem("Board Width (px)", floatEntry(&cfg.BoardWidth)),
		widget.NewFormItem("Board Height (px)", floatEntry(&cfg.BoardHeight)),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Scale (mm per px)", floatEntry(&cut.Scale)),
		widget.NewFormItem("Tool Diameter (mm)", floatEntry(&cut.ToolDiameter)),
		widget.NewFormItem("Feed Rate (mm/min)", floatEntry(&cut.FeedRate)),
		widget.NewFormItem("Plunge Rate (mm/min)", floatEntry(&cut.PlungeRate)),
		widget.NewFormItem("Spindle Speed (RPM)", intEntry(&cut.SpindleSpeed)),
		widget.NewFormItem("Safe Z (mm)", floatEntry(&cut.SafeZ)),
		widget.NewFormItem("Material Thickness (mm)", floatEntry(&cut.CutDepth)),
		widget.NewFormItem("Pass Depth (mm)", floatEntry(&cut.PassDepth)),
		widget.NewFormItem("GCode Profile", profileSelect),
	}

	d := dialog.NewForm("Settings", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			if err := gcode.New(cfg.Cut).Validate(); err != nil {
				dialog.ShowError(fmt.Errorf("invalid cut settings: %w", err), a.window)
				return
			}
			a.setConfig(cfg)
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
				return
			}
			a.logger.Info("settings saved", "path", a.configPath)
		},
		a.window,
	)
	d.Resize(fyne.NewSize(500, 560))
	d.Show()
}

// setConfig replaces the config and applies what can change at runtime.
// The board size only affects the window's minimum size from the next start.
func (a *App) setConfig(cfg model.AppConfig) {
	a.config = cfg
	a.applyTheme()
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		a.logger.SetLevel(level)
	}
	a.SetupMenus()
}

// showImportExportDialog moves settings to and from a standalone file.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export Settings...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			path := writer.URI().Path()
			writer.Close()
			if err := project.ExportSettings(path, a.config); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			dialog.ShowInformation("Export Complete",
				fmt.Sprintf("Settings exported to:\n%s", path), a.window)
		}, a.window)
		d.SetFileName("pillboard-settings.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import Settings...", func() {
		dialog.ShowConfirm("Import Settings",
			"Importing will replace your current settings.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					path := reader.URI().Path()
					reader.Close()
					backup, err := project.ImportSettings(path)
					if err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					a.setConfig(backup.Config)
					if err := a.saveConfig(); err != nil {
						dialog.ShowError(fmt.Errorf("failed to save imported settings: %w", err), a.window)
						return
					}
					a.logger.Info("settings imported", "path", path, "created_at", backup.CreatedAt)
					dialog.ShowInformation("Import Complete",
						fmt.Sprintf("Settings imported from backup created at %s.", backup.CreatedAt), a.window)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export your settings to a file, or import them from a previous export."),
		widget.NewSeparator(),
		exportBtn,
		importBtn,
	)

	d := dialog.NewCustom("Import / Export Settings", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 220))
	d.Show()
}
