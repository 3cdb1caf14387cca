package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/WireCut/internal/model"
	"github.com/piwi3910/WireCut/internal/project"
)

// showSettingsDialog displays the application settings editor.
func (a *App) showSettingsDialog() {
	cfg := a.config

	// Helper to create a float entry bound to a pointer
	floatEntry := func(val *float64) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(formatFloat(*val))
		e.OnChanged = func(text string) {
			if v, err := strconv.ParseFloat(text, 64); err == nil {
				*val = v
			}
		}
		return e
	}

	intEntry := func(val *int) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(strconv.Itoa(*val))
		e.OnChanged = func(text string) {
			if v, err := strconv.Atoi(text); err == nil {
				*val = v
			}
		}
		return e
	}

	selectFor := func(options []string, val *string) *widget.Select {
		s := widget.NewSelect(options, func(selected string) { *val = selected })
		s.SetSelected(*val)
		return s
	}

	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", selectFor([]string{"system", "light", "dark"}, &cfg.Theme)),
		widget.NewFormItem("Animation Frame Delay (ms)", intEntry(&cfg.FrameDelayMillis)),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Default Number of Plates", intEntry(&cfg.DefaultPlateCount)),
		widget.NewFormItem("Default Plate Height (in)", floatEntry(&cfg.DefaultPlateHeight)),
		widget.NewFormItem("Default Plate Width (in)", floatEntry(&cfg.DefaultPlateWidth)),
		widget.NewFormItem("Default Min Height (in)", floatEntry(&cfg.DefaultMinHeight)),
		widget.NewFormItem("Default Max Height (in)", floatEntry(&cfg.DefaultMaxHeight)),
		widget.NewFormItem("Default Offset Side", selectFor(sideOptions, &cfg.DefaultOriginSide)),
		widget.NewFormItem("Default Frame", selectFor(frameOptions, &cfg.DefaultFrame)),
		widget.NewFormItem("Default Strategy", selectFor(strategyOptions, &cfg.DefaultStrategy)),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Default G-code Profile", selectFor(a.profileNames(), &cfg.DefaultGCodeProfile)),
		widget.NewFormItem("Default Feed Rate (in/min)", floatEntry(&cfg.FeedRate)),
	}

	d := dialog.NewForm("Settings", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			a.config = cfg
			a.theme.SetVariantName(cfg.Theme)
			a.app.Settings().SetTheme(a.theme)
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
			} else {
				dialog.ShowInformation("Settings Saved", "Application settings have been saved.", a.window)
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(500, 600))
	d.Show()
}

// showImportExportDialog displays the backup and restore dialog.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			path := writer.URI().Path()
			writer.Close()
			if err := project.ExportAllData(path, a.config, a.profiles); err != nil {
				dialog.ShowError(err, a.window)
			} else {
				dialog.ShowInformation("Export Complete",
					fmt.Sprintf("Settings and %d custom profiles exported to:\n%s", len(a.profiles), path), a.window)
			}
		}, a.window)
		d.SetFileName("wirecut-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		dialog.ShowConfirm("Import Data",
			"Importing data will replace your current settings and custom profiles.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					path := reader.URI().Path()
					reader.Close()
					a.restoreBackup(path)
				}, a.window)
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export the application settings and custom G-code profiles to a backup file,\nor import them from a previously exported backup."),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("Backup / Restore", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 250))
	d.Show()
}

func (a *App) restoreBackup(path string) {
	backup, err := project.ImportAllData(path)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	if err := project.RestoreAllData(backup, a.configPath, a.profilesPath); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save imported data: %w", err), a.window)
		return
	}
	a.config = backup.Config
	a.profiles = backup.Profiles
	a.theme.SetVariantName(a.config.Theme)
	a.app.Settings().SetTheme(a.theme)
	a.refreshProfileSelector()
	dialog.ShowInformation("Import Complete",
		fmt.Sprintf("Data imported successfully from backup created at %s.", backup.CreatedAt), a.window)
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() error {
	return project.SaveAppConfig(a.configPath, a.config)
}

// persistCustomProfiles saves the custom profiles to disk.
func (a *App) persistCustomProfiles(w fyne.Window) {
	if err := project.SaveCustomProfiles(a.profilesPath, a.profiles); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save profiles: %w", err), w)
	}
	a.refreshProfileSelector()
}

// defaultsFromJob returns cfg with its job defaults taken from job.
func defaultsFromJob(cfg model.AppConfig, job model.Job) model.AppConfig {
	cfg.DefaultPlateCount = job.Stack.PlateCount
	cfg.DefaultPlateHeight = job.Stack.PlateHeight
	cfg.DefaultPlateWidth = job.Stack.PlateWidth
	cfg.DefaultMinHeight = job.Tolerance.MinHeight
	cfg.DefaultMaxHeight = job.Tolerance.MaxHeight
	cfg.DefaultOriginSide = job.Wire.OriginSide.String()
	cfg.DefaultFrame = job.Frame.String()
	cfg.DefaultStrategy = job.Strategy.String()
	return cfg
}
