package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	log "github.com/sirupsen/logrus"

	"github.com/piwi3910/WireCut/internal/engine"
	"github.com/piwi3910/WireCut/internal/export"
	"github.com/piwi3910/WireCut/internal/gcode"
	"github.com/piwi3910/WireCut/internal/importer"
	"github.com/piwi3910/WireCut/internal/model"
	"github.com/piwi3910/WireCut/internal/project"
	"github.com/piwi3910/WireCut/internal/ui/widgets"
)

// App holds all application state and UI references.
type App struct {
	app          fyne.App
	window       fyne.Window
	theme        *WireCutTheme
	configPath   string
	profilesPath string
	config       model.AppConfig
	profiles     []model.GCodeProfile // custom profiles only
	job          model.Job
	result       *model.SimulationResult
	history      *History
	log          *log.Entry

	// UI references for dynamic updates
	tabs           *container.AppTabs
	form           *jobForm
	stackView      *widgets.StackCanvas
	progress       *widget.ProgressBar
	summaryLabel   *widget.Label
	resultTable    *widget.Table
	failedOnly     bool
	visible        []model.PlateResult
	profileSelect  *widget.Select
	feedEntry      *widget.Entry
	gcodeContainer *fyne.Container

	stopSweep context.CancelFunc
}

// NewApp loads the config and custom profiles and prepares a fresh job.
// Unreadable files are logged and replaced by defaults.
func NewApp(application fyne.App, window fyne.Window, configPath, profilesPath string) *App {
	a := &App{
		app:          application,
		window:       window,
		configPath:   configPath,
		profilesPath: profilesPath,
		history:      NewHistory(),
		log:          log.WithField("component", "ui"),
	}

	cfg, err := project.LoadAppConfig(configPath)
	if err != nil {
		a.log.WithError(err).Warn("using default settings")
		cfg = model.DefaultAppConfig()
	}
	a.config = cfg

	profiles, err := project.LoadCustomProfiles(profilesPath)
	if err != nil {
		a.log.WithError(err).Warn("ignoring custom profiles")
	}
	a.profiles = profiles

	a.job = a.freshJob()
	a.theme = NewWireCutTheme(cfg.Theme)
	application.Settings().SetTheme(a.theme)
	return a
}

func (a *App) freshJob() model.Job {
	job := model.NewJob("Untitled")
	a.config.ApplyToJob(&job)
	return job
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	var exportItems []*fyne.MenuItem
	for _, f := range export.Formats {
		exportItems = append(exportItems, fyne.NewMenuItem(f.Label+"...", func() {
			a.exportResult(f)
		}))
	}
	exportMenu := fyne.NewMenuItem("Export Results", nil)
	exportMenu.ChildMenu = fyne.NewMenu("", exportItems...)

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Job", a.newJob),
		fyne.NewMenuItem("Open Job...", a.openJob),
		fyne.NewMenuItem("Save Job...", a.saveJob),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Run Batch from CSV/Excel...", a.importBatch),
		fyne.NewMenuItemSeparator(),
		exportMenu,
		fyne.NewMenuItem("Export G-code...", a.exportGCode),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Backup / Restore...", a.showImportExportDialog),
		fyne.NewMenuItem("Settings...", a.showSettingsDialog),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", a.undo),
		fyne.NewMenuItem("Redo", a.redo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Use Job as Defaults", a.saveJobAsDefaults),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Run Simulation", func() {
			a.runSimulation()
			a.tabs.SelectIndex(1)
		}),
		fyne.NewMenuItem("Animate Sweep", func() {
			a.tabs.SelectIndex(2)
			a.animateSweep()
		}),
		fyne.NewMenuItem("Compare Scenarios...", a.showCompareDialog),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("G-code Profiles...", a.showProfileManager),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, toolsMenu, helpMenu))
}

// saveJobAsDefaults makes the current job parameters the starting point
// of new jobs.
func (a *App) saveJobAsDefaults() {
	if !a.applyForm("Use Job as Defaults") {
		return
	}
	a.config = defaultsFromJob(a.config, a.job)
	if err := a.saveConfig(); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
	}
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About WireCut",
		"WireCut - Wire Cut Plate Stack Simulator\n\n"+
			"Simulates a straight cutting wire passing through a row of\n"+
			"plates and checks every plate against a height window.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.tabs = container.NewAppTabs(
		container.NewTabItem("Job", a.buildJobPanel()),
		container.NewTabItem("Results", a.buildResultsPanel()),
		container.NewTabItem("Stack View", a.buildStackPanel()),
		container.NewTabItem("G-code", a.buildGCodePanel()),
	)
	a.tabs.SetTabLocation(container.TabLocationTop)

	a.form.load(a.job)
	a.stackView.SetJob(a.job)
	return a.tabs
}

// ─── Job Panel ─────────────────────────────────────────────

func (a *App) buildJobPanel() fyne.CanvasObject {
	a.form = newJobForm(model.DefaultLimits())

	toolbar := container.NewHBox(
		widget.NewLabelWithStyle("Job Parameters", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		layout.NewSpacer(),
		newIconButtonWithTooltip(theme.ContentUndoIcon(), "Undo", a.undo),
		newIconButtonWithTooltip(theme.ContentRedoIcon(), "Redo", a.redo),
		newIconButtonWithTooltip(theme.DocumentSaveIcon(), "Save job", a.saveJob),
		newIconButtonWithTooltip(theme.MediaPlayIcon(), "Animate sweep", func() {
			a.tabs.SelectIndex(2)
			a.animateSweep()
		}),
	)

	runBtn := widget.NewButtonWithIcon("Run Simulation", theme.ConfirmIcon(), func() {
		if a.runSimulation() {
			a.tabs.SelectIndex(1)
		}
	})
	runBtn.Importance = widget.HighImportance

	return container.NewBorder(
		toolbar,
		container.NewVBox(a.form.warnings, container.NewHBox(layout.NewSpacer(), runBtn)),
		nil, nil,
		container.NewVScroll(widget.NewForm(a.form.items()...)),
	)
}

// applyForm reads the form into the current job, recording the previous
// job for undo when anything changed.
func (a *App) applyForm(label string) bool {
	job, err := a.form.read(a.job)
	if err != nil {
		dialog.ShowError(err, a.window)
		return false
	}
	if job != a.job {
		a.history.Push(MakeSnapshot(a.job, label))
		a.job = job
	}
	a.form.showWarnings(job)
	return true
}

// setJob replaces the current job and clears the results.
func (a *App) setJob(job model.Job, label string) {
	a.stopAnimation()
	a.history.Push(MakeSnapshot(a.job, label))
	a.job = job
	a.form.load(job)
	a.result = nil
	a.refreshResults()
	a.stackView.SetJob(job)
}

func (a *App) undo() {
	s, ok := a.history.Undo(MakeSnapshot(a.job, "current"))
	if !ok {
		return
	}
	a.restore(s.Job)
}

func (a *App) redo() {
	s, ok := a.history.Redo(MakeSnapshot(a.job, "current"))
	if !ok {
		return
	}
	a.restore(s.Job)
}

func (a *App) restore(job model.Job) {
	a.stopAnimation()
	a.job = job
	a.form.load(job)
	a.result = nil
	a.refreshResults()
	a.stackView.SetJob(job)
}

// ─── Results Panel ─────────────────────────────────────────

var resultColumns = []string{"Plate #", "Final Height (in)", "Leading Edge (in)", "Trailing Edge (in)", "Status"}

func (a *App) buildResultsPanel() fyne.CanvasObject {
	a.summaryLabel = widget.NewLabel("No results yet. Set the job parameters and click Run Simulation.")
	a.summaryLabel.Wrapping = fyne.TextWrapWord

	a.resultTable = widget.NewTable(
		func() (int, int) { return len(a.visible) + 1, len(resultColumns) },
		func() fyne.CanvasObject { return widget.NewLabel("Trailing Edge (in)") },
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			label.TextStyle = fyne.TextStyle{Bold: id.Row == 0}
			label.Importance = widget.MediumImportance
			if id.Row == 0 {
				label.SetText(resultColumns[id.Col])
				return
			}
			p := a.visible[id.Row-1]
			if !p.Passed {
				label.Importance = widget.DangerImportance
			}
			label.SetText(plateCell(p, id.Col))
		},
	)
	for i := range resultColumns {
		a.resultTable.SetColumnWidth(i, 140)
	}

	failedOnly := widget.NewCheck("Show failing plates only", func(b bool) {
		a.failedOnly = b
		a.refreshResults()
	})

	return container.NewBorder(
		container.NewVBox(a.summaryLabel, failedOnly, widget.NewSeparator()),
		nil, nil, nil,
		a.resultTable,
	)
}

func plateCell(p model.PlateResult, col int) string {
	switch col {
	case 0:
		return strconv.Itoa(p.Number())
	case 1:
		return fmt.Sprintf("%.4f", p.FinalHeight)
	case 2:
		return fmt.Sprintf("%.4f", p.LeadingEdge)
	case 3:
		return fmt.Sprintf("%.4f", p.TrailingEdge)
	default:
		return p.Status()
	}
}

// summaryText describes a run in one paragraph.
func summaryText(r model.SimulationResult) string {
	s := r.Summary
	text := fmt.Sprintf(
		"Run %s: %d plates, %d passed, %d failed (%.1f%% pass rate). Heights %.4f - %.4f in, mean %.4f in. Window %.4f - %.4f in.",
		r.ID, s.Count, s.Passed, s.Failed, s.PassRate(), s.MinHeight, s.MaxHeight, s.MeanHeight,
		r.Tolerance.MinHeight, r.Tolerance.MaxHeight,
	)
	if s.Failed > 0 {
		nums := make([]string, 0, len(s.FailingIndices))
		for _, i := range s.FailingIndices {
			nums = append(nums, strconv.Itoa(i+1))
		}
		text += "\nFailing plates: " + strings.Join(nums, ", ")
	}
	return text
}

func (a *App) refreshResults() {
	a.visible = nil
	if a.result == nil {
		a.summaryLabel.SetText("No results yet. Set the job parameters and click Run Simulation.")
		a.resultTable.Refresh()
		return
	}
	for _, p := range a.result.Plates {
		if a.failedOnly && p.Passed {
			continue
		}
		a.visible = append(a.visible, p)
	}
	a.summaryLabel.SetText(summaryText(*a.result))
	a.resultTable.Refresh()
}

// runSimulation evaluates the current form and shows the result.
func (a *App) runSimulation() bool {
	if !a.applyForm("Run Simulation") {
		return false
	}
	a.stopAnimation()
	result, err := engine.Run(a.job)
	if err != nil {
		dialog.ShowError(err, a.window)
		return false
	}
	a.showResult(result)
	return true
}

func (a *App) showResult(result model.SimulationResult) {
	a.result = &result
	a.refreshResults()
	a.stackView.SetResult(result)
	a.progress.SetValue(1)
	a.log.WithFields(log.Fields{
		"job":    result.ID,
		"plates": result.Summary.Count,
		"failed": result.Summary.Failed,
	}).Info("simulation complete")
}

// ─── Stack View Panel ──────────────────────────────────────

func (a *App) buildStackPanel() fyne.CanvasObject {
	a.stackView = widgets.NewStackCanvas(900, 360)
	a.progress = widget.NewProgressBar()

	animateBtn := widget.NewButtonWithIcon("Animate Sweep", theme.MediaPlayIcon(), a.animateSweep)
	stopBtn := widget.NewButtonWithIcon("Stop", theme.MediaStopIcon(), a.stopAnimation)

	return container.NewBorder(
		container.NewHBox(animateBtn, stopBtn, layout.NewSpacer()),
		a.progress,
		nil, nil,
		container.NewScroll(a.stackView),
	)
}

// animateSweep plays the sweep of the current job on the stack view and
// shows the final result when the wire has passed through.
func (a *App) animateSweep() {
	if !a.applyForm("Animate Sweep") {
		return
	}
	a.stopAnimation()

	job := a.job
	sweep, err := engine.RunSweep(job)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	result, err := engine.Run(job)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.stopSweep = cancel
	a.stackView.SetJob(job)
	a.progress.SetValue(0)

	delay := time.Duration(a.config.FrameDelayMillis) * time.Millisecond
	if delay <= 0 {
		delay = time.Millisecond
	}

	go func() {
		ticker := time.NewTicker(delay)
		defer ticker.Stop()
		for _, frame := range sweep.All() {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			fyne.Do(func() {
				if ctx.Err() != nil {
					return
				}
				a.stackView.SetFrame(frame)
				a.progress.SetValue(frame.T)
			})
		}
		fyne.Do(func() {
			if ctx.Err() != nil {
				return
			}
			a.showResult(result)
		})
	}()
}

func (a *App) stopAnimation() {
	if a.stopSweep != nil {
		a.stopSweep()
		a.stopSweep = nil
	}
}

// ─── G-code Panel ──────────────────────────────────────────

func (a *App) buildGCodePanel() fyne.CanvasObject {
	a.profileSelect = widget.NewSelect(a.profileNames(), func(selected string) {
		a.config.DefaultGCodeProfile = selected
	})
	a.profileSelect.SetSelected(a.config.DefaultGCodeProfile)

	a.feedEntry = widget.NewEntry()
	a.feedEntry.SetText(formatFloat(a.config.FeedRate))

	a.gcodeContainer = container.NewStack(widget.NewLabel("Click Generate to build the wire path for the current job."))

	generateBtn := widget.NewButtonWithIcon("Generate", theme.ViewRefreshIcon(), a.refreshGCode)
	saveBtn := widget.NewButtonWithIcon("Save...", theme.DocumentSaveIcon(), a.exportGCode)

	settings := container.NewHBox(
		widget.NewLabel("Profile"), a.profileSelect,
		newIconButtonWithTooltip(theme.SettingsIcon(), "Manage profiles", a.showProfileManager),
		widget.NewLabel("Feed (in/min)"), container.NewGridWrap(fyne.NewSize(80, a.feedEntry.MinSize().Height), a.feedEntry),
		generateBtn, saveBtn,
	)

	return container.NewBorder(settings, nil, nil, nil, a.gcodeContainer)
}

// profileNames lists the built-in profiles followed by the custom ones.
func (a *App) profileNames() []string {
	names := model.GetProfileNames()
	for _, p := range a.profiles {
		names = append(names, p.Name)
	}
	return names
}

func (a *App) refreshProfileSelector() {
	if a.profileSelect == nil {
		return
	}
	a.profileSelect.Options = a.profileNames()
	a.profileSelect.Refresh()
}

// generateGCode builds the program for the current job.
func (a *App) generateGCode() (string, error) {
	if !a.applyForm("Generate G-code") {
		return "", fmt.Errorf("job parameters are invalid")
	}
	feed, err := strconv.ParseFloat(strings.TrimSpace(a.feedEntry.Text), 64)
	if err != nil {
		return "", fmt.Errorf("feed rate: %q is not a number", a.feedEntry.Text)
	}
	a.config.FeedRate = feed
	profile := project.ResolveProfile(a.profileSelect.Selected, a.profiles)
	return gcode.NewWithProfile(profile, feed).Generate(a.job)
}

// stackBounds is the side-view rectangle of the uncut stack in the frame
// the wire path is generated for.
func stackBounds(job model.Job) gcode.StackBounds {
	b := gcode.StackBounds{MaxX: job.Stack.StackWidth(), MaxY: job.Stack.PlateHeight}
	if job.Frame == model.FrameSinglePlate {
		b.MaxX = job.Stack.PlateWidth
	}
	return b
}

func (a *App) refreshGCode() {
	code, err := a.generateGCode()
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	text := widget.NewMultiLineEntry()
	text.SetText(code)
	text.TextStyle = fyne.TextStyle{Monospace: true}
	text.SetMinRowsVisible(12)

	a.gcodeContainer.RemoveAll()
	a.gcodeContainer.Add(container.NewVSplit(
		container.NewVScroll(widgets.RenderGCodePreview(code, stackBounds(a.job))),
		text,
	))
	a.gcodeContainer.Refresh()
}

func (a *App) exportGCode() {
	code, err := a.generateGCode()
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.saveFile(a.job.Name+".nc", func(path string) error {
		return gcode.SaveProgram(path, code)
	})
}

// ─── Files ─────────────────────────────────────────────────

// saveFile asks for a destination and runs write on it, recording the
// file among the recent exports.
func (a *App) saveFile(defaultName string, write func(path string) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := write(path); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		project.AddRecentExport(&a.config, path)
		if err := a.saveConfig(); err != nil {
			a.log.WithError(err).Warn("could not record recent export")
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}

func (a *App) exportResult(f export.Format) {
	if a.result == nil {
		dialog.ShowInformation("No results", "Run the simulation before exporting.", a.window)
		return
	}
	result := *a.result
	a.saveFile(f.FileName, func(path string) error {
		return f.Write(path, result)
	})
}

func (a *App) newJob() {
	a.setJob(a.freshJob(), "New Job")
}

func (a *App) openJob() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		job, err := project.LoadJobFile(path, a.freshJob())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.setJob(job, "Open Job")
	}, a.window)
}

func (a *App) saveJob() {
	if !a.applyForm("Save Job") {
		return
	}
	job := a.job
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := project.SaveJobFile(path, job); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
	d.SetFileName(job.Name + ".ini")
	d.Show()
}

// importBatch runs every job of a sheet and lists the outcomes; any row
// can be loaded into the form.
func (a *App) importBatch() {
	if !a.applyForm("Run Batch") {
		return
	}
	base := a.job
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		a.handleImportResult(importer.ImportFile(path, base))
	}, a.window)
}

func (a *App) handleImportResult(imported importer.ImportResult) {
	for _, w := range imported.Warnings {
		a.log.Info(w)
	}
	if len(imported.Errors) > 0 {
		dialog.ShowError(fmt.Errorf("errors encountered during import:\n\n%s", strings.Join(imported.Errors, "\n")), a.window)
	}
	if len(imported.Jobs) == 0 {
		return
	}

	rows := container.NewVBox()
	var d dialog.Dialog
	for _, job := range imported.Jobs {
		status := "invalid"
		if r, err := engine.Run(job); err == nil {
			status = fmt.Sprintf("%d/%d failed, %.4f - %.4f in", r.Summary.Failed, r.Summary.Count, r.Summary.MinHeight, r.Summary.MaxHeight)
		}
		rows.Add(container.NewBorder(nil, nil,
			widget.NewLabelWithStyle(job.Name, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewButton("Load", func() {
				a.setJob(job, "Load Batch Job")
				d.Hide()
				a.tabs.SelectIndex(0)
			}),
			widget.NewLabel(status),
		))
	}

	d = dialog.NewCustom(fmt.Sprintf("Batch: %d jobs", len(imported.Jobs)), "Close", container.NewVScroll(rows), a.window)
	d.Resize(fyne.NewSize(700, 450))
	d.Show()
}

// ─── Compare ───────────────────────────────────────────────

func (a *App) showCompareDialog() {
	if !a.applyForm("Compare") {
		return
	}

	grid := container.NewGridWithColumns(5,
		widget.NewLabelWithStyle("Scenario", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Failed", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Pass Rate", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Min (in)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Max (in)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)
	for _, r := range engine.CompareScenarios(engine.BuildDefaultScenarios(a.job)) {
		if r.Err != nil {
			grid.Add(widget.NewLabel(r.Scenario.Name))
			grid.Add(widget.NewLabel(r.Err.Error()))
			grid.Add(layout.NewSpacer())
			grid.Add(layout.NewSpacer())
			grid.Add(layout.NewSpacer())
			continue
		}
		grid.Add(widget.NewLabel(r.Scenario.Name))
		grid.Add(widget.NewLabel(strconv.Itoa(r.Failed)))
		grid.Add(widget.NewLabel(fmt.Sprintf("%.1f%%", r.PassRate)))
		grid.Add(widget.NewLabel(fmt.Sprintf("%.4f", r.MinHeight)))
		grid.Add(widget.NewLabel(fmt.Sprintf("%.4f", r.MaxHeight)))
	}

	note := "No wire angle passes: even a level wire leaves plates out of tolerance."
	angle, ok, err := engine.MaxPassingAngle(a.job, model.DefaultLimits())
	switch {
	case err != nil:
		note = err.Error()
	case ok:
		note = fmt.Sprintf("All plates pass for wire angles within +/-%.2f degrees.", angle)
	}

	d := dialog.NewCustom("Compare Scenarios", "Close",
		container.NewVBox(grid, widget.NewSeparator(), widget.NewLabel(note)), a.window)
	d.Resize(fyne.NewSize(750, 350))
	d.Show()
}
