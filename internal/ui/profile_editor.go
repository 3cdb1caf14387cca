package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/WireCut/internal/gcode"
	"github.com/piwi3910/WireCut/internal/model"
	"github.com/piwi3910/WireCut/internal/project"
)

// allProfiles returns the built-in profiles followed by the custom ones.
func (a *App) allProfiles() []model.GCodeProfile {
	all := append([]model.GCodeProfile{}, model.GCodeProfiles...)
	return append(all, a.profiles...)
}

// showProfileManager opens the window where users view, create, edit,
// duplicate, delete, import and export controller profiles.
func (a *App) showProfileManager() {
	w := a.app.NewWindow("G-code Profile Manager")
	w.Resize(fyne.NewSize(700, 500))

	profiles := a.allProfiles()
	selectedIdx := -1
	detailContainer := container.NewVBox(widget.NewLabel("Select a profile to view details."))

	listWidget := widget.NewList(
		func() int {
			return len(profiles)
		},
		func() fyne.CanvasObject {
			return container.NewHBox(
				widget.NewIcon(theme.DocumentIcon()),
				widget.NewLabel("Profile Name"),
				layout.NewSpacer(),
				widget.NewLabel("(built-in)"),
			)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			box := obj.(*fyne.Container)
			p := profiles[id]
			box.Objects[1].(*widget.Label).SetText(p.Name)
			tag := "(custom)"
			if model.IsBuiltInProfile(p.Name) {
				tag = "(built-in)"
			}
			box.Objects[3].(*widget.Label).SetText(tag)
		},
	)

	reload := func() {
		profiles = a.allProfiles()
		selectedIdx = -1
		listWidget.UnselectAll()
		listWidget.Refresh()
		detailContainer.RemoveAll()
		detailContainer.Add(widget.NewLabel("Select a profile to view details."))
		detailContainer.Refresh()
	}

	listWidget.OnSelected = func(id widget.ListItemID) {
		selectedIdx = id
		a.showProfileDetail(detailContainer, profiles[id], w, reload)
	}

	selected := func(action string) (model.GCodeProfile, bool) {
		if selectedIdx < 0 || selectedIdx >= len(profiles) {
			dialog.ShowInformation("No Selection", "Select a profile to "+action+".", w)
			return model.GCodeProfile{}, false
		}
		return profiles[selectedIdx], true
	}

	newBtn := widget.NewButtonWithIcon("New", theme.ContentAddIcon(), func() {
		base := copyProfile(model.GetProfile("Generic"))
		base.Name = ""
		base.Description = ""
		a.showEditProfileDialog(base, "", w, reload)
	})

	duplicateBtn := widget.NewButtonWithIcon("Duplicate", theme.ContentCopyIcon(), func() {
		p, ok := selected("duplicate")
		if !ok {
			return
		}
		dup := copyProfile(p)
		dup.Name = p.Name + " (Copy)"
		dup.Description = "Copy of " + p.Name
		a.showEditProfileDialog(dup, "", w, reload)
	})

	importBtn := widget.NewButtonWithIcon("Import", theme.FolderOpenIcon(), func() {
		a.importProfileDialog(w, reload)
	})

	exportBtn := widget.NewButtonWithIcon("Export", theme.DocumentSaveIcon(), func() {
		if p, ok := selected("export"); ok {
			a.exportProfileDialog(p, w)
		}
	})

	deleteBtn := widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), func() {
		p, ok := selected("delete")
		if !ok {
			return
		}
		if model.IsBuiltInProfile(p.Name) {
			dialog.ShowInformation("Cannot Delete", "Built-in profiles cannot be deleted.", w)
			return
		}
		dialog.ShowConfirm("Delete Profile", fmt.Sprintf("Delete custom profile %q?", p.Name), func(ok bool) {
			if !ok {
				return
			}
			a.profiles, _ = project.RemoveCustomProfile(a.profiles, p.Name)
			a.persistCustomProfiles(w)
			reload()
		}, w)
	})

	listPanel := container.NewBorder(
		widget.NewLabelWithStyle("Profiles", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(newBtn, duplicateBtn, importBtn, exportBtn, deleteBtn),
		nil, nil,
		listWidget,
	)
	detailPanel := container.NewBorder(
		widget.NewLabelWithStyle("Profile Details", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		nil, nil, nil,
		container.NewVScroll(detailContainer),
	)

	split := container.NewHSplit(listPanel, detailPanel)
	split.SetOffset(0.35)
	w.SetContent(split)
	w.Show()
}

// showProfileDetail fills the detail pane with a profile's settings.
func (a *App) showProfileDetail(c *fyne.Container, p model.GCodeProfile, w fyne.Window, onChanged func()) {
	c.RemoveAll()

	bold := func(s string) *widget.Label {
		return widget.NewLabelWithStyle(s, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	}

	if model.IsBuiltInProfile(p.Name) {
		c.Add(widget.NewLabel("Built-in profiles are read-only. Duplicate to customize."))
	} else {
		c.Add(widget.NewButtonWithIcon("Edit Profile", theme.DocumentCreateIcon(), func() {
			a.showEditProfileDialog(p, p.Name, w, onChanged)
		}))
	}

	c.Add(container.NewVBox(
		bold(p.Name),
		widget.NewLabel(p.Description),
		widget.NewSeparator(),
		container.NewGridWithColumns(2,
			bold("Units:"), widget.NewLabel(p.Units),
			bold("Units Code:"), widget.NewLabel(p.UnitsCode),
			bold("Decimal Places:"), widget.NewLabel(strconv.Itoa(p.DecimalPlaces)),
			bold("Feed Format:"), widget.NewLabel(p.FeedFormat),
		),
		widget.NewSeparator(),
		bold("Motion and Wire"),
		container.NewGridWithColumns(2,
			widget.NewLabel("Rapid Move:"), widget.NewLabel(p.RapidMove),
			widget.NewLabel("Feed Move:"), widget.NewLabel(p.FeedMove),
			widget.NewLabel("Wire On:"), widget.NewLabel(p.WireOn),
			widget.NewLabel("Wire Off:"), widget.NewLabel(p.WireOff),
			widget.NewLabel("Dwell:"), widget.NewLabel(p.DwellCode),
		),
		widget.NewSeparator(),
		bold("Comment Style"),
		container.NewGridWithColumns(2,
			widget.NewLabel("Prefix:"), widget.NewLabel(fmt.Sprintf("%q", p.CommentPrefix)),
			widget.NewLabel("Suffix:"), widget.NewLabel(fmt.Sprintf("%q", p.CommentSuffix)),
		),
		widget.NewSeparator(),
		bold("Start Code"),
		widget.NewLabel(strings.Join(p.StartCode, "\n")),
		bold("End Code"),
		widget.NewLabel(strings.Join(p.EndCode, "\n")),
	))
	c.Refresh()
}

// showEditProfileDialog edits p; previous is the custom profile being
// replaced, empty for a new one.
func (a *App) showEditProfileDialog(p model.GCodeProfile, previous string, w fyne.Window, onSaved func()) {
	entry := func(text string) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(text)
		return e
	}
	multi := func(lines []string) *widget.Entry {
		e := widget.NewMultiLineEntry()
		e.SetText(strings.Join(lines, "\n"))
		e.SetMinRowsVisible(4)
		return e
	}

	nameEntry := entry(p.Name)
	nameEntry.SetPlaceHolder("My Wire Saw")
	descEntry := entry(p.Description)
	unitsSelect := widget.NewSelect([]string{"inches", "mm"}, nil)
	unitsSelect.SetSelected(p.Units)
	unitsCodeEntry := entry(p.UnitsCode)
	decimalEntry := entry(strconv.Itoa(p.DecimalPlaces))
	feedFormatEntry := entry(p.FeedFormat)
	rapidEntry := entry(p.RapidMove)
	feedEntry := entry(p.FeedMove)
	wireOnEntry := entry(p.WireOn)
	wireOffEntry := entry(p.WireOff)
	dwellEntry := entry(p.DwellCode)
	commentPrefixEntry := entry(p.CommentPrefix)
	commentSuffixEntry := entry(p.CommentSuffix)
	startCodeEntry := multi(p.StartCode)
	endCodeEntry := multi(p.EndCode)

	collect := func() (model.GCodeProfile, error) {
		decimals, err := strconv.Atoi(strings.TrimSpace(decimalEntry.Text))
		if err != nil || decimals < 0 || decimals > 6 {
			return model.GCodeProfile{}, fmt.Errorf("decimal places must be a number between 0 and 6")
		}
		return model.GCodeProfile{
			Name:          strings.TrimSpace(nameEntry.Text),
			Description:   descEntry.Text,
			Units:         unitsSelect.Selected,
			StartCode:     splitLines(startCodeEntry.Text),
			WireOn:        strings.TrimSpace(wireOnEntry.Text),
			WireOff:       strings.TrimSpace(wireOffEntry.Text),
			RapidMove:     strings.TrimSpace(rapidEntry.Text),
			FeedMove:      strings.TrimSpace(feedEntry.Text),
			EndCode:       splitLines(endCodeEntry.Text),
			DwellCode:     strings.TrimSpace(dwellEntry.Text),
			UnitsCode:     strings.TrimSpace(unitsCodeEntry.Text),
			FeedFormat:    strings.TrimSpace(feedFormatEntry.Text),
			CommentPrefix: commentPrefixEntry.Text,
			CommentSuffix: commentSuffixEntry.Text,
			DecimalPlaces: decimals,
		}, nil
	}

	previewText := widget.NewMultiLineEntry()
	previewText.TextStyle = fyne.TextStyle{Monospace: true}
	previewText.SetMinRowsVisible(12)
	updatePreview := func() {
		profile, err := collect()
		if err != nil {
			previewText.SetText(err.Error())
			return
		}
		previewText.SetText(profilePreview(profile))
	}
	updatePreview()

	tabs := container.NewAppTabs(
		container.NewTabItem("General", container.NewGridWithColumns(2,
			widget.NewLabel("Name"), nameEntry,
			widget.NewLabel("Description"), descEntry,
			widget.NewLabel("Units"), unitsSelect,
			widget.NewLabel("Units Code"), unitsCodeEntry,
			widget.NewLabel("Decimal Places"), decimalEntry,
			widget.NewLabel("Feed Format (e.g. F%.1f)"), feedFormatEntry,
		)),
		container.NewTabItem("Motion / Wire", container.NewGridWithColumns(2,
			widget.NewLabel("Rapid Move Command"), rapidEntry,
			widget.NewLabel("Feed Move Command"), feedEntry,
			widget.NewLabel("Wire On"), wireOnEntry,
			widget.NewLabel("Wire Off"), wireOffEntry,
			widget.NewLabel("Dwell (use %g for seconds)"), dwellEntry,
		)),
		container.NewTabItem("Comments", container.NewGridWithColumns(2,
			widget.NewLabel("Comment Prefix"), commentPrefixEntry,
			widget.NewLabel("Comment Suffix"), commentSuffixEntry,
		)),
		container.NewTabItem("Start/End Code", container.NewVBox(
			widget.NewLabelWithStyle("Start Code (one command per line)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			startCodeEntry,
			widget.NewSeparator(),
			widget.NewLabelWithStyle("End Code ([Clear] is the clearance height)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			endCodeEntry,
		)),
		container.NewTabItem("Preview", container.NewBorder(
			widget.NewButtonWithIcon("Refresh Preview", theme.ViewRefreshIcon(), updatePreview),
			nil, nil, nil,
			previewText,
		)),
	)

	title := "New Profile"
	if previous != "" {
		title = "Edit Profile: " + previous
	}
	editWindow := a.app.NewWindow(title)

	saveBtn := widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), func() {
		profile, err := collect()
		if err != nil {
			dialog.ShowError(err, editWindow)
			return
		}
		updated, err := project.UpsertCustomProfile(a.profiles, profile, previous)
		if err != nil {
			dialog.ShowError(err, editWindow)
			return
		}
		a.profiles = updated
		a.persistCustomProfiles(w)
		onSaved()
		editWindow.Close()
	})
	saveBtn.Importance = widget.HighImportance

	editWindow.SetContent(container.NewBorder(
		nil,
		container.NewHBox(layout.NewSpacer(), saveBtn),
		nil, nil,
		tabs,
	))
	editWindow.Resize(fyne.NewSize(600, 500))
	editWindow.Show()
}

// profilePreview generates the program of a small sample job so a user
// sees the profile's real output.
func profilePreview(p model.GCodeProfile) string {
	job := model.DefaultJob()
	job.Name = "preview"
	job.Stack.PlateCount = 2
	job.Wire.AngleDegrees = 0.5
	job.SweepSteps = 3

	code, err := gcode.NewWithProfile(p, 20).Generate(job)
	if err != nil {
		return err.Error()
	}
	return code
}

// importProfileDialog opens a file dialog to import a profile from JSON.
func (a *App) importProfileDialog(w fyne.Window, onImported func()) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		profile, err := project.ImportProfile(path)
		if err != nil {
			dialog.ShowError(fmt.Errorf("failed to import profile: %w", err), w)
			return
		}
		updated, err := project.UpsertCustomProfile(a.profiles, profile, "")
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		a.profiles = updated
		a.persistCustomProfiles(w)
		onImported()
		dialog.ShowInformation("Import Complete",
			fmt.Sprintf("Profile %q imported successfully.", profile.Name), w)
	}, w)
}

// exportProfileDialog opens a file save dialog to export a profile to JSON.
func (a *App) exportProfileDialog(p model.GCodeProfile, w fyne.Window) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := project.ExportProfile(path, p); err != nil {
			dialog.ShowError(fmt.Errorf("failed to export profile: %w", err), w)
			return
		}
		dialog.ShowInformation("Export Complete",
			fmt.Sprintf("Profile %q exported successfully.", p.Name), w)
	}, w)
	d.SetFileName(strings.ReplaceAll(strings.ToLower(p.Name), " ", "_") + "_profile.json")
	d.Show()
}

// copyProfile returns p with its own code slices.
func copyProfile(p model.GCodeProfile) model.GCodeProfile {
	p.StartCode = append([]string(nil), p.StartCode...)
	p.EndCode = append([]string(nil), p.EndCode...)
	return p
}

// splitLines splits a multiline string into non-empty trimmed lines.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
