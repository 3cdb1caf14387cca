package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	fynetooltip "github.com/dweymouth/fyne-tooltip"

	"github.com/piwi3910/WireCut/internal/project"
	"github.com/piwi3910/WireCut/internal/ui"
)

func main() {
	application := app.NewWithID("com.piwi3910.wirecut")
	window := application.NewWindow("WireCut - Plate Stack Simulator")
	window.Resize(fyne.NewSize(1200, 800))

	appUI := ui.NewApp(application, window, project.DefaultConfigPath(), project.DefaultProfilesPath())
	appUI.SetupMenus()
	window.SetContent(fynetooltip.AddWindowToolTipLayer(appUI.Build(), window.Canvas()))
	window.ShowAndRun()
}
