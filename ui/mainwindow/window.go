// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"image"
	"log"
	"path/filepath"

	"draw-pipe/internal/app"
	"draw-pipe/internal/render"
	"draw-pipe/internal/version"
	"draw-pipe/ui/canvas"
	"draw-pipe/ui/panels"
	"draw-pipe/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app     fyne.App
	state   *app.State
	prefs   *prefs.Prefs
	preview *canvas.Preview

	stagesPanel  *panels.StagesPanel
	libraryPanel *panels.LibraryPanel
	metricsPanel *panels.MetricsPanel

	statusBar *widget.Label

	markersItem *fyne.MenuItem
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, appPrefs *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Draw Pipe")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  appPrefs,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.refreshPreview()
	mw.refreshTitle()

	mw.Resize(fyne.NewSize(mw.prefs.WindowSize(1200, 800)))
	mw.SetOnClosed(mw.savePrefs)

	return mw
}

// savePrefs records the window size and flushes the preference file.
func (mw *MainWindow) savePrefs() {
	size := mw.Canvas().Size()
	mw.prefs.SetWindowSize(size.Width, size.Height)
	if err := mw.prefs.Save(); err != nil {
		log.Printf("save preferences: %v", err)
	}
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.preview = canvas.NewPreview()

	mw.stagesPanel = panels.NewStagesPanel(mw.state)
	mw.stagesPanel.SetWindow(mw.Window)
	mw.libraryPanel = panels.NewLibraryPanel(mw.state)
	mw.libraryPanel.SetWindow(mw.Window)
	mw.metricsPanel = panels.NewMetricsPanel(mw.state)

	tabs := container.NewAppTabs(
		container.NewTabItem("Stages", mw.stagesPanel.Container()),
		container.NewTabItem("Library", mw.libraryPanel.Container()),
		container.NewTabItem("Metrics", mw.metricsPanel.Container()),
	)

	mw.statusBar = widget.NewLabel("Ready")

	// Main layout: side panel | preview area
	split := container.NewHSplit(tabs, mw.preview.Container())
	split.SetOffset(0.3)

	content := container.NewBorder(
		nil,                               // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		split,                             // center
	)

	mw.SetContent(content)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Process", mw.onNewProject),
		fyne.NewMenuItem("Open Project...", mw.onOpenProject),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Project", mw.onSaveProject),
		fyne.NewMenuItem("Save Project As...", mw.onSaveProjectAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Stage Image...", mw.onExportStage),
		fyne.NewMenuItem("Export Process Strip...", mw.onExportProcess),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	mw.markersItem = fyne.NewMenuItem("", mw.onToggleMarkers)
	mw.updateMarkersLabel()

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Full Process", func() { mw.state.SelectStage(-1) }),
		fyne.NewMenuItemSeparator(),
		mw.markersItem,
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventProcessChanged, func(interface{}) {
		mw.refreshPreview()
		mw.updateStatus(fmt.Sprintf("%d stage(s)", mw.state.StageCount()))
	})
	mw.state.On(app.EventStageSelected, func(interface{}) {
		mw.refreshPreview()
	})
	mw.state.On(app.EventViewChanged, func(interface{}) {
		mw.refreshPreview()
		mw.prefs.SetViewSettings(mw.state.View())
		if err := mw.prefs.Save(); err != nil {
			log.Printf("save preferences: %v", err)
		}
	})
	mw.state.On(app.EventProjectLoaded, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.updateStatus("Project loaded: " + path)
		}
		mw.refreshTitle()
	})
	mw.state.On(app.EventProjectSaved, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.updateStatus("Project saved: " + path)
		}
		mw.refreshTitle()
	})
	mw.state.On(app.EventModified, func(interface{}) {
		mw.refreshTitle()
	})
	mw.state.On(app.EventTemplatesChanged, func(interface{}) {
		mw.updateStatus("Template catalog reloaded")
	})
}

// refreshPreview re-renders the preview: the selected stage on its own, or
// the full process strip when nothing is selected.
func (mw *MainWindow) refreshPreview() {
	stages := mw.state.Stages()
	if len(stages) == 0 {
		mw.preview.Clear()
		return
	}

	opts := mw.renderOptions()
	if i := mw.state.Selected(); i >= 0 && i < len(stages) {
		mw.preview.SetImage(render.RenderPipe(stages[i], opts))
		return
	}
	mw.preview.SetImage(render.RenderProcess(stages, opts))
}

func (mw *MainWindow) renderOptions() render.Options {
	view := mw.state.View()
	opts := render.DefaultOptions()
	opts.Size = view.Size
	opts.Padding = view.Padding
	opts.Markers = view.Markers
	return opts
}

// refreshTitle rebuilds the window title from the process name and the
// dirty flag.
func (mw *MainWindow) refreshTitle() {
	title := "Draw Pipe - " + mw.state.ProcessName()
	if mw.state.Modified() {
		title += " *"
	}
	mw.SetTitle(title)
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.LastDir()
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.prefs.SetLastDir(filepath.Dir(filePath))
	if err := mw.prefs.Save(); err != nil {
		log.Printf("save preferences: %v", err)
	}
}

// Menu action handlers

func (mw *MainWindow) onNewProject() {
	mw.state.NewProject()
	mw.updateStatus("New process")
}

func (mw *MainWindow) onOpenProject() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.state.LoadProject(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".pipeproj"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSaveProject() {
	if mw.state.ProjectPath == "" {
		mw.onSaveProjectAs()
		return
	}
	if err := mw.state.SaveProject(mw.state.ProjectPath); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onSaveProjectAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != ".pipeproj" {
			path += ".pipeproj"
		}
		mw.saveLastDir(path)
		if err := mw.state.SaveProject(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFileName("process.pipeproj")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onExportStage() {
	i := mw.state.Selected()
	stage, err := mw.state.Stage(i)
	if err != nil {
		mw.updateStatus("Select a stage to export")
		return
	}
	mw.exportImage(fmt.Sprintf("stage_%02d.png", i+1), render.RenderPipe(stage, mw.renderOptions()))
}

func (mw *MainWindow) onExportProcess() {
	stages := mw.state.Stages()
	if len(stages) == 0 {
		mw.updateStatus("No stages to export")
		return
	}
	mw.exportImage("process.png", render.RenderProcess(stages, mw.renderOptions()))
}

// exportImage prompts for a destination and writes the image there. PNG and
// TIFF are supported, chosen by extension.
func (mw *MainWindow) exportImage(suggested string, img image.Image) {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) == "" {
			path += ".png"
		}
		mw.saveLastDir(path)
		if err := render.WriteImage(path, img); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus("Exported " + path)
	}, mw.Window)
	fd.SetFileName(suggested)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".tiff", ".tif"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onToggleMarkers() {
	view := mw.state.View()
	view.Markers = !view.Markers
	mw.state.SetView(view)
	mw.updateMarkersLabel()
}

func (mw *MainWindow) updateMarkersLabel() {
	if mw.state.View().Markers {
		mw.markersItem.Label = "✓ Landmark Markers"
	} else {
		mw.markersItem.Label = "  Landmark Markers"
	}
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Draw Pipe",
		fmt.Sprintf("Draw Pipe v%s\n\n"+
			"A tube drawing process design tool.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
