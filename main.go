// Package main provides the entry point for the Draw Pipe dashboard.
package main

import (
	"log"
	"os"
	"time"

	fyneapp "fyne.io/fyne/v2/app"

	"draw-pipe/internal/app"
	"draw-pipe/internal/profile"
	"draw-pipe/internal/version"
	"draw-pipe/ui/mainwindow"
	"draw-pipe/ui/prefs"
)

const appTitle = "Draw Pipe"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s (built %s, commit %s)",
		appTitle, version.Version, version.BuildTime, version.GitCommit)

	appPrefs := prefs.Load()

	dataDir := appPrefs.DataDir()
	if err := profile.SeedDir(dataDir); err != nil {
		log.Printf("Seed templates in %s: %v", dataDir, err)
	}

	fyneApp := fyneapp.NewWithID("io.drawpipe.dashboard")
	fyneApp.Settings().SetTheme(&app.DrawPipeTheme{})

	catalog := profile.NewCatalog(dataDir)
	state := app.NewState(catalog)
	state.SetView(appPrefs.ViewSettings())

	// Reload the library panel when template files change on disk.
	watcher := profile.NewWatcher(catalog, 2*time.Second)
	watcher.OnChange(func() {
		state.Emit(app.EventTemplatesChanged, nil)
	})
	watcher.Start()
	defer watcher.Stop()

	win := mainwindow.New(fyneApp, state, appPrefs)

	if len(os.Args) > 1 {
		projectPath := os.Args[1]
		if err := state.LoadProject(projectPath); err != nil {
			log.Printf("Failed to load project %s: %v", projectPath, err)
		}
	}

	win.ShowAndRun()
}
