// RAW ROI Extractor: define polygonal regions of interest on decoded raster
// images and export per-pixel channel values for analysis.
package main

import (
	"flag"
	"log"

	fyneapp "fyne.io/fyne/v2/app"

	"roi-extractor/internal/app"
	"roi-extractor/internal/version"
	"roi-extractor/ui/mainwindow"
	"roi-extractor/ui/prefs"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	roisPath := flag.String("rois", "", "ROI definition JSON to load on startup")
	flag.Parse()

	log.Printf("RAW ROI Extractor %s (%s)", version.Version, version.GitCommit)

	fyneApp := fyneapp.NewWithID("roi-extractor")
	fyneApp.Settings().SetTheme(&app.ExtractorTheme{})

	p := prefs.Load()
	state := app.NewState()
	window := mainwindow.New(fyneApp, state, p)

	if path := flag.Arg(0); path != "" {
		if err := state.LoadImage(path); err != nil {
			log.Printf("Failed to load image %s: %v", path, err)
		} else if *roisPath != "" {
			mismatch, err := state.LoadROIs(*roisPath)
			if err != nil {
				log.Printf("Failed to load ROIs %s: %v", *roisPath, err)
			} else if mismatch {
				log.Printf("Warning: ROIs in %s were saved for %s, not %s",
					*roisPath, state.Collection.FileName, state.FileName)
			}
		}
	}

	window.ShowAndRun()
}
