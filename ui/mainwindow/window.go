// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"log"
	"path/filepath"

	"roi-extractor/internal/app"
	"roi-extractor/internal/raster"
	"roi-extractor/internal/version"
	"roi-extractor/pkg/colorutil"
	"roi-extractor/pkg/geometry"
	"roi-extractor/ui/canvas"
	"roi-extractor/ui/dialogs"
	"roi-extractor/ui/panels"
	"roi-extractor/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	prefs     *prefs.Prefs
	canvas    *canvas.ImageCanvas
	roiPanel  *panels.ROIPanel
	statusBar *widget.Label

	// Vertices of the polygon being drawn, image coordinates.
	pending geometry.Polygon
}

// New creates the main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("RAW ROI Extractor " + version.Version)

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.restoreWindowGeometry()

	win.SetCloseIntercept(func() {
		mw.savePreferences()
		fyneApp.Quit()
	})

	return mw
}

func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewImageCanvas()
	mw.canvas.OnLeftClick(mw.onCanvasLeftClick)
	mw.canvas.OnRightClick(mw.onCanvasRightClick)

	mw.roiPanel = panels.NewROIPanel(mw.state)
	mw.statusBar = widget.NewLabel("Open an image to begin")

	canvasArea := container.NewBorder(
		mw.createToolbar(), // top
		nil, nil, nil,
		mw.canvas.Container(),
	)

	split := container.NewHSplit(mw.roiPanel.Container(), canvasArea)
	split.SetOffset(0.22)

	content := container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar), // bottom
		nil, nil,
		split,
	)
	mw.SetContent(content)
}

func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	newROIBtn := widget.NewButton("New ROI", mw.onNewROI)
	whitePointBtn := widget.NewButton("Pick White Point", mw.onPickWhitePoint)
	exportBtn := widget.NewButton("Process && Export", mw.onExportCSV)

	zoomOutBtn := widget.NewButton("-", mw.canvas.ZoomOut)
	zoomInBtn := widget.NewButton("+", mw.canvas.ZoomIn)
	fitBtn := widget.NewButton("Fit", mw.canvas.FitToView)
	actualBtn := widget.NewButton("1:1", mw.canvas.ActualSize)

	return container.NewHBox(
		newROIBtn,
		whitePointBtn,
		exportBtn,
		widget.NewSeparator(),
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
		fitBtn,
		actualBtn,
	)
}

func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mw.onOpenImage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Load ROIs...", mw.onLoadROIs),
		fyne.NewMenuItem("Save ROIs...", mw.onSaveROIs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Pixel CSV...", mw.onExportCSV),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			mw.savePreferences()
			mw.app.Quit()
		}),
	)

	roiMenu := fyne.NewMenu("ROI",
		fyne.NewMenuItem("New ROI", mw.onNewROI),
		fyne.NewMenuItem("Cancel Drawing", mw.onCancelDrawing),
	)

	wbMenu := fyne.NewMenu("White Balance",
		fyne.NewMenuItem("Pick White Point", mw.onPickWhitePoint),
		fyne.NewMenuItem("Manual Multipliers...", mw.onManualWhiteBalance),
		fyne.NewMenuItem("Reset to Neutral", mw.onResetWhiteBalance),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, roiMenu, wbMenu))
}

func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventImageLoaded, func(data interface{}) {
		mw.pending = nil
		mw.canvas.ClearPending()
		mw.refreshImage()
		mw.refreshOverlays()
		mw.setStatus("Loaded %s (%dx%d)", mw.state.FileName,
			mw.state.Raster.Width, mw.state.Raster.Height)
	})

	mw.state.On(app.EventWhiteBalanceChanged, func(data interface{}) {
		mw.refreshImage()
		m := data.(raster.Multipliers)
		mw.setStatus("White balance applied: R %.3f  G %.3f  B %.3f", m.R, m.G, m.B)
	})

	mw.state.On(app.EventROIAdded, func(data interface{}) {
		mw.refreshOverlays()
	})

	mw.state.On(app.EventROIsLoaded, func(data interface{}) {
		mw.refreshOverlays()
	})

	mw.state.On(app.EventModeChanged, func(data interface{}) {
		mode := data.(app.Mode)
		switch mode {
		case app.ModeDrawingPolygon:
			mw.setStatus("Drawing: left-click to add vertices, right-click to finish")
		case app.ModePickingWhitePoint:
			mw.setStatus("Left-click a neutral gray or white area")
		}
	})
}

// Canvas interaction

func (mw *MainWindow) onCanvasLeftClick(x, y float64) {
	switch mw.state.Mode() {
	case app.ModeDrawingPolygon:
		mw.pending = append(mw.pending, geometry.NewPoint2D(x, y))
		mw.canvas.SetPending(mw.pending)

	case app.ModePickingWhitePoint:
		mw.state.SetMode(app.ModeIdle)
		m, err := mw.state.ApplyWhitePoint(int(x), int(y))
		if err != nil {
			mw.showError(err)
			return
		}
		log.Printf("White point at (%d, %d): multipliers %+v", int(x), int(y), m)
	}
}

func (mw *MainWindow) onCanvasRightClick(x, y float64) {
	if mw.state.Mode() != app.ModeDrawingPolygon {
		return
	}
	if !mw.pending.Valid() {
		mw.setStatus("Need at least 3 vertices, have %d", len(mw.pending))
		return
	}

	mw.state.SetMode(app.ModeAwaitingLabel)
	dialogs.ShowLabelEntry(mw.Window,
		func(label string) {
			mw.state.AddROI(label, mw.pending)
			mw.pending = nil
			mw.canvas.ClearPending()
			mw.state.SetMode(app.ModeIdle)
			mw.setStatus("Added ROI %q (%d total)", label, mw.state.Collection.Len())
		},
		func() {
			mw.pending = nil
			mw.canvas.ClearPending()
			mw.state.SetMode(app.ModeIdle)
			mw.setStatus("ROI discarded")
		})
}

// Actions

func (mw *MainWindow) onNewROI() {
	if mw.state.Raster == nil {
		mw.setStatus("Open an image first")
		return
	}
	if mw.state.Mode() == app.ModeDrawingPolygon {
		return
	}
	mw.pending = nil
	mw.canvas.ClearPending()
	mw.state.SetMode(app.ModeDrawingPolygon)
}

func (mw *MainWindow) onCancelDrawing() {
	mw.pending = nil
	mw.canvas.ClearPending()
	mw.state.SetMode(app.ModeIdle)
	mw.setStatus("Drawing cancelled")
}

func (mw *MainWindow) onPickWhitePoint() {
	if mw.state.Raster == nil {
		mw.setStatus("Open an image first")
		return
	}
	mw.state.SetMode(app.ModePickingWhitePoint)
}

func (mw *MainWindow) onManualWhiteBalance() {
	if mw.state.Raster == nil {
		mw.setStatus("Open an image first")
		return
	}
	dialogs.ShowManualWhiteBalance(mw.Window, mw.state.WhiteBalance,
		func(m raster.Multipliers) {
			if err := mw.state.SetWhiteBalance(m); err != nil {
				mw.showError(err)
			}
		})
}

func (mw *MainWindow) onResetWhiteBalance() {
	if mw.state.Raster == nil {
		return
	}
	if err := mw.state.SetWhiteBalance(raster.Neutral()); err != nil {
		mw.showError(err)
	}
}

func (mw *MainWindow) onOpenImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			mw.showError(err)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		if err := mw.state.LoadImage(path); err != nil {
			mw.showError(err)
			return
		}
		mw.prefs.LastDirectory = filepath.Dir(path)
		mw.prefs.LastImage = path
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(raster.SupportedFormats()))
	fd.Show()
}

func (mw *MainWindow) onLoadROIs() {
	if mw.state.Raster == nil {
		mw.setStatus("Open an image first")
		return
	}
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			mw.showError(err)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		mismatch, err := mw.state.LoadROIs(path)
		if err != nil {
			mw.showError(err)
			return
		}
		if mismatch {
			dialog.ShowInformation("File Mismatch",
				fmt.Sprintf("These ROIs were saved for %q, not the open image %q.",
					mw.state.Collection.FileName, mw.state.FileName),
				mw.Window)
		}
		mw.setStatus("Loaded %d ROIs from %s", mw.state.Collection.Len(), filepath.Base(path))
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	fd.Show()
}

func (mw *MainWindow) onSaveROIs() {
	if mw.state.Collection == nil || mw.state.Collection.Len() == 0 {
		mw.setStatus("No ROIs to save")
		return
	}
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			mw.showError(err)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := mw.state.SaveROIs(path); err != nil {
			mw.showError(err)
			return
		}
		mw.setStatus("ROIs saved to %s", filepath.Base(path))
	}, mw.Window)
}

func (mw *MainWindow) onExportCSV() {
	if mw.state.Collection == nil || mw.state.Collection.Len() == 0 {
		mw.setStatus("No ROIs to process")
		return
	}
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			mw.showError(err)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		res, err := mw.state.ExportCSV(path)
		if err != nil {
			mw.showError(err)
			return
		}

		counts := make([]int, len(res.Summaries))
		total := 0
		for i, s := range res.Summaries {
			counts[i] = s.PixelCount
			total += s.PixelCount
		}
		mw.roiPanel.SetPixelCounts(counts)

		for _, w := range res.Warnings {
			log.Printf("Export warning: %s", w)
		}
		mw.setStatus("Exported %d records (%d pixels, %d ROIs) to %s",
			len(res.Records), total, len(res.Summaries), filepath.Base(path))
	}, mw.Window)
}

// Rendering helpers

func (mw *MainWindow) refreshImage() {
	if mw.state.Raster == nil {
		mw.canvas.SetImage(nil)
		return
	}
	mw.canvas.SetImage(mw.state.Raster.DisplayImage())
}

func (mw *MainWindow) refreshOverlays() {
	c := mw.state.Collection
	if c == nil {
		mw.canvas.SetROIs(nil)
		return
	}
	overlays := make([]canvas.ROIOverlay, 0, c.Len())
	for i, r := range c.ROIs {
		overlays = append(overlays, canvas.ROIOverlay{
			Polygon: r.Polygon,
			Label:   r.Label,
			Color:   colorutil.ROIColor(i),
		})
	}
	mw.canvas.SetROIs(overlays)
}

func (mw *MainWindow) setStatus(format string, args ...interface{}) {
	mw.statusBar.SetText(fmt.Sprintf(format, args...))
}

func (mw *MainWindow) showError(err error) {
	log.Printf("Error: %v", err)
	dialog.ShowError(err, mw.Window)
}

// Preferences

func (mw *MainWindow) restoreWindowGeometry() {
	w, h := mw.prefs.WindowWidth, mw.prefs.WindowHeight
	if w < 600 || h < 400 {
		w, h = 1200, 800
	}
	mw.Resize(fyne.NewSize(float32(w), float32(h)))
}

func (mw *MainWindow) savePreferences() {
	size := mw.Canvas().Size()
	mw.prefs.WindowWidth = float64(size.Width)
	mw.prefs.WindowHeight = float64(size.Height)
	mw.prefs.Zoom = mw.canvas.Zoom()
	if err := mw.prefs.Save(); err != nil {
		log.Printf("Failed to save preferences: %v", err)
	}
}
