// Package dialogs provides application dialogs.
package dialogs

import (
	"fmt"

	"roi-extractor/internal/calibrate"
	"roi-extractor/internal/raster"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// ShowLabelEntry prompts for a ROI label after a polygon is finished.
// The callback receives the entered label; cancelling discards the polygon
// via onCancel.
func ShowLabelEntry(window fyne.Window, onSubmit func(label string), onCancel func()) {
	entry := widget.NewEntry()
	entry.SetPlaceHolder("e.g. leaf_1")

	items := []*widget.FormItem{
		widget.NewFormItem("ROI Label", entry),
	}

	dlg := dialog.NewForm("New ROI", "Add", "Discard", items,
		func(confirmed bool) {
			if !confirmed {
				onCancel()
				return
			}
			onSubmit(entry.Text)
		},
		window)
	dlg.Resize(fyne.NewSize(340, 140))
	dlg.Show()
	window.Canvas().Focus(entry)
}

// ShowManualWhiteBalance prompts for a manual "r,g,b" multiplier triple.
// The triple is normalized against green before being handed to the
// decoder; parse failures re-open the dialog with the error shown.
func ShowManualWhiteBalance(window fyne.Window, current raster.Multipliers, onApply func(raster.Multipliers)) {
	showManualWhiteBalance(window, current, "", onApply)
}

func showManualWhiteBalance(window fyne.Window, current raster.Multipliers, errText string, onApply func(raster.Multipliers)) {
	entry := widget.NewEntry()
	entry.SetText(fmt.Sprintf("%g,%g,%g", current.R, current.G, current.B))

	items := []*widget.FormItem{
		widget.NewFormItem("Multipliers (r,g,b)", entry),
	}
	if errText != "" {
		errLabel := widget.NewLabel(errText)
		errLabel.Importance = widget.DangerImportance
		items = append(items, widget.NewFormItem("", errLabel))
	}

	dlg := dialog.NewForm("Manual White Balance", "Apply", "Cancel", items,
		func(confirmed bool) {
			if !confirmed {
				return
			}
			m, err := calibrate.ParseMultipliers(entry.Text)
			if err != nil {
				showManualWhiteBalance(window, current, err.Error(), onApply)
				return
			}
			onApply(m)
		},
		window)
	dlg.Resize(fyne.NewSize(380, 160))
	dlg.Show()
}
