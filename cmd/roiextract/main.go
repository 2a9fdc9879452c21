// roiextract runs the extraction pipeline without the UI: decode an image,
// load a ROI definition file, and write the per-pixel CSV.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"roi-extractor/internal/calibrate"
	"roi-extractor/internal/extract"
	"roi-extractor/internal/raster"
	"roi-extractor/internal/roi"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	imagePath := flag.String("image", "", "image file to decode (png, jpeg, tiff)")
	roisPath := flag.String("rois", "", "ROI definition JSON")
	outPath := flag.String("out", "", "output CSV path (default: <image>.csv)")
	wbFlag := flag.String("wb", "", "white balance multipliers as r,g,b (overrides the ROI file)")
	flag.Parse()

	if *imagePath == "" || *roisPath == "" {
		fmt.Fprintln(os.Stderr, "usage: roiextract -image <file> -rois <file.json> [-out <file.csv>] [-wb r,g,b]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	out := *outPath
	if out == "" {
		ext := filepath.Ext(*imagePath)
		out = (*imagePath)[:len(*imagePath)-len(ext)] + ".csv"
	}

	collection, err := roi.Load(*roisPath)
	if err != nil {
		log.Fatalf("Failed to load ROIs: %v", err)
	}
	if collection.SourceMismatch(filepath.Base(*imagePath)) {
		log.Printf("Warning: ROIs were saved for %q, processing %q anyway",
			collection.FileName, filepath.Base(*imagePath))
	}

	wb := raster.Neutral()
	switch {
	case *wbFlag != "":
		wb, err = calibrate.ParseMultipliers(*wbFlag)
		if err != nil {
			log.Fatalf("Invalid -wb value: %v", err)
		}
	case collection.WhiteBalance != nil:
		wb = *collection.WhiteBalance
	}

	r, err := raster.Load(*imagePath, wb)
	if err != nil {
		log.Fatalf("Failed to decode image: %v", err)
	}
	log.Printf("Decoded %s: %dx%d, white balance R %.4f G %.4f B %.4f",
		filepath.Base(*imagePath), r.Width, r.Height, wb.R, wb.G, wb.B)

	// Records carry the open image's name, not the name stored in the file.
	collection.FileName = filepath.Base(*imagePath)

	res := extract.ExtractAll(r, collection)
	for _, w := range res.Warnings {
		log.Printf("Warning: %s", w)
	}

	if err := extract.WriteCSVFile(out, res.Records); err != nil {
		log.Fatalf("Failed to write CSV: %v", err)
	}

	total := 0
	fmt.Printf("%-24s %10s\n", "ROI", "pixels")
	for _, s := range res.Summaries {
		fmt.Printf("%-24s %10d\n", s.Label, s.PixelCount)
		total += s.PixelCount
	}
	fmt.Printf("%-24s %10d\n", "total", total)
	fmt.Printf("Wrote %d records to %s\n", len(res.Records), out)
}
