package extract

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// csvHeader matches the original export column order.
var csvHeader = []string{"file_name", "roi_label", "channel", "x", "y", "pixel_value"}

// WriteCSV writes records with a header row, one row per (pixel, channel),
// in the order given. Identical inputs produce byte-identical output.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	row := make([]string, len(csvHeader))
	for _, rec := range records {
		row[0] = rec.FileName
		row[1] = rec.ROILabel
		row[2] = rec.Channel
		row[3] = strconv.Itoa(rec.X)
		row[4] = strconv.Itoa(rec.Y)
		row[5] = strconv.FormatUint(uint64(rec.Value), 10)
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes records to the named file.
func WriteCSVFile(path string, records []Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer file.Close()
	return WriteCSV(file, records)
}
