// masktest rasterizes a polygon against a given raster size and prints the
// resulting containment mask, for checking boundary behavior on specific
// shapes.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"roi-extractor/pkg/geometry"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	polyFlag := flag.String("polygon", "", "vertices as x,y;x,y;... (at least 3)")
	width := flag.Int("width", 20, "raster width in pixels")
	height := flag.Int("height", 20, "raster height in pixels")
	render := flag.Bool("render", true, "print an ASCII rendition of the mask")
	flag.Parse()

	if *polyFlag == "" {
		fmt.Fprintln(os.Stderr, "usage: masktest -polygon \"0,0;10,0;5,8\" [-width N] [-height N]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	pg, err := parsePolygon(*polyFlag)
	if err != nil {
		log.Fatalf("Invalid -polygon value: %v", err)
	}
	if !pg.Valid() {
		log.Fatalf("Polygon needs at least 3 vertices, got %d", len(pg))
	}

	mask := pg.ContainmentMask(*width, *height)
	bb := pg.BoundingBox()
	c := pg.Centroid()

	fmt.Printf("vertices:     %d\n", len(pg))
	fmt.Printf("bounding box: x=%.2f y=%.2f w=%.2f h=%.2f\n", bb.X, bb.Y, bb.Width, bb.Height)
	fmt.Printf("centroid:     (%.2f, %.2f)\n", c.X, c.Y)
	fmt.Printf("pixels:       %d of %d\n", mask.Count(), *width**height)

	if *render {
		fmt.Println()
		for y := 0; y < *height; y++ {
			var row strings.Builder
			for x := 0; x < *width; x++ {
				if mask.At(x, y) {
					row.WriteByte('#')
				} else {
					row.WriteByte('.')
				}
			}
			fmt.Println(row.String())
		}
	}
}

// parsePolygon parses "x,y;x,y;..." into a polygon.
func parsePolygon(s string) (geometry.Polygon, error) {
	var pg geometry.Polygon
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Split(part, ",")
		if len(fields) != 2 {
			return nil, fmt.Errorf("vertex %q: want x,y", part)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("vertex %q: %w", part, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("vertex %q: %w", part, err)
		}
		pg = append(pg, geometry.NewPoint2D(x, y))
	}
	return pg, nil
}
