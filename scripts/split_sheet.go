// split_sheet cuts a grid image of character portraits into one PNG per
// character under <media>/characters/, the layout the local media mirror serves.
// Usage: go run scripts/split_sheet.go -cols 3 -rows 1 -media media sheet.png hero boss rival
// Names fill the grid left to right, top to bottom; "-" skips a cell.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

func main() {
	code := run()
	if code != 0 {
		os.Exit(code)
	}
}

func run() int {
	cols := flag.Int("cols", 2, "columns in the sheet")
	rows := flag.Int("rows", 2, "rows in the sheet")
	media := flag.String("media", "media", "media mirror root")
	flag.Parse()

	args := flag.Args()
	if len(args) < 2 || *cols < 1 || *rows < 1 {
		fmt.Fprintf(os.Stderr, "usage: go run scripts/split_sheet.go [-cols n] [-rows n] [-media dir] <sheet.png> <characterId>...\n")
		return 1
	}
	names := args[1:]
	if len(names) > *cols**rows {
		fmt.Fprintf(os.Stderr, "%d names for a %dx%d sheet\n", len(names), *cols, *rows)
		return 1
	}

	inPath := filepath.Clean(args[0])
	if strings.Contains(inPath, "..") {
		fmt.Fprintf(os.Stderr, "path must not escape current directory\n")
		return 1
	}
	f, err := os.Open(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open %s: %v\n", inPath, err)
		return 1
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "decode: %v\n", err)
		return 1
	}

	outDir := filepath.Join(*media, "characters")
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir %s: %v\n", outDir, err)
		return 1
	}

	b := img.Bounds()
	cellW, cellH := b.Dx() / *cols, b.Dy() / *rows
	for i, name := range names {
		if name == "-" {
			continue
		}
		if strings.ContainsAny(name, `/\.`) || name == "" {
			fmt.Fprintf(os.Stderr, "invalid character id %q\n", name)
			return 1
		}
		col, row := i%*cols, i / *cols
		r := image.Rect(b.Min.X+col*cellW, b.Min.Y+row*cellH, b.Min.X+(col+1)*cellW, b.Min.Y+(row+1)*cellH)
		if err := writeCrop(img, r, filepath.Join(outDir, name+".png")); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", name, err)
			return 1
		}
		fmt.Println(filepath.Join(outDir, name+".png"))
	}
	return 0
}

func writeCrop(img image.Image, r image.Rectangle, path string) (err error) {
	dst := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			dst.Set(x, y, img.At(r.Min.X+x, r.Min.Y+y))
		}
	}
	out, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}
	defer func() {
		if cErr := out.Close(); cErr != nil && err == nil {
			err = cErr
		}
	}()
	return png.Encode(out, dst)
}
