// Package util provides small helpers for building circuit images in code.
// Layouts are ASCII art: each string is one pixel row, each character is the
// resel code of the pixel's color, and any character outside the palette
// becomes a black, inert pixel.
package util

import (
	"image"
	"image/color"

	"github.com/resolang/reso/palette"
)

// ImageFromLayout renders rows into an RGBA image using pal's colors.
// rows[y][x] names the pixel at (x, y). Rows may have different lengths;
// the image is as wide as the longest row and short rows are padded black.
func ImageFromLayout(pal *palette.Palette, rows []string) *image.RGBA {
	height := len(rows)
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.RGBA{A: 255}
			if x < len(rows[y]) {
				rgb := pal.RGBOf(palette.Resel(rows[y][x]))
				c.R, c.G, c.B = rgb.R, rgb.G, rgb.B
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// LayoutFromGrid renders a resel grid back into ASCII rows, one character per
// pixel, '.' for empty. Useful when a test wants to diff whole boards.
func LayoutFromGrid(grid [][]palette.Resel) []string {
	width := len(grid)
	if width == 0 {
		return nil
	}
	height := len(grid[0])

	rows := make([]string, height)
	for y := 0; y < height; y++ {
		row := make([]byte, width)
		for x := 0; x < width; x++ {
			if grid[x][y] == palette.Empty {
				row[x] = '.'
			} else {
				row[x] = byte(grid[x][y])
			}
		}
		rows[y] = string(row)
	}
	return rows
}
