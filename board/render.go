package board

import "image/color"

// Render repaints every wire region with the on or off tone of its hue,
// into the resel grid and/or the RGB image. Non-wire regions keep their
// compile-time pixels. Rendering is only output: skipping it never affects
// the simulation.
func (b *Board) Render(updateGrid, updateImage bool) {
	for _, class := range b.pal.WireClasses() {
		onCode, offCode := b.pal.OnVariant(class), b.pal.OffVariant(class)

		for _, w := range b.wiresByClass[class] {
			code := offCode
			if w.State {
				code = onCode
			}
			rgb := b.pal.RGBOf(code)
			pixel := color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}

			for _, p := range b.regions.Region(w.RegionID).Pixels {
				if updateGrid {
					b.reselMap[p.X][p.Y] = code
				}
				if updateImage {
					b.img.SetRGBA(p.X, p.Y, pixel)
				}
			}
		}
	}
}
