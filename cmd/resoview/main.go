// Command resoview runs a circuit in a window, repainting the board each
// simulation tick. Space pauses and resumes; period single-steps while
// paused.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/resolang/reso/board"
	"github.com/resolang/reso/palette"
)

var (
	scale       = flag.Int("scale", 8, "window pixels per board pixel")
	tps         = flag.Int("tps", 4, "circuit ticks per second")
	legacy      = flag.Bool("legacy", false, "use the legacy red/blue palette")
	startPaused = flag.Bool("paused", false, "start paused")
)

type viewer struct {
	board *board.Board

	frame  int
	paused bool

	prevSpace  bool
	prevPeriod bool
}

// Layout returns the constant resolution of the board, so ebiten scales the
// display when the window size changes.
func (v *viewer) Layout(w, h int) (int, int) {
	return v.board.Size()
}

// Update advances the circuit at the configured tick rate and handles the
// pause and step keys.
func (v *viewer) Update() error {
	space := ebiten.IsKeyPressed(ebiten.KeySpace)
	if space && !v.prevSpace {
		v.paused = !v.paused
	}
	v.prevSpace = space

	period := ebiten.IsKeyPressed(ebiten.KeyPeriod)
	step := period && !v.prevPeriod && v.paused
	v.prevPeriod = period

	interval := ebiten.DefaultTPS / *tps
	if interval < 1 {
		interval = 1
	}

	v.frame++
	if step || (!v.paused && v.frame%interval == 0) {
		v.board.Iterate(false, true)
	}
	return nil
}

// Draw copies the board image to the window.
func (v *viewer) Draw(screen *ebiten.Image) {
	img := v.board.Image()
	w, h := v.board.Size()

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			screen.Set(x, y, img.At(x, y))
		}
	}
}

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: resoview [flags] circuit.png")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if *tps < 1 {
		*tps = 1
	}

	pal := palette.Extended()
	if *legacy {
		pal = palette.Legacy()
	}

	b, err := board.Load(flag.Arg(0), pal)
	if err != nil {
		log.Fatalf("Invalid circuit: %v", err)
	}

	w, h := b.Size()
	ebiten.SetWindowSize(w*(*scale), h*(*scale))
	ebiten.SetWindowTitle("Reso - " + flag.Arg(0))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(&viewer{board: b, paused: *startPaused}); err != nil {
		log.Fatal(err)
	}
}
