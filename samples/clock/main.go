// A two-phase clock: two red wires chained through input/output pairs in a
// ring, so the on state hops from one wire to the other every tick.
package main

import (
	"fmt"
	"image"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/tebeka/atexit"

	"github.com/resolang/reso/api"
	"github.com/resolang/reso/board"
	"github.com/resolang/reso/palette"
	"github.com/resolang/reso/util"
)

var layout = []string{
	"RmMr",
	"r..r",
	"rMmr",
}

func main() {
	pal := palette.Legacy()

	b, err := board.New(util.ImageFromLayout(pal, layout), pal)
	if err != nil {
		fmt.Println("compile failed:", err)
		atexit.Exit(1)
	}

	show := func(tick int) {
		fmt.Printf("tick %d:\n", tick)
		for _, row := range util.LayoutFromGrid(b.ReselMap()) {
			fmt.Println("  ", row)
		}
	}
	show(0)

	engine := sim.NewSerialEngine()
	driver := api.DriverBuilder{}.
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		Build("Driver")
	driver.RegisterBoard(b)

	driver.Simulate(4, true, false, func(tick int, _ *image.RGBA) {
		show(tick)
	})

	if err := driver.Run(); err != nil {
		fmt.Println("simulation failed:", err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
