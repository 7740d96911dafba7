// Command reso compiles a circuit image and iterates it, saving a numbered
// image per tick.
//
//	reso -s out/frame -n 16 circuit.png
//
// writes out/frame00.png through out/frame16.png, where frame 0 is the
// compiled initial state. With -o only the final frame is written; -record
// streams every frame into a single compressed recording instead of, or in
// addition to, the per-tick files.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/tebeka/atexit"
	"github.com/xfmoulet/qoi"

	"github.com/resolang/reso/api"
	"github.com/resolang/reso/board"
	"github.com/resolang/reso/palette"
	"github.com/resolang/reso/record"
	"github.com/resolang/reso/verify"
)

var (
	savePrefix = flag.String("s", "", "prefix to save iteration images to")
	iterations = flag.Int("n", 1, "number of ticks to simulate")
	outputLast = flag.Bool("o", false, "only save the final iteration")
	verbose    = flag.Bool("v", false, "print extra information while running")
	lintOnly   = flag.Bool("lint", false, "lint the compiled circuit and exit")
	recordPath = flag.String("record", "", "write every frame to this recording file")
	format     = flag.String("format", "png", "frame image format, png or qoi")
	legacy     = flag.Bool("legacy", false, "use the legacy red/blue palette")
)

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: reso [flags] circuit.png")
		flag.PrintDefaults()
		atexit.Exit(2)
	}
	if *format != "png" && *format != "qoi" {
		fmt.Fprintf(os.Stderr, "unknown format %q, want png or qoi\n", *format)
		atexit.Exit(2)
	}

	pal := palette.Extended()
	if *legacy {
		pal = palette.Legacy()
	}

	loadPath := flag.Arg(0)
	compileStart := time.Now()
	b, err := board.Load(loadPath, pal)
	if err != nil {
		slog.Error("compile failed", "path", loadPath, "err", err)
		atexit.Exit(1)
	}
	stats := b.Stats()
	slog.Info("compiled",
		"path", loadPath,
		"palette", pal.Name(),
		"width", stats.Width,
		"height", stats.Height,
		"regions", stats.Regions,
		"wires", stats.Wires,
		"elapsed", time.Since(compileStart).String(),
	)

	if *lintOnly {
		report := verify.GenerateReport(b)
		if err := report.Write(os.Stdout); err != nil {
			slog.Error("report failed", "err", err)
			atexit.Exit(1)
		}
		if !report.Clean() {
			atexit.Exit(1)
		}
		atexit.Exit(0)
	}

	if *savePrefix == "" && *recordPath == "" {
		fmt.Fprintln(os.Stderr, "nothing to do: pass -s, -record, or -lint")
		atexit.Exit(2)
	}

	saveEach := !*outputLast && *savePrefix != ""
	digits := len(strconv.Itoa(*iterations))

	var recorder *record.Recorder
	if *recordPath != "" {
		f, err := os.Create(*recordPath)
		if err != nil {
			slog.Error("recording failed", "err", err)
			atexit.Exit(1)
		}
		defer f.Close()
		w, h := b.Size()
		recorder, err = record.NewRecorder(f, w, h)
		if err != nil {
			slog.Error("recording failed", "err", err)
			atexit.Exit(1)
		}
	}

	emitFrame := func(tick int, img *image.RGBA) {
		slog.Debug("iteration", "tick", tick)
		if recorder != nil {
			if err := recorder.WriteFrame(img); err != nil {
				slog.Error("recording failed", "tick", tick, "err", err)
				atexit.Exit(1)
			}
		}
		if *savePrefix != "" && (saveEach || tick == *iterations) {
			if err := saveImage(frameName(tick, digits), img); err != nil {
				slog.Error("save failed", "tick", tick, "err", err)
				atexit.Exit(1)
			}
		}
	}

	// Frame 0 is the compiled state, before any tick.
	emitFrame(0, b.Image())

	engine := sim.NewSerialEngine()
	driver := api.DriverBuilder{}.
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		Build("Driver")
	driver.RegisterBoard(b)

	// The image only has to be repainted on ticks whose frame is consumed.
	tick := 0
	onFrame := func(_ int, img *image.RGBA) {
		tick++
		emitFrame(tick, img)
	}
	if saveEach || recorder != nil {
		driver.Simulate(*iterations, false, true, onFrame)
	} else {
		if *iterations > 1 {
			driver.Simulate(*iterations-1, false, false, func(int, *image.RGBA) { tick++ })
		}
		driver.Simulate(1, false, true, onFrame)
	}

	iterStart := time.Now()
	if err := driver.Run(); err != nil {
		slog.Error("simulation failed", "err", err)
		atexit.Exit(1)
	}
	if recorder != nil {
		if err := recorder.Close(); err != nil {
			slog.Error("recording failed", "err", err)
			atexit.Exit(1)
		}
	}
	slog.Info("done",
		"ticks", *iterations,
		"elapsed", time.Since(iterStart).String(),
	)
	atexit.Exit(0)
}

func frameName(tick, digits int) string {
	return fmt.Sprintf("%s%0*d.%s", *savePrefix, digits, tick, *format)
}

func saveImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if *format == "qoi" {
		return qoi.Encode(f, img)
	}
	return png.Encode(f, img)
}
