// Package api defines the driver that runs a compiled circuit on a
// simulation engine.
package api

import (
	"image"

	"github.com/sarchlab/akita/v4/sim"
)

// A Simulator is anything the driver can tick. board.Board satisfies it.
type Simulator interface {
	Iterate(updateGrid, updateImage bool)
	Image() *image.RGBA
}

// A FrameFunc receives the board image after each tick of a simulation task.
// Ticks are numbered from 1. The image is the board's live buffer; consume it
// before returning.
type FrameFunc func(tick int, img *image.RGBA)

// Driver runs simulation tasks against a registered board.
type Driver interface {
	// RegisterBoard attaches the board the driver will tick.
	RegisterBoard(b Simulator)

	// Simulate queues a task of the given number of ticks. updateGrid and
	// updateImage are passed through to every Iterate call; onFrame may be
	// nil.
	Simulate(ticks int, updateGrid, updateImage bool, onFrame FrameFunc)

	// Run executes all queued tasks to completion.
	Run() error
}

type runTask struct {
	ticks       int
	done        int
	updateGrid  bool
	updateImage bool
	onFrame     FrameFunc
}

type driverImpl struct {
	*sim.TickingComponent

	engine sim.Engine
	board  Simulator
	tasks  []*runTask
}

// Tick runs the driver for one engine cycle: one board tick of the task at
// the head of the queue.
func (d *driverImpl) Tick() (madeProgress bool) {
	if d.board == nil || len(d.tasks) == 0 {
		return false
	}

	task := d.tasks[0]
	task.done++
	d.board.Iterate(task.updateGrid, task.updateImage)
	if task.onFrame != nil {
		task.onFrame(task.done, d.board.Image())
	}

	if task.done >= task.ticks {
		d.tasks = d.tasks[1:]
	}
	return true
}

func (d *driverImpl) RegisterBoard(b Simulator) {
	d.board = b
}

func (d *driverImpl) Simulate(
	ticks int,
	updateGrid, updateImage bool,
	onFrame FrameFunc,
) {
	if ticks <= 0 {
		return
	}
	d.tasks = append(d.tasks, &runTask{
		ticks:       ticks,
		updateGrid:  updateGrid,
		updateImage: updateImage,
		onFrame:     onFrame,
	})
}

func (d *driverImpl) Run() error {
	d.TickNow()
	return d.engine.Run()
}
