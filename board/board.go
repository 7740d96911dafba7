// Package board compiles a circuit image into a typed region graph and
// simulates it tick by tick. A board holds the RGB image, the grid of resel
// codes derived from it, and one Wire or Node descriptor per region of the
// grid, linked by the adjacency maps the simulator walks.
package board

import (
	"errors"
	"image"

	"github.com/resolang/reso/palette"
	"github.com/resolang/reso/regionmapper"
)

var (
	// ErrMalformedImage reports an input that is not a usable raster.
	ErrMalformedImage = errors.New("board: malformed image")

	// ErrUnknownRegionRole reports a region whose class maps to no known
	// role. The compiler's class table makes this unreachable for the stock
	// palettes; seeing it means the palette and the mapper disagree.
	ErrUnknownRegionRole = errors.New("board: region with unknown role")
)

// nodeState is the tri-valued accumulator of a node within one tick. Only
// AND nodes ever reach nodeLatched; for every other node the value is a
// plain boolean.
type nodeState int8

const (
	nodeUnseen  nodeState = 0  // no input seen yet this tick
	nodeSawTrue nodeState = 1  // at least one true input, no false (for AND)
	nodeLatched nodeState = -1 // AND saw a false input; absorbing until reset
)

// A Wire carries a boolean state between ticks. nextState accumulates the
// incoming tick's value and is false at every tick boundary.
type Wire struct {
	RegionID  int
	State     bool
	nextState bool
}

// A Node is an input, output, xor or and region. Its state is scratch for the
// current tick and is zero at every tick boundary.
type Node struct {
	RegionID int
	Role     palette.Role
	state    nodeState
}

// A Board is a compiled circuit. It is created once from an image, mutated
// only by Iterate and Render, and is not safe for concurrent use.
type Board struct {
	pal           *palette.Palette
	width, height int

	img      *image.RGBA
	reselMap [][]palette.Resel
	regions  *regionmapper.RegionMap

	// Owning storage, indexed by region id. Exactly one of the two slots is
	// non-nil for wire and node regions; both are nil for inert regions.
	wireByRegion []*Wire
	nodeByRegion []*Node

	// Non-owning per-role views, in region assignment order.
	wiresByClass map[palette.Resel][]*Wire
	inputs       []*Node
	outputs      []*Node
	xors         []*Node
	ands         []*Node

	// Typed adjacency, keyed by source region id, holding region ids.
	adjInputs  map[int][]int // wire -> input nodes
	adjXors    map[int][]int // input -> xor nodes
	adjAnds    map[int][]int // input -> and nodes
	adjOutputs map[int][]int // input, xor, and -> output nodes
	adjWires   map[int][]int // output -> wires
}

// Palette returns the palette the board was compiled with.
func (b *Board) Palette() *palette.Palette {
	return b.pal
}

// Size returns the board dimensions in pixels.
func (b *Board) Size() (width, height int) {
	return b.width, b.height
}

// Image returns the board's RGB image. The image is live: Iterate and Render
// repaint wire pixels in place. Callers must not write to it.
func (b *Board) Image() *image.RGBA {
	return b.img
}

// ReselMap returns the grid of resel codes, indexed [x][y]. Like Image, the
// grid is live and must not be written by callers.
func (b *Board) ReselMap() [][]palette.Resel {
	return b.reselMap
}

// RegionAt returns the region id at (x, y), or -1 for pixels outside every
// region.
func (b *Board) RegionAt(x, y int) int {
	return b.regions.RegionAtPixel(x, y)
}

// RegionPixels returns the pixels of a region.
func (b *Board) RegionPixels(regionID int) []regionmapper.Point {
	return b.regions.Region(regionID).Pixels
}

// WireAt returns a snapshot of the wire covering (x, y), if there is one.
func (b *Board) WireAt(x, y int) (Wire, bool) {
	id := b.RegionAt(x, y)
	if id < 0 || b.wireByRegion[id] == nil {
		return Wire{}, false
	}
	return *b.wireByRegion[id], true
}

// NodeAt returns a snapshot of the node covering (x, y), if there is one.
func (b *Board) NodeAt(x, y int) (Node, bool) {
	id := b.RegionAt(x, y)
	if id < 0 || b.nodeByRegion[id] == nil {
		return Node{}, false
	}
	return *b.nodeByRegion[id], true
}

// Stats summarises a compiled board.
type Stats struct {
	Width, Height int
	Regions       int
	Wires         int
	Inputs        int
	Outputs       int
	Xors          int
	Ands          int
}

// Stats returns the board's region counts.
func (b *Board) Stats() Stats {
	s := Stats{
		Width:   b.width,
		Height:  b.height,
		Regions: b.regions.NumRegions(),
		Inputs:  len(b.inputs),
		Outputs: len(b.outputs),
		Xors:    len(b.xors),
		Ands:    len(b.ands),
	}
	for _, wires := range b.wiresByClass {
		s.Wires += len(wires)
	}
	return s
}

// Graph is a read-only snapshot of the typed region graph: the per-role
// region ids and the five adjacency maps the simulator walks. All slices and
// maps are copies.
type Graph struct {
	WiresByClass map[palette.Resel][]int
	Inputs       []int
	Outputs      []int
	Xors         []int
	Ands         []int

	WireToInput  map[int][]int
	InputToXor   map[int][]int
	InputToAnd   map[int][]int
	ToOutput     map[int][]int
	OutputToWire map[int][]int
}

// Graph snapshots the board's typed adjacency structure.
func (b *Board) Graph() Graph {
	g := Graph{
		WiresByClass: map[palette.Resel][]int{},
		Inputs:       nodeIDs(b.inputs),
		Outputs:      nodeIDs(b.outputs),
		Xors:         nodeIDs(b.xors),
		Ands:         nodeIDs(b.ands),
		WireToInput:  copyAdj(b.adjInputs),
		InputToXor:   copyAdj(b.adjXors),
		InputToAnd:   copyAdj(b.adjAnds),
		ToOutput:     copyAdj(b.adjOutputs),
		OutputToWire: copyAdj(b.adjWires),
	}
	for class, wires := range b.wiresByClass {
		ids := make([]int, len(wires))
		for i, w := range wires {
			ids[i] = w.RegionID
		}
		g.WiresByClass[class] = ids
	}
	return g
}

func nodeIDs(nodes []*Node) []int {
	ids := make([]int, len(nodes))
	for i, n := range nodes {
		ids[i] = n.RegionID
	}
	return ids
}

func copyAdj(adj map[int][]int) map[int][]int {
	out := make(map[int][]int, len(adj))
	for k, v := range adj {
		out[k] = append([]int(nil), v...)
	}
	return out
}
