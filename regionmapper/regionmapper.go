// Package regionmapper labels the connected components of a 2-D class grid.
// Each class may declare its own contiguity neighbourhood (which pixels can
// grow a region) and adjacency neighbourhood (which pixels make two regions
// neighbours), and the grid can optionally wrap as a torus.
package regionmapper

import (
	"errors"
	"fmt"
)

// Offset is a relative pixel coordinate.
type Offset struct {
	DX, DY int
}

// Point is an absolute pixel coordinate. The grid is indexed [x][y].
type Point struct {
	X, Y int
}

// Ortho is the four-connected neighbourhood. It is the default for any class
// without an explicit entry in the contiguity or adjacency tables.
var Ortho = []Offset{{1, 0}, {0, -1}, {-1, 0}, {0, 1}}

// Diag is the four diagonal neighbours.
var Diag = []Offset{{1, -1}, {-1, -1}, {-1, 1}, {1, 1}}

// OrthoDiag is the eight-connected neighbourhood.
var OrthoDiag = append(append([]Offset{}, Ortho...), Diag...)

// ErrMalformedGrid reports an input grid whose columns are not all the same
// height.
var ErrMalformedGrid = errors.New("regionmapper: malformed grid")

// A Region is one maximal connected component. The pixel order is traversal
// order and not part of the contract; compare pixel sets, not sequences.
type Region struct {
	Class  int
	Pixels []Point
}

// Builder configures a region mapping pass.
type Builder struct {
	classTable   map[int]int
	contiguities map[int][]Offset
	adjacencies  map[int][]Offset
	wrap         bool
	dense        bool
}

// WithClassTable sets the table that re-classifies every grid cell before
// labelling. Cells whose value is missing from the table, and cells mapped to
// 0, form no region.
func (b Builder) WithClassTable(table map[int]int) Builder {
	b.classTable = table
	return b
}

// WithContiguities sets per-class contiguity neighbourhoods. Classes without
// an entry use Ortho.
func (b Builder) WithContiguities(contiguities map[int][]Offset) Builder {
	b.contiguities = contiguities
	return b
}

// WithAdjacencies sets per-class adjacency neighbourhoods. Classes without an
// entry use Ortho.
func (b Builder) WithAdjacencies(adjacencies map[int][]Offset) Builder {
	b.adjacencies = adjacencies
	return b
}

// WithWrap makes the grid toroidal: neighbour coordinates are taken modulo
// the grid size instead of being dropped at the edges.
func (b Builder) WithWrap(wrap bool) Builder {
	b.wrap = wrap
	return b
}

// WithDenseIndex stores the pixel-to-region index as a full w*h array rather
// than a sparse map. Worth it only when most pixels belong to some region.
func (b Builder) WithDenseIndex() Builder {
	b.dense = true
	return b
}

// Map labels grid and returns the resulting region map. The grid is indexed
// [x][y]; all columns must have the same height.
func (b Builder) Map(grid [][]int) (*RegionMap, error) {
	width := len(grid)
	height := 0
	if width > 0 {
		height = len(grid[0])
	}
	for x := range grid {
		if len(grid[x]) != height {
			return nil, fmt.Errorf("%w: column %d has height %d, want %d",
				ErrMalformedGrid, x, len(grid[x]), height)
		}
	}

	m := &RegionMap{
		width:            width,
		height:           height,
		classes:          make([][]int, width),
		regionsWithClass: map[int][]int{},
	}
	if b.dense {
		m.denseIndex = make([]int, width*height)
		for i := range m.denseIndex {
			m.denseIndex[i] = -1
		}
	} else {
		m.sparseIndex = map[Point]int{}
	}

	for x := 0; x < width; x++ {
		m.classes[x] = make([]int, height)
		for y := 0; y < height; y++ {
			m.classes[x][y] = b.classTable[grid[x][y]]
		}
	}

	b.label(m)
	b.linkAdjacent(m)

	return m, nil
}

// label scans in x-major order and flood-fills a new region from every
// unvisited non-zero cell, using the contiguity neighbourhood of the cell's
// class.
func (b Builder) label(m *RegionMap) {
	seen := make([]bool, m.width*m.height)

	for x := 0; x < m.width; x++ {
		for y := 0; y < m.height; y++ {
			if seen[x*m.height+y] {
				continue
			}
			class := m.classes[x][y]
			if class == 0 {
				continue
			}

			id := len(m.regions)
			contig := neighbourhood(b.contiguities, class)

			var pixels []Point
			stack := []Point{{x, y}}
			seen[x*m.height+y] = true
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				pixels = append(pixels, p)
				m.setRegionAt(p, id)

				for _, q := range m.neighbours(p, contig, b.wrap) {
					if m.classes[q.X][q.Y] == class && !seen[q.X*m.height+q.Y] {
						stack = append(stack, q)
						seen[q.X*m.height+q.Y] = true
					}
				}
			}

			m.regions = append(m.regions, Region{Class: class, Pixels: pixels})
			m.regionsWithClass[class] = append(m.regionsWithClass[class], id)
		}
	}
}

// linkAdjacent computes, for every region, the ids of the regions it touches
// through its class's adjacency neighbourhood. The relation is directional:
// it is evaluated from each region's own viewpoint.
func (b Builder) linkAdjacent(m *RegionMap) {
	m.adjacent = make([][]int, len(m.regions))

	for id, region := range m.regions {
		nbhd := neighbourhood(b.adjacencies, region.Class)
		for _, p := range region.Pixels {
			for _, q := range m.neighbours(p, nbhd, b.wrap) {
				if m.classes[q.X][q.Y] == 0 {
					continue
				}
				neighbour := m.regionAt(q)
				if neighbour == id || contains(m.adjacent[id], neighbour) {
					continue
				}
				m.adjacent[id] = append(m.adjacent[id], neighbour)
			}
		}
	}
}

func neighbourhood(table map[int][]Offset, class int) []Offset {
	if nbhd, ok := table[class]; ok {
		return nbhd
	}
	return Ortho
}

func contains(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// A RegionMap is the result of one mapping pass. It is immutable.
type RegionMap struct {
	width, height int
	classes       [][]int
	regions       []Region

	sparseIndex map[Point]int
	denseIndex  []int

	regionsWithClass map[int][]int
	adjacent         [][]int
}

func (m *RegionMap) setRegionAt(p Point, id int) {
	if m.denseIndex != nil {
		m.denseIndex[p.X*m.height+p.Y] = id
		return
	}
	m.sparseIndex[p] = id
}

func (m *RegionMap) regionAt(p Point) int {
	if m.denseIndex != nil {
		return m.denseIndex[p.X*m.height+p.Y]
	}
	if id, ok := m.sparseIndex[p]; ok {
		return id
	}
	return -1
}

// neighbours returns the in-bounds neighbours of p under nbhd, wrapping if
// asked to.
func (m *RegionMap) neighbours(p Point, nbhd []Offset, wrap bool) []Point {
	out := make([]Point, 0, len(nbhd))
	for _, o := range nbhd {
		x, y := p.X+o.DX, p.Y+o.DY
		if wrap {
			x = ((x % m.width) + m.width) % m.width
			y = ((y % m.height) + m.height) % m.height
		} else if x < 0 || x >= m.width || y < 0 || y >= m.height {
			continue
		}
		out = append(out, Point{x, y})
	}
	return out
}

// Size returns the grid dimensions.
func (m *RegionMap) Size() (width, height int) {
	return m.width, m.height
}

// NumRegions returns how many regions were labelled. Region ids are dense in
// [0, NumRegions).
func (m *RegionMap) NumRegions() int {
	return len(m.regions)
}

// Region returns the region with the given id.
func (m *RegionMap) Region(id int) Region {
	return m.regions[id]
}

// RegionAtPixel returns the region id at (x, y), or -1 if the pixel belongs
// to no region.
func (m *RegionMap) RegionAtPixel(x, y int) int {
	if m.classes[x][y] == 0 {
		return -1
	}
	return m.regionAt(Point{x, y})
}

// RegionsWithClass returns the ids of all regions of the given class, in
// assignment order.
func (m *RegionMap) RegionsWithClass(class int) []int {
	return m.regionsWithClass[class]
}

// AdjacentRegions returns the ids of the regions adjacent to the given
// region, from its own adjacency neighbourhood's viewpoint.
func (m *RegionMap) AdjacentRegions(id int) []int {
	return m.adjacent[id]
}
