package board

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/xfmoulet/qoi"

	"github.com/resolang/reso/palette"
	"github.com/resolang/reso/regionmapper"
)

func init() {
	image.RegisterFormat("qoi", "qoif", qoi.Decode, qoi.DecodeConfig)
}

// Load reads a circuit image from disk and compiles it. PNG, QOI, GIF and
// JPEG are accepted.
func Load(path string, pal *palette.Palette) (*Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("board: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("board: decode %s: %w", path, err)
	}

	return New(img, pal)
}

// New compiles an image into a board. Pixels whose color is not in pal are
// dropped from the circuit; this is what allows decorative pixels in source
// images. Any alpha channel is discarded.
func New(src image.Image, pal *palette.Palette) (*Board, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil image", ErrMalformedImage)
	}
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: empty %dx%d image", ErrMalformedImage, width, height)
	}

	b := &Board{
		pal:          pal,
		width:        width,
		height:       height,
		img:          image.NewRGBA(image.Rect(0, 0, width, height)),
		wiresByClass: map[palette.Resel][]*Wire{},
		adjInputs:    map[int][]int{},
		adjXors:      map[int][]int{},
		adjAnds:      map[int][]int{},
		adjOutputs:   map[int][]int{},
		adjWires:     map[int][]int{},
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(src.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			b.img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}

	b.buildReselMap()

	if err := b.mapRegions(); err != nil {
		return nil, err
	}
	if err := b.buildDescriptors(); err != nil {
		return nil, err
	}
	b.initWireStates()
	b.buildTypedAdjacency()

	return b, nil
}

// buildReselMap classifies every pixel of the image through the palette.
func (b *Board) buildReselMap() {
	b.reselMap = make([][]palette.Resel, b.width)
	for x := 0; x < b.width; x++ {
		b.reselMap[x] = make([]palette.Resel, b.height)
		for y := 0; y < b.height; y++ {
			c := b.img.RGBAAt(x, y)
			b.reselMap[x][y] = b.pal.ReselOf(palette.RGB{R: c.R, G: c.G, B: c.B})
		}
	}
}

// mapRegions runs the region mapper over the resel grid. The class table
// folds each wire hue's on and off codes together, so one wire region spans
// both; wires are eight-connected so two wires can cross diagonally, and
// everything else is four-connected.
func (b *Board) mapRegions() error {
	grid := make([][]int, b.width)
	for x := range b.reselMap {
		grid[x] = make([]int, b.height)
		for y, code := range b.reselMap[x] {
			grid[x][y] = int(code)
		}
	}

	contiguities := map[int][]regionmapper.Offset{}
	for _, class := range b.pal.WireClasses() {
		contiguities[int(class)] = regionmapper.OrthoDiag
	}

	regions, err := regionmapper.Builder{}.
		WithClassTable(b.pal.ClassTable()).
		WithContiguities(contiguities).
		Map(grid)
	if err != nil {
		return err
	}

	b.regions = regions
	return nil
}

// buildDescriptors allocates one Wire or Node per region by role. Inert
// regions get no descriptor and take no part in the simulation.
func (b *Board) buildDescriptors() error {
	n := b.regions.NumRegions()
	b.wireByRegion = make([]*Wire, n)
	b.nodeByRegion = make([]*Node, n)

	for id := 0; id < n; id++ {
		class := palette.Resel(b.regions.Region(id).Class)
		role := b.pal.RoleOf(class)

		switch role {
		case palette.WireOn:
			w := &Wire{RegionID: id}
			b.wireByRegion[id] = w
			b.wiresByClass[class] = append(b.wiresByClass[class], w)
		case palette.Input, palette.Output, palette.Xor, palette.And:
			node := &Node{RegionID: id, Role: role}
			b.nodeByRegion[id] = node
			switch role {
			case palette.Input:
				b.inputs = append(b.inputs, node)
			case palette.Output:
				b.outputs = append(b.outputs, node)
			case palette.Xor:
				b.xors = append(b.xors, node)
			case palette.And:
				b.ands = append(b.ands, node)
			}
		case palette.Inert:
			// Reserved hues stay in the image but out of the circuit.
		default:
			// WireOff cannot survive the class fold; anything else means the
			// palette and mapper disagree.
			return fmt.Errorf("%w: region %d has class %q (%s)",
				ErrUnknownRegionRole, id, class, role.Name())
		}
	}
	return nil
}

// initWireStates turns a wire on if any of its pixels used the hue's on tone
// in the source image.
func (b *Board) initWireStates() {
	for _, class := range b.pal.WireClasses() {
		on := b.pal.OnVariant(class)
		for _, w := range b.wiresByClass[class] {
			for _, p := range b.regions.Region(w.RegionID).Pixels {
				if b.reselMap[p.X][p.Y] == on {
					w.State = true
					break
				}
			}
		}
	}
}

// buildTypedAdjacency materialises the five directed maps the simulator
// walks. Raw adjacencies that fit no entry of this scheme, such as wire to
// wire, are dropped.
func (b *Board) buildTypedAdjacency() {
	for _, class := range b.pal.WireClasses() {
		for _, w := range b.wiresByClass[class] {
			b.link(w.RegionID, b.adjInputs, palette.Input)
		}
	}
	for _, in := range b.inputs {
		b.link(in.RegionID, b.adjXors, palette.Xor)
		b.link(in.RegionID, b.adjAnds, palette.And)
		b.link(in.RegionID, b.adjOutputs, palette.Output)
	}
	for _, x := range b.xors {
		b.link(x.RegionID, b.adjOutputs, palette.Output)
	}
	for _, a := range b.ands {
		b.link(a.RegionID, b.adjOutputs, palette.Output)
	}
	for _, o := range b.outputs {
		b.linkWires(o.RegionID)
	}
}

// link records every neighbour of region from whose class has the wanted
// role.
func (b *Board) link(from int, into map[int][]int, want palette.Role) {
	for _, adj := range b.regions.AdjacentRegions(from) {
		class := palette.Resel(b.regions.Region(adj).Class)
		if b.pal.RoleOf(class) == want {
			into[from] = append(into[from], adj)
		}
	}
}

// linkWires records every wire neighbour of an output region.
func (b *Board) linkWires(from int) {
	for _, adj := range b.regions.AdjacentRegions(from) {
		class := palette.Resel(b.regions.Region(adj).Class)
		if b.pal.IsWireClass(class) {
			b.adjWires[from] = append(b.adjWires[from], adj)
		}
	}
}
