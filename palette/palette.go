// Package palette defines the color vocabulary of a circuit image. Each color
// the simulator understands maps to a resel code, and each code carries a
// role: wire (with an on and an off tone of the same hue), input, output,
// xor, and, or inert.
package palette

import "fmt"

// Resel is the code of a classified pixel. Codes are the letter ordinals of
// the hue naming convention: capital letters are the saturated tone, lowercase
// the dark tone. Empty marks a pixel that matched no palette entry and can
// never form a region.
type Resel uint8

// Empty is the code of an unclassified pixel.
const Empty Resel = 0

// The twelve hues, two tones each.
const (
	RedOn       Resel = 'R'
	RedOff      Resel = 'r'
	GreenOn     Resel = 'G'
	GreenOff    Resel = 'g'
	BlueOn      Resel = 'B'
	BlueOff     Resel = 'b'
	YellowOn    Resel = 'Y'
	YellowOff   Resel = 'y'
	CyanOn      Resel = 'C'
	CyanOff     Resel = 'c'
	MagentaOn   Resel = 'M'
	MagentaOff  Resel = 'm'
	OrangeOn    Resel = 'O'
	OrangeOff   Resel = 'o'
	LimeOn      Resel = 'L'
	LimeOff     Resel = 'l'
	TealOn      Resel = 'T'
	TealOff     Resel = 't'
	SapphireOn  Resel = 'S'
	SapphireOff Resel = 's'
	PurpleOn    Resel = 'P'
	PurpleOff   Resel = 'p'
	VioletOn    Resel = 'V'
	VioletOff   Resel = 'v'
)

// RGB is a 3-byte pixel value. It is comparable so it can key lookup tables.
type RGB struct {
	R, G, B uint8
}

// Role classifies what a resel code means to the simulator.
type Role int

const (
	Inert Role = iota
	WireOn
	WireOff
	Input
	Output
	Xor
	And
)

var roleNames = []string{"Inert", "WireOn", "WireOff", "Input", "Output", "Xor", "And"}

// Name returns the name of the role.
func (r Role) Name() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return fmt.Sprintf("Role %d", int(r))
}

// colors lists every hue/tone the palettes draw from. Both palettes share the
// full RGB table; they differ only in the roles they assign.
var colors = []struct {
	code Resel
	rgb  RGB
}{
	{RedOn, RGB{255, 0, 0}},
	{RedOff, RGB{128, 0, 0}},
	{GreenOn, RGB{0, 255, 0}},
	{GreenOff, RGB{0, 128, 0}},
	{BlueOn, RGB{0, 0, 255}},
	{BlueOff, RGB{0, 0, 128}},
	{YellowOn, RGB{255, 255, 0}},
	{YellowOff, RGB{128, 128, 0}},
	{CyanOn, RGB{0, 255, 255}},
	{CyanOff, RGB{0, 128, 128}},
	{MagentaOn, RGB{255, 0, 255}},
	{MagentaOff, RGB{128, 0, 128}},
	{OrangeOn, RGB{255, 128, 0}},
	{OrangeOff, RGB{128, 64, 0}},
	{LimeOn, RGB{128, 255, 0}},
	{LimeOff, RGB{64, 128, 0}},
	{TealOn, RGB{0, 255, 128}},
	{TealOff, RGB{0, 128, 64}},
	{SapphireOn, RGB{0, 128, 255}},
	{SapphireOff, RGB{0, 64, 128}},
	{PurpleOn, RGB{128, 0, 255}},
	{PurpleOff, RGB{64, 0, 128}},
	{VioletOn, RGB{255, 0, 128}},
	{VioletOff, RGB{128, 0, 64}},
}

// A Palette holds the bidirectional RGB/resel tables and the role assignment
// of one color scheme. Palettes are immutable once built; a Board binds to
// exactly one at construction.
type Palette struct {
	name        string
	rgbToResel  map[RGB]Resel
	reselToRGB  map[Resel]RGB
	roles       map[Resel]Role
	wireClasses []Resel         // On codes of the wire hues, in WithWire order
	offVariant  map[Resel]Resel // wire class (On code) -> Off code
}

// Builder assembles a Palette. The two stock schemes are produced by Legacy
// and Extended; Builder is exported so alternative color assignments can be
// constructed the same way.
type Builder struct {
	name  string
	codes []Resel
	roles map[Resel]Role
	wires [][2]Resel // (On, Off) pairs
}

// WithName sets the palette name.
func (b Builder) WithName(name string) Builder {
	b.name = name
	return b
}

// WithCodes sets which codes of the color table the palette recognises.
// Codes not given a role elsewhere are inert.
func (b Builder) WithCodes(codes ...Resel) Builder {
	b.codes = append(b.codes, codes...)
	return b
}

// WithWire assigns a wire hue by its On and Off codes.
func (b Builder) WithWire(on, off Resel) Builder {
	b.wires = append(b.wires, [2]Resel{on, off})
	return b
}

// WithRole assigns a node role to a code.
func (b Builder) WithRole(code Resel, role Role) Builder {
	if b.roles == nil {
		b.roles = map[Resel]Role{}
	}
	b.roles[code] = role
	return b
}

// Build creates the palette. It panics if a code is not in the color table;
// the table is closed and the stock schemes never trip this.
func (b Builder) Build() *Palette {
	p := &Palette{
		name:       b.name,
		rgbToResel: map[RGB]Resel{},
		reselToRGB: map[Resel]RGB{},
		roles:      map[Resel]Role{},
		offVariant: map[Resel]Resel{},
	}

	rgbOf := map[Resel]RGB{}
	for _, c := range colors {
		rgbOf[c.code] = c.rgb
	}

	for _, code := range b.codes {
		rgb, ok := rgbOf[code]
		if !ok {
			panic(fmt.Sprintf("palette: code %q is not in the color table", code))
		}
		p.rgbToResel[rgb] = code
		p.reselToRGB[code] = rgb
		p.roles[code] = Inert
	}

	for code, role := range b.roles {
		if _, ok := p.reselToRGB[code]; !ok {
			panic(fmt.Sprintf("palette: role assigned to unknown code %q", code))
		}
		p.roles[code] = role
	}

	for _, w := range b.wires {
		on, off := w[0], w[1]
		if _, ok := p.reselToRGB[on]; !ok {
			panic(fmt.Sprintf("palette: wire On code %q is not in the palette", on))
		}
		if _, ok := p.reselToRGB[off]; !ok {
			panic(fmt.Sprintf("palette: wire Off code %q is not in the palette", off))
		}
		p.roles[on] = WireOn
		p.roles[off] = WireOff
		p.wireClasses = append(p.wireClasses, on)
		p.offVariant[on] = off
	}

	return p
}

// Legacy returns the original red/blue scheme: red and blue wires, cyan XOR,
// dark cyan AND, magenta output, dark magenta input. Green and yellow are
// recognised but inert.
func Legacy() *Palette {
	return Builder{}.
		WithName("legacy").
		WithCodes(
			RedOn, RedOff, GreenOn, GreenOff, BlueOn, BlueOff,
			YellowOn, YellowOff, CyanOn, CyanOff, MagentaOn, MagentaOff,
		).
		WithWire(RedOn, RedOff).
		WithWire(BlueOn, BlueOff).
		WithRole(CyanOn, Xor).
		WithRole(CyanOff, And).
		WithRole(MagentaOn, Output).
		WithRole(MagentaOff, Input).
		Build()
}

// Extended returns the full twenty-four color scheme: orange, sapphire and
// lime wires, teal XOR, dark teal AND, purple output, dark purple input. The
// six legacy hues and violet are recognised but inert, reserved for future
// use.
func Extended() *Palette {
	b := Builder{}.WithName("extended")
	for _, c := range colors {
		b = b.WithCodes(c.code)
	}
	return b.
		WithWire(OrangeOn, OrangeOff).
		WithWire(SapphireOn, SapphireOff).
		WithWire(LimeOn, LimeOff).
		WithRole(TealOn, Xor).
		WithRole(TealOff, And).
		WithRole(PurpleOn, Output).
		WithRole(PurpleOff, Input).
		Build()
}

// Name returns the palette name.
func (p *Palette) Name() string {
	return p.name
}

// ReselOf maps an RGB value to its resel code. Unknown colors map to Empty.
func (p *Palette) ReselOf(rgb RGB) Resel {
	return p.rgbToResel[rgb]
}

// RGBOf maps a resel code back to its RGB value. Unknown codes map to the
// zero RGB.
func (p *Palette) RGBOf(code Resel) RGB {
	return p.reselToRGB[code]
}

// RoleOf classifies a code. Codes outside the palette, including Empty, are
// Inert.
func (p *Palette) RoleOf(code Resel) Role {
	return p.roles[code]
}

// ClassOf folds a code to its region-forming class: the On and Off tones of a
// wire hue collapse to the On code, every other code maps to itself. Region
// mapping runs on classes so a wire region spans its on and off pixels.
func (p *Palette) ClassOf(code Resel) Resel {
	if p.roles[code] == WireOff {
		for on, off := range p.offVariant {
			if off == code {
				return on
			}
		}
	}
	return code
}

// ClassTable returns the full code-to-class fold as an int table, in the form
// the region mapper consumes.
func (p *Palette) ClassTable() map[int]int {
	t := make(map[int]int, len(p.reselToRGB))
	for code := range p.reselToRGB {
		t[int(code)] = int(p.ClassOf(code))
	}
	return t
}

// WireClasses returns the On codes of the palette's wire hues, in a fixed
// order.
func (p *Palette) WireClasses() []Resel {
	return append([]Resel(nil), p.wireClasses...)
}

// IsWireClass reports whether class is the folded class of a wire hue.
func (p *Palette) IsWireClass(class Resel) bool {
	_, ok := p.offVariant[class]
	return ok
}

// OnVariant returns the On code of a wire class.
func (p *Palette) OnVariant(class Resel) Resel {
	return class
}

// OffVariant returns the Off code of a wire class, or Empty if class is not a
// wire class.
func (p *Palette) OffVariant(class Resel) Resel {
	return p.offVariant[class]
}

// Codes returns every code the palette recognises, in color-table order.
func (p *Palette) Codes() []Resel {
	var out []Resel
	for _, c := range colors {
		if _, ok := p.reselToRGB[c.code]; ok {
			out = append(out, c.code)
		}
	}
	return out
}
