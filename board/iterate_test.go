package board

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/resolang/reso/palette"
)

// wireState reads the state of the wire at (x, y) and fails if there is none.
func wireState(b *Board, x, y int) bool {
	w, ok := b.WireAt(x, y)
	Expect(ok).To(BeTrue(), "no wire at (%d,%d)", x, y)
	return w.State
}

var _ = Describe("Iterate", func() {
	Context("a two-wire ring", func() {
		// Wire, input, output, wire, input, output, back to the first wire.
		rows := []string{
			"RmMr",
			"r..r",
			"rMmr",
		}

		It("should swap the on state every tick with period two", func() {
			b := mustCompile(palette.Legacy(), rows)
			Expect(wireState(b, 0, 0)).To(BeTrue())
			Expect(wireState(b, 3, 0)).To(BeFalse())

			b.Iterate(false, false)
			Expect(wireState(b, 0, 0)).To(BeFalse())
			Expect(wireState(b, 3, 0)).To(BeTrue())

			b.Iterate(false, false)
			Expect(wireState(b, 0, 0)).To(BeTrue())
			Expect(wireState(b, 3, 0)).To(BeFalse())
		})
	})

	Context("an isolated wire", func() {
		It("should go dark after one tick", func() {
			b := mustCompile(palette.Legacy(), []string{"R"})
			Expect(wireState(b, 0, 0)).To(BeTrue())

			b.Iterate(false, false)
			Expect(wireState(b, 0, 0)).To(BeFalse())

			b.Iterate(false, false)
			Expect(wireState(b, 0, 0)).To(BeFalse())
		})
	})

	Context("two inputs on one output", func() {
		// Each red wire has its own input; both inputs drive one output,
		// which drives the blue wire. The output behaves as an or.
		or := func(left, right byte) bool {
			b := mustCompile(palette.Legacy(), []string{
				string([]byte{left, 'm', 'M', 'm', right}),
				"..b..",
			})
			b.Iterate(false, false)
			return wireState(b, 2, 1)
		}

		It("should implement or", func() {
			Expect(or('r', 'r')).To(BeFalse())
			Expect(or('R', 'r')).To(BeTrue())
			Expect(or('r', 'R')).To(BeTrue())
			Expect(or('R', 'R')).To(BeTrue())
		})
	})

	Context("an xor node", func() {
		xor := func(left, right byte) bool {
			b := mustCompile(palette.Legacy(), []string{
				string([]byte{left, 'm', 'C', 'm', right}),
				"..M..",
				"..b..",
			})
			b.Iterate(false, false)
			return wireState(b, 2, 2)
		}

		It("should implement xor over its input edges", func() {
			Expect(xor('r', 'r')).To(BeFalse())
			Expect(xor('R', 'r')).To(BeTrue())
			Expect(xor('r', 'R')).To(BeTrue())
			Expect(xor('R', 'R')).To(BeFalse())
		})
	})

	Context("an and node", func() {
		and := func(left, right byte) bool {
			b := mustCompile(palette.Legacy(), []string{
				string([]byte{left, 'm', 'c', 'm', right}),
				"..M..",
				"..b..",
			})
			b.Iterate(false, false)
			return wireState(b, 2, 2)
		}

		It("should implement and with the false latch", func() {
			Expect(and('r', 'r')).To(BeFalse())
			Expect(and('R', 'r')).To(BeFalse())
			Expect(and('r', 'R')).To(BeFalse())
			Expect(and('R', 'R')).To(BeTrue())
		})

		It("should not fire with no inputs at all", func() {
			b := mustCompile(palette.Legacy(), []string{"cMb"})
			b.Iterate(false, false)
			Expect(wireState(b, 2, 0)).To(BeFalse())
		})
	})

	Context("an inert image", func() {
		It("should never change", func() {
			b := mustCompile(palette.Legacy(), []string{
				"GgY",
				"yGg",
			})
			before := append([]byte(nil), b.Image().Pix...)

			for i := 0; i < 3; i++ {
				b.Iterate(true, true)
			}
			Expect(bytes.Equal(b.Image().Pix, before)).To(BeTrue())
		})
	})

	Context("tick boundaries", func() {
		It("should restore the invariants after every tick", func() {
			b := mustCompile(palette.Legacy(), []string{
				"RmMr",
				"r..r",
				"rMmr",
			})

			for i := 0; i < 3; i++ {
				b.Iterate(false, false)

				for _, class := range b.pal.WireClasses() {
					for _, w := range b.wiresByClass[class] {
						Expect(w.nextState).To(BeFalse())
					}
				}
				for _, nodes := range [][]*Node{b.inputs, b.outputs, b.xors, b.ands} {
					for _, n := range nodes {
						Expect(n.state).To(Equal(nodeUnseen))
					}
				}
			}
		})
	})

	Context("determinism", func() {
		It("should evolve equal boards identically", func() {
			rows := []string{
				"RmCmr",
				"r.M.r",
				"mbbbm",
				"M...M",
				"r...r",
			}
			a := mustCompile(palette.Legacy(), rows)
			b := mustCompile(palette.Legacy(), rows)

			for i := 0; i < 4; i++ {
				a.Iterate(true, true)
				b.Iterate(true, true)

				Expect(a.ReselMap()).To(Equal(b.ReselMap()))
				Expect(bytes.Equal(a.Image().Pix, b.Image().Pix)).To(BeTrue())
				for _, class := range a.pal.WireClasses() {
					for i, w := range a.wiresByClass[class] {
						Expect(b.wiresByClass[class][i].State).To(Equal(w.State))
					}
				}
			}
		})
	})
})

var _ = Describe("Render", func() {
	It("should repaint every pixel of an on wire with the on tone", func() {
		b := mustCompile(palette.Legacy(), []string{"Rrr"})
		b.Render(true, true)

		on := b.pal.RGBOf(palette.RedOn)
		for x := 0; x < 3; x++ {
			Expect(b.ReselMap()[x][0]).To(Equal(palette.RedOn))
			px := b.Image().RGBAAt(x, 0)
			Expect([3]uint8{px.R, px.G, px.B}).To(Equal([3]uint8{on.R, on.G, on.B}))
		}
	})

	It("should repaint an off wire with the off tone", func() {
		b := mustCompile(palette.Legacy(), []string{"Rrr"})
		b.Iterate(true, true)

		off := b.pal.RGBOf(palette.RedOff)
		for x := 0; x < 3; x++ {
			Expect(b.ReselMap()[x][0]).To(Equal(palette.RedOff))
			px := b.Image().RGBAAt(x, 0)
			Expect([3]uint8{px.R, px.G, px.B}).To(Equal([3]uint8{off.R, off.G, off.B}))
		}
	})

	It("should leave node pixels untouched", func() {
		b := mustCompile(palette.Legacy(), []string{"RmM"})
		b.Iterate(true, true)

		Expect(b.ReselMap()[1][0]).To(Equal(palette.MagentaOff))
		Expect(b.ReselMap()[2][0]).To(Equal(palette.MagentaOn))
	})

	It("should only touch what it was asked to", func() {
		b := mustCompile(palette.Legacy(), []string{"R"})
		before := append([]byte(nil), b.Image().Pix...)

		b.Iterate(true, false)
		Expect(b.ReselMap()[0][0]).To(Equal(palette.RedOff))
		Expect(bytes.Equal(b.Image().Pix, before)).To(BeTrue(),
			"image untouched when only the grid updates")
	})
})
