package board

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/resolang/reso/palette"
	"github.com/resolang/reso/util"
)

func mustCompile(pal *palette.Palette, rows []string) *Board {
	b, err := New(util.ImageFromLayout(pal, rows), pal)
	Expect(err).ToNot(HaveOccurred())
	return b
}

var _ = Describe("Compile", func() {
	Context("classifying pixels", func() {
		rows := []string{
			"Rm.",
			"GRm",
			"bbb",
			".BB",
			"R.r",
		}

		It("should build the resel map from the image", func() {
			b := mustCompile(palette.Legacy(), rows)
			grid := b.ReselMap()

			Expect(grid[0][0]).To(Equal(palette.RedOn))
			Expect(grid[1][0]).To(Equal(palette.MagentaOff))
			Expect(grid[2][0]).To(Equal(palette.Empty))

			Expect(grid[0][1]).To(Equal(palette.GreenOn))
			Expect(grid[1][1]).To(Equal(palette.RedOn))
			Expect(grid[2][1]).To(Equal(palette.MagentaOff))

			Expect(grid[0][2]).To(Equal(palette.BlueOff))
			Expect(grid[1][2]).To(Equal(palette.BlueOff))
			Expect(grid[2][2]).To(Equal(palette.BlueOff))

			Expect(grid[0][3]).To(Equal(palette.Empty))
			Expect(grid[1][3]).To(Equal(palette.BlueOn))
			Expect(grid[2][3]).To(Equal(palette.BlueOn))

			Expect(grid[0][4]).To(Equal(palette.RedOn))
			Expect(grid[1][4]).To(Equal(palette.Empty))
			Expect(grid[2][4]).To(Equal(palette.RedOff))
		})

		It("should classify the extended hues the same way", func() {
			b := mustCompile(palette.Extended(), []string{
				"Op.",
				"LOp",
				"sss",
				".SS",
				"O.o",
			})
			grid := b.ReselMap()

			Expect(grid[0][0]).To(Equal(palette.OrangeOn))
			Expect(grid[1][0]).To(Equal(palette.PurpleOff))
			Expect(grid[2][0]).To(Equal(palette.Empty))
			Expect(grid[0][1]).To(Equal(palette.LimeOn))
			Expect(grid[0][2]).To(Equal(palette.SapphireOff))
			Expect(grid[1][3]).To(Equal(palette.SapphireOn))
			Expect(grid[2][4]).To(Equal(palette.OrangeOff))
		})

		It("should drop colors outside the palette", func() {
			b := mustCompile(palette.Legacy(), []string{"RXR"})
			Expect(b.RegionAt(1, 0)).To(Equal(-1))
			Expect(b.Graph().WiresByClass[palette.RedOn]).To(HaveLen(2))
		})

		It("should reject a nil image", func() {
			_, err := New(nil, palette.Legacy())
			Expect(err).To(MatchError(ErrMalformedImage))
		})
	})

	Context("forming wire regions", func() {
		It("should fold on and off tones into one wire", func() {
			b := mustCompile(palette.Legacy(), []string{
				"Rr",
				"rr",
			})
			wire, ok := b.WireAt(0, 0)
			Expect(ok).To(BeTrue())
			Expect(b.RegionAt(1, 1)).To(Equal(wire.RegionID))
			Expect(b.RegionPixels(wire.RegionID)).To(HaveLen(4))
			Expect(wire.State).To(BeTrue(), "one on pixel turns the whole wire on")
		})

		It("should start a wire off when every pixel is the dark tone", func() {
			b := mustCompile(palette.Legacy(), []string{"rrr"})
			wire, ok := b.WireAt(1, 0)
			Expect(ok).To(BeTrue())
			Expect(wire.State).To(BeFalse())
		})

		It("should join wire pixels across diagonals", func() {
			b := mustCompile(palette.Legacy(), []string{
				"R..",
				".r.",
				"..r",
			})
			Expect(b.Graph().WiresByClass[palette.RedOn]).To(HaveLen(1))
		})

		It("should keep disjoint diagonal runs as two wires", func() {
			b := mustCompile(palette.Legacy(), []string{
				"R...",
				".R..",
				"...R",
				"..R.",
			})
			Expect(b.Graph().WiresByClass[palette.RedOn]).To(HaveLen(2))
		})

		It("should let wires of different hues interleave without merging", func() {
			b := mustCompile(palette.Legacy(), []string{
				"Rb",
				"bR",
			})
			g := b.Graph()
			Expect(g.WiresByClass[palette.RedOn]).To(HaveLen(1))
			Expect(g.WiresByClass[palette.BlueOn]).To(HaveLen(1))

			red, _ := b.WireAt(0, 0)
			blue, _ := b.WireAt(1, 0)
			Expect(b.RegionAt(1, 1)).To(Equal(red.RegionID))
			Expect(b.RegionAt(0, 1)).To(Equal(blue.RegionID))
		})
	})

	Context("building the typed graph", func() {
		// Two red wires feeding two inputs of an xor, which drives a blue
		// wire through an output.
		rows := []string{
			"RmCmR",
			"..M..",
			"..b..",
		}

		It("should count regions by role", func() {
			b := mustCompile(palette.Legacy(), rows)
			s := b.Stats()
			Expect(s.Regions).To(Equal(7))
			Expect(s.Wires).To(Equal(3))
			Expect(s.Inputs).To(Equal(2))
			Expect(s.Outputs).To(Equal(1))
			Expect(s.Xors).To(Equal(1))
			Expect(s.Ands).To(Equal(0))
		})

		It("should materialise exactly the five edge kinds", func() {
			b := mustCompile(palette.Legacy(), rows)
			g := b.Graph()

			left := b.RegionAt(0, 0)
			right := b.RegionAt(4, 0)
			inLeft := b.RegionAt(1, 0)
			inRight := b.RegionAt(3, 0)
			xor := b.RegionAt(2, 0)
			out := b.RegionAt(2, 1)
			blue := b.RegionAt(2, 2)

			Expect(g.WireToInput[left]).To(Equal([]int{inLeft}))
			Expect(g.WireToInput[right]).To(Equal([]int{inRight}))
			Expect(g.InputToXor[inLeft]).To(Equal([]int{xor}))
			Expect(g.InputToXor[inRight]).To(Equal([]int{xor}))
			Expect(g.InputToAnd).To(BeEmpty())
			Expect(g.ToOutput[xor]).To(Equal([]int{out}))
			Expect(g.ToOutput[inLeft]).To(BeEmpty())
			Expect(g.OutputToWire[out]).To(Equal([]int{blue}))

			// No edge leads back from the blue wire, and wire-to-wire edges
			// do not exist at all.
			Expect(g.WireToInput[blue]).To(BeEmpty())
		})

		It("should give inert regions no descriptor", func() {
			b := mustCompile(palette.Legacy(), []string{"GgY"})
			s := b.Stats()
			Expect(s.Regions).To(Equal(3))
			Expect(s.Wires).To(Equal(0))
			Expect(s.Inputs + s.Outputs + s.Xors + s.Ands).To(Equal(0))

			_, isWire := b.WireAt(0, 0)
			Expect(isWire).To(BeFalse())
			_, isNode := b.NodeAt(0, 0)
			Expect(isNode).To(BeFalse())
		})
	})

	Context("compiling again from the rendered image", func() {
		It("should produce a structurally equal board", func() {
			rows := []string{
				"RmCmr",
				"..M..",
				"..b..",
			}
			first := mustCompile(palette.Legacy(), rows)
			first.Render(true, true)

			second, err := New(first.Image(), palette.Legacy())
			Expect(err).ToNot(HaveOccurred())

			Expect(second.Stats()).To(Equal(first.Stats()))
			Expect(second.Graph()).To(Equal(first.Graph()))

			wasOn, _ := first.WireAt(0, 0)
			isOn, _ := second.WireAt(0, 0)
			Expect(isOn.State).To(Equal(wasOn.State))
		})
	})
})
