package board

// Iterate advances the simulation by one tick, then repaints the resel grid
// and/or the image if asked to. The tick runs in four phases:
//
//	A: wires drive input nodes, which accumulate into xor, and, output nodes
//	B: xor and and nodes drive output nodes
//	C: output nodes drive the next state of wires
//	D: wires commit, all node state resets
//
// Phase C is deferred so every wire observes a simultaneous update: a wire's
// next state depends only on this tick's outputs, never on wires that
// happened to commit earlier. Within each phase the operators are
// commutative, so iteration order does not affect the result.
func (b *Board) Iterate(updateGrid, updateImage bool) {
	b.driveInputs()
	b.driveOutputs()
	b.driveWires()
	b.commitAndReset()

	if updateGrid || updateImage {
		b.Render(updateGrid, updateImage)
	}
}

// driveInputs is phase A. XOR accumulates destructively so it sees every
// input edge of the tick before it fires; AND latches to nodeLatched on the
// first false input and never recovers within the tick.
func (b *Board) driveInputs() {
	for _, class := range b.pal.WireClasses() {
		for _, w := range b.wiresByClass[class] {
			for _, inputID := range b.adjInputs[w.RegionID] {
				for _, xorID := range b.adjXors[inputID] {
					x := b.nodeByRegion[xorID]
					if (x.state != nodeUnseen) != w.State {
						x.state = nodeSawTrue
					} else {
						x.state = nodeUnseen
					}
				}
				for _, andID := range b.adjAnds[inputID] {
					a := b.nodeByRegion[andID]
					if a.state == nodeLatched {
						continue
					}
					if w.State {
						a.state = nodeSawTrue
					} else {
						a.state = nodeLatched
					}
				}
				for _, outID := range b.adjOutputs[inputID] {
					if w.State {
						b.nodeByRegion[outID].state = nodeSawTrue
					}
				}
			}
		}
	}
}

// driveOutputs is phase B. An AND fires only from nodeSawTrue: with no
// inputs this tick it stays at nodeUnseen and is silent, so an AND over the
// empty set is false here.
func (b *Board) driveOutputs() {
	for _, x := range b.xors {
		if x.state == nodeUnseen {
			continue
		}
		for _, outID := range b.adjOutputs[x.RegionID] {
			b.nodeByRegion[outID].state = nodeSawTrue
		}
	}
	for _, a := range b.ands {
		if a.state != nodeSawTrue {
			continue
		}
		for _, outID := range b.adjOutputs[a.RegionID] {
			b.nodeByRegion[outID].state = nodeSawTrue
		}
	}
}

// driveWires is phase C.
func (b *Board) driveWires() {
	for _, o := range b.outputs {
		if o.state == nodeUnseen {
			continue
		}
		for _, wireID := range b.adjWires[o.RegionID] {
			b.wireByRegion[wireID].nextState = true
		}
	}
}

// commitAndReset is phase D: every wire takes its accumulated next state and
// every node returns to zero, restoring the tick-boundary invariants.
func (b *Board) commitAndReset() {
	for _, class := range b.pal.WireClasses() {
		for _, w := range b.wiresByClass[class] {
			w.State = w.nextState
			w.nextState = false
		}
	}
	for _, nodes := range [][]*Node{b.inputs, b.outputs, b.xors, b.ands} {
		for _, n := range nodes {
			n.state = nodeUnseen
		}
	}
}
