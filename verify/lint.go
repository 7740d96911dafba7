// Package verify runs static checks over a compiled circuit and renders the
// findings as a report. Nothing here changes simulation behaviour; a circuit
// with issues still runs, the issues just explain why it may not do what its
// author drew.
package verify

import (
	"fmt"
	"sort"

	"github.com/resolang/reso/board"
	"github.com/resolang/reso/palette"
)

// IssueKind classifies a lint finding.
type IssueKind int

const (
	// IssueIsolatedWire is a wire touching no input and driven by no output.
	// It goes dark after one tick and stays dark; likely decoration drawn in
	// a wire color.
	IssueIsolatedWire IssueKind = iota

	// IssueUndrivenWire is a wire that feeds inputs but is driven by no
	// output: whatever it starts as, it is off from tick one onward.
	IssueUndrivenWire

	// IssueDanglingInput is an input node with no xor, and, or output
	// neighbour; the values it reads go nowhere.
	IssueDanglingInput

	// IssueUndrivenInput is an input node no wire touches.
	IssueUndrivenInput

	// IssueSilentOutput is an output node with no wire to drive.
	IssueSilentOutput

	// IssueUndrivenOutput is an output node nothing feeds.
	IssueUndrivenOutput

	// IssueDegenerateAnd is an and node with fewer than two input edges; it
	// either never fires or is a plain buffer.
	IssueDegenerateAnd
)

var issueKindNames = []string{
	"isolated wire",
	"undriven wire",
	"dangling input",
	"undriven input",
	"silent output",
	"undriven output",
	"degenerate and",
}

// Name returns the name of the issue kind.
func (k IssueKind) Name() string {
	if int(k) < len(issueKindNames) {
		return issueKindNames[k]
	}
	return fmt.Sprintf("issue %d", int(k))
}

// An Issue is one lint finding, anchored to the region it is about.
type Issue struct {
	Kind     IssueKind
	RegionID int
	Message  string
}

// RunLint checks the typed graph of a compiled board and returns every issue
// found. Wire issues come first, ordered by wire class code and then region
// id; input, output and and issues follow, each group in region id order.
func RunLint(b *board.Board) []Issue {
	g := b.Graph()
	var issues []Issue

	drivenWires := map[int]bool{}
	for _, wires := range g.OutputToWire {
		for _, id := range wires {
			drivenWires[id] = true
		}
	}

	drivenOutputs := map[int]bool{}
	for _, outs := range g.ToOutput {
		for _, id := range outs {
			drivenOutputs[id] = true
		}
	}

	// Input edges per logic node, counted over distinct input regions. XOR
	// semantics reduce over these edges, so this is the fan-in that matters.
	logicFanIn := map[int]int{}
	for _, in := range g.Inputs {
		for _, id := range g.InputToXor[in] {
			logicFanIn[id]++
		}
		for _, id := range g.InputToAnd[in] {
			logicFanIn[id]++
		}
	}

	for _, class := range wireClassOrder(g) {
		for _, id := range g.WiresByClass[class] {
			feeds := len(g.WireToInput[id]) > 0
			driven := drivenWires[id]
			switch {
			case !feeds && !driven:
				issues = append(issues, Issue{
					Kind:     IssueIsolatedWire,
					RegionID: id,
					Message:  fmt.Sprintf("wire %d touches no input and no output drives it", id),
				})
			case feeds && !driven:
				issues = append(issues, Issue{
					Kind:     IssueUndrivenWire,
					RegionID: id,
					Message:  fmt.Sprintf("wire %d is read by inputs but nothing drives it; it is off after tick one", id),
				})
			}
		}
	}

	for _, id := range g.Inputs {
		if len(g.InputToXor[id])+len(g.InputToAnd[id])+len(g.ToOutput[id]) == 0 {
			issues = append(issues, Issue{
				Kind:     IssueDanglingInput,
				RegionID: id,
				Message:  fmt.Sprintf("input %d drives no xor, and, or output", id),
			})
		}
	}
	undrivenInputs := map[int]bool{}
	for _, id := range g.Inputs {
		undrivenInputs[id] = true
	}
	for _, inputs := range g.WireToInput {
		for _, id := range inputs {
			delete(undrivenInputs, id)
		}
	}
	for _, id := range g.Inputs {
		if undrivenInputs[id] {
			issues = append(issues, Issue{
				Kind:     IssueUndrivenInput,
				RegionID: id,
				Message:  fmt.Sprintf("input %d is touched by no wire", id),
			})
		}
	}

	for _, id := range g.Outputs {
		if len(g.OutputToWire[id]) == 0 {
			issues = append(issues, Issue{
				Kind:     IssueSilentOutput,
				RegionID: id,
				Message:  fmt.Sprintf("output %d drives no wire", id),
			})
		}
		if !drivenOutputs[id] {
			issues = append(issues, Issue{
				Kind:     IssueUndrivenOutput,
				RegionID: id,
				Message:  fmt.Sprintf("output %d is fed by nothing", id),
			})
		}
	}

	for _, id := range g.Ands {
		if logicFanIn[id] < 2 {
			issues = append(issues, Issue{
				Kind:     IssueDegenerateAnd,
				RegionID: id,
				Message:  fmt.Sprintf("and %d has %d input edge(s); it needs two or more to gate anything", id, logicFanIn[id]),
			})
		}
	}

	return issues
}

// wireClassOrder returns the graph's wire classes in a stable order so lint
// output is reproducible.
func wireClassOrder(g board.Graph) []palette.Resel {
	classes := make([]palette.Resel, 0, len(g.WiresByClass))
	for class := range g.WiresByClass {
		classes = append(classes, class)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })
	return classes
}
