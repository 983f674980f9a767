package main

// The command stream is ordered but has no notion of columns; the grid
// view needs one. laidCommand places each command at the earliest step
// after every earlier command that touches an overlapping wire span, which
// is exactly the longest dependency chain ending at that command.

// laidCommand is one command placed on the display grid.
type laidCommand struct {
	cmd      *Command
	streamID int // index into Circuit.Commands
	step     int
	wires    []int // flat wire per qubit operand, same order as operands
	minWire  int
	maxWire  int
}

// twoQubit reports whether the command renders as a control/target pair.
func (lc *laidCommand) twoQubit() bool {
	return lc.cmd.Op.Category() == CatTwoQubit
}

// layout schedules a circuit's command stream onto a step grid.
type layout struct {
	numWires int
	steps    int
	placed   []laidCommand
}

// newLayout builds the grid layout for a circuit. Wire order is flat
// register-declaration order (no reversal; the view shows the circuit's
// own basis order).
func newLayout(c *Circuit) *layout {
	wireOf := qubitIndexMap(c, false)
	lay := &layout{numWires: c.NumQubits()}

	// next free step per wire
	level := make([]int, lay.numWires)

	for i := range c.Commands {
		cmd := &c.Commands[i]
		if len(cmd.Qubits) == 0 {
			continue
		}
		lc := laidCommand{cmd: cmd, streamID: i}
		lc.minWire = lay.numWires
		for _, q := range cmd.Qubits {
			w := wireOf[q]
			lc.wires = append(lc.wires, w)
			lc.minWire = min(lc.minWire, w)
			lc.maxWire = max(lc.maxWire, w)
		}
		// Two-qubit gates draw a vertical connector, so the whole span
		// blocks the column, not just the operand wires.
		for w := lc.minWire; w <= lc.maxWire; w++ {
			lc.step = max(lc.step, level[w])
		}
		for w := lc.minWire; w <= lc.maxWire; w++ {
			level[w] = lc.step + 1
		}
		lay.placed = append(lay.placed, lc)
		lay.steps = max(lay.steps, lc.step+1)
	}
	return lay
}

// commandAt returns the placed command whose operand wires include the
// given cell, or nil.
func (l *layout) commandAt(step, wire int) *laidCommand {
	for i := range l.placed {
		lc := &l.placed[i]
		if lc.step != step {
			continue
		}
		for _, w := range lc.wires {
			if w == wire {
				return lc
			}
		}
	}
	return nil
}

// spanAt returns the placed command whose wire span covers the given
// cell, or nil. Distinct from commandAt: pass-through wires between a
// control and its target land here.
func (l *layout) spanAt(step, wire int) *laidCommand {
	for i := range l.placed {
		lc := &l.placed[i]
		if lc.step == step && wire >= lc.minWire && wire <= lc.maxWire {
			return lc
		}
	}
	return nil
}

// cellInfo describes what occupies a single cell in the circuit grid.
type cellInfo struct {
	gate        *laidCommand
	isControl   bool
	isTarget    bool
	isMeasure   bool
	isBarrier   bool
	vertAbove   bool
	vertBelow   bool
	passThrough bool
}

// cell returns rendering information for the cell at (step, wire).
func (l *layout) cell(step, wire int) cellInfo {
	var info cellInfo

	lc := l.spanAt(step, wire)
	if lc == nil {
		return info
	}

	onOperand := false
	for _, w := range lc.wires {
		if w == wire {
			onOperand = true
			break
		}
	}

	switch {
	case lc.cmd.Op == OpBarrier:
		info.isBarrier = true
	case onOperand:
		info.gate = lc
		info.isMeasure = lc.cmd.Op == OpMeasure
		if lc.twoQubit() {
			info.isControl = lc.wires[0] == wire
			info.isTarget = lc.wires[1] == wire
		}
	default:
		info.gate = lc
		info.passThrough = true
	}

	if lc.twoQubit() {
		if wire > lc.minWire {
			info.vertAbove = true
		}
		if wire < lc.maxWire {
			info.vertBelow = true
		}
	}

	return info
}
