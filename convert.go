package main

import (
	"fmt"
	"math"
)

// UnsupportedOpError reports a circuit operation the translator has no
// rule for. The whole conversion is aborted; no partial circuit is built.
type UnsupportedOpError struct {
	Op string
}

func (e *UnsupportedOpError) Error() string {
	return fmt.Sprintf("unsupported operation %q in circuit", e.Op)
}

// registerOffsets returns, for each register, the number of qubits in all
// registers declared before it. Pure function of the register list.
func registerOffsets(c *Circuit) map[string]int {
	offsets := make(map[string]int, len(c.Registers))
	preceding := 0
	for _, r := range c.Registers {
		offsets[r.Name] = preceding
		preceding += r.Size
	}
	return offsets
}

// qubitIndexMap maps every qubit to its absolute position in the circuit:
// the register's offset plus the qubit's position within the register.
// With reverse set, position p becomes n-1-p, reconciling simulators that
// put qubit 0 at the opposite end of the basis ordering. The result is a
// bijection onto [0, n).
func qubitIndexMap(c *Circuit, reverse bool) map[Qubit]int {
	offsets := registerOffsets(c)
	n := c.NumQubits()
	indexMap := make(map[Qubit]int, n)
	for _, r := range c.Registers {
		for i := range r.Size {
			pos := offsets[r.Name] + i
			if reverse {
				pos = n - 1 - pos
			}
			indexMap[Qubit{Reg: r.Name, Index: i}] = pos
		}
	}
	return indexMap
}

// singleQubitKinds maps parameterless single-qubit operations to their
// simulator gate kinds.
var singleQubitKinds = map[OpType]SimGateKind{
	OpX:   SimX,
	OpY:   SimY,
	OpZ:   SimZ,
	OpH:   SimH,
	OpS:   SimS,
	OpSdg: SimSdg,
	OpT:   SimT,
	OpTdg: SimTdg,
}

var rotationKinds = map[OpType]SimGateKind{
	OpRx: SimRX,
	OpRy: SimRY,
	OpRz: SimRZ,
}

var ibmKinds = map[OpType]SimGateKind{
	OpU1: SimU1,
	OpU2: SimU2,
	OpU3: SimU3,
}

var twoQubitKinds = map[OpType]SimGateKind{
	OpCX:   SimCX,
	OpCZ:   SimCZ,
	OpSWAP: SimSWAP,
}

// ToSimCircuit translates a register circuit into a simulator circuit,
// gate by gate in program order. The caller's circuit is never mutated:
// translation works on a copy, which also absorbs the implicit-permutation
// normalization when replaceImplicitSwaps is set.
//
// Angle handling: the command stream keeps angles in half-turns, the
// simulator wants radians, so every parameter is scaled by pi. Rotation
// gates are additionally negated — the simulator's rotation gates follow
// the exp(+i·theta·P/2) convention, opposite in sign to the stream's.
// The U-gate family shares the simulator's phase convention and is scaled
// only. Measurements and barriers produce no simulator gate.
func ToSimCircuit(c *Circuit, reverseIndex, replaceImplicitSwaps bool) (*SimCircuit, error) {
	circ := c.Copy()
	if replaceImplicitSwaps {
		circ.ReplaceImplicitWireSwaps()
	}

	indexMap := qubitIndexMap(circ, reverseIndex)
	sim := NewSimCircuit(circ.NumQubits())

	for _, cmd := range circ.Commands {
		switch cmd.Op.Category() {
		case CatIBM:
			params := make([]float64, len(cmd.Params))
			for i, p := range cmd.Params {
				params[i] = p * math.Pi
			}
			sim.Add(SimGate{
				Kind:   ibmKinds[cmd.Op],
				Target: indexMap[cmd.Qubits[0]],
				Params: params,
			})

		case CatSingleQubit:
			sim.Add(SimGate{
				Kind:   singleQubitKinds[cmd.Op],
				Target: indexMap[cmd.Qubits[0]],
			})

		case CatRotation:
			// Sign flip is load-bearing: see the angle note above.
			angle := -(cmd.Params[0] * math.Pi)
			sim.Add(SimGate{
				Kind:   rotationKinds[cmd.Op],
				Target: indexMap[cmd.Qubits[0]],
				Params: []float64{angle},
			})

		case CatTwoQubit:
			sim.Add(SimGate{
				Kind:    twoQubitKinds[cmd.Op],
				Control: indexMap[cmd.Qubits[0]],
				Target:  indexMap[cmd.Qubits[1]],
			})

		case CatSkip:
			// Measurements belong to the execution backend; barriers are
			// compiler hints with no effect on a simulator.

		default:
			return nil, &UnsupportedOpError{Op: cmd.OpName()}
		}
	}

	return sim, nil
}
