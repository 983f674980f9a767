package main

import (
	"fmt"
	"math/cmplx"
	"math/rand/v2"
	"sort"
	"strings"
)

// ResultType selects what a backend run returns.
type ResultType int

const (
	ResultStateVector ResultType = iota
	ResultDensityMatrix
)

// Backend executes source circuits on the simulator: convert, run, then
// package the raw output into a Result.
type Backend struct {
	ResultType ResultType
}

func NewBackend(rt ResultType) *Backend {
	return &Backend{ResultType: rt}
}

func (b *Backend) SupportsState() bool         { return b.ResultType == ResultStateVector }
func (b *Backend) SupportsDensityMatrix() bool { return b.ResultType == ResultDensityMatrix }

// Result packages one backend run. State or Density is populated
// according to the backend's result type; Shots holds sampled measurement
// outcomes when the circuit measures anything and shots > 0.
type Result struct {
	State   []Complex
	Density [][]Complex

	// Shots[s] lists the sampled bit per measured qubit, in the order the
	// measurement commands appear in the circuit.
	Shots [][]int
}

// Counts aggregates shots into bitstring counts, first measured qubit
// leftmost.
func (r *Result) Counts() map[string]int {
	if len(r.Shots) == 0 {
		return nil
	}
	counts := make(map[string]int)
	var sb strings.Builder
	for _, shot := range r.Shots {
		sb.Reset()
		for _, bit := range shot {
			sb.WriteByte('0' + byte(bit))
		}
		counts[sb.String()]++
	}
	return counts
}

// Run converts the circuit and simulates it. The conversion reverses the
// qubit indexing (the simulator linearizes amplitudes with qubit 0 least
// significant, the opposite of the circuit's basis order) and resolves any
// implicit permutation into explicit SWAPs. Sampling is seeded and
// deterministic for equal seeds.
func (b *Backend) Run(c *Circuit, shots int, seed uint64) (*Result, error) {
	sim, err := ToSimCircuit(c, true, true)
	if err != nil {
		return nil, err
	}
	state := sim.Simulate()

	res := &Result{}
	switch b.ResultType {
	case ResultStateVector:
		res.State = state.Clone().Amplitudes
	case ResultDensityMatrix:
		res.Density = state.DensityMatrix()
	default:
		return nil, fmt.Errorf("unknown result type %d", b.ResultType)
	}

	measured := measuredIndices(c)
	if shots > 0 && len(measured) > 0 {
		res.Shots = sampleShots(state, measured, shots, seed)
	}
	return res, nil
}

// measuredIndices returns the simulator index of each measured qubit, in
// measurement-command order, using the same reversed index map the
// conversion used.
func measuredIndices(c *Circuit) []int {
	indexMap := qubitIndexMap(c, true)
	var measured []int
	for _, cmd := range c.Commands {
		if cmd.Op == OpMeasure {
			measured = append(measured, indexMap[cmd.Qubits[0]])
		}
	}
	return measured
}

// sampleShots draws basis states from the final distribution and projects
// each draw onto the measured qubits.
func sampleShots(state *StateVector, measured []int, shots int, seed uint64) [][]int {
	probs := state.Probabilities()
	cumulative := make([]float64, len(probs))
	sum := 0.0
	for i, p := range probs {
		sum += p
		cumulative[i] = sum
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([][]int, shots)
	for s := range shots {
		r := rng.Float64() * sum
		basis := sort.SearchFloat64s(cumulative, r)
		if basis >= len(probs) {
			basis = len(probs) - 1
		}
		shot := make([]int, len(measured))
		for i, q := range measured {
			shot[i] = (basis >> q) & 1
		}
		out[s] = shot
	}
	return out
}

// PauliOp is one factor in a Pauli string: the operator P applied to the
// simulator qubit Qubit.
type PauliOp struct {
	Qubit int
	P     byte // 'X', 'Y' or 'Z'
}

// ExpectationPauli computes <psi|P|psi> for a Pauli string. The result of
// a Hermitian observable is real; the imaginary part is discarded.
func ExpectationPauli(state *StateVector, ops []PauliOp) float64 {
	applied := state.Clone()
	for _, op := range ops {
		switch op.P {
		case 'X':
			applied.applyX(op.Qubit)
		case 'Y':
			applied.applyY(op.Qubit)
		case 'Z':
			applied.applyZ(op.Qubit)
		}
	}
	var acc Complex
	for i, a := range state.Amplitudes {
		acc += cmplx.Conj(a) * applied.Amplitudes[i]
	}
	return real(acc)
}
