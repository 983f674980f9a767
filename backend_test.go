package main

import (
	"math"
	"testing"
)

func TestBackendCapabilities(t *testing.T) {
	svb := NewBackend(ResultStateVector)
	dmb := NewBackend(ResultDensityMatrix)

	if !svb.SupportsState() || svb.SupportsDensityMatrix() {
		t.Errorf("state backend capabilities wrong")
	}
	if dmb.SupportsState() || !dmb.SupportsDensityMatrix() {
		t.Errorf("density backend capabilities wrong")
	}
}

func TestRunBellPairShots(t *testing.T) {
	c := NewCircuit(2)
	q0, q1 := c.QubitAt(0), c.QubitAt(1)
	c.H(q0)
	c.CX(q0, q1)
	c.Measure(q0, 0)
	c.Measure(q1, 1)

	res, err := NewBackend(ResultStateVector).Run(c, 200, 7)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.State) != 4 {
		t.Fatalf("state has %d amplitudes, want 4", len(res.State))
	}
	if len(res.Shots) != 200 {
		t.Fatalf("got %d shots, want 200", len(res.Shots))
	}

	counts := res.Counts()
	total := 0
	for key, n := range counts {
		if key != "00" && key != "11" {
			t.Errorf("impossible Bell outcome %q sampled %d times", key, n)
		}
		total += n
	}
	if total != 200 {
		t.Errorf("counts sum to %d, want 200", total)
	}
}

func TestSeededSamplingIsDeterministic(t *testing.T) {
	c := NewCircuit(1)
	c.H(c.QubitAt(0))
	c.Measure(c.QubitAt(0), 0)

	b := NewBackend(ResultStateVector)
	first, err := b.Run(c, 50, 42)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	second, err := b.Run(c, 50, 42)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i := range first.Shots {
		if first.Shots[i][0] != second.Shots[i][0] {
			t.Fatalf("shot %d differs between runs with equal seeds", i)
		}
	}
}

func TestBasisOrderReversal(t *testing.T) {
	// The backend converts with the index map reversed, so an X on the
	// first circuit qubit excites the most significant simulator bit.
	c := NewCircuit(2)
	c.X(c.QubitAt(0))

	res, err := NewBackend(ResultStateVector).Run(c, 0, 0)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !approxC(res.State[2], 1) {
		t.Errorf("amp[2] = %v, want 1", res.State[2])
	}
	if !approxC(res.State[1], 0) {
		t.Errorf("amp[1] = %v, want 0", res.State[1])
	}
}

func TestRunWithImplicitPermutation(t *testing.T) {
	c := NewCircuit(4)
	c.X(c.QubitAt(0))
	c.SetImplicitPermutation(map[Qubit]Qubit{
		c.QubitAt(0): c.QubitAt(1),
		c.QubitAt(1): c.QubitAt(2),
		c.QubitAt(2): c.QubitAt(3),
		c.QubitAt(3): c.QubitAt(0),
	})
	for i := range 4 {
		c.Measure(c.QubitAt(i), i)
	}

	res, err := NewBackend(ResultStateVector).Run(c, 100, 3)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// the permutation moves q0's excitation to wire 1
	counts := res.Counts()
	if counts["0100"] != 100 {
		t.Errorf("counts = %v, want all 100 shots on 0100", counts)
	}
}

func TestRunDensityMatrix(t *testing.T) {
	c := NewCircuit(2)
	c.H(c.QubitAt(0))

	res, err := NewBackend(ResultDensityMatrix).Run(c, 0, 0)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.State != nil {
		t.Errorf("density backend also returned a state vector")
	}
	if len(res.Density) != 4 {
		t.Fatalf("density is %dx?, want 4x4", len(res.Density))
	}
	var trace Complex
	for i := range res.Density {
		trace += res.Density[i][i]
	}
	if !approxC(trace, 1) {
		t.Errorf("trace = %v, want 1", trace)
	}
}

func TestRunPropagatesUnsupported(t *testing.T) {
	c := NewCircuit(2)
	c.Commands = append(c.Commands, Command{
		Op: OpUnknown, Name: "rzz",
		Qubits: []Qubit{c.QubitAt(0), c.QubitAt(1)},
	})

	res, err := NewBackend(ResultStateVector).Run(c, 10, 0)
	if err == nil {
		t.Fatalf("Run succeeded on an unsupported op")
	}
	if res != nil {
		t.Errorf("got a result alongside the error")
	}
}

func TestExpectationPauli(t *testing.T) {
	plus := NewStateVector(1)
	plus.applyH(0)

	if got := ExpectationPauli(plus, []PauliOp{{Qubit: 0, P: 'X'}}); math.Abs(got-1) > 1e-9 {
		t.Errorf("<+|X|+> = %v, want 1", got)
	}
	if got := ExpectationPauli(plus, []PauliOp{{Qubit: 0, P: 'Z'}}); math.Abs(got) > 1e-9 {
		t.Errorf("<+|Z|+> = %v, want 0", got)
	}

	zero := NewStateVector(1)
	if got := ExpectationPauli(zero, []PauliOp{{Qubit: 0, P: 'Z'}}); math.Abs(got-1) > 1e-9 {
		t.Errorf("<0|Z|0> = %v, want 1", got)
	}
}
