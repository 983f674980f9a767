package main

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestQASMRoundTrip(t *testing.T) {
	c := &Circuit{}
	c.AddRegister("q", 2)
	c.AddRegister("anc", 1)
	c.H(Qubit{Reg: "q", Index: 0})
	c.CX(Qubit{Reg: "q", Index: 0}, Qubit{Reg: "anc", Index: 0})
	c.Rx(0.5, Qubit{Reg: "q", Index: 1})
	c.Barrier()
	c.Measure(Qubit{Reg: "q", Index: 0}, 0)

	qasm := c.ToQASM()

	c2 := &Circuit{}
	if err := c2.ParseQASM(qasm); err != nil {
		t.Fatalf("ParseQASM: %v", err)
	}

	if len(c2.Registers) != 2 {
		t.Fatalf("parsed %d registers, want 2", len(c2.Registers))
	}
	if c2.Registers[1].Name != "anc" || c2.Registers[1].Size != 1 {
		t.Errorf("register 1 = %+v, want anc[1]", c2.Registers[1])
	}
	if len(c2.Commands) != len(c.Commands) {
		t.Fatalf("parsed %d commands, want %d\nqasm:\n%s", len(c2.Commands), len(c.Commands), qasm)
	}
	for i, cmd := range c2.Commands {
		if cmd.Op != c.Commands[i].Op {
			t.Errorf("command %d is %s, want %s", i, cmd.OpName(), c.Commands[i].OpName())
		}
	}

	cx := c2.Commands[1]
	if cx.Qubits[0] != (Qubit{Reg: "q", Index: 0}) || cx.Qubits[1] != (Qubit{Reg: "anc", Index: 0}) {
		t.Errorf("cx operands = %v, want q[0], anc[0]", cx.Qubits)
	}
}

func TestParseAngleUnits(t *testing.T) {
	// QASM carries radians; the command stream carries half-turns.
	qasm := `OPENQASM 2.0;
include "qelib1.inc";

qreg q[1];

rx(pi/2) q[0];
u3(pi, pi/2, 0.25) q[0];`

	c := &Circuit{}
	if err := c.ParseQASM(qasm); err != nil {
		t.Fatalf("ParseQASM: %v", err)
	}
	if len(c.Commands) != 2 {
		t.Fatalf("parsed %d commands, want 2", len(c.Commands))
	}
	if got := c.Commands[0].Params[0]; math.Abs(got-0.5) > 1e-12 {
		t.Errorf("rx angle = %v half-turns, want 0.5", got)
	}
	u3 := c.Commands[1]
	want := []float64{1, 0.5, 0.25 / math.Pi}
	for i, w := range want {
		if math.Abs(u3.Params[i]-w) > 1e-12 {
			t.Errorf("u3 param %d = %v, want %v", i, u3.Params[i], w)
		}
	}
}

func TestParseUnknownGateSurvivesToTranslator(t *testing.T) {
	qasm := `OPENQASM 2.0;
qreg q[3];
h q[0];
ccx q[0], q[1], q[2];`

	c := &Circuit{}
	if err := c.ParseQASM(qasm); err != nil {
		t.Fatalf("ParseQASM: %v", err)
	}
	if c.Commands[1].Op != OpUnknown || c.Commands[1].Name != "ccx" {
		t.Fatalf("command 1 = %s, want unknown ccx", c.Commands[1].OpName())
	}

	_, err := ToSimCircuit(c, false, false)
	var ue *UnsupportedOpError
	if !errors.As(err, &ue) || ue.Op != "ccx" {
		t.Errorf("translating parsed circuit: err = %v, want UnsupportedOpError for ccx", err)
	}
}

func TestEmitUsesRegisterNames(t *testing.T) {
	c := &Circuit{}
	c.AddRegister("a", 1)
	c.AddRegister("b", 1)
	c.CX(Qubit{Reg: "a", Index: 0}, Qubit{Reg: "b", Index: 0})

	qasm := c.ToQASM()
	if !strings.Contains(qasm, "qreg a[1];") || !strings.Contains(qasm, "qreg b[1];") {
		t.Errorf("missing register declarations:\n%s", qasm)
	}
	if !strings.Contains(qasm, "cx a[0], b[0];") {
		t.Errorf("missing cross-register cx:\n%s", qasm)
	}
}

func TestLayoutScheduling(t *testing.T) {
	c := NewCircuit(3)
	q0, q1, q2 := c.QubitAt(0), c.QubitAt(1), c.QubitAt(2)
	c.H(q0)
	c.H(q1) // independent: same step as H q0
	c.CX(q0, q2) // spans all three wires, must wait for both
	c.X(q1)      // wire 1 is inside the CX span, so it comes after

	lay := newLayout(c)
	steps := make([]int, len(lay.placed))
	for i, lc := range lay.placed {
		steps[i] = lc.step
	}
	want := []int{0, 0, 1, 2}
	for i, w := range want {
		if steps[i] != w {
			t.Errorf("command %d placed at step %d, want %d", i, steps[i], w)
		}
	}

	if lc := lay.commandAt(1, 2); lc == nil || lc.cmd.Op != OpCX {
		t.Errorf("commandAt(1,2) did not find the CX target")
	}
	if info := lay.cell(1, 1); !info.passThrough {
		t.Errorf("wire 1 at step 1 should render as pass-through")
	}
}
