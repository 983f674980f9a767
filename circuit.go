package main

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Register is a named, ordered group of qubits. Registers are disjoint and
// collectively cover every qubit in a circuit; names are unique within one
// circuit.
type Register struct {
	Name string
	Size int
}

// Qubit identifies one qubit by register name and 0-based position within
// that register. Equality is structural, so Qubit works as a map key.
type Qubit struct {
	Reg   string
	Index int
}

func (q Qubit) String() string {
	return fmt.Sprintf("%s[%d]", q.Reg, q.Index)
}

// Command is one operation in the instruction stream: an operation type,
// its qubit operands in order, classical-bit operands (only measurements
// use these), and angle parameters in half-turns (fractions of pi).
type Command struct {
	Op     OpType
	Name   string // raw mnemonic when Op is OpUnknown
	Qubits []Qubit
	Bits   []int
	Params []float64
}

// OpName returns the operation's display name, preserving the raw mnemonic
// for operations outside the known vocabulary.
func (c Command) OpName() string {
	if c.Op == OpUnknown && c.Name != "" {
		return c.Name
	}
	return c.Op.String()
}

// Circuit is a register-structured quantum circuit: an ordered register
// list, a program-order command stream, and an optional implicit
// end-of-circuit qubit permutation recorded as metadata.
type Circuit struct {
	Registers []Register
	Commands  []Command

	// Permutation maps each qubit to the wire it ends the circuit on.
	// Qubits absent from the map stay in place. Nil means identity.
	Permutation map[Qubit]Qubit
}

// NewCircuit creates a circuit with a single default register "q" of the
// given size.
func NewCircuit(n int) *Circuit {
	c := &Circuit{}
	if n > 0 {
		c.AddRegister("q", n)
	}
	return c
}

// AddRegister appends a register. Register names must be unique; a
// duplicate name is a programming error in the caller.
func (c *Circuit) AddRegister(name string, size int) Register {
	r := Register{Name: name, Size: size}
	c.Registers = append(c.Registers, r)
	return r
}

// NumQubits returns the total qubit count across all registers.
func (c *Circuit) NumQubits() int {
	n := 0
	for _, r := range c.Registers {
		n += r.Size
	}
	return n
}

// Qubits returns every qubit in register-declaration order, positions
// ascending within each register.
func (c *Circuit) Qubits() []Qubit {
	qs := make([]Qubit, 0, c.NumQubits())
	for _, r := range c.Registers {
		for i := range r.Size {
			qs = append(qs, Qubit{Reg: r.Name, Index: i})
		}
	}
	return qs
}

// QubitAt returns the qubit at flat position i in register-declaration
// order. It panics if i is out of range.
func (c *Circuit) QubitAt(i int) Qubit {
	for _, r := range c.Registers {
		if i < r.Size {
			return Qubit{Reg: r.Name, Index: i}
		}
		i -= r.Size
	}
	panic(fmt.Sprintf("qubit position %d out of range", i))
}

// Apply appends a command to the instruction stream.
func (c *Circuit) Apply(op OpType, params []float64, qubits ...Qubit) {
	c.Commands = append(c.Commands, Command{Op: op, Qubits: qubits, Params: params})
}

func (c *Circuit) H(q Qubit)   { c.Apply(OpH, nil, q) }
func (c *Circuit) X(q Qubit)   { c.Apply(OpX, nil, q) }
func (c *Circuit) Y(q Qubit)   { c.Apply(OpY, nil, q) }
func (c *Circuit) Z(q Qubit)   { c.Apply(OpZ, nil, q) }
func (c *Circuit) S(q Qubit)   { c.Apply(OpS, nil, q) }
func (c *Circuit) Sdg(q Qubit) { c.Apply(OpSdg, nil, q) }
func (c *Circuit) T(q Qubit)   { c.Apply(OpT, nil, q) }
func (c *Circuit) Tdg(q Qubit) { c.Apply(OpTdg, nil, q) }

// Rotation and U-gate angles are in half-turns, matching the stream's
// parameter convention.
func (c *Circuit) Rx(angle float64, q Qubit) { c.Apply(OpRx, []float64{angle}, q) }
func (c *Circuit) Ry(angle float64, q Qubit) { c.Apply(OpRy, []float64{angle}, q) }
func (c *Circuit) Rz(angle float64, q Qubit) { c.Apply(OpRz, []float64{angle}, q) }

func (c *Circuit) U1(lambda float64, q Qubit) { c.Apply(OpU1, []float64{lambda}, q) }
func (c *Circuit) U2(phi, lambda float64, q Qubit) {
	c.Apply(OpU2, []float64{phi, lambda}, q)
}
func (c *Circuit) U3(theta, phi, lambda float64, q Qubit) {
	c.Apply(OpU3, []float64{theta, phi, lambda}, q)
}

func (c *Circuit) CX(control, target Qubit) { c.Apply(OpCX, nil, control, target) }
func (c *Circuit) CZ(control, target Qubit) { c.Apply(OpCZ, nil, control, target) }
func (c *Circuit) SWAP(a, b Qubit)          { c.Apply(OpSWAP, nil, a, b) }

// Measure appends a measurement of q into classical bit cbit.
func (c *Circuit) Measure(q Qubit, cbit int) {
	c.Commands = append(c.Commands, Command{Op: OpMeasure, Qubits: []Qubit{q}, Bits: []int{cbit}})
}

// Barrier appends a barrier over the given qubits (all qubits when none
// are given).
func (c *Circuit) Barrier(qubits ...Qubit) {
	if len(qubits) == 0 {
		qubits = c.Qubits()
	}
	c.Apply(OpBarrier, nil, qubits...)
}

// SetImplicitPermutation records an end-of-circuit wire permutation as
// metadata instead of explicit SWAP gates.
func (c *Circuit) SetImplicitPermutation(perm map[Qubit]Qubit) {
	c.Permutation = perm
}

// Copy returns a deep copy of the circuit.
func (c *Circuit) Copy() *Circuit {
	cp := &Circuit{
		Registers: slices.Clone(c.Registers),
		Commands:  make([]Command, len(c.Commands)),
	}
	for i, cmd := range c.Commands {
		cmd.Qubits = slices.Clone(cmd.Qubits)
		cmd.Bits = slices.Clone(cmd.Bits)
		cmd.Params = slices.Clone(cmd.Params)
		cp.Commands[i] = cmd
	}
	if c.Permutation != nil {
		cp.Permutation = make(map[Qubit]Qubit, len(c.Permutation))
		for k, v := range c.Permutation {
			cp.Permutation[k] = v
		}
	}
	return cp
}

// ReplaceImplicitWireSwaps resolves the implicit permutation into explicit
// SWAP commands appended to the instruction stream, then clears the
// permutation. Qubits are visited in register-declaration order so the
// emitted SWAP sequence is deterministic. Earlier swaps displace later
// qubits, so each qubit's current wire is tracked while emitting; swapping
// destination labels directly would realize the inverse permutation on
// cycles longer than a transposition.
func (c *Circuit) ReplaceImplicitWireSwaps() {
	if c.Permutation == nil {
		return
	}
	qubits := c.Qubits()
	wireOf := make(map[Qubit]Qubit, len(qubits))   // qubit -> wire its state sits on
	occupant := make(map[Qubit]Qubit, len(qubits)) // wire -> qubit sitting on it
	for _, q := range qubits {
		wireOf[q] = q
		occupant[q] = q
	}
	for _, q := range qubits {
		dst, ok := c.Permutation[q]
		if !ok {
			dst = q
		}
		cur := wireOf[q]
		if cur == dst {
			continue
		}
		c.SWAP(cur, dst)
		other := occupant[dst]
		wireOf[q], wireOf[other] = dst, cur
		occupant[cur], occupant[dst] = other, q
	}
	c.Permutation = nil
}

// numCbits returns the classical register size needed to hold every
// measurement target.
func (c *Circuit) numCbits() int {
	maxBit := -1
	for _, cmd := range c.Commands {
		for _, b := range cmd.Bits {
			maxBit = max(maxBit, b)
		}
	}
	return maxBit + 1
}

// ──────────────────────────── QASM 2.0 output ────────────────────────────

// ToQASM emits the circuit as QASM 2.0. Angles are converted from
// half-turns to radians on the way out.
func (c *Circuit) ToQASM() string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	for _, r := range c.Registers {
		fmt.Fprintf(&sb, "qreg %s[%d];\n", r.Name, r.Size)
	}
	if n := c.numCbits(); n > 0 {
		fmt.Fprintf(&sb, "creg c[%d];\n", n)
	}
	sb.WriteString("\n")

	for _, cmd := range c.Commands {
		switch cmd.Op {
		case OpMeasure:
			bit := 0
			if len(cmd.Bits) > 0 {
				bit = cmd.Bits[0]
			}
			fmt.Fprintf(&sb, "measure %s -> c[%d];\n", cmd.Qubits[0], bit)
		case OpBarrier:
			operands := make([]string, len(cmd.Qubits))
			for i, q := range cmd.Qubits {
				operands[i] = q.String()
			}
			fmt.Fprintf(&sb, "barrier %s;\n", strings.Join(operands, ", "))
		default:
			mn, ok := qasmMnemonics[cmd.Op]
			if !ok {
				fmt.Fprintf(&sb, "// unknown op %s\n", cmd.OpName())
				continue
			}
			sb.WriteString(mn)
			if len(cmd.Params) > 0 {
				parts := make([]string, len(cmd.Params))
				for i, p := range cmd.Params {
					parts[i] = formatParam(p * math.Pi)
				}
				fmt.Fprintf(&sb, "(%s)", strings.Join(parts, ", "))
			}
			operands := make([]string, len(cmd.Qubits))
			for i, q := range cmd.Qubits {
				operands[i] = q.String()
			}
			fmt.Fprintf(&sb, " %s;\n", strings.Join(operands, ", "))
		}
	}

	return sb.String()
}

// ──────────────────────────── QASM 2.0 input ────────────────────────────

// Pre-compiled regexps for QASM parsing.
var (
	qregRegex     = regexp.MustCompile(`^qreg\s+(\w+)\[(\d+)\];?$`)
	cregRegex     = regexp.MustCompile(`^creg\s+(\w+)\[(\d+)\];?$`)
	measureRegex  = regexp.MustCompile(`^measure\s+(\w+)\[(\d+)\]\s*->\s*(\w+)\[(\d+)\];?$`)
	barrierRegex  = regexp.MustCompile(`^barrier\b`)
	gateStmtRegex = regexp.MustCompile(`^(\w+)\s*(?:\(\s*([^)]*)\s*\))?\s+(.+?);?$`)
	qubitRefRegex = regexp.MustCompile(`^(\w+)\[(\d+)\]$`)
)

// ParseQASM parses QASM 2.0 text and rebuilds the circuit from it. Angles
// are converted from radians to half-turns. Gate statements whose mnemonic
// is outside the known vocabulary are kept as OpUnknown commands so the
// translator can report them.
func (c *Circuit) ParseQASM(qasm string) error {
	c.Registers = nil
	c.Commands = nil
	c.Permutation = nil

	for lineNo, line := range strings.Split(qasm, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "OPENQASM") || strings.HasPrefix(line, "include") {
			continue
		}
		if m := qregRegex.FindStringSubmatch(line); m != nil {
			size, _ := strconv.Atoi(m[2])
			c.AddRegister(m[1], size)
			continue
		}
		if cregRegex.MatchString(line) {
			continue
		}
		if m := measureRegex.FindStringSubmatch(line); m != nil {
			idx, _ := strconv.Atoi(m[2])
			bit, _ := strconv.Atoi(m[4])
			c.Measure(Qubit{Reg: m[1], Index: idx}, bit)
			continue
		}
		if barrierRegex.MatchString(line) {
			rest := strings.TrimSuffix(strings.TrimPrefix(line, "barrier"), ";")
			qs, err := parseQubitList(rest)
			if err != nil {
				return fmt.Errorf("line %d: %w", lineNo+1, err)
			}
			if len(qs) == 0 {
				c.Barrier()
			} else {
				c.Apply(OpBarrier, nil, qs...)
			}
			continue
		}
		m := gateStmtRegex.FindStringSubmatch(line)
		if m == nil {
			return fmt.Errorf("line %d: cannot parse %q", lineNo+1, line)
		}
		mnemonic, paramsStr, operandsStr := m[1], m[2], m[3]
		qs, err := parseQubitList(operandsStr)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo+1, err)
		}
		var params []float64
		if paramsStr != "" {
			for _, part := range strings.Split(paramsStr, ",") {
				val, ok := parseParamExpr(strings.TrimSpace(part))
				if !ok {
					return fmt.Errorf("line %d: bad parameter %q", lineNo+1, part)
				}
				params = append(params, val/math.Pi)
			}
		}
		op, ok := opFromMnemonic[strings.ToLower(mnemonic)]
		if !ok {
			c.Commands = append(c.Commands, Command{
				Op: OpUnknown, Name: mnemonic, Qubits: qs, Params: params,
			})
			continue
		}
		c.Commands = append(c.Commands, Command{Op: op, Qubits: qs, Params: params})
	}

	return nil
}

// parseQubitList parses a comma-separated list of reg[i] references.
func parseQubitList(s string) ([]Qubit, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), ";"))
	if s == "" {
		return nil, nil
	}
	var qs []Qubit
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		m := qubitRefRegex.FindStringSubmatch(part)
		if m == nil {
			return nil, fmt.Errorf("bad qubit reference %q", part)
		}
		idx, _ := strconv.Atoi(m[2])
		qs = append(qs, Qubit{Reg: m[1], Index: idx})
	}
	return qs, nil
}
