package main

// OpType identifies a circuit operation. The vocabulary is closed: the
// translator recognizes exactly these types plus Unknown, which carries
// operations imported from QASM that fall outside the vocabulary.
type OpType int

const (
	OpUnknown OpType = iota

	// Single-qubit Clifford/phase gates, no parameters.
	OpX
	OpY
	OpZ
	OpH
	OpS
	OpSdg
	OpT
	OpTdg

	// Single-qubit rotations, one angle parameter in half-turns.
	OpRx
	OpRy
	OpRz

	// IBM U-gate family, 1-3 angle parameters in half-turns.
	OpU1
	OpU2
	OpU3

	// Two-qubit gates, no parameters. Operand 0 is the control (first)
	// qubit, operand 1 the target (second).
	OpCX
	OpCZ
	OpSWAP

	// Recognized but not translated.
	OpMeasure
	OpBarrier
)

// OpCategory groups operation types by how the translator handles them.
type OpCategory int

const (
	CatNone OpCategory = iota
	CatSingleQubit
	CatRotation
	CatIBM
	CatTwoQubit
	CatSkip
)

// Category classifies an operation type into its translation category.
// Every OpType belongs to exactly one category; OpUnknown (and any value
// outside the enumeration) classifies as CatNone, which the translator
// rejects.
func (op OpType) Category() OpCategory {
	switch op {
	case OpX, OpY, OpZ, OpH, OpS, OpSdg, OpT, OpTdg:
		return CatSingleQubit
	case OpRx, OpRy, OpRz:
		return CatRotation
	case OpU1, OpU2, OpU3:
		return CatIBM
	case OpCX, OpCZ, OpSWAP:
		return CatTwoQubit
	case OpMeasure, OpBarrier:
		return CatSkip
	default:
		return CatNone
	}
}

// NumParams returns the number of angle parameters the operation expects.
func (op OpType) NumParams() int {
	switch op {
	case OpRx, OpRy, OpRz, OpU1:
		return 1
	case OpU2:
		return 2
	case OpU3:
		return 3
	default:
		return 0
	}
}

// NumQubits returns the number of qubit operands the operation expects.
func (op OpType) NumQubits() int {
	if op.Category() == CatTwoQubit {
		return 2
	}
	return 1
}

var opNames = map[OpType]string{
	OpX:       "X",
	OpY:       "Y",
	OpZ:       "Z",
	OpH:       "H",
	OpS:       "S",
	OpSdg:     "Sdg",
	OpT:       "T",
	OpTdg:     "Tdg",
	OpRx:      "Rx",
	OpRy:      "Ry",
	OpRz:      "Rz",
	OpU1:      "U1",
	OpU2:      "U2",
	OpU3:      "U3",
	OpCX:      "CX",
	OpCZ:      "CZ",
	OpSWAP:    "SWAP",
	OpMeasure: "Measure",
	OpBarrier: "Barrier",
}

func (op OpType) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return "Unknown"
}

// qasmMnemonics maps OpType to its QASM 2.0 mnemonic (measure and barrier
// have dedicated statement syntax and are not listed).
var qasmMnemonics = map[OpType]string{
	OpX:    "x",
	OpY:    "y",
	OpZ:    "z",
	OpH:    "h",
	OpS:    "s",
	OpSdg:  "sdg",
	OpT:    "t",
	OpTdg:  "tdg",
	OpRx:   "rx",
	OpRy:   "ry",
	OpRz:   "rz",
	OpU1:   "u1",
	OpU2:   "u2",
	OpU3:   "u3",
	OpCX:   "cx",
	OpCZ:   "cz",
	OpSWAP: "swap",
}

// opFromMnemonic is the inverse of qasmMnemonics, built at init.
var opFromMnemonic = func() map[string]OpType {
	m := make(map[string]OpType, len(qasmMnemonics))
	for op, mn := range qasmMnemonics {
		m[mn] = op
	}
	return m
}()
