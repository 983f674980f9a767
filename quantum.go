package main

import (
	"math"
	"math/cmplx"
)

type Complex = complex128

// SimGateKind enumerates the gates the simulator implements natively.
type SimGateKind int

const (
	SimX SimGateKind = iota
	SimY
	SimZ
	SimH
	SimS
	SimSdg
	SimT
	SimTdg
	SimRX
	SimRY
	SimRZ
	SimU1
	SimU2
	SimU3
	SimCX
	SimCZ
	SimSWAP
)

var simGateNames = map[SimGateKind]string{
	SimX: "X", SimY: "Y", SimZ: "Z", SimH: "H",
	SimS: "S", SimSdg: "Sdg", SimT: "T", SimTdg: "Tdg",
	SimRX: "RX", SimRY: "RY", SimRZ: "RZ",
	SimU1: "U1", SimU2: "U2", SimU3: "U3",
	SimCX: "CX", SimCZ: "CZ", SimSWAP: "SWAP",
}

func (k SimGateKind) String() string {
	if name, ok := simGateNames[k]; ok {
		return name
	}
	return "?"
}

// SimGate is one native simulator instruction. Qubit operands are flat
// indices into the simulator's state; Params are radians in the
// simulator's own convention (rotations are exp(+i·theta·P/2)).
type SimGate struct {
	Kind    SimGateKind
	Target  int
	Control int // ignored unless Kind is a two-qubit gate
	Params  []float64
}

// SimCircuit is a gate list over a fixed qubit count, executed strictly in
// append order.
type SimCircuit struct {
	NumQubits int
	Gates     []SimGate
}

func NewSimCircuit(numQubits int) *SimCircuit {
	return &SimCircuit{NumQubits: numQubits}
}

// Add appends a gate to the circuit.
func (sc *SimCircuit) Add(g SimGate) {
	sc.Gates = append(sc.Gates, g)
}

// Simulate runs the circuit from |0...0> and returns the final state.
func (sc *SimCircuit) Simulate() *StateVector {
	n := max(sc.NumQubits, 1)
	state := NewStateVector(n)
	for _, g := range sc.Gates {
		state.ApplyGate(g)
	}
	return state
}

// StateVector holds 2^n basis amplitudes; basis state i has qubit q in
// state (i>>q)&1.
type StateVector struct {
	Amplitudes []Complex
	NumQubits  int
}

func NewStateVector(numQubits int) *StateVector {
	amps := make([]Complex, 1<<numQubits)
	amps[0] = 1
	return &StateVector{Amplitudes: amps, NumQubits: numQubits}
}

func (s *StateVector) Clone() *StateVector {
	amps := make([]Complex, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &StateVector{Amplitudes: amps, NumQubits: s.NumQubits}
}

// ApplyGate applies one native gate to the state in place.
func (s *StateVector) ApplyGate(g SimGate) {
	param := func(i int) float64 {
		if i < len(g.Params) {
			return g.Params[i]
		}
		return 0
	}
	switch g.Kind {
	case SimX:
		s.applyX(g.Target)
	case SimY:
		s.applyY(g.Target)
	case SimZ:
		s.applyZ(g.Target)
	case SimH:
		s.applyH(g.Target)
	case SimS:
		s.applyS(g.Target, false)
	case SimSdg:
		s.applyS(g.Target, true)
	case SimT:
		s.applyT(g.Target, false)
	case SimTdg:
		s.applyT(g.Target, true)
	case SimRX:
		s.applyRX(g.Target, param(0))
	case SimRY:
		s.applyRY(g.Target, param(0))
	case SimRZ:
		s.applyRZ(g.Target, param(0))
	case SimU1:
		s.applyU1(g.Target, param(0))
	case SimU2:
		s.applyU3(g.Target, math.Pi/2, param(0), param(1))
	case SimU3:
		s.applyU3(g.Target, param(0), param(1), param(2))
	case SimCX:
		s.applyCX(g.Control, g.Target)
	case SimCZ:
		s.applyCZ(g.Control, g.Target)
	case SimSWAP:
		s.applySWAP(g.Control, g.Target)
	}
}

func (s *StateVector) applyH(q int) {
	hFactor := complex(1.0/math.Sqrt2, 0)
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			a, b := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = hFactor * (a + b)
			s.Amplitudes[j] = hFactor * (a - b)
		}
	}
}

func (s *StateVector) applyX(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyY(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = -1i*s.Amplitudes[j], 1i*s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyZ(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			s.Amplitudes[i] *= -1
		}
	}
}

func (s *StateVector) applyS(q int, dagger bool) {
	n := len(s.Amplitudes)
	bit := 1 << q
	factor := 1i
	if dagger {
		factor = -1i
	}
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			s.Amplitudes[i] *= factor
		}
	}
}

func (s *StateVector) applyT(q int, dagger bool) {
	n := len(s.Amplitudes)
	bit := 1 << q
	angle := math.Pi / 4
	if dagger {
		angle = -angle
	}
	factor := cmplx.Exp(complex(0, angle))
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			s.Amplitudes[i] *= factor
		}
	}
}

// Rotation gates follow exp(+i·theta·P/2), so e.g. RX(theta) is
// cos(theta/2)·I + i·sin(theta/2)·X. Callers converting from the standard
// exp(-i·theta·P/2) convention must negate the angle.

func (s *StateVector) applyRX(q int, theta float64) {
	n := len(s.Amplitudes)
	bit := 1 << q
	c := complex(math.Cos(theta/2), 0)
	is := complex(0, math.Sin(theta/2))
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			a, b := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = c*a + is*b
			s.Amplitudes[j] = is*a + c*b
		}
	}
}

func (s *StateVector) applyRY(q int, theta float64) {
	n := len(s.Amplitudes)
	bit := 1 << q
	c := complex(math.Cos(theta/2), 0)
	sn := complex(math.Sin(theta/2), 0)
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			a, b := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = c*a + sn*b
			s.Amplitudes[j] = -sn*a + c*b
		}
	}
}

func (s *StateVector) applyRZ(q int, theta float64) {
	n := len(s.Amplitudes)
	bit := 1 << q
	phase := cmplx.Exp(complex(0, theta/2))
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			s.Amplitudes[i] *= cmplx.Conj(phase)
		} else {
			s.Amplitudes[i] *= phase
		}
	}
}

// applyU1 applies diag(1, e^(i·lambda)).
func (s *StateVector) applyU1(q int, lambda float64) {
	n := len(s.Amplitudes)
	bit := 1 << q
	phase := cmplx.Exp(complex(0, lambda))
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			s.Amplitudes[i] *= phase
		}
	}
}

// applyU3 applies the IBM Euler-angle gate
//
//	[ cos(t/2)            -e^(i·lambda)·sin(t/2)        ]
//	[ e^(i·phi)·sin(t/2)   e^(i·(phi+lambda))·cos(t/2)  ]
func (s *StateVector) applyU3(q int, theta, phi, lambda float64) {
	c := math.Cos(theta / 2)
	sn := math.Sin(theta / 2)
	m00 := complex(c, 0)
	m01 := -cmplx.Exp(complex(0, lambda)) * complex(sn, 0)
	m10 := cmplx.Exp(complex(0, phi)) * complex(sn, 0)
	m11 := cmplx.Exp(complex(0, phi+lambda)) * complex(c, 0)
	s.applyMatrix(q, m00, m01, m10, m11)
}

// applyMatrix applies an arbitrary 2x2 matrix to one qubit.
func (s *StateVector) applyMatrix(q int, m00, m01, m10, m11 Complex) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			a, b := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = m00*a + m01*b
			s.Amplitudes[j] = m10*a + m11*b
		}
	}
}

func (s *StateVector) applyCX(control, target int) {
	n := len(s.Amplitudes)
	cBit := 1 << control
	tBit := 1 << target
	for i := 0; i < n; i++ {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyCZ(control, target int) {
	n := len(s.Amplitudes)
	cBit := 1 << control
	tBit := 1 << target
	for i := 0; i < n; i++ {
		if i&cBit != 0 && i&tBit != 0 {
			s.Amplitudes[i] *= -1
		}
	}
}

func (s *StateVector) applySWAP(q1, q2 int) {
	n := len(s.Amplitudes)
	bit1 := 1 << q1
	bit2 := 1 << q2
	for i := 0; i < n; i++ {
		if i&bit1 != 0 && i&bit2 == 0 {
			j := (i & ^bit1) | bit2
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

// Probabilities returns |amp|^2 per basis state.
func (s *StateVector) Probabilities() []float64 {
	probs := make([]float64, len(s.Amplitudes))
	for i, a := range s.Amplitudes {
		probs[i] = real(a * cmplx.Conj(a))
	}
	return probs
}

type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

// GetQubitProbabilities returns the marginal 0/1 probability per qubit.
func (s *StateVector) GetQubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, s.NumQubits)
	for i, a := range s.Amplitudes {
		p := real(a * cmplx.Conj(a))
		for q := 0; q < s.NumQubits; q++ {
			if i&(1<<q) != 0 {
				probs[q].Prob1 += p
			} else {
				probs[q].Prob0 += p
			}
		}
	}
	return probs
}

// DensityMatrix returns the pure-state density matrix |psi><psi|. The
// engine is noiseless, so this is exact.
func (s *StateVector) DensityMatrix() [][]Complex {
	n := len(s.Amplitudes)
	rho := make([][]Complex, n)
	for i := 0; i < n; i++ {
		rho[i] = make([]Complex, n)
		for j := 0; j < n; j++ {
			rho[i][j] = s.Amplitudes[i] * cmplx.Conj(s.Amplitudes[j])
		}
	}
	return rho
}
