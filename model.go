package main

import (
	"fmt"
	"math"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusQASM
	focusMenu
	focusSelectTarget
	focusInputParam
)

// Model represents the TUI application state.
type Model struct {
	circuit       *Circuit // register circuit, the single source of truth
	lay           *layout  // grid view derived from the circuit
	cursorWire    int
	cursorStep    int
	width         int
	height        int
	qasmEditor    textarea.Model
	focus         focus
	lastQASM      string
	statusMsg     string // transient status message (e.g. save confirmation)

	// Menu state
	menuCat  int
	menuItem int

	// Target-selection state (for two-qubit gates)
	pendingItem menuItem
	targetWire  int
	paramInput  string

	// Simulation state
	backend       *Backend
	result        *Result
	lastState     *StateVector
	resultErr     error
	basisReversed bool
	shots         int
}

func initialModel() Model {
	ta := textarea.New()
	ta.Placeholder = "Edit QASM here..."
	ta.SetWidth(40)
	ta.SetHeight(20)
	ta.ShowLineNumbers = true
	ta.KeyMap.InsertNewline.SetEnabled(true)

	m := Model{
		circuit: NewCircuit(4),
		backend: NewBackend(ResultStateVector),
		shots:   1024,
	}
	m.qasmEditor = ta
	m.focus = focusCircuit
	m.syncFromCircuit()
	return m
}

// syncFromCircuit refreshes the derived views after the circuit changed,
// and drops stale simulation output.
func (m *Model) syncFromCircuit() {
	m.lay = newLayout(m.circuit)

	qasm := m.circuit.ToQASM()
	m.qasmEditor.SetValue(qasm)
	m.lastQASM = qasm

	m.result = nil
	m.lastState = nil
	m.resultErr = nil
}

// parseQASMInput re-parses the editor contents into the circuit when the
// text changed. A parse failure keeps the previous circuit and reports on
// the status line.
func (m *Model) parseQASMInput() {
	qasm := m.qasmEditor.Value()
	if qasm == m.lastQASM {
		return
	}
	c := &Circuit{}
	if err := c.ParseQASM(qasm); err != nil {
		m.statusMsg = err.Error()
		return
	}
	m.circuit = c
	m.lay = newLayout(m.circuit)
	m.lastQASM = qasm
	m.cursorWire = max(min(m.cursorWire, c.NumQubits()-1), 0)
	m.result = nil
	m.lastState = nil
	m.resultErr = nil
}

// runSimulation converts and executes the circuit, storing results for
// the results panel.
func (m *Model) runSimulation() {
	if m.circuit.NumQubits() == 0 {
		m.statusMsg = "Nothing to run: circuit has no qubits"
		return
	}
	res, err := m.backend.Run(m.circuit, m.shots, uint64(time.Now().UnixNano()))
	if err != nil {
		m.result = nil
		m.lastState = nil
		m.resultErr = err
		return
	}
	m.result = res
	m.lastState = &StateVector{Amplitudes: res.State, NumQubits: m.circuit.NumQubits()}
	m.resultErr = nil
}

// placeGate appends the picked gate to the command stream. targetWire is
// the second operand for two-qubit gates (-1 otherwise). Returns false
// when the placement is invalid.
func (m *Model) placeGate(item menuItem, targetWire int) bool {
	q := m.circuit.QubitAt(m.cursorWire)

	var params []float64
	if item.needsParams {
		radians := m.parseParams(m.paramInput)
		if m.paramInput != "" && radians == nil {
			m.statusMsg = "Invalid parameter — use numbers or pi expressions (e.g. pi/2, 3*pi/4)"
			return false
		}
		// commands carry half-turns
		params = make([]float64, item.op.NumParams())
		for i := range params {
			if i < len(radians) {
				params[i] = radians[i] / math.Pi
			}
		}
	}

	switch {
	case item.op == OpMeasure:
		m.circuit.Measure(q, m.circuit.numCbits())
	case item.op == OpBarrier:
		m.circuit.Barrier()
	case item.needsTarget:
		if targetWire < 0 || targetWire == m.cursorWire {
			return false
		}
		m.circuit.Apply(item.op, params, q, m.circuit.QubitAt(targetWire))
	default:
		m.circuit.Apply(item.op, params, q)
	}

	m.paramInput = ""
	m.pendingItem = menuItem{}
	m.syncFromCircuit()
	m.cursorStep = max(m.lay.steps-1, 0)
	return true
}

// deleteAtCursor removes the command rendered at the cursor cell.
func (m *Model) deleteAtCursor() {
	lc := m.lay.spanAt(m.cursorStep, m.cursorWire)
	if lc == nil {
		return
	}
	m.circuit.Commands = slices.Delete(m.circuit.Commands, lc.streamID, lc.streamID+1)
	m.syncFromCircuit()
}

// removeCommandsOn drops every command referencing the given qubit.
func (m *Model) removeCommandsOn(q Qubit) {
	m.circuit.Commands = slices.DeleteFunc(m.circuit.Commands, func(cmd Command) bool {
		return slices.Contains(cmd.Qubits, q)
	})
}

// resizeDefaultRegister grows or shrinks the first register by one qubit.
func (m *Model) resizeDefaultRegister(delta int) {
	if len(m.circuit.Registers) == 0 {
		if delta > 0 {
			m.circuit.AddRegister("q", 1)
			m.syncFromCircuit()
		}
		return
	}
	r := &m.circuit.Registers[0]
	if delta > 0 {
		r.Size++
	} else {
		if r.Size <= 1 {
			return
		}
		r.Size--
		m.removeCommandsOn(Qubit{Reg: r.Name, Index: r.Size})
		m.cursorWire = min(m.cursorWire, m.circuit.NumQubits()-1)
	}
	m.syncFromCircuit()
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		qasmW := max(msg.Width/4-6, 20)
		m.qasmEditor.SetWidth(qasmW)
		ctrlH := 6
		circH := msg.Height - ctrlH - 4
		editorH := max(circH-8, 4)
		m.qasmEditor.SetHeight(editorH)

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusCircuit:
			switch key {
			case "q":
				return m, tea.Quit
			case "tab":
				m.focus = focusQASM
				m.qasmEditor.Focus()
			case "ctrl+r":
				m.circuit.Commands = nil
				m.circuit.Permutation = nil
				m.cursorStep = 0
				m.syncFromCircuit()
			case "ctrl+s":
				qasm := m.circuit.ToQASM()
				if err := os.WriteFile("circuit.qasm", []byte(qasm), 0644); err != nil {
					m.statusMsg = fmt.Sprintf("Save error: %v", err)
				} else {
					m.statusMsg = "Saved circuit.qasm"
				}
			case "r":
				m.runSimulation()
			case "b":
				m.basisReversed = !m.basisReversed
			case "up", "k":
				if m.cursorWire > 0 {
					m.cursorWire--
				}
			case "down", "j":
				if m.cursorWire < m.circuit.NumQubits()-1 {
					m.cursorWire++
				}
			case "left", "h":
				if m.cursorStep > 0 {
					m.cursorStep--
				}
			case "right", "l":
				if m.cursorStep < m.lay.steps {
					m.cursorStep++
				}
			case "+", "=":
				m.resizeDefaultRegister(1)
			case "-":
				m.resizeDefaultRegister(-1)
			case "a":
				m.focus = focusMenu
				m.menuCat = 0
				m.menuItem = 0
			case "backspace", "delete":
				m.deleteAtCursor()
			}

		case focusMenu:
			switch key {
			case "esc":
				m.focus = focusCircuit
			case "up", "k":
				if m.menuItem > 0 {
					m.menuItem--
				}
			case "down", "j":
				cat := gateMenu[m.menuCat]
				if m.menuItem < len(cat.items)-1 {
					m.menuItem++
				}
			case "left", "h":
				if m.menuCat > 0 {
					m.menuCat--
					m.menuItem = 0
				}
			case "right", "l":
				if m.menuCat < len(gateMenu)-1 {
					m.menuCat++
					m.menuItem = 0
				}
			case "enter":
				item := gateMenu[m.menuCat].items[m.menuItem]
				m.pendingItem = item

				if item.needsParams {
					m.paramInput = ""
					m.focus = focusInputParam
					break
				}
				if item.needsTarget {
					if m.circuit.NumQubits() < 2 {
						break
					}
					m.focus = focusSelectTarget
					m.targetWire = m.cursorWire + 1
					if m.targetWire >= m.circuit.NumQubits() {
						m.targetWire = m.cursorWire - 1
					}
					break
				}
				if m.placeGate(item, -1) {
					m.focus = focusCircuit
				}
			}

		case focusSelectTarget:
			switch key {
			case "esc":
				m.focus = focusCircuit
				m.paramInput = ""
				m.pendingItem = menuItem{}
			case "up", "k":
				for next := m.targetWire - 1; next >= 0; next-- {
					if next != m.cursorWire {
						m.targetWire = next
						break
					}
				}
			case "down", "j":
				for next := m.targetWire + 1; next < m.circuit.NumQubits(); next++ {
					if next != m.cursorWire {
						m.targetWire = next
						break
					}
				}
			case "enter":
				if m.placeGate(m.pendingItem, m.targetWire) {
					m.focus = focusCircuit
				}
			}

		case focusInputParam:
			switch key {
			case "esc":
				m.focus = focusCircuit
				m.paramInput = ""
				m.pendingItem = menuItem{}
			case "backspace":
				if len(m.paramInput) > 0 {
					m.paramInput = m.paramInput[:len(m.paramInput)-1]
				}
			case "enter":
				if m.paramInput != "" && m.parseParams(m.paramInput) == nil {
					m.statusMsg = "Invalid parameter — use numbers or pi expressions (e.g. pi/2, 3*pi/4)"
					break
				}
				if m.pendingItem.needsTarget {
					if m.circuit.NumQubits() < 2 {
						break
					}
					m.focus = focusSelectTarget
					m.targetWire = m.cursorWire + 1
					if m.targetWire >= m.circuit.NumQubits() {
						m.targetWire = m.cursorWire - 1
					}
				} else if m.placeGate(m.pendingItem, -1) {
					m.focus = focusCircuit
				}
			default:
				if len(key) == 1 {
					ch := key[0]
					if (ch >= '0' && ch <= '9') || ch == '.' || ch == ',' || ch == '-' || ch == 'e' || ch == 'E' || ch == '+' ||
						ch == 'p' || ch == 'i' || ch == '*' || ch == '/' {
						m.paramInput += key
					}
				}
			}

		case focusQASM:
			switch key {
			case "tab":
				m.focus = focusCircuit
				m.qasmEditor.Blur()
			default:
				var cmd tea.Cmd
				m.qasmEditor, cmd = m.qasmEditor.Update(msg)
				cmds = append(cmds, cmd)
				m.parseQASMInput()
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	qasmWidth := m.width / 4
	resultsWidth := m.width / 4
	circuitWidth := m.width - qasmWidth - resultsWidth - 6
	controlsHeight := 6
	panelHeight := max(m.height-controlsHeight-2, 6)

	circuitPanel := m.renderCircuitPanel(circuitWidth, panelHeight)
	qasmPanel := m.renderQASMPanel(qasmWidth, panelHeight)
	resultsPanel := m.renderResultsPanel(resultsWidth, panelHeight)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsHeight-2)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, circuitPanel, qasmPanel, resultsPanel)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, controlsPanel)

	if m.focus == focusMenu {
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	}
	if m.focus == focusInputParam {
		frame = overlayAt(frame, m.renderParamInput(), 2, 2)
	}

	return frame
}

// renderParamInput renders the parameter input overlay.
func (m Model) renderParamInput() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Enter Parameter"))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Value: %s_", m.paramInput)
	sb.WriteString("\n\n")
	hint := m.pendingItem.paramHint
	if hint == "" {
		hint = "pi/2, 3*pi/4, 1.57"
	}
	sb.WriteString(dimStyle.Render("Examples: " + hint))
	return menuBorderStyle.Render(sb.String())
}
