package main

import (
	"fmt"
	"math/cmplx"
	"sort"
	"strings"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	total := width - len(s)
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// displayName returns the short box label for a command.
func displayName(cmd *Command) string {
	switch cmd.Op {
	case OpMeasure:
		return "M"
	case OpSdg:
		return "S†"
	case OpTdg:
		return "T†"
	default:
		return strings.ToUpper(cmd.OpName())
	}
}

// controlSymbol returns the wire symbol for the first operand of a
// two-qubit gate.
func controlSymbol(op OpType) string {
	if op == OpSWAP {
		return "×"
	}
	return "●"
}

// targetSymbol returns the wire symbol for the second operand of a
// two-qubit gate.
func targetSymbol(op OpType) string {
	switch op {
	case OpCZ:
		return "●"
	case OpSWAP:
		return "×"
	default:
		return "⊕"
	}
}

// ──────────────────────────── Cell rendering ────────────────────────────

type cellHighlight int

const (
	hlNone cellHighlight = iota
	hlCursor
	hlTargetSelect
)

// renderCell returns 3 lines (top, mid, bot) for a single cell. Each line
// is exactly cellW visual characters wide.
func renderCell(info cellInfo, hl cellHighlight) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", cellW)
	halfW := cellW / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", cellW-halfW-1)
	dashL := (cellW - 1) / 2
	dashR := cellW - dashL - 1

	// ── Highlighted cell (cursor or target selection) ──
	if hl == hlCursor || hl == hlTargetSelect {
		bdr := cursorBoxStyle
		if hl == hlTargetSelect {
			bdr = targetSelectStyle
		}
		innerW := cellW - 2
		inDashL := (innerW - 1) / 2
		inDashR := innerW - inDashL - 1

		if info.isBarrier {
			top = vertRow
			mid = bdr.Render("║") + strings.Repeat("─", inDashL) + "│" + strings.Repeat("─", inDashR) + bdr.Render("║")
			bot = vertRow
			return
		}

		top = bdr.Render("╔" + strings.Repeat("═", innerW) + "╗")
		bot = bdr.Render("╚" + strings.Repeat("═", innerW) + "╝")

		switch {
		case info.gate != nil && info.isControl:
			sym := controlSymbol(info.gate.cmd.Op)
			mid = bdr.Render("║") + strings.Repeat("─", inDashL) + gateStyle.Render(sym) + strings.Repeat("─", inDashR) + bdr.Render("║")
		case info.gate != nil && info.isTarget:
			sym := targetSymbol(info.gate.cmd.Op)
			mid = bdr.Render("║") + strings.Repeat("─", inDashL) + gateStyle.Render(sym) + strings.Repeat("─", inDashR) + bdr.Render("║")
		case info.gate != nil && !info.passThrough:
			name := padCenter(displayName(info.gate.cmd), gateNameW)
			mid = bdr.Render("║") + "─┤" + gateStyle.Render(name) + "├─" + bdr.Render("║")
		case info.passThrough:
			mid = bdr.Render("║") + strings.Repeat("─", inDashL) + "┼" + strings.Repeat("─", inDashR) + bdr.Render("║")
		default:
			mid = bdr.Render("║") + strings.Repeat("─", innerW) + bdr.Render("║")
		}
		return
	}

	// ── Normal (non-highlighted) cells ──
	switch {
	case info.isBarrier:
		top = vertRow
		mid = strings.Repeat("─", dashL) + "│" + strings.Repeat("─", dashR)
		bot = vertRow

	case info.gate != nil && info.isControl:
		top, bot = emptyRow, emptyRow
		if info.vertAbove {
			top = vertRow
		}
		if info.vertBelow {
			bot = vertRow
		}
		sym := controlSymbol(info.gate.cmd.Op)
		mid = strings.Repeat("─", dashL) + gateStyle.Render(sym) + strings.Repeat("─", dashR)

	case info.gate != nil && info.isTarget:
		top, bot = emptyRow, emptyRow
		if info.vertAbove {
			top = vertRow
		}
		if info.vertBelow {
			bot = vertRow
		}
		sym := targetSymbol(info.gate.cmd.Op)
		mid = strings.Repeat("─", dashL) + gateStyle.Render(sym) + strings.Repeat("─", dashR)

	case info.passThrough:
		top = vertRow
		mid = strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR)
		bot = vertRow

	case info.gate != nil:
		margin := (cellW - gateBoxW) / 2
		rightMargin := cellW - margin - gateBoxW
		name := padCenter(displayName(info.gate.cmd), gateNameW)
		top = strings.Repeat(" ", margin) + gateStyle.Render("┌"+strings.Repeat("─", gateNameW)+"┐") + strings.Repeat(" ", rightMargin)
		mid = strings.Repeat("─", margin) + gateStyle.Render("┤"+name+"├") + strings.Repeat("─", rightMargin)
		bot = strings.Repeat(" ", margin) + gateStyle.Render("└"+strings.Repeat("─", gateNameW)+"┘") + strings.Repeat(" ", rightMargin)

	default:
		top, bot = emptyRow, emptyRow
		if info.vertAbove {
			top = vertRow
		}
		if info.vertBelow {
			bot = vertRow
		}
		mid = strings.Repeat("─", cellW)
	}

	return
}

// ──────────────────────────── Panel rendering ────────────────────────────

// renderCircuitPanel renders the circuit grid panel.
func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Quantum Circuit"))
	sb.WriteString("\n\n")

	availWidth := width - labelVisualW - 4
	maxSteps := max(availWidth/cellW, 1)

	startStep := 0
	if m.cursorStep >= maxSteps {
		startStep = m.cursorStep - maxSteps + 1
	}

	if startStep > 0 {
		fmt.Fprintf(&sb, "  ◀ showing steps %d–%d\n", startStep, startStep+maxSteps-1)
	}

	// Step number header
	header := strings.Repeat(" ", labelVisualW)
	for step := startStep; step < startStep+maxSteps; step++ {
		header += dimStyle.Render(padCenter(fmt.Sprintf("%d", step), cellW))
	}
	sb.WriteString(header + "\n")

	// Render each wire as 3 lines
	qubits := m.circuit.Qubits()
	for wire, q := range qubits {
		label := q.String()
		topLine := strings.Repeat(" ", labelVisualW)
		midLine := qubitLabelStyle.Render(fmt.Sprintf("%-7s", label)) + "──"
		botLine := strings.Repeat(" ", labelVisualW)

		for step := startStep; step < startStep+maxSteps; step++ {
			info := m.lay.cell(step, wire)

			hl := hlNone
			if step == m.cursorStep && wire == m.cursorWire &&
				(m.focus == focusCircuit || m.focus == focusSelectTarget || m.focus == focusMenu) {
				hl = hlCursor
			} else if step == m.cursorStep && wire == m.targetWire && m.focus == focusSelectTarget {
				hl = hlTargetSelect
			}

			top, mid, bot := renderCell(info, hl)
			topLine += top
			midLine += mid
			botLine += bot
		}

		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}

	if len(qubits) == 0 {
		sb.WriteString(dimStyle.Render("  no registers — press + or declare a qreg"))
		return circuitStyle.Width(width).Height(height).Render(sb.String())
	}

	// Status line
	if m.focus == focusSelectTarget {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "  %s", activeGateStyle.Render(m.pendingItem.symbol))
		sb.WriteString("  Select target qubit: ")
		fmt.Fprintf(&sb, "%s", targetSelectStyle.Render(qubits[m.targetWire].String()))
		sb.WriteString(dimStyle.Render("   ↑↓ Move  Enter Confirm  Esc Cancel"))
	} else {
		fmt.Fprintf(&sb, "\n  Position: Step %d, %s", m.cursorStep, qubits[min(m.cursorWire, len(qubits)-1)])
		if m.statusMsg != "" {
			fmt.Fprintf(&sb, "  │  %s", activeGateStyle.Render(m.statusMsg))
		}
	}

	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

// renderQASMPanel renders the QASM editor panel.
func (m Model) renderQASMPanel(width, height int) string {
	var sb strings.Builder

	title := "QASM Editor"
	if m.focus == focusQASM {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(m.qasmEditor.View())

	return qasmStyle.Width(width).Height(height).Render(sb.String())
}

// renderResultsPanel renders the simulation results: per-qubit marginals,
// leading basis amplitudes, and sampled counts when the circuit measures.
func (m Model) renderResultsPanel(width, height int) string {
	var sb strings.Builder

	title := "Results"
	if m.basisReversed {
		title += " (basis reversed)"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")

	switch {
	case m.resultErr != nil:
		fmt.Fprintf(&sb, "  %s\n", activeGateStyle.Render(m.resultErr.Error()))
	case m.lastState == nil:
		sb.WriteString(dimStyle.Render("  press r to run the circuit"))
	default:
		n := m.lastState.NumQubits
		qubits := m.circuit.Qubits()

		sb.WriteString(dimStyle.Render("  qubit marginals"))
		sb.WriteString("\n")
		marginals := m.lastState.GetQubitProbabilities()
		for wire, q := range qubits {
			// conversion ran with the index map reversed
			p1 := marginals[n-1-wire].Prob1
			barLen := min(int(p1*20+0.5), 20)
			fmt.Fprintf(&sb, "  %-7s %s%s %5.1f%%\n",
				q.String(),
				barStyle.Render(strings.Repeat("█", barLen)),
				dimStyle.Render(strings.Repeat("░", 20-barLen)),
				p1*100)
		}

		sb.WriteString("\n")
		sb.WriteString(dimStyle.Render("  basis states"))
		sb.WriteString("\n")
		for _, bs := range m.topBasisStates(8) {
			fmt.Fprintf(&sb, "  |%s⟩ %6.3f%+.3fi  %5.1f%%\n",
				bs.label, real(bs.amp), imag(bs.amp), bs.prob*100)
		}

		if m.result != nil && len(m.result.Shots) > 0 {
			sb.WriteString("\n")
			fmt.Fprintf(&sb, "%s\n", dimStyle.Render(fmt.Sprintf("  counts (%d shots)", len(m.result.Shots))))
			counts := m.result.Counts()
			keys := make([]string, 0, len(counts))
			for k := range counts {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(&sb, "  %s: %d\n", k, counts[k])
			}
		}
	}

	return resultsStyle.Width(width).Height(height).Render(sb.String())
}

// basisState is one row of the basis-state table.
type basisState struct {
	label string
	amp   Complex
	prob  float64
}

// topBasisStates returns the highest-probability basis states, labelled in
// circuit wire order (or reversed when the basis toggle is on).
func (m Model) topBasisStates(limit int) []basisState {
	if m.lastState == nil {
		return nil
	}
	n := m.lastState.NumQubits
	var states []basisState
	for i, amp := range m.lastState.Amplitudes {
		prob := real(amp * cmplx.Conj(amp))
		if prob < 1e-10 {
			continue
		}
		var label strings.Builder
		for wire := 0; wire < n; wire++ {
			simIdx := n - 1 - wire
			if m.basisReversed {
				simIdx = wire
			}
			label.WriteByte('0' + byte((i>>simIdx)&1))
		}
		states = append(states, basisState{label: label.String(), amp: amp, prob: prob})
	}
	sort.Slice(states, func(a, b int) bool { return states[a].prob > states[b].prob })
	if len(states) > limit {
		states = states[:limit]
	}
	return states
}

// renderControlsPanel renders the bottom help/controls bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(activeGateStyle.Render("Navigate: "))
	sb.WriteString("↑↓/jk Move qubit  ←→/hl Move step  +/- Qubits")
	sb.WriteString("    ")
	sb.WriteString(activeGateStyle.Render("a"))
	sb.WriteString(" Add gate  ")
	sb.WriteString(activeGateStyle.Render("r"))
	sb.WriteString(" Run  ")
	sb.WriteString(activeGateStyle.Render("b"))
	sb.WriteString(" Basis\n")

	sb.WriteString(activeGateStyle.Render("Actions:  "))
	sb.WriteString("Tab Switch focus  Bksp Delete  ^R Reset  ^S Save  q/^C Quit")

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}

// ──────────────────────────── Overlay helpers ────────────────────────────

// overlayAt composites the overlay string on top of the background at
// position (x, y), tracking visible columns across ANSI escape sequences.
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	ovLines := strings.Split(overlay, "\n")

	for i, ovLine := range ovLines {
		bgIdx := y + i
		if bgIdx < 0 || bgIdx >= len(bgLines) {
			continue
		}
		bgLines[bgIdx] = spliceLineAt(bgLines[bgIdx], ovLine, x)
	}
	return strings.Join(bgLines, "\n")
}

// spliceLineAt replaces visible columns starting at position x in bgLine
// with the overlay content, preserving ANSI escapes in the kept parts.
func spliceLineAt(bgLine, overlay string, x int) string {
	runes := []rune(bgLine)
	ovWidth := visibleLen(overlay)

	var prefix strings.Builder
	var suffix strings.Builder

	col := 0
	i := 0

	// Collect prefix: everything up to visible column x
	for i < len(runes) && col < x {
		if runes[i] == '\x1b' {
			for i < len(runes) {
				prefix.WriteRune(runes[i])
				r := runes[i]
				i++
				if r != '\x1b' && r != '[' && ((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')) {
					break
				}
			}
		} else {
			prefix.WriteRune(runes[i])
			col++
			i++
		}
	}

	// Pad prefix if the background line is shorter than x
	for col < x {
		prefix.WriteRune(' ')
		col++
	}

	// Skip ovWidth visible columns of background
	skipped := 0
	for i < len(runes) && skipped < ovWidth {
		if runes[i] == '\x1b' {
			for i < len(runes) {
				r := runes[i]
				i++
				if r != '\x1b' && r != '[' && ((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')) {
					break
				}
			}
		} else {
			skipped++
			i++
		}
	}

	for i < len(runes) {
		suffix.WriteRune(runes[i])
		i++
	}

	return prefix.String() + overlay + suffix.String()
}

// visibleLen returns the number of visible (non-ANSI-escape) characters.
func visibleLen(s string) int {
	n := 0
	inEsc := false
	for _, r := range s {
		if r == '\x1b' {
			inEsc = true
			continue
		}
		if inEsc {
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEsc = false
			}
			continue
		}
		n++
	}
	return n
}
