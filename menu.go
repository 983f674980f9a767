package main

import (
	"fmt"
	"strings"
)

// menuItem represents a single gate choice in the menu.
type menuItem struct {
	name        string
	op          OpType
	symbol      string
	needsTarget bool
	needsParams bool
	paramHint   string
}

// menuCategory groups related menu items under a tab.
type menuCategory struct {
	name  string
	items []menuItem
}

// gateMenu defines the gate picker. The vocabulary is exactly what the
// translator supports, one tab per translation category.
var gateMenu = []menuCategory{
	{
		name: "Single Qubit",
		items: []menuItem{
			{name: "Hadamard", op: OpH, symbol: "H"},
			{name: "Pauli-X (NOT)", op: OpX, symbol: "X"},
			{name: "Pauli-Y", op: OpY, symbol: "Y"},
			{name: "Pauli-Z", op: OpZ, symbol: "Z"},
			{name: "Phase (S)", op: OpS, symbol: "S"},
			{name: "Phase Dagger (S†)", op: OpSdg, symbol: "S†"},
			{name: "T Gate", op: OpT, symbol: "T"},
			{name: "T Dagger (T†)", op: OpTdg, symbol: "T†"},
		},
	},
	{
		name: "Rotation",
		items: []menuItem{
			{name: "Rotate X", op: OpRx, symbol: "RX", needsParams: true, paramHint: "pi/2"},
			{name: "Rotate Y", op: OpRy, symbol: "RY", needsParams: true, paramHint: "pi/2"},
			{name: "Rotate Z", op: OpRz, symbol: "RZ", needsParams: true, paramHint: "pi/2"},
		},
	},
	{
		name: "U Gates",
		items: []menuItem{
			{name: "Universal U1", op: OpU1, symbol: "U1", needsParams: true, paramHint: "lambda"},
			{name: "Universal U2", op: OpU2, symbol: "U2", needsParams: true, paramHint: "phi,lambda"},
			{name: "Universal U3", op: OpU3, symbol: "U3", needsParams: true, paramHint: "theta,phi,lambda"},
		},
	},
	{
		name: "Two Qubit",
		items: []menuItem{
			{name: "CNOT", op: OpCX, symbol: "●─⊕", needsTarget: true},
			{name: "Controlled-Z", op: OpCZ, symbol: "●─●", needsTarget: true},
			{name: "SWAP", op: OpSWAP, symbol: "×─×", needsTarget: true},
		},
	},
	{
		name: "Other",
		items: []menuItem{
			{name: "Measure", op: OpMeasure, symbol: "M"},
			{name: "Barrier", op: OpBarrier, symbol: "┃"},
		},
	},
}

// renderMenu renders the floating gate-picker popup.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Add Gate"))
	sb.WriteString("\n")

	// Category tabs
	for i, cat := range gateMenu {
		name := " " + cat.name + " "
		if i == m.menuCat {
			sb.WriteString(activeGateStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(gateMenu)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 46)))
	sb.WriteString("\n")

	// Items in the selected category
	cat := gateMenu[m.menuCat]
	for i, item := range cat.items {
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-18s", item.name)))
			sb.WriteString(gateStyle.Render(item.symbol))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-18s", item.name)))
			sb.WriteString(dimStyle.Render(item.symbol))
		}
		if item.needsTarget {
			sb.WriteString(dimStyle.Render(" →target"))
		}
		if item.needsParams {
			sb.WriteString(dimStyle.Render(fmt.Sprintf(" (%s)", item.paramHint)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Cat  ⏎ Ok  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}
