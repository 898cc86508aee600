package main

import "github.com/charmbracelet/lipgloss"

var (
	styleCommitID = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	styleBranch   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleAdded    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleRemoved  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleDim      = lipgloss.NewStyle().Faint(true)
)
