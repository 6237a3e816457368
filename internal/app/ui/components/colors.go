package components

import (
	"hash/fnv"

	"github.com/charmbracelet/lipgloss"
)

// rootPalette holds the colors handed out to workspace roots. Sixteen
// hues keeps collisions rare at realistic workspace counts, and every
// pair stays readable on both light and dark terminals.
var rootPalette = []lipgloss.AdaptiveColor{
	{Light: "#4338ca", Dark: "#a5b4fc"}, // indigo
	{Light: "#0f766e", Dark: "#5eead4"}, // teal
	{Light: "#a21caf", Dark: "#f0abfc"}, // fuchsia
	{Light: "#ca8a04", Dark: "#fde047"}, // yellow
	{Light: "#0369a1", Dark: "#7dd3fc"}, // sky
	{Light: "#be123c", Dark: "#fda4af"}, // rose
	{Light: "#4d7c0f", Dark: "#bef264"}, // lime
	{Light: "#6b21a8", Dark: "#e9d5ff"}, // purple
	{Light: "#1e40af", Dark: "#bfdbfe"}, // blue
	{Light: "#9a3412", Dark: "#fed7aa"}, // orange
	{Light: "#115e59", Dark: "#99f6e4"}, // deep teal
	{Light: "#86198f", Dark: "#e879f9"}, // magenta
	{Light: "#3730a3", Dark: "#c7d2fe"}, // deep indigo
	{Light: "#92400e", Dark: "#fde68a"}, // amber
	{Light: "#155e75", Dark: "#a5f3fc"}, // cyan
	{Light: "#991b1b", Dark: "#fecaca"}, // red
}

// RootStyle returns the bold accent style assigned to a workspace root.
// Assignment is stable: the same root path renders in the same color
// across events and across sessions.
func RootStyle(root string) lipgloss.Style {
	h := fnv.New32a()
	h.Write([]byte(root))

	color := rootPalette[h.Sum32()%uint32(len(rootPalette))]

	return lipgloss.NewStyle().Foreground(color).Bold(true)
}
