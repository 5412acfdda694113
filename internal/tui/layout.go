// Package tui provides the terminal user interface for ghlookup.
// This file contains layout-related constants and dimension calculation functions.
package tui

// Fixed rows
const (
	// HeaderHeight is the title line.
	HeaderHeight = 1

	// SearchHeight is the bordered search box (input line plus two borders).
	SearchHeight = 3

	// HelpBarHeight is the key hint line at the bottom.
	HelpBarHeight = 1

	// PanelBorderWidth and PanelBorderHeight are what a bordered panel with
	// one column of padding on each side takes from its outer size.
	PanelBorderWidth  = 4
	PanelBorderHeight = 2
)

// Result/detail split
const (
	// ListWidthPercent is the share of the terminal width given to the result list.
	ListWidthPercent = 45

	// ListMinWidth is the narrowest the result list panel gets.
	ListMinWidth = 24

	// PanelGap is the gap between the result list and the detail panel.
	PanelGap = 1

	// MainMinHeight is the smallest main area height, borders included.
	MainMinHeight = 5
)

// Layout holds the outer sizes of every panel, borders included.
type Layout struct {
	Width       int
	SearchWidth int
	ListWidth   int
	DetailWidth int
	MainHeight  int
}

// CalculateLayout splits a terminal of the given size into panels.
func CalculateLayout(termWidth, termHeight int) Layout {
	listWidth := termWidth * ListWidthPercent / 100
	if listWidth < ListMinWidth {
		listWidth = ListMinWidth
	}
	detailWidth := termWidth - listWidth - PanelGap
	if detailWidth < PanelBorderWidth+1 {
		detailWidth = PanelBorderWidth + 1
	}

	mainHeight := termHeight - HeaderHeight - SearchHeight - HelpBarHeight
	if mainHeight < MainMinHeight {
		mainHeight = MainMinHeight
	}

	return Layout{
		Width:       termWidth,
		SearchWidth: termWidth,
		ListWidth:   listWidth,
		DetailWidth: detailWidth,
		MainHeight:  mainHeight,
	}
}

// Inner returns the content size of a panel with outer size w x h.
func Inner(w, h int) (int, int) {
	return max(w-PanelBorderWidth, 1), max(h-PanelBorderHeight, 1)
}
