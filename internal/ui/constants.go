// Package ui provides shared UI constants and utilities.
package ui

// Layout constants shared by the panels.
const (
	// ScrollMargin is the number of rows kept visible above and below the cursor.
	ScrollMargin = 3

	// BorderHeight is the vertical space consumed by a rounded panel border.
	BorderHeight = 2

	// HeaderHeight is the space for a panel title plus its separator.
	HeaderHeight = 2

	// PanelOverhead is border plus header: listHeight = panelHeight - PanelOverhead.
	PanelOverhead = BorderHeight + HeaderHeight

	// QueuePanelWidthDivisor gives the queue panel 1/N of the terminal width.
	QueuePanelWidthDivisor = 3

	// MinQueuePanelWidth hides the queue panel on narrower terminals.
	MinQueuePanelWidth = 28

	// MinProgressBarWidth is the minimum width for a usable progress bar.
	MinProgressBarWidth = 5
)
