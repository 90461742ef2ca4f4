package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 80

	// CardMaxWidth caps the width of a car card on wide terminals.
	CardMaxWidth = 72

	// chromeHeight is the number of rows taken by the header and command bar.
	chromeHeight = 3
)

// Timing constants.
const (
	// CreateCloseDelay is how long the create form stays open showing the
	// success notice.
	CreateCloseDelay = 1200 * time.Millisecond

	// FadeDuration is the visual transition of a deleted card.
	FadeDuration = 250 * time.Millisecond
)
