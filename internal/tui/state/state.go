package state

import (
	"github.com/glabrego/coinboard/internal/market"
)

func ClampCursor(cursor, size int) int {
	if size <= 0 {
		return 0
	}
	if cursor >= size {
		return size - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

func PageStep(height int, hasStatus bool) int {
	if height <= 0 {
		return 10
	}
	headerLines := 8
	if hasStatus {
		headerLines += 2
	}
	step := height - headerLines
	if step < 3 {
		step = 3
	}
	return step
}

func CenteredWindow(totalRows, cursor, height int) (int, int) {
	if totalRows <= 0 {
		return 0, 0
	}
	if height <= 0 || totalRows <= height {
		return 0, totalRows
	}
	cursor = ClampCursor(cursor, totalRows)
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	maxStart := totalRows - height
	if start > maxStart {
		start = maxStart
	}
	return start, start + height
}

// PagerPages lists span consecutive page numbers around focus (or current
// when nothing is focused), never below page 1.
func PagerPages(current, focus, span int) []int {
	if span < 1 {
		span = 1
	}
	center := current
	if focus > 0 {
		center = focus
	}
	if center < 1 {
		center = 1
	}
	first := center - span/2
	if first < 1 {
		first = 1
	}
	pages := make([]int, 0, span)
	for p := first; p < first+span; p++ {
		pages = append(pages, p)
	}
	return pages
}

// AnchorID is the id under the cursor, used to keep the selection stable
// when the visible list changes underneath it.
func AnchorID(items []market.Item, cursor int) string {
	if len(items) == 0 {
		return ""
	}
	return items[ClampCursor(cursor, len(items))].ID
}

// RestoreCursor finds anchorID in items, falling back to the previous
// position clamped to the new size.
func RestoreCursor(items []market.Item, anchorID string, previous int) int {
	if anchorID != "" {
		if idx := market.IndexByID(items, anchorID); idx >= 0 {
			return idx
		}
	}
	return ClampCursor(previous, len(items))
}
