package usecase

import (
	"fmt"
	"strconv"
	"strings"
)

// SeatGrid describes the auditorium layout: row letters and the column
// count. The default kiosk hall is A-H by 1-12, 96 seats.
type SeatGrid struct {
	Rows    string
	Columns int
}

func NewSeatGrid(rows string, columns int) SeatGrid {
	if rows == "" {
		rows = "ABCDEFGH"
	}
	if columns <= 0 {
		columns = 12
	}
	return SeatGrid{Rows: rows, Columns: columns}
}

// Contains reports whether label is a valid seat number on this grid.
// Labels are a single row letter followed by the column number without
// leading zeros, e.g. "A1" or "H12".
func (g SeatGrid) Contains(label string) bool {
	if len(label) < 2 {
		return false
	}

	row := label[0]
	if !strings.ContainsRune(g.Rows, rune(row)) {
		return false
	}

	col, err := strconv.Atoi(label[1:])
	if err != nil || col < 1 || col > g.Columns {
		return false
	}

	// Atoi accepts "01" and "+1"; the canonical label does not.
	return label == fmt.Sprintf("%c%d", row, col)
}

// InvalidLabels returns the labels that fall outside the grid.
func (g SeatGrid) InvalidLabels(labels []string) []string {
	var invalid []string
	for _, label := range labels {
		if !g.Contains(label) {
			invalid = append(invalid, label)
		}
	}
	return invalid
}

// DuplicateLabels returns labels appearing more than once, each reported once.
func DuplicateLabels(labels []string) []string {
	seen := make(map[string]int, len(labels))
	var dups []string
	for _, label := range labels {
		seen[label]++
		if seen[label] == 2 {
			dups = append(dups, label)
		}
	}
	return dups
}

// Seats enumerates every seat number on the grid in row-major order.
func (g SeatGrid) Seats() []string {
	seats := make([]string, 0, len(g.Rows)*g.Columns)
	for _, row := range g.Rows {
		for col := 1; col <= g.Columns; col++ {
			seats = append(seats, fmt.Sprintf("%c%d", row, col))
		}
	}
	return seats
}

// Size is the total seat count of the grid.
func (g SeatGrid) Size() int {
	return len(g.Rows) * g.Columns
}
