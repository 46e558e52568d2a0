// Package seatmap derives the interactive seat grid and the quota-bounded
// selection from the flat seat list a screening returns.
package seatmap

import (
	"sort"

	"eventify-cli/model"
)

// Grid is the 2-D seat layout: one row per row label present in the source
// data, each padded to the maximum seat number seen across the screening.
// Positions with no seat record are gaps, not errors — the source data may
// be sparse.
type Grid struct {
	RowLabels []string
	Columns   int

	rows map[string][]*model.Seat
}

// BuildGrid groups seats by row label and pads every row to the widest seat
// number. An empty seat list yields a zero-column grid.
func BuildGrid(seats []model.Seat) Grid {
	columns := 0
	for _, seat := range seats {
		if seat.SeatNumber > columns {
			columns = seat.SeatNumber
		}
	}

	rows := map[string][]*model.Seat{}
	for i := range seats {
		seat := &seats[i]
		row, ok := rows[seat.RowLabel]
		if !ok {
			row = make([]*model.Seat, columns)
			rows[seat.RowLabel] = row
		}
		if seat.SeatNumber >= 1 && seat.SeatNumber <= columns {
			row[seat.SeatNumber-1] = seat
		}
	}

	labels := make([]string, 0, len(rows))
	for label := range rows {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	return Grid{RowLabels: labels, Columns: columns, rows: rows}
}

// Row returns the padded seat slots for a row label. Nil entries are gaps.
func (g Grid) Row(label string) []*model.Seat {
	return g.rows[label]
}

// SeatAt looks up the seat at a 1-based position, or nil for a gap or an
// out-of-range position.
func (g Grid) SeatAt(label string, number int) *model.Seat {
	row := g.rows[label]
	if number < 1 || number > len(row) {
		return nil
	}
	return row[number-1]
}
