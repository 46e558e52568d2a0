package seatmap

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"eventify-cli/model"
)

// Summary renders the selection as a human-readable list, grouped by row.
// A single seat reads "Row A Seat 1"; a fully consecutive run compresses to
// "Row A Seats 1-3"; a row with any gap falls back to the flat comma list
// ("Row A Seats 1, 3") rather than splitting into sub-ranges.
func Summary(seats []model.Seat) string {
	if len(seats) == 0 {
		return "No seats selected"
	}

	byRow := map[string][]int{}
	for _, seat := range seats {
		byRow[seat.RowLabel] = append(byRow[seat.RowLabel], seat.SeatNumber)
	}

	labels := make([]string, 0, len(byRow))
	for label := range byRow {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	parts := make([]string, 0, len(labels))
	for _, label := range labels {
		numbers := byRow[label]
		sort.Ints(numbers)
		parts = append(parts, formatRow(label, numbers))
	}
	return strings.Join(parts, ", ")
}

func formatRow(label string, numbers []int) string {
	if len(numbers) == 1 {
		return fmt.Sprintf("Row %s Seat %d", label, numbers[0])
	}
	if isConsecutive(numbers) {
		return fmt.Sprintf("Row %s Seats %d-%d", label, numbers[0], numbers[len(numbers)-1])
	}
	joined := make([]string, len(numbers))
	for i, n := range numbers {
		joined[i] = strconv.Itoa(n)
	}
	return fmt.Sprintf("Row %s Seats %s", label, strings.Join(joined, ", "))
}

func isConsecutive(numbers []int) bool {
	for i := 1; i < len(numbers); i++ {
		if numbers[i] != numbers[i-1]+1 {
			return false
		}
	}
	return true
}
