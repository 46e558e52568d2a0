package seatmap

import "eventify-cli/model"

// Selection is the ordered set of chosen seats, bounded by the ticket quota
// committed in the previous step.
type Selection struct {
	quota int
	seats []model.Seat
}

func NewSelection(quota int) *Selection {
	if quota < 1 {
		quota = 1
	}
	return &Selection{quota: quota}
}

// Toggle applies the selection rules to a click: booked seats never enter,
// a selected seat leaves, an unselected seat enters only while the quota has
// room. It reports whether the selection changed; a full-quota or booked
// click is a silent no-op.
func (s *Selection) Toggle(seat model.Seat) bool {
	if seat.IsBooked {
		return false
	}
	for i, selected := range s.seats {
		if selected.Id == seat.Id {
			s.seats = append(s.seats[:i], s.seats[i+1:]...)
			return true
		}
	}
	if len(s.seats) >= s.quota {
		return false
	}
	s.seats = append(s.seats, seat)
	return true
}

func (s *Selection) Contains(id int64) bool {
	for _, seat := range s.seats {
		if seat.Id == id {
			return true
		}
	}
	return false
}

func (s *Selection) Count() int {
	return len(s.seats)
}

func (s *Selection) Quota() int {
	return s.quota
}

// Complete reports whether the next step may be taken: the selection must
// match the quota exactly, not merely reach it.
func (s *Selection) Complete() bool {
	return len(s.seats) == s.quota
}

func (s *Selection) Seats() []model.Seat {
	out := make([]model.Seat, len(s.seats))
	copy(out, s.seats)
	return out
}

func (s *Selection) SeatIDs() []int64 {
	ids := make([]int64, 0, len(s.seats))
	for _, seat := range s.seats {
		ids = append(ids, seat.Id)
	}
	return ids
}

// Total prices the selection for display. The server is authoritative for
// the final charge.
func (s *Selection) Total(basePrice model.Price) float64 {
	return float64(len(s.seats)) * float64(basePrice)
}
