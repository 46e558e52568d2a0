package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

type Showroom struct {
	Id   int64  `json:"id"`
	Name string `json:"name"`
}

type Screening struct {
	Id        int64     `json:"id"`
	StartTime time.Time `json:"start_time"`
	BasePrice Price     `json:"base_price"`
	Movie     *Movie    `json:"movie"`
	Showroom  *Showroom `json:"showroom"`
}

// Price is a currency amount. The API serializes decimals either as a JSON
// number or as a quoted string ("12.50"), so both are accepted.
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == `""` {
		*p = 0
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return err
		}
		*p = Price(value)
		return nil
	}
	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*p = Price(value)
	return nil
}

type Seat struct {
	Id         int64  `json:"id"`
	RowLabel   string `json:"row_label"`
	SeatNumber int    `json:"seat_number"`
	IsBooked   bool   `json:"is_booked"`
}

// SeatList is the seat-selection payload: the flat seat list plus the
// screening it belongs to.
type SeatList struct {
	Seats     []Seat    `json:"seats"`
	Screening Screening `json:"screening"`
}
