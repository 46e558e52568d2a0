package service

import (
	"context"
	"errors"
	"fmt"

	"eventify-cli/model"
)

// GetScreeningByID fetches a single screening with its movie and showroom.
func (c *Client) GetScreeningByID(ctx context.Context, id int64) (model.Screening, error) {
	if id <= 0 {
		return model.Screening{}, errors.New("screening id is required")
	}
	endpoint := fmt.Sprintf("%s/%d", c.endpoint("/screenings"), id)
	var screening model.Screening
	if err := c.getJSON(ctx, endpoint, &screening); err != nil {
		return model.Screening{}, err
	}
	return screening, nil
}

// ListSeats fetches the seat list for a screening. Booked status reflects
// server state at fetch time only.
func (c *Client) ListSeats(ctx context.Context, screeningID int64) (model.SeatList, error) {
	if screeningID <= 0 {
		return model.SeatList{}, errors.New("screening id is required")
	}
	endpoint := fmt.Sprintf("%s/%d/seats", c.endpoint("/screenings"), screeningID)
	var seats model.SeatList
	if err := c.getJSON(ctx, endpoint, &seats); err != nil {
		return model.SeatList{}, err
	}
	return seats, nil
}
