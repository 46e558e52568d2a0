package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"eventify-cli/model"
)

type createIntentRequest struct {
	ScreeningID int64   `json:"screening_id"`
	SeatIDs     []int64 `json:"seat_ids"`
}

type confirmPaymentRequest struct {
	PaymentIntentID string  `json:"payment_intent_id"`
	ScreeningID     int64   `json:"screening_id"`
	SeatIDs         []int64 `json:"seat_ids"`
}

// CreatePaymentIntent reserves the selected seats with the payment provider
// and returns the client secret for the hosted payment page. The card
// capture itself happens there, not in this client.
func (c *Client) CreatePaymentIntent(ctx context.Context, screeningID int64, seatIDs []int64) (model.PaymentIntent, error) {
	if screeningID <= 0 || len(seatIDs) == 0 {
		return model.PaymentIntent{}, errors.New("screening id and seat ids are required")
	}
	var intent model.PaymentIntent
	err := c.postJSON(ctx, c.endpoint("/payments/create-intent"),
		createIntentRequest{ScreeningID: screeningID, SeatIDs: seatIDs},
		&intent,
		"X-Idempotency-Key", uuid.NewString(),
	)
	if err != nil {
		return model.PaymentIntent{}, err
	}
	return intent, nil
}

// ConfirmPayment finalizes the booking after the hosted page reports the
// charge succeeded.
func (c *Client) ConfirmPayment(ctx context.Context, paymentIntentID string, screeningID int64, seatIDs []int64) (model.Booking, error) {
	if paymentIntentID == "" || screeningID <= 0 || len(seatIDs) == 0 {
		return model.Booking{}, errors.New("payment intent, screening id and seat ids are required")
	}
	var booking model.Booking
	err := c.postJSON(ctx, c.endpoint("/payments/confirm"),
		confirmPaymentRequest{PaymentIntentID: paymentIntentID, ScreeningID: screeningID, SeatIDs: seatIDs},
		&booking,
		"X-Idempotency-Key", uuid.NewString(),
	)
	if err != nil {
		return model.Booking{}, err
	}
	return booking, nil
}
