package model

type PaymentIntent struct {
	ClientSecret string `json:"client_secret"`
}

type Booking struct {
	Id int64 `json:"booking_id"`
}
