package dto

import "github.com/oakfield-primary/portal-api/internal/models"

// ChildTripStatus is one approved child's standing on one trip.
type ChildTripStatus struct {
	StudentID  string `json:"studentId"`
	FullName   string `json:"fullName"`
	Grade      string `json:"grade"`
	Eligible   bool   `json:"eligible"`
	Registered bool   `json:"registered"`
	HasPaid    bool   `json:"hasPaid"`
}

// TripView is one trip with per-child standing.
type TripView struct {
	models.Trip
	Children []ChildTripStatus `json:"children"`
}

// TripsScreen gates the whole screen on having an approved child.
type TripsScreen struct {
	Blocked       bool       `json:"blocked"`
	BlockedReason string     `json:"blockedReason,omitempty"`
	Trips         []TripView `json:"trips,omitempty"`
}

// PaymentRequest is the mock payment form for trip registration.
type PaymentRequest struct {
	StudentID     string `json:"studentId" validate:"required"`
	PaymentMethod string `json:"paymentMethod" validate:"required"`
	CardNumber    string `json:"cardNumber"`
	CardExpiry    string `json:"cardExpiry"`
	CardCVV       string `json:"cardCvv"`
}

// PaymentReceipt confirms a mock payment.
type PaymentReceipt struct {
	TripID        string  `json:"tripId"`
	StudentID     string  `json:"studentId"`
	PaymentMethod string  `json:"paymentMethod"`
	Amount        float64 `json:"amount"`
	Notice        Notice  `json:"notice"`
}
