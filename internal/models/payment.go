package models

import "time"

// Payment is a mock record linking a student and trip. No real transaction
// ever backs it.
type Payment struct {
	PaymentID     string    `json:"paymentId"`
	StudentID     string    `json:"studentId"`
	ParentID      string    `json:"parentId"`
	TripID        string    `json:"tripId"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"paymentMethod"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
}

// PaymentMethods lists the methods the mock payment form accepts.
var PaymentMethods = []string{"Credit Card", "Debit Card", "Bank Transfer", "Cash"}

// IsCardMethod reports whether the method requires card details.
func IsCardMethod(method string) bool {
	return method == "Credit Card" || method == "Debit Card"
}
