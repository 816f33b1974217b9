package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/oakfield-primary/portal-api/internal/models"
)

// TripPayload is the create/update trip payload.
type TripPayload struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Destination    string   `json:"destination"`
	Price          float64  `json:"price"`
	TripDate       string   `json:"tripDate"`
	EligibleGrades []string `json:"eligibleGrades"`
}

// TripRegistration registers a student for a trip with a mock payment method.
type TripRegistration struct {
	StudentID     string `json:"studentId"`
	ParentID      string `json:"parentId"`
	PaymentMethod string `json:"paymentMethod"`
}

// PaidStudent is one row of the paid-students trip report.
type PaidStudent struct {
	StudentID     string `json:"studentId"`
	FullName      string `json:"fullName"`
	Grade         string `json:"grade"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
	PaidAt        string `json:"paidAt,omitempty"`
}

// ListTrips returns all trips.
func (c *Client) ListTrips(ctx context.Context) ([]models.Trip, error) {
	var trips []models.Trip
	if err := c.do(ctx, http.MethodGet, "/trips", "trips", nil, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

// GetTrip loads a single trip.
func (c *Client) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	var trip models.Trip
	path := fmt.Sprintf("/trips/%s", tripID)
	if err := c.do(ctx, http.MethodGet, path, "trips", nil, &trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

// CreateTrip creates a trip.
func (c *Client) CreateTrip(ctx context.Context, payload TripPayload) (*models.Trip, error) {
	var trip models.Trip
	if err := c.do(ctx, http.MethodPost, "/trips", "trips", payload, &trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

// UpdateTrip modifies a trip.
func (c *Client) UpdateTrip(ctx context.Context, tripID string, payload TripPayload) (*models.Trip, error) {
	var trip models.Trip
	path := fmt.Sprintf("/trips/%s", tripID)
	if err := c.do(ctx, http.MethodPut, path, "trips", payload, &trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

// DeleteTrip removes a trip.
func (c *Client) DeleteTrip(ctx context.Context, tripID string) error {
	path := fmt.Sprintf("/trips/%s", tripID)
	return c.do(ctx, http.MethodDelete, path, "trips", nil, nil)
}

// RegisterForTrip registers a student; the upstream records the mock payment.
func (c *Client) RegisterForTrip(ctx context.Context, tripID string, registration TripRegistration) error {
	path := fmt.Sprintf("/trips/%s/register", tripID)
	return c.do(ctx, http.MethodPost, path, "trips", registration, nil)
}

// UnregisterFromTrip removes a student's registration.
func (c *Client) UnregisterFromTrip(ctx context.Context, tripID, studentID string) error {
	path := fmt.Sprintf("/trips/%s/register/%s", tripID, studentID)
	return c.do(ctx, http.MethodDelete, path, "trips", nil, nil)
}

// HoldTrip puts a trip on hold.
func (c *Client) HoldTrip(ctx context.Context, tripID string) error {
	path := fmt.Sprintf("/trips/%s/hold", tripID)
	return c.do(ctx, http.MethodPut, path, "trips", nil, nil)
}

// ActivateTrip reactivates a held trip.
func (c *Client) ActivateTrip(ctx context.Context, tripID string) error {
	path := fmt.Sprintf("/trips/%s/activate", tripID)
	return c.do(ctx, http.MethodPut, path, "trips", nil, nil)
}

// UpdateTripImage replaces the trip image with an inline encoded blob.
func (c *Client) UpdateTripImage(ctx context.Context, tripID, imageData string) error {
	path := fmt.Sprintf("/trips/%s/image", tripID)
	payload := map[string]string{"imageData": imageData}
	return c.do(ctx, http.MethodPut, path, "trips", payload, nil)
}

// ListPaidStudents returns the students that have paid for a trip.
func (c *Client) ListPaidStudents(ctx context.Context, tripID string) ([]PaidStudent, error) {
	var students []PaidStudent
	path := fmt.Sprintf("/trips/%s/paid-students", tripID)
	if err := c.do(ctx, http.MethodGet, path, "trips", nil, &students); err != nil {
		return nil, err
	}
	return students, nil
}
