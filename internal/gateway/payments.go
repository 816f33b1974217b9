package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/oakfield-primary/portal-api/internal/models"
)

type paymentCheck struct {
	HasPaid bool `json:"hasPaid"`
}

// CheckPayment reports whether a student has paid for a trip.
func (c *Client) CheckPayment(ctx context.Context, studentID, tripID string) (bool, error) {
	var check paymentCheck
	path := fmt.Sprintf("/payments/check/%s/%s", studentID, tripID)
	if err := c.do(ctx, http.MethodGet, path, "payments", nil, &check); err != nil {
		return false, err
	}
	return check.HasPaid, nil
}

// ListPaymentsByStudent returns a student's payment history.
func (c *Client) ListPaymentsByStudent(ctx context.Context, studentID string) ([]models.Payment, error) {
	var payments []models.Payment
	path := fmt.Sprintf("/payments/student/%s", studentID)
	if err := c.do(ctx, http.MethodGet, path, "payments", nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}
