package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/oakfield-primary/portal-api/internal/models"
)

// ClassAssignment is the approve-with-class payload.
type ClassAssignment struct {
	ClassName string `json:"className"`
	Teacher   string `json:"teacher"`
}

// ListStudents returns every student application.
func (c *Client) ListStudents(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := c.do(ctx, http.MethodGet, "/students", "students", nil, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// ListStudentsByStatus returns students in one lifecycle state
// (pending, approved or rejected).
func (c *Client) ListStudentsByStatus(ctx context.Context, status string) ([]models.Student, error) {
	var students []models.Student
	path := fmt.Sprintf("/students/%s", status)
	if err := c.do(ctx, http.MethodGet, path, "students", nil, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// GetStudent loads a single student.
func (c *Client) GetStudent(ctx context.Context, studentID string) (*models.Student, error) {
	var student models.Student
	path := fmt.Sprintf("/students/%s", studentID)
	if err := c.do(ctx, http.MethodGet, path, "students", nil, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// ApproveStudent transitions a student to APPROVED.
func (c *Client) ApproveStudent(ctx context.Context, studentID string) error {
	path := fmt.Sprintf("/students/%s/approve", studentID)
	return c.do(ctx, http.MethodPut, path, "students", nil, nil)
}

// ApproveStudentWithClass approves and assigns a class and teacher in one step.
func (c *Client) ApproveStudentWithClass(ctx context.Context, studentID string, assignment ClassAssignment) error {
	path := fmt.Sprintf("/students/%s/approve-with-class", studentID)
	return c.do(ctx, http.MethodPut, path, "students", assignment, nil)
}

// RejectStudent transitions a student to REJECTED with a reason. Also used to
// revoke an approval.
func (c *Client) RejectStudent(ctx context.Context, studentID, reason string) error {
	path := fmt.Sprintf("/students/%s/reject", studentID)
	payload := map[string]string{"reason": reason}
	return c.do(ctx, http.MethodPut, path, "students", payload, nil)
}

// DeleteStudent removes a student application.
func (c *Client) DeleteStudent(ctx context.Context, studentID string) error {
	path := fmt.Sprintf("/students/%s", studentID)
	return c.do(ctx, http.MethodDelete, path, "students", nil, nil)
}
