package models

// Trip is a paid, grade-gated school outing.
type Trip struct {
	TripID             string   `json:"tripId"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Destination        string   `json:"destination"`
	Price              float64  `json:"price"`
	TripDate           string   `json:"tripDate"`
	EligibleGrades     []string `json:"eligibleGrades"`
	Active             bool     `json:"active"`
	RegisteredStudents []string `json:"registeredStudents,omitempty"`
	ImageURL           string   `json:"imageUrl,omitempty"`
}

// HasRegistered reports whether the student is already registered.
func (t Trip) HasRegistered(studentID string) bool {
	for _, id := range t.RegisteredStudents {
		if id == studentID {
			return true
		}
	}
	return false
}
