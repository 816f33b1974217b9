package models

import "time"

// StudentStatus is the admission lifecycle state of a student application.
type StudentStatus string

const (
	StudentPending  StudentStatus = "PENDING"
	StudentApproved StudentStatus = "APPROVED"
	StudentRejected StudentStatus = "REJECTED"
)

// Student is a child application record. REJECTED students can be re-approved
// and APPROVED students revoked back to REJECTED; all transitions happen
// upstream.
type Student struct {
	StudentID          string        `json:"studentId"`
	ParentID           string        `json:"parentId"`
	Name               string        `json:"name"`
	Surname            string        `json:"surname"`
	FullName           string        `json:"fullName,omitempty"`
	Gender             string        `json:"gender,omitempty"`
	DateOfBirth        string        `json:"dateOfBirth,omitempty"`
	BirthCertificateID string        `json:"birthCertificateId,omitempty"`
	Nationality        string        `json:"nationality,omitempty"`
	Grade              string        `json:"grade"`
	YearOfAdmission    int           `json:"yearOfAdmission,omitempty"`
	PreviousSchool     string        `json:"previousSchool,omitempty"`
	Status             StudentStatus `json:"status"`
	ClassName          string        `json:"className,omitempty"`
	Teacher            string        `json:"teacher,omitempty"`
	RejectionReason    string        `json:"rejectionReason,omitempty"`
	CreatedAt          time.Time     `json:"createdAt,omitempty"`
}

// DisplayName joins the name parts or falls back to the combined field.
func (s Student) DisplayName() string {
	if s.Name != "" || s.Surname != "" {
		if s.Surname == "" {
			return s.Name
		}
		if s.Name == "" {
			return s.Surname
		}
		return s.Name + " " + s.Surname
	}
	return s.FullName
}

// HasApproved reports whether at least one student in the slice is APPROVED.
// Trip and meeting screens are gated on this.
func HasApproved(students []Student) bool {
	for _, s := range students {
		if s.Status == StudentApproved {
			return true
		}
	}
	return false
}
