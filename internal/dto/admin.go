package dto

import "github.com/oakfield-primary/portal-api/internal/models"

// AdminDashboard summarizes what needs attention.
type AdminDashboard struct {
	PendingStudents int       `json:"pendingStudents"`
	ActiveTrips     int       `json:"activeTrips"`
	TotalTrips      int       `json:"totalTrips"`
	PendingMeetings int       `json:"pendingMeetings"`
	Announcements   int       `json:"announcements"`
	Warnings        []Warning `json:"warnings,omitempty"`
}

// StudentRow is one row of the admin student queue, with the parent's
// display name joined in.
type StudentRow struct {
	models.Student
	ParentName string `json:"parentName"`
}

// StudentsScreen is one tab of the admin student queue.
type StudentsScreen struct {
	Tab      string       `json:"tab"`
	Students []StudentRow `json:"students"`
}

// ApproveWithClassRequest approves and assigns a class in one step.
type ApproveWithClassRequest struct {
	ClassName string `json:"className" validate:"required"`
	Teacher   string `json:"teacher" validate:"required"`
}

// RejectRequest carries the mandatory rejection reason.
type RejectRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// TripForm is the admin create/edit trip form.
type TripForm struct {
	Title          string   `json:"title" validate:"required"`
	Description    string   `json:"description" validate:"required"`
	Destination    string   `json:"destination" validate:"required"`
	Price          float64  `json:"price" validate:"gte=0"`
	TripDate       string   `json:"tripDate" validate:"required"`
	EligibleGrades []string `json:"eligibleGrades" validate:"required,min=1"`
}

// TripImageRequest replaces a trip's image with an inline encoded blob.
type TripImageRequest struct {
	ImageData string `json:"imageData" validate:"required"`
}

// PaidStudentRow is one row of the paid-students trip report.
type PaidStudentRow struct {
	StudentID     string `json:"studentId"`
	FullName      string `json:"fullName"`
	Grade         string `json:"grade"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
	PaidAt        string `json:"paidAt,omitempty"`
}

// PaidStudentsGroup is one grade's worth of the paid-students report.
type PaidStudentsGroup struct {
	Grade    string           `json:"grade"`
	Students []PaidStudentRow `json:"students"`
}

// PaidStudentsReport is the grouped report for one trip.
type PaidStudentsReport struct {
	Trip   models.Trip         `json:"trip"`
	Groups []PaidStudentsGroup `json:"groups"`
	Total  int                 `json:"total"`
}

// MeetingForm is the admin create/edit meeting form.
type MeetingForm struct {
	Title         string `json:"title" validate:"required"`
	Description   string `json:"description" validate:"required"`
	ScheduledTime string `json:"scheduledTime" validate:"required"`
	TeacherName   string `json:"teacherName" validate:"required"`
	Type          string `json:"type" validate:"required,oneof=GROUP_MEETING ONE_ON_ONE"`
	ParentID      string `json:"parentId"`
}

// AnnouncementForm is the admin create/edit announcement form.
type AnnouncementForm struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category" validate:"required"`
}

// VerifyDocumentResult confirms a verification action.
type VerifyDocumentResult struct {
	Notice Notice `json:"notice"`
}
