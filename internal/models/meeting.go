package models

// MeetingType distinguishes scheduled group sessions from requested
// one-on-ones.
type MeetingType string

const (
	MeetingGroup    MeetingType = "GROUP_MEETING"
	MeetingOneOnOne MeetingType = "ONE_ON_ONE"
)

// MeetingStatus is the approval lifecycle of a meeting.
type MeetingStatus string

const (
	MeetingPending  MeetingStatus = "PENDING"
	MeetingApproved MeetingStatus = "APPROVED"
	MeetingRejected MeetingStatus = "REJECTED"
)

// Meeting is a parent-teacher session subject to admin approval.
type Meeting struct {
	MeetingID       string        `json:"meetingId"`
	Title           string        `json:"title"`
	Description     string        `json:"description,omitempty"`
	ScheduledTime   string        `json:"scheduledTime"`
	TeacherID       string        `json:"teacherId,omitempty"`
	TeacherName     string        `json:"teacherName"`
	Type            MeetingType   `json:"type"`
	Status          MeetingStatus `json:"status"`
	RejectionReason string        `json:"rejectionReason,omitempty"`
	ParentID        string        `json:"parentId,omitempty"`
	ParentName      string        `json:"parentName,omitempty"`
}
