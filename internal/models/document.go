package models

import "time"

// DocumentType classifies an uploaded document.
type DocumentType string

const (
	DocStudentReport        DocumentType = "STUDENT_REPORT"
	DocBirthCertificate     DocumentType = "BIRTH_CERTIFICATE"
	DocImmunizationRecord   DocumentType = "IMMUNIZATION_RECORD"
	DocPreviousSchoolReport DocumentType = "PREVIOUS_SCHOOL_REPORT"
	DocIDDocument           DocumentType = "ID_DOCUMENT"
	DocProofOfResidence     DocumentType = "PROOF_OF_RESIDENCE"
	DocMedicalCertificate   DocumentType = "MEDICAL_CERTIFICATE"
	DocOther                DocumentType = "OTHER"
)

var documentTypeLabels = map[DocumentType]string{
	DocStudentReport:        "Student Report",
	DocBirthCertificate:     "Birth Certificate",
	DocImmunizationRecord:   "Immunization Record",
	DocPreviousSchoolReport: "Previous School Report",
	DocIDDocument:           "ID Document",
	DocProofOfResidence:     "Proof of Residence",
	DocMedicalCertificate:   "Medical Certificate",
	DocOther:                "Other",
}

// Label returns the human-readable name for the type, or the raw value for
// types the portal does not know.
func (t DocumentType) Label() string {
	if label, ok := documentTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

// Document is an uploaded file record. FileURL carries either an external URL
// or an inline data-URL blob passed through to the backend.
type Document struct {
	DocumentID     string       `json:"documentId"`
	FileName       string       `json:"fileName"`
	FileURL        string       `json:"fileUrl"`
	MimeType       string       `json:"mimeType,omitempty"`
	FileSize       int64        `json:"fileSize,omitempty"`
	DocumentType   DocumentType `json:"documentType"`
	Description    string       `json:"description,omitempty"`
	StudentID      string       `json:"studentId"`
	ParentID       string       `json:"parentId"`
	UploadedBy     string       `json:"uploadedBy,omitempty"`
	UploadedByRole string       `json:"uploadedByRole,omitempty"`
	Verified       bool         `json:"verified"`
	VerifiedBy     string       `json:"verifiedBy,omitempty"`
	VerifiedAt     *time.Time   `json:"verifiedAt,omitempty"`
	UploadedAt     time.Time    `json:"uploadedAt,omitempty"`
}

// DocumentRequest is an admin-side request for a parent to supply a document.
type DocumentRequest struct {
	RequestID    string       `json:"requestId"`
	ParentID     string       `json:"parentId"`
	StudentID    string       `json:"studentId,omitempty"`
	DocumentType DocumentType `json:"documentType"`
	Message      string       `json:"message,omitempty"`
	Status       string       `json:"status"`
	CreatedAt    time.Time    `json:"createdAt,omitempty"`
}
