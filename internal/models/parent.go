package models

// Parent is the account-holder profile kept by the admissions API.
type Parent struct {
	ParentID    string   `json:"parentId"`
	FullName    string   `json:"fullName"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phoneNumber,omitempty"`
	Address     string   `json:"address,omitempty"`
	Children    []string `json:"children,omitempty"`
}
