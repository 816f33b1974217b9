package models

// UserRole identifies the portal audience a user belongs to.
type UserRole string

const (
	RoleParent UserRole = "PARENT"
	RoleAdmin  UserRole = "ADMIN"
)

// HomePath returns the dashboard route for the role. Unknown roles fall back
// to the login screen.
func (r UserRole) HomePath() string {
	switch r {
	case RoleParent:
		return "/parent"
	case RoleAdmin:
		return "/admin"
	default:
		return "/login"
	}
}

// User is the authenticated identity returned by the admissions API on login
// and persisted in the session store.
type User struct {
	UID         string   `json:"uid"`
	Email       string   `json:"email"`
	FullName    string   `json:"fullName"`
	Role        UserRole `json:"role"`
	ParentID    string   `json:"parentId,omitempty"`
	PhoneNumber string   `json:"phoneNumber,omitempty"`
	Address     string   `json:"address,omitempty"`
}

// DisplayName prefers the full name and falls back to the email address.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}
