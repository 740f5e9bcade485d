package models

import (
	"strings"
	"time"
)

// Roles a user account can hold on the platform. The role decides whether
// the account may publish content; administrators can additionally manage
// other accounts.
const (
	RoleReader = "reader"
	RoleWriter = "writer"
	RoleAdmin  = "admin"
)

// ValidRole reports whether s is one of the roles the API accepts.
func ValidRole(s string) bool {
	return s == RoleReader || s == RoleWriter || s == RoleAdmin
}

// User is the authenticated identity as returned by the profile endpoint.
// ID and Email are always present; the name fields and DateJoined are
// optional on the wire.
type User struct {
	ID         int64      `json:"id"`
	Email      string     `json:"email"`
	FirstName  string     `json:"first_name,omitempty"`
	LastName   string     `json:"last_name,omitempty"`
	FullName   string     `json:"full_name,omitempty"`
	DateJoined *time.Time `json:"date_joined,omitempty"`
	Role       string     `json:"role,omitempty"`
}

// DisplayName returns the best human-readable name for the user:
// full name if the server computed one, then first/last, then the
// local part of the email address.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	if u.FirstName != "" || u.LastName != "" {
		return strings.TrimSpace(u.FirstName + " " + u.LastName)
	}
	if i := strings.IndexByte(u.Email, '@'); i > 0 {
		return u.Email[:i]
	}
	return u.Email
}

// Author is the reduced user representation embedded in articles and
// comments.
type Author struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}
