// Package models defines the data exchanged with the grade-management
// backend and the small client-side value types around it.
package models

// Role is the authorization role carried by a session and declared by routes.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
)

// Valid reports whether r is one of the roles the backend issues.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleTeacher
}

func (r Role) String() string { return string(r) }
