package models

import "time"

// Principal is the authenticated identity attached to a request by the auth
// middleware. It replaces ambient session state: handlers receive exactly the
// scope they are allowed to act on, a department for teachers and the
// student's own id for students.
type Principal struct {
	Role UserRole `json:"role"`

	// Teacher fields (Role == RoleTeacher)
	TeacherID  uint   `json:"teacher_id,omitempty"`
	Department string `json:"department,omitempty"`

	// Student fields (Role == RoleStudent)
	StudentID uint   `json:"student_id,omitempty"`
	RollNo    string `json:"roll_no,omitempty"`

	// Shared
	Name string `json:"name"`

	// TokenID is the JTI of the bearer token, used for revocation on logout.
	TokenID string `json:"-"`

	// ExpiresAt is the bearer token's expiry. Logout denylists the token id
	// until this instant so a revoked token can never come back to life.
	ExpiresAt time.Time `json:"-"`
}

func (p *Principal) IsTeacher() bool {
	return p != nil && p.Role == RoleTeacher
}

func (p *Principal) IsStudent() bool {
	return p != nil && p.Role == RoleStudent
}
