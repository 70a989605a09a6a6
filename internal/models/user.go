package models

type Role string

const (
	RoleStudent     Role = "STUDENT"
	RoleProfessor   Role = "PROFESSOR"
	RoleTA          Role = "TA"
	RoleStaff       Role = "STAFF"
	RoleEventOffice Role = "EVENT_OFFICE"
	RoleAdmin       Role = "ADMIN"
	// RoleSystem is the internal actor used by timer-driven workers
	// (automatic completion). It never arrives from a client token.
	RoleSystem Role = "SYSTEM"
)

type UserStatus string

const (
	UserActive              UserStatus = "ACTIVE"
	UserBlocked             UserStatus = "BLOCKED"
	UserPendingVerification UserStatus = "PENDING_VERIFICATION"
)

// User rows are owned by the identity service; the core reads, never writes.
type User struct {
	ID     string     `gorm:"type:uuid;primaryKey" json:"id"`
	Name   string     `json:"name"`
	Email  string     `json:"email"`
	Role   Role       `gorm:"type:varchar(20);not null" json:"role"`
	Status UserStatus `gorm:"type:varchar(30);not null" json:"status"`
}

// Actor is the authenticated caller of a core operation.
type Actor struct {
	UserID string
	Role   Role
}

// IsEventOffice reports whether the actor holds Event Office powers. Admin
// carries every Event Office permission in the transition table.
func (a Actor) IsEventOffice() bool {
	return a.Role == RoleEventOffice || a.Role == RoleAdmin
}

// IsSystem reports whether the actor is the internal worker identity.
func (a Actor) IsSystem() bool {
	return a.Role == RoleSystem
}

// SystemActor is the fixed identity workers use for automatic transitions.
var SystemActor = Actor{UserID: "system", Role: RoleSystem}
