package models

// Role identifies which household member a record belongs to.
type Role string

const (
	RoleHusband Role = "husband"
	RoleWife    Role = "wife"
)

// Valid reports whether r is one of the two household roles.
func (r Role) Valid() bool {
	return r == RoleHusband || r == RoleWife
}

// Roles lists the household roles in display order.
func Roles() []Role {
	return []Role{RoleHusband, RoleWife}
}
