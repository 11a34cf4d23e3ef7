package user

import "errors"

var ErrInvalidRole = errors.New("invalid role")

// Role is the actor kind carried in access tokens issued by the account service.
type Role string

const (
	RoleDonor        Role = "donor"
	RoleOrganization Role = "organization"
	RoleAdmin        Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleDonor, RoleOrganization, RoleAdmin:
		return true
	default:
		return false
	}
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
