package requester

import "errors"

var ErrInvalidRole = errors.New("invalid role")

// Role comes from the external identity provider. The engine never inspects it
// beyond deriving the privileged flag: privilege is always passed down as an
// explicit parameter, never read from ambient state.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

func NewRole(s string) (Role, error) {
	switch Role(s) {
	case RoleMember, RoleAdmin:
		return Role(s), nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) String() string {
	return string(r)
}

// IsPrivileged reports whether the role may override conflicts and cancel
// other requesters' reservations.
func (r Role) IsPrivileged() bool {
	return r == RoleAdmin
}
