package model

type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleNormal Role = "normal"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleNormal:
		return true
	}
	return false
}

// CanManageTeam reports whether the role may mutate team settings and
// membership (everything except deleting the team, which is owner-only).
func (r Role) CanManageTeam() bool {
	return r == RoleOwner || r == RoleAdmin
}
