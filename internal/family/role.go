package family

import "github.com/google/uuid"

// Role is recomputed from the group owner and the profile admin flag on every read.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// RoleOf returns the base role of a user in a group: Owner or Member.
func RoleOf(g *Group, userID uuid.UUID) Role {
	if g != nil && g.OwnerID == userID {
		return RoleOwner
	}

	return RoleMember
}

// EffectiveRole layers the admin flag over the base role. The flag only counts
// while the profile is attached to g.
func EffectiveRole(g *Group, p *Profile) Role {
	if RoleOf(g, p.UserID) == RoleOwner {
		return RoleOwner
	}

	if g != nil && p.IsAdmin && p.InGroup(g.ID) {
		return RoleAdmin
	}

	return RoleMember
}

// AuthorizeManagement reports whether p may manage categories, goals and members of g.
// A nil group never grants permission.
func AuthorizeManagement(p *Profile, g *Group) bool {
	if p == nil || g == nil {
		return false
	}

	switch EffectiveRole(g, p) {
	case RoleOwner, RoleAdmin:
		return true
	default:
		return false
	}
}

func CanJoinOrCreate(p *Profile) bool {
	return p.GroupID == nil
}
