package models

// Capability checks centralize the role/permission rules that would otherwise
// be repeated inline across handlers.

// CanModerate reports whether the role may act on other users' content
// (resolve reports, review applications, delete comments).
func (r Role) CanModerate() bool {
	return r == RoleModerator || r == RoleAdmin
}

// CanAdmin reports whether the role may change other users' roles.
func (r Role) CanAdmin() bool {
	return r == RoleAdmin
}

// Banned reports whether the role locks the account out of authenticated routes.
func (r Role) Banned() bool {
	return r == RoleBanned
}

// OwnerOrModerator reports whether the actor owns the resource or holds a
// moderation role.
func OwnerOrModerator(actorID, ownerID uint, role Role) bool {
	return actorID == ownerID || role.CanModerate()
}
