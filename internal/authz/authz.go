// Package authz is the access gate: a pure predicate over roles. Every
// privileged mutation checks it server-side; hiding a button in the UI is
// not authorization.
package authz

import "github.com/falynantenaina87-blip/Mandarin-connect/models"

// CanManageSharedContent reports whether the role may create or delete
// shared content (announcements, schedule entries).
func CanManageSharedContent(role models.Role) bool {
	return role == models.RoleDelegate || role == models.RoleAdmin
}

// CanPromoteAccounts reports whether the role may change another
// account's role.
func CanPromoteAccounts(role models.Role) bool {
	return role == models.RoleAdmin
}
