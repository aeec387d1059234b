// Package permissions holds the authorization predicates. Each operation
// decides access through an explicit predicate rather than inspecting
// role strings inline.
package permissions

import "reviewhub/internal/models"

// IsAdmin grants the full administrative surface: user management and
// write access to categories, genres and titles. Superusers qualify
// regardless of their stored role.
func IsAdmin(user *models.User) bool {
	return user != nil && user.IsAdmin()
}

// CanModerate grants moderator-level mutation of other users' content.
func CanModerate(user *models.User) bool {
	return user != nil && (user.IsModerator() || user.IsAdmin())
}

// CanMutateOwned decides review/comment mutation: the author may edit
// their own content, moderators and admins may edit anyone's.
func CanMutateOwned(user *models.User, authorID string) bool {
	if user == nil {
		return false
	}
	return user.ID == authorID || CanModerate(user)
}
