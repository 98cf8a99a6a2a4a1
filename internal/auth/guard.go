package auth

import "blog/internal/models"

// RequireAdmin gates content-management operations. Anonymous principals and
// members are rejected alike; handlers answer with a plain 404 so the admin
// routes are indistinguishable from missing ones.
func RequireAdmin(principal *models.User) error {
	if !principal.IsAdmin() {
		return models.ErrForbidden
	}
	return nil
}
